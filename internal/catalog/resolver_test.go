package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FixedOPS-AI/fixedops-ai-demo/internal/types"
)

func testResolver(t *testing.T, entries []types.CatalogEntry) *Resolver {
	t.Helper()
	store, err := NewStore(context.Background(), &stubSource{entries: entries})
	require.NoError(t, err)
	return NewResolver(store)
}

func laborOp(code string, qty int) types.LaborOperation {
	return types.LaborOperation{OperationCode: code, Hours: 2.0, Rate: 160.0, RequiredQty: qty, LineTotal: 320.0}
}

func TestResolveCatalogMatch(t *testing.T) {
	r := testResolver(t, []types.CatalogEntry{
		{Make: "RAM", OperationCode: "OIL-LEAK", PartNumber: "RAM-VCG-57", Description: "Valve Cover Gasket",
			UnitPrice: 48.75, CostPrice: 22.10, StockSource: "Mopar Direct", Availability: "In Stock"},
	})

	lines, _ := r.Resolve("RAM", []types.LaborOperation{laborOp("OIL-LEAK", 2)})

	require.Len(t, lines, 1)
	line := lines[0]
	assert.Equal(t, "RAM-VCG-57", line.PartNumber)
	assert.Equal(t, 2, line.Quantity)
	assert.InDelta(t, 97.50, line.LineTotal, 0.0001)
	assert.InDelta(t, 44.20, line.CostTotal, 0.0001)
}

func TestResolveRotorForcesAxlePair(t *testing.T) {
	r := testResolver(t, []types.CatalogEntry{
		{Make: "HONDA", OperationCode: "RR-BRAKE", PartNumber: "HON-RT-310", Description: "Rear Brake Rotor (Vented)", UnitPrice: 64.25},
	})

	// Labor says one brake job; rotors still resolve as an axle pair.
	lines, events := r.Resolve("HONDA", []types.LaborOperation{laborOp("RR-BRAKE", 1)})

	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.InDelta(t, 128.50, lines[0].LineTotal, 0.0001)

	var overridden bool
	for _, ev := range events {
		if ev.Category == "quantity_override" {
			overridden = true
		}
	}
	assert.True(t, overridden)
}

func TestResolveSetForcesSingleUnit(t *testing.T) {
	r := testResolver(t, []types.CatalogEntry{
		{Make: "FORD", OperationCode: "SUSP-FRONT", PartNumber: "FRD-STRUT-KIT", Description: "Front Strut Assembly Kit", UnitPrice: 199.50},
		{Make: "TOYOTA", OperationCode: "SPARK-PLUG", PartNumber: "TOY-SP-SET", Description: "Spark Plug Set of 4", UnitPrice: 52.00},
	})

	lines, _ := r.Resolve("FORD", []types.LaborOperation{laborOp("SUSP-FRONT", 2)})
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Quantity)

	lines, _ = r.Resolve("TOYOTA", []types.LaborOperation{laborOp("SPARK-PLUG", 4)})
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Quantity)
}

func TestResolveSetWinsOverRotor(t *testing.T) {
	r := testResolver(t, []types.CatalogEntry{
		{Make: "HONDA", OperationCode: "RR-BRAKE", PartNumber: "HON-RK-900", Description: "Rear Rotor and Pad Kit", UnitPrice: 240.00},
	})

	lines, _ := r.Resolve("HONDA", []types.LaborOperation{laborOp("RR-BRAKE", 1)})

	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Quantity)
}

func TestResolveGenericFallback(t *testing.T) {
	r := testResolver(t, nil)

	lines, events := r.Resolve("KIA", []types.LaborOperation{laborOp("TIRE-SET", 4)})

	require.Len(t, lines, 1)
	line := lines[0]
	assert.Equal(t, GenericPartNumber, line.PartNumber)
	assert.Equal(t, "Generic Part for TIRE-SET", line.Description)
	assert.Equal(t, 4, line.Quantity)
	assert.InDelta(t, 50.00, line.UnitPrice, 0.0001)
	assert.InDelta(t, 200.00, line.LineTotal, 0.0001)
	assert.Equal(t, "Local Auto Parts", line.StockSource)
	assert.Equal(t, "On Demand", line.Availability)

	var flagged bool
	for _, ev := range events {
		if ev.Category == "fallback" && ev.Severity == types.SeverityFlagged {
			flagged = true
		}
	}
	assert.True(t, flagged)
}

func TestResolveSkipsZeroQuantityOps(t *testing.T) {
	r := testResolver(t, nil)

	lines, _ := r.Resolve("HONDA", []types.LaborOperation{laborOp("GEN-DIAG", 0)})

	assert.Empty(t, lines)
}

func TestResolveMultipleRowsPerOperation(t *testing.T) {
	r := testResolver(t, []types.CatalogEntry{
		{Make: "HONDA", OperationCode: "RR-BRAKE", PartNumber: "HON-BP-220", Description: "Rear Brake Pad Set (Ceramic)", UnitPrice: 89.99, CostPrice: 52.50},
		{Make: "HONDA", OperationCode: "RR-BRAKE", PartNumber: "HON-RT-310", Description: "Rear Brake Rotor (Vented)", UnitPrice: 64.25, CostPrice: 38.00},
	})

	lines, _ := r.Resolve("HONDA", []types.LaborOperation{laborOp("RR-BRAKE", 1)})

	require.Len(t, lines, 2)
	assert.Equal(t, 1, lines[0].Quantity) // pad set
	assert.Equal(t, 2, lines[1].Quantity) // rotor pair
}
