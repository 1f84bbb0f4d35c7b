package aggregation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FixedOPS-AI/fixedops-ai-demo/internal/types"
)

func sampleLines() ([]types.LaborOperation, []types.PartLine) {
	ops := []types.LaborOperation{
		{OperationCode: "RR-BRAKE", Hours: 2.0, Rate: 160.0, LineTotal: 320.00},
	}
	parts := []types.PartLine{
		{OperationCode: "RR-BRAKE", PartNumber: "HON-BP-220", Quantity: 1, UnitPrice: 89.99, LineTotal: 89.99},
		{OperationCode: "RR-BRAKE", PartNumber: "HON-RT-310", Quantity: 2, UnitPrice: 64.25, LineTotal: 128.50},
	}
	return ops, parts
}

func TestTotalPercentFees(t *testing.T) {
	totaler := NewTotaler()
	ops, parts := sampleLines()

	summary, events := totaler.Total(ops, parts, FeePolicy{Mode: FeePercent, Value: 0.05}, 0.0825)

	assert.InDelta(t, 320.00, summary.LaborSubtotal, 0.0001)
	assert.InDelta(t, 218.49, summary.PartsSubtotal, 0.0001)
	// subtotal 538.49, fees 26.92, tax on 565.41 at 8.25% = 46.65
	assert.InDelta(t, 26.92, summary.ShopFees, 0.0001)
	assert.InDelta(t, 46.65, summary.Tax, 0.0001)
	assert.InDelta(t, 612.06, summary.GrandTotal, 0.0001)
	require.NotEmpty(t, events)
}

func TestTotalFlatFees(t *testing.T) {
	totaler := NewTotaler()
	ops, parts := sampleLines()

	summary, _ := totaler.Total(ops, parts, FeePolicy{Mode: FeeFlat, Value: 24.99}, 0)

	assert.InDelta(t, 24.99, summary.ShopFees, 0.0001)
	assert.Zero(t, summary.Tax)
	assert.InDelta(t, 563.48, summary.GrandTotal, 0.0001)
}

func TestTotalZeroConfiguration(t *testing.T) {
	totaler := NewTotaler()
	ops, parts := sampleLines()

	summary, _ := totaler.Total(ops, parts, FeePolicy{Mode: FeePercent, Value: 0}, 0)

	assert.Zero(t, summary.ShopFees)
	assert.Zero(t, summary.Tax)
	assert.InDelta(t, 538.49, summary.GrandTotal, 0.0001)
}

func TestTotalEmptyRun(t *testing.T) {
	totaler := NewTotaler()

	summary, _ := totaler.Total(nil, nil, FeePolicy{Mode: FeePercent, Value: 0.05}, 0.10)

	assert.Zero(t, summary.LaborSubtotal)
	assert.Zero(t, summary.PartsSubtotal)
	assert.Zero(t, summary.ShopFees)
	assert.Zero(t, summary.Tax)
	assert.Zero(t, summary.GrandTotal)
}

func TestTotalRoundsEachStep(t *testing.T) {
	totaler := NewTotaler()
	ops := []types.LaborOperation{{LineTotal: 100.10}}

	summary, _ := totaler.Total(ops, nil, FeePolicy{Mode: FeePercent, Value: 0.0333}, 0.07)

	// fees = round(100.10 × 0.0333) = round(3.33333) = 3.33
	assert.InDelta(t, 3.33, summary.ShopFees, 0.0001)
	// tax = round(103.43 × 0.07) = round(7.2401) = 7.24
	assert.InDelta(t, 7.24, summary.Tax, 0.0001)
	assert.InDelta(t, 110.67, summary.GrandTotal, 0.0001)
}

func TestTotalIdempotent(t *testing.T) {
	totaler := NewTotaler()
	ops, parts := sampleLines()
	policy := FeePolicy{Mode: FeePercent, Value: 0.05}

	first, _ := totaler.Total(ops, parts, policy, 0.0825)
	second, _ := totaler.Total(ops, parts, policy, 0.0825)

	assert.Equal(t, first, second)
}

func TestGrandTotalNeverBelowSubtotals(t *testing.T) {
	totaler := NewTotaler()
	ops, parts := sampleLines()

	policies := []FeePolicy{
		{Mode: FeePercent, Value: 0},
		{Mode: FeePercent, Value: 0.05},
		{Mode: FeePercent, Value: 0.25},
		{Mode: FeeFlat, Value: 0},
		{Mode: FeeFlat, Value: 99.95},
	}
	for _, policy := range policies {
		for _, tax := range []float64{0, 0.06, 0.0825, 0.15} {
			summary, _ := totaler.Total(ops, parts, policy, tax)
			assert.GreaterOrEqual(t, summary.GrandTotal, summary.LaborSubtotal+summary.PartsSubtotal,
				"policy %+v tax %v", policy, tax)
		}
	}
}
