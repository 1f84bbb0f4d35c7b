package catalog

import (
	"fmt"
	"strings"

	"github.com/FixedOPS-AI/fixedops-ai-demo/internal/types"
)

// Generic placeholder used when the catalog has nothing for a make/operation
// pair. Every operation that needs parts always gets a cost line.
const (
	GenericPartNumber   = "GEN-PART"
	genericUnitPrice    = 50.00
	genericCostPrice    = 30.00
	genericStockSource  = "Local Auto Parts"
	genericAvailability = "On Demand"
)

// Resolver turns labor operations into priced part lines via the store.
type Resolver struct {
	store *Store
}

// NewResolver creates a resolver over a loaded store.
func NewResolver(store *Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve looks up parts for each labor operation that requires them.
// Operations with a zero required quantity (the general diagnosis) produce no
// part lines. When the catalog has no rows for a make/operation pair, a
// single generic placeholder line carries the operation's quantity instead.
func (r *Resolver) Resolve(make string, ops []types.LaborOperation) ([]types.PartLine, []types.Event) {
	events := []types.Event{
		{
			Stage:    types.StageParts,
			Category: "lookup",
			Message:  fmt.Sprintf("Looking up parts for vehicle make %s", make),
			Severity: types.SeverityInfo,
		},
	}

	lines := []types.PartLine{}
	for _, op := range ops {
		if op.RequiredQty <= 0 {
			continue
		}

		matches := r.store.Lookup(make, op.OperationCode)
		if len(matches) == 0 {
			lines = append(lines, genericLine(op))
			events = append(events, types.Event{
				Stage:    types.StageParts,
				Category: "fallback",
				Message:  fmt.Sprintf("No specific parts found for %s on %s. Adding generic placeholder.", op.OperationCode, make),
				Severity: types.SeverityFlagged,
			})
			continue
		}

		for _, entry := range matches {
			qty, override := partQuantity(op.RequiredQty, entry.Description)
			line := types.PartLine{
				OperationCode: op.OperationCode,
				PartNumber:    entry.PartNumber,
				Description:   entry.Description,
				Quantity:      qty,
				UnitPrice:     entry.UnitPrice,
				CostPrice:     entry.CostPrice,
				StockSource:   entry.StockSource,
				Availability:  entry.Availability,
				LineTotal:     types.Round2(float64(qty) * entry.UnitPrice),
				CostTotal:     types.Round2(float64(qty) * entry.CostPrice),
			}
			lines = append(lines, line)

			if override != "" {
				events = append(events, types.Event{
					Stage:    types.StageParts,
					Category: "quantity_override",
					Message:  fmt.Sprintf("%s %q: quantity %d (%s)", entry.PartNumber, entry.Description, qty, override),
					Severity: types.SeverityInfo,
				})
			}
		}
		events = append(events, types.Event{
			Stage:    types.StageParts,
			Category: "catalog_match",
			Message:  fmt.Sprintf("Found %d part(s) for operation %s.", len(matches), op.OperationCode),
			Severity: types.SeverityInfo,
		})
	}

	return lines, events
}

// partQuantity applies the catalog quantity overrides to an operation's
// required quantity. Rotors sell per wheel but get replaced as an axle pair;
// anything described as a Set or Kit is one pre-packaged unit. The Set/Kit
// rule is evaluated last and wins.
func partQuantity(required int, description string) (int, string) {
	qty := required
	reason := ""
	hasSet := strings.Contains(description, "Set") || strings.Contains(description, "Kit")
	if strings.Contains(description, "Rotor") && !hasSet {
		qty = 2
		reason = "axle pair"
	}
	if hasSet {
		qty = 1
		reason = "pre-packaged set"
	}
	return qty, reason
}

func genericLine(op types.LaborOperation) types.PartLine {
	return types.PartLine{
		OperationCode: op.OperationCode,
		PartNumber:    GenericPartNumber,
		Description:   fmt.Sprintf("Generic Part for %s", op.OperationCode),
		Quantity:      op.RequiredQty,
		UnitPrice:     genericUnitPrice,
		CostPrice:     genericCostPrice,
		StockSource:   genericStockSource,
		Availability:  genericAvailability,
		LineTotal:     types.Round2(float64(op.RequiredQty) * genericUnitPrice),
		CostTotal:     types.Round2(float64(op.RequiredQty) * genericCostPrice),
	}
}
