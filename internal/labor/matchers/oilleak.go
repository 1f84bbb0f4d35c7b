// Package matchers provides symptom-specific labor matchers
package matchers

import (
	"fmt"

	"github.com/FixedOPS-AI/fixedops-ai-demo/internal/types"
)

// OilLeakMatcher handles oil leak and gasket complaints
type OilLeakMatcher struct {
	keywords []string
}

// NewOilLeakMatcher creates an oil-leak matcher
func NewOilLeakMatcher() *OilLeakMatcher {
	// "oil leak" stays two words; a bare "leak" belongs to no group.
	return &OilLeakMatcher{
		keywords: []string{"oil leak", "burning smell", "valve cover", "gasket", "dripping"},
	}
}

// OperationCode returns the flat-rate operation code
func (m *OilLeakMatcher) OperationCode() string {
	return "OIL-LEAK"
}

// Match reports the first oil-leak keyword present in the notes
func (m *OilLeakMatcher) Match(notes string) (string, bool) {
	return firstHit(notes, m.keywords)
}

// Operation builds the valve cover reseal labor line. V-configuration engines
// have two valve covers, so two gaskets.
func (m *OilLeakMatcher) Operation(profile types.VehicleProfile, rate float64) (types.LaborOperation, []types.Event) {
	qty := 1
	var events []types.Event
	if engineHas(profile.Engine, "V6", "V8", "HEMI") {
		qty = 2
		events = append(events, types.Event{
			Stage:    types.StageLabor,
			Category: "quantity_sizing",
			Message:  fmt.Sprintf("Two valve cover gaskets required for %s engine", profile.Engine),
			Severity: types.SeverityInfo,
		})
	}

	op := types.LaborOperation{
		OperationCode: m.OperationCode(),
		Description:   "Reseal Valve Cover Gaskets",
		Hours:         3.0,
		Rate:          rate,
		RequiredQty:   qty,
	}
	op.LineTotal = types.Round2(op.Hours * op.Rate)
	return op, events
}
