// Package matchers provides symptom-specific labor matchers
package matchers

import (
	"github.com/FixedOPS-AI/fixedops-ai-demo/internal/types"
)

// CoolingMatcher handles overheating and cooling-system complaints
type CoolingMatcher struct {
	keywords []string
}

// NewCoolingMatcher creates a cooling-system matcher
func NewCoolingMatcher() *CoolingMatcher {
	// "leaking water" stays two words so a plain "leak" note cannot
	// cross-trigger this group.
	return &CoolingMatcher{
		keywords: []string{"coolant", "radiator", "overheat", "leaking water", "hoses"},
	}
}

// OperationCode returns the flat-rate operation code
func (m *CoolingMatcher) OperationCode() string {
	return "COOLING-SYS"
}

// Match reports the first cooling keyword present in the notes
func (m *CoolingMatcher) Match(notes string) (string, bool) {
	return firstHit(notes, m.keywords)
}

// Operation builds the cooling system service labor line
func (m *CoolingMatcher) Operation(profile types.VehicleProfile, rate float64) (types.LaborOperation, []types.Event) {
	op := types.LaborOperation{
		OperationCode: m.OperationCode(),
		Description:   "Cooling System Service (Radiator & Flush)",
		Hours:         4.0,
		Rate:          rate,
		RequiredQty:   1,
	}
	op.LineTotal = types.Round2(op.Hours * op.Rate)
	return op, nil
}
