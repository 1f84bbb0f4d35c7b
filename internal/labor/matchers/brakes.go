// Package matchers provides symptom-specific labor matchers
package matchers

import (
	"github.com/FixedOPS-AI/fixedops-ai-demo/internal/types"
)

// BrakeMatcher handles worn or noisy brake complaints
type BrakeMatcher struct {
	keywords []string
}

// NewBrakeMatcher creates a brake matcher
func NewBrakeMatcher() *BrakeMatcher {
	return &BrakeMatcher{
		keywords: []string{"brake", "grinding", "squeak", "pads", "rotor"},
	}
}

// OperationCode returns the flat-rate operation code
func (m *BrakeMatcher) OperationCode() string {
	return "RR-BRAKE"
}

// Match reports the first brake keyword present in the notes
func (m *BrakeMatcher) Match(notes string) (string, bool) {
	return firstHit(notes, m.keywords)
}

// Operation builds the rear brake service labor line. Quantity is one brake
// job; the catalog resolves it to axle-set counts per part.
func (m *BrakeMatcher) Operation(profile types.VehicleProfile, rate float64) (types.LaborOperation, []types.Event) {
	op := types.LaborOperation{
		OperationCode: m.OperationCode(),
		Description:   "Replace rear brake pads and rotors",
		Hours:         2.0,
		Rate:          rate,
		RequiredQty:   1,
	}
	op.LineTotal = types.Round2(op.Hours * op.Rate)
	return op, nil
}
