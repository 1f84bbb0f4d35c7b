// Package matchers provides symptom-specific labor matchers
package matchers

import (
	"github.com/FixedOPS-AI/fixedops-ai-demo/internal/types"
)

// TireMatcher handles tire wear and damage complaints
type TireMatcher struct {
	keywords []string
}

// NewTireMatcher creates a tire matcher
func NewTireMatcher() *TireMatcher {
	return &TireMatcher{
		keywords: []string{"tire", "tread", "bald", "flat", "puncture"},
	}
}

// OperationCode returns the flat-rate operation code
func (m *TireMatcher) OperationCode() string {
	return "TIRE-SET"
}

// Match reports the first tire keyword present in the notes
func (m *TireMatcher) Match(notes string) (string, bool) {
	return firstHit(notes, m.keywords)
}

// Operation builds the tire set labor line. A full set means four tires.
func (m *TireMatcher) Operation(profile types.VehicleProfile, rate float64) (types.LaborOperation, []types.Event) {
	op := types.LaborOperation{
		OperationCode: m.OperationCode(),
		Description:   "Mount and Balance 4 Tires",
		Hours:         1.5,
		Rate:          rate,
		RequiredQty:   4,
	}
	op.LineTotal = types.Round2(op.Hours * op.Rate)
	return op, nil
}
