// Package matchers provides symptom-specific labor matchers
package matchers

import (
	"github.com/FixedOPS-AI/fixedops-ai-demo/internal/types"
)

// ChargingMatcher handles alternator, battery, and charging-system complaints
type ChargingMatcher struct {
	keywords []string
}

// NewChargingMatcher creates a charging-system matcher
func NewChargingMatcher() *ChargingMatcher {
	return &ChargingMatcher{
		keywords: []string{"alternator", "charging", "battery", "voltage", "dim lights"},
	}
}

// OperationCode returns the flat-rate operation code
func (m *ChargingMatcher) OperationCode() string {
	return "ALT-REPL"
}

// Match reports the first charging keyword present in the notes
func (m *ChargingMatcher) Match(notes string) (string, bool) {
	return firstHit(notes, m.keywords)
}

// Operation builds the alternator replacement labor line
func (m *ChargingMatcher) Operation(profile types.VehicleProfile, rate float64) (types.LaborOperation, []types.Event) {
	op := types.LaborOperation{
		OperationCode: m.OperationCode(),
		Description:   "Alternator replacement",
		Hours:         2.5,
		Rate:          rate,
		RequiredQty:   1,
	}
	op.LineTotal = types.Round2(op.Hours * op.Rate)
	return op, nil
}
