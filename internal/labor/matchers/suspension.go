// Package matchers provides symptom-specific labor matchers
package matchers

import (
	"github.com/FixedOPS-AI/fixedops-ai-demo/internal/types"
)

// SuspensionMatcher handles ride-quality and front-end complaints
type SuspensionMatcher struct {
	keywords []string
}

// NewSuspensionMatcher creates a suspension matcher
func NewSuspensionMatcher() *SuspensionMatcher {
	return &SuspensionMatcher{
		keywords: []string{"suspension", "strut", "shock", "clunk", "bumpy", "control arm"},
	}
}

// OperationCode returns the flat-rate operation code
func (m *SuspensionMatcher) OperationCode() string {
	return "SUSP-FRONT"
}

// Match reports the first suspension keyword present in the notes
func (m *SuspensionMatcher) Match(notes string) (string, bool) {
	return firstHit(notes, m.keywords)
}

// Operation builds the front suspension labor line. Struts are replaced in
// pairs, so two parts per job.
func (m *SuspensionMatcher) Operation(profile types.VehicleProfile, rate float64) (types.LaborOperation, []types.Event) {
	op := types.LaborOperation{
		OperationCode: m.OperationCode(),
		Description:   "Replace Front Suspension Components (Struts/Arms)",
		Hours:         3.5,
		Rate:          rate,
		RequiredQty:   2,
	}
	op.LineTotal = types.Round2(op.Hours * op.Rate)
	return op, nil
}
