// Package matchers provides symptom-specific labor matchers
package matchers

import (
	"fmt"

	"github.com/FixedOPS-AI/fixedops-ai-demo/internal/types"
)

// TuneUpMatcher handles misfire and tune-up complaints
type TuneUpMatcher struct {
	keywords []string
}

// NewTuneUpMatcher creates a tune-up matcher
func NewTuneUpMatcher() *TuneUpMatcher {
	return &TuneUpMatcher{
		keywords: []string{"spark plug", "tune up", "misfire", "rough idle"},
	}
}

// OperationCode returns the flat-rate operation code
func (m *TuneUpMatcher) OperationCode() string {
	return "SPARK-PLUG"
}

// Match reports the first tune-up keyword present in the notes
func (m *TuneUpMatcher) Match(notes string) (string, bool) {
	return firstHit(notes, m.keywords)
}

// Operation builds the spark plug labor line. Plug count follows the engine
// descriptor: 4 for the default inline four, 6 for a V6, 8 for a V8 or HEMI.
func (m *TuneUpMatcher) Operation(profile types.VehicleProfile, rate float64) (types.LaborOperation, []types.Event) {
	qty := 4
	switch {
	case engineHas(profile.Engine, "V8", "HEMI"):
		qty = 8
	case engineHas(profile.Engine, "V6"):
		qty = 6
	}

	var events []types.Event
	if qty != 4 {
		events = append(events, types.Event{
			Stage:    types.StageLabor,
			Category: "quantity_sizing",
			Message:  fmt.Sprintf("%d spark plugs required for %s engine", qty, profile.Engine),
			Severity: types.SeverityInfo,
		})
	}

	op := types.LaborOperation{
		OperationCode: m.OperationCode(),
		Description:   "Spark Plug Replacement & Tune-up",
		Hours:         1.5,
		Rate:          rate,
		RequiredQty:   qty,
	}
	op.LineTotal = types.Round2(op.Hours * op.Rate)
	return op, events
}
