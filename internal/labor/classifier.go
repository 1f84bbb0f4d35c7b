// Package labor provides the matcher registry that turns technician notes
// into standardized labor operations
package labor

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/FixedOPS-AI/fixedops-ai-demo/internal/labor/matchers"
	"github.com/FixedOPS-AI/fixedops-ai-demo/internal/types"
)

// GeneralDiagCode is the fallback operation when no symptom group matches.
const GeneralDiagCode = "GEN-DIAG"

// SymptomMatcher interface for symptom-specific labor matchers
type SymptomMatcher interface {
	// OperationCode returns the flat-rate operation code (e.g., "RR-BRAKE")
	OperationCode() string
	// Match reports the first keyword hit in the lowercased notes
	Match(notes string) (string, bool)
	// Operation builds the labor operation for a matched symptom, sizing
	// the part quantity from the vehicle profile
	Operation(profile types.VehicleProfile, rate float64) (types.LaborOperation, []types.Event)
}

// Classifier holds all registered symptom matchers
type Classifier struct {
	matchers []SymptomMatcher
}

// NewClassifier creates a classifier with all matchers registered. Matchers
// run in registration order, so the emitted operations have a stable order
// for any given input.
func NewClassifier() *Classifier {
	c := &Classifier{matchers: []SymptomMatcher{}}

	c.Register(matchers.NewBrakeMatcher())
	c.Register(matchers.NewChargingMatcher())
	c.Register(matchers.NewTireMatcher())
	c.Register(matchers.NewSuspensionMatcher())
	c.Register(matchers.NewCoolingMatcher())
	c.Register(matchers.NewOilLeakMatcher())
	c.Register(matchers.NewTuneUpMatcher())

	log.WithField("matchers", len(c.matchers)).Debug("registered symptom matchers")
	return c
}

// Register adds a matcher to the classifier
func (c *Classifier) Register(m SymptomMatcher) {
	c.matchers = append(c.matchers, m)
}

// Classify maps normalized notes to labor operations. Groups are independent
// and non-exclusive: one note can trigger several operations, but each group
// contributes at most one line per run. When nothing matches, a single
// general-diagnosis line is emitted so every run produces an estimate.
func (c *Classifier) Classify(decodedNotes string, rate float64, profile types.VehicleProfile) ([]types.LaborOperation, []types.Event) {
	events := []types.Event{}
	text := strings.ToLower(decodedNotes)

	ops := []types.LaborOperation{}
	for _, m := range c.matchers {
		keyword, ok := m.Match(text)
		if !ok {
			continue
		}

		op, opEvents := m.Operation(profile, rate)
		ops = append(ops, op)
		events = append(events, types.Event{
			Stage:    types.StageLabor,
			Category: "keyword_match",
			Message: fmt.Sprintf("Matched %q: added %s %q, %.1f hrs at $%.2f/hr = $%.2f, parts qty %d",
				keyword, op.OperationCode, op.Description, op.Hours, op.Rate, op.LineTotal, op.RequiredQty),
			Severity: types.SeverityInfo,
		})
		events = append(events, opEvents...)
	}

	if len(ops) == 0 {
		diag := types.LaborOperation{
			OperationCode: GeneralDiagCode,
			Description:   "General Diagnosis (No specific system matched)",
			Hours:         1.0,
			Rate:          rate,
			RequiredQty:   0,
		}
		diag.LineTotal = types.Round2(diag.Hours * diag.Rate)
		ops = append(ops, diag)
		events = append(events, types.Event{
			Stage:    types.StageLabor,
			Category: "fallback",
			Message:  "No specific concerns matched; added general diagnostic line (1.0 hr)",
			Severity: types.SeverityFlagged,
		})
	}

	return ops, events
}
