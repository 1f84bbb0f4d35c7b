package explainability

import (
	"fmt"
	"strings"

	"github.com/FixedOPS-AI/fixedops-ai-demo/internal/types"
)

// Explainer turns a pipeline run into a what/why/how narrative a service
// advisor can read back to a customer.
type Explainer struct{}

func New() *Explainer {
	return &Explainer{}
}

// ExplainRun generates the full explanation for one run.
func (e *Explainer) ExplainRun(run *types.PipelineRun) *RunExplanation {
	explanation := &RunExplanation{
		RunID:          run.Metadata.RunID,
		InputHash:      run.Metadata.InputHash,
		CatalogVersion: run.Metadata.CatalogVersion,
		Status:         run.Validation.Status,
		GrandTotal:     run.Summary.GrandTotal,
		OperationCount: len(run.LaborOps),
		PartCount:      len(run.PartsLines),
	}

	explanation.Vehicle = e.explainVehicle(run.Profile)

	for i := range run.LaborOps {
		explanation.LaborOps = append(explanation.LaborOps,
			e.ExplainLaborOp(&run.LaborOps[i], run.PartsLines, run.Trail))
	}

	explanation.Totals = e.explainTotals(run)
	explanation.Validation = e.explainValidation(run.Validation)
	explanation.Timeline = e.buildTimeline(run.Trail)

	return explanation
}

// ExplainLaborOp explains a single labor line and the parts priced under it.
func (e *Explainer) ExplainLaborOp(op *types.LaborOperation, parts []types.PartLine, trail []types.Event) LaborOpExplanation {
	explanation := LaborOpExplanation{
		OperationCode: op.OperationCode,
		Description:   op.Description,

		// WHAT was quoted
		What: fmt.Sprintf("%s: %.1f hours of labor", op.Description, op.Hours),

		// WHY this line exists
		Why: e.matchReason(trail, op.OperationCode),

		// HOW the charge was computed
		How: fmt.Sprintf("Calculation: %.1f hours × $%.2f/hour = $%.2f", op.Hours, op.Rate, op.LineTotal),

		Breakdown: LaborBreakdown{
			Hours:     op.Hours,
			Rate:      op.Rate,
			LineTotal: op.LineTotal,
			Formula:   fmt.Sprintf("%.1f h × $%.2f/h", op.Hours, op.Rate),
		},
	}

	for _, part := range parts {
		if part.OperationCode != op.OperationCode {
			continue
		}
		explanation.Parts = append(explanation.Parts, PartExplanation{
			PartNumber: part.PartNumber,
			What:       fmt.Sprintf("%d × %s", part.Quantity, part.Description),
			Source:     fmt.Sprintf("%s (%s)", part.StockSource, part.Availability),
			How:        fmt.Sprintf("%d × $%.2f = $%.2f", part.Quantity, part.UnitPrice, part.LineTotal),
			Generic:    part.PartNumber == "GEN-PART",
		})
	}

	return explanation
}

// Private helper methods

func (e *Explainer) explainVehicle(profile types.VehicleProfile) VehicleExplanation {
	explanation := VehicleExplanation{
		Make:       profile.Make,
		Model:      profile.Model,
		Year:       profile.Year,
		Confidence: profile.Confidence,
	}

	switch {
	case profile.VIN == "":
		explanation.Summary = fmt.Sprintf("No VIN supplied; estimating against the shop default make %s", profile.Make)
	case profile.Confidence > 0:
		explanation.Summary = fmt.Sprintf("VIN %s decoded to a %d %s %s (%s, %s)",
			profile.VIN, profile.Year, profile.Make, profile.Model, profile.Engine, profile.Drivetrain)
	default:
		explanation.Summary = fmt.Sprintf("VIN %s could not be matched to a known manufacturer", profile.VIN)
	}

	return explanation
}

// matchReason finds the labor-stage trail event that created a line. Falls
// back to a generic sentence when the trail was not kept.
func (e *Explainer) matchReason(trail []types.Event, opCode string) string {
	for _, event := range trail {
		if event.Stage != types.StageLabor {
			continue
		}
		switch event.Category {
		case "keyword_match":
			if strings.Contains(event.Message, "added "+opCode+" ") {
				return event.Message
			}
		case "fallback":
			if opCode == "GEN-DIAG" {
				return event.Message
			}
		}
	}
	return "Technician notes matched this symptom group"
}

func (e *Explainer) explainTotals(run *types.PipelineRun) TotalsExplanation {
	s := run.Summary
	return TotalsExplanation{
		LaborSubtotal: s.LaborSubtotal,
		PartsSubtotal: s.PartsSubtotal,
		ShopFees:      s.ShopFees,
		Tax:           s.Tax,
		GrandTotal:    s.GrandTotal,
		Steps: []string{
			fmt.Sprintf("Labor subtotal: $%.2f across %d operation(s)", s.LaborSubtotal, len(run.LaborOps)),
			fmt.Sprintf("Parts subtotal: $%.2f across %d line(s)", s.PartsSubtotal, len(run.PartsLines)),
			fmt.Sprintf("Shop fees: $%.2f", s.ShopFees),
			fmt.Sprintf("Tax on subtotal plus fees: $%.2f", s.Tax),
			fmt.Sprintf("Grand total: $%.2f + $%.2f + $%.2f + $%.2f = $%.2f",
				s.LaborSubtotal, s.PartsSubtotal, s.ShopFees, s.Tax, s.GrandTotal),
		},
	}
}

func (e *Explainer) explainValidation(result types.ValidationResult) ValidationExplanation {
	explanation := ValidationExplanation{
		Status:   result.Status,
		Warnings: result.Warnings,
	}

	if result.Status == types.StatusPass {
		explanation.Outcome = "Estimate passed every business rule and can be quoted as-is"
	} else {
		explanation.Outcome = fmt.Sprintf(
			"Estimate needs a service advisor: %d business rule(s) flagged it", len(result.Warnings))
	}

	return explanation
}

// buildTimeline groups trail events into pipeline order, keeping flagged
// messages verbatim.
func (e *Explainer) buildTimeline(trail []types.Event) []StageActivity {
	order := []types.Stage{
		types.StageVINDecoder,
		types.StageNotes,
		types.StageLabor,
		types.StageParts,
		types.StageTotals,
		types.StageValidation,
	}

	byStage := map[types.Stage]*StageActivity{}
	for _, event := range trail {
		activity, ok := byStage[event.Stage]
		if !ok {
			activity = &StageActivity{Stage: string(event.Stage)}
			byStage[event.Stage] = activity
		}
		activity.EventCount++
		if event.Severity == types.SeverityFlagged {
			activity.Flagged = append(activity.Flagged, event.Message)
		}
	}

	var timeline []StageActivity
	for _, stage := range order {
		if activity, ok := byStage[stage]; ok {
			timeline = append(timeline, *activity)
		}
	}
	return timeline
}

// Data structures for explanations

type RunExplanation struct {
	RunID          string                 `json:"run_id"`
	InputHash      string                 `json:"input_hash"`
	CatalogVersion string                 `json:"catalog_version"`
	Status         types.ValidationStatus `json:"status"`
	GrandTotal     float64                `json:"grand_total"`
	OperationCount int                    `json:"operation_count"`
	PartCount      int                    `json:"part_count"`
	Vehicle        VehicleExplanation     `json:"vehicle"`
	LaborOps       []LaborOpExplanation   `json:"labor_ops"`
	Totals         TotalsExplanation      `json:"totals"`
	Validation     ValidationExplanation  `json:"validation"`
	Timeline       []StageActivity        `json:"timeline"`
}

type VehicleExplanation struct {
	Make       string  `json:"make"`
	Model      string  `json:"model"`
	Year       int     `json:"year"`
	Confidence float64 `json:"confidence"`
	Summary    string  `json:"summary"`
}

type LaborOpExplanation struct {
	OperationCode string            `json:"operation_code"`
	Description   string            `json:"description"`
	What          string            `json:"what"`
	Why           string            `json:"why"`
	How           string            `json:"how"`
	Breakdown     LaborBreakdown    `json:"breakdown"`
	Parts         []PartExplanation `json:"parts,omitempty"`
}

type LaborBreakdown struct {
	Hours     float64 `json:"hours"`
	Rate      float64 `json:"rate"`
	LineTotal float64 `json:"line_total"`
	Formula   string  `json:"formula"`
}

type PartExplanation struct {
	PartNumber string `json:"part_number"`
	What       string `json:"what"`
	Source     string `json:"source"`
	How        string `json:"how"`
	Generic    bool   `json:"generic"`
}

type TotalsExplanation struct {
	LaborSubtotal float64  `json:"labor_subtotal"`
	PartsSubtotal float64  `json:"parts_subtotal"`
	ShopFees      float64  `json:"shop_fees"`
	Tax           float64  `json:"tax"`
	GrandTotal    float64  `json:"grand_total"`
	Steps         []string `json:"steps"`
}

type ValidationExplanation struct {
	Status   types.ValidationStatus `json:"status"`
	Outcome  string                 `json:"outcome"`
	Warnings []string               `json:"warnings,omitempty"`
}

type StageActivity struct {
	Stage      string   `json:"stage"`
	EventCount int      `json:"event_count"`
	Flagged    []string `json:"flagged,omitempty"`
}
