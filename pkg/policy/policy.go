// Package policy applies shop business rules to a computed estimate and
// decides whether it can be auto-approved
package policy

import (
	"fmt"
	"strings"

	"github.com/FixedOPS-AI/fixedops-ai-demo/internal/types"
)

// DefaultMaxAutoApproval is the grand-total ceiling above which an estimate
// always goes to a manager.
const DefaultMaxAutoApproval = 4000.00

// Engine evaluates estimates against the shop's business rules. The rules
// are fixed; only the approval ceiling is configurable.
type Engine struct {
	maxAutoApproval float64
}

// New creates a validation engine. A non-positive ceiling falls back to the
// default.
func New(maxAutoApproval float64) *Engine {
	if maxAutoApproval <= 0 {
		maxAutoApproval = DefaultMaxAutoApproval
	}
	return &Engine{maxAutoApproval: maxAutoApproval}
}

// MaxAutoApproval returns the configured approval ceiling.
func (e *Engine) MaxAutoApproval() float64 {
	return e.maxAutoApproval
}

// Validate runs every rule against the estimate. Each rule fires
// independently; a single warning is enough to force REVIEW, and a clean run
// is a PASS. Warnings are data for the caller, never errors.
func (e *Engine) Validate(summary types.EstimateSummary, parts []types.PartLine) (types.ValidationResult, []types.Event) {
	warnings := []string{}
	events := []types.Event{
		{
			Stage:    types.StageValidation,
			Category: "start",
			Message:  "Starting compliance check",
			Severity: types.SeverityInfo,
		},
	}

	flag := func(category, msg string) {
		warnings = append(warnings, msg)
		events = append(events, types.Event{
			Stage:    types.StageValidation,
			Category: category,
			Message:  msg,
			Severity: types.SeverityFlagged,
		})
	}

	// Missed revenue: labor was quoted but fees or tax came out at zero.
	if summary.LaborSubtotal > 0 {
		if summary.ShopFees <= 0.01 {
			flag("shop_supplies", "Profit Alert: Shop Supplies are set to $0.00.")
		}
		if summary.Tax <= 0.01 {
			flag("sales_tax", "Compliance Alert: Sales Tax is currently $0.00.")
		}
	}

	// Big-ticket estimates always go to a manager.
	if summary.GrandTotal > e.maxAutoApproval {
		flag("approval_ceiling", fmt.Sprintf(
			"Manager Approval Required: Estimate ($%.2f) exceeds $%.2f limit.",
			summary.GrandTotal, e.maxAutoApproval))
	}

	// High-value tires get a margin check before quoting.
	for _, part := range parts {
		if strings.Contains(part.PartNumber, "TIRE") && part.UnitPrice > 200 {
			flag("tire_margin", fmt.Sprintf(
				"Margin Check: High-value tire (%s) detected.", part.PartNumber))
		}
	}

	result := types.ValidationResult{Status: types.StatusPass, Warnings: warnings}
	if len(warnings) > 0 {
		result.Status = types.StatusReview
		events = append(events, types.Event{
			Stage:    types.StageValidation,
			Category: "complete",
			Message:  fmt.Sprintf("Validation complete: found %d issue(s), estimate needs review", len(warnings)),
			Severity: types.SeverityFlagged,
		})
	} else {
		events = append(events, types.Event{
			Stage:    types.StageValidation,
			Category: "complete",
			Message:  "Validation complete: estimate looks good",
			Severity: types.SeverityInfo,
		})
	}

	return result, events
}
