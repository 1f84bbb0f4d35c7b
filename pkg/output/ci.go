// Package output renders completed runs for CI systems, so pipelines that
// gate on estimate policy can annotate the pull requests that change catalog
// data or shop settings.
package output

import (
	"fmt"
	"strings"

	"github.com/FixedOPS-AI/fixedops-ai-demo/internal/types"
	"github.com/FixedOPS-AI/fixedops-ai-demo/pkg/diff"
)

// CIAnnotator generates CI-friendly output formats
type CIAnnotator struct {
	ciType string // "github", "gitlab", "generic"
}

func NewCIAnnotator(ciType string) *CIAnnotator {
	return &CIAnnotator{
		ciType: ciType,
	}
}

// AnnotateRun generates CI annotations for a completed estimate run
func (ca *CIAnnotator) AnnotateRun(run *types.PipelineRun) string {
	switch ca.ciType {
	case "github":
		return ca.githubAnnotations(run)
	case "gitlab":
		return ca.gitlabAnnotations(run)
	default:
		return ca.genericAnnotations(run)
	}
}

// AnnotateDiff generates CI annotations for an estimate comparison
func (ca *CIAnnotator) AnnotateDiff(d *diff.RunDiff) string {
	switch ca.ciType {
	case "github":
		return ca.githubDiffAnnotations(d)
	case "gitlab":
		return ca.gitlabDiffAnnotations(d)
	default:
		return ca.genericDiffAnnotations(d)
	}
}

// GitHub Actions format

func (ca *CIAnnotator) githubAnnotations(run *types.PipelineRun) string {
	var output strings.Builder

	// Summary
	output.WriteString(fmt.Sprintf("::notice title=Repair Estimate::Grand total $%.2f (%s)\n",
		run.Summary.GrandTotal, run.Validation.Status))

	// Business rule warnings
	for _, warning := range run.Validation.Warnings {
		output.WriteString(fmt.Sprintf("::warning title=Needs Review::%s\n", warning))
	}

	// Labor breakdown
	for _, op := range run.LaborOps {
		output.WriteString(fmt.Sprintf("::notice title=Labor Operation::%s: %.1f hrs, $%.2f\n",
			op.OperationCode, op.Hours, op.LineTotal))
	}

	// Placeholder parts need a human look before the quote goes out
	if n := genericPartCount(run.PartsLines); n > 0 {
		output.WriteString(fmt.Sprintf("::warning title=Generic Parts::%d part line(s) priced from the generic placeholder - verify before quoting\n", n))
	}

	return output.String()
}

func (ca *CIAnnotator) githubDiffAnnotations(d *diff.RunDiff) string {
	var output strings.Builder

	deltaType := "increased"
	if d.TotalDelta < 0 {
		deltaType = "decreased"
	}

	output.WriteString(fmt.Sprintf("::notice title=Estimate Change::Grand total %s by $%.2f (%.1f%%)\n",
		deltaType, abs(d.TotalDelta), abs(d.PercentChange)))

	// Added operations
	if len(d.AddedOps) > 0 {
		output.WriteString(fmt.Sprintf("::notice title=Operations Added::%d operation(s) added (+$%.2f)\n",
			len(d.AddedOps), d.AddedLaborCost))
	}

	// Removed operations
	if len(d.RemovedOps) > 0 {
		output.WriteString(fmt.Sprintf("::notice title=Operations Removed::%d operation(s) removed (-$%.2f)\n",
			len(d.RemovedOps), abs(d.RemovedLaborCost)))
	}

	// Modified operations
	for _, change := range d.ModifiedOps {
		output.WriteString(fmt.Sprintf("::notice title=Operation Modified::%s: $%.2f -> $%.2f (%+.2f)\n",
			change.OperationCode, change.OldCost, change.Cost, change.Delta))
	}

	if d.StatusChanged {
		output.WriteString(fmt.Sprintf("::warning title=Status Change::Validation went from %s to %s\n",
			d.BeforeStatus, d.AfterStatus))
	}

	return output.String()
}

// GitLab CI format
func (ca *CIAnnotator) gitlabAnnotations(run *types.PipelineRun) string {
	// GitLab uses markdown in merge request comments
	return ca.markdownTable(run)
}

func (ca *CIAnnotator) gitlabDiffAnnotations(d *diff.RunDiff) string {
	return ca.markdownDiffTable(d)
}

// Generic markdown format (works for most CI systems)
func (ca *CIAnnotator) genericAnnotations(run *types.PipelineRun) string {
	return ca.markdownTable(run)
}

func (ca *CIAnnotator) genericDiffAnnotations(d *diff.RunDiff) string {
	return ca.markdownDiffTable(d)
}

// Markdown table generators

func (ca *CIAnnotator) markdownTable(run *types.PipelineRun) string {
	var output strings.Builder

	output.WriteString("## Repair Estimate\n\n")

	// Summary
	output.WriteString(fmt.Sprintf("**Grand Total:** $%.2f  \n", run.Summary.GrandTotal))
	output.WriteString(fmt.Sprintf("**Status:** %s %s  \n", statusEmoji(run.Validation.Status), run.Validation.Status))
	output.WriteString(fmt.Sprintf("**Vehicle:** %s  \n\n", vehicleLabel(run.Profile)))

	// Labor breakdown
	output.WriteString("### Labor\n\n")
	output.WriteString("| Op Code | Description | Hours | Line Total |\n")
	output.WriteString("|---------|-------------|------:|-----------:|\n")
	for _, op := range run.LaborOps {
		output.WriteString(fmt.Sprintf("| %s | %s | %.1f | $%.2f |\n",
			op.OperationCode, op.Description, op.Hours, op.LineTotal))
	}
	output.WriteString("\n")

	// Parts breakdown
	if len(run.PartsLines) > 0 {
		output.WriteString("### Parts\n\n")
		output.WriteString("| Part # | Description | Qty | Line Total |\n")
		output.WriteString("|--------|-------------|----:|-----------:|\n")
		for _, part := range run.PartsLines {
			output.WriteString(fmt.Sprintf("| %s | %s | %d | $%.2f |\n",
				part.PartNumber, part.Description, part.Quantity, part.LineTotal))
		}
		output.WriteString("\n")
	}

	// Totals
	output.WriteString("### Totals\n\n")
	output.WriteString("| Bucket | Amount |\n")
	output.WriteString("|--------|-------:|\n")
	output.WriteString(fmt.Sprintf("| Labor | $%.2f |\n", run.Summary.LaborSubtotal))
	output.WriteString(fmt.Sprintf("| Parts | $%.2f |\n", run.Summary.PartsSubtotal))
	output.WriteString(fmt.Sprintf("| Shop fees | $%.2f |\n", run.Summary.ShopFees))
	output.WriteString(fmt.Sprintf("| Tax | $%.2f |\n", run.Summary.Tax))
	output.WriteString(fmt.Sprintf("| **Grand total** | **$%.2f** |\n\n", run.Summary.GrandTotal))

	// Warnings
	if len(run.Validation.Warnings) > 0 {
		output.WriteString("### ⚠️ Warnings\n\n")
		for _, warning := range run.Validation.Warnings {
			output.WriteString(fmt.Sprintf("- %s\n", warning))
		}
		output.WriteString("\n")
	}

	return output.String()
}

func (ca *CIAnnotator) markdownDiffTable(d *diff.RunDiff) string {
	var output strings.Builder

	output.WriteString("## Estimate Change Analysis\n\n")

	output.WriteString(fmt.Sprintf("**Total Change:** $%.2f -> $%.2f (%+.2f, %.1f%%)  \n\n",
		d.BeforeTotal, d.AfterTotal, d.TotalDelta, d.PercentChange))

	// Labor changes
	if len(d.AddedOps) > 0 || len(d.RemovedOps) > 0 || len(d.ModifiedOps) > 0 {
		output.WriteString("### Labor Changes\n\n")
		output.WriteString("| Change | Operation | Cost Impact |\n")
		output.WriteString("|--------|-----------|------------:|\n")

		for _, op := range d.AddedOps {
			output.WriteString(fmt.Sprintf("| Added | %s | +$%.2f |\n", op.OperationCode, op.Cost))
		}
		for _, op := range d.RemovedOps {
			output.WriteString(fmt.Sprintf("| Removed | %s | -$%.2f |\n", op.OperationCode, op.Cost))
		}
		for _, op := range d.ModifiedOps {
			output.WriteString(fmt.Sprintf("| Modified | %s | %+.2f |\n", op.OperationCode, op.Delta))
		}
		output.WriteString("\n")
	}

	// Bucket deltas in print order
	output.WriteString("### Bucket Breakdown\n\n")
	output.WriteString("| Bucket | Before | After | Change |\n")
	output.WriteString("|--------|-------:|------:|-------:|\n")
	for _, bucket := range []string{"labor", "parts", "fees", "tax"} {
		delta, ok := d.BucketDeltas[bucket]
		if !ok || abs(delta.Delta) < 0.01 {
			continue
		}
		output.WriteString(fmt.Sprintf("| %s | $%.2f | $%.2f | %+.2f (%.1f%%) |\n",
			delta.Bucket, delta.BeforeCost, delta.AfterCost, delta.Delta, delta.PercentChange))
	}
	output.WriteString("\n")

	if d.StatusChanged {
		output.WriteString(fmt.Sprintf("⚠️ Validation status changed: %s -> %s\n", d.BeforeStatus, d.AfterStatus))
	}

	return output.String()
}

// Helper functions

func statusEmoji(status types.ValidationStatus) string {
	if status == types.StatusPass {
		return "✅"
	}
	return "⚠️"
}

func vehicleLabel(profile types.VehicleProfile) string {
	if profile.Year > 0 {
		return fmt.Sprintf("%d %s %s", profile.Year, profile.Make, profile.Model)
	}
	return fmt.Sprintf("%s %s", profile.Make, profile.Model)
}

func genericPartCount(parts []types.PartLine) int {
	n := 0
	for _, part := range parts {
		if part.PartNumber == "GEN-PART" {
			n++
		}
	}
	return n
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
