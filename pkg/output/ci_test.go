package output

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/FixedOPS-AI/fixedops-ai-demo/internal/types"
	"github.com/FixedOPS-AI/fixedops-ai-demo/pkg/diff"
)

func sampleRun() *types.PipelineRun {
	return &types.PipelineRun{
		Profile: types.VehicleProfile{Make: "HONDA", Model: "CIVIC", Year: 2003},
		LaborOps: []types.LaborOperation{
			{OperationCode: "RR-BRAKE", Description: "Replace rear brake pads and rotors", Hours: 2.0, Rate: 160, LineTotal: 320.00},
		},
		PartsLines: []types.PartLine{
			{OperationCode: "RR-BRAKE", PartNumber: "HON-BP-220", Description: "Rear Brake Pad Set (Ceramic)", Quantity: 1, UnitPrice: 89.99, LineTotal: 89.99},
			{OperationCode: "TIRE-SET", PartNumber: "GEN-PART", Description: "Generic Part for TIRE-SET", Quantity: 4, UnitPrice: 50.00, LineTotal: 200.00},
		},
		Summary: types.EstimateSummary{LaborSubtotal: 320.00, PartsSubtotal: 289.99, ShopFees: 30.50, GrandTotal: 640.49},
		Validation: types.ValidationResult{
			Status:   types.StatusReview,
			Warnings: []string{"Compliance Alert: Sales Tax is currently $0.00."},
		},
	}
}

func TestGithubRunAnnotations(t *testing.T) {
	out := NewCIAnnotator("github").AnnotateRun(sampleRun())

	assert.Contains(t, out, "::notice title=Repair Estimate::Grand total $640.49 (REVIEW)",
		"Summary annotation missing")
	assert.Contains(t, out, "::warning title=Needs Review::Compliance Alert",
		"Warning annotation missing")
	assert.Contains(t, out, "::notice title=Labor Operation::RR-BRAKE: 2.0 hrs, $320.00",
		"Labor annotation missing")
	assert.Contains(t, out, "::warning title=Generic Parts::1 part line(s)",
		"Generic part annotation missing")
}

func TestMarkdownRunAnnotations(t *testing.T) {
	out := NewCIAnnotator("markdown").AnnotateRun(sampleRun())

	assert.Contains(t, out, "## Repair Estimate", "Markdown header missing")
	assert.Contains(t, out, "**Vehicle:** 2003 HONDA CIVIC", "Vehicle label missing")
	assert.Contains(t, out, "| RR-BRAKE |", "Labor row missing")
	assert.Contains(t, out, "| GEN-PART |", "Parts row missing")
	assert.Contains(t, out, "⚠️ REVIEW", "Status line missing")
	assert.Contains(t, out, "- Compliance Alert: Sales Tax is currently $0.00.",
		"Warning bullet missing")
}

func TestGithubDiffAnnotations(t *testing.T) {
	d := &diff.RunDiff{
		BeforeTotal:    565.41,
		AfterTotal:     2212.86,
		TotalDelta:     1647.45,
		PercentChange:  291.4,
		AddedOps:       []diff.LaborChange{{OperationCode: "ALT-REPL", Cost: 400.00}},
		AddedLaborCost: 400.00,
		BeforeStatus:   types.StatusReview,
		AfterStatus:    types.StatusReview,
	}

	out := NewCIAnnotator("github").AnnotateDiff(d)

	assert.Contains(t, out, "Grand total increased by $1647.45 (291.4%)",
		"Delta annotation missing")
	assert.Contains(t, out, "1 operation(s) added (+$400.00)",
		"Added ops annotation missing")
	assert.NotContains(t, out, "Status Change",
		"Unchanged status should not be annotated")
}

func TestMarkdownDiffAnnotations(t *testing.T) {
	d := &diff.RunDiff{
		BeforeTotal:   538.49,
		AfterTotal:    565.41,
		TotalDelta:    26.92,
		PercentChange: 5.0,
		BucketDeltas: map[string]diff.BucketDelta{
			"labor": {Bucket: "labor", BeforeCost: 320.00, AfterCost: 320.00},
			"fees":  {Bucket: "fees", BeforeCost: 0, AfterCost: 26.92, Delta: 26.92},
		},
		BeforeStatus:  types.StatusReview,
		AfterStatus:   types.StatusPass,
		StatusChanged: true,
	}

	out := NewCIAnnotator("gitlab").AnnotateDiff(d)

	assert.Contains(t, out, "$538.49 -> $565.41", "Totals line missing")
	assert.Contains(t, out, "| fees | $0.00 | $26.92 |", "Fees bucket row missing")
	assert.NotContains(t, out, "| labor |", "Unchanged bucket should be skipped")
	assert.Contains(t, out, "Validation status changed: REVIEW -> PASS",
		"Status change footer missing")
}
