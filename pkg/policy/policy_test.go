package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FixedOPS-AI/fixedops-ai-demo/internal/types"
)

func cleanSummary() types.EstimateSummary {
	return types.EstimateSummary{
		LaborSubtotal: 320.00,
		PartsSubtotal: 218.49,
		ShopFees:      26.92,
		Tax:           46.65,
		GrandTotal:    612.06,
	}
}

func TestValidatePassesCleanEstimate(t *testing.T) {
	engine := New(0)

	result, events := engine.Validate(cleanSummary(), nil)

	assert.Equal(t, types.StatusPass, result.Status)
	assert.Empty(t, result.Warnings)
	require.NotEmpty(t, events)
	assert.Equal(t, types.SeverityInfo, events[len(events)-1].Severity)
}

func TestValidateFlagsZeroShopSupplies(t *testing.T) {
	engine := New(0)
	summary := cleanSummary()
	summary.ShopFees = 0.00

	result, _ := engine.Validate(summary, nil)

	assert.Equal(t, types.StatusReview, result.Status)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "Profit Alert: Shop Supplies are set to $0.00.", result.Warnings[0])
}

func TestValidateFlagsZeroSalesTax(t *testing.T) {
	engine := New(0)
	summary := cleanSummary()
	summary.Tax = 0.00

	result, _ := engine.Validate(summary, nil)

	assert.Equal(t, types.StatusReview, result.Status)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "Compliance Alert: Sales Tax is currently $0.00.", result.Warnings[0])
}

func TestValidateSkipsRevenueRulesWithoutLabor(t *testing.T) {
	engine := New(0)
	summary := types.EstimateSummary{}

	result, _ := engine.Validate(summary, nil)

	assert.Equal(t, types.StatusPass, result.Status)
	assert.Empty(t, result.Warnings)
}

func TestValidateFlagsEstimateAboveCeiling(t *testing.T) {
	engine := New(0)
	summary := cleanSummary()
	summary.GrandTotal = 10000.00

	result, _ := engine.Validate(summary, nil)

	assert.Equal(t, types.StatusReview, result.Status)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "Manager Approval Required: Estimate ($10000.00) exceeds $4000.00 limit.", result.Warnings[0])
}

func TestValidateHonorsCustomCeiling(t *testing.T) {
	engine := New(500.00)
	summary := cleanSummary()

	result, _ := engine.Validate(summary, nil)

	assert.Equal(t, types.StatusReview, result.Status)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "exceeds $500.00 limit")
}

func TestValidateFlagsHighValueTire(t *testing.T) {
	engine := New(0)
	parts := []types.PartLine{
		{PartNumber: "FRD-TIRE-275", Description: "275/65R18 All-Terrain Tire", UnitPrice: 245.00},
	}

	result, _ := engine.Validate(cleanSummary(), parts)

	assert.Equal(t, types.StatusReview, result.Status)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "Margin Check: High-value tire (FRD-TIRE-275) detected.", result.Warnings[0])
}

func TestValidateIgnoresCheapTire(t *testing.T) {
	engine := New(0)
	parts := []types.PartLine{
		{PartNumber: "HON-TIRE-205", Description: "205/55R16 Touring Tire", UnitPrice: 129.00},
	}

	result, _ := engine.Validate(cleanSummary(), parts)

	assert.Equal(t, types.StatusPass, result.Status)
	assert.Empty(t, result.Warnings)
}

func TestValidateIgnoresExpensiveNonTireParts(t *testing.T) {
	engine := New(0)
	parts := []types.PartLine{
		{PartNumber: "FRD-SUSP-KIT", Description: "Front Suspension Kit", UnitPrice: 389.99},
	}

	result, _ := engine.Validate(cleanSummary(), parts)

	assert.Equal(t, types.StatusPass, result.Status)
}

func TestValidateAccumulatesAllWarnings(t *testing.T) {
	engine := New(0)
	summary := types.EstimateSummary{
		LaborSubtotal: 3200.00,
		PartsSubtotal: 2000.00,
		ShopFees:      0.00,
		Tax:           0.00,
		GrandTotal:    5200.00,
	}
	parts := []types.PartLine{
		{PartNumber: "FRD-TIRE-275", UnitPrice: 245.00},
	}

	result, events := engine.Validate(summary, parts)

	assert.Equal(t, types.StatusReview, result.Status)
	assert.Len(t, result.Warnings, 4)

	flagged := 0
	for _, ev := range events {
		if ev.Severity == types.SeverityFlagged {
			flagged++
		}
	}
	// Four rule hits plus the flagged completion event.
	assert.Equal(t, 5, flagged)
}

func TestValidateStatusMatchesWarnings(t *testing.T) {
	engine := New(0)

	tests := []struct {
		name    string
		summary types.EstimateSummary
		want    types.ValidationStatus
	}{
		{"clean", cleanSummary(), types.StatusPass},
		{"over ceiling", types.EstimateSummary{GrandTotal: 4000.01}, types.StatusReview},
		{"exactly at ceiling", types.EstimateSummary{GrandTotal: 4000.00}, types.StatusPass},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, _ := engine.Validate(tt.summary, nil)
			assert.Equal(t, tt.want, result.Status)
			assert.Equal(t, tt.want == types.StatusReview, len(result.Warnings) > 0)
		})
	}
}
