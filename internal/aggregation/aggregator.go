// Package aggregation rolls labor and part lines up into an estimate summary
package aggregation

import (
	"fmt"

	"github.com/FixedOPS-AI/fixedops-ai-demo/internal/types"
)

// FeeMode selects how shop fees are computed.
type FeeMode string

const (
	FeePercent FeeMode = "PERCENT" // fee = subtotal × Value
	FeeFlat    FeeMode = "FLAT"    // fee = Value dollars
)

// FeePolicy configures shop fees. For PERCENT, Value is a fraction of the
// combined labor+parts subtotal (0.05 means 5%); for FLAT it is dollars.
type FeePolicy struct {
	Mode  FeeMode `json:"mode"`
	Value float64 `json:"value"`
}

// Totaler computes the money buckets for a run. It is stateless: the same
// inputs always produce the same summary.
type Totaler struct{}

// NewTotaler creates a totaler
func NewTotaler() *Totaler {
	return &Totaler{}
}

// Total aggregates labor and parts into subtotals, fees, tax, and the grand
// total. Each intermediate amount is rounded to cents before it feeds the
// next step, so the arithmetic matches a printed estimate line by line.
func (t *Totaler) Total(ops []types.LaborOperation, parts []types.PartLine, fees FeePolicy, taxPct float64) (types.EstimateSummary, []types.Event) {
	var laborSum, partsSum float64
	for _, op := range ops {
		laborSum += op.LineTotal
	}
	for _, p := range parts {
		partsSum += p.LineTotal
	}

	summary := types.EstimateSummary{
		LaborSubtotal: types.Round2(laborSum),
		PartsSubtotal: types.Round2(partsSum),
	}
	subtotal := types.Round2(summary.LaborSubtotal + summary.PartsSubtotal)

	var feeNote string
	switch fees.Mode {
	case FeeFlat:
		summary.ShopFees = types.Round2(fees.Value)
		feeNote = "flat"
	default:
		summary.ShopFees = types.Round2(subtotal * fees.Value)
		feeNote = fmt.Sprintf("%.1f%% of subtotal", fees.Value*100)
	}

	summary.Tax = types.Round2((subtotal + summary.ShopFees) * taxPct)
	summary.GrandTotal = types.Round2(subtotal + summary.ShopFees + summary.Tax)

	events := []types.Event{
		{
			Stage:    types.StageTotals,
			Category: "subtotals",
			Message: fmt.Sprintf("Labor subtotal $%.2f (%d ops), parts subtotal $%.2f (%d lines)",
				summary.LaborSubtotal, len(ops), summary.PartsSubtotal, len(parts)),
			Severity: types.SeverityInfo,
		},
		{
			Stage:    types.StageTotals,
			Category: "fees_tax",
			Message: fmt.Sprintf("Shop fees $%.2f (%s), tax $%.2f at %.2f%%",
				summary.ShopFees, feeNote, summary.Tax, taxPct*100),
			Severity: types.SeverityInfo,
		},
		{
			Stage:    types.StageTotals,
			Category: "grand_total",
			Message:  fmt.Sprintf("Grand total $%.2f", summary.GrandTotal),
			Severity: types.SeverityInfo,
		},
	}

	return summary, events
}
