package diff

import (
	"fmt"
	"sort"

	"github.com/FixedOPS-AI/fixedops-ai-demo/internal/types"
)

// Differ compares two estimate runs line by line, the review tool for "what
// changed when the notes or catalog changed".
type Differ struct{}

func New() *Differ {
	return &Differ{}
}

// Diff generates a comprehensive comparison between two runs.
func (d *Differ) Diff(before, after *types.PipelineRun) *RunDiff {
	diff := &RunDiff{
		BeforeID:    before.Metadata.RunID,
		AfterID:     after.Metadata.RunID,
		BeforeTotal: before.Summary.GrandTotal,
		AfterTotal:  after.Summary.GrandTotal,
		TotalDelta:  after.Summary.GrandTotal - before.Summary.GrandTotal,
	}

	beforeOps := d.buildOpMap(before.LaborOps)
	afterOps := d.buildOpMap(after.LaborOps)

	// Added operations
	for code, op := range afterOps {
		if _, exists := beforeOps[code]; !exists {
			diff.AddedOps = append(diff.AddedOps, LaborChange{
				OperationCode: code,
				Description:   op.Description,
				Hours:         op.Hours,
				Cost:          op.LineTotal,
			})
			diff.AddedLaborCost += op.LineTotal
		}
	}

	// Removed operations
	for code, op := range beforeOps {
		if _, exists := afterOps[code]; !exists {
			diff.RemovedOps = append(diff.RemovedOps, LaborChange{
				OperationCode: code,
				Description:   op.Description,
				Hours:         op.Hours,
				Cost:          op.LineTotal,
			})
			diff.RemovedLaborCost += op.LineTotal
		}
	}

	// Modified operations
	for code, afterOp := range afterOps {
		beforeOp, exists := beforeOps[code]
		if !exists {
			continue
		}
		if beforeOp.LineTotal != afterOp.LineTotal || beforeOp.Hours != afterOp.Hours {
			delta := afterOp.LineTotal - beforeOp.LineTotal
			diff.ModifiedOps = append(diff.ModifiedOps, LaborChange{
				OperationCode: code,
				Description:   afterOp.Description,
				OldHours:      beforeOp.Hours,
				Hours:         afterOp.Hours,
				OldCost:       beforeOp.LineTotal,
				Cost:          afterOp.LineTotal,
				Delta:         delta,
				IsModified:    true,
			})
			diff.ModifiedLaborCost += delta
		}
	}

	sortLaborChanges(diff.AddedOps)
	sortLaborChanges(diff.RemovedOps)
	sortLaborChanges(diff.ModifiedOps)

	diff.Parts = d.DiffParts(before.PartsLines, after.PartsLines)
	diff.BucketDeltas = d.calculateBucketDeltas(before.Summary, after.Summary)

	diff.BeforeStatus = before.Validation.Status
	diff.AfterStatus = after.Validation.Status
	diff.StatusChanged = before.Validation.Status != after.Validation.Status

	if before.Summary.GrandTotal > 0 {
		diff.PercentChange = (diff.TotalDelta / before.Summary.GrandTotal) * 100
	}

	return diff
}

// DiffParts provides the line-by-line parts comparison.
func (d *Differ) DiffParts(before, after []types.PartLine) []PartLineDiff {
	beforeMap := make(map[string]types.PartLine)
	for _, line := range before {
		beforeMap[partKey(line)] = line
	}

	afterMap := make(map[string]types.PartLine)
	for _, line := range after {
		afterMap[partKey(line)] = line
	}

	allKeys := make(map[string]bool)
	for key := range beforeMap {
		allKeys[key] = true
	}
	for key := range afterMap {
		allKeys[key] = true
	}

	keys := make([]string, 0, len(allKeys))
	for key := range allKeys {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var diffs []PartLineDiff
	for _, key := range keys {
		beforeLine, beforeExists := beforeMap[key]
		afterLine, afterExists := afterMap[key]

		var lineDiff PartLineDiff
		lineDiff.Key = key

		if !beforeExists {
			lineDiff.ChangeType = "ADDED"
			lineDiff.After = &afterLine
			lineDiff.Delta = afterLine.LineTotal
		} else if !afterExists {
			lineDiff.ChangeType = "REMOVED"
			lineDiff.Before = &beforeLine
			lineDiff.Delta = -beforeLine.LineTotal
		} else {
			lineDiff.Before = &beforeLine
			lineDiff.After = &afterLine
			lineDiff.Delta = afterLine.LineTotal - beforeLine.LineTotal

			if lineDiff.Delta != 0 || beforeLine.Quantity != afterLine.Quantity {
				lineDiff.ChangeType = "MODIFIED"
			} else {
				lineDiff.ChangeType = "UNCHANGED"
			}
		}

		diffs = append(diffs, lineDiff)
	}

	return diffs
}

// Helper methods

func (d *Differ) buildOpMap(ops []types.LaborOperation) map[string]types.LaborOperation {
	m := make(map[string]types.LaborOperation)
	for _, op := range ops {
		m[op.OperationCode] = op
	}
	return m
}

func (d *Differ) calculateBucketDeltas(before, after types.EstimateSummary) map[string]BucketDelta {
	buckets := map[string][2]float64{
		"labor": {before.LaborSubtotal, after.LaborSubtotal},
		"parts": {before.PartsSubtotal, after.PartsSubtotal},
		"fees":  {before.ShopFees, after.ShopFees},
		"tax":   {before.Tax, after.Tax},
	}

	deltas := make(map[string]BucketDelta)
	for name, pair := range buckets {
		beforeCost, afterCost := pair[0], pair[1]
		delta := afterCost - beforeCost

		percentChange := 0.0
		if beforeCost > 0 {
			percentChange = (delta / beforeCost) * 100
		}

		deltas[name] = BucketDelta{
			Bucket:        name,
			BeforeCost:    beforeCost,
			AfterCost:     afterCost,
			Delta:         delta,
			PercentChange: percentChange,
		}
	}

	return deltas
}

func partKey(line types.PartLine) string {
	return fmt.Sprintf("%s:%s", line.OperationCode, line.PartNumber)
}

func sortLaborChanges(changes []LaborChange) {
	sort.Slice(changes, func(i, j int) bool {
		return changes[i].OperationCode < changes[j].OperationCode
	})
}

// Data structures

type RunDiff struct {
	BeforeID          string                 `json:"before_id"`
	AfterID           string                 `json:"after_id"`
	BeforeTotal       float64                `json:"before_total"`
	AfterTotal        float64                `json:"after_total"`
	TotalDelta        float64                `json:"total_delta"`
	PercentChange     float64                `json:"percent_change"`
	AddedOps          []LaborChange          `json:"added_ops,omitempty"`
	RemovedOps        []LaborChange          `json:"removed_ops,omitempty"`
	ModifiedOps       []LaborChange          `json:"modified_ops,omitempty"`
	AddedLaborCost    float64                `json:"added_labor_cost"`
	RemovedLaborCost  float64                `json:"removed_labor_cost"`
	ModifiedLaborCost float64                `json:"modified_labor_cost"`
	Parts             []PartLineDiff         `json:"parts,omitempty"`
	BucketDeltas      map[string]BucketDelta `json:"bucket_deltas"`
	BeforeStatus      types.ValidationStatus `json:"before_status"`
	AfterStatus       types.ValidationStatus `json:"after_status"`
	StatusChanged     bool                   `json:"status_changed"`
}

type LaborChange struct {
	OperationCode string  `json:"operation_code"`
	Description   string  `json:"description"`
	Hours         float64 `json:"hours"`
	OldHours      float64 `json:"old_hours,omitempty"`
	Cost          float64 `json:"cost"`
	OldCost       float64 `json:"old_cost,omitempty"`
	Delta         float64 `json:"delta,omitempty"`
	IsModified    bool    `json:"is_modified,omitempty"`
}

type BucketDelta struct {
	Bucket        string  `json:"bucket"`
	BeforeCost    float64 `json:"before_cost"`
	AfterCost     float64 `json:"after_cost"`
	Delta         float64 `json:"delta"`
	PercentChange float64 `json:"percent_change"`
}

type PartLineDiff struct {
	Key        string          `json:"key"`
	ChangeType string          `json:"change_type"` // ADDED, REMOVED, MODIFIED, UNCHANGED
	Before     *types.PartLine `json:"before,omitempty"`
	After      *types.PartLine `json:"after,omitempty"`
	Delta      float64         `json:"delta"`
}
