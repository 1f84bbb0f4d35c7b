// Package audit persists estimate run records for traceability
package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/FixedOPS-AI/fixedops-ai-demo/internal/types"
)

// Trail manages the on-disk audit log, one JSON record per run.
type Trail struct {
	auditDir string
}

func New(auditDir string) *Trail {
	return &Trail{
		auditDir: auditDir,
	}
}

// LogRun creates an audit record for a completed run.
func (t *Trail) LogRun(run *types.PipelineRun, metadata Metadata) error {
	record := Record{
		Timestamp:      time.Now().UTC(),
		RunID:          run.Metadata.RunID,
		InputHash:      run.Metadata.InputHash,
		CatalogVersion: run.Metadata.CatalogVersion,
		EngineVersion:  run.Metadata.EngineVersion,
		VIN:            run.Profile.VIN,
		Make:           run.Profile.Make,
		Status:         run.Validation.Status,
		GrandTotal:     run.Summary.GrandTotal,
		OperationCount: len(run.LaborOps),
		PartCount:      len(run.PartsLines),
		Warnings:       run.Validation.Warnings,
		TrailSummary:   t.summarizeTrail(run.Trail),
		Metadata:       metadata,
		Run:            *run,
	}

	return t.writeRecord(record)
}

func (t *Trail) writeRecord(record Record) error {
	if err := os.MkdirAll(t.auditDir, 0755); err != nil {
		return fmt.Errorf("failed to create audit directory: %w", err)
	}

	filename := fmt.Sprintf("run_%s_%s.json",
		record.RunID,
		record.Timestamp.Format("20060102_150405"),
	)
	path := filepath.Join(t.auditDir, filename)

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create audit file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(record); err != nil {
		return fmt.Errorf("failed to write audit record: %w", err)
	}

	log.WithField("file", path).Info("Audit record written")
	return nil
}

// summarizeTrail counts events by severity and flags by stage, a quick read
// on how noisy the run was without replaying the whole trail.
func (t *Trail) summarizeTrail(trail []types.Event) TrailSummary {
	summary := TrailSummary{FlaggedByStage: map[string]int{}}

	for _, event := range trail {
		switch event.Severity {
		case types.SeverityInfo:
			summary.InfoCount++
		case types.SeverityFlagged:
			summary.FlaggedCount++
			summary.FlaggedByStage[string(event.Stage)]++
		}
	}

	return summary
}

// List returns the audit record filenames, newest last.
func (t *Trail) List() ([]string, error) {
	entries, err := os.ReadDir(t.auditDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read audit directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".json") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Load reads one audit record by filename.
func (t *Trail) Load(filename string) (*Record, error) {
	data, err := os.ReadFile(filepath.Join(t.auditDir, filename))
	if err != nil {
		return nil, fmt.Errorf("failed to read audit record: %w", err)
	}

	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to parse audit record: %w", err)
	}
	return &record, nil
}

// Find locates the record for a run ID. With multiple records for the same
// ID the newest wins.
func (t *Trail) Find(runID string) (*Record, error) {
	names, err := t.List()
	if err != nil {
		return nil, err
	}

	prefix := "run_" + runID + "_"
	for i := len(names) - 1; i >= 0; i-- {
		if strings.HasPrefix(names[i], prefix) {
			return t.Load(names[i])
		}
	}
	return nil, fmt.Errorf("no audit record for run %s", runID)
}

// LoadRun finds the stored run for a run ID.
func (t *Trail) LoadRun(runID string) (*types.PipelineRun, error) {
	record, err := t.Find(runID)
	if err != nil {
		return nil, err
	}
	return &record.Run, nil
}

// VerifyDeterminism checks that two runs with the same input hash and
// catalog version produced the same money.
func (t *Trail) VerifyDeterminism(run1, run2 *types.PipelineRun) bool {
	if run1.Metadata.InputHash != run2.Metadata.InputHash {
		return false // Different inputs
	}

	return run1.Summary.GrandTotal == run2.Summary.GrandTotal &&
		run1.Metadata.CatalogVersion == run2.Metadata.CatalogVersion
}

// Data structures

type Record struct {
	Timestamp      time.Time              `json:"timestamp"`
	RunID          string                 `json:"run_id"`
	InputHash      string                 `json:"input_hash"`
	CatalogVersion string                 `json:"catalog_version"`
	EngineVersion  string                 `json:"engine_version"`
	VIN            string                 `json:"vin,omitempty"`
	Make           string                 `json:"make"`
	Status         types.ValidationStatus `json:"status"`
	GrandTotal     float64                `json:"grand_total"`
	OperationCount int                    `json:"operation_count"`
	PartCount      int                    `json:"part_count"`
	Warnings       []string               `json:"warnings,omitempty"`
	TrailSummary   TrailSummary           `json:"trail_summary"`
	Metadata       Metadata               `json:"metadata"`
	Run            types.PipelineRun      `json:"run"`
}

type Metadata struct {
	User           string            `json:"user,omitempty"`
	Source         string            `json:"source"` // "cli", "api"
	AdditionalTags map[string]string `json:"additional_tags,omitempty"`
}

type TrailSummary struct {
	InfoCount      int            `json:"info_count"`
	FlaggedCount   int            `json:"flagged_count"`
	FlaggedByStage map[string]int `json:"flagged_by_stage"`
}
