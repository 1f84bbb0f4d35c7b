package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FixedOPS-AI/fixedops-ai-demo/internal/types"
)

func sampleRun(runID string) *types.PipelineRun {
	return &types.PipelineRun{
		Profile: types.VehicleProfile{
			VIN:  "1HGCM82633A123451",
			Make: "HONDA",
		},
		LaborOps: []types.LaborOperation{
			{OperationCode: "RR-BRAKE", Hours: 2.0, Rate: 160.0, LineTotal: 320.00},
		},
		PartsLines: []types.PartLine{
			{OperationCode: "RR-BRAKE", PartNumber: "HON-BP-RR-01", Quantity: 1},
		},
		Summary: types.EstimateSummary{
			LaborSubtotal: 320.00,
			GrandTotal:    612.06,
		},
		Validation: types.ValidationResult{Status: types.StatusPass},
		Trail: []types.Event{
			{Stage: types.StageVINDecoder, Category: "year", Severity: types.SeverityInfo},
			{Stage: types.StageLabor, Category: "keyword_match", Severity: types.SeverityInfo},
			{Stage: types.StageParts, Category: "fallback", Severity: types.SeverityFlagged},
		},
		Metadata: types.RunMetadata{
			RunID:          runID,
			InputHash:      "abc123",
			CatalogVersion: "csv:data/parts_catalog.csv@10",
			EngineVersion:  "1.0.0",
		},
	}
}

func TestLogRunWritesRecord(t *testing.T) {
	trail := New(t.TempDir())
	run := sampleRun("run-001")

	err := trail.LogRun(run, Metadata{Source: "cli"})
	require.NoError(t, err)

	names, err := trail.List()
	require.NoError(t, err)
	require.Len(t, names, 1)
	assert.Contains(t, names[0], "run_run-001_")

	record, err := trail.Load(names[0])
	require.NoError(t, err)
	assert.Equal(t, "run-001", record.RunID)
	assert.Equal(t, "abc123", record.InputHash)
	assert.Equal(t, types.StatusPass, record.Status)
	assert.Equal(t, 612.06, record.GrandTotal)
	assert.Equal(t, 1, record.OperationCount)
	assert.Equal(t, 1, record.PartCount)
	assert.Equal(t, "cli", record.Metadata.Source)
}

func TestLogRunSummarizesTrail(t *testing.T) {
	trail := New(t.TempDir())

	require.NoError(t, trail.LogRun(sampleRun("run-002"), Metadata{Source: "api"}))

	names, err := trail.List()
	require.NoError(t, err)
	record, err := trail.Load(names[0])
	require.NoError(t, err)

	assert.Equal(t, 2, record.TrailSummary.InfoCount)
	assert.Equal(t, 1, record.TrailSummary.FlaggedCount)
	assert.Equal(t, 1, record.TrailSummary.FlaggedByStage["parts"])
}

func TestLoadRunRoundTripsFullRun(t *testing.T) {
	trail := New(t.TempDir())
	run := sampleRun("run-003")

	require.NoError(t, trail.LogRun(run, Metadata{Source: "cli"}))

	loaded, err := trail.LoadRun("run-003")
	require.NoError(t, err)
	assert.Equal(t, run.Profile.VIN, loaded.Profile.VIN)
	assert.Equal(t, run.Summary.GrandTotal, loaded.Summary.GrandTotal)
	require.Len(t, loaded.LaborOps, 1)
	assert.Equal(t, "RR-BRAKE", loaded.LaborOps[0].OperationCode)
}

func TestLoadRunUnknownID(t *testing.T) {
	trail := New(t.TempDir())

	_, err := trail.LoadRun("missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no audit record")
}

func TestListEmptyDirectory(t *testing.T) {
	trail := New(t.TempDir() + "/never-created")

	names, err := trail.List()
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestVerifyDeterminism(t *testing.T) {
	trail := New(t.TempDir())

	run1 := sampleRun("run-a")
	run2 := sampleRun("run-b")

	assert.True(t, trail.VerifyDeterminism(run1, run2))

	run2.Summary.GrandTotal = 700.00
	assert.False(t, trail.VerifyDeterminism(run1, run2))

	run2.Summary.GrandTotal = run1.Summary.GrandTotal
	run2.Metadata.InputHash = "different"
	assert.False(t, trail.VerifyDeterminism(run1, run2))
}
