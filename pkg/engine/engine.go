// Package engine wires the pipeline stages together and runs estimates
package engine

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/FixedOPS-AI/fixedops-ai-demo/internal/aggregation"
	"github.com/FixedOPS-AI/fixedops-ai-demo/internal/catalog"
	"github.com/FixedOPS-AI/fixedops-ai-demo/internal/labor"
	"github.com/FixedOPS-AI/fixedops-ai-demo/internal/notes"
	"github.com/FixedOPS-AI/fixedops-ai-demo/internal/types"
	"github.com/FixedOPS-AI/fixedops-ai-demo/internal/vin"
	"github.com/FixedOPS-AI/fixedops-ai-demo/pkg/audit"
	"github.com/FixedOPS-AI/fixedops-ai-demo/pkg/config"
	"github.com/FixedOPS-AI/fixedops-ai-demo/pkg/database"
	"github.com/FixedOPS-AI/fixedops-ai-demo/pkg/policy"
)

// EngineVersion is stamped into every run's metadata.
const EngineVersion = "1.0.0"

// Engine orchestrates the full repair estimation pipeline. Every stage is a
// constructor-injected component; the engine owns their lifetimes.
type Engine struct {
	cfg        *config.Config
	decoder    *vin.Decoder
	classifier *labor.Classifier
	store      *catalog.Store
	resolver   *catalog.Resolver
	totaler    *aggregation.Totaler
	validator  *policy.Engine
	auditTrail *audit.Trail
	db         *sql.DB
}

// New builds an engine from configuration. The catalog comes from Postgres
// when a DSN is configured, otherwise from the CSV file in the data
// directory.
func New(cfg *config.Config) (*Engine, error) {
	decoder, err := vin.New(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("building VIN decoder: %w", err)
	}
	return newEngine(cfg, decoder)
}

// NewSeeded builds an engine whose VIN sampler is fixed, so decode output is
// reproducible run to run.
func NewSeeded(cfg *config.Config, seed int64) (*Engine, error) {
	decoder, err := vin.NewSeeded(cfg.DataDir, seed)
	if err != nil {
		return nil, fmt.Errorf("building VIN decoder: %w", err)
	}
	return newEngine(cfg, decoder)
}

func newEngine(cfg *config.Config, decoder *vin.Decoder) (*Engine, error) {
	ctx := context.Background()

	var db *sql.DB
	var source catalog.Source
	if cfg.CatalogDSN != "" {
		var err error
		db, err = database.Connect(ctx, cfg.CatalogDSN)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to catalog database: %w", err)
		}
		source = catalog.NewPGSource(db)
	} else {
		source = catalog.NewCSVSource(cfg.DataDir)
	}

	store, err := catalog.NewStore(ctx, source)
	if err != nil {
		if db != nil {
			db.Close()
		}
		return nil, fmt.Errorf("loading parts catalog: %w", err)
	}

	var trail *audit.Trail
	if cfg.AuditDir != "" {
		trail = audit.New(cfg.AuditDir)
	}

	return &Engine{
		cfg:        cfg,
		decoder:    decoder,
		classifier: labor.NewClassifier(),
		store:      store,
		resolver:   catalog.NewResolver(store),
		totaler:    aggregation.NewTotaler(),
		validator:  policy.New(cfg.ApprovalCeiling),
		auditTrail: trail,
		db:         db,
	}, nil
}

func (e *Engine) Close() error {
	if e.db != nil {
		return e.db.Close()
	}
	return nil
}

// RunRequest carries one estimate's inputs. Build it with NewRequest so the
// shop defaults are filled in, then override what the caller supplied.
type RunRequest struct {
	Notes    string
	HasVideo bool
	VIN      string
	Make     string

	LaborRate float64
	FeeMode   string  // "percent" or "flat"
	FeeValue  float64 // percent points or flat dollars
	TaxPct    float64 // percent points

	Source string // "cli", "api"; stamped into the audit record
}

// NewRequest returns a request prefilled with the shop's defaults.
func (e *Engine) NewRequest() RunRequest {
	return RunRequest{
		Make:      e.cfg.DefaultMake,
		LaborRate: e.cfg.LaborRate,
		FeeMode:   e.cfg.FeeMode,
		FeeValue:  e.cfg.FeeValue,
		TaxPct:    e.cfg.TaxPct,
	}
}

// Run executes the full pipeline. Every stage is total: bad VINs, unmatched
// notes, and missing parts all degrade to explicit fallback lines, so a run
// always produces a complete estimate.
func (e *Engine) Run(req RunRequest) *Result {
	log.WithFields(log.Fields{
		"has_vin":   req.VIN != "",
		"has_video": req.HasVideo,
	}).Info("Starting estimate run")

	trail := []types.Event{}

	// Stage 1: vehicle identity
	profile, vinEvents := e.decodeStage(req)
	trail = append(trail, vinEvents...)

	// Stage 2: notes normalization
	decodedNotes, notesEvents := notes.Normalize(req.Notes, req.HasVideo)
	trail = append(trail, notesEvents...)

	// Stage 3: labor classification
	rate := req.LaborRate
	if rate <= 0 {
		rate = e.cfg.LaborRate
	}
	ops, laborEvents := e.classifier.Classify(decodedNotes, rate, profile)
	trail = append(trail, laborEvents...)

	// Stage 4: parts resolution, priced against the decoded make or the
	// shop default when the VIN gave us nothing.
	lookupMake := profile.Make
	if lookupMake == vin.Unknown {
		lookupMake = e.fallbackMake(req)
		trail = append(trail, types.Event{
			Stage:    types.StageVINDecoder,
			Category: "assumption",
			Message:  fmt.Sprintf("Vehicle make unknown; pricing parts against %s", lookupMake),
			Severity: types.SeverityFlagged,
		})
	}
	partsLines, partsEvents := e.resolver.Resolve(lookupMake, ops)
	trail = append(trail, partsEvents...)

	// Stage 5: totals
	feePolicy := e.feePolicy(req)
	taxRate := req.TaxPct / 100.0
	if taxRate < 0 {
		taxRate = 0
	}
	summary, totalEvents := e.totaler.Total(ops, partsLines, feePolicy, taxRate)
	trail = append(trail, totalEvents...)

	// Stage 6: business rules
	validation, validationEvents := e.validator.Validate(summary, partsLines)
	trail = append(trail, validationEvents...)

	run := types.PipelineRun{
		Input: types.RunInput{
			TechnicianText: req.Notes,
			HasVideo:       req.HasVideo,
			VIN:            strings.TrimSpace(req.VIN),
			VehicleMake:    lookupMake,
			LaborRate:      rate,
			FeeMode:        string(feePolicy.Mode),
			FeeValue:       feePolicy.Value,
			TaxPct:         taxRate,
		},
		Profile:      profile,
		DecodedNotes: decodedNotes,
		LaborOps:     ops,
		PartsLines:   partsLines,
		Summary:      summary,
		Validation:   validation,
		Trail:        trail,
		Metadata: types.RunMetadata{
			RunID:          uuid.New().String(),
			EvaluatedAt:    time.Now().UTC().Format(time.RFC3339),
			EngineVersion:  EngineVersion,
			InputHash:      e.inputHash(req, feePolicy, taxRate, rate),
			CatalogVersion: e.CatalogVersion(),
		},
	}

	e.record(&run, req.Source)

	log.WithFields(log.Fields{
		"run_id":      run.Metadata.RunID,
		"operations":  len(run.LaborOps),
		"parts":       len(run.PartsLines),
		"grand_total": run.Summary.GrandTotal,
		"status":      run.Validation.Status,
	}).Info("Estimate run complete")

	return &Result{Run: run}
}

// DecodeVIN exposes the decode stage on its own, for the decode command and
// API endpoint.
func (e *Engine) DecodeVIN(rawVIN string) (types.VehicleProfile, []types.Event) {
	return e.decoder.Decode(rawVIN)
}

// ReloadCatalog re-reads the catalog source and swaps the table atomically.
func (e *Engine) ReloadCatalog(ctx context.Context) error {
	return e.store.Reload(ctx)
}

// ImportCatalog upserts entries into the catalog database and reloads the
// in-memory table. Only available when the catalog is database-backed.
func (e *Engine) ImportCatalog(ctx context.Context, entries []types.CatalogEntry) error {
	if e.db == nil {
		return fmt.Errorf("catalog import requires a database-backed catalog; set CATALOG_DSN")
	}
	if err := database.ImportEntries(ctx, e.db, entries); err != nil {
		return err
	}
	return e.store.Reload(ctx)
}

// CatalogVersion renders the loaded catalog's identity, e.g.
// "csv:data/parts_catalog.csv@10".
func (e *Engine) CatalogVersion() string {
	version := e.store.Version()
	return fmt.Sprintf("%s@%d", version.Source, version.Rows)
}

// Store exposes the catalog for read endpoints.
func (e *Engine) Store() *catalog.Store {
	return e.store
}

// AuditTrail returns the configured audit trail, nil when auditing is off.
func (e *Engine) AuditTrail() *audit.Trail {
	return e.auditTrail
}

// Config returns the engine's configuration.
func (e *Engine) Config() *config.Config {
	return e.cfg
}

// ApprovalCeiling returns the effective auto-approval limit the validator is
// enforcing.
func (e *Engine) ApprovalCeiling() float64 {
	return e.validator.MaxAutoApproval()
}

// Private helpers

func (e *Engine) decodeStage(req RunRequest) (types.VehicleProfile, []types.Event) {
	if strings.TrimSpace(req.VIN) != "" {
		return e.decoder.Decode(req.VIN)
	}

	profile := vin.AssumedProfile(e.fallbackMake(req))
	events := []types.Event{{
		Stage:    types.StageVINDecoder,
		Category: "assumption",
		Message:  fmt.Sprintf("No VIN provided; assuming %s with standard equipment", profile.Make),
		Severity: types.SeverityInfo,
	}}
	return profile, events
}

func (e *Engine) fallbackMake(req RunRequest) string {
	if m := strings.ToUpper(strings.TrimSpace(req.Make)); m != "" {
		return m
	}
	return e.cfg.DefaultMake
}

func (e *Engine) feePolicy(req RunRequest) aggregation.FeePolicy {
	value := req.FeeValue
	if value < 0 {
		value = 0
	}
	if strings.EqualFold(req.FeeMode, config.FeeModeFlat) {
		return aggregation.FeePolicy{Mode: aggregation.FeeFlat, Value: value}
	}
	return aggregation.FeePolicy{Mode: aggregation.FeePercent, Value: value / 100.0}
}

// inputHash fingerprints everything that determines the output, so equal
// hashes plus equal catalog versions imply equal money.
func (e *Engine) inputHash(req RunRequest, fees aggregation.FeePolicy, taxRate, rate float64) string {
	canonical := strings.Join([]string{
		req.Notes,
		fmt.Sprintf("video=%t", req.HasVideo),
		strings.ToUpper(strings.TrimSpace(req.VIN)),
		e.fallbackMake(req),
		fmt.Sprintf("rate=%.2f", rate),
		fmt.Sprintf("fees=%s:%.4f", fees.Mode, fees.Value),
		fmt.Sprintf("tax=%.4f", taxRate),
	}, "|")

	sum := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:])
}

func (e *Engine) record(run *types.PipelineRun, source string) {
	if e.auditTrail == nil {
		return
	}
	if source == "" {
		source = "engine"
	}
	if err := e.auditTrail.LogRun(run, audit.Metadata{Source: source}); err != nil {
		log.WithError(err).Warn("Failed to write audit record")
	}
}

// Result wraps a completed run with its output methods.
type Result struct {
	Run types.PipelineRun
}
