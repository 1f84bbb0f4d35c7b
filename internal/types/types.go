// Package types defines core types used across the estimation engine
package types

// Severity classifies a pipeline event for presentation. It never changes
// behavior: a FLAGGED event renders highlighted, nothing more.
type Severity string

const (
	SeverityInfo    Severity = "INFO"
	SeverityFlagged Severity = "FLAGGED"
)

// Stage identifies the pipeline stage that emitted an event.
type Stage string

const (
	StageVINDecoder Stage = "vin_decoder"
	StageNotes      Stage = "notes"
	StageLabor      Stage = "labor"
	StageParts      Stage = "parts"
	StageTotals     Stage = "totals"
	StageValidation Stage = "validation"
)

// Event is one structured entry in the run trail. Stages emit events instead
// of ad-hoc log strings so the trail can be rendered, filtered, and explained.
type Event struct {
	Stage    Stage    `json:"stage"`
	Category string   `json:"category"` // e.g., keyword_match, quantity_override, fallback
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// VehicleProfile is the decoded (or assumed) vehicle identity for a run.
type VehicleProfile struct {
	VIN         string  `json:"vin"`
	Make        string  `json:"make"`         // e.g., HONDA
	Model       string  `json:"model"`        // e.g., CIVIC
	Year        int     `json:"year"`         // 0 when the VIN could not be decoded
	Engine      string  `json:"engine"`       // e.g., 3.5L V6
	Trim        string  `json:"trim"`         // e.g., EX-L
	Drivetrain  string  `json:"drivetrain"`   // FWD, RWD, AWD, or 4WD
	VehicleType string  `json:"vehicle_type"` // Car, Truck, SUV
	Confidence  float64 `json:"confidence"`   // 0.8 for a recognized prefix, else 0.0
}

// LaborOperation is one classified repair operation with its labor charge.
type LaborOperation struct {
	OperationCode string  `json:"operation_code"` // e.g., RR-BRAKE
	Description   string  `json:"description"`
	Hours         float64 `json:"hours"`
	Rate          float64 `json:"rate"`         // dollars per hour
	RequiredQty   int     `json:"required_qty"` // parts needed; 0 means no parts lookup
	LineTotal     float64 `json:"line_total"`   // hours × rate, rounded to cents
}

// PartLine is one priced part line resolved for a labor operation.
type PartLine struct {
	OperationCode string  `json:"operation_code"`
	PartNumber    string  `json:"part_number"`
	Description   string  `json:"description"`
	Quantity      int     `json:"quantity"`
	UnitPrice     float64 `json:"unit_price"`
	CostPrice     float64 `json:"cost_price"`
	StockSource   string  `json:"stock_source"`
	Availability  string  `json:"availability"`
	LineTotal     float64 `json:"line_total"` // quantity × unit_price, rounded
	CostTotal     float64 `json:"cost_total"` // quantity × cost_price, rounded
}

// CatalogEntry is one row of the parts catalog, keyed by make and operation.
type CatalogEntry struct {
	Make          string  `json:"make"`
	OperationCode string  `json:"operation_code"`
	PartNumber    string  `json:"part_number"`
	Description   string  `json:"description"`
	UnitPrice     float64 `json:"unit_price"`
	CostPrice     float64 `json:"cost_price"`
	StockSource   string  `json:"stock_source"`
	Availability  string  `json:"availability"`
}

// EstimateSummary holds the aggregated money buckets for a run.
type EstimateSummary struct {
	LaborSubtotal float64 `json:"labor_subtotal"`
	PartsSubtotal float64 `json:"parts_subtotal"`
	ShopFees      float64 `json:"shop_fees"`
	Tax           float64 `json:"tax"`
	GrandTotal    float64 `json:"grand_total"`
}

// ValidationStatus is the final disposition of an estimate.
type ValidationStatus string

const (
	StatusPass   ValidationStatus = "PASS"   // Auto-approved
	StatusReview ValidationStatus = "REVIEW" // Needs a service advisor
)

// ValidationResult carries the disposition and every warning that drove it.
// Status is REVIEW exactly when Warnings is non-empty.
type ValidationResult struct {
	Status   ValidationStatus `json:"status"`
	Warnings []string         `json:"warnings,omitempty"`
}

// RunInput echoes the technician submission so every run is self-describing.
type RunInput struct {
	TechnicianText string  `json:"technician_text"`
	HasVideo       bool    `json:"has_video"`
	VIN            string  `json:"vin,omitempty"`
	VehicleMake    string  `json:"vehicle_make,omitempty"`
	LaborRate      float64 `json:"labor_rate"`
	FeeMode        string  `json:"fee_mode"`  // PERCENT or FLAT
	FeeValue       float64 `json:"fee_value"` // fraction for PERCENT, dollars for FLAT
	TaxPct         float64 `json:"tax_pct"`   // fraction, e.g. 0.0825
}

// RunMetadata contains reproducibility information for a run.
type RunMetadata struct {
	RunID          string `json:"run_id"`
	EvaluatedAt    string `json:"evaluated_at"` // RFC3339 UTC
	EngineVersion  string `json:"engine_version"`
	InputHash      string `json:"input_hash"` // sha256 over the canonical input
	CatalogVersion string `json:"catalog_version"`
}

// PipelineRun is the complete result of one estimation run.
type PipelineRun struct {
	Input        RunInput         `json:"input"`
	Profile      VehicleProfile   `json:"vehicle_profile"`
	DecodedNotes string           `json:"decoded_notes"`
	LaborOps     []LaborOperation `json:"labor_ops"`
	PartsLines   []PartLine       `json:"parts_lines"`
	Summary      EstimateSummary  `json:"totals"`
	Validation   ValidationResult `json:"validation"`
	Trail        []Event          `json:"trail"`
	Metadata     RunMetadata      `json:"metadata"`
}

// ExportPayload is the integration-facing slice of a run: what a DMS or
// downstream quoting system consumes, without the trail and metadata.
type ExportPayload struct {
	TechnicianInput RunInput         `json:"technician_input"`
	VehicleProfile  VehicleProfile   `json:"vehicle_profile"`
	LaborOps        []LaborOperation `json:"labor_ops"`
	PartsLines      []PartLine       `json:"parts_lines"`
	Totals          EstimateSummary  `json:"totals"`
	Validation      ValidationResult `json:"validation"`
}

// Export builds the integration payload for a run.
func (r *PipelineRun) Export() ExportPayload {
	return ExportPayload{
		TechnicianInput: r.Input,
		VehicleProfile:  r.Profile,
		LaborOps:        r.LaborOps,
		PartsLines:      r.PartsLines,
		Totals:          r.Summary,
		Validation:      r.Validation,
	}
}
