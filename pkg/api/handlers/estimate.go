package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/FixedOPS-AI/fixedops-ai-demo/internal/types"
	"github.com/FixedOPS-AI/fixedops-ai-demo/pkg/engine"
)

// EstimateHandler handles estimation requests
type EstimateHandler struct {
	engine *engine.Engine
}

// NewEstimateHandler creates a new estimate handler
func NewEstimateHandler(eng *engine.Engine) *EstimateHandler {
	return &EstimateHandler{engine: eng}
}

// EstimateRequest is the JSON body for an estimation run. Numeric fields are
// pointers so an explicit zero survives the trip; omitted fields take the
// shop defaults.
type EstimateRequest struct {
	Notes    string `json:"notes"`
	Scenario string `json:"scenario,omitempty"`
	HasVideo bool   `json:"has_video"`
	VIN      string `json:"vin,omitempty"`
	Make     string `json:"make,omitempty"`

	LaborRate *float64 `json:"labor_rate,omitempty"`
	FeeMode   string   `json:"fee_mode,omitempty"`
	FeeValue  *float64 `json:"fee_value,omitempty"`
	TaxPct    *float64 `json:"tax_pct,omitempty"`
}

// EstimateResponse wraps the full pipeline run
type EstimateResponse struct {
	Run types.PipelineRun `json:"run"`
}

// Handle processes an estimate request and returns the full run.
func (h *EstimateHandler) Handle(w http.ResponseWriter, r *http.Request) {
	result, ok := h.run(w, r)
	if !ok {
		return
	}
	WriteJSON(w, http.StatusOK, EstimateResponse{Run: result.Run})
}

// HandleExport processes an estimate request and returns only the
// integration payload, the shape a DMS imports.
func (h *EstimateHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	result, ok := h.run(w, r)
	if !ok {
		return
	}
	WriteJSON(w, http.StatusOK, result.Run.Export())
}

func (h *EstimateHandler) run(w http.ResponseWriter, r *http.Request) (*engine.Result, bool) {
	var body EstimateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		WriteBadRequest(w, fmt.Sprintf("Failed to parse request body: %v", err))
		return nil, false
	}

	req, err := BuildRunRequest(h.engine, body)
	if err != nil {
		WriteValidationError(w, err.Error(), map[string]interface{}{
			"allowed_scenarios": engine.ScenarioNames(),
		})
		return nil, false
	}

	log.WithFields(log.Fields{
		"scenario":  body.Scenario,
		"has_vin":   body.VIN != "",
		"has_video": body.HasVideo,
	}).Info("Processing estimate request")

	result := h.engine.Run(req)
	return result, true
}

// BuildRunRequest turns an API body into an engine request, filling shop
// defaults for everything the caller left out.
func BuildRunRequest(eng *engine.Engine, body EstimateRequest) (engine.RunRequest, error) {
	req := eng.NewRequest()
	req.Source = "api"

	req.Notes = body.Notes
	if body.Scenario != "" {
		text, ok := engine.Scenario(body.Scenario)
		if !ok {
			return engine.RunRequest{}, fmt.Errorf("unknown scenario %q", body.Scenario)
		}
		req.Notes = text
	}

	req.HasVideo = body.HasVideo
	req.VIN = body.VIN
	if body.Make != "" {
		req.Make = body.Make
	}
	if body.LaborRate != nil {
		req.LaborRate = *body.LaborRate
	}
	if body.FeeMode != "" {
		req.FeeMode = body.FeeMode
	}
	if body.FeeValue != nil {
		req.FeeValue = *body.FeeValue
	}
	if body.TaxPct != nil {
		req.TaxPct = *body.TaxPct
	}

	return req, nil
}
