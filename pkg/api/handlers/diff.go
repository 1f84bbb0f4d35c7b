package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/FixedOPS-AI/fixedops-ai-demo/pkg/diff"
	"github.com/FixedOPS-AI/fixedops-ai-demo/pkg/engine"
	log "github.com/sirupsen/logrus"
)

// DiffHandler handles estimate comparison requests
type DiffHandler struct {
	engine *engine.Engine
}

// NewDiffHandler creates a new diff handler
func NewDiffHandler(eng *engine.Engine) *DiffHandler {
	return &DiffHandler{engine: eng}
}

// DiffRequest carries the two estimate inputs to compare. Each side accepts
// the same fields as POST /api/estimate.
type DiffRequest struct {
	Before EstimateRequest `json:"before"`
	After  EstimateRequest `json:"after"`
}

// DiffResponse represents the API response for diffs
type DiffResponse struct {
	Diff *diff.RunDiff `json:"diff"`
}

// Handle runs both estimates and returns the line-by-line comparison.
func (h *DiffHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var body DiffRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		WriteBadRequest(w, fmt.Sprintf("Failed to parse request body: %v", err))
		return
	}

	beforeReq, err := BuildRunRequest(h.engine, body.Before)
	if err != nil {
		WriteValidationError(w, fmt.Sprintf("before: %v", err), map[string]interface{}{
			"allowed_scenarios": engine.ScenarioNames(),
		})
		return
	}

	afterReq, err := BuildRunRequest(h.engine, body.After)
	if err != nil {
		WriteValidationError(w, fmt.Sprintf("after: %v", err), map[string]interface{}{
			"allowed_scenarios": engine.ScenarioNames(),
		})
		return
	}

	before := h.engine.Run(beforeReq)
	after := h.engine.Run(afterReq)

	differ := diff.New()
	diffResult := differ.Diff(&before.Run, &after.Run)

	log.WithFields(log.Fields{
		"before_total": diffResult.BeforeTotal,
		"after_total":  diffResult.AfterTotal,
		"delta":        diffResult.TotalDelta,
		"percent":      diffResult.PercentChange,
	}).Info("Diff calculated successfully")

	WriteJSON(w, http.StatusOK, DiffResponse{Diff: diffResult})
}
