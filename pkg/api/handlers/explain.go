package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/FixedOPS-AI/fixedops-ai-demo/pkg/engine"
	"github.com/FixedOPS-AI/fixedops-ai-demo/pkg/explainability"
)

// ExplainHandler runs an estimate and narrates every line of it
type ExplainHandler struct {
	engine    *engine.Engine
	explainer *explainability.Explainer
}

func NewExplainHandler(eng *engine.Engine) *ExplainHandler {
	return &ExplainHandler{
		engine:    eng,
		explainer: explainability.New(),
	}
}

type ExplainResponse struct {
	Explanation *explainability.RunExplanation `json:"explanation"`
}

// Handle runs the pipeline for the given input and returns the what/why/how
// narrative instead of the raw run.
func (h *ExplainHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var body EstimateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		WriteBadRequest(w, fmt.Sprintf("Failed to parse request body: %v", err))
		return
	}

	req, err := BuildRunRequest(h.engine, body)
	if err != nil {
		WriteValidationError(w, err.Error(), map[string]interface{}{
			"allowed_scenarios": engine.ScenarioNames(),
		})
		return
	}

	result := h.engine.Run(req)
	explanation := h.explainer.ExplainRun(&result.Run)

	WriteJSON(w, http.StatusOK, ExplainResponse{Explanation: explanation})
}
