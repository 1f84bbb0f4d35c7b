package handlers

import (
	"net/http"

	"github.com/FixedOPS-AI/fixedops-ai-demo/pkg/engine"
)

// PolicyHandler exposes the shop policy the engine is running with
type PolicyHandler struct {
	engine *engine.Engine
}

// NewPolicyHandler creates a new policy handler
func NewPolicyHandler(eng *engine.Engine) *PolicyHandler {
	return &PolicyHandler{engine: eng}
}

// PolicyResponse represents the active shop policy
type PolicyResponse struct {
	DefaultMake     string  `json:"default_make"`
	LaborRate       float64 `json:"labor_rate"`
	FeeMode         string  `json:"fee_mode"`
	FeeValue        float64 `json:"fee_value"`
	TaxPct          float64 `json:"tax_pct"`
	ApprovalCeiling float64 `json:"approval_ceiling"`
}

// Handle returns the shop defaults every estimate starts from, so clients can
// pre-fill rate and fee fields instead of hardcoding them.
func (h *PolicyHandler) Handle(w http.ResponseWriter, r *http.Request) {
	cfg := h.engine.Config()

	response := PolicyResponse{
		DefaultMake:     cfg.DefaultMake,
		LaborRate:       cfg.LaborRate,
		FeeMode:         cfg.FeeMode,
		FeeValue:        cfg.FeeValue,
		TaxPct:          cfg.TaxPct,
		ApprovalCeiling: h.engine.ApprovalCeiling(),
	}

	WriteJSON(w, http.StatusOK, response)
}
