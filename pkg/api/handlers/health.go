package handlers

import (
	"net/http"

	"github.com/FixedOPS-AI/fixedops-ai-demo/pkg/engine"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	engine *engine.Engine
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(eng *engine.Engine) *HealthHandler {
	return &HealthHandler{engine: eng}
}

// Handle reports service health plus the loaded catalog version so probes can
// spot a stale or empty catalog.
func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":         "healthy",
		"service":        "fixedops-estimation-engine",
		"engine_version": engine.EngineVersion,
		"catalog":        h.engine.CatalogVersion(),
	}

	WriteJSON(w, http.StatusOK, response)
}
