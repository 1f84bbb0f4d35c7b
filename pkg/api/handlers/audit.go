package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"github.com/FixedOPS-AI/fixedops-ai-demo/pkg/engine"
)

// AuditHandler serves the audit trail written by the engine
type AuditHandler struct {
	engine *engine.Engine
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(eng *engine.Engine) *AuditHandler {
	return &AuditHandler{engine: eng}
}

// AuditListResponse lists the stored audit records
type AuditListResponse struct {
	Records []string `json:"records"`
	Count   int      `json:"count"`
}

// List returns the audit record filenames, newest last.
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	trail := h.engine.AuditTrail()
	if trail == nil {
		WriteError(w, "AUDIT_DISABLED",
			"Audit trail is not configured; set AUDIT_DIR to enable it",
			http.StatusServiceUnavailable, nil)
		return
	}

	records, err := trail.List()
	if err != nil {
		WriteInternalError(w, fmt.Sprintf("Failed to list audit records: %v", err))
		return
	}

	WriteJSON(w, http.StatusOK, AuditListResponse{
		Records: records,
		Count:   len(records),
	})
}

// Get returns the full audit record for a run ID.
func (h *AuditHandler) Get(w http.ResponseWriter, r *http.Request) {
	trail := h.engine.AuditTrail()
	if trail == nil {
		WriteError(w, "AUDIT_DISABLED",
			"Audit trail is not configured; set AUDIT_DIR to enable it",
			http.StatusServiceUnavailable, nil)
		return
	}

	runID := chi.URLParam(r, "runID")
	record, err := trail.Find(runID)
	if err != nil {
		WriteNotFound(w, fmt.Sprintf("No audit record for run %s", runID))
		return
	}

	log.WithField("run_id", runID).Debug("Serving audit record")
	WriteJSON(w, http.StatusOK, record)
}
