package handlers

import (
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/FixedOPS-AI/fixedops-ai-demo/internal/catalog"
	"github.com/FixedOPS-AI/fixedops-ai-demo/internal/types"
	"github.com/FixedOPS-AI/fixedops-ai-demo/pkg/engine"
)

// CatalogHandler serves catalog lookups and lifecycle operations
type CatalogHandler struct {
	engine *engine.Engine
}

func NewCatalogHandler(eng *engine.Engine) *CatalogHandler {
	return &CatalogHandler{engine: eng}
}

type CatalogVersionResponse struct {
	CatalogVersion string `json:"catalog_version"`
	Source         string `json:"source"`
	Rows           int    `json:"rows"`
	LoadedAt       string `json:"loaded_at"`
}

type CatalogPartsResponse struct {
	Make          string               `json:"make"`
	OperationCode string               `json:"operation_code"`
	Parts         []types.CatalogEntry `json:"parts"`
	Count         int                  `json:"count"`
}

// Version reports which catalog snapshot is serving lookups.
func (h *CatalogHandler) Version(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.versionResponse())
}

// Parts serves the catalog rows for one make and operation code.
func (h *CatalogHandler) Parts(w http.ResponseWriter, r *http.Request) {
	vehicleMake := r.URL.Query().Get("make")
	opCode := r.URL.Query().Get("operation")

	if vehicleMake == "" || opCode == "" {
		WriteBadRequest(w, "Both make and operation query parameters are required")
		return
	}

	parts := h.engine.Store().Lookup(vehicleMake, opCode)
	WriteJSON(w, http.StatusOK, CatalogPartsResponse{
		Make:          vehicleMake,
		OperationCode: opCode,
		Parts:         parts,
		Count:         len(parts),
	})
}

// Reload re-reads the catalog source and swaps the in-memory table.
func (h *CatalogHandler) Reload(w http.ResponseWriter, r *http.Request) {
	if err := h.engine.ReloadCatalog(r.Context()); err != nil {
		WriteInternalError(w, fmt.Sprintf("Catalog reload failed: %v", err))
		return
	}

	response := h.versionResponse()
	log.WithField("catalog", response.CatalogVersion).Info("Catalog reloaded via API")
	WriteJSON(w, http.StatusOK, response)
}

// Import accepts a CSV upload and merges it into the database-backed catalog.
// CSV-file deployments are read-only; they return 503.
func (h *CatalogHandler) Import(w http.ResponseWriter, r *http.Request) {
	if h.engine.Config().CatalogDSN == "" {
		WriteError(w, "CATALOG_READONLY",
			"Catalog import requires a database-backed catalog; set CATALOG_DSN",
			http.StatusServiceUnavailable, nil)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil { // 10MB
		WriteBadRequest(w, fmt.Sprintf("Failed to parse form: %v", err))
		return
	}

	file, header, err := r.FormFile("catalog_csv")
	if err != nil {
		WriteBadRequest(w, "Missing catalog_csv file")
		return
	}
	defer file.Close()

	entries, err := catalog.ParseCSV(file, header.Filename)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Failed to parse catalog CSV: %v", err))
		return
	}

	if err := h.engine.ImportCatalog(r.Context(), entries); err != nil {
		WriteInternalError(w, fmt.Sprintf("Catalog import failed: %v", err))
		return
	}

	response := h.versionResponse()
	log.WithFields(log.Fields{
		"file":    header.Filename,
		"rows":    len(entries),
		"catalog": response.CatalogVersion,
	}).Info("Catalog import complete")
	WriteJSON(w, http.StatusOK, response)
}

func (h *CatalogHandler) versionResponse() CatalogVersionResponse {
	version := h.engine.Store().Version()
	return CatalogVersionResponse{
		CatalogVersion: h.engine.CatalogVersion(),
		Source:         version.Source,
		Rows:           version.Rows,
		LoadedAt:       version.LoadedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}
