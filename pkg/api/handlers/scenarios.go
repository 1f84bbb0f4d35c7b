package handlers

import (
	"net/http"

	"github.com/FixedOPS-AI/fixedops-ai-demo/pkg/engine"
)

// ScenarioInfo describes one canned demo scenario.
type ScenarioInfo struct {
	Name  string `json:"name"`
	Notes string `json:"notes"`
}

// ScenariosResponse lists the scenarios the estimate endpoints accept.
type ScenariosResponse struct {
	Scenarios []ScenarioInfo `json:"scenarios"`
	Count     int            `json:"count"`
}

// Scenarios returns the canned technician-note scenarios bundled with the
// engine, so clients can offer them without hardcoding the text.
func Scenarios(w http.ResponseWriter, r *http.Request) {
	names := engine.ScenarioNames()
	infos := make([]ScenarioInfo, 0, len(names))
	for _, name := range names {
		notes, _ := engine.Scenario(name)
		infos = append(infos, ScenarioInfo{Name: name, Notes: notes})
	}

	WriteJSON(w, http.StatusOK, ScenariosResponse{
		Scenarios: infos,
		Count:     len(infos),
	})
}
