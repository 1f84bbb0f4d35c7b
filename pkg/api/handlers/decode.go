package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/FixedOPS-AI/fixedops-ai-demo/internal/types"
	"github.com/FixedOPS-AI/fixedops-ai-demo/pkg/engine"
)

// DecodeHandler exposes the VIN decoder on its own
type DecodeHandler struct {
	engine *engine.Engine
}

func NewDecodeHandler(eng *engine.Engine) *DecodeHandler {
	return &DecodeHandler{engine: eng}
}

type DecodeRequest struct {
	VIN string `json:"vin"`
}

type DecodeResponse struct {
	Profile types.VehicleProfile `json:"profile"`
	Events  []types.Event        `json:"events"`
}

// Handle decodes a VIN. A malformed VIN is not an HTTP error: the decoder
// returns an UNKNOWN profile with the events explaining why.
func (h *DecodeHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var body DecodeRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		WriteBadRequest(w, fmt.Sprintf("Failed to parse request body: %v", err))
		return
	}

	if body.VIN == "" {
		WriteBadRequest(w, "Missing vin field")
		return
	}

	profile, events := h.engine.DecodeVIN(body.VIN)
	WriteJSON(w, http.StatusOK, DecodeResponse{Profile: profile, Events: events})
}
