package rest

import (
	"encoding/json"
	"net/http"
)

// analyzeRequest defines what the editor front end sends us. Code may be
// empty; language defaults to javascript when omitted.
type analyzeRequest struct {
	Code     string `json:"code"`
	Language string `json:"language"`
}

func (req *analyzeRequest) normalize() {
	if req.Language == "" {
		req.Language = "javascript"
	}
}

// Analyze handles POST /analyze. This is the explicit run-now path: any
// pending debounced analysis is discarded in favor of this snapshot.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.normalize()

	// The engine is total: any string, including empty, analyzes cleanly.
	mood := h.engine.Analyze(r.Context(), req.Code, req.Language)
	writeJSON(w, http.StatusOK, mood)
}

// LatestMood handles GET /mood for the polling visual consumer.
func (h *Handler) LatestMood(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.engine.LatestMood())
}
