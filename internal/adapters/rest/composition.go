package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/akashsahu54/symphony/internal/core/domain"
	"github.com/akashsahu54/symphony/internal/core/ports"
	"github.com/akashsahu54/symphony/internal/worker"
)

const errCodeBackendUnavailable = "BACKEND_UNAVAILABLE"

type playCompositionResponse struct {
	Composition domain.Composition `json:"composition"`
	Session     string             `json:"session,omitempty"`
}

// PlanComposition handles POST /compositions: section breakdown only, no
// playback.
func (h *Handler) PlanComposition(w http.ResponseWriter, r *http.Request) {
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

	writeJSON(w, http.StatusOK, h.engine.PlanComposition(req.Code, req.Language))
}

// PlayComposition handles POST /compositions/play: plan the full 15-second
// composition, schedule it on the synth transport (cancelling any playback
// already in flight), and queue a background preview-energy job.
func (h *Handler) PlayComposition(w http.ResponseWriter, r *http.Request) {
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

	comp, session, err := h.engine.PlayCommit(r.Context(), req.Code, req.Language)
	if err != nil {
		if errors.Is(err, ports.ErrBackendUnavailable) {
			writeError(w, http.StatusBadGateway, errCodeBackendUnavailable)
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if session != "" && h.pool != nil && h.synth != nil {
		h.pool.Submit(worker.Job{
			CompositionID: comp.ID,
			PreviewURL:    h.synth.PreviewURL(comp.ID),
		})
	}

	writeJSON(w, http.StatusOK, playCompositionResponse{Composition: comp, Session: session})
}

// CancelPlayback handles DELETE /playback. Cancelling with nothing playing
// is still a success.
func (h *Handler) CancelPlayback(w http.ResponseWriter, r *http.Request) {
	if err := h.engine.CancelPlayback(r.Context()); err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
