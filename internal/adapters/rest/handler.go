package rest

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/akashsahu54/symphony/internal/adapters/synth"
	"github.com/akashsahu54/symphony/internal/core/services"
	"github.com/akashsahu54/symphony/internal/worker"
)

// Handler manages the HTTP interface for the analysis engine. It is the
// trigger collaborator made concrete: the editor front end posts text
// snapshots here and the core stays transport-free.
type Handler struct {
	engine *services.Engine
	pool   *worker.Pool
	synth  *synth.Client
	router *http.ServeMux
}

// NewHandler initializes the HTTP adapter and sets up routes. The pool
// and synth client may be nil; preview jobs are then skipped.
func NewHandler(engine *services.Engine, pool *worker.Pool, synthClient *synth.Client) *Handler {
	h := &Handler{
		engine: engine,
		pool:   pool,
		synth:  synthClient,
		router: http.NewServeMux(),
	}

	h.routes()

	return h
}

// ServeHTTP satisfies the http.Handler interface.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

// routes defines the mapping between URLs and methods.
func (h *Handler) routes() {
	h.router.HandleFunc("GET /health", h.HealthCheck)
	// Live analysis
	h.router.HandleFunc("POST /analyze", h.Analyze)
	h.router.HandleFunc("GET /mood", h.LatestMood)
	// Commit compositions
	h.router.HandleFunc("POST /compositions", h.PlanComposition)
	h.router.HandleFunc("POST /compositions/play", h.PlayComposition)
	h.router.HandleFunc("DELETE /playback", h.CancelPlayback)
}

// HealthCheck is a simple endpoint to verify the API is running.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "message": "Symphony is listening 🎶"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func isJSONContentType(r *http.Request) bool {
	contentType := r.Header.Get("Content-Type")
	return strings.HasPrefix(contentType, "application/json")
}
