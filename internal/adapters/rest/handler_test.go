package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/akashsahu54/symphony/internal/adapters/synth"
	"github.com/akashsahu54/symphony/internal/core/domain"
	"github.com/akashsahu54/symphony/internal/core/services"
	"github.com/akashsahu54/symphony/internal/worker"
)

// Handler tests wire a real Engine over a stub sink, the same way the
// service tests do: the HTTP layer is thin, so exercising it against the
// genuine core keeps the tests honest.

func newTestHandler(t *testing.T) (*Handler, *stubSink) {
	t.Helper()
	sink := &stubSink{}
	engine := services.NewEngine(sink, nil, services.DefaultDebounce)
	return NewHandler(engine, nil, nil), sink
}

func postJSON(t *testing.T, h http.Handler, path string, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandler_HealthCheck(t *testing.T) {
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
}

func TestHandler_Analyze(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		contentType string
		wantStatus  int
		wantMood    string
	}{
		{
			name:        "clean code analyzes harmonious",
			body:        `{"code":"// fine\nconst x = 1;","language":"javascript"}`,
			contentType: "application/json",
			wantStatus:  http.StatusOK,
			wantMood:    "harmonious",
		},
		{
			name:        "broken code analyzes discordant",
			body:        `{"code":"fucntion helo( { retunr false }","language":"javascript"}`,
			contentType: "application/json",
			wantStatus:  http.StatusOK,
			wantMood:    "discordant",
		},
		{
			name:        "empty code is still a valid analysis",
			body:        `{"code":"","language":"javascript"}`,
			contentType: "application/json",
			wantStatus:  http.StatusOK,
			wantMood:    "harmonious",
		},
		{
			name:        "missing language defaults",
			body:        `{"code":"let x = 1;"}`,
			contentType: "application/json",
			wantStatus:  http.StatusOK,
		},
		{
			name:        "wrong content type",
			body:        `{"code":"x"}`,
			contentType: "text/plain",
			wantStatus:  http.StatusUnsupportedMediaType,
		},
		{
			name:        "invalid body",
			body:        `{"code":`,
			contentType: "application/json",
			wantStatus:  http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		tc := tc // capture range variable
		t.Run(tc.name, func(t *testing.T) {
			h, _ := newTestHandler(t)

			req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", tc.contentType)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status: got %d, want %d; body %s", rec.Code, tc.wantStatus, rec.Body.String())
			}
			if tc.wantStatus != http.StatusOK {
				return
			}

			var mood domain.MoodData
			if err := json.NewDecoder(rec.Body).Decode(&mood); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if mood.Tempo < 60 || mood.Tempo > 180 {
				t.Fatalf("tempo %d outside [60,180]", mood.Tempo)
			}
			if tc.wantMood != "" && mood.MoodName != tc.wantMood {
				t.Fatalf("mood: got %q, want %q", mood.MoodName, tc.wantMood)
			}
		})
	}
}

func TestHandler_LatestMood(t *testing.T) {
	h, _ := newTestHandler(t)

	postJSON(t, h, "/analyze", `{"code":"fucntion helo( { retunr false }","language":"javascript"}`)

	req := httptest.NewRequest(http.MethodGet, "/mood", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	var mood domain.MoodData
	if err := json.NewDecoder(rec.Body).Decode(&mood); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if mood.MoodName != "discordant" {
		t.Fatalf("latest mood: got %q, want the last analysis", mood.MoodName)
	}
}

func TestHandler_PlanComposition(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := postJSON(t, h, "/compositions",
		`{"code":"import a from 'a';\n\nfunction f() {\n  return 1;\n}","language":"javascript"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200; body %s", rec.Code, rec.Body.String())
	}

	var comp domain.Composition
	if err := json.NewDecoder(rec.Body).Decode(&comp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(comp.Sections) == 0 {
		t.Fatalf("expected sections")
	}
	if comp.TotalDuration() > domain.CompositionBudget+1e-9 {
		t.Fatalf("duration %f exceeds budget", comp.TotalDuration())
	}
}

func TestHandler_PlayComposition(t *testing.T) {
	sink := &stubSink{}
	engine := services.NewEngine(sink, nil, services.DefaultDebounce)
	h := NewHandler(engine, nil, nil)

	rec := postJSON(t, h, "/compositions/play",
		`{"code":"function f() {\n  return 1;\n}","language":"javascript"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200; body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Composition domain.Composition `json:"composition"`
		Session     string             `json:"session"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Session == "" {
		t.Fatalf("expected a playback session")
	}
	if sink.startCount() != 1 {
		t.Fatalf("transport should have started once, got %d", sink.startCount())
	}
}

func TestHandler_PlayComposition_SubmitsPreviewJob(t *testing.T) {
	original := worker.AnalyzePreviewFunc
	defer func() { worker.AnalyzePreviewFunc = original }()
	worker.AnalyzePreviewFunc = func(url string) (float64, error) { return 0.5, nil }

	obs := &energyObserver{}
	pool := worker.NewPool(obs, 10)
	pool.Start(1)
	defer pool.Stop()

	sink := &stubSink{}
	engine := services.NewEngine(sink, nil, services.DefaultDebounce)
	h := NewHandler(engine, pool, synth.NewClient("http://localhost:9300"))

	rec := postJSON(t, h, "/compositions/play",
		`{"code":"function f() {\n  return 1;\n}","language":"javascript"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d; body %s", rec.Code, rec.Body.String())
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) && obs.count() == 0 {
		time.Sleep(5 * time.Millisecond)
	}
	if obs.count() != 1 {
		t.Fatalf("expected one preview-energy sample, got %d", obs.count())
	}
}

func TestHandler_CancelPlayback(t *testing.T) {
	h, sink := newTestHandler(t)

	// cancel with nothing playing is a success
	req := httptest.NewRequest(http.MethodDelete, "/playback", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("idle cancel status: got %d, want 204", rec.Code)
	}
	if sink.cancelCount() != 0 {
		t.Fatalf("idle cancel should not reach the sink")
	}

	postJSON(t, h, "/compositions/play", `{"code":"let x = 1;","language":"javascript"}`)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/playback", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("cancel status: got %d, want 204", rec.Code)
	}
	if sink.cancelCount() != 1 {
		t.Fatalf("expected one cancel at the sink, got %d", sink.cancelCount())
	}
}

// --- Mocks ---

// stubSink accepts every instruction and counts transport calls.
type stubSink struct {
	mu      sync.Mutex
	starts  int
	cancels int
}

func (s *stubSink) SetTempo(ctx context.Context, bpm int) error { return nil }

func (s *stubSink) Trigger(ctx context.Context, event domain.NoteEvent) error { return nil }

func (s *stubSink) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.starts++
	return nil
}

func (s *stubSink) Stop(ctx context.Context) error { return nil }

func (s *stubSink) CancelAllScheduled(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancels++
	return nil
}

func (s *stubSink) startCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.starts
}

func (s *stubSink) cancelCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancels
}

type energyObserver struct {
	mu      sync.Mutex
	samples int
}

func (e *energyObserver) ObserveAnalysis(time.Duration, domain.Mood) {}

func (e *energyObserver) ObservePreviewEnergy(string, float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.samples++
}

func (e *energyObserver) count() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.samples
}
