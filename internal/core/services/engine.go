package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/akashsahu54/symphony/internal/core/domain"
	"github.com/akashsahu54/symphony/internal/core/ports"
)

// DefaultDebounce is the edit-quiescence window before a pending analysis
// runs.
const DefaultDebounce = 300 * time.Millisecond

// Engine coordinates the classifier, planner and scheduler behind the two
// entry points the outside world calls: live analysis on text changes and
// commit-composition playback on explicit user action.
//
// The latest completed analysis is a single-writer value: whichever
// analysis finishes last wins, and readers always see a complete MoodData.
type Engine struct {
	classifier *Classifier
	planner    *Planner
	scheduler  *Scheduler
	observer   ports.PerformanceObserver
	debouncer  *Debouncer

	mu     sync.RWMutex
	latest domain.MoodData
}

// NewEngine wires the core services over an instrument sink. A nil
// observer is replaced with a no-op.
func NewEngine(sink ports.InstrumentSink, observer ports.PerformanceObserver, debounce time.Duration) *Engine {
	if observer == nil {
		observer = ports.NopObserver{}
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	classifier := NewClassifier()
	return &Engine{
		classifier: classifier,
		planner:    NewPlanner(classifier),
		scheduler:  NewScheduler(sink),
		observer:   observer,
		debouncer:  NewDebouncer(debounce),
		latest:     domain.NewMoodData(domain.MoodHarmonious, "G", 0.5),
	}
}

// Analyze runs classification now, discarding any pending debounced
// analysis, publishes the result as the latest mood, and plays the live
// feedback sequence. It never fails: sink trouble is logged, and a valid
// MoodData is still produced and returned.
func (e *Engine) Analyze(ctx context.Context, code string, language string) domain.MoodData {
	e.debouncer.Cancel()
	return e.analyze(ctx, code, language)
}

// AnalyzeDebounced queues an analysis to run after the quiescence window.
// A newer edit before the window elapses supersedes this one entirely.
func (e *Engine) AnalyzeDebounced(code string, language string) {
	e.debouncer.Debounce(func() {
		e.analyze(context.Background(), code, language)
	})
}

func (e *Engine) analyze(ctx context.Context, code string, language string) domain.MoodData {
	started := time.Now()
	mood := e.classifier.Analyze(code, language)
	e.observer.ObserveAnalysis(time.Since(started), mood.Mood)

	e.mu.Lock()
	e.latest = mood
	e.mu.Unlock()

	if err := e.scheduler.PlayMood(ctx, mood); err != nil {
		log.Printf("WARN engine: live feedback skipped: %v", err)
	}
	return mood
}

// LatestMood returns the most recent completed analysis for the polling
// visual consumer.
func (e *Engine) LatestMood() domain.MoodData {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.latest
}

// PlayCommit plans the 15-second composition for the whole file and
// schedules its playback, cancelling any composition already in flight.
// The plan itself never fails; only the sink can.
func (e *Engine) PlayCommit(ctx context.Context, code string, language string) (domain.Composition, string, error) {
	comp := e.planner.Plan(code, language)
	session, err := e.scheduler.PlayComposition(ctx, comp)
	if err != nil {
		return comp, "", err
	}
	return comp, session, nil
}

// PlanComposition plans without scheduling, for callers that only want the
// section breakdown.
func (e *Engine) PlanComposition(code string, language string) domain.Composition {
	return e.planner.Plan(code, language)
}

// CancelPlayback stops any in-flight commit playback; idempotent.
func (e *Engine) CancelPlayback(ctx context.Context) error {
	return e.scheduler.Cancel(ctx)
}
