package services

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/akashsahu54/symphony/internal/core/domain"
	"github.com/akashsahu54/symphony/internal/core/ports"
)

// moodSpan bounds the live-feedback micro-sequence in logical seconds.
const moodSpan = 0.3

// Scheduler converts moods and compositions into deterministic, temporally
// ordered trigger instructions for the instrument sink. Only one commit
// playback session may be live at a time: scheduling a new one cancels the
// previous session first, and cancellation with nothing playing is a no-op.
type Scheduler struct {
	sink ports.InstrumentSink

	mu      sync.Mutex
	session string // active playback session, "" when idle
}

// NewScheduler constructs a Scheduler over the given sink.
func NewScheduler(sink ports.InstrumentSink) *Scheduler {
	return &Scheduler{sink: sink}
}

// PlayMood emits the short live-feedback sequence for a mood. Trigger
// failures are logged and skipped; the sink being down never blocks
// analysis.
func (s *Scheduler) PlayMood(ctx context.Context, mood domain.MoodData) error {
	if err := s.sink.SetTempo(ctx, mood.Tempo); err != nil {
		return fmt.Errorf("scheduler: set tempo: %w", err)
	}

	for _, event := range MoodEvents(mood) {
		if err := s.sink.Trigger(ctx, event); err != nil {
			log.Printf("WARN scheduler: mood trigger dropped: %v", err)
		}
	}
	return nil
}

// MoodEvents computes the micro-sequence for a mood. All start times fall
// inside moodSpan. Exposed as a pure function so the timing contract is
// directly testable.
func MoodEvents(mood domain.MoodData) []domain.NoteEvent {
	scale := domain.ScaleNotes(mood.RootKey)

	switch mood.Mood {
	case domain.MoodDiscordant:
		// clashing second intervals, two stabs
		return []domain.NoteEvent{
			{Notes: []string{scale[0], scale[1]}, Duration: 0.12, Instrument: domain.InstrumentHarmony, StartTime: 0},
			{Notes: []string{scale[3], scale[4]}, Duration: 0.12, Instrument: domain.InstrumentRhythm, StartTime: 0.15},
		}
	case domain.MoodIntense:
		// rapid dense root pulses with a high melody accent
		return []domain.NoteEvent{
			{Notes: []string{scale[0]}, Duration: 0.05, Instrument: domain.InstrumentRhythm, StartTime: 0},
			{Notes: []string{scale[0]}, Duration: 0.05, Instrument: domain.InstrumentRhythm, StartTime: 0.06},
			{Notes: []string{scale[0]}, Duration: 0.05, Instrument: domain.InstrumentRhythm, StartTime: 0.12},
			{Notes: []string{scale[0]}, Duration: 0.05, Instrument: domain.InstrumentRhythm, StartTime: 0.18},
			{Notes: []string{scale[6]}, Duration: 0.05, Instrument: domain.InstrumentMelody, StartTime: 0.24},
		}
	default:
		// consonant triad spread across the three voices
		return []domain.NoteEvent{
			{Notes: []string{scale[0]}, Duration: 0.1, Instrument: domain.InstrumentRhythm, StartTime: 0},
			{Notes: []string{scale[2]}, Duration: 0.1, Instrument: domain.InstrumentHarmony, StartTime: 0.1},
			{Notes: []string{scale[4]}, Duration: 0.1, Instrument: domain.InstrumentMelody, StartTime: 0.2},
		}
	}
}

// PlayComposition cancels any in-flight session, then schedules every note
// of the composition against the sink's transport clock and starts it.
// The returned session ID identifies the playback for later cancellation.
func (s *Scheduler) PlayComposition(ctx context.Context, comp domain.Composition) (string, error) {
	if err := s.Cancel(ctx); err != nil {
		return "", err
	}
	if len(comp.Sections) == 0 {
		return "", nil
	}

	if err := s.sink.SetTempo(ctx, comp.Sections[0].Tempo); err != nil {
		return "", fmt.Errorf("scheduler: set tempo: %w", err)
	}

	for _, event := range CompositionEvents(comp) {
		if err := s.sink.Trigger(ctx, event); err != nil {
			return "", fmt.Errorf("scheduler: schedule: %w", err)
		}
	}

	if err := s.sink.Start(ctx); err != nil {
		return "", fmt.Errorf("scheduler: start transport: %w", err)
	}

	session := uuid.NewString()
	s.mu.Lock()
	s.session = session
	s.mu.Unlock()
	return session, nil
}

// CompositionEvents computes every trigger instruction up front. Each
// section starts at the cumulative duration of the sections before it, and
// its notes spread evenly across its own duration.
func CompositionEvents(comp domain.Composition) []domain.NoteEvent {
	var events []domain.NoteEvent
	var offset float64
	for _, section := range comp.Sections {
		if len(section.Notes) == 0 || section.Duration <= 0 {
			offset += section.Duration
			continue
		}
		step := section.Duration / float64(len(section.Notes))
		for i, note := range section.Notes {
			events = append(events, domain.NoteEvent{
				Notes:      []string{note},
				Duration:   step,
				Instrument: section.Instrument,
				StartTime:  offset + float64(i)*step,
			})
		}
		offset += section.Duration
	}
	return events
}

// Cancel stops any in-flight playback. Calling it while idle does nothing
// and never errors.
func (s *Scheduler) Cancel(ctx context.Context) error {
	s.mu.Lock()
	active := s.session
	s.session = ""
	s.mu.Unlock()

	if active == "" {
		return nil
	}
	if err := s.sink.CancelAllScheduled(ctx); err != nil {
		return fmt.Errorf("scheduler: cancel session %s: %w", active, err)
	}
	if err := s.sink.Stop(ctx); err != nil {
		return fmt.Errorf("scheduler: stop transport: %w", err)
	}
	return nil
}

// ActiveSession returns the live playback session ID, or "" when idle.
func (s *Scheduler) ActiveSession() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}
