package ports

import (
	"context"
	"errors"
	"fmt"

	"github.com/akashsahu54/symphony/internal/core/domain"
)

// ErrBackendUnavailable indicates the instrument backend cannot accept
// triggers (not started, unreachable, or unsupported).
var ErrBackendUnavailable = errors.New("instrument backend unavailable")

// TriggerError provides context for a failed note trigger.
type TriggerError struct {
	Instrument domain.Instrument
	Note       string
}

func (e TriggerError) Error() string {
	if e.Instrument == "" && e.Note == "" {
		return ErrBackendUnavailable.Error()
	}
	return fmt.Sprintf("trigger failed for note %q on instrument %q", e.Note, e.Instrument)
}

func (e TriggerError) Is(target error) bool {
	return target == ErrBackendUnavailable
}

// InstrumentSink is the minimal surface of the external synth service. The
// core is the sole source of timing and parameter decisions; the sink is a
// pure renderer. Implementations must treat CancelAllScheduled as
// idempotent — cancelling with nothing scheduled is not an error.
type InstrumentSink interface {
	SetTempo(ctx context.Context, bpm int) error
	Trigger(ctx context.Context, event domain.NoteEvent) error
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	CancelAllScheduled(ctx context.Context) error
}
