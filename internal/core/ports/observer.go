package ports

import (
	"time"

	"github.com/akashsahu54/symphony/internal/core/domain"
)

// PerformanceObserver receives timing and loudness samples from the core.
// It is optional: the core stays a pure function of its inputs and merely
// reports to whatever observer was injected.
type PerformanceObserver interface {
	ObserveAnalysis(elapsed time.Duration, mood domain.Mood)
	ObservePreviewEnergy(compositionID string, energy float64)
}

// NopObserver discards every sample.
type NopObserver struct{}

func (NopObserver) ObserveAnalysis(time.Duration, domain.Mood) {}

func (NopObserver) ObservePreviewEnergy(string, float64) {}
