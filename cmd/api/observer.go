package main

import (
	"log"
	"time"

	"github.com/akashsahu54/symphony/internal/core/domain"
)

// logObserver writes performance samples to the process log. It stands in
// for a metrics backend; the core only ever sees the observer port.
type logObserver struct{}

func (logObserver) ObserveAnalysis(elapsed time.Duration, mood domain.Mood) {
	log.Printf("analysis completed in %s (%s)", elapsed, mood)
}

func (logObserver) ObservePreviewEnergy(compositionID string, energy float64) {
	log.Printf("composition %s preview energy %.2f", compositionID, energy)
}
