// Package worker provides background processing for rendered-preview jobs.
package worker

import (
	"log"
	"sync"

	"github.com/akashsahu54/symphony/internal/core/ports"
)

// Job asks for loudness analysis of one composition's rendered preview.
type Job struct {
	CompositionID string
	PreviewURL    string
}

// Pool manages background workers for preview analysis. Workers stay off
// the interaction path: scheduling a composition never waits on them.
type Pool struct {
	observer ports.PerformanceObserver
	jobs     chan Job
	wg       sync.WaitGroup
}

// NewPool creates a worker pool reporting to the given observer.
func NewPool(observer ports.PerformanceObserver, queueSize int) *Pool {
	if observer == nil {
		observer = ports.NopObserver{}
	}
	if queueSize < 1 {
		queueSize = 1
	}
	return &Pool{observer: observer, jobs: make(chan Job, queueSize)}
}

// Start launches the worker goroutines.
func (p *Pool) Start(workers int) {
	if workers < 1 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				p.processJob(job)
			}
		}()
	}
}

// Stop waits for workers to finish after closing the queue.
func (p *Pool) Stop() {
	close(p.jobs)
	p.wg.Wait()
}

// Submit queues a job without blocking.
func (p *Pool) Submit(job Job) {
	select {
	case p.jobs <- job:
	default:
		log.Printf("WARN worker: dropping preview job for %s", job.CompositionID)
	}
}

func (p *Pool) processJob(job Job) {
	if job.PreviewURL == "" {
		log.Printf("WARN worker: no preview URL for composition %s, skipping", job.CompositionID)
		return
	}

	energy, err := AnalyzePreviewFunc(job.PreviewURL)
	if err != nil {
		log.Printf("WARN worker: preview analysis failed for %s: %v", job.CompositionID, err)
		return
	}

	p.observer.ObservePreviewEnergy(job.CompositionID, energy)
	log.Printf("worker: composition %s rendered at energy %.2f", job.CompositionID, energy)
}
