// Package worker provides background processing for track-related jobs.
package worker

import (
	"context"
	"log"
	"sync"

	"github.com/moodlifter-labs/moodlifter/internal/core/ports"
)

// Job asks the pool to analyze one stored track's preview clip.
type Job struct {
	RunID   string
	TrackID string
}

// Pool manages background workers for preview-energy analysis.
type Pool struct {
	catalog ports.CatalogProvider
	history ports.HistoryRepository
	jobs    chan Job
	wg      sync.WaitGroup
}

// NewPool creates a worker pool with the given queue size.
func NewPool(catalog ports.CatalogProvider, history ports.HistoryRepository, queueSize int) *Pool {
	if queueSize < 1 {
		queueSize = 1
	}
	return &Pool{catalog: catalog, history: history, jobs: make(chan Job, queueSize)}
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
		log.Printf("WARN worker: dropping job for %s", job.TrackID)
	}
}

func (p *Pool) processJob(job Job) {
	ctx := context.Background()

	detail, err := p.catalog.GetTrack(ctx, job.TrackID)
	if err != nil {
		log.Printf("WARN worker: failed to fetch track %s: %v", job.TrackID, err)
		return
	}
	if detail.PreviewURL == "" {
		log.Printf("DEBUG worker: no preview URL for track %s, skipping analysis", job.TrackID)
		return
	}

	energy, err := AnalyzePreviewFunc(detail.PreviewURL)
	if err != nil {
		log.Printf("WARN worker: preview analysis failed for %s: %v", job.TrackID, err)
		return
	}

	if err := p.history.UpdateTrackEnergy(ctx, job.RunID, job.TrackID, energy); err != nil {
		log.Printf("WARN worker: failed to update track %s: %v", job.TrackID, err)
		return
	}
	log.Printf("DEBUG worker: stored energy %.3f for track %s", energy, job.TrackID)
}
