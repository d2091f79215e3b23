package reviews

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrQueueFull is returned when the job buffer cannot take another ingestion.
var ErrQueueFull = errors.New("ingestion queue is full")

// Dispatcher runs submitted jobs on a fixed worker pool, detached from any
// request lifetime. A started job always runs to completion; there is no
// cancellation path besides the per-job timeout.
type Dispatcher struct {
	jobs       chan func(ctx context.Context)
	workers    int
	jobTimeout time.Duration

	startOnce sync.Once
	stopOnce  sync.Once
	wg        sync.WaitGroup
}

func NewDispatcher(workers, buffer int) *Dispatcher {
	if workers <= 0 {
		workers = 4
	}
	if buffer <= 0 {
		buffer = 64
	}
	return &Dispatcher{
		jobs:       make(chan func(ctx context.Context), buffer),
		workers:    workers,
		jobTimeout: 10 * time.Minute,
	}
}

// Start launches the worker goroutines. Idempotent.
func (d *Dispatcher) Start() {
	d.startOnce.Do(func() {
		for i := 0; i < d.workers; i++ {
			d.wg.Add(1)
			go d.worker()
		}
	})
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for job := range d.jobs {
		// Jobs get a fresh context so a disconnected HTTP caller cannot
		// cancel an in-flight ingestion.
		ctx, cancel := context.WithTimeout(context.Background(), d.jobTimeout)
		job(ctx)
		cancel()
	}
}

// Submit queues a job without blocking.
func (d *Dispatcher) Submit(job func(ctx context.Context)) error {
	select {
	case d.jobs <- job:
		return nil
	default:
		return ErrQueueFull
	}
}

// Stop closes the queue and waits for in-flight jobs to drain.
func (d *Dispatcher) Stop() {
	d.stopOnce.Do(func() {
		close(d.jobs)
	})
	d.wg.Wait()
}
