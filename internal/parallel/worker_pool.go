// Copyright LMP Consulting GmbH or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package parallel fans per-code evaluation out over a bounded set of worker
// goroutines. Evaluating one code never touches mutable state shared with
// another — the master list index and neighbor sequences are read-only — so
// results may arrive in any order and are restored to document order
// afterwards.
package parallel

import (
	"context"
	"runtime"
	"sync"
	"time"

	"pdf-code-comparator/internal/match"
	"pdf-code-comparator/internal/observability"
)

// WorkerPool manages parallel code evaluation
type WorkerPool struct {
	workers  int
	jobs     chan *Job
	results  chan *Result
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
	observer *observability.StandardObserver
}

// Job represents one code evaluation task
type Job struct {
	Index    int // position in the submitted sequence
	Code     match.RawCode
	Evaluate func(match.RawCode) match.Result
}

// Result represents one evaluation outcome
type Result struct {
	Index    int
	Outcome  match.Result
	Duration time.Duration
}

// NewWorkerPool creates a worker pool with the given concurrency limit.
// A limit of zero or less falls back to GOMAXPROCS.
func NewWorkerPool(workers int, observer *observability.StandardObserver) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	ctx, cancel := context.WithCancel(context.Background())

	return &WorkerPool{
		workers:  workers,
		jobs:     make(chan *Job, workers*2),
		results:  make(chan *Result, workers*2),
		ctx:      ctx,
		cancel:   cancel,
		observer: observer,
	}
}

// Start initializes worker goroutines
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.workers; i++ {
		wp.wg.Add(1)
		go wp.worker(i)
	}
}

// Stop closes the job queue, waits for workers to drain it, and closes the
// results channel.
func (wp *WorkerPool) Stop() {
	close(wp.jobs)
	wp.wg.Wait()
	close(wp.results)
	wp.cancel()
}

// Submit adds a job to the queue
func (wp *WorkerPool) Submit(job *Job) {
	select {
	case wp.jobs <- job:
	case <-wp.ctx.Done():
	}
}

// Results returns the results channel
func (wp *WorkerPool) Results() <-chan *Result {
	return wp.results
}

// worker processes jobs from the queue
func (wp *WorkerPool) worker(id int) {
	defer wp.wg.Done()

	for job := range wp.jobs {
		start := time.Now()
		outcome := job.Evaluate(job.Code)
		duration := time.Since(start)

		wp.observer.LogOperation(observability.StandardObservabilityData{
			Component: "worker_pool",
			Operation: "evaluate_code",
			Target:    job.Code.Text,
			Success:   true,
			Metadata: map[string]interface{}{
				"worker_id":      id,
				"classification": string(outcome.Classification),
				"duration_ms":    duration.Milliseconds(),
			},
		})

		select {
		case wp.results <- &Result{Index: job.Index, Outcome: outcome, Duration: duration}:
		case <-wp.ctx.Done():
			return
		}
	}
}

// Map evaluates every code through a bounded pool and returns the outcomes
// restored to submission order.
func Map(codes []match.RawCode, workers int, observer *observability.StandardObserver, evaluate func(match.RawCode) match.Result) []match.Result {
	if len(codes) == 0 {
		return nil
	}

	pool := NewWorkerPool(workers, observer)
	pool.Start()

	go func() {
		for i, code := range codes {
			pool.Submit(&Job{Index: i, Code: code, Evaluate: evaluate})
		}
		pool.Stop()
	}()

	ordered := make([]match.Result, len(codes))
	for result := range pool.Results() {
		ordered[result.Index] = result.Outcome
	}
	return ordered
}
