package worker

import (
	"context"
	"sync"

	"github.com/ppiankov/lapidary/internal/model"
)

// Job is one identification request from a batch input file.
type Job struct {
	// Line is the 1-based input line number, used to name report files
	// and to keep output attributable to its input.
	Line     int
	Criteria model.Criteria
}

// JobResult is the outcome of one identification job. Errors are data:
// a failed line never aborts the batch.
type JobResult struct {
	Line   int
	Report *model.Report
	Err    error
}

// RunFunc performs a single identification.
type RunFunc func(ctx context.Context, job Job) JobResult

// Pool executes identification jobs on a fixed number of workers.
// Results are drained by a dedicated collector goroutine, so submitters
// never deadlock against a full results channel.
type Pool struct {
	workers   int
	run       RunFunc
	jobs      chan Job
	results   chan JobResult
	collected []JobResult
	wg        sync.WaitGroup
	collectWG sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// NewPool creates a pool with the given worker count (minimum 1).
func NewPool(workers int, run RunFunc) *Pool {
	if workers <= 0 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Pool{
		workers: workers,
		run:     run,
		jobs:    make(chan Job, workers*2), // Buffered to prevent blocking
		results: make(chan JobResult, workers*2),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start launches the workers and the result collector.
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}

	p.collectWG.Add(1)
	go func() {
		defer p.collectWG.Done()
		for result := range p.results {
			p.collected = append(p.collected, result)
		}
	}()
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobs:
			if !ok {
				return
			}
			result := p.run(p.ctx, job)
			select {
			case p.results <- result:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// Submit queues a job for execution. Submissions after shutdown are dropped.
func (p *Pool) Submit(job Job) {
	select {
	case <-p.ctx.Done():
	case p.jobs <- job:
	}
}

// Wait closes the queue, waits for all jobs to finish, and returns every
// collected result.
func (p *Pool) Wait() []JobResult {
	close(p.jobs)
	p.wg.Wait()
	p.closeResults()
	p.collectWG.Wait()
	return p.collected
}

// Shutdown cancels outstanding work immediately. Results already
// collected remain retrievable through Wait.
func (p *Pool) Shutdown() {
	p.cancel()
	p.wg.Wait()
	p.closeResults()
	p.collectWG.Wait()
}

func (p *Pool) closeResults() {
	p.closeOnce.Do(func() {
		close(p.results)
	})
}
