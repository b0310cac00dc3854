package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ppiankov/lapidary/internal/model"
)

func TestPool_ExecutesAllJobs(t *testing.T) {
	var executed int32
	pool := NewPool(4, func(ctx context.Context, job Job) JobResult {
		atomic.AddInt32(&executed, 1)
		return JobResult{Line: job.Line}
	})
	pool.Start()

	for i := 1; i <= 20; i++ {
		pool.Submit(Job{Line: i})
	}
	results := pool.Wait()

	if len(results) != 20 {
		t.Errorf("Expected 20 results, got %d", len(results))
	}
	if atomic.LoadInt32(&executed) != 20 {
		t.Errorf("Expected 20 executions, got %d", executed)
	}

	seen := make(map[int]bool)
	for _, r := range results {
		seen[r.Line] = true
	}
	for i := 1; i <= 20; i++ {
		if !seen[i] {
			t.Errorf("Missing result for line %d", i)
		}
	}
}

func TestPool_CarriesErrorsAsData(t *testing.T) {
	wantErr := errors.New("catalog unavailable")
	pool := NewPool(2, func(ctx context.Context, job Job) JobResult {
		if job.Line%2 == 0 {
			return JobResult{Line: job.Line, Err: wantErr}
		}
		return JobResult{Line: job.Line, Report: &model.Report{}}
	})
	pool.Start()

	for i := 1; i <= 4; i++ {
		pool.Submit(Job{Line: i})
	}
	results := pool.Wait()

	var failed, succeeded int
	for _, r := range results {
		if r.Err != nil {
			failed++
		} else {
			succeeded++
		}
	}
	if failed != 2 || succeeded != 2 {
		t.Errorf("Expected 2 failures and 2 successes, got %d/%d", failed, succeeded)
	}
}

func TestPool_MinimumOneWorker(t *testing.T) {
	pool := NewPool(0, func(ctx context.Context, job Job) JobResult {
		return JobResult{Line: job.Line}
	})
	pool.Start()
	pool.Submit(Job{Line: 1})
	results := pool.Wait()

	if len(results) != 1 {
		t.Errorf("Expected pool with zero workers to clamp to one, got %d results", len(results))
	}
}

func TestPool_Shutdown(t *testing.T) {
	started := make(chan struct{}, 8)
	pool := NewPool(2, func(ctx context.Context, job Job) JobResult {
		started <- struct{}{}
		select {
		case <-ctx.Done():
			return JobResult{Line: job.Line, Err: ctx.Err()}
		case <-time.After(5 * time.Second):
			return JobResult{Line: job.Line}
		}
	})
	pool.Start()
	pool.Submit(Job{Line: 1})
	pool.Submit(Job{Line: 2})

	// Let workers pick the jobs up, then cancel.
	<-started
	<-started
	done := make(chan struct{})
	go func() {
		pool.Shutdown()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Shutdown did not complete in time")
	}
}
