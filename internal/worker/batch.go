package worker

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ppiankov/lapidary/internal/model"
)

// Runner performs one identification. Satisfied by pipeline.Pipeline.
type Runner interface {
	Identify(ctx context.Context, c model.Criteria) (*model.Report, error)
}

// BatchProcessor identifies many measurement sets concurrently. Input is
// JSON Lines: one criteria object per line, blank lines and '#' comments
// skipped.
type BatchProcessor struct {
	runner      Runner
	concurrency int
	limiter     *Limiter
}

// NewBatchProcessor creates a batch processor. maxEvalRate caps
// identifications per second; non-positive means unlimited.
func NewBatchProcessor(runner Runner, concurrency int, maxEvalRate float64) *BatchProcessor {
	return &BatchProcessor{
		runner:      runner,
		concurrency: concurrency,
		limiter:     NewLimiter(maxEvalRate, concurrency),
	}
}

// ProcessFile reads the input file and identifies every line. Per-line
// failures (bad JSON, empty criteria handled downstream) are returned as
// results with Err set; only input I/O aborts the batch. Results are
// ordered by input line.
func (b *BatchProcessor) ProcessFile(ctx context.Context, path string) ([]JobResult, error) {
	jobs, parseFailures, err := readJobs(path)
	if err != nil {
		return nil, err
	}

	results := b.process(ctx, jobs)
	results = append(results, parseFailures...)

	sort.Slice(results, func(i, j int) bool {
		return results[i].Line < results[j].Line
	})
	return results, nil
}

func (b *BatchProcessor) process(ctx context.Context, jobs []Job) []JobResult {
	if len(jobs) == 0 {
		return []JobResult{}
	}

	pool := NewPool(b.concurrency, func(ctx context.Context, job Job) JobResult {
		if err := b.limiter.Wait(ctx); err != nil {
			return JobResult{Line: job.Line, Err: err}
		}
		report, err := b.runner.Identify(ctx, job.Criteria)
		return JobResult{Line: job.Line, Report: report, Err: err}
	})
	pool.Start()

	// Stop workers if the batch context expires; Submit drops jobs once
	// the pool is shut down, so the loop below always terminates.
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			pool.Shutdown()
		case <-done:
		}
	}()

	for _, job := range jobs {
		pool.Submit(job)
	}
	results := pool.Wait()
	close(done)
	return results
}

// readJobs parses the JSONL input. Unparseable lines become failed
// results instead of aborting the batch.
func readJobs(path string) ([]Job, []JobResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open batch input: %w", err)
	}
	defer f.Close()

	var (
		jobs     []Job
		failures []JobResult
		line     int
	)

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		var criteria model.Criteria
		if err := json.Unmarshal([]byte(text), &criteria); err != nil {
			failures = append(failures, JobResult{
				Line: line,
				Err:  fmt.Errorf("line %d: decode criteria: %w", line, err),
			})
			continue
		}

		jobs = append(jobs, Job{Line: line, Criteria: criteria})
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("read batch input: %w", err)
	}

	return jobs, failures, nil
}
