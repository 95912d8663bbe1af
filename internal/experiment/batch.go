package experiment

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

type Job struct {
	Name   string
	Config Config
}

type JobResult struct {
	Name   string
	Result *Result
	Err    error
}

// RunBatch runs independent jobs concurrently. A failing job does not stop
// the others; results come back in job order. As with RunSweep, opts must
// not carry metric instances.
func RunBatch(ctx context.Context, jobs []Job, concurrency int, opts ...Option) []JobResult {
	results := make([]JobResult, len(jobs))
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}

	var g errgroup.Group
	g.SetLimit(concurrency)
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			res, err := New(job.Config, opts...).Run(ctx)
			results[i] = JobResult{Name: job.Name, Result: res, Err: err}
			return nil
		})
	}
	_ = g.Wait()
	return results
}
