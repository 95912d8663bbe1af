package experiment

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/kinelab/internal/dynamo"
)

// Sweep varies one parameter over an evenly spaced range.
type Sweep struct {
	Base        dynamo.Params
	Param       string
	From, To    float64
	Steps       int
	Dt          float64
	Duration    float64
	Concurrency int
}

type SweepPoint struct {
	Value  float64
	Result *Result
}

// Values returns the parameter values the sweep visits.
func (s Sweep) Values() []float64 {
	if s.Steps <= 1 {
		return []float64{s.From}
	}
	out := make([]float64, s.Steps)
	step := (s.To - s.From) / float64(s.Steps-1)
	for i := range out {
		out[i] = s.From + float64(i)*step
	}
	return out
}

// RunSweep runs every point concurrently. Points come back in sweep order;
// the first failure cancels the rest. opts are applied to every run, so they
// must not carry metric instances.
func RunSweep(ctx context.Context, s Sweep, opts ...Option) ([]SweepPoint, error) {
	values := s.Values()
	points := make([]SweepPoint, len(values))

	limit := s.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	params := make([]dynamo.Params, len(values))
	for i, v := range values {
		p := s.Base
		if err := p.SetParam(s.Param, v); err != nil {
			return nil, err
		}
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("sweep %s=%g: %w", s.Param, v, err)
		}
		params[i] = p
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, v := range values {
		i, v := i, v
		g.Go(func() error {
			res, err := New(Config{Params: params[i], Dt: s.Dt, Duration: s.Duration, Speed: 1}, opts...).Run(ctx)
			if err != nil {
				return fmt.Errorf("sweep %s=%g: %w", s.Param, v, err)
			}
			points[i] = SweepPoint{Value: v, Result: res}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return points, nil
}

// Best returns the point with the largest (or smallest) value of metric.
// Points without the metric are skipped.
func Best(points []SweepPoint, metric string, maximize bool) (SweepPoint, bool) {
	var best SweepPoint
	bestVal := math.Inf(1)
	if maximize {
		bestVal = math.Inf(-1)
	}
	found := false

	for _, pt := range points {
		if pt.Result == nil {
			continue
		}
		v, ok := pt.Result.Metrics[metric]
		if !ok {
			continue
		}
		if (maximize && v > bestVal) || (!maximize && v < bestVal) {
			best, bestVal, found = pt, v, true
		}
	}
	return best, found
}
