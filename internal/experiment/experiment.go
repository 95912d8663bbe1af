package experiment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/san-kum/kinelab/internal/dynamo"
	"github.com/san-kum/kinelab/internal/metrics"
	"github.com/san-kum/kinelab/internal/sim"
)

// Config describes one headless run. The run ends when the motion completes
// or simulated time reaches Duration.
type Config struct {
	Params          dynamo.Params `yaml:"params"`
	Dt              float64       `yaml:"dt"`
	Duration        float64       `yaml:"duration"`
	Speed           float64       `yaml:"speed"`
	HistoryCapacity int           `yaml:"history_capacity"`
}

type Result struct {
	RunID     uuid.UUID          `json:"run_id"`
	Params    dynamo.Params      `json:"params"`
	Dt        float64            `json:"dt"`
	Final     dynamo.State       `json:"final"`
	Completed bool               `json:"completed"`
	Metrics   map[string]float64 `json:"metrics"`
	Elapsed   time.Duration      `json:"elapsed"`
}

func (r *Result) Steps() int { return r.Final.Steps() }

type Experiment struct {
	cfg     Config
	logger  *zap.Logger
	metrics []metrics.Metric
}

type Option func(*Experiment)

func WithLogger(l *zap.Logger) Option {
	return func(e *Experiment) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithMetrics replaces the default metric set of the motion type.
func WithMetrics(ms ...metrics.Metric) Option {
	return func(e *Experiment) { e.metrics = ms }
}

func New(cfg Config, opts ...Option) *Experiment {
	e := &Experiment{cfg: cfg, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	if e.metrics == nil {
		e.metrics = metrics.Defaults(cfg.Params)
	}
	return e
}

func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if !(e.cfg.Dt > 0) {
		return nil, fmt.Errorf("%w: dt must be positive, got %g", dynamo.ErrInvalidArgument, e.cfg.Dt)
	}
	if !(e.cfg.Duration > 0) {
		return nil, fmt.Errorf("%w: duration must be positive, got %g", dynamo.ErrInvalidArgument, e.cfg.Duration)
	}

	capacity := e.cfg.HistoryCapacity
	if capacity <= 0 {
		capacity = sim.MaxHistoryCapacity
		if n := e.cfg.Duration / e.cfg.Dt; n < sim.MaxHistoryCapacity {
			capacity = int(n) + 1
		}
	}
	log := e.logger.Named("experiment")
	d, err := sim.NewDriver(e.cfg.Params,
		sim.WithLogger(log),
		sim.WithSpeed(e.cfg.Speed),
		sim.WithHistoryCapacity(capacity))
	if err != nil {
		return nil, err
	}

	for _, m := range e.metrics {
		m.Reset()
	}
	observed := 0
	last := d.Snapshot()
	cancel := d.Subscribe(func(s sim.Snapshot) {
		h := s.State.History
		for _, sample := range h[observed:] {
			for _, m := range e.metrics {
				m.Observe(sample)
			}
		}
		observed = len(h)
		last = s
	})
	defer cancel()

	start := time.Now()
	progress := rate.Sometimes{Interval: time.Second}
	d.SetPlaying(true)

	for last.Phase != sim.PhaseCompleted && last.State.Time < e.cfg.Duration {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := d.Tick(e.cfg.Dt); err != nil {
			return nil, fmt.Errorf("run %s: %w", last.RunID, err)
		}
		progress.Do(func() {
			log.Debug("progress",
				zap.Stringer("run", last.RunID),
				zap.Float64("t", last.State.Time),
				zap.Int("steps", last.State.Steps()))
		})
	}

	return &Result{
		RunID:     last.RunID,
		Params:    last.Params,
		Dt:        e.cfg.Dt * last.Speed,
		Final:     last.State,
		Completed: last.Phase == sim.PhaseCompleted,
		Metrics:   metrics.Values(e.metrics),
		Elapsed:   time.Since(start),
	}, nil
}
