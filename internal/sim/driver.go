package sim

import (
	"fmt"
	"math"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/san-kum/kinelab/internal/dynamo"
	"github.com/san-kum/kinelab/internal/physics"
)

const (
	DefaultHistoryCapacity = 4096
	// MaxHistoryCapacity bounds preallocation; longer runs grow by append.
	MaxHistoryCapacity = 1 << 16
)

// Driver owns the live state of one run and advances it on external ticks.
// All mutators are safe for concurrent use. Subscribers run on the
// goroutine of the mutator that published, after the state lock is
// released, one delivery at a time and in publication order. A snapshot
// older than one already delivered is dropped. Subscribers must not call
// mutators of the same driver.
type Driver struct {
	mu sync.Mutex

	// notifyMu serialises delivery; delivered is the last Seq handed out.
	notifyMu  sync.Mutex
	delivered uint64

	logger     *zap.Logger
	historyCap int

	params  dynamo.Params
	state   dynamo.State
	runID   uuid.UUID
	speed   float64
	playing bool
	started bool
	seq     uint64

	subs    []subscription
	nextSub int
}

type subscription struct {
	id int
	fn func(Snapshot)
}

type Option func(*Driver)

func WithLogger(l *zap.Logger) Option {
	return func(d *Driver) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithSpeed sets the initial speed factor. Non-positive values are ignored.
func WithSpeed(f float64) Option {
	return func(d *Driver) {
		if f > 0 && !math.IsInf(f, 0) {
			d.speed = f
		}
	}
}

// WithHistoryCapacity preallocates the history buffer of every run, up to
// MaxHistoryCapacity samples.
func WithHistoryCapacity(n int) Option {
	return func(d *Driver) {
		if n >= 0 {
			d.historyCap = min(n, MaxHistoryCapacity)
		}
	}
}

func NewDriver(p dynamo.Params, opts ...Option) (*Driver, error) {
	d := &Driver{
		logger:     zap.NewNop(),
		historyCap: DefaultHistoryCapacity,
		speed:      1,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.logger = d.logger.Named("driver")

	if err := p.Validate(); err != nil {
		return nil, err
	}
	d.load(p)
	return d, nil
}

// SetParameters replaces the run with a fresh one for p and pauses.
func (d *Driver) SetParameters(p dynamo.Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	d.mu.Lock()
	d.load(p)
	snap, subs := d.publishLocked()
	d.mu.Unlock()

	d.logger.Debug("parameters set",
		zap.Stringer("run", snap.RunID),
		zap.Stringer("motion", p.Motion))
	d.notify(subs, snap)
	return nil
}

// Reset restarts the current parameter set from t = 0.
func (d *Driver) Reset() {
	d.mu.Lock()
	d.load(d.params)
	snap, subs := d.publishLocked()
	d.mu.Unlock()

	d.logger.Debug("reset", zap.Stringer("run", snap.RunID))
	d.notify(subs, snap)
}

func (d *Driver) SetPlaying(playing bool) {
	d.mu.Lock()
	if d.playing == playing || d.state.Completed {
		d.mu.Unlock()
		return
	}
	d.playing = playing
	if playing {
		d.started = true
	}
	snap, subs := d.publishLocked()
	d.mu.Unlock()

	d.logger.Debug("phase", zap.Stringer("phase", snap.Phase))
	d.notify(subs, snap)
}

// SetSpeed sets the wall-clock to simulation-time factor.
func (d *Driver) SetSpeed(f float64) error {
	if !(f > 0) || math.IsInf(f, 0) {
		return fmt.Errorf("%w: speed must be positive, got %g", dynamo.ErrInvalidArgument, f)
	}
	d.mu.Lock()
	d.speed = f
	snap, subs := d.publishLocked()
	d.mu.Unlock()

	d.notify(subs, snap)
	return nil
}

// Tick advances the run by wallClockDt scaled by the speed factor. It does
// nothing while paused or after completion.
func (d *Driver) Tick(wallClockDt float64) error {
	d.mu.Lock()
	if !d.playing || d.state.Completed {
		d.mu.Unlock()
		return nil
	}

	next, err := Step(d.state, d.params, wallClockDt*d.speed)
	if err != nil {
		d.mu.Unlock()
		d.logger.Warn("step failed", zap.Error(err))
		return err
	}
	d.state = next
	snap, subs := d.publishLocked()
	d.mu.Unlock()

	if snap.Phase == PhaseCompleted {
		d.logger.Info("run completed",
			zap.Stringer("run", snap.RunID),
			zap.Stringer("motion", snap.Params.Motion),
			zap.Float64("t", snap.State.Time),
			zap.Int("steps", snap.State.Steps()))
	}
	d.notify(subs, snap)
	return nil
}

func (d *Driver) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.snapshotLocked()
}

func (d *Driver) Phase() Phase {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.phaseLocked()
}

func (d *Driver) Params() dynamo.Params {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.params
}

// Subscribe registers fn for every published snapshot. The returned
// function removes it.
func (d *Driver) Subscribe(fn func(Snapshot)) (cancel func()) {
	d.mu.Lock()
	id := d.nextSub
	d.nextSub++
	d.subs = append(d.subs, subscription{id: id, fn: fn})
	d.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			d.mu.Lock()
			defer d.mu.Unlock()
			for i, s := range d.subs {
				if s.id == id {
					d.subs = append(d.subs[:i:i], d.subs[i+1:]...)
					return
				}
			}
		})
	}
}

func (d *Driver) load(p dynamo.Params) {
	s := physics.Initialize(p)
	s.History = make([]dynamo.Sample, 0, d.historyCap)

	d.params = p
	d.state = s
	d.runID = uuid.New()
	d.playing = false
	d.started = false
}

func (d *Driver) phaseLocked() Phase {
	switch {
	case d.state.Completed:
		return PhaseCompleted
	case d.playing:
		return PhaseRunning
	case d.started:
		return PhasePaused
	}
	return PhaseIdle
}

func (d *Driver) snapshotLocked() Snapshot {
	return Snapshot{
		Seq:    d.seq,
		RunID:  d.runID,
		Phase:  d.phaseLocked(),
		Speed:  d.speed,
		Params: d.params,
		State:  d.state.View(),
	}
}

func (d *Driver) publishLocked() (Snapshot, []subscription) {
	d.seq++
	if len(d.subs) == 0 {
		return d.snapshotLocked(), nil
	}
	subs := make([]subscription, len(d.subs))
	copy(subs, d.subs)
	return d.snapshotLocked(), subs
}

func (d *Driver) notify(subs []subscription, snap Snapshot) {
	d.notifyMu.Lock()
	defer d.notifyMu.Unlock()
	if snap.Seq <= d.delivered {
		return
	}
	d.delivered = snap.Seq
	for _, s := range subs {
		s.fn(snap)
	}
}
