package metrics

import (
	"math"

	"github.com/san-kum/kinelab/internal/dynamo"
	"github.com/san-kum/kinelab/internal/physics"
)

type MaxHeight struct {
	max  float64
	seen bool
}

func NewMaxHeight() *MaxHeight { return &MaxHeight{} }

func (m *MaxHeight) Name() string { return "max_height" }

func (m *MaxHeight) Observe(s dynamo.Sample) {
	if !m.seen || s.Y > m.max {
		m.max = s.Y
	}
	m.seen = true
}

func (m *MaxHeight) Value() float64 { return m.max }

func (m *MaxHeight) Reset() { *m = MaxHeight{} }

// Distance is the horizontal travel from the first observed sample.
type Distance struct {
	start, last float64
	seen        bool
}

func NewDistance() *Distance { return &Distance{} }

func (d *Distance) Name() string { return "distance" }

func (d *Distance) Observe(s dynamo.Sample) {
	if !d.seen {
		d.start = s.X
		d.seen = true
	}
	d.last = s.X
}

func (d *Distance) Value() float64 { return math.Abs(d.last - d.start) }

func (d *Distance) Reset() { *d = Distance{} }

type PeakSpeed struct {
	peak float64
}

func NewPeakSpeed() *PeakSpeed { return &PeakSpeed{} }

func (p *PeakSpeed) Name() string { return "peak_speed" }

func (p *PeakSpeed) Observe(s dynamo.Sample) {
	p.peak = math.Max(p.peak, s.Speed())
}

func (p *PeakSpeed) Value() float64 { return p.peak }

func (p *PeakSpeed) Reset() { p.peak = 0 }

// Amplitude is the largest excursion from the spring equilibrium.
type Amplitude struct {
	max float64
}

func NewAmplitude() *Amplitude { return &Amplitude{} }

func (a *Amplitude) Name() string { return "amplitude" }

func (a *Amplitude) Observe(s dynamo.Sample) {
	a.max = math.Max(a.max, math.Abs(s.X-physics.SpringEquilibrium))
}

func (a *Amplitude) Value() float64 { return a.max }

func (a *Amplitude) Reset() { a.max = 0 }
