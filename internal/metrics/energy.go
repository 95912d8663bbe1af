package metrics

import (
	"math"

	"github.com/san-kum/kinelab/internal/dynamo"
	"github.com/san-kum/kinelab/internal/physics"
)

// Energy returns the mechanical energy function of p's motion. Newton runs
// are driven by an external force and return nil.
func Energy(p dynamo.Params) func(dynamo.Sample) float64 {
	switch p.Motion {
	case dynamo.Spring:
		return func(s dynamo.Sample) float64 {
			return physics.SpringMass{}.Energy(s, p)
		}
	case dynamo.InclinedPlane:
		// VX is the speed along the slope
		return func(s dynamo.Sample) float64 {
			return p.Mass * (p.Gravity*s.Y + 0.5*s.VX*s.VX)
		}
	case dynamo.Projectile, dynamo.FreeFall, dynamo.VerticalThrow:
		return func(s dynamo.Sample) float64 {
			return p.Mass * (p.Gravity*s.Y + 0.5*(s.VX*s.VX+s.VY*s.VY))
		}
	}
	return nil
}

// EnergyDrift is the largest relative departure from the first observed
// energy. If that energy is zero the drift is absolute.
type EnergyDrift struct {
	energy   func(dynamo.Sample) float64
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift(energy func(dynamo.Sample) float64) *EnergyDrift {
	return &EnergyDrift{energy: energy}
}

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) Observe(s dynamo.Sample) {
	if e.energy == nil {
		return
	}
	energy := e.energy(s)
	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++

	drift := math.Abs(energy - e.initial)
	if e.initial != 0 {
		drift /= math.Abs(e.initial)
	}
	e.maxDrift = math.Max(e.maxDrift, drift)
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}
