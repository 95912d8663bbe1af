package physics

import (
	"math"

	"github.com/san-kum/kinelab/internal/dynamo"
	"github.com/san-kum/kinelab/internal/integrators"
)

// SpringMass is an undamped horizontal oscillator about SpringEquilibrium.
// It never completes.
type SpringMass struct{}

func (SpringMass) Type() dynamo.MotionType { return dynamo.Spring }

// Init releases the mass from rest at equilibrium plus the optional
// displacement. Without one the mass stays put.
func (SpringMass) Init(p dynamo.Params) dynamo.State {
	return dynamo.State{PosX: SpringEquilibrium + p.DisplacementOrZero(), AccY: -p.Gravity}
}

func (SpringMass) Validate(p dynamo.Params) error {
	return requirePositiveMass(p)
}

func (SpringMass) Advance(s dynamo.State, p dynamo.Params, dt float64) dynamo.State {
	s.AccX = -p.Stiffness() * (s.PosX - SpringEquilibrium) / p.Mass
	s.PosX, s.VelX = integrators.SemiImplicit(s.PosX, s.VelX, s.AccX, dt)
	return s
}

// Period is the analytic period 2π√(m/k).
func (SpringMass) Period(p dynamo.Params) float64 {
	return 2 * math.Pi * math.Sqrt(p.Mass/p.Stiffness())
}

// Energy is kinetic plus elastic energy.
func (SpringMass) Energy(s dynamo.Sample, p dynamo.Params) float64 {
	d := s.X - SpringEquilibrium
	return 0.5*p.Mass*s.VX*s.VX + 0.5*p.Stiffness()*d*d
}
