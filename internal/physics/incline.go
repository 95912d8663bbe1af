package physics

import (
	"math"

	"github.com/san-kum/kinelab/internal/dynamo"
	"github.com/san-kum/kinelab/internal/integrators"
)

// Incline slides a crate from the top of a ramp of horizontal run RampRun.
// VelX holds the speed along the slope; friction is not modelled.
type Incline struct{}

func (Incline) Type() dynamo.MotionType { return dynamo.InclinedPlane }

func (Incline) Init(p dynamo.Params) dynamo.State {
	rad := p.AngleRad()
	return dynamo.State{
		PosX: RampX,
		PosY: math.Tan(rad) * RampRun,
		AccX: p.Gravity * math.Sin(rad),
		AccY: -p.Gravity * math.Cos(rad),
	}
}

func (Incline) Validate(dynamo.Params) error { return nil }

func (Incline) Advance(s dynamo.State, p dynamo.Params, dt float64) dynamo.State {
	rad := p.AngleRad()
	s.VelX = integrators.Velocity(s.VelX, p.Gravity*math.Sin(rad), dt)
	s.PosX += s.VelX * dt * math.Cos(rad)
	s.PosY -= s.VelX * dt * math.Sin(rad)
	if s.PosY <= 0 {
		s.PosY = 0
		s.Completed = true
	}
	return s
}

// RampTop is the start point of the slide.
func (Incline) RampTop(p dynamo.Params) (x, y float64) {
	return RampX, math.Tan(p.AngleRad()) * RampRun
}
