package physics

import (
	"github.com/san-kum/kinelab/internal/dynamo"
	"github.com/san-kum/kinelab/internal/integrators"
)

// Newton pushes a block along the floor with a constant force until it
// passes TravelLimit.
type Newton struct{}

func (Newton) Type() dynamo.MotionType { return dynamo.NewtonSecondLaw }

func (Newton) Init(p dynamo.Params) dynamo.State {
	s := dynamo.State{PosX: LaunchX}
	if p.Force != nil && p.Mass != 0 {
		s.AccX = *p.Force / p.Mass
	}
	return s
}

func (Newton) Validate(p dynamo.Params) error {
	return requirePositiveMass(p)
}

func (Newton) Advance(s dynamo.State, _ dynamo.Params, dt float64) dynamo.State {
	s.PosX, s.VelX = integrators.SemiImplicit(s.PosX, s.VelX, s.AccX, dt)
	if s.PosX > TravelLimit {
		s.Completed = true
	}
	return s
}
