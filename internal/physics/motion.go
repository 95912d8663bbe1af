package physics

import (
	"fmt"

	"github.com/san-kum/kinelab/internal/dynamo"
)

// Scenario-unit landmarks of the stage.
const (
	LaunchX           = 20.0
	CenterX           = 120.0
	RampX             = 40.0
	RampRun           = 160.0
	TravelLimit       = 220.0
	SpringEquilibrium = 120.0
	StageWidth        = 240.0
)

// Motion is the dynamics of one motion type.
type Motion interface {
	Type() dynamo.MotionType

	// Init builds the state at t = 0. It never fails.
	Init(p dynamo.Params) dynamo.State

	// Validate reports parameters the update rule cannot work with.
	Validate(p dynamo.Params) error

	// Advance returns s with the scalar kinematics moved forward by dt and
	// Completed set if a terminal condition was reached. Time and History
	// are left untouched.
	Advance(s dynamo.State, p dynamo.Params, dt float64) dynamo.State
}

// For returns the handler for m.
func For(m dynamo.MotionType) (Motion, error) {
	switch m {
	case dynamo.Projectile, dynamo.FreeFall, dynamo.VerticalThrow:
		return Ballistic{Motion: m}, nil
	case dynamo.NewtonSecondLaw:
		return Newton{}, nil
	case dynamo.Spring:
		return SpringMass{}, nil
	case dynamo.InclinedPlane:
		return Incline{}, nil
	}
	return nil, fmt.Errorf("%w: %s", dynamo.ErrUnknownMotion, m)
}

// Initialize builds the initial state for p. Unknown motion types get the
// generic launch state so the function stays total.
func Initialize(p dynamo.Params) dynamo.State {
	m, err := For(p.Motion)
	if err != nil {
		return dynamo.State{PosX: LaunchX, AccY: -p.Gravity}
	}
	return m.Init(p)
}

func requirePositiveMass(p dynamo.Params) error {
	if !(p.Mass > 0) {
		return fmt.Errorf("%w: mass = %g", dynamo.ErrParameterBounds, p.Mass)
	}
	return nil
}
