package physics

import (
	"math"

	"github.com/san-kum/kinelab/internal/dynamo"
	"github.com/san-kum/kinelab/internal/integrators"
)

// Ballistic is flight under constant gravity until ground contact.
type Ballistic struct {
	Motion dynamo.MotionType
}

func (b Ballistic) Type() dynamo.MotionType { return b.Motion }

func (b Ballistic) Init(p dynamo.Params) dynamo.State {
	s := dynamo.State{PosY: p.InitialHeight, AccY: -p.Gravity}
	switch b.Motion {
	case dynamo.FreeFall:
		s.PosX = CenterX
	case dynamo.VerticalThrow:
		s.PosX = LaunchX
		s.VelY = p.InitialVelocity
	default:
		rad := p.AngleRad()
		s.PosX = LaunchX
		s.VelX = p.InitialVelocity * math.Cos(rad)
		s.VelY = p.InitialVelocity * math.Sin(rad)
	}
	return s
}

func (Ballistic) Validate(dynamo.Params) error { return nil }

func (Ballistic) Advance(s dynamo.State, _ dynamo.Params, dt float64) dynamo.State {
	s.PosX, s.VelX = integrators.SemiImplicit(s.PosX, s.VelX, s.AccX, dt)
	s.PosY, s.VelY = integrators.SemiImplicit(s.PosY, s.VelY, s.AccY, dt)
	if s.PosY <= 0 {
		s.PosY = 0
		s.Completed = true
	}
	return s
}
