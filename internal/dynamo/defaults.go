package dynamo

// StandardGravity is Earth surface gravity in m/s².
const StandardGravity = 9.81

// Defaults returns the parameter set a motion type starts from. Unknown
// motion types get the projectile table with the motion field preserved.
func Defaults(m MotionType) Params {
	p := Params{
		Motion:      m,
		Mass:        1,
		Gravity:     StandardGravity,
		Actor:       ActorNone,
		Object:      ObjectBall,
		Environment: EnvStandard,
	}
	switch m {
	case Projectile:
		p.InitialVelocity = 20
		p.Angle = 45
	case FreeFall:
		p.InitialHeight = 50
		p.Object = ObjectStone
		p.Environment = EnvTower
	case VerticalThrow:
		p.InitialVelocity = 15
		p.Angle = 90
		p.InitialHeight = 1
		p.Actor = ActorHuman
	case NewtonSecondLaw:
		p.Mass = 5
		p.Force = Float(50)
		p.Object = ObjectBlock
	case Spring:
		p.SpringK = Float(DefaultSpringK)
		p.Object = ObjectBlock
	case InclinedPlane:
		p.Angle = 20
		p.Mass = 10
		p.Friction = Float(0.1)
		p.Force = Float(100)
		p.Object = ObjectCrate
	default:
		p.InitialVelocity = 20
		p.Angle = 45
	}
	return p
}
