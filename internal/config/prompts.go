package config

import "github.com/san-kum/kinelab/internal/dynamo"

// ExamplePrompts are sample problem statements per motion type.
var ExamplePrompts = map[dynamo.MotionType][]string{
	dynamo.Projectile: {
		"A human throws a ball at 45° with 20 m/s from ground level",
		"A stone is launched from a 10m cliff at 30°",
		"A cannon fires a projectile with 50 m/s",
	},
	dynamo.FreeFall: {
		"A ball drops from a 15m tower",
		"A stone falls from a 50m building",
		"An object is dropped from a bridge",
	},
	dynamo.VerticalThrow: {
		"A person throws a ball straight up at 15 m/s",
		"A ball is tossed up at 8 m/s on the moon",
	},
	dynamo.InclinedPlane: {
		"A 10kg crate is pushed up a 20° incline with 100N force",
		"A 2kg block slides down a 30° incline with friction",
		"A box slides without friction on a 45° ramp",
	},
	dynamo.Spring: {
		"A 1kg mass attached to a spring (k=500 N/m) oscillates",
		"A spring stretched 0.2m and released",
		"Oscillate a block with mass 0.5kg on a k=200 spring",
	},
	dynamo.NewtonSecondLaw: {
		"A 5kg object experiences 20N force",
		"Two forces act on a 10kg block",
		"Net force of 50N applied to 25kg object",
	},
}
