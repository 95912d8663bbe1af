package config

import (
	"sort"

	"github.com/san-kum/kinelab/internal/dynamo"
)

// Presets are named scenarios per motion type, built from the defaults.
var Presets = map[dynamo.MotionType]map[string]dynamo.Params{
	dynamo.Projectile: {
		"ground": dynamo.Defaults(dynamo.Projectile),
		"cliff": preset(dynamo.Projectile, func(p *dynamo.Params) {
			p.InitialVelocity, p.Angle, p.InitialHeight = 15, 30, 10
			p.Object, p.Environment = dynamo.ObjectStone, dynamo.EnvCliff
		}),
		"cannon": preset(dynamo.Projectile, func(p *dynamo.Params) {
			p.InitialVelocity, p.Angle = 50, 45
			p.Actor = dynamo.ActorCannon
		}),
		"moon": preset(dynamo.Projectile, func(p *dynamo.Params) {
			p.Gravity, p.Location, p.Environment = Locations["moon"], "moon", dynamo.EnvMoon
		}),
	},
	dynamo.FreeFall: {
		"tower": dynamo.Defaults(dynamo.FreeFall),
		"bridge": preset(dynamo.FreeFall, func(p *dynamo.Params) {
			p.InitialHeight, p.Environment = 20, dynamo.EnvBridge
		}),
		"moon": preset(dynamo.FreeFall, func(p *dynamo.Params) {
			p.Gravity, p.Location, p.Environment = Locations["moon"], "moon", dynamo.EnvMoon
		}),
	},
	dynamo.VerticalThrow: {
		"toss": dynamo.Defaults(dynamo.VerticalThrow),
		"jupiter": preset(dynamo.VerticalThrow, func(p *dynamo.Params) {
			p.Gravity, p.Location = Locations["jupiter"], "jupiter"
		}),
	},
	dynamo.NewtonSecondLaw: {
		"push": preset(dynamo.NewtonSecondLaw, func(p *dynamo.Params) {
			p.Force = dynamo.Float(20)
		}),
		"heavy": preset(dynamo.NewtonSecondLaw, func(p *dynamo.Params) {
			p.Force, p.Mass = dynamo.Float(50), 25
		}),
	},
	dynamo.Spring: {
		"stiff": preset(dynamo.Spring, func(p *dynamo.Params) {
			p.SpringK, p.Displacement = dynamo.Float(500), dynamo.Float(20)
		}),
		"soft": preset(dynamo.Spring, func(p *dynamo.Params) {
			p.Mass, p.Displacement = 0.5, dynamo.Float(-30)
		}),
	},
	dynamo.InclinedPlane: {
		"gentle": dynamo.Defaults(dynamo.InclinedPlane),
		"steep": preset(dynamo.InclinedPlane, func(p *dynamo.Params) {
			p.Angle, p.Mass = 45, 2
			p.Object = dynamo.ObjectBlock
		}),
	},
}

func preset(m dynamo.MotionType, edit func(*dynamo.Params)) dynamo.Params {
	p := dynamo.Defaults(m)
	edit(&p)
	return p
}

func GetPreset(m dynamo.MotionType, name string) (dynamo.Params, bool) {
	byName, ok := Presets[m]
	if !ok {
		return dynamo.Params{}, false
	}
	p, ok := byName[name]
	return p, ok
}

// ListPresets returns the preset names of m, sorted. Unknown motion types
// give nil.
func ListPresets(m dynamo.MotionType) []string {
	byName, ok := Presets[m]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
