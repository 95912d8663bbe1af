package dynamo

import (
	"fmt"
	"math"
	"sort"
)

// DefaultSpringK is the stiffness used when a spring run carries no k.
const DefaultSpringK = 200.0

type Actor string

const (
	ActorNone   Actor = "none"
	ActorHuman  Actor = "human"
	ActorCannon Actor = "cannon"
)

type Object string

const (
	ObjectBall  Object = "ball"
	ObjectCrate Object = "crate"
	ObjectBlock Object = "block"
	ObjectStone Object = "stone"
)

// Environment only changes the backdrop a view draws.
type Environment string

const (
	EnvStandard Environment = "standard"
	EnvTower    Environment = "tower"
	EnvCliff    Environment = "cliff"
	EnvBridge   Environment = "bridge"
	EnvMoon     Environment = "moon"
)

// Params describes one run. It is replaced wholesale, never edited while a
// run is in progress.
type Params struct {
	Motion          MotionType  `yaml:"motion_type" json:"motion_type" mapstructure:"motion_type"`
	InitialVelocity float64     `yaml:"initial_velocity" json:"initial_velocity" mapstructure:"initial_velocity"`
	Angle           float64     `yaml:"angle" json:"angle" mapstructure:"angle"`
	InitialHeight   float64     `yaml:"initial_height" json:"initial_height" mapstructure:"initial_height"`
	Mass            float64     `yaml:"mass" json:"mass" mapstructure:"mass"`
	Gravity         float64     `yaml:"gravity" json:"gravity" mapstructure:"gravity"`
	Force           *float64    `yaml:"force,omitempty" json:"force,omitempty" mapstructure:"force"`
	SpringK         *float64    `yaml:"spring_k,omitempty" json:"spring_k,omitempty" mapstructure:"spring_k"`
	Friction        *float64    `yaml:"friction,omitempty" json:"friction,omitempty" mapstructure:"friction"`
	Displacement    *float64    `yaml:"displacement,omitempty" json:"displacement,omitempty" mapstructure:"displacement"`
	Actor           Actor       `yaml:"actor,omitempty" json:"actor,omitempty" mapstructure:"actor"`
	Object          Object      `yaml:"object,omitempty" json:"object,omitempty" mapstructure:"object"`
	Location        string      `yaml:"location,omitempty" json:"location,omitempty" mapstructure:"location"`
	Environment     Environment `yaml:"environment,omitempty" json:"environment,omitempty" mapstructure:"environment"`
}

// Float returns a pointer to v, for the optional Params fields.
func Float(v float64) *float64 {
	return &v
}

func (p Params) ForceOrZero() float64 {
	if p.Force == nil {
		return 0
	}
	return *p.Force
}

func (p Params) Stiffness() float64 {
	if p.SpringK == nil {
		return DefaultSpringK
	}
	return *p.SpringK
}

// DisplacementOrZero is the initial spring stretch, positive to the right.
func (p Params) DisplacementOrZero() float64 {
	if p.Displacement == nil {
		return 0
	}
	return *p.Displacement
}

// AngleRad returns the launch or ramp angle in radians.
func (p Params) AngleRad() float64 {
	return p.Angle * math.Pi / 180
}

type bound struct {
	name string
	ok   bool
	val  float64
}

// Validate checks the numeric domain of every field.
func (p Params) Validate() error {
	if !p.Motion.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownMotion, int(p.Motion))
	}
	checks := []bound{
		{"initial_velocity", p.InitialVelocity >= 0, p.InitialVelocity},
		{"angle", p.Angle >= 0 && p.Angle <= 90, p.Angle},
		{"initial_height", p.InitialHeight >= 0, p.InitialHeight},
		{"mass", p.Mass > 0, p.Mass},
		{"gravity", p.Gravity > 0, p.Gravity},
	}
	if p.Force != nil {
		checks = append(checks, bound{"force", true, *p.Force})
	}
	if p.SpringK != nil {
		checks = append(checks, bound{"spring_k", *p.SpringK > 0, *p.SpringK})
	}
	if p.Displacement != nil {
		checks = append(checks, bound{"displacement", true, *p.Displacement})
	}
	for _, c := range checks {
		if !c.ok || math.IsNaN(c.val) || math.IsInf(c.val, 0) {
			return fmt.Errorf("%w: %s = %g", ErrParameterBounds, c.name, c.val)
		}
	}
	return nil
}

// GetParams lists the numeric fields by their override name.
func (p Params) GetParams() map[string]float64 {
	out := map[string]float64{
		"velocity": p.InitialVelocity,
		"angle":    p.Angle,
		"height":   p.InitialHeight,
		"mass":     p.Mass,
		"gravity":  p.Gravity,
	}
	if p.Force != nil {
		out["force"] = *p.Force
	}
	if p.SpringK != nil {
		out["k"] = *p.SpringK
	}
	if p.Friction != nil {
		out["friction"] = *p.Friction
	}
	if p.Displacement != nil {
		out["displacement"] = *p.Displacement
	}
	return out
}

// SetParam sets a numeric field by its override name.
func (p *Params) SetParam(name string, value float64) error {
	switch name {
	case "velocity", "v":
		p.InitialVelocity = value
	case "angle":
		p.Angle = value
	case "height", "h":
		p.InitialHeight = value
	case "mass", "m":
		p.Mass = value
	case "gravity", "g":
		p.Gravity = value
	case "force", "f":
		p.Force = Float(value)
	case "k", "spring_k":
		p.SpringK = Float(value)
	case "friction":
		p.Friction = Float(value)
	case "displacement", "x0":
		p.Displacement = Float(value)
	default:
		return fmt.Errorf("%w: unknown parameter %q (have %v)", ErrInvalidArgument, name, ParamNames())
	}
	return nil
}

// ParamNames returns the names SetParam accepts, sorted.
func ParamNames() []string {
	names := []string{"velocity", "angle", "height", "mass", "gravity", "force", "k", "friction", "displacement"}
	sort.Strings(names)
	return names
}
