package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/san-kum/kinelab/internal/config"
	"github.com/san-kum/kinelab/internal/dynamo"
)

func TestExtractExamples(t *testing.T) {
	tests := []struct {
		text   string
		motion dynamo.MotionType
		check  func(t *testing.T, p dynamo.Params)
	}{
		{
			"A human throws a ball at 45° with 20 m/s from ground level", dynamo.Projectile,
			func(t *testing.T, p dynamo.Params) {
				assert.Equal(t, dynamo.ActorHuman, p.Actor)
				assert.Equal(t, dynamo.ObjectBall, p.Object)
				assert.Equal(t, 20.0, p.InitialVelocity)
				assert.Equal(t, 45.0, p.Angle)
				assert.Equal(t, 0.0, p.InitialHeight, "m/s is not a height")
			},
		},
		{
			"A stone is launched from a 10m cliff at 30°", dynamo.Projectile,
			func(t *testing.T, p dynamo.Params) {
				assert.Equal(t, dynamo.ObjectStone, p.Object)
				assert.Equal(t, 10.0, p.InitialHeight)
				assert.Equal(t, 30.0, p.Angle)
				assert.Equal(t, 20.0, p.InitialVelocity, "default kept")
				assert.Equal(t, dynamo.EnvCliff, p.Environment)
			},
		},
		{
			"A cannon fires a projectile with 50 m/s", dynamo.Projectile,
			func(t *testing.T, p dynamo.Params) {
				assert.Equal(t, dynamo.ActorCannon, p.Actor)
				assert.Equal(t, 50.0, p.InitialVelocity)
			},
		},
		{
			"A ball drops from a 15m tower", dynamo.FreeFall,
			func(t *testing.T, p dynamo.Params) {
				assert.Equal(t, 15.0, p.InitialHeight)
				assert.Equal(t, dynamo.EnvTower, p.Environment)
			},
		},
		{
			"An object is dropped from a bridge", dynamo.FreeFall,
			func(t *testing.T, p dynamo.Params) {
				assert.Equal(t, 50.0, p.InitialHeight)
				assert.Equal(t, dynamo.EnvTower, p.Environment, "a default 50 m drop reads as a tower")
			},
		},
		{
			"A 10kg crate is pushed up a 20° incline with 100N force", dynamo.InclinedPlane,
			func(t *testing.T, p dynamo.Params) {
				assert.Equal(t, dynamo.ObjectCrate, p.Object)
				assert.Equal(t, 10.0, p.Mass)
				assert.Equal(t, 20.0, p.Angle)
				assert.Equal(t, 100.0, p.ForceOrZero())
			},
		},
		{
			"A 2kg block slides down a 30° incline with friction", dynamo.InclinedPlane,
			func(t *testing.T, p dynamo.Params) {
				assert.Equal(t, dynamo.ObjectBlock, p.Object)
				assert.Equal(t, 2.0, p.Mass)
				assert.Equal(t, 30.0, p.Angle)
			},
		},
		{
			"A 1kg mass attached to a spring (k=500 N/m) oscillates", dynamo.Spring,
			func(t *testing.T, p dynamo.Params) {
				assert.Equal(t, 1.0, p.Mass)
				assert.Equal(t, 500.0, p.Stiffness())
			},
		},
		{
			"A spring stretched 0.2m and released", dynamo.Spring,
			func(t *testing.T, p dynamo.Params) {
				assert.Equal(t, 0.2, p.DisplacementOrZero())
			},
		},
		{
			"Oscillate a block with mass 0.5kg on a k=200 spring", dynamo.Spring,
			func(t *testing.T, p dynamo.Params) {
				assert.Equal(t, 0.5, p.Mass)
				assert.Equal(t, 200.0, p.Stiffness())
				assert.Nil(t, p.Displacement)
			},
		},
		{
			"Net force of 50N applied to 25kg object", dynamo.NewtonSecondLaw,
			func(t *testing.T, p dynamo.Params) {
				assert.Equal(t, 50.0, p.ForceOrZero())
				assert.Equal(t, 25.0, p.Mass)
			},
		},
		{
			"A ball is tossed up at 8 m/s on the moon", dynamo.VerticalThrow,
			func(t *testing.T, p dynamo.Params) {
				assert.Equal(t, 8.0, p.InitialVelocity)
				assert.Equal(t, 1.62, p.Gravity)
				assert.Equal(t, dynamo.EnvMoon, p.Environment)
				assert.Equal(t, "moon", p.Location)
			},
		},
	}

	h := Heuristic{}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			p := h.Extract(tt.text, tt.motion)
			assert.Equal(t, tt.motion, p.Motion)
			tt.check(t, p)
		})
	}
}

func TestExtractPlanets(t *testing.T) {
	h := Heuristic{}
	assert.Equal(t, 3.71, h.Extract("dropped on Mars", dynamo.FreeFall).Gravity)
	assert.Equal(t, 24.79, h.Extract("thrown on JUPITER", dynamo.Projectile).Gravity)
}

func TestExtractCompressedSpring(t *testing.T) {
	p := Heuristic{}.Extract("a spring compressed by 15 m", dynamo.Spring)
	assert.Equal(t, -15.0, p.DisplacementOrZero())
}

func TestExtractFallsBackToDefaults(t *testing.T) {
	h := Heuristic{}
	for _, m := range dynamo.MotionTypes() {
		got := h.Extract("", m)
		assert.Equal(t, dynamo.Defaults(m), got, m.String())
		assert.NoError(t, got.Validate())
	}
}

func TestExamplePromptsStayValid(t *testing.T) {
	h := Heuristic{}
	for m, prompts := range config.ExamplePrompts {
		for _, text := range prompts {
			assert.NoError(t, h.Extract(text, m).Validate(), text)
		}
	}
}
