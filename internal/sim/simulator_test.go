package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/kinelab/internal/dynamo"
	"github.com/san-kum/kinelab/internal/physics"
)

const frameDt = 0.016

func runUntilDone(t *testing.T, p dynamo.Params, maxSteps int) dynamo.State {
	t.Helper()
	s, err := Run(physics.Initialize(p), p, frameDt, maxSteps)
	require.NoError(t, err)
	require.True(t, s.Completed, "%s did not complete in %d steps", p.Motion, maxSteps)
	return s
}

func TestStepCompletedIsIdentity(t *testing.T) {
	for _, m := range []dynamo.MotionType{dynamo.Projectile, dynamo.FreeFall, dynamo.VerticalThrow, dynamo.NewtonSecondLaw, dynamo.InclinedPlane} {
		t.Run(m.String(), func(t *testing.T) {
			p := dynamo.Defaults(m)
			done := runUntilDone(t, p, 10000)

			for i := 0; i < 5; i++ {
				next, err := Step(done, p, frameDt)
				require.NoError(t, err)
				assert.Equal(t, done, next)
			}

			// completion is checked before any argument validation
			next, err := Step(done, p, -1)
			assert.NoError(t, err)
			assert.Equal(t, done, next)
		})
	}
}

func TestProjectileFlatLaunchCompletesFirstStep(t *testing.T) {
	p := dynamo.Defaults(dynamo.Projectile)
	p.InitialHeight = 0
	p.Angle = 0

	s, err := Step(physics.Initialize(p), p, frameDt)
	require.NoError(t, err)

	assert.True(t, s.Completed)
	assert.Zero(t, s.PosY)
	assert.True(t, s.IsValid())
	assert.Len(t, s.History, 1)
	assert.InDelta(t, 20+20*frameDt, s.PosX, 1e-9)
}

func TestInitializeRoundTrip(t *testing.T) {
	p := dynamo.Params{Motion: dynamo.Projectile, InitialVelocity: 20, Angle: 45, Mass: 1, Gravity: 9.81}
	s := physics.Initialize(p)

	assert.Zero(t, s.Time)
	assert.Empty(t, s.History)
	assert.Equal(t, 20.0, s.PosX)
	assert.Equal(t, 0.0, s.PosY)
	assert.InDelta(t, 14.142, s.VelX, 1e-3)
	assert.InDelta(t, 14.142, s.VelY, 1e-3)
	assert.Equal(t, 0.0, s.AccX)
	assert.Equal(t, -9.81, s.AccY)
}

func TestSpringNeverCompletes(t *testing.T) {
	for _, disp := range []*float64{nil, dynamo.Float(30)} {
		p := dynamo.Defaults(dynamo.Spring)
		p.Displacement = disp
		s := physics.Initialize(p)

		var err error
		for i := 0; i < 10000; i++ {
			s, err = Step(s, p, frameDt)
			require.NoError(t, err)
			require.False(t, s.Completed, "step %d", i)
		}
		assert.Len(t, s.History, 10000)
	}
}

func TestHistoryGrowsByOnePerStep(t *testing.T) {
	p := dynamo.Defaults(dynamo.FreeFall)
	s := physics.Initialize(p)

	for n := 1; n <= 50; n++ {
		var err error
		s, err = Step(s, p, frameDt)
		require.NoError(t, err)
		require.Len(t, s.History, n)
	}
	assert.InDelta(t, 50*frameDt, s.Time, 1e-9)
}

func TestSampleUsesPreStepTime(t *testing.T) {
	p := dynamo.Defaults(dynamo.Projectile)
	s := physics.Initialize(p)

	s, _ = Step(s, p, 0.1)
	s, _ = Step(s, p, 0.2)

	require.Len(t, s.History, 2)
	assert.Equal(t, 0.0, s.History[0].T)
	assert.InDelta(t, 0.1, s.History[1].T, 1e-12)
	assert.InDelta(t, 0.3, s.Time, 1e-12)

	last := s.History[1]
	assert.Equal(t, s.PosX, last.X)
	assert.Equal(t, s.PosY, last.Y)
	assert.Equal(t, s.VelY, last.VY)
}

func TestNewtonCompletesWhenCrossingTravelLimit(t *testing.T) {
	p := dynamo.Defaults(dynamo.NewtonSecondLaw)
	p.Force = dynamo.Float(50)
	p.Mass = 5

	s := physics.Initialize(p)
	require.Equal(t, 10.0, s.AccX)

	steps := 0
	for !s.Completed {
		prev := s.PosX
		var err error
		s, err = Step(s, p, frameDt)
		require.NoError(t, err)
		steps++

		if s.Completed {
			assert.LessOrEqual(t, prev, physics.TravelLimit, "completed one step late")
			assert.Greater(t, s.PosX, physics.TravelLimit)
		} else {
			assert.LessOrEqual(t, s.PosX, physics.TravelLimit, "completed one step early")
		}
		require.Less(t, steps, 1000)
	}

	// x_n = 20 + 10·dt²·n(n+1)/2 first exceeds 220 at n = 395
	assert.Equal(t, 395, steps)
}

func TestFreeFallLandingTime(t *testing.T) {
	p := dynamo.Defaults(dynamo.FreeFall)
	s := runUntilDone(t, p, 1000)

	want := math.Sqrt(2 * p.InitialHeight / p.Gravity)
	assert.InDelta(t, want, s.Time, 2*frameDt)
	assert.Equal(t, physics.CenterX, s.PosX)
}

func TestVerticalThrowApex(t *testing.T) {
	p := dynamo.Defaults(dynamo.VerticalThrow)
	s := runUntilDone(t, p, 1000)

	apex := 0.0
	for _, h := range s.History {
		apex = math.Max(apex, h.Y)
		assert.Zero(t, h.VX)
	}
	want := p.InitialHeight + p.InitialVelocity*p.InitialVelocity/(2*p.Gravity)
	assert.InDelta(t, want, apex, 0.2)
}

func TestStepErrors(t *testing.T) {
	tests := []struct {
		name   string
		params func() dynamo.Params
		dt     float64
		want   error
	}{
		{"zero dt", func() dynamo.Params { return dynamo.Defaults(dynamo.Projectile) }, 0, dynamo.ErrInvalidArgument},
		{"negative dt", func() dynamo.Params { return dynamo.Defaults(dynamo.Projectile) }, -0.016, dynamo.ErrInvalidArgument},
		{"nan dt", func() dynamo.Params { return dynamo.Defaults(dynamo.Projectile) }, math.NaN(), dynamo.ErrInvalidArgument},
		{"unknown motion", func() dynamo.Params { return dynamo.Params{Motion: 77, Mass: 1, Gravity: 9.81} }, frameDt, dynamo.ErrUnknownMotion},
		{"spring zero mass", func() dynamo.Params {
			p := dynamo.Defaults(dynamo.Spring)
			p.Mass = 0
			return p
		}, frameDt, dynamo.ErrParameterBounds},
		{"newton negative mass", func() dynamo.Params {
			p := dynamo.Defaults(dynamo.NewtonSecondLaw)
			p.Mass = -5
			return p
		}, frameDt, dynamo.ErrParameterBounds},
		{"overflow", func() dynamo.Params {
			p := dynamo.Defaults(dynamo.FreeFall)
			p.Gravity = math.MaxFloat64
			return p
		}, 10, dynamo.ErrInvalidState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.params()
			s := physics.Initialize(p)

			next, err := Step(s, p, tt.dt)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, s, next, "state must be untouched on failure")

			var se *dynamo.StepError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, 0, se.Step)
			assert.Equal(t, p.Motion, se.Motion)
		})
	}
}

func TestRunStopsAtCompletion(t *testing.T) {
	p := dynamo.Defaults(dynamo.InclinedPlane)
	s, err := Run(physics.Initialize(p), p, frameDt, 100000)
	require.NoError(t, err)
	assert.True(t, s.Completed)
	assert.Zero(t, s.PosY)
	assert.Less(t, s.Steps(), 100000)
}

func TestStepAliasing(t *testing.T) {
	p := dynamo.Defaults(dynamo.Projectile)
	s := physics.Initialize(p)
	s.History = make([]dynamo.Sample, 0, 8)

	// stepping the same state twice shares its spare history capacity
	a, err := Step(s, p, 0.1)
	require.NoError(t, err)
	b, err := Step(s, p, 0.2)
	require.NoError(t, err)

	require.Len(t, a.History, 1)
	assert.Equal(t, b.History[0], a.History[0])
	assert.Equal(t, b.PosX, a.History[0].X)
	assert.NotEqual(t, a.PosX, a.History[0].X)

	// a clipped view has no spare capacity, so it is safe to branch from
	v := s.View()
	a, err = Step(v, p, 0.1)
	require.NoError(t, err)
	b, err = Step(v, p, 0.2)
	require.NoError(t, err)
	assert.Equal(t, a.PosX, a.History[0].X)
	assert.Equal(t, b.PosX, b.History[0].X)
	assert.NotEqual(t, a.History[0], b.History[0])
}
