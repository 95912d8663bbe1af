package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/kinelab/internal/dynamo"
	"github.com/san-kum/kinelab/internal/physics"
	"github.com/san-kum/kinelab/internal/sim"
)

func TestSpeeds(t *testing.T) {
	h := []dynamo.Sample{{VX: 3, VY: 4}, {VX: 0, VY: 0}}
	assert.Equal(t, []float64{5.0, 0.0}, Speeds(h))
}

func TestAccelerations(t *testing.T) {
	h := []dynamo.Sample{{AX: 6, AY: -8}, {AY: -9.81}}
	got := Accelerations(h)
	require.Len(t, got, 2)
	assert.InDelta(t, 10.0, got[0], 1e-12)
	assert.InDelta(t, 9.81, got[1], 1e-12)
}

func TestEmptyHistory(t *testing.T) {
	for name, f := range map[string]func([]dynamo.Sample) []float64{
		"speeds":        Speeds,
		"accelerations": Accelerations,
		"times":         Times,
		"heights":       Heights,
		"positions":     Positions,
	} {
		got := f(nil)
		assert.NotNil(t, got, name)
		assert.Empty(t, got, name)
	}
	assert.NotNil(t, Decimate(nil, GraphEvery))
}

func TestMomentum(t *testing.T) {
	p := dynamo.Defaults(dynamo.NewtonSecondLaw)
	s := dynamo.State{VelX: 100, VelY: -2}
	assert.Equal(t, -10.0, Momentum(s, p))
}

func TestDecimate(t *testing.T) {
	h := make([]dynamo.Sample, 12)
	for i := range h {
		h[i].T = float64(i)
	}

	got := Decimate(h, GraphEvery)
	assert.Equal(t, []float64{0, 5, 10}, Times(got))

	all := Decimate(h, 0)
	assert.Len(t, all, 12)
	all[0].T = 99
	assert.Zero(t, h[0].T, "decimate must not alias the history")
}

func TestDefaultsProjectile(t *testing.T) {
	p := dynamo.Defaults(dynamo.Projectile)
	s, err := sim.Run(physics.Initialize(p), p, 0.016, 10000)
	require.NoError(t, err)
	require.True(t, s.Completed)

	ms := Defaults(p)
	Observe(ms, s.History)
	got := Values(ms)

	v := p.InitialVelocity
	apex := v * v * 0.5 / (2 * p.Gravity)
	reach := v * v / p.Gravity

	assert.InDelta(t, apex, got["max_height"], 0.3)
	assert.InDelta(t, reach, got["distance"], 1.0)
	assert.InDelta(t, v, got["peak_speed"], 0.3)
	assert.Contains(t, got, "energy_drift")
}

func TestDefaultsPerMotion(t *testing.T) {
	for _, m := range dynamo.MotionTypes() {
		names := map[string]bool{}
		for _, metric := range Defaults(dynamo.Defaults(m)) {
			names[metric.Name()] = true
		}
		assert.True(t, names["peak_speed"], m.String())
		if m == dynamo.Spring {
			assert.True(t, names["amplitude"])
		}
	}
}

func TestAmplitude(t *testing.T) {
	a := NewAmplitude()
	for _, x := range []float64{120, 135, 100, 118} {
		a.Observe(dynamo.Sample{X: x})
	}
	assert.Equal(t, 20.0, a.Value())
	assert.False(t, math.IsNaN(a.Value()))
}
