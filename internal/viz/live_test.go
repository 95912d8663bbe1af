package viz

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/kinelab/internal/config"
	"github.com/san-kum/kinelab/internal/dynamo"
	"github.com/san-kum/kinelab/internal/sim"
)

func newTestModel(t *testing.T, mt dynamo.MotionType) (Model, *sim.Driver) {
	t.Helper()
	d, err := sim.NewDriver(dynamo.Defaults(mt))
	require.NoError(t, err)
	m := NewModel(d, config.NewDefaultConfig().View, nil)
	t.Cleanup(m.Close)
	return m, d
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case " ":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "backspace":
			msg = tea.KeyMsg{Type: tea.KeyBackspace}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func tick(m Model, at time.Time) Model {
	next, cmd := m.Update(TickMsg(at))
	if cmd == nil {
		panic("tick did not schedule the next frame")
	}
	return next.(Model)
}

func TestSpaceTogglesPlayback(t *testing.T) {
	m, d := newTestModel(t, dynamo.Projectile)

	m = press(m, " ")
	assert.Equal(t, sim.PhaseRunning, d.Phase())

	m = press(m, " ")
	assert.Equal(t, sim.PhasePaused, d.Phase())
	_ = m
}

func TestTicksAdvanceTheDriver(t *testing.T) {
	m, d := newTestModel(t, dynamo.FreeFall)
	m = press(m, " ")

	start := time.Now()
	m = tick(m, start)
	m = tick(m, start.Add(20*time.Millisecond))
	m = tick(m, start.Add(5*time.Second))

	snap := d.Snapshot()
	require.Len(t, snap.State.History, 3)
	assert.InDelta(t, 1.0/60, snap.State.History[1].T, 1e-9)
	assert.InDelta(t, 1.0/60+0.02+maxFrameDt, snap.State.Time, 1e-9)
	assert.Less(t, snap.State.PosY, 50.0)
	_ = m
}

func TestTickErrorPauses(t *testing.T) {
	p := dynamo.Defaults(dynamo.FreeFall)
	p.Gravity = 1e308
	d, err := sim.NewDriver(p)
	require.NoError(t, err)
	require.NoError(t, d.SetSpeed(1e300))
	m := NewModel(d, config.ViewConfig{FPS: 60}, nil)
	defer m.Close()

	m = press(m, " ")
	start := time.Now()
	for i := 0; i < 3; i++ {
		m = tick(m, start.Add(time.Duration(i)*50*time.Millisecond))
	}

	assert.True(t, m.statusErr)
	assert.Equal(t, sim.PhasePaused, d.Phase())
	assert.Contains(t, m.View(), "invalid")
}

func TestResetAndSpeedKeys(t *testing.T) {
	m, d := newTestModel(t, dynamo.Projectile)
	m = press(m, " ")
	m = tick(m, time.Now())
	id := d.Snapshot().RunID

	m = press(m, "r")
	assert.NotEqual(t, id, d.Snapshot().RunID)
	assert.Equal(t, sim.PhaseIdle, d.Phase())

	m = press(m, "+", "+")
	assert.Equal(t, 4.0, d.Snapshot().Speed)
	m = press(m, "-", "-", "-", "-", "-")
	assert.Equal(t, 0.25, d.Snapshot().Speed)
	_ = m
}

func TestMotionAndLocationCycle(t *testing.T) {
	m, d := newTestModel(t, dynamo.Projectile)

	m = press(m, "m")
	assert.Equal(t, dynamo.FreeFall, d.Params().Motion)

	m = press(m, "l")
	assert.Equal(t, "jupiter", d.Params().Location)
	assert.Equal(t, 24.79, d.Params().Gravity)

	// the location survives a motion change
	m = press(m, "m")
	assert.Equal(t, dynamo.VerticalThrow, d.Params().Motion)
	assert.Equal(t, 24.79, d.Params().Gravity)
	_ = m
}

func TestExamplePromptCycle(t *testing.T) {
	m, d := newTestModel(t, dynamo.Projectile)

	m = press(m, "e", "e")
	assert.Equal(t, config.ExamplePrompts[dynamo.Projectile][1], m.input)
	assert.Equal(t, 10.0, d.Params().InitialHeight)
	assert.Equal(t, 30.0, d.Params().Angle)
}

func TestPromptEditing(t *testing.T) {
	m, d := newTestModel(t, dynamo.Projectile)

	m = press(m, "/", "a", "t", " ", "3", "0", "m/s", "x", "backspace")
	assert.True(t, m.editing)
	assert.Contains(t, m.View(), "prompt> at 30m/s")

	// keys are text while editing
	assert.Equal(t, sim.PhaseIdle, d.Phase())

	m = press(m, "enter")
	assert.False(t, m.editing)
	assert.Equal(t, 30.0, d.Params().InitialVelocity)

	m = press(m, "/", "z", "esc")
	assert.False(t, m.editing)
	assert.Equal(t, 30.0, d.Params().InitialVelocity)
}

func TestViewTabs(t *testing.T) {
	m, _ := newTestModel(t, dynamo.Projectile)
	m = press(m, " ")
	start := time.Now()
	for i := 0; i < 30; i++ {
		m = tick(m, start.Add(time.Duration(i)*16*time.Millisecond))
	}

	scene := m.View()
	assert.Contains(t, scene, "Projectile")
	assert.Contains(t, scene, "Momentum")
	assert.Contains(t, scene, "running")

	m = press(m, "tab")
	graphs := m.View()
	assert.Contains(t, graphs, "Height (m) vs time")

	m = press(m, "v")
	assert.Contains(t, m.View(), "Speed (m/s) vs time")

	m = press(m, "tab")
	data := m.View()
	assert.Contains(t, data, "max_height")
	assert.Contains(t, data, "velocity")

	m = press(m, "tab")
	assert.Equal(t, tabScene, m.tab)
}

func TestQuitCancelsSubscription(t *testing.T) {
	m, d := newTestModel(t, dynamo.Projectile)
	before := m.snap.load().RunID

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	d.Reset()
	assert.Equal(t, before, next.(Model).snap.load().RunID)
}

func TestWindowResize(t *testing.T) {
	m, _ := newTestModel(t, dynamo.InclinedPlane)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(Model)

	assert.Equal(t, 120-statsWidth-4, m.canvas.Width)
	assert.Equal(t, 30, m.canvas.Height)
	lines := strings.Split(m.scene(m.snap.load()), "\n")
	assert.Len(t, lines, 32)
}
