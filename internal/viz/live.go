package viz

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/kinelab/internal/analysis"
	"github.com/san-kum/kinelab/internal/config"
	"github.com/san-kum/kinelab/internal/dynamo"
	"github.com/san-kum/kinelab/internal/metrics"
	"github.com/san-kum/kinelab/internal/prompt"
	"github.com/san-kum/kinelab/internal/sim"
)

const (
	defaultCanvasWidth  = 60
	defaultCanvasHeight = 18
	statsWidth          = 44
	// maxFrameDt bounds one frame's wall time so a stalled terminal does
	// not turn into a single huge step.
	maxFrameDt = 0.1
)

var speedSteps = []float64{0.25, 0.5, 1, 2, 4, 8}

type tab int

const (
	tabScene tab = iota
	tabGraphs
	tabData
	tabCount
)

func (t tab) String() string {
	return [...]string{"Scene", "Graphs", "Data"}[t]
}

type graphSeries int

const (
	seriesHeight graphSeries = iota
	seriesSpeed
	seriesAccel
	seriesCount
)

func (g graphSeries) String() string {
	return [...]string{"Height (m)", "Speed (m/s)", "Acceleration (m/s²)"}[g]
}

func (g graphSeries) values(h []dynamo.Sample) []float64 {
	switch g {
	case seriesSpeed:
		return metrics.Speeds(h)
	case seriesAccel:
		return metrics.Accelerations(h)
	}
	return metrics.Heights(h)
}

type TickMsg time.Time

// latest holds the last snapshot the driver published. Model values are
// copied by bubbletea, so they share it through a pointer.
type latest struct {
	mu   sync.Mutex
	snap sim.Snapshot
}

func (l *latest) store(s sim.Snapshot) {
	l.mu.Lock()
	l.snap = s
	l.mu.Unlock()
}

func (l *latest) load() sim.Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snap
}

// Model is the live terminal view. It drives a sim.Driver from the frame
// clock and redraws from the snapshots the driver publishes; it never
// touches run state directly.
type Model struct {
	driver    *sim.Driver
	extractor prompt.Extractor
	cfg       config.ViewConfig

	snap   *latest
	cancel func()

	theme  Theme
	styles styles
	canvas *Canvas

	bounds    analysis.Bounds
	boundsRun uuid.UUID

	tab       tab
	series    graphSeries
	showGrid  bool
	showTrail bool
	promptIdx int
	editing   bool
	input     string
	status    string
	statusErr bool
	lastTick  time.Time
}

// NewModel subscribes a view to d. Close releases the subscription.
func NewModel(d *sim.Driver, cfg config.ViewConfig, ex prompt.Extractor) Model {
	if ex == nil {
		ex = prompt.Heuristic{}
	}
	if cfg.FPS <= 0 {
		cfg.FPS = 60
	}
	if cfg.GraphEvery <= 0 {
		cfg.GraphEvery = metrics.GraphEvery
	}

	theme := GetTheme(cfg.Theme)
	holder := &latest{snap: d.Snapshot()}
	m := Model{
		driver:    d,
		extractor: ex,
		cfg:       cfg,
		snap:      holder,
		cancel:    d.Subscribe(holder.store),
		theme:     theme,
		styles:    newStyles(theme),
		canvas:    NewCanvas(defaultCanvasWidth, defaultCanvasHeight),
		showGrid:  cfg.ShowGrid,
		showTrail: cfg.ShowTrajectory,
		promptIdx: -1,
	}
	m.trackBounds()
	return m
}

func (m Model) Close() {
	if m.cancel != nil {
		m.cancel()
	}
}

func (m Model) frame() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.cfg.FPS), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.frame()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w := max(msg.Width-statsWidth-4, 20)
		h := max(msg.Height-10, 8)
		m.canvas = NewCanvas(w, h)
	case tea.KeyMsg:
		if m.editing {
			m = m.updateInput(msg)
		} else {
			m, cmd = m.updateKey(msg)
		}
	case TickMsg:
		m.tick(time.Time(msg))
		cmd = m.frame()
	}
	m.trackBounds()
	return m, cmd
}

// trackBounds grows the scene box with the run and starts over on a new one.
func (m *Model) trackBounds() {
	snap := m.snap.load()
	if snap.RunID != m.boundsRun {
		m.bounds, m.boundsRun = analysis.Bounds{}, snap.RunID
	}
	m.bounds = sceneBounds(m.bounds, snap.Params, snap.State)
}

func (m *Model) tick(now time.Time) {
	dt := 1.0 / float64(m.cfg.FPS)
	if !m.lastTick.IsZero() {
		dt = min(now.Sub(m.lastTick).Seconds(), maxFrameDt)
	}
	m.lastTick = now
	if dt <= 0 {
		return
	}
	if err := m.driver.Tick(dt); err != nil {
		m.driver.SetPlaying(false)
		m.setError(err)
	}
}

func (m Model) updateKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	snap := m.snap.load()
	switch msg.String() {
	case "q", "ctrl+c":
		m.Close()
		return m, tea.Quit
	case " ":
		m.driver.SetPlaying(snap.Phase != sim.PhaseRunning)
	case "r":
		m.driver.Reset()
		m.setInfo("reset")
	case "+", "=":
		m.stepSpeed(snap.Speed, 1)
	case "-", "_":
		m.stepSpeed(snap.Speed, -1)
	case "m":
		next := nextMotion(snap.Params.Motion)
		p, _ := config.ApplyLocation(dynamo.Defaults(next), snap.Params.Location)
		m.load(p, next.Title())
		m.promptIdx = -1
	case "l":
		loc := nextLocation(snap.Params.Location)
		p, err := config.ApplyLocation(snap.Params, loc)
		if err != nil {
			m.setError(err)
			break
		}
		m.load(p, "location "+loc)
	case "e":
		examples := config.ExamplePrompts[snap.Params.Motion]
		if len(examples) == 0 {
			break
		}
		m.promptIdx = (m.promptIdx + 1) % len(examples)
		m.input = examples[m.promptIdx]
		m.applyPrompt(snap.Params.Motion)
	case "/":
		m.editing = true
	case "tab":
		m.tab = (m.tab + 1) % tabCount
	case "v":
		m.series = (m.series + 1) % seriesCount
	case "g":
		m.showGrid = !m.showGrid
	case "t":
		m.showTrail = !m.showTrail
	case "c":
		m.theme = NextTheme(m.theme.Name)
		m.styles = newStyles(m.theme)
	}
	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) Model {
	switch msg.Type {
	case tea.KeyEsc:
		m.editing = false
	case tea.KeyEnter:
		m.editing = false
		m.applyPrompt(m.snap.load().Params.Motion)
	case tea.KeyBackspace:
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
		}
	case tea.KeyCtrlU:
		m.input = ""
	case tea.KeySpace:
		m.input += " "
	case tea.KeyRunes:
		m.input += string(msg.Runes)
	}
	return m
}

func (m *Model) applyPrompt(mt dynamo.MotionType) {
	if strings.TrimSpace(m.input) == "" {
		return
	}
	m.load(m.extractor.Extract(m.input, mt), "parsed prompt")
}

func (m *Model) load(p dynamo.Params, what string) {
	if err := m.driver.SetParameters(p); err != nil {
		m.setError(err)
		return
	}
	m.setInfo(what)
}

func (m *Model) stepSpeed(current float64, dir int) {
	i, found := slices.BinarySearch(speedSteps, current)
	switch {
	case dir > 0 && found:
		i++
	case dir < 0:
		i--
	}
	i = min(max(i, 0), len(speedSteps)-1)
	if err := m.driver.SetSpeed(speedSteps[i]); err != nil {
		m.setError(err)
	}
}

func (m *Model) setInfo(s string) { m.status, m.statusErr = s, false }
func (m *Model) setError(err error) {
	m.status, m.statusErr = err.Error(), true
}

func nextMotion(mt dynamo.MotionType) dynamo.MotionType {
	all := dynamo.MotionTypes()
	i := slices.Index(all, mt)
	return all[(i+1)%len(all)]
}

func nextLocation(current string) string {
	names := config.LocationNames()
	if current == "" {
		current = "earth"
	}
	i := slices.Index(names, current)
	return names[(i+1)%len(names)]
}

func (m Model) View() string {
	snap := m.snap.load()

	var b strings.Builder
	b.WriteString(m.header(snap) + "\n")
	b.WriteString(m.tabs() + "\n")

	switch m.tab {
	case tabScene:
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.scene(snap), m.styles.stats.Render(m.stats(snap))))
	case tabGraphs:
		b.WriteString(m.graph(snap))
	case tabData:
		b.WriteString(m.data(snap))
	}

	b.WriteString("\n" + m.promptLine())
	if m.status != "" {
		style := m.styles.idle
		if m.statusErr {
			style = m.styles.errText
		}
		b.WriteString("\n" + style.Render(m.status))
	}
	b.WriteString("\n" + m.styles.help.Render(
		"space play/pause · r reset · +/- speed · m motion · l location · e example · / prompt · tab view · v series · g grid · t trail · c theme · q quit"))
	return b.String()
}

func (m Model) header(snap sim.Snapshot) string {
	title := GradientText("KINELAB", m.theme.Primary, m.theme.Secondary)
	phase := snap.Phase.String()
	var badge string
	switch snap.Phase {
	case sim.PhaseRunning:
		badge = m.styles.running.Render("▶ " + phase)
	case sim.PhasePaused:
		badge = m.styles.paused.Render("⏸ " + phase)
	case sim.PhaseCompleted:
		badge = m.styles.completed.Render("■ " + phase)
	default:
		badge = m.styles.idle.Render("○ " + phase)
	}
	return fmt.Sprintf("%s  %s  %s  %s",
		title,
		m.styles.header.Render(snap.Params.Motion.Title()),
		badge,
		m.styles.idle.Render(fmt.Sprintf("x%.2g  run %s", snap.Speed, snap.RunID.String()[:8])),
	)
}

func (m Model) tabs() string {
	parts := make([]string, tabCount)
	for t := tab(0); t < tabCount; t++ {
		style := m.styles.tab
		if t == m.tab {
			style = m.styles.activeTab
		}
		parts[t] = style.Render(t.String())
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) scene(snap sim.Snapshot) string {
	b := m.bounds
	if snap.RunID != m.boundsRun {
		b = analysis.Bounds{}
	}
	b = sceneBounds(b, snap.Params, snap.State)
	drawScene(m.canvas, b, snap.Params, snap.State, sceneOptions{grid: m.showGrid, trail: m.showTrail})

	style := m.styles.scene.BorderForeground(Backdrop(snap.Params.Environment))
	return style.Render(m.canvas.String())
}

func (m Model) stats(snap sim.Snapshot) string {
	s, p := snap.State, snap.Params
	row := func(label, format string, args ...any) string {
		return m.styles.label.Render(label) + m.styles.value.Render(fmt.Sprintf(format, args...)) + "\n"
	}

	var b strings.Builder
	b.WriteString(row("Time", "%.2f s", s.Time))
	b.WriteString(row("Height", "%.2f m", s.PosY))
	b.WriteString(row("Position", "%.2f m", s.PosX))
	b.WriteString(row("Velocity Y", "%.2f m/s", s.VelY))
	b.WriteString(row("Velocity X", "%.2f m/s", s.VelX))
	b.WriteString(row("Gravity", "%.2f m/s²", p.Gravity))
	b.WriteString(row("Momentum", "%.2f kg·m/s", metrics.Momentum(s, p)))
	b.WriteString(row("Mass", "%.2f kg", p.Mass))
	location := p.Location
	if location == "" {
		location = "earth"
	}
	b.WriteString(row("Location", "%s", location))
	b.WriteString(row("Steps", "%d", s.Steps()))

	if len(s.History) > 1 {
		b.WriteString("\n" + m.styles.label.Render("Speed") + "\n")
		b.WriteString(m.styles.graph.UnsetPadding().Render(SparklineChart(metrics.Speeds(s.History), statsWidth-8)))
	}
	return b.String()
}

func (m Model) graph(snap sim.Snapshot) string {
	h := metrics.Decimate(snap.State.History, m.cfg.GraphEvery)
	if len(h) < 2 {
		return m.styles.idle.Render("\n  waiting for samples, press space to play\n")
	}
	width := max(m.canvas.Width+statsWidth-12, 20)
	chart := asciigraph.Plot(m.series.values(h),
		asciigraph.Height(max(m.canvas.Height, 6)),
		asciigraph.Width(width),
		asciigraph.Precision(2),
		asciigraph.Caption(fmt.Sprintf("%s vs time, every %d samples (v: next series)", m.series, m.cfg.GraphEvery)),
	)
	return m.styles.graph.Render(chart)
}

func (m Model) data(snap sim.Snapshot) string {
	var b strings.Builder
	b.WriteString(m.styles.header.Render("Parameters") + "\n")
	values := snap.Params.GetParams()
	for _, name := range dynamo.ParamNames() {
		if v, ok := values[name]; ok {
			b.WriteString(m.styles.label.Render(name) + m.styles.value.Render(fmt.Sprintf("%.3f", v)) + "\n")
		}
	}
	b.WriteString(m.styles.label.Render("actor") + m.styles.value.Render(string(snap.Params.Actor)) + "\n")
	b.WriteString(m.styles.label.Render("object") + m.styles.value.Render(string(snap.Params.Object)) + "\n")

	ms := metrics.Defaults(snap.Params)
	metrics.Observe(ms, snap.State.History)
	vals := metrics.Values(ms)
	names := make([]string, 0, len(vals))
	for name := range vals {
		names = append(names, name)
	}
	sort.Strings(names)

	b.WriteString("\n" + m.styles.header.Render("Metrics") + "\n")
	for _, name := range names {
		b.WriteString(m.styles.label.Render(name) + m.styles.value.Render(fmt.Sprintf("%.3f", vals[name])) + "\n")
	}
	return b.String()
}

func (m Model) promptLine() string {
	if m.editing {
		return m.styles.prompt.Render("prompt> " + m.input + "█")
	}
	if m.input == "" {
		return m.styles.idle.Render("prompt> (press / to describe a problem)")
	}
	return m.styles.idle.Render("prompt> " + m.input)
}

// Run shows the live view of d until the user quits or ctx ends.
func Run(ctx context.Context, d *sim.Driver, cfg config.ViewConfig, ex prompt.Extractor) error {
	m := NewModel(d, cfg, ex)
	defer m.Close()

	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
