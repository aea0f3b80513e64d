// Package tui is the interactive terminal front end. It owns no simulation
// logic: mouse input flows into the gesture controller and the view is
// drawn from the per-frame render snapshot.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/anand-ps/reverie/internal/config"
	"github.com/anand-ps/reverie/internal/engine"
	"github.com/anand-ps/reverie/internal/gesture"
	"github.com/anand-ps/reverie/internal/registry"
	"github.com/anand-ps/reverie/internal/telemetry"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	selectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	pausedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	statStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
)

type uiState int

const (
	stateMenu uiState = iota
	stateSim
)

const (
	canvasCols  = 64
	canvasRows  = 20
	frameEvery  = 33 * time.Millisecond
	graphPoints = 48
)

// Model is the bubbletea application.
type Model struct {
	state uiState

	reg    *registry.Registry
	cfg    *config.Config
	names  []string
	cursor int

	eng        *engine.Engine
	controller *gesture.Controller
	family     gesture.Family
	selected   string
	snap       engine.Snapshot
	repel      bool

	canvas  *Canvas
	history []float64
	epoch   time.Time
	last    time.Time

	width, height int
	err           error
}

// NewModel builds the TUI over a validated config. startModel, when
// non-empty, skips the menu.
func NewModel(reg *registry.Registry, cfg *config.Config, startModel string) (*Model, error) {
	m := &Model{
		state:  stateMenu,
		reg:    reg,
		cfg:    cfg,
		names:  reg.List(),
		canvas: NewCanvas(canvasCols, canvasRows),
		epoch:  time.Now(),
		width:  80,
		height: 24,
	}
	if startModel != "" {
		if err := m.start(startModel); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Model) start(name string) error {
	sim, err := m.reg.Build(name, m.cfg)
	if err != nil {
		return err
	}
	eng, err := engine.New(sim, m.cfg.StepSize())
	if err != nil {
		return err
	}
	family, err := m.reg.Family(name)
	if err != nil {
		return err
	}
	m.eng = eng
	m.family = family
	m.controller = gesture.NewController(family, m.cfg.Width, m.cfg.Height,
		m.cfg.Grid.Rows, m.cfg.Grid.Cols)
	m.selected = name
	m.state = stateSim
	m.last = time.Now()
	m.history = m.history[:0]
	m.snap = eng.Tick(0)
	return nil
}

func (m *Model) Init() tea.Cmd { return frame() }

type frameMsg time.Time

func frame() tea.Cmd {
	return tea.Tick(frameEvery, func(t time.Time) tea.Msg { return frameMsg(t) })
}

// Update handles frames, keys and mouse gestures.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil
	case frameMsg:
		if m.state == stateSim && m.eng != nil {
			now := time.Now()
			if ev, ok := m.controller.Poll(time.Since(m.epoch).Seconds()); ok {
				m.eng.Apply(ev)
			}
			m.snap = m.eng.Tick(now.Sub(m.last).Seconds())
			m.last = now
			m.observe()
		}
		return m, frame()
	}
	return m, nil
}

func (m *Model) observe() {
	var v float64
	if m.snap.Grid != nil {
		if len(m.snap.Avalanches) > 0 {
			v = float64(m.snap.Avalanches[len(m.snap.Avalanches)-1])
		}
	} else {
		for _, p := range m.snap.Particles {
			v += 0.5 * p.Vel.LenSq()
		}
	}
	m.history = append(m.history, v)
	if len(m.history) > graphPoints {
		m.history = m.history[1:]
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.state == stateMenu {
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.names)-1 {
				m.cursor++
			}
		case "enter", " ":
			m.err = m.start(m.names[m.cursor])
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "q", "esc":
		m.state = stateMenu
	case " ":
		m.eng.SetRunning(!m.eng.Running())
	case "r":
		m.eng.Reset(time.Now().UnixNano())
		m.snap = m.eng.Tick(0)
		m.history = m.history[:0]
	case "m":
		if repeller, ok := m.eng.Model().(interface{ SetRepel(bool) }); ok {
			m.repel = !m.repel
			repeller.SetRepel(m.repel)
		}
	}
	return m, nil
}

// handleMouse converts terminal cell coordinates into simulation space and
// feeds the gesture controller. The canvas sits below a one-line header.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	if m.state != stateSim || m.controller == nil {
		return
	}
	pos := engine.Vec2{
		X: float64(msg.X) / float64(canvasCols) * m.cfg.Width,
		Y: float64(msg.Y-1) / float64(canvasRows) * m.cfg.Height,
	}
	t := time.Since(m.epoch).Seconds()

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.controller.Press(pos, t)
		}
	case tea.MouseActionMotion:
		m.controller.Move(pos, t)
	case tea.MouseActionRelease:
		if ev, ok := m.controller.Release(pos, t); ok {
			m.eng.Apply(ev)
		}
	}
}

// View renders the menu or the simulation frame.
func (m *Model) View() string {
	if m.state == stateMenu {
		return m.viewMenu()
	}
	return m.viewSim()
}

func (m *Model) viewMenu() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("reverie") + dimStyle.Render("  interactive simulations") + "\n\n")
	for i, name := range m.names {
		line := fmt.Sprintf("  %-10s %s", name, dimStyle.Render(m.reg.Info(name)))
		if i == m.cursor {
			line = selectStyle.Render("> " + line[2:])
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n" + dimStyle.Render("enter select · j/k move · q quit"))
	if m.err != nil {
		b.WriteString("\n" + pausedStyle.Render(m.err.Error()))
	}
	return b.String()
}

func (m *Model) viewSim() string {
	m.drawSnapshot()

	status := titleStyle.Render(m.selected)
	if !m.eng.Running() {
		status += "  " + pausedStyle.Render("paused")
	}
	status += dimStyle.Render(fmt.Sprintf("  t=%.1fs", m.snap.Time))

	var b strings.Builder
	b.WriteString(status + "\n")
	b.WriteString(m.canvas.String() + "\n")
	b.WriteString(m.statusLine() + "\n")

	if len(m.history) > 1 {
		b.WriteString(dimStyle.Render(asciigraph.Plot(m.history,
			asciigraph.Height(4), asciigraph.Width(canvasCols))) + "\n")
	}
	b.WriteString(dimStyle.Render("click tap=add/toggle · drag=launch · hold=remove · space pause · r reset · m mode · q back"))
	return b.String()
}

func (m *Model) statusLine() string {
	if m.snap.Grid != nil {
		if m.snap.Grid.Heights != nil {
			stats := telemetry.Avalanches(m.snap.Avalanches)
			return statStyle.Render(fmt.Sprintf("avalanches %d  mean %.1f  max %d  lost %d",
				stats.Count, stats.Mean, stats.Max, m.snap.GrainsLost))
		}
		alive := 0
		for _, c := range m.snap.Grid.Cells {
			if c.Alive {
				alive++
			}
		}
		return statStyle.Render(fmt.Sprintf("population %d", alive))
	}
	mode := "attract"
	if m.repel {
		mode = "repel"
	}
	return statStyle.Render(fmt.Sprintf("particles %d  sources %d  mode %s",
		len(m.snap.Particles), len(m.snap.Sources), mode))
}

// drawSnapshot rasterizes the current snapshot onto the braille canvas.
func (m *Model) drawSnapshot() {
	m.canvas.Clear()
	if m.snap.Grid != nil {
		m.drawGrid()
		return
	}
	m.drawFlow()
}

func (m *Model) drawFlow() {
	dw, dh := float64(m.canvas.DotWidth()), float64(m.canvas.DotHeight())
	toX := func(x float64) int { return int(x / m.cfg.Width * dw) }
	toY := func(y float64) int { return int(y / m.cfg.Height * dh) }

	for _, s := range m.snap.Sources {
		x, y := toX(s.Pos.X), toY(s.Pos.Y)
		m.canvas.Set(x, y)
		m.canvas.Set(x-1, y)
		m.canvas.Set(x+1, y)
		m.canvas.Set(x, y-1)
		m.canvas.Set(x, y+1)
	}
	for _, p := range m.snap.Particles {
		for _, tp := range p.Trail {
			m.canvas.Set(toX(tp.X), toY(tp.Y))
		}
		x, y := toX(p.Pos.X), toY(p.Pos.Y)
		m.canvas.FillRect(x-1, y-1, x+1, y+1)
	}
}

func (m *Model) drawGrid() {
	g := m.snap.Grid
	dw, dh := m.canvas.DotWidth(), m.canvas.DotHeight()
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			idx := r*g.Cols + c
			on := false
			if g.Heights != nil {
				on = g.Heights[idx] > 0
			} else {
				on = g.Cells[idx].Alive
			}
			if !on {
				continue
			}
			x0 := c * dw / g.Cols
			x1 := (c+1)*dw/g.Cols - 1
			y0 := r * dh / g.Rows
			y1 := (r+1)*dh/g.Rows - 1
			if x1 < x0 {
				x1 = x0
			}
			if y1 < y0 {
				y1 = y0
			}
			m.canvas.FillRect(x0, y0, x1, y1)
		}
	}
}

// Run starts the TUI program with mouse tracking enabled.
func Run(reg *registry.Registry, cfg *config.Config, startModel string) error {
	m, err := NewModel(reg, cfg, startModel)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err = p.Run()
	return err
}
