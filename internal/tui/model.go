// Package tui is the terminal viewer: a braille projection of the room and
// its particles next to the readout panel and a temperature chart.
package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/roomflow/internal/readout"
	"github.com/san-kum/roomflow/internal/room"
	"github.com/san-kum/roomflow/internal/sim"
	"github.com/san-kum/roomflow/internal/viz"
)

const (
	panelWidth  = 40
	chartHeight = 6
	orbitStep   = 0.1
	zoomIn      = 0.9
	zoomOut     = 1 / zoomIn
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(0, 1)
	helpText    = "←/→ orbit  +/- zoom  q quit"
)

type TickMsg time.Time

// Model drives a room from bubbletea ticks.
type Model struct {
	room   *room.Room
	clock  sim.Clock
	frame  time.Duration
	canvas *viz.Canvas
	wire   *viz.Wireframe
	width  int
	height int
	ticks  int
}

// New returns a viewer ticking at fps frames per second.
func New(r *room.Room, clock sim.Clock, fps int) Model {
	if clock == nil {
		clock = sim.SystemClock{}
	}
	if fps <= 0 {
		fps = 60
	}
	m := Model{
		room:   r,
		clock:  clock,
		frame:  time.Second / time.Duration(fps),
		canvas: viz.NewCanvas(1, 1),
	}
	m.resize(80, 24)
	return m
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.frame, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return m.tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			m.room.Camera().Orbit(-orbitStep)
		case "right", "l":
			m.room.Camera().Orbit(orbitStep)
		case "+", "=":
			m.room.Camera().Dolly(zoomIn)
		case "-", "_":
			m.room.Camera().Dolly(zoomOut)
		}
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case TickMsg:
		m.room.Tick(m.clock.Now())
		if m.wire == nil {
			if s := m.room.Scene(); s != nil {
				m.wire = viz.SceneWireframe(s)
			}
		}
		m.ticks++
		return m, m.tick()
	}
	return m, nil
}

// resize fits the canvas beside the panel and matches the camera aspect
// to the canvas dot grid.
func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	cw := w - panelWidth - 4
	ch := h - 2
	m.canvas.Resize(cw, ch)
	dw, dh := m.canvas.Dots()
	m.room.Camera().Resize(dw, dh)
}

func (m Model) View() string {
	panel := m.room.Panel()
	if o, ok := panel.Error(); ok {
		box := viz.ErrorBox.Render(viz.Title.Render(o.Title) + "\n\n" + o.Message)
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	if panel.Loading() {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.viewLoading())
	}

	m.draw()
	canvasView := canvasStyle.Render(m.canvas.Render(viz.PenStyles))
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, m.viewPanel())
}

func (m Model) viewLoading() string {
	text := m.room.Panel().Text(readout.LoadingProgress)
	pct, _ := strconv.Atoi(strings.TrimSuffix(text, "%"))
	var s strings.Builder
	s.WriteString(viz.AnimatedSpinner(m.ticks) + " " + viz.Title.Render("Loading room") + "\n\n")
	s.WriteString(viz.ProgressBar(pct, 30) + " " + viz.Subtle.Render(fmt.Sprintf("%3d%%", pct)))
	return viz.GlassPanel.Render(s.String())
}

func (m Model) viewPanel() string {
	panel := m.room.Panel()
	ac := panel.Text(readout.ACState)
	win := panel.Text(readout.WindowState)

	var s strings.Builder
	s.WriteString(viz.Title.Render("ROOM") + "\n\n")
	s.WriteString(viz.MetricLabel.Render("Time") + viz.MetricValue.Render(panel.Text(readout.Time)) + "\n")
	s.WriteString(viz.MetricLabel.Render("AC") + viz.StateStyle(ac == "ON").Render(ac) + "\n")
	s.WriteString(viz.MetricLabel.Render("Window") + viz.StateStyle(win == "OPEN").Render(win) + "\n")
	s.WriteString(viz.MetricLabel.Render("Temperature") + viz.MetricValue.Render(panel.Text(readout.Temperature)) + "\n")

	if chart := m.chart(); chart != "" {
		s.WriteString("\n" + chart + "\n")
	}
	s.WriteString("\n" + viz.KeyHint.Render(helpText))
	return viz.GlassPanel.Width(panelWidth).Render(s.String())
}

// chart plots the temperature series with a marker row under the current
// cursor position.
func (m Model) chart() string {
	seq := m.room.Sequence()
	if seq == nil || seq.Len() < 2 {
		return ""
	}
	series := seq.TemperatureSeries()
	width := panelWidth - 14
	plot := asciigraph.Plot(series,
		asciigraph.Height(chartHeight),
		asciigraph.Width(width),
		asciigraph.Precision(1),
		asciigraph.SeriesColors(asciigraph.Cyan))
	caption := viz.Subtle.Render("Temperature °C")

	cur, ok := m.room.Cursor()
	if !ok {
		return plot + "\n" + caption
	}
	lines := strings.Split(plot, "\n")
	offset := 0
	if len(lines) > 0 {
		offset = lipgloss.Width(lines[0]) - width
	}
	col := cur.Index * (width - 1) / (len(series) - 1)
	return plot + "\n" + strings.Repeat(" ", max(offset+col, 0)) + "▲\n" + caption
}

// draw renders the scene wireframe and both particle clouds.
func (m Model) draw() {
	m.canvas.Clear()
	if m.wire == nil {
		return
	}
	p := viz.NewProjector(m.room.Camera(), m.canvas)
	viz.Render3D(m.canvas, m.wire, p)

	ac, window := m.room.Particles()
	viz.PlotParticles(m.canvas, window, p, viz.PenWindow)
	viz.PlotParticles(m.canvas, ac, p, viz.PenAC)
}

// Run starts the viewer full-screen and blocks until it exits.
func Run(r *room.Room, clock sim.Clock, fps int) error {
	_, err := tea.NewProgram(New(r, clock, fps), tea.WithAltScreen()).Run()
	return err
}
