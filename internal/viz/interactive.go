package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/trace3d/internal/compute"
)

const (
	canvasWidth  = 80
	canvasHeight = 24
	frameHistory = 120
)

type TickMsg time.Time

// Model is the interactive scene viewer: orbit, zoom and inspect a set of
// traces from the terminal.
type Model struct {
	title      string
	traces     []Trace
	view       *View
	canvas     *Canvas
	orbiting   bool
	frameTimes []float64 // milliseconds
	showHelp   bool
}

func NewModel(title string, traces []Trace) Model {
	return Model{
		title:      title,
		traces:     traces,
		view:       NewView(),
		canvas:     NewCanvas(canvasWidth, canvasHeight),
		orbiting:   true,
		frameTimes: make([]float64, 0, frameHistory),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.orbiting = !m.orbiting
		case "r":
			m.view.Reset()
		case "x":
			m.view.RotateX(0.1)
		case "X":
			m.view.RotateX(-0.1)
		case "y":
			m.view.RotateY(0.1)
		case "Y":
			m.view.RotateY(-0.1)
		case "z":
			m.view.RotateZ(0.1)
		case "Z":
			m.view.RotateZ(-0.1)
		case "+", "=":
			m.view.ZoomIn()
		case "-", "_":
			m.view.ZoomOut()
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.orbiting {
			m.view.RotateY(0.01)
		}
		start := time.Now()
		m.draw()
		m.frameTimes = append(m.frameTimes, float64(time.Since(start).Microseconds())/1000)
		if len(m.frameTimes) > frameHistory {
			m.frameTimes = m.frameTimes[1:]
		}
		return m, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) draw() {
	m.canvas.Clear()
	RenderTraces(m.canvas, m.traces, m.view)
}

func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.title)) + "\n")
	if m.orbiting {
		s.WriteString("ORBITING\n\n")
	} else {
		s.WriteString("PAUSED\n\n")
	}

	if len(m.frameTimes) > 1 {
		chart := asciigraph.Plot(m.frameTimes, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Frame ms"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Traces") + valueStyle.Render(fmt.Sprintf("%d", len(m.traces))) + "\n")
	s.WriteString(labelStyle.Render("Zoom") + valueStyle.Render(fmt.Sprintf("%.2fx", m.view.Zoom)) + "\n")
	s.WriteString(labelStyle.Render("Backend") + valueStyle.Render(compute.GetBackend().Name()) + "\n")
	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Orbit R:Reset Q:Quit\nx/y/z:Rotate +/-:Zoom ?:Help"))

	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)

	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/resume orbit       ║
║  R        - Reset view               ║
║  Q        - Quit                     ║
║  x/X      - Rotate around X          ║
║  y/Y      - Rotate around Y          ║
║  z/Z      - Rotate around Z          ║
║  +/-      - Zoom in/out              ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

// RunInteractive opens the viewer in the alternate screen and blocks
// until the user quits.
func RunInteractive(title string, traces []Trace) error {
	p := tea.NewProgram(NewModel(title, traces), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
