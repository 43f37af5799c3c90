package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/mdsim/internal/sim"
)

const (
	historyCapacity = 600
	defaultWidth    = 72
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0, 0, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model steps an integrator in the background of a bubbletea program and
// charts the energy, temperature and pressure histories.
type Model struct {
	mts          *sim.Integrator
	stepsPerTick int
	tailE, tailP float64

	steps   int
	running bool
	width   int

	scene   *Scene
	showBox bool

	eHist []float64
	tHist []float64
	pHist []float64
}

func NewModel(mts *sim.Integrator, stepsPerTick int, tailE, tailP float64) Model {
	if stepsPerTick < 1 {
		stepsPerTick = 1
	}
	return Model{
		mts:          mts,
		stepsPerTick: stepsPerTick,
		tailE:        tailE,
		tailP:        tailP,
		running:      true,
		width:        defaultWidth,
		scene:        NewScene(),
		eHist:        make([]float64, 0, historyCapacity),
		tHist:        make([]float64, 0, historyCapacity),
		pHist:        make([]float64, 0, historyCapacity),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(50*time.Millisecond, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "v":
			m.showBox = !m.showBox
		case "left":
			m.scene.Rotate(-0.15, 0)
		case "right":
			m.scene.Rotate(0.15, 0)
		case "up":
			m.scene.Rotate(0, -0.15)
		case "down":
			m.scene.Rotate(0, 0.15)
		case "+", "=":
			m.scene.ZoomIn()
		case "-":
			m.scene.ZoomOut()
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case TickMsg:
		if m.running {
			for i := 0; i < m.stepsPerTick; i++ {
				m.mts.Step()
			}
			m.steps += m.stepsPerTick

			e, t, p := m.mts.Measure()
			m.eHist = push(m.eHist, e+m.tailE)
			m.tHist = push(m.tHist, t)
			m.pHist = push(m.pHist, p+m.tailP)
		}
		return m, tea.Tick(50*time.Millisecond, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func push(hist []float64, v float64) []float64 {
	hist = append(hist, v)
	if len(hist) > historyCapacity {
		hist = hist[1:]
	}
	return hist
}

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(headerStyle.Render("MDSIM LIVE") + "\n")
	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}
	s.WriteString(statusStyle.Render(status) + "\n")

	graphWidth := m.width - 12
	if graphWidth < 20 {
		graphWidth = 20
	}
	if graphWidth > 100 {
		graphWidth = 100
	}
	sys := m.mts.System()

	if m.showBox {
		c := NewCanvas(graphWidth, 18)
		m.scene.Render(c, sys.Box, sys.R)
		s.WriteString(graphStyle.Render(strings.TrimRight(c.String(), "\n")) + "\n")
	} else {
		for _, g := range []struct {
			caption string
			hist    []float64
		}{
			{"E/N", m.eHist},
			{"T", m.tHist},
			{"P", m.pHist},
		} {
			if len(g.hist) > 1 {
				chart := asciigraph.Plot(g.hist,
					asciigraph.Height(5),
					asciigraph.Width(graphWidth),
					asciigraph.Caption(g.caption))
				s.WriteString(graphStyle.Render(chart) + "\n")
			}
		}
	}

	s.WriteString("\n")
	s.WriteString(labelStyle.Render("Steps") + valueStyle.Render(fmt.Sprintf("%d", m.steps)) + "\n")
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.3f", float64(m.steps)*m.mts.Span())) + "\n")
	s.WriteString(labelStyle.Render("Particles") + valueStyle.Render(fmt.Sprintf("%d", sys.N)) + "\n")
	s.WriteString(labelStyle.Render("Density") + valueStyle.Render(fmt.Sprintf("%.4f", sys.Density())) + "\n")
	if n := len(m.eHist); n > 0 {
		s.WriteString(labelStyle.Render("E/N") + valueStyle.Render(fmt.Sprintf("%.6f", m.eHist[n-1])) + "\n")
		s.WriteString(labelStyle.Render("T") + valueStyle.Render(fmt.Sprintf("%.6f", m.tHist[n-1])) + "\n")
		s.WriteString(labelStyle.Render("P") + valueStyle.Render(fmt.Sprintf("%.6f", m.pHist[n-1])) + "\n")
	}

	s.WriteString(helpStyle.Render("space: pause   v: box view   arrows: rotate   +/-: zoom   q: quit"))
	return s.String()
}
