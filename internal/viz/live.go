// Package viz renders a live terminal view of a running simulation:
// energy and star-mass histories as graphs, plus a stats pane.
package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/galaxsph/internal/evolve"
	"github.com/san-kum/galaxsph/internal/metrics"
	"github.com/san-kum/galaxsph/internal/units"
)

const historyCapacity = 600

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(0, 2)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model drives the simulator one timestep per tick.
type Model struct {
	sim *evolve.Simulator
	dt  float64 // SI
	fps int

	energy   *metrics.TotalEnergy
	starMass *metrics.StarMass

	t             float64
	steps         int
	running       bool
	err           error
	energyHistory []float64
	starHistory   []float64
}

func NewModel(sim *evolve.Simulator, dt float64, fps int) Model {
	if fps < 1 {
		fps = 30
	}
	return Model{
		sim:           sim,
		dt:            dt,
		fps:           fps,
		energy:        metrics.NewTotalEnergy(),
		starMass:      metrics.NewStarMass(),
		running:       true,
		energyHistory: make([]float64, 0, historyCapacity),
		starHistory:   make([]float64, 0, historyCapacity),
	}
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		}

	case TickMsg:
		if m.running && m.err == nil {
			if err := m.sim.Advance(m.dt); err != nil {
				m.err = err
				m.running = false
			} else {
				m.t += m.dt
				m.steps++
				m.observe()
			}
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) observe() {
	ar := m.sim.Arena()
	m.energy.Observe(ar, m.t)
	m.starMass.Observe(ar, m.t)

	m.energyHistory = append(m.energyHistory, m.energy.Value())
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}
	m.starHistory = append(m.starHistory, m.starMass.Value()/units.Msun)
	if len(m.starHistory) > historyCapacity {
		m.starHistory = m.starHistory[1:]
	}
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("galaxsph live"))
	b.WriteString("\n")

	if len(m.energyHistory) >= 2 {
		graph := asciigraph.Plot(m.energyHistory,
			asciigraph.Height(10), asciigraph.Width(70),
			asciigraph.Caption("total energy [J]"))
		b.WriteString(graphStyle.Render(graph))
		b.WriteString("\n")
	}
	if len(m.starHistory) >= 2 && m.starHistory[len(m.starHistory)-1] > 0 {
		graph := asciigraph.Plot(m.starHistory,
			asciigraph.Height(8), asciigraph.Width(70),
			asciigraph.Caption("stellar mass [Msun]"))
		b.WriteString(graphStyle.Render(graph))
		b.WriteString("\n")
	}

	b.WriteString(m.stats())

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errStyle.Render("run aborted: " + m.err.Error()))
	}

	b.WriteString(helpStyle.Render("space pause · q quit"))
	return b.String()
}

func (m Model) stats() string {
	ar := m.sim.Arena()

	meanRho := 0.0
	for i := 0; i < ar.Len(); i++ {
		meanRho += ar.At(i).Rho
	}
	if ar.Len() > 0 {
		meanRho /= float64(ar.Len())
	}

	state := "running"
	if !m.running {
		state = "paused"
	}

	rows := []string{
		labelStyle.Render("state") + valueStyle.Render(state),
		labelStyle.Render("time") + valueStyle.Render(fmt.Sprintf("%.2f Myr", m.t/units.Myr)),
		labelStyle.Render("steps") + valueStyle.Render(fmt.Sprintf("%d", m.steps)),
		labelStyle.Render("particles") + valueStyle.Render(fmt.Sprintf("%d", ar.Len())),
		labelStyle.Render("mean rho") + valueStyle.Render(fmt.Sprintf("%.3g kg/m3", meanRho)),
		labelStyle.Render("gas mass") + valueStyle.Render(fmt.Sprintf("%.4g Msun", ar.GasMass()/units.Msun)),
	}
	return statsStyle.Render(strings.Join(rows, "\n")) + "\n"
}

// Run starts the live view and blocks until quit.
func Run(sim *evolve.Simulator, dt float64, fps int) error {
	p := tea.NewProgram(NewModel(sim, dt, fps))
	_, err := p.Run()
	return err
}
