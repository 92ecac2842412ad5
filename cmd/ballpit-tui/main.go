package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ballpit/config"
	"ballpit/render"
	"ballpit/sim"
)

var (
	frameStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("62"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
)

type tickMsg time.Time

type model struct {
	settings config.Settings
	world    *sim.World
	term     *render.Terminal
	paused   bool
	err      error
}

func newModel(s config.Settings) (model, error) {
	m := model{settings: s}
	if err := m.respawn(); err != nil {
		return m, err
	}
	m.term = render.NewTerminal(60, 24, s.Sim.Width, s.Sim.Height)
	return m, nil
}

func (m *model) respawn() error {
	rng := sim.NewRand(m.settings.Sim.Seed)
	w, err := sim.Spawn(m.settings.Sim, rng, sim.RandomSprite(rng, m.settings.Palette))
	if err != nil {
		return err
	}
	m.world = w
	return nil
}

func (m model) tick() tea.Cmd {
	return tea.Tick(m.settings.Sim.TickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m model) Init() tea.Cmd { return m.tick() }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "n":
			if m.paused {
				m.world.Step()
			}
		case "r":
			if err := m.respawn(); err != nil {
				m.err = err
				return m, tea.Quit
			}
		}
		return m, nil
	case tea.WindowSizeMsg:
		cols, rows := max(msg.Width-2, 10), max(msg.Height-4, 5)
		m.term = render.NewTerminal(cols, rows, m.settings.Sim.Width, m.settings.Sim.Height)
		return m, nil
	case tickMsg:
		if !m.paused {
			m.world.Step()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m model) View() string {
	render.Frame(m.term, m.world.Bodies())
	state := "running"
	if m.paused {
		state = "paused"
	}
	status := fmt.Sprintf("tick %d  %s  [space] pause  [n] step  [r] reset  [q] quit", m.world.Tick, state)
	return frameStyle.Render(m.term.String()) + "\n" + statusStyle.Render(status)
}

func main() {
	cfgPath := flag.String("config", "ballpit.yaml", "optional YAML settings file")
	flag.Parse()

	if err := config.InitConfig(); err != nil {
		log.Fatal(err)
	}
	settings, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal(err)
	}
	m, err := newModel(settings)
	if err != nil {
		log.Fatal(err)
	}
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		log.Fatal(err)
	}
	if fm, ok := final.(model); ok && fm.err != nil {
		log.Fatal(fm.err)
	}
}
