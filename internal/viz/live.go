package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/catsanzsh/flame64/internal/chaos"
	"github.com/catsanzsh/flame64/internal/config"
	"github.com/catsanzsh/flame64/internal/metrics"
)

const (
	viewCols        = 80
	viewRows        = 30
	historyCapacity = 600
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(40)
	graphStyle  = lipgloss.NewStyle().Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// ConfigMsg delivers a hot-reloaded configuration to the viewer.
type ConfigMsg *config.Config

// Model drives the live terminal viewer: it polls the evolution loop
// for frame snapshots at the configured refresh rate and never touches
// the engine except through the loop's safe surface.
type Model struct {
	loop     *chaos.Loop
	cfg      *config.Config
	seedPath string

	frame    []byte
	metrics  []metrics.Metric
	history  []float64
	status   string
	paused   bool
	showHelp bool
}

func NewModel(loop *chaos.Loop, cfg *config.Config, seedPath string) Model {
	SetTheme(cfg.Theme)
	return Model{
		loop:     loop,
		cfg:      cfg,
		seedPath: seedPath,
		metrics:  metrics.Defaults(),
		history:  make([]float64, 0, historyCapacity),
		status:   "primal chaos",
	}
}

func (m Model) refresh() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.cfg.FPS), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.refresh()
}

// Update handles input events and pulls fresh frames on each tick.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.loop.Stop()
			return m, tea.Quit
		case " ":
			if m.paused {
				m.loop.Start()
				m.status = "resumed"
			} else {
				m.loop.Stop()
				m.status = "paused"
			}
			m.paused = !m.paused
		case "r":
			m.loop.Reset()
			m.status = "chaos reset to primal state"
		case "l":
			if m.seedPath == "" {
				m.status = "no seed file to reload"
				break
			}
			if err := m.loop.LoadFile(m.seedPath); err != nil {
				m.status = err.Error()
			} else {
				m.paused = false
				m.status = fmt.Sprintf("reloaded %s (%d bytes)", m.seedPath, m.loop.SeedLen())
			}
		case "d":
			m.status = m.loop.LaunchDebugger()
		case "i":
			m.status = m.loop.LaunchInspector()
		case "t":
			names := ThemeNames()
			for i, name := range names {
				if name == CurrentTheme.Name {
					SetTheme(names[(i+1)%len(names)])
					break
				}
			}
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		m.frame = m.loop.Snapshot()
		grid := m.loop.SnapshotGrid()
		for _, met := range m.metrics {
			met.Observe(grid)
		}
		m.history = append(m.history, m.metricValue("entropy"))
		if len(m.history) > historyCapacity {
			m.history = m.history[1:]
		}
		return m, m.refresh()
	case ConfigMsg:
		m.cfg = (*config.Config)(msg)
		SetTheme(m.cfg.Theme)
		m.status = "config reloaded"
	}
	return m, nil
}

func (m Model) metricValue(name string) float64 {
	for _, met := range m.metrics {
		if met.Name() == name {
			return met.Value()
		}
	}
	return 0
}

// View renders the frame panel and the stats sidebar.
func (m Model) View() string {
	headerStyle := lipgloss.NewStyle().Foreground(CurrentTheme.Primary).Bold(true).MarginBottom(1)
	labelStyle := lipgloss.NewStyle().Foreground(CurrentTheme.Muted).Width(10)
	valueStyle := lipgloss.NewStyle().Foreground(CurrentTheme.Text)

	canvasView := canvasStyle.Render(RenderFrame(m.frame, viewCols, viewRows))

	var s strings.Builder
	s.WriteString(headerStyle.Render("FLAME64") + "\n")
	status := "RUNNING"
	if m.paused {
		status = "PAUSED"
	}
	s.WriteString(status + "\n\n")

	if len(m.history) > 1 {
		chart := asciigraph.Plot(m.history, asciigraph.Height(4), asciigraph.Width(28), asciigraph.Caption("Entropy"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Ticks") + valueStyle.Render(fmt.Sprintf("%d", m.loop.Ticks())) + "\n")
	for _, met := range m.metrics {
		s.WriteString(labelStyle.Render(met.Name()) + valueStyle.Render(fmt.Sprintf("%.3f", met.Value())) + "\n")
	}
	if m.seedPath != "" {
		s.WriteString(labelStyle.Render("Seed") + valueStyle.Render(fmt.Sprintf("%s (%d B)", m.seedPath, m.loop.SeedLen())) + "\n")
	}
	s.WriteString("\n" + valueStyle.Render(m.status) + "\n")
	s.WriteString(helpStyle.Render("SP:Pause R:Reset L:Reload Q:Quit\nT:Theme D:Debugger I:Inspector ?:Help"))

	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume evolution   ║
║  R        - Reset to random state    ║
║  L        - Reload the seed file     ║
║  T        - Cycle themes             ║
║  D        - Launch chaos debugger    ║
║  I        - Launch chaos inspector   ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

// NewProgram wraps the viewer model in a bubbletea program. Callers can
// Send a ConfigMsg to hot-apply configuration changes.
func NewProgram(loop *chaos.Loop, cfg *config.Config, seedPath string) *tea.Program {
	return tea.NewProgram(NewModel(loop, cfg, seedPath), tea.WithAltScreen())
}
