package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hostsentry/hostsentry-stats/internal/averages"
)

// DaemonState is one daemon's live state, or the error that replaced it.
type DaemonState struct {
	Daemon string
	Fields map[string]any
	Err    error
}

// Snapshot is everything one refresh renders.
type Snapshot struct {
	Daemons []DaemonState
	Hourly  averages.HourlyAverage
	RTTP50  time.Duration
	RTTMax  time.Duration
	Taken   time.Time
}

// SnapshotSource produces a fresh Snapshot. Called once per refresh tick,
// from the update loop.
type SnapshotSource interface {
	Snapshot() Snapshot
}

// TickMsg is sent periodically to refresh the display.
type TickMsg time.Time

// Model represents the TUI state.
type Model struct {
	source  SnapshotSource
	refresh time.Duration

	snapshot  *Snapshot
	startTime time.Time

	width  int
	height int

	quitting bool
}

// Config holds TUI configuration.
type Config struct {
	Source  SnapshotSource
	Refresh time.Duration
}

// New creates a new TUI model.
func New(cfg Config) Model {
	refresh := cfg.Refresh
	if refresh <= 0 {
		refresh = 2 * time.Second
	}
	return Model{
		source:    cfg.Source,
		refresh:   refresh,
		startTime: time.Now(),
		width:     80,
		height:    24,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return m.tickCmd()
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "r":
			// Force refresh
			return m, m.tickCmd()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case TickMsg:
		if m.source != nil {
			snap := m.source.Snapshot()
			m.snapshot = &snap
		}
		return m, m.tickCmd()
	}

	return m, nil
}

// tickCmd returns a command that sends a tick after the refresh interval.
func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.refresh, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Elapsed returns the time since the dashboard started.
func (m Model) Elapsed() time.Duration {
	return time.Since(m.startTime)
}
