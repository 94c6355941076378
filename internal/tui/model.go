package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/typeracer/internal/loop"
	"github.com/verte-zerg/typeracer/internal/session"
)

// tickMsg refreshes the elapsed time. Ticks from an earlier chain carry a
// stale gen and are dropped.
type tickMsg struct {
	gen int
}

// Model is a Bubble Tea frontend over a Session.
type Model struct {
	session *session.Session
	logger  *slog.Logger
	keys    keyMap
	tick    time.Duration
	tickGen int

	width  int
	height int
}

// NewModel returns a Bubble Tea model driving s.
func NewModel(s *session.Session, logger *slog.Logger) *Model {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Model{
		session: s,
		logger:  logger,
		keys:    defaultKeyMap(),
		tick:    loop.DefaultPollTimeout,
	}
}

// Session returns the session the model drives.
func (m *Model) Session() *session.Session {
	return m.session
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.tickCmd()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		if msg.gen != m.tickGen || m.session.Status().Done() {
			return m, nil
		}
		return m, m.tickCmd()
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	status := m.session.Status()
	if status == session.Finished {
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Restart):
			m.session.Reset()
			m.logger.Info("session restarted")
			m.tickGen++
			return m, m.tickCmd()
		}
		return m, nil
	}
	for _, k := range KeysFromMsg(msg) {
		m.session.HandleKeypress(k)
	}
	if after := m.session.Status(); after != status {
		m.logger.Debug("status changed", "from", status.String(), "to", after.String())
	}
	if m.session.Status() == session.Exiting {
		return m, tea.Quit
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	snap := m.session.Snapshot()
	return Frame(snap, m.width, m.height, m.hint(snap.Status))
}

func (m *Model) hint(status session.Status) string {
	bindings := []key.Binding{m.keys.Quit}
	if status == session.Finished {
		bindings = []key.Binding{m.keys.Restart, m.keys.Quit}
	}
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, fmt.Sprintf("%s %s", h.Key, h.Desc))
	}
	return strings.Join(parts, " · ")
}

func (m *Model) tickCmd() tea.Cmd {
	gen := m.tickGen
	return tea.Tick(m.tick, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}
