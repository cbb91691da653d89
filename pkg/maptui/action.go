package maptui

import (
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/flahallen61-boop/dto-map-builder/pkg/mapcmd"
)

// ActionModel draws a spinner for one named workspace operation and quits
// when the operation reports completion.
type ActionModel struct {
	err     error
	kind    string
	verb    string
	spinner spinner.Model
	width   int
	height  int
	mu      sync.RWMutex
	working bool
	done    bool
}

func NewActionModel(kind, verb string) *ActionModel {
	s := spinner.New()
	s.Style = spinStyle

	return &ActionModel{
		spinner: s,
		kind:    kind,
		verb:    verb,
		mu:      sync.RWMutex{},
	}
}

func (m *ActionModel) Init() tea.Cmd {
	m.working = true

	return m.spinner.Tick
}

//nolint:ireturn // Third-party.
func (m *ActionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case tea.KeyMsg:
		if isExitKey(msg) {
			return m, tea.Quit
		}

	case logLineMsg:
		return m, printLog(msg, m.width)

	case mapcmd.EventSourceSet:
		m.working = false

		icon := okMark
		if msg.Err != nil {
			icon = failMark
		}

		return m, tea.Printf("%s %s", icon, msg.Location)

	case mapcmd.EventCalled:
		m.working = false

		icon := okMark
		if msg.Err != nil || msg.Fallback {
			icon = failMark
		}

		return m, tea.Printf("%s %s", icon, msg.Endpoint)

	case mapcmd.EventDone:
		m.working = false

		// Allow previously sent messages to be drawn.
		preQuitCmd := tea.Tick(time.Millisecond*100, func(_ time.Time) tea.Msg {
			m.mu.Lock()
			defer m.mu.Unlock()

			m.err = msg.Err
			m.done = true

			return nil
		})

		return m, tea.Sequence(preQuitCmd, delayedQuit())

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m *ActionModel) View() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.err != nil {
		return renderError(m.err, m.width)
	}

	if m.done {
		return summaryStyle.Render(capitalize(m.kind) + " complete.\n")
	}

	if m.working {
		spin := m.spinner.View() + " "
		cellsAvail := max(0, m.width-lipgloss.Width(spin))

		info := lipgloss.NewStyle().MaxWidth(cellsAvail).Render(capitalize(m.verb))

		cellsRemaining := max(0, m.width-lipgloss.Width(spin+info))
		gap := strings.Repeat(" ", cellsRemaining) + "\n"

		return spin + info + gap
	}

	return ""
}

func capitalize(s string) string {
	if s == "" {
		return s
	}

	return strings.ToUpper(s[:1]) + s[1:]
}
