package maptui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	tea "github.com/charmbracelet/bubbletea"
)

var (
	fileNameStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	summaryStyle  = lipgloss.NewStyle().Margin(1, 2)
	errorStyle    = lipgloss.NewStyle().Margin(1, 2)
	barStyle      = lipgloss.NewStyle().Margin(1, 2)
	spinStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))
	okMark        = lipgloss.NewStyle().Foreground(lipgloss.Color("40")).SetString("✓")
	failMark      = lipgloss.NewStyle().Foreground(lipgloss.Color("160")).SetString("✗")
)

// logLineMsg carries one log line to print above the model's view.
type logLineMsg string

// renderPause gives the renderer time to flush pending prints.
func renderPause() tea.Cmd {
	return tea.Tick(750*time.Millisecond, func(_ time.Time) tea.Msg {
		return nil
	})
}

func delayedQuit() tea.Cmd {
	return tea.Sequence(renderPause(), tea.Quit)
}

func isExitKey(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "ctrl+c", "esc", "q":
		return true
	default:
		return false
	}
}

func printLog(msg logLineMsg, width int) tea.Cmd {
	line := strings.Trim(string(msg), "\r\n")

	return tea.Println(lipgloss.NewStyle().Width(max(0, width-2)).Render(line))
}

func renderError(err error, width int) string {
	msg := strings.Trim(err.Error(), "\r\n")

	return errorStyle.Width(max(0, width-2)).Render(msg + "\n")
}
