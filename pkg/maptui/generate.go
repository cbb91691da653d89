package maptui

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/flahallen61-boop/dto-map-builder/pkg/mapcmd"
)

// GenerateModel draws per-artifact progress while generated files are
// written.
type GenerateModel struct {
	err            error
	startedFiles   []string
	completedFiles []string
	erroredFiles   []string
	spinner        spinner.Model
	progress       progress.Model
	totalFiles     int
	width          int
	height         int
	mu             sync.RWMutex
	done           bool
}

func NewGenerateModel() *GenerateModel {
	p := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(40),
		progress.WithoutPercentage(),
	)

	s := spinner.New()
	s.Style = spinStyle

	return &GenerateModel{
		startedFiles:   []string{},
		completedFiles: []string{},
		erroredFiles:   []string{},
		spinner:        s,
		progress:       p,
		mu:             sync.RWMutex{},
	}
}

func (m *GenerateModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.progress.SetPercent(0))
}

//nolint:ireturn // Third-party.
func (m *GenerateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case tea.KeyMsg:
		if isExitKey(msg) {
			return m, tea.Quit
		}

	case logLineMsg:
		return m, printLog(msg, m.width)

	case mapcmd.EventSetArtifactTotal:
		m.mu.Lock()
		defer m.mu.Unlock()

		m.totalFiles = int(msg)

	case mapcmd.EventWritingArtifact:
		m.mu.Lock()
		defer m.mu.Unlock()

		m.startedFiles = append(m.startedFiles, string(msg))

	case mapcmd.EventWroteArtifact:
		m.mu.Lock()
		defer m.mu.Unlock()

		icon := okMark
		if msg.Err != nil {
			m.erroredFiles = append(m.erroredFiles, msg.Name)
			icon = failMark
		}

		m.completedFiles = append(m.completedFiles, msg.Name)
		completedCount := len(m.completedFiles)
		progressCmd := m.progress.SetPercent(float64(completedCount) / float64(m.totalFiles))

		return m, tea.Batch(
			progressCmd,
			tea.Printf("%s %s", icon, msg.Name),
		)

	case mapcmd.EventDone:
		m.mu.Lock()
		defer m.mu.Unlock()

		m.err = msg.Err
		m.done = true

		return m, delayedQuit()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case progress.FrameMsg:
		newModel, cmd := m.progress.Update(msg)
		if newModel, ok := newModel.(progress.Model); ok {
			m.progress = newModel
		}

		return m, cmd
	}

	return m, nil
}

func (m *GenerateModel) View() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.err != nil {
		return renderError(m.err, m.width)
	}

	completedCount := len(m.completedFiles)

	if m.done {
		return summaryStyle.Render(fmt.Sprintf("Done! Wrote %d files.\n", completedCount))
	}

	w := lipgloss.Width(strconv.Itoa(m.totalFiles))
	fileCount := fmt.Sprintf(" %*d/%*d", w, completedCount, w, m.totalFiles)

	prog := m.progress.View()
	progRendered := barStyle.Render(prog + fileCount)
	progCellsRemaining := max(0, m.width-lipgloss.Width(progRendered))
	gap := strings.Repeat(" ", progCellsRemaining)
	progOut := progRendered + gap + "\n"

	inProgressFiles := differenceStringSlices(m.startedFiles, m.completedFiles)

	spinners := []string{}
	for _, file := range inProgressFiles {
		spin := m.spinner.View() + " "
		cellsAvail := max(0, m.width-lipgloss.Width(spin))

		fileName := fileNameStyle.Render(file)
		info := lipgloss.NewStyle().MaxWidth(cellsAvail).Render("Writing " + fileName)

		cellsRemaining := max(0, m.width-lipgloss.Width(spin+info))
		gap := strings.Repeat(" ", cellsRemaining)

		spinners = append(spinners, spin+info+gap)
	}

	return strings.Join(spinners, "\n") + "\n" + progOut
}

func differenceStringSlices(a, b []string) []string {
	difference := []string{}

	for _, x := range a {
		if !slices.Contains(b, x) {
			difference = append(difference, x)
		}
	}

	return difference
}
