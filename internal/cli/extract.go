package cli

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guiyumin/vlink/internal/core/pipeline"
)

var (
	extractInfoStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	extractDoneStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	extractErrStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	extractHintStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("248"))
)

// extractState holds resolution state shared with the spinner
type extractState struct {
	mu     sync.RWMutex
	done   bool
	err    error
	result *pipeline.Result
}

func (s *extractState) setDone(result *pipeline.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.done = true
	s.result = result
}

func (s *extractState) setError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
	s.done = true
}

func (s *extractState) get() (bool, error, *pipeline.Result) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.done, s.err, s.result
}

type extractTickMsg time.Time

type extractModel struct {
	spinner spinner.Model
	url     string
	state   *extractState
	cancel  context.CancelFunc
}

func newExtractModel(url string, state *extractState, cancel context.CancelFunc) extractModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return extractModel{
		spinner: s,
		url:     url,
		state:   state,
		cancel:  cancel,
	}
}

func extractTickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return extractTickMsg(t)
	})
}

func (m extractModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, extractTickCmd())
}

func (m extractModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.cancel()
			return m, tea.Quit
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case extractTickMsg:
		done, _, _ := m.state.get()
		if done {
			return m, tea.Quit
		}
		return m, extractTickCmd()
	}

	return m, nil
}

func (m extractModel) View() string {
	done, err, result := m.state.get()

	if err != nil {
		return fmt.Sprintf("\n  %s Resolution failed: %v\n\n", extractErrStyle.Render("✗"), err)
	}

	if done && result != nil {
		return fmt.Sprintf("\n  %s Found %d links\n", extractDoneStyle.Render("✓"), result.Formats)
	}

	return fmt.Sprintf("\n  %s Resolving: %s\n  %s\n",
		m.spinner.View(),
		extractInfoStyle.Render(m.url),
		extractHintStyle.Render("links are decrypted one at a time"),
	)
}

// runResolveWithSpinner runs the pipeline with a spinner TUI
func runResolveWithSpinner(ctx context.Context, p *pipeline.Pipeline, url string) (*pipeline.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	state := &extractState{}

	go func() {
		result, err := p.Run(ctx, url)
		if err != nil {
			state.setError(err)
		} else {
			state.setDone(result)
		}
	}()

	model := newExtractModel(url, state, cancel)
	prog := tea.NewProgram(model)
	if _, err := prog.Run(); err != nil {
		return nil, err
	}

	done, extractErr, result := state.get()
	if extractErr != nil {
		return nil, reportedError{extractErr}
	}
	if !done {
		return nil, fmt.Errorf("resolution cancelled")
	}

	return result, nil
}
