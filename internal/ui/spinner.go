package ui

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SpinnerModel shows a spinner while a background task runs. Pressing q
// or ctrl+c calls the cancel hook and keeps spinning until the task
// reports back.
type SpinnerModel struct {
	spinner   spinner.Model
	message   string
	cancel    func()
	canceling bool
	quitting  bool
	err       error
}

// NewSpinner creates a new spinner with a message
func NewSpinner(message string, cancel func()) SpinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = lipgloss.NewStyle().Foreground(Primary())
	return SpinnerModel{
		spinner: s,
		message: message,
		cancel:  cancel,
	}
}

func (m SpinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m SpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			if m.cancel != nil && !m.canceling {
				m.canceling = true
				m.cancel()
				return m, nil
			}
			m.quitting = true
			return m, tea.Quit
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case errMsg:
		m.err = msg.err
		m.quitting = true
		return m, tea.Quit
	case doneMsg:
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m SpinnerModel) View() string {
	if m.quitting {
		switch {
		case m.err != nil:
			return ErrorStyle().Render("✗ "+m.message+" failed: "+m.err.Error()) + "\n"
		case m.canceling:
			return WarningStyle().Render("■ "+m.message+" stopped") + "\n"
		}
		return SuccessStyle().Render("✓ "+m.message) + "\n"
	}
	if m.canceling {
		return m.spinner.View() + " " + MutedStyle().Render("stopping...") + "\n"
	}
	return m.spinner.View() + " " + m.message + " " + HintStyle().Render("(q to stop)") + "\n"
}

type errMsg struct{ err error }
type doneMsg struct{}

// RunWithSpinner starts a task and shows a spinner until it calls done.
// cancel, if set, is called when the user asks to stop.
func RunWithSpinner(message string, start func(done func(error)), cancel func()) error {
	errChan := make(chan error, 1)
	finish := func(err error) {
		select {
		case errChan <- err:
		default:
		}
	}

	if !IsInteractiveTerminal() {
		fmt.Fprintf(os.Stderr, "… %s\n", message)
		begin := time.Now()
		start(finish)
		err := <-errChan
		elapsed := time.Since(begin).Round(time.Millisecond)
		if err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s failed (%s): %v\n", message, elapsed, err)
		} else {
			fmt.Fprintf(os.Stderr, "✓ %s (%s)\n", message, elapsed)
		}
		return err
	}

	p := tea.NewProgram(NewSpinner(message, cancel))
	start(func(err error) {
		finish(err)
		if err != nil {
			p.Send(errMsg{err})
		} else {
			p.Send(doneMsg{})
		}
	})

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("spinner error: %w", err)
	}
	select {
	case err := <-errChan:
		return err
	default:
		return nil
	}
}
