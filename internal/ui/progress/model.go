package progress

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Messages a background task sends to Model
type (
	StartStepMsg    struct{}
	CompleteStepMsg struct{}
	FailStepMsg     struct{ Err error }

	// SubProgressMsg moves the bar of the running step
	SubProgressMsg struct {
		Percent float64
		Detail  string
	}
)

// Model runs a Tracker driven entirely by messages sent from outside,
// as the library scan does. It quits once every step completed or one
// failed.
type Model struct {
	tracker Tracker
	done    bool
	err     error
}

// NewModel returns a model for the given steps
func NewModel(title string, steps ...string) Model {
	return Model{tracker: NewTracker(title, steps...)}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.tracker.Tick(), tea.WindowSize())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if cmd, ok := m.tracker.Update(msg); ok {
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}

	case StartStepMsg:
		m.tracker.Start(m.tracker.current)

	case CompleteStepMsg:
		m.tracker.Next()
		if m.tracker.Finished() {
			m.done = true
			return m, tea.Quit
		}

	case FailStepMsg:
		m.tracker.Fail(msg.Err)
		m.err = msg.Err
		m.done = true
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) View() string {
	return m.tracker.View() + "\n"
}

// GetError returns the error of the failed step, if any
func (m Model) GetError() error {
	return m.err
}

// IsDone reports whether the model stopped on completion or failure
// rather than being interrupted
func (m Model) IsDone() bool {
	return m.done
}
