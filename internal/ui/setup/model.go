package setup

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bnema/dosctl/internal/library"
	uiprogress "github.com/bnema/dosctl/internal/ui/progress"
)

const (
	stepSkeleton = iota
	stepCopy
	stepConfig
)

// Model is the bubbletea model showing a game setup
type Model struct {
	tracker uiprogress.Tracker
	library *library.Library
	request library.SetupRequest

	events chan tea.Msg

	done bool
	err  error
	game *library.Game
}

// NewModel creates a setup progress model for req
func NewModel(lib *library.Library, req library.SetupRequest) Model {
	title := req.Name
	if title == "" {
		title = req.DirName
	}

	tracker := uiprogress.NewTracker("Setting up "+title,
		"Creating game directory",
		"Copying files",
		"Writing game config",
	)
	tracker.Start(stepSkeleton)

	return Model{
		tracker: tracker,
		library: lib,
		request: req,
		events:  make(chan tea.Msg, 16),
	}
}

// Messages
type (
	stageMsg   struct{ stage library.SetupStage }
	doneMsg    struct{ game *library.Game }
	errorMsg   struct{ err error }
	chanSender chan tea.Msg
)

func (c chanSender) Send(msg tea.Msg) { c <- msg }

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.tracker.Tick(),
		tea.WindowSize(),
		m.run(),
		m.waitForEvent(),
	)
}

// run performs the setup, forwarding its progress through the events channel
func (m Model) run() tea.Cmd {
	return func() tea.Msg {
		report := uiprogress.SetupReporter(chanSender(m.events))
		stage := library.StageSkeleton

		g, err := m.library.Setup(m.request, func(p library.SetupProgress) {
			if p.Stage != stage {
				stage = p.Stage
				m.events <- stageMsg{stage: stage}
			}
			report(p)
		})
		if err != nil {
			return errorMsg{err: err}
		}
		return doneMsg{game: g}
	}
}

func (m Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		return <-m.events
	}
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if sub, ok := msg.(uiprogress.SubProgressMsg); ok {
		cmd, _ := m.tracker.Update(sub)
		return m, tea.Batch(cmd, m.waitForEvent())
	}
	if cmd, ok := m.tracker.Update(msg); ok {
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case stageMsg:
		switch msg.stage {
		case library.StageCopy:
			m.tracker.Start(stepCopy)
		case library.StageConfig:
			m.tracker.Start(stepConfig)
		}
		return m, m.waitForEvent()

	case doneMsg:
		m.tracker.Start(len(m.tracker.Steps()))
		m.game = msg.game
		m.done = true
		return m, tea.Tick(time.Millisecond*300, func(t time.Time) tea.Msg {
			return tea.Quit()
		})

	case errorMsg:
		m.tracker.Fail(msg.err)
		m.done = true
		m.err = msg.err
		return m, tea.Tick(time.Millisecond*500, func(t time.Time) tea.Msg {
			return tea.Quit()
		})
	}

	return m, nil
}

// View renders the model
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.tracker.View())

	if m.done {
		b.WriteString("\n")
		if m.err != nil {
			b.WriteString(uiprogress.FormatError(m.err.Error()))
		} else {
			b.WriteString(uiprogress.FormatSuccess(fmt.Sprintf("%s is ready. Run: dosctl launch %q", m.game.Name, m.game.Name)))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// GetError returns any error that occurred
func (m Model) GetError() error {
	return m.err
}

// Game returns the game once set up
func (m Model) Game() *library.Game {
	return m.game
}
