package progress

import (
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/dosctl/internal/ui/styles"
)

// State of one step
type State int

const (
	StatePending State = iota
	StateInProgress
	StateComplete
	StateError
)

// Step is one line of a Tracker
type Step struct {
	Name  string
	State State
	Err   error
}

type glyphs struct {
	pending, running, done, failed, warning string
}

var (
	asciiGlyphs = glyphs{pending: "o", running: "*", done: "+", failed: "x", warning: "!"}
	nerdGlyphs  = glyphs{pending: "\uf111", running: "\uf110", done: "\uf00c", failed: "\uf00d", warning: "\uf071"}
)

// currentGlyphs picks Nerd Font glyphs when DOSCTL_NERD_FONTS=1
func currentGlyphs() glyphs {
	if os.Getenv("DOSCTL_NERD_FONTS") == "1" {
		return nerdGlyphs
	}
	return asciiGlyphs
}

func icon(state State) string {
	g := currentGlyphs()
	switch state {
	case StateComplete:
		return lipgloss.NewStyle().Foreground(styles.Success).Render(g.done)
	case StateError:
		return lipgloss.NewStyle().Foreground(styles.Error).Render(g.failed)
	case StateInProgress:
		return styles.Spinner.Render(g.running)
	default:
		return styles.MutedText.Render(g.pending)
	}
}

func textStyle(state State) lipgloss.Style {
	switch state {
	case StateComplete:
		return styles.SuccessText
	case StateError:
		return styles.ErrorText
	case StateInProgress:
		return styles.NormalText.Bold(true)
	default:
		return styles.MutedText
	}
}

// Tracker draws a titled list of steps. The running step gets a spinner
// and, once SubProgressMsg arrives, a bar with a detail line.
type Tracker struct {
	title   string
	steps   []Step
	current int
	percent float64
	detail  string

	spinner spinner.Model
	bar     progress.Model
}

// NewTracker returns a tracker with every step pending
func NewTracker(title string, names ...string) Tracker {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Spinner

	steps := make([]Step, len(names))
	for i, name := range names {
		steps[i] = Step{Name: name}
	}

	bar := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(30),
		progress.WithoutPercentage(),
	)

	return Tracker{
		title:   title,
		steps:   steps,
		spinner: s,
		bar:     bar,
	}
}

// Tick starts the spinner
func (t Tracker) Tick() tea.Cmd {
	return t.spinner.Tick
}

// Start completes every step before i and runs step i. An index past the
// last step completes them all.
func (t *Tracker) Start(i int) {
	for ; t.current < i && t.current < len(t.steps); t.current++ {
		t.steps[t.current].State = StateComplete
	}
	t.current = i
	if i < len(t.steps) {
		t.steps[i].State = StateInProgress
	}
	t.percent = 0
	t.detail = ""
}

// Next completes the running step and starts the following one
func (t *Tracker) Next() {
	t.Start(t.current + 1)
}

// Fail marks the running step as failed
func (t *Tracker) Fail(err error) {
	if t.current < len(t.steps) {
		t.steps[t.current].State = StateError
		t.steps[t.current].Err = err
	}
}

// Finished reports whether every step completed
func (t Tracker) Finished() bool {
	return t.current >= len(t.steps)
}

// Steps returns the steps in order
func (t Tracker) Steps() []Step {
	return t.steps
}

// Update handles the animation, resize and sub-progress messages. Other
// messages are left to the caller.
func (t *Tracker) Update(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		t.bar.Width = min(msg.Width-10, 40)
		return nil, true

	case spinner.TickMsg:
		var cmd tea.Cmd
		t.spinner, cmd = t.spinner.Update(msg)
		return cmd, true

	case progress.FrameMsg:
		bar, cmd := t.bar.Update(msg)
		t.bar = bar.(progress.Model)
		return cmd, true

	case SubProgressMsg:
		t.percent = msg.Percent
		t.detail = msg.Detail
		return t.bar.SetPercent(msg.Percent / 100), true
	}
	return nil, false
}

// View renders the title and the steps
func (t Tracker) View() string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Foreground(styles.Text).Bold(true).Render(t.title))
	b.WriteString("\n\n")

	for _, step := range t.steps {
		mark := icon(step.State)
		if step.State == StateInProgress {
			mark = t.spinner.View()
		}
		b.WriteString("  " + mark + " " + textStyle(step.State).Render(step.Name) + "\n")

		if step.State != StateInProgress || t.percent <= 0 {
			continue
		}
		if t.detail != "" {
			b.WriteString("      " + styles.MutedText.Render(t.detail) + "\n")
		}
		b.WriteString("    " + t.bar.View() + "\n")
	}

	return b.String()
}
