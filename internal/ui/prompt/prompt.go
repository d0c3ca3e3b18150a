package prompt

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bnema/dosctl/internal/ui/styles"
)

// ErrCancelled is returned when the user leaves the prompt without a value
var ErrCancelled = errors.New("prompt cancelled")

// Validator checks an entered value; a non-nil error keeps the prompt open
type Validator func(string) error

// Model asks for a single line of input
type Model struct {
	title    string
	hint     string
	input    textinput.Model
	validate Validator

	value     string
	errorMsg  string
	done      bool
	cancelled bool
}

// NewModel creates a prompt. initial prefills the input.
func NewModel(title, hint, initial string, validate Validator) Model {
	ti := textinput.New()
	ti.Placeholder = hint
	ti.CharLimit = 4096
	ti.Width = 60
	ti.SetValue(initial)
	ti.Focus()

	return Model{
		title:    title,
		hint:     hint,
		input:    ti,
		validate: validate,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.cancelled = true
			return m, tea.Quit

		case tea.KeyEnter:
			value := strings.TrimSpace(m.input.Value())
			if m.validate != nil {
				if err := m.validate(value); err != nil {
					m.errorMsg = err.Error()
					return m, nil
				}
			}
			m.value = value
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the prompt
func (m Model) View() string {
	if m.done || m.cancelled {
		return ""
	}

	var s strings.Builder

	s.WriteString(styles.Title.Render(m.title) + "\n\n")
	s.WriteString(m.input.View() + "\n")
	if m.errorMsg != "" {
		s.WriteString("\n" + styles.FormatError(m.errorMsg) + "\n")
	}
	s.WriteString("\n" + styles.Help.Render("enter:confirm  esc:cancel"))

	return styles.App.Render(s.String())
}

// Value returns the accepted value, or ErrCancelled
func (m Model) Value() (string, error) {
	if !m.done {
		return "", ErrCancelled
	}
	return m.value, nil
}

// Ask runs a prompt and returns the accepted value
func Ask(title, hint, initial string, validate Validator) (string, error) {
	final, err := tea.NewProgram(NewModel(title, hint, initial, validate)).Run()
	if err != nil {
		return "", err
	}
	return final.(Model).Value()
}
