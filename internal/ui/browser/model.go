package browser

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bnema/dosctl/internal/launcher"
	"github.com/bnema/dosctl/internal/library"
	"github.com/bnema/dosctl/internal/ui/styles"
)

// Launcher starts games; *launcher.Launcher satisfies it
type Launcher interface {
	Launch(g *library.Game, mode launcher.Mode) (*launcher.Command, error)
}

// Diagnostics exposes the collected log lines; *logger.Buffer satisfies it
type Diagnostics interface {
	Lines() []string
}

// View states
type viewState int

const (
	viewList viewState = iota
	viewInfo
	viewLog
)

// gameItem implements list.Item for bubbles/list
type gameItem struct {
	game *library.Game
}

func (i gameItem) Title() string       { return i.game.Name }
func (i gameItem) Description() string { return Summary(i.game) }

func (i gameItem) FilterValue() string {
	return i.game.Name + " " + i.game.DirName()
}

// KeyMap defines keyboard shortcuts
type KeyMap struct {
	Play    key.Binding
	Setup   key.Binding
	Install key.Binding
	Info    key.Binding
	Rescan  key.Binding
	Log     key.Binding
	Quit    key.Binding
	Back    key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Play: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "play"),
		),
		Setup: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "setup"),
		),
		Install: key.NewBinding(
			key.WithKeys("I"),
			key.WithHelp("I", "install"),
		),
		Info: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "info"),
		),
		Rescan: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rescan"),
		),
		Log: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "log"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
	}
}

// Model is the library browser
type Model struct {
	library     *library.Library
	launcher    Launcher
	diagnostics Diagnostics

	list     list.Model
	viewport viewport.Model
	spinner  spinner.Model
	keys     KeyMap

	state         viewState
	width, height int

	scanning  bool
	statusMsg string
	errorMsg  string
}

// NewModel creates the browser
func NewModel(lib *library.Library, l Launcher, diagnostics Diagnostics) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(styles.Primary).
		BorderForeground(styles.Primary)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(styles.Muted).
		BorderForeground(styles.Primary)

	gl := list.New([]list.Item{}, delegate, 0, 0)
	gl.Title = "Games"
	gl.Styles.Title = styles.Title
	gl.SetShowStatusBar(true)
	gl.SetFilteringEnabled(true)
	gl.SetShowHelp(false)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Spinner

	return Model{
		library:     lib,
		launcher:    l,
		diagnostics: diagnostics,
		list:        gl,
		viewport:    viewport.New(80, 20),
		spinner:     s,
		keys:        DefaultKeyMap(),
		state:       viewList,
		scanning:    true,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.scan,
		m.spinner.Tick,
	)
}

// scan loads the library
func (m Model) scan() tea.Msg {
	games, err := m.library.Scan(nil)
	if err != nil {
		return errMsg{err}
	}
	return gamesLoadedMsg{games}
}

// Messages
type gamesLoadedMsg struct {
	games []*library.Game
}

type errMsg struct {
	err error
}

type launchedMsg struct {
	game *library.Game
	mode launcher.Mode
	cmd  *launcher.Command
	err  error
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		h, v := styles.App.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v-2)
		m.viewport.Width = msg.Width - h
		m.viewport.Height = msg.Height - v - 2
		return m, nil

	case tea.KeyMsg:
		// Filtering owns the keyboard
		if m.state == viewList && m.list.FilterState() == list.Filtering {
			break
		}

		if key.Matches(msg, m.keys.Quit) {
			if m.state == viewList {
				return m, tea.Quit
			}
			m.state = viewList
			return m, nil
		}

		switch m.state {
		case viewList:
			return m.updateList(msg)
		case viewInfo, viewLog:
			return m.updatePager(msg)
		}

	case gamesLoadedMsg:
		m.scanning = false
		items := make([]list.Item, len(msg.games))
		for i, g := range msg.games {
			items[i] = gameItem{game: g}
		}
		cmds = append(cmds, m.list.SetItems(items))
		m.statusMsg = fmt.Sprintf("%d game(s)", len(msg.games))
		m.errorMsg = ""
		return m, tea.Batch(cmds...)

	case errMsg:
		m.scanning = false
		m.errorMsg = msg.err.Error()
		return m, nil

	case launchedMsg:
		if msg.err != nil {
			m.errorMsg = msg.err.Error()
			m.statusMsg = ""
			return m, nil
		}
		m.errorMsg = ""
		m.statusMsg = fmt.Sprintf("Started %s (%s)", msg.game.Name, msg.mode)
		if n := len(msg.cmd.Warnings); n > 0 {
			m.statusMsg += fmt.Sprintf(", %d warning(s), press l", n)
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m Model) selected() *library.Game {
	if item, ok := m.list.SelectedItem().(gameItem); ok {
		return item.game
	}
	return nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Play):
		return m.launch(launcher.ModePlay)

	case key.Matches(msg, m.keys.Setup):
		return m.launch(launcher.ModeSetup)

	case key.Matches(msg, m.keys.Install):
		return m.launch(launcher.ModeInstall)

	case key.Matches(msg, m.keys.Info):
		if g := m.selected(); g != nil {
			m.state = viewInfo
			m.viewport.SetContent(RenderInfo(g))
			m.viewport.GotoTop()
		}
		return m, nil

	case key.Matches(msg, m.keys.Log):
		m.state = viewLog
		lines := m.diagnostics.Lines()
		if len(lines) == 0 {
			lines = []string{styles.MutedText.Render("Nothing logged yet")}
		}
		m.viewport.SetContent(strings.Join(lines, "\n"))
		m.viewport.GotoBottom()
		return m, nil

	case key.Matches(msg, m.keys.Rescan):
		if m.scanning {
			return m, nil
		}
		m.scanning = true
		m.statusMsg = ""
		m.errorMsg = ""
		return m, tea.Batch(m.scan, m.spinner.Tick)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updatePager(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Back) {
		m.state = viewList
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// launch starts the selected game. Placeholders for broken games are refused.
func (m Model) launch(mode launcher.Mode) (tea.Model, tea.Cmd) {
	g := m.selected()
	if g == nil || m.scanning {
		return m, nil
	}
	if g.Err != nil {
		m.errorMsg = fmt.Sprintf("%s cannot be launched: %v", g.Name, g.Err)
		return m, nil
	}

	m.statusMsg = fmt.Sprintf("Starting %s...", g.Name)
	m.errorMsg = ""
	return m, func() tea.Msg {
		cmd, err := m.launcher.Launch(g, mode)
		return launchedMsg{game: g, mode: mode, cmd: cmd, err: err}
	}
}

// View renders the UI
func (m Model) View() string {
	var content string

	switch m.state {
	case viewList:
		content = m.viewList()
	case viewInfo:
		content = m.viewPager("Game Info")
	case viewLog:
		content = m.viewPager("Diagnostics")
	}

	return styles.App.Render(content)
}

func (m Model) viewList() string {
	var s strings.Builder

	s.WriteString(m.list.View())

	if m.scanning {
		s.WriteString("\n" + m.spinner.View() + " " + styles.MutedText.Render("Scanning library..."))
	} else if m.errorMsg != "" {
		s.WriteString("\n" + styles.FormatError(m.errorMsg))
	} else if m.statusMsg != "" {
		s.WriteString("\n" + styles.MutedText.Render(m.statusMsg))
	}

	help := "\n" + styles.Help.Render("enter:play  s:setup  I:install  i:info  r:rescan  l:log  /:filter  q:quit")
	s.WriteString(help)

	return s.String()
}

func (m Model) viewPager(title string) string {
	var s strings.Builder

	s.WriteString(styles.Title.Render(title) + "\n\n")
	s.WriteString(m.viewport.View())
	s.WriteString("\n" + styles.Help.Render("↑/↓:scroll  esc:back  q:back"))

	return s.String()
}
