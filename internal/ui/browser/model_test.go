package browser

import (
	"errors"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/dosctl/internal/launcher"
	"github.com/bnema/dosctl/internal/library"
	"github.com/bnema/dosctl/internal/logger"
	"github.com/bnema/dosctl/internal/ui/styles"
)

type fakeLauncher struct {
	modes []launcher.Mode
	err   error
}

func (f *fakeLauncher) Launch(g *library.Game, mode launcher.Mode) (*launcher.Command, error) {
	f.modes = append(f.modes, mode)
	if f.err != nil {
		return nil, f.err
	}
	return &launcher.Command{Path: "dosbox", Warnings: []string{"disc missing"}}, nil
}

func newTestBrowser(t *testing.T) (Model, *fakeLauncher, *logger.Buffer) {
	t.Helper()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, filepath.Join("/games", "Doom", library.ConfigFileName),
		[]byte("game.name=Doom\ngame.release.year=1993\n[isos]\ndoom.iso\n"), 0644))

	buf := logger.NewBuffer()
	log := logger.New(buf, true)
	fl := &fakeLauncher{}

	m := NewModel(library.New(fs, "/games", log), fl, buf)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return next.(Model), fl, buf
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func loaded(t *testing.T, m Model) Model {
	t.Helper()
	msg := m.scan()
	require.IsType(t, gamesLoadedMsg{}, msg)
	m, _ = update(t, m, msg)
	return m
}

func TestScanPopulatesList(t *testing.T) {
	m, _, _ := newTestBrowser(t)
	assert.True(t, m.scanning)

	m = loaded(t, m)
	assert.False(t, m.scanning)
	require.Len(t, m.list.Items(), 1)
	assert.Equal(t, "Doom", m.selected().Name)
	assert.Contains(t, m.View(), "1 game(s)")
}

func TestLaunchModes(t *testing.T) {
	m, fl, _ := newTestBrowser(t)
	m = loaded(t, m)

	for _, k := range []string{"enter", "s", "I"} {
		var cmd tea.Cmd
		m, cmd = update(t, m, keyPress(k))
		require.NotNil(t, cmd, k)
		m, _ = update(t, m, cmd())
	}

	assert.Equal(t, []launcher.Mode{launcher.ModePlay, launcher.ModeSetup, launcher.ModeInstall}, fl.modes)
	assert.Contains(t, m.statusMsg, "Started Doom (install)")
	assert.Contains(t, m.statusMsg, "1 warning(s)")
}

func TestLaunchFailureShown(t *testing.T) {
	m, fl, _ := newTestBrowser(t)
	m = loaded(t, m)
	fl.err = launcher.ErrEmulatorNotFound

	m, cmd := update(t, m, keyPress("enter"))
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())

	assert.Equal(t, launcher.ErrEmulatorNotFound.Error(), m.errorMsg)
}

func TestBrokenGameNotLaunched(t *testing.T) {
	m, fl, _ := newTestBrowser(t)
	broken := &library.Game{Dir: "/games/Bad", Name: "Bad", Err: errors.New("permission denied")}
	m, _ = update(t, m, gamesLoadedMsg{games: []*library.Game{broken}})

	m, cmd := update(t, m, keyPress("enter"))
	assert.Nil(t, cmd)
	assert.Empty(t, fl.modes)
	assert.Contains(t, m.errorMsg, "permission denied")
}

func TestInfoAndLogViews(t *testing.T) {
	m, _, buf := newTestBrowser(t)
	m = loaded(t, m)

	m, _ = update(t, m, keyPress("i"))
	assert.Equal(t, viewInfo, m.state)
	assert.Contains(t, m.View(), "doom.iso (missing)")

	m, _ = update(t, m, keyPress("esc"))
	assert.Equal(t, viewList, m.state)

	m, _ = update(t, m, keyPress("l"))
	assert.Equal(t, viewLog, m.state)
	require.NotEmpty(t, buf.Lines())
	assert.Contains(t, m.viewport.View(), "doom.iso")

	m, _ = update(t, m, keyPress("q"))
	assert.Equal(t, viewList, m.state)
}

func TestRescanDisabledWhileScanning(t *testing.T) {
	m, _, _ := newTestBrowser(t)

	_, cmd := update(t, m, keyPress("r"))
	assert.Nil(t, cmd)

	m = loaded(t, m)
	m, cmd = update(t, m, keyPress("r"))
	assert.NotNil(t, cmd)
	assert.True(t, m.scanning)
}

func TestStatus(t *testing.T) {
	assert.Equal(t, styles.GameStatusBroken, Status(&library.Game{Err: errors.New("x")}))
	assert.Equal(t, styles.GameStatusDegraded, Status(&library.Game{ISOs: []library.DiscImage{{Exists: false}}}))
	assert.Equal(t, styles.GameStatusReady, Status(&library.Game{ISOs: []library.DiscImage{{Exists: true}}}))
}
