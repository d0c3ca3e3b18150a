package library

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/dosctl/internal/logger"
)

const testRoot = "/games"

// newTestLibrary returns a library on an in-memory filesystem whose log
// output is collected in the returned buffer
func newTestLibrary(t *testing.T) (*Library, afero.Fs, *logger.Buffer) {
	t.Helper()

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(testRoot, 0755))

	buf := logger.NewBuffer()
	return New(fs, testRoot, logger.New(buf, true)), fs, buf
}

func writeFile(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0644))
}

type collector struct {
	events []ScanEvent
}

func (c *collector) sink(e ScanEvent) {
	c.events = append(c.events, e)
}

func (c *collector) kinds() []ScanEventKind {
	var kinds []ScanEventKind
	for _, e := range c.events {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}

// failingOpenFs refuses to open one path
type failingOpenFs struct {
	afero.Fs
	path string
}

func (f failingOpenFs) Open(name string) (afero.File, error) {
	if name == f.path {
		return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrPermission}
	}
	return f.Fs.Open(name)
}

func TestScanMissingRoot(t *testing.T) {
	fs := afero.NewMemMapFs()
	lib := New(fs, "/nowhere", logger.Discard())

	games, err := lib.Scan(nil)
	require.ErrorIs(t, err, ErrLibraryNotFound)
	assert.Nil(t, games)
}

func TestScanEmptyLibrary(t *testing.T) {
	lib, fs, _ := newTestLibrary(t)
	writeFile(t, fs, filepath.Join(testRoot, "readme.txt"), "not a game")

	var c collector
	games, err := lib.Scan(c.sink)
	require.NoError(t, err)

	assert.NotNil(t, games)
	assert.Empty(t, games)
	require.Len(t, c.events, 1)
	assert.Equal(t, EventComplete, c.events[0].Kind)
	assert.Equal(t, "No games found", c.events[0].Message)
}

func TestScanSkipsDirectoryWithoutConfig(t *testing.T) {
	lib, fs, _ := newTestLibrary(t)
	require.NoError(t, fs.MkdirAll(filepath.Join(testRoot, "Downloads"), 0755))

	var c collector
	games, err := lib.Scan(c.sink)
	require.NoError(t, err)

	assert.Empty(t, games)
	assert.Equal(t, []ScanEventKind{EventSkipped, EventComplete}, c.kinds())
	assert.Equal(t, 1, c.events[0].Current)
	assert.Equal(t, 1, c.events[0].Total)
}

func TestScanKeepsBrokenGameAsPlaceholder(t *testing.T) {
	mem := afero.NewMemMapFs()
	broken := filepath.Join(testRoot, "Broken", ConfigFileName)
	writeFile(t, mem, filepath.Join(testRoot, "Alpha", ConfigFileName), "game.name=Alpha\n")
	writeFile(t, mem, broken, "game.name=Broken\n")
	writeFile(t, mem, filepath.Join(testRoot, "Charlie", ConfigFileName), "game.name=Charlie\n")
	require.NoError(t, mem.MkdirAll(filepath.Join(testRoot, ".hidden"), 0755))

	lib := New(failingOpenFs{Fs: mem, path: broken}, testRoot, logger.Discard())

	var c collector
	games, err := lib.Scan(c.sink)
	require.NoError(t, err)

	require.Len(t, games, 3)
	assert.Equal(t, "Alpha", games[0].Name)
	assert.NoError(t, games[0].Err)

	assert.Equal(t, "Broken", games[1].Name)
	assert.ErrorIs(t, games[1].Err, os.ErrPermission)

	assert.Equal(t, "Charlie", games[2].Name)

	assert.Equal(t, []ScanEventKind{EventProgress, EventProgress, EventProgress, EventComplete}, c.kinds())
	last := c.events[len(c.events)-1]
	assert.Equal(t, 3, last.Current)
	assert.Equal(t, 3, last.Total)
}

func TestDeleteRefusesOutsideLibrary(t *testing.T) {
	lib, fs, _ := newTestLibrary(t)
	require.NoError(t, fs.MkdirAll("/other/Game", 0755))

	err := lib.Delete(newGame("/other/Game"))
	require.Error(t, err)

	ok, _ := afero.DirExists(fs, "/other/Game")
	assert.True(t, ok)

	require.Error(t, lib.Delete(newGame(testRoot)))
}

func TestDeleteRemovesGame(t *testing.T) {
	lib, fs, _ := newTestLibrary(t)
	dir := filepath.Join(testRoot, "Doom")
	writeFile(t, fs, filepath.Join(dir, ConfigFileName), "game.name=Doom\n")

	require.NoError(t, lib.Delete(newGame(dir)))

	ok, _ := afero.DirExists(fs, dir)
	assert.False(t, ok)
}

func TestLibrarySetDisplayNameRequiresFile(t *testing.T) {
	lib, _, _ := newTestLibrary(t)

	err := lib.SetDisplayName(filepath.Join(testRoot, "Doom", CapturesDirName, "missing.png"), "Shot")
	require.ErrorIs(t, err, os.ErrNotExist)
}
