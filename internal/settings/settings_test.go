package settings

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/dosctl/internal/logger"
)

const cfgPath = "/home/user/.config/dosctl/dosctl.cfg"

func newTestStore(t *testing.T) (*Store, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	return NewStore(fs, cfgPath, logger.Discard()), fs
}

func TestLoadMissingFile(t *testing.T) {
	s, _ := newTestStore(t)

	st, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, Settings{}, st)
}

func TestSaveWritesBareLines(t *testing.T) {
	s, fs := newTestStore(t)

	require.NoError(t, s.Save(Settings{DOSBoxPath: "/usr/bin/dosbox", LibraryPath: "/games"}))

	data, err := afero.ReadFile(fs, cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "dosbox-path=/usr/bin/dosbox\nlibrary=/games", strings.TrimSpace(string(data)))
}

func TestLoadSaveRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)
	want := Settings{DOSBoxPath: "/opt/dosbox x/dosbox", LibraryPath: "/mnt/dos games"}

	require.NoError(t, s.Save(want))
	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadIgnoresUnknownKeys(t *testing.T) {
	s, fs := newTestStore(t)
	require.NoError(t, fs.MkdirAll(filepath.Dir(cfgPath), 0755))
	require.NoError(t, afero.WriteFile(fs, cfgPath,
		[]byte("; written by hand\nlibrary=/games\ntheme=dark\ndosbox-path=/usr/bin/dosbox-staging\n"), 0644))

	st, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "/usr/bin/dosbox-staging", st.DOSBoxPath)
	assert.Equal(t, "/games", st.LibraryPath)
}

func TestValidate(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/usr/bin/dosbox", nil, 0755))
	require.NoError(t, fs.MkdirAll("/games", 0755))

	assert.NoError(t, Settings{DOSBoxPath: "/usr/bin/dosbox", LibraryPath: "/games"}.Validate(fs))

	err := Settings{DOSBoxPath: "/usr/bin", LibraryPath: "/games"}.Validate(fs)
	require.ErrorIs(t, err, ErrInvalidDOSBoxPath)
	assert.NotErrorIs(t, err, ErrInvalidLibraryPath)

	err = Settings{DOSBoxPath: "/usr/bin/dosbox", LibraryPath: "/usr/bin/dosbox"}.Validate(fs)
	require.ErrorIs(t, err, ErrInvalidLibraryPath)
	assert.NotErrorIs(t, err, ErrInvalidDOSBoxPath)

	err = Settings{}.Validate(fs)
	assert.ErrorIs(t, err, ErrInvalidDOSBoxPath)
	assert.ErrorIs(t, err, ErrInvalidLibraryPath)
}

func TestExpandPath(t *testing.T) {
	assert.Equal(t, "", ExpandPath("  "))
	assert.Equal(t, "/games", ExpandPath(` "/games/" `))
	assert.Equal(t, xdg.Home, ExpandPath("~"))
	assert.Equal(t, filepath.Join(xdg.Home, "dos"), ExpandPath("~/dos"))
}
