package settings

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"gopkg.in/ini.v1"
)

func init() {
	// dosctl.cfg is written as bare key=value lines
	ini.PrettyFormat = false
	ini.PrettySection = false
}

const (
	appName  = "dosctl"
	fileName = "dosctl.cfg"

	keyDOSBox  = "dosbox-path"
	keyLibrary = "library"
)

var (
	ErrInvalidDOSBoxPath  = errors.New("invalid DOSBox path")
	ErrInvalidLibraryPath = errors.New("invalid library path")
)

// Settings holds the application configuration
type Settings struct {
	DOSBoxPath  string
	LibraryPath string
}

// DefaultPath returns the location of dosctl.cfg
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, appName, fileName)
}

// TemplateDir returns the directory holding user overrides for new game templates
func TemplateDir() string {
	return filepath.Join(xdg.DataHome, appName, "templates")
}

// ExpandPath cleans a user-entered path, stripping quotes and expanding a leading ~
func ExpandPath(path string) string {
	path = strings.TrimSpace(path)
	path = strings.Trim(path, `"'`)
	if path == "" {
		return ""
	}
	if path == "~" {
		return xdg.Home
	}
	if strings.HasPrefix(path, "~/") {
		path = filepath.Join(xdg.Home, path[2:])
	}
	return filepath.Clean(path)
}

// Store reads and writes the settings file
type Store struct {
	fs   afero.Fs
	path string
	log  *log.Logger
}

// NewStore creates a store for the settings file at path
func NewStore(fs afero.Fs, path string, logger *log.Logger) *Store {
	return &Store{
		fs:   fs,
		path: path,
		log:  logger,
	}
}

// Path returns the settings file location
func (s *Store) Path() string {
	return s.path
}

// Load reads the settings file. A missing file yields empty settings.
func (s *Store) Load() (Settings, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.log.Debug("No settings file", "path", s.path)
			return Settings{}, nil
		}
		return Settings{}, fmt.Errorf("failed to read settings: %w", err)
	}

	cfg, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:     true,
		SkipUnrecognizableLines: true,
	}, data)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to parse settings %s: %w", s.path, err)
	}

	sec := cfg.Section(ini.DefaultSection)
	st := Settings{
		DOSBoxPath:  strings.TrimSpace(sec.Key(keyDOSBox).String()),
		LibraryPath: strings.TrimSpace(sec.Key(keyLibrary).String()),
	}

	s.log.Debug("Settings loaded", "path", s.path, "dosbox", st.DOSBoxPath, "library", st.LibraryPath)
	return st, nil
}

// Save writes the settings file, creating its directory when needed
func (s *Store) Save(st Settings) error {
	cfg := ini.Empty()
	sec := cfg.Section(ini.DefaultSection)
	if _, err := sec.NewKey(keyDOSBox, st.DOSBoxPath); err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if _, err := sec.NewKey(keyLibrary, st.LibraryPath); err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	var buf bytes.Buffer
	if _, err := cfg.WriteTo(&buf); err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	if err := afero.WriteFile(s.fs, s.path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}

	s.log.Info("Settings saved", "path", s.path)
	return nil
}

// ValidateDOSBox checks that path names an existing regular file
func ValidateDOSBox(fs afero.Fs, path string) error {
	if path == "" {
		return fmt.Errorf("%w: not set", ErrInvalidDOSBoxPath)
	}
	info, err := fs.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %s does not exist", ErrInvalidDOSBoxPath, path)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s is not a file", ErrInvalidDOSBoxPath, path)
	}
	return nil
}

// ValidateLibrary checks that path names an existing directory
func ValidateLibrary(fs afero.Fs, path string) error {
	if path == "" {
		return fmt.Errorf("%w: not set", ErrInvalidLibraryPath)
	}
	ok, err := afero.DirExists(fs, path)
	if err != nil || !ok {
		return fmt.Errorf("%w: %s is not a directory", ErrInvalidLibraryPath, path)
	}
	return nil
}

// Validate reports every invalid entry
func (st Settings) Validate(fs afero.Fs) error {
	return errors.Join(
		ValidateDOSBox(fs, st.DOSBoxPath),
		ValidateLibrary(fs, st.LibraryPath),
	)
}
