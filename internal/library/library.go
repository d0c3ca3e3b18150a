package library

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
)

var (
	ErrLibraryNotFound = errors.New("library directory not found")
	ErrGameExists      = errors.New("game directory already exists")
)

// Library gives access to the games stored under one root directory
type Library struct {
	fs   afero.Fs
	root string
	log  *log.Logger
}

// New creates a library rooted at root
func New(fs afero.Fs, root string, logger *log.Logger) *Library {
	return &Library{
		fs:   fs,
		root: root,
		log:  logger,
	}
}

// Root returns the library directory
func (l *Library) Root() string {
	return l.root
}

// Fs returns the filesystem the library reads from
func (l *Library) Fs() afero.Fs {
	return l.fs
}

// SetDisplayName updates the display name of a media or disc image file
func (l *Library) SetDisplayName(path, name string) error {
	if _, err := l.fs.Stat(path); err != nil {
		return fmt.Errorf("media file %s: %w", path, err)
	}

	if err := SetDisplayName(l.fs, path, name); err != nil {
		l.log.Error("Cannot update display name", "path", path, "error", err)
		return err
	}

	l.log.Info("Display name updated", "file", filepath.Base(path), "name", name)
	return nil
}

// ScanEventKind tells what a scan event reports
type ScanEventKind int

const (
	EventProgress ScanEventKind = iota
	EventSkipped
	EventComplete
)

// ScanEvent reports scan progress. Current is 1-based.
type ScanEvent struct {
	Kind    ScanEventKind
	Current int
	Total   int
	Message string
}

// ScanSink receives scan events in order
type ScanSink func(ScanEvent)

// Scan loads every game directory directly under the library root.
// A directory without game.cfg is skipped; a game that fails to load is
// returned as a placeholder with Err set. The order is the directory
// listing order.
func (l *Library) Scan(sink ScanSink) ([]*Game, error) {
	if sink == nil {
		sink = func(ScanEvent) {}
	}

	info, err := l.fs.Stat(l.root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrLibraryNotFound, l.root)
	}

	entries, err := afero.ReadDir(l.fs, l.root)
	if err != nil {
		return nil, fmt.Errorf("failed to read library %s: %w", l.root, err)
	}

	var dirs []string
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		dirs = append(dirs, filepath.Join(l.root, entry.Name()))
	}

	games := []*Game{}
	total := len(dirs)

	if total == 0 {
		l.log.Info("No games found", "library", l.root)
		sink(ScanEvent{Kind: EventComplete, Message: "No games found"})
		return games, nil
	}

	l.log.Info("Scanning library", "library", l.root, "directories", total)

	for i, dir := range dirs {
		name := filepath.Base(dir)

		g, err := l.LoadGame(dir)
		switch {
		case errors.Is(err, ErrNoConfig):
			l.log.Debug("Skipping directory without config", "dir", dir)
			sink(ScanEvent{
				Kind:    EventSkipped,
				Current: i + 1,
				Total:   total,
				Message: fmt.Sprintf("Skipped %s (no %s)", name, ConfigFileName),
			})
			continue

		case err != nil:
			l.log.Error("Failed to load game", "dir", dir, "error", err)
			g = newPlaceholder(dir, err)
			sink(ScanEvent{
				Kind:    EventProgress,
				Current: i + 1,
				Total:   total,
				Message: fmt.Sprintf("Failed to load %s", name),
			})

		default:
			sink(ScanEvent{
				Kind:    EventProgress,
				Current: i + 1,
				Total:   total,
				Message: fmt.Sprintf("Loaded %s", g.Name),
			})
		}

		games = append(games, g)
	}

	l.log.Info("Library scan complete", "games", len(games), "directories", total)
	sink(ScanEvent{
		Kind:    EventComplete,
		Current: total,
		Total:   total,
		Message: fmt.Sprintf("Found %d game(s)", len(games)),
	})

	return games, nil
}

// Delete removes a game directory from the library
func (l *Library) Delete(g *Game) error {
	rel, err := filepath.Rel(l.root, g.Dir)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return fmt.Errorf("refusing to delete %s: not inside library %s", g.Dir, l.root)
	}

	if err := l.fs.RemoveAll(g.Dir); err != nil {
		if os.IsPermission(err) {
			l.log.Error("Permission denied removing game directory", "path", g.Dir)
			return fmt.Errorf("permission denied: %w", err)
		}
		return fmt.Errorf("failed to remove game directory: %w", err)
	}

	l.log.Info("Game removed", "name", g.Name, "dir", g.Dir)
	return nil
}
