package library

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// ErrNoConfig is returned when a game directory has no game.cfg.
// It is not a failure: the directory simply isn't a game yet.
var ErrNoConfig = errors.New("no game config")

// utf8BOM is dropped from the start of files saved by some Windows editors
const utf8BOM = "\ufeff"

// parseMode says which list plain lines are appended to
type parseMode int

const (
	modeNone parseMode = iota
	modeISOs
	modeCommands
	modeSetupCommands
)

var sectionHeaders = []struct {
	header string
	mode   parseMode
}{
	{"[isos]", modeISOs},
	{"[commands]", modeCommands},
	{"[setup-commands]", modeSetupCommands},
}

// property identifies a recognized key=value line
type property int

const (
	propName property = iota
	propYear
	propDeveloper
	propPublisher
	propRating
	propCount
)

var propertyPrefixes = [propCount]string{
	propName:      "game.name=",
	propYear:      "game.release.year=",
	propDeveloper: "game.developer=",
	propPublisher: "game.publisher=",
	propRating:    "game.parental.rating=",
}

func isComment(line string) bool {
	return strings.HasPrefix(line, ";") || strings.HasPrefix(line, "#")
}

// isHeader reports whether a trimmed line opens a section, known or not
func isHeader(line string) bool {
	return strings.HasPrefix(line, "[")
}

// matchSection reports whether a trimmed line is a recognized section header
func matchSection(line string) (parseMode, bool) {
	for _, s := range sectionHeaders {
		if strings.EqualFold(line, s.header) {
			return s.mode, true
		}
	}
	return modeNone, false
}

// matchProperty reports whether a trimmed line is a recognized property
// and returns its trimmed value
func matchProperty(line string) (property, string, bool) {
	for p, prefix := range propertyPrefixes {
		if len(line) >= len(prefix) && strings.EqualFold(line[:len(prefix)], prefix) {
			return property(p), strings.TrimSpace(line[len(prefix):]), true
		}
	}
	return 0, "", false
}

// ParseConfig reads game.cfg content for the game in dir. Only the config
// itself is parsed here; media and disc listings are filled by LoadGame.
func ParseConfig(r io.Reader, dir string, logger *log.Logger) (*Game, error) {
	g := newGame(dir)
	mode := modeNone

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	first := true
	for scanner.Scan() {
		text := scanner.Text()
		if first {
			text = strings.TrimPrefix(text, utf8BOM)
			first = false
		}
		line := strings.TrimSpace(text)
		if line == "" || isComment(line) {
			continue
		}

		if isHeader(line) {
			// Unknown sections are skipped until the next header or property
			mode, _ = matchSection(line)
			continue
		}

		if p, value, ok := matchProperty(line); ok {
			applyProperty(g, p, value, logger)
			mode = modeNone
			continue
		}

		switch mode {
		case modeISOs:
			g.ISOFiles = append(g.ISOFiles, line)
		case modeCommands:
			g.Commands = append(g.Commands, line)
		case modeSetupCommands:
			g.SetupCommands = append(g.SetupCommands, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return g, nil
}

func applyProperty(g *Game, p property, value string, logger *log.Logger) {
	switch p {
	case propName:
		if value != "" && !strings.EqualFold(value, DefaultGameName) {
			g.Name = value
		}

	case propYear:
		if value == "" {
			return
		}
		year, err := strconv.Atoi(value)
		if err != nil {
			logger.Warn("Ignoring non-numeric release year", "game", g.DirName(), "value", value)
			return
		}
		if !ValidYear(year) {
			logger.Warn("Ignoring implausible release year", "game", g.DirName(), "year", year)
			return
		}
		g.Year = year

	case propDeveloper:
		g.Developer = value

	case propPublisher:
		g.Publisher = value

	case propRating:
		rating, ok := ParseRating(value)
		if !ok {
			logger.Warn("Ignoring unknown parental rating", "game", g.DirName(), "value", value)
			return
		}
		g.Rating = rating
	}
}

// ValidYear reports whether year is a plausible release year
func ValidYear(year int) bool {
	return year >= 1901 && year <= time.Now().Year()
}

// LoadGame parses dir/game.cfg and fills in the media and disc listings.
// It returns ErrNoConfig when the file does not exist. Read errors are
// fatal for the game; listing errors only leave that listing empty.
func (l *Library) LoadGame(dir string) (*Game, error) {
	cfgPath := filepath.Join(dir, ConfigFileName)

	f, err := l.fs.Open(cfgPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNoConfig
		}
		l.log.Error("Cannot open game config", "path", cfgPath, "error", err)
		return nil, fmt.Errorf("failed to open %s: %w", cfgPath, err)
	}
	defer func() { _ = f.Close() }()

	g, err := ParseConfig(f, dir, l.log)
	if err != nil {
		l.log.Error("Cannot read game config", "path", cfgPath, "error", err)
		return nil, fmt.Errorf("failed to read %s: %w", cfgPath, err)
	}

	l.enrich(g)

	l.log.Debug("Game loaded",
		"name", g.Name,
		"dir", g.Dir,
		"isos", len(g.ISOs),
		"commands", len(g.Commands),
	)
	return g, nil
}
