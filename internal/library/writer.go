package library

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/afero"
)

// ErrInvalidGameData is returned when a value cannot be stored on one line
var ErrInvalidGameData = errors.New("invalid game data")

// RewriteConfig returns lines with the recognized properties and sections
// replaced by data. Comments, blank lines, unknown properties and unknown
// sections are kept as they are. lines is nil for a new file.
func RewriteConfig(lines []string, data GameData) []string {
	values := propertyValues(data)
	sections := map[parseMode][]string{
		modeISOs:          nonBlank(data.ISOs),
		modeCommands:      nonBlank(data.Commands),
		modeSetupCommands: nonBlank(data.SetupCommands),
	}

	var propWritten [propCount]bool
	sectionWritten := make(map[parseMode]bool)
	out := make([]string, 0, len(lines)+8)

	// skipping is true while inside a recognized section whose old content
	// is being replaced. Blank lines there are held back so the spacing
	// before the next header survives.
	skipping := false
	pendingBlanks := 0
	leaveSection := func() {
		for ; pendingBlanks > 0; pendingBlanks-- {
			out = append(out, "")
		}
		skipping = false
	}

	for _, raw := range lines {
		line := strings.TrimSpace(raw)

		if isHeader(line) {
			if skipping {
				leaveSection()
			}
			mode, ok := matchSection(line)
			if !ok {
				out = append(out, raw)
				continue
			}
			if !sectionWritten[mode] {
				out = append(out, line)
				out = append(out, sections[mode]...)
				sectionWritten[mode] = true
			}
			skipping = true
			continue
		}

		if p, _, ok := matchProperty(line); ok {
			if skipping {
				leaveSection()
			}
			if !propWritten[p] {
				propWritten[p] = true
				if values[p] != "" {
					out = append(out, propertyPrefixes[p]+values[p])
				}
			}
			continue
		}

		if skipping {
			if line == "" {
				pendingBlanks++
			} else {
				pendingBlanks = 0
			}
			continue
		}

		out = append(out, raw)
	}

	for p := property(0); p < propCount; p++ {
		if !propWritten[p] && values[p] != "" {
			out = append(out, propertyPrefixes[p]+values[p])
		}
	}

	for _, s := range sectionHeaders {
		content := sections[s.mode]
		if sectionWritten[s.mode] || len(content) == 0 {
			continue
		}
		if len(out) > 0 && strings.TrimSpace(out[len(out)-1]) != "" {
			out = append(out, "")
		}
		out = append(out, s.header)
		out = append(out, content...)
	}

	return out
}

func propertyValues(data GameData) [propCount]string {
	var v [propCount]string
	v[propName] = strings.TrimSpace(data.Name)
	if data.Year != 0 {
		v[propYear] = strconv.Itoa(data.Year)
	}
	v[propDeveloper] = strings.TrimSpace(data.Developer)
	v[propPublisher] = strings.TrimSpace(data.Publisher)
	v[propRating] = data.Rating.Code()
	return v
}

// nonBlank trims entries and drops the empty ones
func nonBlank(entries []string) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if e = strings.TrimSpace(e); e != "" {
			out = append(out, e)
		}
	}
	return out
}

// Validate checks that every value fits on a single config line
func (d GameData) Validate() error {
	single := []string{d.Name, d.Developer, d.Publisher}
	single = append(single, d.ISOs...)
	single = append(single, d.Commands...)
	single = append(single, d.SetupCommands...)
	for _, s := range single {
		if strings.ContainsAny(s, "\r\n") {
			return fmt.Errorf("%w: %q spans several lines", ErrInvalidGameData, s)
		}
	}

	var entries []string
	entries = append(entries, d.ISOs...)
	entries = append(entries, d.Commands...)
	entries = append(entries, d.SetupCommands...)
	for _, e := range entries {
		line := strings.TrimSpace(e)
		if isComment(line) || isHeader(line) {
			return fmt.Errorf("%w: %q would be read as a comment or section header", ErrInvalidGameData, e)
		}
		if _, _, ok := matchProperty(line); ok {
			return fmt.Errorf("%w: %q would be read as a property", ErrInvalidGameData, e)
		}
	}
	if d.Year != 0 && !ValidYear(d.Year) {
		return fmt.Errorf("%w: release year %d", ErrInvalidGameData, d.Year)
	}
	return nil
}

// readLines returns the lines of path, nil if it does not exist, and
// whether the file used CRLF line endings
func readLines(afs afero.Fs, path string) ([]string, bool, error) {
	data, err := afero.ReadFile(afs, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	if len(data) == 0 {
		return nil, false, nil
	}

	crlf := bytes.Contains(data, []byte("\r\n"))
	text := strings.TrimPrefix(string(data), utf8BOM)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n"), crlf, nil
}

// writeLines replaces path with lines through a temporary file
func writeLines(afs afero.Fs, path string, lines []string, crlf bool) error {
	sep := "\n"
	if crlf {
		sep = "\r\n"
	}
	content := strings.Join(lines, sep)
	if len(lines) > 0 {
		content += sep
	}

	tmpPath := path + ".tmp"
	if err := afero.WriteFile(afs, tmpPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmpPath, err)
	}
	if err := afs.Rename(tmpPath, path); err != nil {
		_ = afs.Remove(tmpPath)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// SaveGameData rewrites the game's config with data and, once the file is
// in place, applies the same values to g
func (l *Library) SaveGameData(g *Game, data GameData) error {
	if err := data.Validate(); err != nil {
		return err
	}

	cfgPath := g.ConfigPath()
	lines, crlf, err := readLines(l.fs, cfgPath)
	if err != nil {
		l.log.Error("Cannot read game config", "path", cfgPath, "error", err)
		return fmt.Errorf("failed to read %s: %w", cfgPath, err)
	}

	if err := writeLines(l.fs, cfgPath, RewriteConfig(lines, data), crlf); err != nil {
		l.log.Error("Cannot write game config", "path", cfgPath, "error", err)
		return err
	}

	g.Name = strings.TrimSpace(data.Name)
	if g.Name == "" || strings.EqualFold(g.Name, DefaultGameName) {
		g.Name = g.DirName()
	}
	g.Year = data.Year
	g.Developer = strings.TrimSpace(data.Developer)
	g.Publisher = strings.TrimSpace(data.Publisher)
	g.Rating = data.Rating
	g.ISOFiles = nonBlank(data.ISOs)
	g.Commands = nonBlank(data.Commands)
	g.SetupCommands = nonBlank(data.SetupCommands)

	isos, err := l.scanISOs(g)
	if err != nil {
		l.log.Warn("Cannot list ISO images", "game", g.DirName(), "error", err)
	}
	g.ISOs = isos

	l.log.Info("Game data saved", "game", g.Name, "path", cfgPath)
	return nil
}

// removeIfExists deletes path, ignoring a missing file
func removeIfExists(afs afero.Fs, path string) error {
	if err := afs.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
