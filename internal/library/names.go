package library

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"golang.org/x/text/cases"
)

const (
	// DisplayNamesFile maps media filenames to display names in each media directory
	DisplayNamesFile = "file-info.txt"
	// LegacyDiscNamesFile is the older name mapping found next to disc images
	LegacyDiscNamesFile = "disc-info.txt"
)

// ErrInvalidDisplayName is returned for names that cannot be stored in a sidecar line
var ErrInvalidDisplayName = errors.New("invalid display name")

var folder = cases.Fold()

// foldKey normalizes a filename for case-insensitive lookups
func foldKey(name string) string {
	return folder.String(name)
}

// DisplayNames maps filenames to user-supplied display names, ignoring case
type DisplayNames map[string]string

// Lookup returns the display name for filename, or filename itself
func (d DisplayNames) Lookup(filename string) string {
	if name, ok := d[foldKey(filename)]; ok {
		return name
	}
	return filename
}

// parseNameLine splits a "filename,display name" line. Anything other than
// exactly two non-empty parts is rejected.
func parseNameLine(line string) (string, string, bool) {
	line = strings.TrimSpace(line)
	if line == "" || isComment(line) {
		return "", "", false
	}
	parts := strings.Split(line, ",")
	if len(parts) != 2 {
		return "", "", false
	}
	file := strings.TrimSpace(parts[0])
	name := strings.TrimSpace(parts[1])
	if file == "" || name == "" {
		return "", "", false
	}
	return file, name, true
}

// readNameFile parses one sidecar file. A missing file is an empty mapping.
func readNameFile(afs afero.Fs, path string) (DisplayNames, error) {
	names := DisplayNames{}

	lines, _, err := readLines(afs, path)
	if err != nil {
		return names, err
	}

	for _, line := range lines {
		file, name, ok := parseNameLine(line)
		if !ok {
			continue
		}
		names[foldKey(file)] = name
	}
	return names, nil
}

// ReadDisplayNames returns the display names declared in dir/file-info.txt
func ReadDisplayNames(afs afero.Fs, dir string) (DisplayNames, error) {
	return readNameFile(afs, filepath.Join(dir, DisplayNamesFile))
}

// readDiscNames merges the legacy disc-info.txt under file-info.txt
func readDiscNames(afs afero.Fs, dir string) (DisplayNames, error) {
	names, err := ReadDisplayNames(afs, dir)
	if err != nil {
		return names, err
	}

	legacy, err := readNameFile(afs, filepath.Join(dir, LegacyDiscNamesFile))
	if err != nil {
		return names, err
	}
	for k, v := range legacy {
		if _, ok := names[k]; !ok {
			names[k] = v
		}
	}
	return names, nil
}

// SetDisplayName records name for the file at path in the sidecar of its
// directory. A name equal to the filename, or empty, removes the entry.
// The sidecar is deleted when nothing but blank lines would remain.
func SetDisplayName(afs afero.Fs, path, name string) error {
	name = strings.TrimSpace(name)
	if strings.ContainsAny(name, ",\r\n") {
		return fmt.Errorf("%w: %q", ErrInvalidDisplayName, name)
	}

	filename := filepath.Base(path)
	if strings.Contains(filename, ",") {
		return fmt.Errorf("%w: filename %q contains a comma", ErrInvalidDisplayName, filename)
	}
	key := foldKey(filename)
	isDefault := name == "" || name == filename
	sidecar := filepath.Join(filepath.Dir(path), DisplayNamesFile)

	lines, crlf, err := readLines(afs, sidecar)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", sidecar, err)
	}

	out := make([]string, 0, len(lines)+1)
	written := false
	for _, line := range lines {
		file, _, ok := parseNameLine(line)
		if !ok || foldKey(file) != key {
			out = append(out, line)
			continue
		}
		if !written && !isDefault {
			out = append(out, filename+","+name)
		}
		written = true
	}
	if !written && !isDefault {
		out = append(out, filename+","+name)
	}

	if allBlank(out) {
		return removeIfExists(afs, sidecar)
	}
	return writeLines(afs, sidecar, out, crlf)
}

func allBlank(lines []string) bool {
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			return false
		}
	}
	return true
}
