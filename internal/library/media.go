package library

import (
	"errors"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// Extension allow-lists, lower case
var (
	CaptureExtensions    = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp"}
	VideoExtensions      = []string{".mp4", ".mkv", ".avi", ".webm", ".mov"}
	InsertExtensions     = []string{".pdf", ".png", ".jpg", ".jpeg"}
	SoundtrackExtensions = []string{".mp3", ".ogg", ".flac", ".wav"}
	DiscImageExtensions  = []string{".iso", ".cue", ".img", ".ima", ".vfd"}

	coverExtensions = []string{".jpg", ".png"}

	// discListingExtensions also picks up .bin files that have no cue sheet
	discListingExtensions = []string{".iso", ".cue", ".img", ".ima", ".vfd", ".bin"}
)

const (
	cueExtension = ".cue"
	binExtension = ".bin"
)

func hasExtension(name string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

func stem(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// enrich fills the listings and presence flags of a freshly parsed game.
// Each listing is independent: a failure is logged and leaves that list empty.
func (l *Library) enrich(g *Game) {
	l.probeExtras(g)

	media := []struct {
		label string
		dir   string
		exts  []string
		dst   *[]MediaFile
	}{
		{"captures", g.CapturesPath(), CaptureExtensions, &g.Captures},
		{"videos", g.VideosPath(), VideoExtensions, &g.Videos},
		{"inserts", g.InsertsPath(), InsertExtensions, &g.Inserts},
		{"soundtrack", g.SoundtrackPath(), SoundtrackExtensions, &g.Soundtrack},
	}
	for _, m := range media {
		files, err := l.scanMedia(m.dir, m.exts)
		if err != nil {
			l.log.Warn("Cannot list media", "game", g.DirName(), "kind", m.label, "error", err)
		}
		*m.dst = files
	}

	isos, err := l.scanISOs(g)
	if err != nil {
		l.log.Warn("Cannot list ISO images", "game", g.DirName(), "error", err)
	}
	g.ISOs = isos

	discs, err := l.scanDiscImages(g)
	if err != nil {
		l.log.Warn("Cannot list disc images", "game", g.DirName(), "error", err)
	}
	g.InstallDiscs = discs
}

func (l *Library) exists(path string) bool {
	_, err := l.fs.Stat(path)
	return err == nil
}

// probeExtras sets the presence flags for box art, manual, cheats and walkthrough
func (l *Library) probeExtras(g *Game) {
	g.HasFrontCover = l.exists(g.FrontCoverPath())
	g.HasBackCover = l.exists(g.BackCoverPath())
	g.HasManual = l.exists(g.ManualPath())
	g.HasCheats = l.exists(g.CheatsPath())
	g.HasWalkthrough = l.exists(g.WalkthroughPath())
}

// listFiles returns the regular files of dir matching exts, sorted by name
// ignoring case. A missing directory is an empty listing.
func (l *Library) listFiles(dir string, exts []string) ([]string, error) {
	entries, err := afero.ReadDir(l.fs, dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !hasExtension(e.Name(), exts) {
			continue
		}
		names = append(names, e.Name())
	}
	sortFolded(names)
	return names, nil
}

func sortFolded(names []string) {
	sort.SliceStable(names, func(i, j int) bool {
		return foldKey(names[i]) < foldKey(names[j])
	})
}

// scanMedia lists one media directory with display names from its sidecar
func (l *Library) scanMedia(dir string, exts []string) ([]MediaFile, error) {
	files := []MediaFile{}

	names, err := l.listFiles(dir, exts)
	if err != nil {
		return files, err
	}
	if len(names) == 0 {
		return files, nil
	}

	display, err := ReadDisplayNames(l.fs, dir)
	if err != nil {
		l.log.Warn("Cannot read display names", "dir", dir, "error", err)
	}

	for _, name := range names {
		files = append(files, MediaFile{
			Path: filepath.Join(dir, name),
			Name: display.Lookup(name),
		})
	}
	return files, nil
}

// scanISOs resolves the [isos] filenames against the ISO directory
func (l *Library) scanISOs(g *Game) ([]DiscImage, error) {
	isos := []DiscImage{}
	if len(g.ISOFiles) == 0 {
		return isos, nil
	}

	dir := g.ISOPath()
	display, err := ReadDisplayNames(l.fs, dir)
	if err != nil {
		return isos, err
	}

	for _, name := range g.ISOFiles {
		isos = append(isos, l.discImage(dir, name, display))
	}
	return isos, nil
}

// scanDiscImages lists every install disc image in the disc images directory.
// A .bin is only listed on its own when no .cue with the same stem points at it.
func (l *Library) scanDiscImages(g *Game) ([]DiscImage, error) {
	discs := []DiscImage{}
	dir := g.DiscImagesPath()

	names, err := l.listFiles(dir, discListingExtensions)
	if err != nil {
		return discs, err
	}
	if len(names) == 0 {
		return discs, nil
	}

	cues := make(map[string]bool)
	for _, name := range names {
		if strings.EqualFold(filepath.Ext(name), cueExtension) {
			cues[foldKey(stem(name))] = true
		}
	}

	display, err := readDiscNames(l.fs, dir)
	if err != nil {
		return discs, err
	}

	for _, name := range names {
		if strings.EqualFold(filepath.Ext(name), binExtension) && cues[foldKey(stem(name))] {
			continue
		}
		discs = append(discs, l.discImage(dir, name, display))
	}
	return discs, nil
}

// discImage describes dir/name. For a .cue the size is the size of the
// companion .bin, and the .bin name is used when no display name was set.
func (l *Library) discImage(dir, name string, display DisplayNames) DiscImage {
	d := DiscImage{
		Path: filepath.Join(dir, name),
		Name: display.Lookup(name),
	}

	if info, err := l.fs.Stat(d.Path); err == nil {
		d.Exists = true
		d.Size = info.Size()
	} else {
		l.log.Warn("Disc image not found", "path", d.Path)
	}

	if strings.EqualFold(filepath.Ext(name), cueExtension) {
		d.Size = 0
		if binName, size, ok := l.findCompanion(dir, name); ok {
			d.Size = size
			if d.Name == name {
				d.Name = binName
			}
		} else {
			l.log.Warn("Cue sheet has no companion bin, reporting size 0", "path", d.Path)
		}
	}

	for _, ext := range coverExtensions {
		cover := filepath.Join(dir, stem(name)+ext)
		if l.exists(cover) {
			d.CoverPath = cover
			break
		}
	}

	return d
}

// findCompanion looks for the .bin holding the data of a .cue sheet
func (l *Library) findCompanion(dir, cueName string) (string, int64, bool) {
	for _, ext := range []string{binExtension, strings.ToUpper(binExtension)} {
		binName := stem(cueName) + ext
		if info, err := l.fs.Stat(filepath.Join(dir, binName)); err == nil && !info.IsDir() {
			return binName, info.Size(), true
		}
	}
	return "", 0, false
}
