package library

import "path/filepath"

// Fixed layout of a game directory, relative to the directory itself
const (
	ConfigFileName       = "game.cfg"
	DOSBoxConfigFileName = "dosbox.conf"
	MountDirName         = "game"
	ISODirName           = "isos"
	DiscImagesDirName    = "disc-images"
	CapturesDirName      = "captures"
	VideosDirName        = "videos"
	InsertsDirName       = "inserts"
	SoundtrackDirName    = "soundtrack"
	MediaDirName         = "media"
	ExtrasDirName        = "extras"

	// DefaultGameName is the name written by templates. It is treated as unset.
	DefaultGameName = "Unnamed Game"
)

// Game is one cataloged game directory
type Game struct {
	Dir       string // Absolute game directory, never changes
	Name      string // Display name, falls back to the directory name
	Year      int    // Release year, 0 when unset
	Developer string
	Publisher string
	Rating    Rating

	Commands      []string    // From [commands]
	SetupCommands []string    // From [setup-commands]
	ISOFiles      []string    // Raw filenames from [isos]
	ISOs          []DiscImage // ISOFiles resolved against isos/
	InstallDiscs  []DiscImage // Everything found in disc-images/

	Captures   []MediaFile
	Videos     []MediaFile
	Inserts    []MediaFile
	Soundtrack []MediaFile

	HasManual      bool
	HasCheats      bool
	HasWalkthrough bool
	HasFrontCover  bool
	HasBackCover   bool

	// Err is set on placeholders for games that failed to load during a scan
	Err error
}

// DiscImage describes a CD-ROM or floppy image attached to a game
type DiscImage struct {
	Path      string
	Name      string
	Size      int64  // For .cue files, the size of the companion .bin
	CoverPath string // Optional cover image next to the disc image
	Exists    bool
}

// MediaFile is a capture, video, insert or soundtrack file with its display name
type MediaFile struct {
	Path string
	Name string
}

// GameData is the editable part of a game's config file
type GameData struct {
	Name          string
	Year          int
	Developer     string
	Publisher     string
	Rating        Rating
	ISOs          []string
	Commands      []string
	SetupCommands []string
}

// newGame returns a game with defaults for dir and every list initialized
func newGame(dir string) *Game {
	return &Game{
		Dir:           dir,
		Name:          filepath.Base(dir),
		Commands:      []string{},
		SetupCommands: []string{},
		ISOFiles:      []string{},
		ISOs:          []DiscImage{},
		InstallDiscs:  []DiscImage{},
		Captures:      []MediaFile{},
		Videos:        []MediaFile{},
		Inserts:       []MediaFile{},
		Soundtrack:    []MediaFile{},
	}
}

// newPlaceholder returns the record shown for a game that could not be loaded
func newPlaceholder(dir string, err error) *Game {
	g := newGame(dir)
	g.Err = err
	return g
}

// Data returns the editable fields of the game
func (g *Game) Data() GameData {
	return GameData{
		Name:          g.Name,
		Year:          g.Year,
		Developer:     g.Developer,
		Publisher:     g.Publisher,
		Rating:        g.Rating,
		ISOs:          append([]string{}, g.ISOFiles...),
		Commands:      append([]string{}, g.Commands...),
		SetupCommands: append([]string{}, g.SetupCommands...),
	}
}

// DirName returns the base name of the game directory
func (g *Game) DirName() string { return filepath.Base(g.Dir) }

func (g *Game) ConfigPath() string       { return filepath.Join(g.Dir, ConfigFileName) }
func (g *Game) DOSBoxConfigPath() string { return filepath.Join(g.Dir, DOSBoxConfigFileName) }
func (g *Game) MountPath() string        { return filepath.Join(g.Dir, MountDirName) }
func (g *Game) ISOPath() string          { return filepath.Join(g.Dir, ISODirName) }
func (g *Game) DiscImagesPath() string   { return filepath.Join(g.Dir, DiscImagesDirName) }
func (g *Game) CapturesPath() string     { return filepath.Join(g.Dir, CapturesDirName) }
func (g *Game) VideosPath() string       { return filepath.Join(g.Dir, VideosDirName) }
func (g *Game) InsertsPath() string      { return filepath.Join(g.Dir, InsertsDirName) }
func (g *Game) SoundtrackPath() string   { return filepath.Join(g.Dir, SoundtrackDirName) }
func (g *Game) FrontCoverPath() string   { return filepath.Join(g.Dir, MediaDirName, "front.jpg") }
func (g *Game) BackCoverPath() string    { return filepath.Join(g.Dir, MediaDirName, "back.jpg") }
func (g *Game) ManualPath() string       { return filepath.Join(g.Dir, MediaDirName, "manual.pdf") }
func (g *Game) CheatsPath() string       { return filepath.Join(g.Dir, ExtrasDirName, "cheats.txt") }
func (g *Game) WalkthroughPath() string {
	return filepath.Join(g.Dir, ExtrasDirName, "walkthrough.txt")
}

// skeletonDirs lists the directories every game directory is created with
var skeletonDirs = []string{
	MountDirName,
	ISODirName,
	DiscImagesDirName,
	CapturesDirName,
	VideosDirName,
	InsertsDirName,
	SoundtrackDirName,
	MediaDirName,
	ExtrasDirName,
}
