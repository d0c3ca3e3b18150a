package launcher

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/bnema/dosctl/internal/library"
)

var (
	ErrEmulatorNotFound     = errors.New("DOSBox executable not found")
	ErrMountNotFound        = errors.New("game mount directory not found")
	ErrDOSBoxConfigNotFound = errors.New("DOSBox config not found")
)

// Launcher starts DOSBox for games of the library
type Launcher struct {
	fs         afero.Fs
	log        *log.Logger
	DOSBoxPath string

	// getenv and environ read the process environment, replaced in tests
	getenv  func(string) string
	environ func() []string
}

// Command is a fully prepared DOSBox invocation
type Command struct {
	Path     string
	Args     []string
	Dir      string
	Env      []string // Variables added to the inherited environment
	Warnings []string
}

// String returns the command line for display
func (c *Command) String() string {
	return CommandLine(c.Path, c.Args)
}

func New(fs afero.Fs, dosboxPath string, logger *log.Logger) *Launcher {
	l := &Launcher{
		fs:         fs,
		log:        logger,
		DOSBoxPath: dosboxPath,
		getenv:     os.Getenv,
		environ:    os.Environ,
	}

	l.log.Debug("Launcher initialized", "dosbox", l.DOSBoxPath)
	return l
}

// Prepare checks that g can be launched and builds its command. The
// emulator, the C drive folder and the DOSBox config must exist; missing
// disc images only produce warnings.
func (l *Launcher) Prepare(g *library.Game, mode Mode) (*Command, error) {
	if info, err := l.fs.Stat(l.DOSBoxPath); err != nil || info.IsDir() {
		l.log.Error("DOSBox executable not found", "path", l.DOSBoxPath)
		return nil, fmt.Errorf("%w: %s", ErrEmulatorNotFound, l.DOSBoxPath)
	}

	if info, err := l.fs.Stat(g.MountPath()); err != nil || !info.IsDir() {
		l.log.Error("Mount directory not found", "game", g.Name, "path", g.MountPath())
		return nil, fmt.Errorf("%w: %s", ErrMountNotFound, g.MountPath())
	}

	if _, err := l.fs.Stat(g.DOSBoxConfigPath()); err != nil {
		l.log.Error("DOSBox config not found", "game", g.Name, "path", g.DOSBoxConfigPath())
		return nil, fmt.Errorf("%w: %s", ErrDOSBoxConfigNotFound, g.DOSBoxConfigPath())
	}

	req := NewRequest(g, mode)
	req.Discs = l.refreshDiscs(req.Discs)

	args, warnings := BuildArgs(req)
	for _, w := range warnings {
		l.log.Warn("Launch degraded", "game", g.Name, "reason", w)
	}

	cmd := &Command{
		Path:     l.DOSBoxPath,
		Args:     args,
		Dir:      g.Dir,
		Env:      l.environment(),
		Warnings: warnings,
	}

	l.log.Debug("DOSBox command prepared",
		"game", g.Name,
		"mode", mode,
		"command", cmd.String(),
	)
	return cmd, nil
}

// refreshDiscs re-checks that each disc image is still on disk
func (l *Launcher) refreshDiscs(discs []library.DiscImage) []library.DiscImage {
	out := make([]library.DiscImage, len(discs))
	for i, d := range discs {
		ok, err := afero.Exists(l.fs, d.Path)
		d.Exists = ok && err == nil
		out[i] = d
	}
	return out
}

// Launch prepares the command and starts DOSBox without waiting for it
func (l *Launcher) Launch(g *library.Game, mode Mode) (*Command, error) {
	cmd, err := l.Prepare(g, mode)
	if err != nil {
		return nil, err
	}

	l.log.Info("Launching DOSBox",
		"game", g.Name,
		"mode", mode,
		"workdir", cmd.Dir,
	)

	proc := exec.Command(cmd.Path, cmd.Args...)
	proc.Dir = cmd.Dir
	proc.Env = append(l.environ(), cmd.Env...)

	if err := proc.Start(); err != nil {
		l.log.Error("Failed to start DOSBox", "error", err)
		return nil, fmt.Errorf("failed to start DOSBox: %w", err)
	}

	l.log.Debug("DOSBox started", "pid", proc.Process.Pid)
	if err := proc.Process.Release(); err != nil {
		l.log.Warn("Failed to release DOSBox process", "error", err)
	}

	return cmd, nil
}
