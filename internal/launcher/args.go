package launcher

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bnema/dosctl/internal/library"
)

// Mode selects which discs and commands a launch uses
type Mode int

const (
	// ModePlay mounts the game's ISOs and runs its commands
	ModePlay Mode = iota
	// ModeSetup mounts the game's ISOs and runs its setup commands
	ModeSetup
	// ModeInstall mounts the install discs and leaves the DOS prompt open
	ModeInstall
)

func (m Mode) String() string {
	switch m {
	case ModeSetup:
		return "setup"
	case ModeInstall:
		return "install"
	default:
		return "play"
	}
}

// Request holds everything needed to build a DOSBox command line
type Request struct {
	ConfigPath string
	MountPath  string
	Discs      []library.DiscImage
	Commands   []string
	Exit       bool
}

// NewRequest builds the request for launching g in mode
func NewRequest(g *library.Game, mode Mode) Request {
	req := Request{
		ConfigPath: g.DOSBoxConfigPath(),
		MountPath:  g.MountPath(),
		Exit:       true,
	}

	switch mode {
	case ModeSetup:
		req.Discs = g.ISOs
		req.Commands = g.SetupCommands
	case ModeInstall:
		req.Discs = g.InstallDiscs
		req.Exit = false
	default:
		req.Discs = g.ISOs
		req.Commands = g.Commands
	}
	return req
}

// BuildArgs returns the DOSBox arguments for req. Discs that do not exist
// are left out and reported in warnings. The remaining images are mounted
// together as D:.
func BuildArgs(req Request) (args []string, warnings []string) {
	args = []string{
		"-noconsole",
		"-conf", req.ConfigPath,
		"-c", fmt.Sprintf("MOUNT C '%s'", req.MountPath),
	}

	var images []string
	for _, d := range req.Discs {
		if !d.Exists {
			warnings = append(warnings, fmt.Sprintf("disc image not found, skipping: %s", d.Path))
			continue
		}
		images = append(images, d.Path)
	}
	if len(images) > 0 {
		args = append(args, "-c", imgmount(images))
	}

	args = append(args, "-c", "C:")
	for _, cmd := range req.Commands {
		if cmd = strings.TrimSpace(cmd); cmd != "" {
			args = append(args, "-c", cmd)
		}
	}
	if req.Exit {
		args = append(args, "-c", "EXIT")
	}

	return args, warnings
}

func imgmount(paths []string) string {
	var b strings.Builder
	b.WriteString("IMGMOUNT D")
	for _, p := range paths {
		b.WriteString(" '")
		b.WriteString(p)
		b.WriteString("'")
	}
	b.WriteString(" -t iso")
	return b.String()
}

// CommandLine renders a program and its arguments as a shell-like string
func CommandLine(program string, args []string) string {
	parts := make([]string, 0, len(args)+1)
	for _, a := range append([]string{program}, args...) {
		if a == "" || strings.ContainsAny(a, " \t\"'\\") {
			a = strconv.Quote(a)
		}
		parts = append(parts, a)
	}
	return strings.Join(parts, " ")
}
