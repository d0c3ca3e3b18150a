package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/bnema/dosctl/internal/logger"
	"github.com/bnema/dosctl/internal/settings"
	"github.com/bnema/dosctl/internal/ui/progress"
	"github.com/bnema/dosctl/internal/ui/prompt"
)

// Version info set via ldflags at build time
var (
	version = "dev"
	commit  = "unknown"
)

var (
	verbose         bool
	dosboxOverride  string
	libraryOverride string

	// appFs is the filesystem every component works on
	appFs afero.Fs = afero.NewOsFs()
)

var rootCmd = &cobra.Command{
	Use:     "dosctl",
	Short:   "DOS game library and DOSBox launcher",
	Version: version + " (" + commit + ")",
	Long: `A catalog and launcher for DOS games run under DOSBox.
Each game lives in its own directory of the library, described by a game.cfg.

Quick start:
  dosctl                   Browse the library
  dosctl scan              List every game
  dosctl launch "Doom"     Start a game`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logger.Init(verbose); err != nil {
			return fmt.Errorf("failed to initialize logging: %w", err)
		}
		logger.Debug("Starting", "command", cmd.CommandPath(), "version", version)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Close()
	},
	RunE: runBrowse,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		progress.PrintError(err.Error())
		os.Exit(1)
	}
}

func init() {
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().StringVar(&dosboxOverride, "dosbox", "", "DOSBox executable to use for this run")
	rootCmd.PersistentFlags().StringVar(&libraryOverride, "library", "", "Library directory to use for this run")
}

// getLogger returns the process logger
func getLogger() *log.Logger {
	if logger.Log == nil {
		return logger.Discard()
	}
	return logger.Log
}

func getSettingsStore() *settings.Store {
	return settings.NewStore(appFs, settings.DefaultPath(), getLogger())
}

func interactive() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())
}

// loadSettings returns validated settings. Flag overrides apply to this run
// only. Invalid entries from the file are asked for again on a terminal and
// the file is rewritten.
func loadSettings() (settings.Settings, error) {
	store := getSettingsStore()
	st, err := store.Load()
	if err != nil {
		return st, err
	}

	if dosboxOverride != "" {
		st.DOSBoxPath = settings.ExpandPath(dosboxOverride)
		if err := settings.ValidateDOSBox(appFs, st.DOSBoxPath); err != nil {
			return st, err
		}
	}
	if libraryOverride != "" {
		st.LibraryPath = settings.ExpandPath(libraryOverride)
		if err := settings.ValidateLibrary(appFs, st.LibraryPath); err != nil {
			return st, err
		}
	}

	if err := st.Validate(appFs); err == nil {
		return st, nil
	} else if !interactive() {
		return st, fmt.Errorf("%w (run dosctl config set-dosbox or set-library)", err)
	}

	changed := false
	if err := settings.ValidateDOSBox(appFs, st.DOSBoxPath); err != nil {
		logger.Warn("DOSBox path needs selection", "error", err)
		path, err := askPath("Select the DOSBox executable", "/usr/bin/dosbox", st.DOSBoxPath,
			func(p string) error { return settings.ValidateDOSBox(appFs, p) })
		if err != nil {
			return st, err
		}
		st.DOSBoxPath = path
		changed = true
	}
	if err := settings.ValidateLibrary(appFs, st.LibraryPath); err != nil {
		logger.Warn("Library path needs selection", "error", err)
		path, err := askPath("Select the game library directory", "~/dos-games", st.LibraryPath,
			func(p string) error { return settings.ValidateLibrary(appFs, p) })
		if err != nil {
			return st, err
		}
		st.LibraryPath = path
		changed = true
	}

	if changed {
		// Overrides are not persisted
		saved, err := store.Load()
		if err != nil {
			return st, err
		}
		if dosboxOverride == "" {
			saved.DOSBoxPath = st.DOSBoxPath
		}
		if libraryOverride == "" {
			saved.LibraryPath = st.LibraryPath
		}
		if err := store.Save(saved); err != nil {
			progress.PrintWarning("Could not save settings: " + err.Error())
		}
	}

	return st, nil
}

func askPath(title, hint, initial string, validate func(string) error) (string, error) {
	value, err := prompt.Ask(title, hint, initial, func(s string) error {
		return validate(settings.ExpandPath(s))
	})
	if errors.Is(err, prompt.ErrCancelled) {
		return "", fmt.Errorf("%s: %w", title, err)
	}
	if err != nil {
		return "", err
	}
	return settings.ExpandPath(value), nil
}
