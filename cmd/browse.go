package cmd

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bnema/dosctl/internal/launcher"
	"github.com/bnema/dosctl/internal/library"
	"github.com/bnema/dosctl/internal/logger"
	"github.com/bnema/dosctl/internal/ui/browser"
)

var browseCmd = &cobra.Command{
	Use:     "browse",
	Aliases: []string{"ui"},
	Short:   "Browse the library interactively",
	Long: `Opens the interactive library browser.

Keys:
  enter  play the selected game
  s      run the game's setup commands
  I      boot with the install discs mounted
  i      show everything known about the game
  r      rescan the library
  l      show the diagnostic log`,
	Args: cobra.NoArgs,
	RunE: runBrowse,
}

func runBrowse(cmd *cobra.Command, args []string) error {
	lib, l, err := getLibraryAndLauncher()
	if err != nil {
		return err
	}

	model := browser.NewModel(lib, l, logger.Diagnostics)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

// getLibrary returns the configured library
func getLibrary() (*library.Library, error) {
	st, err := loadSettings()
	if err != nil {
		return nil, err
	}
	return library.New(appFs, st.LibraryPath, getLogger()), nil
}

// getLibraryAndLauncher returns the configured library and launcher
func getLibraryAndLauncher() (*library.Library, *launcher.Launcher, error) {
	st, err := loadSettings()
	if err != nil {
		return nil, nil, err
	}
	lib := library.New(appFs, st.LibraryPath, getLogger())
	return lib, launcher.New(appFs, st.DOSBoxPath, getLogger()), nil
}

// findGame scans lib and looks up the game named by args
func findGame(lib *library.Library, args []string) (*library.Game, error) {
	games, err := lib.Scan(nil)
	if err != nil {
		return nil, err
	}
	return library.Find(games, strings.Join(args, " "))
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
