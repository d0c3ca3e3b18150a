package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bnema/dosctl/internal/library"
	"github.com/bnema/dosctl/internal/settings"
	"github.com/bnema/dosctl/internal/ui/progress"
	uisetup "github.com/bnema/dosctl/internal/ui/setup"
)

var (
	newName       string
	newSource     string
	newISOs       []string
	newDiscs      []string
	newFrontCover string
	newBackCover  string
)

var newCmd = &cobra.Command{
	Use:     "new <dir-name>",
	Aliases: []string{"setup", "add"},
	Short:   "Set up a new game directory",
	Long: `Creates a game directory in the library with the standard layout, copies
the game files, ISOs, install discs and covers into it, and writes game.cfg and
dosbox.conf from the templates.

Templates placed in ` + settings.TemplateDir() + ` replace the built-in ones.

Examples:
  dosctl new Doom --name "Doom" --source ~/dos/DOOM
  dosctl new Quake --source ~/dos/QUAKE --iso ~/iso/quake.iso --front ~/covers/quake.jpg
  dosctl new Daggerfall --disc ~/iso/daggerfall.cue`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := getLibrary()
		if err != nil {
			return err
		}

		req := library.SetupRequest{
			DirName:     args[0],
			Name:        newName,
			SourceDir:   settings.ExpandPath(newSource),
			FrontCover:  settings.ExpandPath(newFrontCover),
			BackCover:   settings.ExpandPath(newBackCover),
			TemplateDir: settings.TemplateDir(),
		}
		for _, iso := range newISOs {
			req.ISOs = append(req.ISOs, settings.ExpandPath(iso))
		}
		for _, disc := range newDiscs {
			req.Discs = append(req.Discs, settings.ExpandPath(disc))
		}

		if !interactive() {
			g, err := lib.Setup(req, nil)
			if err != nil {
				return err
			}
			progress.PrintSuccess(fmt.Sprintf("%s created in %s", g.Name, g.Dir))
			return nil
		}

		p := tea.NewProgram(uisetup.NewModel(lib, req))
		finalModel, err := p.Run()
		if err != nil {
			return err
		}

		fm := finalModel.(uisetup.Model)
		if fm.GetError() != nil {
			return fm.GetError()
		}
		if fm.Game() == nil {
			return fmt.Errorf("setup interrupted")
		}
		return nil
	},
}

func init() {
	f := newCmd.Flags()
	f.StringVar(&newName, "name", "", "Display name written to game.cfg")
	f.StringVar(&newSource, "source", "", "Folder copied into the game's C drive")
	f.StringArrayVar(&newISOs, "iso", nil, "ISO image to copy and list in game.cfg (repeatable)")
	f.StringArrayVar(&newDiscs, "disc", nil, "Install disc image to copy, .cue brings its .bin (repeatable)")
	f.StringVar(&newFrontCover, "front", "", "Front cover image")
	f.StringVar(&newBackCover, "back", "", "Back cover image")
	rootCmd.AddCommand(newCmd)
}
