package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bnema/dosctl/internal/library"
	"github.com/bnema/dosctl/internal/ui/progress"
)

var (
	editName          string
	editYear          int
	editDeveloper     string
	editPublisher     string
	editRating        string
	editCommands      []string
	editSetupCommands []string
	editISOs          []string
)

var editCmd = &cobra.Command{
	Use:   "edit <game>",
	Short: "Edit a game's metadata and commands",
	Long: `Rewrites the game's game.cfg with new values. Only the flags given are
changed. List flags replace the whole list; repeat them for several lines and
pass an empty value to clear a list.

Comments, blank lines and unknown sections of game.cfg are kept.

Examples:
  dosctl edit doom --year 1993 --developer "id Software" --rating M
  dosctl edit doom --command "cd DOOM" --command DOOM.EXE
  dosctl edit doom --iso ""`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := getLibrary()
		if err != nil {
			return err
		}

		g, err := findGame(lib, args)
		if err != nil {
			return err
		}
		if g.Err != nil {
			return fmt.Errorf("%s cannot be edited: %w", g.Name, g.Err)
		}

		data := g.Data()
		flags := cmd.Flags()
		changed := false

		if flags.Changed("name") {
			data.Name = editName
			changed = true
		}
		if flags.Changed("year") {
			data.Year = editYear
			changed = true
		}
		if flags.Changed("developer") {
			data.Developer = editDeveloper
			changed = true
		}
		if flags.Changed("publisher") {
			data.Publisher = editPublisher
			changed = true
		}
		if flags.Changed("rating") {
			r, ok := library.ParseRating(editRating)
			if !ok {
				return fmt.Errorf("unknown rating %q (use one of %s)", editRating, ratingCodes())
			}
			data.Rating = r
			changed = true
		}
		if flags.Changed("command") {
			data.Commands = editCommands
			changed = true
		}
		if flags.Changed("setup-command") {
			data.SetupCommands = editSetupCommands
			changed = true
		}
		if flags.Changed("iso") {
			data.ISOs = editISOs
			changed = true
		}

		if !changed {
			return fmt.Errorf("nothing to change, see dosctl edit --help")
		}

		if err := lib.SaveGameData(g, data); err != nil {
			return fmt.Errorf("failed to save %s: %w", g.Name, err)
		}

		progress.PrintSuccess(fmt.Sprintf("Saved %s", g.Name))
		for _, iso := range g.ISOs {
			if !iso.Exists {
				progress.PrintWarning("ISO not found: " + iso.Path)
			}
		}
		return nil
	},
}

func ratingCodes() string {
	var codes []string
	for _, r := range library.AllRatings() {
		if r.Code() != "" {
			codes = append(codes, r.Code())
		}
	}
	return strings.Join(codes, ", ")
}

func init() {
	f := editCmd.Flags()
	f.StringVar(&editName, "name", "", "Display name")
	f.IntVar(&editYear, "year", 0, "Release year, 0 to clear")
	f.StringVar(&editDeveloper, "developer", "", "Developer")
	f.StringVar(&editPublisher, "publisher", "", "Publisher")
	f.StringVar(&editRating, "rating", "", "Parental rating code, empty to clear")
	f.StringArrayVar(&editCommands, "command", nil, "Command line run at launch (repeatable)")
	f.StringArrayVar(&editSetupCommands, "setup-command", nil, "Command line run in setup mode (repeatable)")
	f.StringArrayVar(&editISOs, "iso", nil, "ISO filename inside isos/ (repeatable)")
	rootCmd.AddCommand(editCmd)
}
