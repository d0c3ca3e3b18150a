package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/dosctl/internal/ui/browser"
)

var infoCmd = &cobra.Command{
	Use:   "info <game>",
	Short: "Show everything known about a game",
	Long: `Shows the full record of a game: metadata, commands, disc images with
their sizes, media listings and extras.

The game is matched by name, then by directory name, ignoring case.`,
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

		fmt.Print(browser.RenderInfo(g))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
