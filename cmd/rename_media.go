package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bnema/dosctl/internal/ui/progress"
)

var renameMediaCmd = &cobra.Command{
	Use:   "rename-media <file> <display name>",
	Short: "Set the display name of a media file or disc image",
	Long: `Stores a display name for a capture, video, insert, soundtrack file or
disc image. The file itself is not renamed; the name is kept in the names file
of its directory.

An empty display name resets the file to its filename.

Examples:
  dosctl rename-media ~/games/Doom/captures/doom_000.png "Episode 1 start"
  dosctl rename-media ~/games/Doom/captures/doom_000.png ""`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := getLibrary()
		if err != nil {
			return err
		}

		path, err := filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("invalid path %s: %w", args[0], err)
		}

		if err := lib.SetDisplayName(path, args[1]); err != nil {
			return err
		}

		if args[1] == "" {
			progress.PrintSuccess(fmt.Sprintf("%s reset to its filename", filepath.Base(path)))
		} else {
			progress.PrintSuccess(fmt.Sprintf("%s is now shown as %q", filepath.Base(path), args[1]))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renameMediaCmd)
}
