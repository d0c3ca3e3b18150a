package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bnema/dosctl/internal/ui/styles"
)

var removeForce bool

var removeCmd = &cobra.Command{
	Use:     "remove <game>",
	Aliases: []string{"rm", "delete"},
	Short:   "Delete a game directory from the library",
	Long: `Deletes a game directory with everything inside it: game files, disc
images, saves and media. There is no backup.

Use --force to skip the confirmation prompt.`,
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

		if !removeForce {
			fmt.Printf("Delete %s?\n", styles.Highlighted.Render(g.Name))
			fmt.Printf("  Path: %s\n", g.Dir)
			fmt.Println(styles.FormatWarning("Everything in this directory will be lost!"))

			fmt.Print("\nConfirm? [y/N] ")
			reader := bufio.NewReader(os.Stdin)
			response, _ := reader.ReadString('\n')
			response = strings.TrimSpace(strings.ToLower(response))

			if response != "y" && response != "yes" {
				fmt.Println("Cancelled.")
				return nil
			}
		}

		if err := lib.Delete(g); err != nil {
			return fmt.Errorf("failed to delete %s: %w", g.Name, err)
		}

		fmt.Println(styles.FormatSuccess(fmt.Sprintf("%s deleted", g.Name)))
		return nil
	},
}

func init() {
	removeCmd.Flags().BoolVarP(&removeForce, "force", "f", false, "Skip confirmation prompt")
	rootCmd.AddCommand(removeCmd)
}
