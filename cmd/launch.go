package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/dosctl/internal/launcher"
	"github.com/bnema/dosctl/internal/ui/progress"
)

var (
	launchSetup   bool
	launchInstall bool
	launchDryRun  bool
)

var launchCmd = &cobra.Command{
	Use:     "launch <game>",
	Aliases: []string{"start", "run", "play"},
	Short:   "Launch a game in DOSBox",
	Long: `Starts DOSBox for a game with its C drive mounted and its ISOs attached.

Modes:
  (default)   run the game's [commands], then exit DOSBox
  --setup     run the game's [setup-commands], then exit DOSBox
  --install   mount the install discs and leave DOSBox at the C: prompt

DOSBox is started in the background; dosctl does not wait for it.

Examples:
  dosctl launch Doom
  dosctl launch "Commander Keen" --setup
  dosctl launch doom --dry-run`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if launchSetup && launchInstall {
			return errors.New("--setup and --install cannot be combined")
		}
		mode := launcher.ModePlay
		switch {
		case launchSetup:
			mode = launcher.ModeSetup
		case launchInstall:
			mode = launcher.ModeInstall
		}

		lib, l, err := getLibraryAndLauncher()
		if err != nil {
			return err
		}

		g, err := findGame(lib, args)
		if err != nil {
			return err
		}
		if g.Err != nil {
			return fmt.Errorf("%s cannot be launched: %w", g.Name, g.Err)
		}

		progress.PrintTitle(fmt.Sprintf("Launching %s (%s)", g.Name, mode))

		if launchDryRun {
			c, err := l.Prepare(g, mode)
			if err != nil {
				return err
			}
			printWarnings(c.Warnings)
			for _, kv := range c.Env {
				progress.PrintDetail(kv)
			}
			fmt.Println(c.String())
			return nil
		}

		c, err := l.Launch(g, mode)
		if err != nil {
			return fmt.Errorf("failed to launch: %w", err)
		}
		printWarnings(c.Warnings)
		progress.PrintSuccess("DOSBox started")

		return nil
	},
}

func printWarnings(warnings []string) {
	for _, w := range warnings {
		progress.PrintWarning(w)
	}
}

func init() {
	launchCmd.Flags().BoolVar(&launchSetup, "setup", false, "Run the setup commands instead of the game")
	launchCmd.Flags().BoolVar(&launchInstall, "install", false, "Mount the install discs and stop at the prompt")
	launchCmd.Flags().BoolVarP(&launchDryRun, "dry-run", "n", false, "Print the DOSBox command without running it")
	rootCmd.AddCommand(launchCmd)
}
