package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/dosctl/internal/logger"
	"github.com/bnema/dosctl/internal/settings"
	"github.com/bnema/dosctl/internal/ui/progress"
	"github.com/bnema/dosctl/internal/ui/styles"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change the dosctl settings",
	Long: `Shows or changes the DOSBox executable and the library directory.

Examples:
  dosctl config show
  dosctl config set-dosbox /usr/bin/dosbox-staging
  dosctl config set-library ~/dos-games`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := getSettingsStore()
		st, err := store.Load()
		if err != nil {
			return err
		}

		entries := []struct {
			label string
			value string
			check func() error
		}{
			{"DOSBox", st.DOSBoxPath, func() error { return settings.ValidateDOSBox(appFs, st.DOSBoxPath) }},
			{"Library", st.LibraryPath, func() error { return settings.ValidateLibrary(appFs, st.LibraryPath) }},
		}

		for _, e := range entries {
			value := e.value
			if value == "" {
				value = styles.MutedText.Render("(not set)")
			}
			fmt.Printf("%-11s %s\n", e.label+":", value)
			if err := e.check(); err != nil && e.value != "" {
				progress.PrintWarning(err.Error())
			}
		}

		fmt.Printf("%-11s %s\n", "File:", store.Path())
		fmt.Printf("%-11s %s\n", "Log:", logger.GetLogPath())
		fmt.Printf("%-11s %s\n", "Templates:", settings.TemplateDir())
		return nil
	},
}

var configSetDOSBoxCmd = &cobra.Command{
	Use:   "set-dosbox <path>",
	Short: "Set the DOSBox executable",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := settings.ExpandPath(args[0])
		if err := settings.ValidateDOSBox(appFs, path); err != nil {
			return err
		}
		return updateSettings(func(st *settings.Settings) { st.DOSBoxPath = path }, "DOSBox set to "+path)
	},
}

var configSetLibraryCmd = &cobra.Command{
	Use:   "set-library <path>",
	Short: "Set the library directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := settings.ExpandPath(args[0])
		if err := settings.ValidateLibrary(appFs, path); err != nil {
			return err
		}
		return updateSettings(func(st *settings.Settings) { st.LibraryPath = path }, "Library set to "+path)
	},
}

func updateSettings(apply func(*settings.Settings), message string) error {
	store := getSettingsStore()
	st, err := store.Load()
	if err != nil {
		return err
	}
	apply(&st)
	if err := store.Save(st); err != nil {
		return err
	}
	progress.PrintSuccess(message)
	return nil
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetDOSBoxCmd)
	configCmd.AddCommand(configSetLibraryCmd)
	rootCmd.AddCommand(configCmd)
}
