package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bnema/dosctl/internal/library"
	"github.com/bnema/dosctl/internal/logger"
	"github.com/bnema/dosctl/internal/ui/browser"
	"github.com/bnema/dosctl/internal/ui/progress"
	"github.com/bnema/dosctl/internal/ui/styles"
)

var scanDiagnostics bool

var scanCmd = &cobra.Command{
	Use:     "scan",
	Aliases: []string{"list", "ls"},
	Short:   "Scan the library and list every game",
	Long: `Loads every game directory of the library and prints a table of games.
Directories without a game.cfg are skipped. Games that fail to load are listed
with an error status.

Use --diagnostics to print the warnings collected while scanning.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := getLibrary()
		if err != nil {
			return err
		}

		games, err := scanWithProgress(lib)
		if err != nil {
			return fmt.Errorf("failed to scan library: %w", err)
		}

		if len(games) == 0 {
			fmt.Println("No games found")
			fmt.Println("\nCreate one with: dosctl new <dir-name> --source <folder>")
		} else {
			printGameTable(games)
			fmt.Printf("\n%d game(s)\n", len(games))
			fmt.Printf("Library: %s\n", lib.Root())
		}

		if scanDiagnostics {
			printDiagnostics()
		}

		return nil
	},
}

// scanWithProgress scans lib, showing progress on a terminal
func scanWithProgress(lib *library.Library) ([]*library.Game, error) {
	if !interactive() {
		return lib.Scan(nil)
	}

	model := progress.NewModel("Scanning "+lib.Root(), "Loading games")
	p := tea.NewProgram(model)

	type scanResult struct {
		games []*library.Game
		err   error
	}
	done := make(chan scanResult, 1)

	go func() {
		p.Send(progress.StartStepMsg{})
		games, err := lib.Scan(progress.ScanReporter(p))
		if err != nil {
			p.Send(progress.FailStepMsg{Err: err})
		}
		done <- scanResult{games, err}
	}()

	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("progress UI error: %w", err)
	}
	if m := finalModel.(progress.Model); !m.IsDone() {
		return nil, fmt.Errorf("scan interrupted")
	}

	res := <-done
	return res.games, res.err
}

func printGameTable(games []*library.Game) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		styles.Title.Render("NAME"),
		styles.Title.Render("YEAR"),
		styles.Title.Render("DEVELOPER"),
		styles.Title.Render("RATING"),
		styles.Title.Render("STATUS"),
	)

	for _, g := range games {
		year := "-"
		if g.Year > 0 {
			year = fmt.Sprint(g.Year)
		}
		developer := g.Developer
		if developer == "" {
			developer = "-"
		}
		rating := g.Rating.String()
		if rating == "" {
			rating = "-"
		}

		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			g.Name, year, developer, rating, styles.FormatGameStatus(browser.Status(g)))
	}

	_ = w.Flush()
}

func printDiagnostics() {
	lines := logger.Diagnostics.Lines()

	fmt.Println()
	progress.PrintTitle("Diagnostics")
	if len(lines) == 0 {
		progress.PrintDetail("Nothing logged")
		return
	}
	for _, line := range lines {
		fmt.Println(line)
	}
}

func init() {
	scanCmd.Flags().BoolVarP(&scanDiagnostics, "diagnostics", "d", false, "Print warnings collected while scanning")
	rootCmd.AddCommand(scanCmd)
}
