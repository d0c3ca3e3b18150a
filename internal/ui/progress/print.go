package progress

import (
	"fmt"
	"io"
	"os"

	"github.com/bnema/dosctl/internal/ui/styles"
)

// Output and ErrOutput receive the printed status lines
var (
	Output    io.Writer = os.Stdout
	ErrOutput io.Writer = os.Stderr
)

// FormatSuccess returns a completed-step line
func FormatSuccess(message string) string {
	return "  " + icon(StateComplete) + " " + textStyle(StateComplete).Render(message)
}

// FormatError returns a failed-step line
func FormatError(message string) string {
	return "  " + icon(StateError) + " " + textStyle(StateError).Render(message)
}

// FormatWarning returns a warning line
func FormatWarning(message string) string {
	mark := styles.WarningText.Render(currentGlyphs().warning)
	return "  " + mark + " " + styles.WarningText.Render(message)
}

// FormatCount formats a count like "3/12"
func FormatCount(current, total int) string {
	return fmt.Sprintf("%d/%d", current, total)
}

func PrintSuccess(message string) {
	_, _ = fmt.Fprintln(Output, FormatSuccess(message))
}

func PrintWarning(message string) {
	_, _ = fmt.Fprintln(Output, FormatWarning(message))
}

// PrintError writes a failure line to ErrOutput
func PrintError(message string) {
	_, _ = fmt.Fprintln(ErrOutput, FormatError(message))
}

// PrintTitle prints a bold heading followed by a blank line
func PrintTitle(title string) {
	_, _ = fmt.Fprintf(Output, "%s\n\n", styles.NormalText.Bold(true).Render(title))
}

// PrintDetail prints an indented muted line
func PrintDetail(detail string) {
	_, _ = fmt.Fprintf(Output, "      %s\n", styles.MutedText.Render(detail))
}
