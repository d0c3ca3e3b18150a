package styles

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Color palette - coherent with charmbracelet style
var (
	Primary   = lipgloss.Color("#7D56F4") // Purple (charmbracelet brand)
	Secondary = lipgloss.Color("#FF79C6") // Pink accent
	Success   = lipgloss.Color("#50FA7B") // Green
	Warning   = lipgloss.Color("#FFB86C") // Orange
	Error     = lipgloss.Color("#FF5555") // Red
	Muted     = lipgloss.Color("#6272A4") // Muted blue-gray
	Text      = lipgloss.Color("#F8F8F2") // Light text
)

// Base styles
var (
	// Title style for headers
	Title = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFDF5")).
		Background(Primary).
		Padding(0, 1).
		Bold(true)

	// Normal text
	NormalText = lipgloss.NewStyle().
			Foreground(Text)

	// Muted text
	MutedText = lipgloss.NewStyle().
			Foreground(Muted)

	// Success text
	SuccessText = lipgloss.NewStyle().
			Foreground(Success)

	// Warning text
	WarningText = lipgloss.NewStyle().
			Foreground(Warning)

	// Error text
	ErrorText = lipgloss.NewStyle().
			Foreground(Error)

	// Highlighted (focused)
	Highlighted = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	// App container
	App = lipgloss.NewStyle().
		Padding(1, 2)

	// Help text
	Help = lipgloss.NewStyle().
		Foreground(Muted)

	// Spinner
	Spinner = lipgloss.NewStyle().
		Foreground(Primary)
)

// Symbols
var (
	CheckMark = lipgloss.NewStyle().Foreground(Success).SetString("✓")
	CrossMark = lipgloss.NewStyle().Foreground(Error).SetString("✗")
)

// Game list styles
var (
	GameName = lipgloss.NewStyle().
			Foreground(Text).
			Bold(true)

	GameYear = lipgloss.NewStyle().
			Foreground(Muted)

	GameStudio = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	GameReady = lipgloss.NewStyle().
			Foreground(Success)

	GameDegraded = lipgloss.NewStyle().
			Foreground(Warning)

	GameBroken = lipgloss.NewStyle().
			Foreground(Error)
)

// GameStatusType represents whether a game can be launched as configured
type GameStatusType int

const (
	GameStatusReady GameStatusType = iota
	GameStatusDegraded
	GameStatusBroken
)

// FormatGameStatus returns a styled status indicator
func FormatGameStatus(status GameStatusType) string {
	switch status {
	case GameStatusDegraded:
		return GameDegraded.Render("missing discs")
	case GameStatusBroken:
		return GameBroken.Render("error")
	default:
		return GameReady.Render("ready")
	}
}

// FormatSuccess formats a success message
func FormatSuccess(msg string) string {
	return CheckMark.String() + " " + SuccessText.Render(msg)
}

// FormatError formats an error message
func FormatError(msg string) string {
	return CrossMark.String() + " " + ErrorText.Render(msg)
}

// FormatWarning formats a warning message
func FormatWarning(msg string) string {
	return WarningText.Render("! " + msg)
}

// Detail view styles
var (
	// RatingBadge for the parental rating
	RatingBadge = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#000000")).
			Background(Warning).
			Bold(true).
			Padding(0, 1)

	// PresentBadge for media that exists on disk
	PresentBadge = lipgloss.NewStyle().
			Foreground(Success)

	// AbsentBadge for media that does not
	AbsentBadge = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// SectionHeader for detail sections like "Discs"
	SectionHeader = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)
)

// FormatRating returns a styled rating badge, empty when unrated
func FormatRating(label string) string {
	if label == "" {
		return ""
	}
	return RatingBadge.Render(label)
}

// FormatPresence formats a yes/no media flag
func FormatPresence(name string, present bool) string {
	if present {
		return PresentBadge.Render(CheckMark.Value() + " " + name)
	}
	return AbsentBadge.Render("- " + name)
}

// FormatYear formats a release year, empty when unset
func FormatYear(year int) string {
	if year <= 0 {
		return ""
	}
	return GameYear.Render(fmt.Sprintf("(%d)", year))
}

// FormatSection formats a section title
func FormatSection(title string) string {
	return SectionHeader.Render(title)
}
