package browser

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/bnema/dosctl/internal/library"
	"github.com/bnema/dosctl/internal/ui/styles"
)

// Status tells whether g can be launched as configured
func Status(g *library.Game) styles.GameStatusType {
	if g.Err != nil {
		return styles.GameStatusBroken
	}
	for _, iso := range g.ISOs {
		if !iso.Exists {
			return styles.GameStatusDegraded
		}
	}
	return styles.GameStatusReady
}

// Summary returns the one-line description used in lists
func Summary(g *library.Game) string {
	var parts []string

	if g.Year > 0 {
		parts = append(parts, fmt.Sprint(g.Year))
	}
	if studio := studio(g); studio != "" {
		parts = append(parts, studio)
	}
	if label := g.Rating.String(); label != "" {
		parts = append(parts, label)
	}
	parts = append(parts, styles.FormatGameStatus(Status(g)))

	return strings.Join(parts, " | ")
}

func studio(g *library.Game) string {
	switch {
	case g.Developer != "" && g.Publisher != "" && g.Developer != g.Publisher:
		return g.Developer + " / " + g.Publisher
	case g.Developer != "":
		return g.Developer
	default:
		return g.Publisher
	}
}

// RenderInfo renders the full record of a game
func RenderInfo(g *library.Game) string {
	var s strings.Builder

	header := styles.GameName.Render(g.Name)
	if year := styles.FormatYear(g.Year); year != "" {
		header += " " + year
	}
	if rating := styles.FormatRating(g.Rating.String()); rating != "" {
		header += " " + rating
	}
	s.WriteString(header + "\n")
	if studio := studio(g); studio != "" {
		s.WriteString(styles.GameStudio.Render(studio) + "\n")
	}
	s.WriteString("\n")

	s.WriteString(fmt.Sprintf("Directory: %s\n", g.Dir))
	s.WriteString(fmt.Sprintf("Status:    %s\n", styles.FormatGameStatus(Status(g))))
	if g.Err != nil {
		s.WriteString(styles.FormatError(g.Err.Error()) + "\n")
		return s.String()
	}

	writeList(&s, "Commands", g.Commands)
	writeList(&s, "Setup commands", g.SetupCommands)
	writeDiscs(&s, "ISOs", g.ISOs)
	writeDiscs(&s, "Install discs", g.InstallDiscs)
	writeMedia(&s, "Captures", g.Captures)
	writeMedia(&s, "Videos", g.Videos)
	writeMedia(&s, "Inserts", g.Inserts)
	writeMedia(&s, "Soundtrack", g.Soundtrack)

	s.WriteString("\n" + styles.FormatSection("Extras") + "\n")
	extras := []struct {
		name    string
		present bool
	}{
		{"front cover", g.HasFrontCover},
		{"back cover", g.HasBackCover},
		{"manual", g.HasManual},
		{"cheats", g.HasCheats},
		{"walkthrough", g.HasWalkthrough},
	}
	for _, e := range extras {
		s.WriteString("  " + styles.FormatPresence(e.name, e.present) + "\n")
	}

	return s.String()
}

func writeList(s *strings.Builder, title string, lines []string) {
	if len(lines) == 0 {
		return
	}
	s.WriteString("\n" + styles.FormatSection(title) + "\n")
	for _, line := range lines {
		s.WriteString("  " + line + "\n")
	}
}

func writeDiscs(s *strings.Builder, title string, discs []library.DiscImage) {
	if len(discs) == 0 {
		return
	}
	s.WriteString("\n" + styles.FormatSection(title) + "\n")
	for _, d := range discs {
		if !d.Exists {
			s.WriteString("  " + styles.FormatWarning(d.Name+" (missing)") + "\n")
			continue
		}
		s.WriteString(fmt.Sprintf("  %s %s\n", d.Name, styles.MutedText.Render(humanize.Bytes(uint64(d.Size)))))
	}
}

func writeMedia(s *strings.Builder, title string, files []library.MediaFile) {
	if len(files) == 0 {
		return
	}
	s.WriteString("\n" + styles.FormatSection(fmt.Sprintf("%s (%d)", title, len(files))) + "\n")
	for _, f := range files {
		s.WriteString("  " + f.Name + "\n")
	}
}
