// Package observability provides formatted output for verbose CLI mode and
// trace setup.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/jonathan/diagnostic-engine/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 64
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out   io.Writer
	box   lipgloss.Style
	title lipgloss.Style
}

// NewPrinter creates a new Printer that writes to the given writer. Colors
// are only used when out is a terminal.
func NewPrinter(out io.Writer) *Printer {
	r := lipgloss.NewRenderer(out)
	return &Printer{
		out:   out,
		box:   r.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).Width(boxWidth),
		title: r.NewStyle().Bold(true),
	}
}

//nolint:errcheck // verbose output; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = truncate(line, boxWidth-4)
	}
	divider := strings.Repeat("─", boxWidth-4)
	body := p.title.Render(title) + "\n" + divider + "\n" + strings.Join(lines, "\n")
	fmt.Fprintln(p.out, p.box.Render(body))
}

// PrintGroups outputs band membership and weak topics.
func (p *Printer) PrintGroups(groups []types.BandGroup) {
	if len(groups) == 0 {
		return
	}

	var sb strings.Builder
	for i, g := range groups {
		sb.WriteString(fmt.Sprintf("%s [%d-%d]: %d student(s)\n", g.Band.Label, g.Band.Min, g.Band.Max, len(g.Members)))
		count := min(len(g.WeakTopics), maxItemsToShow)
		for j := 0; j < count; j++ {
			w := g.WeakTopics[j]
			sb.WriteString(fmt.Sprintf("  • %s (%.1f)\n", w.TopicName, w.AverageScore))
		}
		if len(g.Members) > 0 && len(g.WeakTopics) == 0 {
			sb.WriteString("  no weak topics\n")
		}
		if i < len(groups)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("PERFORMANCE BANDS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRecommendations outputs the per-band practice plan.
func (p *Printer) PrintRecommendations(recs []types.BandRecommendation) {
	var sb strings.Builder
	for _, r := range recs {
		if len(r.Units) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("%s (%d unit(s))\n", r.Band, r.TotalUnits()))
		for _, u := range r.Units {
			sb.WriteString(fmt.Sprintf("  %d × %s, %s\n", u.UnitCount, u.TopicName, u.DifficultyLabel))
		}
	}
	if sb.Len() == 0 {
		return
	}

	p.printBox("RECOMMENDATIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMisconceptions outputs a ranked misconception list.
func (p *Printer) PrintMisconceptions(label string, list []types.Misconception) {
	if len(list) == 0 {
		return
	}

	var sb strings.Builder
	for i, m := range list {
		sb.WriteString(fmt.Sprintf("%d. [%s] %s\n", i+1, strings.ToUpper(string(m.Severity)), m.Text))
	}

	title := "MISCONCEPTIONS"
	if label != "" {
		title += ": " + label
	}
	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMastery outputs a level decision.
func (p *Printer) PrintMastery(label string, status *types.MasteryStatus) {
	if status == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Level:    %s  %s\n", status.Current, status.Description))
	sb.WriteString(fmt.Sprintf("Latest:   %.1f\n", status.LatestScore))
	switch {
	case status.Enrichment:
		sb.WriteString("Advance:  enrichment")
	case status.CanAdvance && status.Next != nil:
		sb.WriteString(fmt.Sprintf("Advance:  yes, to %s", *status.Next))
	default:
		sb.WriteString("Advance:  no")
	}

	title := "MASTERY"
	if label != "" {
		title += ": " + label
	}
	p.printBox(title, sb.String())
}

// PrintReport outputs the class-level summary boxes.
func (p *Printer) PrintReport(r *types.DiagnosticReport) {
	if r == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Report:   %s\n", r.ID))
	if r.ClassID != "" {
		sb.WriteString(fmt.Sprintf("Class:    %s\n", r.ClassID))
	}
	sb.WriteString(fmt.Sprintf("Subject:  %s\n", r.Subject))
	sb.WriteString(fmt.Sprintf("Students: %d (%d without scored work)\n", len(r.Students), len(r.Excluded)))
	sb.WriteString(fmt.Sprintf("Budget:   %d unit(s) per band", r.Budget))
	p.printBox("DIAGNOSTIC REPORT", sb.String())

	p.PrintGroups(r.Groups)
	p.PrintRecommendations(r.Recommendations)
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-3]) + "..."
}
