package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dotcommander/lifeindex/internal/scoring"
)

// ConsoleFormatter formats output for console display
type ConsoleFormatter struct {
	w        io.Writer
	quiet    bool
	verbose  bool
	colorize bool
}

// NewConsoleFormatter creates a new ConsoleFormatter
func NewConsoleFormatter(w io.Writer, quiet, verbose bool) *ConsoleFormatter {
	return &ConsoleFormatter{
		w:        w,
		quiet:    quiet,
		verbose:  verbose,
		colorize: true,
	}
}

// bandColor maps a band to a terminal color
func bandColor(label string) lipgloss.Color {
	switch label {
	case scoring.BandExceptional.Label:
		return lipgloss.Color("10") // green
	case scoring.BandAboveAverage.Label:
		return lipgloss.Color("12") // blue
	case scoring.BandAverage.Label:
		return lipgloss.Color("3") // yellow
	default:
		return lipgloss.Color("9") // red
	}
}

func (f *ConsoleFormatter) style(color lipgloss.Color) lipgloss.Style {
	if !f.colorize {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(color)
}

// Format prints a single report
func (f *ConsoleFormatter) Format(report *Report) error {
	f.printRejections(report)

	if report.NoData() {
		fmt.Fprintln(f.w, f.style(lipgloss.Color("3")).Render(noDataMessage))
		return nil
	}

	res := report.Result
	if f.quiet {
		fmt.Fprintf(f.w, "%.2f\n", res.Score)
		return nil
	}

	scoreStyle := f.style(bandColor(res.Band.Label))
	if f.colorize {
		scoreStyle = scoreStyle.Bold(true)
	}
	fmt.Fprintf(f.w, "Life Happiness Index: %s / 10  %s\n",
		scoreStyle.Render(fmt.Sprintf("%.2f", res.Score)),
		scoreStyle.Render(fmt.Sprintf("(%s, ~%dth percentile)", res.Band.Label, res.Band.Percentile)))
	fmt.Fprintf(f.w, "Profile: %s (%s mean), %d items\n", res.Profile, res.Law, len(res.Items))

	f.printMetrics(res.Metrics)

	if f.verbose {
		f.printItems(res.Items)
	}

	if cmp := report.Comparison; cmp != nil {
		switch {
		case cmp.Unchanged:
			fmt.Fprintln(f.w, "Answers unchanged since baseline")
		case cmp.Delta > 0:
			fmt.Fprintln(f.w, f.style(lipgloss.Color("10")).Render(fmt.Sprintf("Change since baseline: %+.2f", cmp.Delta)))
		case cmp.Delta < 0:
			fmt.Fprintln(f.w, f.style(lipgloss.Color("9")).Render(fmt.Sprintf("Change since baseline: %+.2f", cmp.Delta)))
		default:
			fmt.Fprintln(f.w, "Change since baseline: 0.00")
		}
	}

	return nil
}

// printMetrics prints the derived metrics that are available
func (f *ConsoleFormatter) printMetrics(m scoring.Metrics) {
	var parts []string
	if m.BMI != nil {
		parts = append(parts, fmt.Sprintf("BMI: %.1f (score %d/%d)", m.BMI.Display(), m.BMI.Score, scoring.DerivedMax))
	}
	if m.SavingsRate != nil {
		parts = append(parts, fmt.Sprintf("Savings rate: %.1f%% (score %d/%d)", m.SavingsRate.Display(), m.SavingsRate.Score, scoring.DerivedMax))
	}
	if len(parts) > 0 {
		fmt.Fprintln(f.w, strings.Join(parts, "   "))
	}
}

// printItems prints the per-item breakdown
func (f *ConsoleFormatter) printItems(items []scoring.Item) {
	fmt.Fprintln(f.w)
	dim := f.style(lipgloss.Color("7"))
	for _, it := range items {
		note := ""
		switch {
		case it.Derived:
			note = dim.Render(" (derived)")
		case it.Inverted:
			note = dim.Render(" (inverted)")
		}
		fmt.Fprintf(f.w, "  %-8s raw %5.1f  scaled %5.2f  quality %6.3f%s\n",
			it.ID, it.Raw, it.Scaled, it.Quality, note)
	}
}

// printRejections warns about snapshot entries that were skipped
func (f *ConsoleFormatter) printRejections(report *Report) {
	if f.quiet || len(report.Rejections) == 0 {
		return
	}
	warn := f.style(lipgloss.Color("3"))
	for _, r := range report.Rejections {
		fmt.Fprintf(f.w, "%s %s\n", warn.Render("⚠ skipped"), r.Err)
	}
}

// FormatBatch prints one row per snapshot
func (f *ConsoleFormatter) FormatBatch(batch *BatchReport) error {
	for i := range batch.Entries {
		entry := &batch.Entries[i]
		if entry.NoData() {
			fmt.Fprintf(f.w, "%s  %s\n", f.style(lipgloss.Color("7")).Render("  -- "), entry.Source)
			continue
		}
		res := entry.Result
		fmt.Fprintf(f.w, "%s  %s  %s\n",
			f.style(bandColor(res.Band.Label)).Render(fmt.Sprintf("%5.2f", res.Score)),
			entry.Source,
			res.Band.Label)
	}
	for _, fail := range batch.Failures {
		fmt.Fprintf(f.w, "%s  %s: %s\n", f.style(lipgloss.Color("9")).Render("  ✗  "), fail.Source, fail.Message)
	}

	if f.quiet {
		return nil
	}
	fmt.Fprintf(f.w, "\n%d/%d scored, %d without data, %d failed\n",
		batch.Scored(), len(batch.Entries)+len(batch.Failures),
		len(batch.Entries)-batch.Scored(), len(batch.Failures))
	return nil
}
