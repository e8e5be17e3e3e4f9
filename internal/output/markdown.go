package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dotcommander/lifeindex/internal/scoring"
)

// MarkdownFormatter formats output as Markdown
type MarkdownFormatter struct {
	w          io.Writer
	verbose    bool
	outputFile string
}

// NewMarkdownFormatter creates a new MarkdownFormatter
func NewMarkdownFormatter(w io.Writer, verbose bool, outputFile string) *MarkdownFormatter {
	return &MarkdownFormatter{
		w:          w,
		verbose:    verbose,
		outputFile: outputFile,
	}
}

// Format formats a single report as Markdown
func (f *MarkdownFormatter) Format(report *Report) error {
	var builder strings.Builder

	builder.WriteString("# Life Happiness Index\n\n")
	builder.WriteString(fmt.Sprintf("**Generated:** %s\n\n", time.Now().Format("2006-01-02 15:04:05")))
	if report.Source != "" {
		builder.WriteString(fmt.Sprintf("**Snapshot:** `%s`\n\n", report.Source))
	}

	if report.NoData() {
		builder.WriteString(fmt.Sprintf("*%s.*\n", noDataMessage))
		return f.write(builder.String())
	}

	res := report.Result
	builder.WriteString("## Score\n\n")
	builder.WriteString("| Metric | Value |\n")
	builder.WriteString("|--------|-------|\n")
	builder.WriteString(fmt.Sprintf("| Score | %.2f / 10 |\n", res.Score))
	builder.WriteString(fmt.Sprintf("| Band | %s (~%dth percentile) |\n", res.Band.Label, res.Band.Percentile))
	builder.WriteString(fmt.Sprintf("| Profile | %s (%s mean) |\n", res.Profile, res.Law))
	builder.WriteString(fmt.Sprintf("| Items | %d |\n", len(res.Items)))
	if m := res.Metrics.BMI; m != nil {
		builder.WriteString(fmt.Sprintf("| BMI | %.1f (score %d/%d) |\n", m.Display(), m.Score, scoring.DerivedMax))
	}
	if m := res.Metrics.SavingsRate; m != nil {
		builder.WriteString(fmt.Sprintf("| Savings rate | %.1f%% (score %d/%d) |\n", m.Display(), m.Score, scoring.DerivedMax))
	}
	if cmp := report.Comparison; cmp != nil {
		builder.WriteString(fmt.Sprintf("| Since baseline | %+.2f |\n", cmp.Delta))
	}
	builder.WriteString("\n")

	if f.verbose {
		builder.WriteString("## Items\n\n")
		builder.WriteString("| Item | Raw | Scaled | Quality | Note |\n")
		builder.WriteString("|------|-----|--------|---------|------|\n")
		for _, it := range res.Items {
			builder.WriteString(fmt.Sprintf("| %s | %.1f | %.2f | %.3f | %s |\n",
				it.ID, it.Raw, it.Scaled, it.Quality, itemNote(it)))
		}
		builder.WriteString("\n")
	}

	if len(report.Rejections) > 0 {
		builder.WriteString("## Skipped Answers\n\n")
		for _, r := range report.Rejections {
			builder.WriteString(fmt.Sprintf("- **%s** `%s` - %s\n", r.ID, r.Raw, r.Err))
		}
		builder.WriteString("\n")
	}

	return f.write(builder.String())
}

// FormatBatch formats a batch report as a Markdown table
func (f *MarkdownFormatter) FormatBatch(batch *BatchReport) error {
	var builder strings.Builder

	builder.WriteString("# Life Happiness Index Batch Report\n\n")
	builder.WriteString(fmt.Sprintf("**Generated:** %s\n\n", time.Now().Format("2006-01-02 15:04:05")))
	builder.WriteString(fmt.Sprintf("**Root:** `%s`  **Pattern:** `%s`\n\n", batch.Root, batch.Pattern))

	if len(batch.Entries) == 0 && len(batch.Failures) == 0 {
		builder.WriteString("*No snapshots found.*\n")
		return f.write(builder.String())
	}

	builder.WriteString("| Snapshot | Score | Band |\n")
	builder.WriteString("|----------|-------|------|\n")
	for i := range batch.Entries {
		entry := &batch.Entries[i]
		if entry.NoData() {
			builder.WriteString(fmt.Sprintf("| %s | - | no data |\n", entry.Source))
			continue
		}
		builder.WriteString(fmt.Sprintf("| %s | %.2f | %s |\n", entry.Source, entry.Result.Score, entry.Result.Band.Label))
	}
	builder.WriteString("\n")

	if len(batch.Failures) > 0 {
		builder.WriteString("## Failures\n\n")
		for _, fail := range batch.Failures {
			builder.WriteString(fmt.Sprintf("- **%s** - %s\n", fail.Source, fail.Message))
		}
		builder.WriteString("\n")
	}

	return f.write(builder.String())
}

func (f *MarkdownFormatter) write(content string) error {
	if f.outputFile != "" {
		if err := os.WriteFile(f.outputFile, []byte(content), 0644); err != nil {
			return fmt.Errorf("error writing to file %s: %w", f.outputFile, err)
		}
		return nil
	}
	_, err := io.WriteString(f.w, content)
	return err
}

// itemNote describes how an item was derived
func itemNote(it scoring.Item) string {
	switch {
	case it.Derived:
		return "derived"
	case it.Inverted:
		return "inverted"
	default:
		return ""
	}
}
