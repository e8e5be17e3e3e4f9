package outputters

import (
	"fmt"
	"io"
	"time"

	"github.com/dotcommander/lifeindex/internal/config"
	"github.com/dotcommander/lifeindex/internal/output"
)

// Outputter handles output formatting
type Outputter struct {
	config *config.Config
	w      io.Writer
}

// NewOutputter creates a new Outputter writing to w
func NewOutputter(config *config.Config, w io.Writer) *Outputter {
	return &Outputter{
		config: config,
		w:      w,
	}
}

// formatter creates the formatter for the configured format
func (o *Outputter) formatter() (output.Formatter, error) {
	switch o.config.Format {
	case "console":
		return output.NewConsoleFormatter(o.w, o.config.Quiet, o.config.Verbose), nil
	case "json":
		return output.NewJSONFormatter(o.w, true, o.config.Output), nil
	case "markdown":
		return output.NewMarkdownFormatter(o.w, o.config.Verbose, o.config.Output), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", o.config.Format)
	}
}

// Format formats a single report using the configured format
func (o *Outputter) Format(report *output.Report) error {
	if report.StartTime.IsZero() {
		report.StartTime = time.Now()
	}
	f, err := o.formatter()
	if err != nil {
		return err
	}
	return f.Format(report)
}

// FormatBatch formats a batch report using the configured format
func (o *Outputter) FormatBatch(batch *output.BatchReport) error {
	if batch.StartTime.IsZero() {
		batch.StartTime = time.Now()
	}
	f, err := o.formatter()
	if err != nil {
		return err
	}
	return f.FormatBatch(batch)
}
