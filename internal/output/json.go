package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dotcommander/lifeindex/internal/baseline"
	"github.com/dotcommander/lifeindex/internal/scoring"
)

// Version is reported in machine-readable output headers
const Version = "1.0.0"

// JSONFormatter formats output as JSON
type JSONFormatter struct {
	w          io.Writer
	indent     bool
	outputFile string
}

// NewJSONFormatter creates a new JSONFormatter
func NewJSONFormatter(w io.Writer, indent bool, outputFile string) *JSONFormatter {
	return &JSONFormatter{
		w:          w,
		indent:     indent,
		outputFile: outputFile,
	}
}

// JSONHeader contains report metadata
type JSONHeader struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}

// JSONResult is one scored snapshot
type JSONResult struct {
	Source     string               `json:"source,omitempty"`
	NoData     bool                 `json:"no_data"`
	Message    string               `json:"message,omitempty"`
	Result     *scoring.Result      `json:"result,omitempty"`
	Rejected   []JSONRejection      `json:"rejected,omitempty"`
	Comparison *baseline.Comparison `json:"baseline,omitempty"`
}

// JSONRejection is a snapshot answer that was skipped
type JSONRejection struct {
	ID      string `json:"id"`
	Raw     string `json:"raw"`
	Message string `json:"message"`
}

// JSONReport represents a single-snapshot report
type JSONReport struct {
	Header JSONHeader `json:"header"`
	JSONResult
}

// JSONBatchReport represents a batch report
type JSONBatchReport struct {
	Header   JSONHeader   `json:"header"`
	Root     string       `json:"root"`
	Pattern  string       `json:"pattern"`
	Duration string       `json:"duration"`
	Results  []JSONResult `json:"results"`
	Failures []Failure    `json:"failures,omitempty"`
}

func newHeader() JSONHeader {
	return JSONHeader{
		Tool:      "lifeindex",
		Version:   Version,
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

func toJSONResult(r *Report) JSONResult {
	out := JSONResult{
		Source:     r.Source,
		NoData:     r.NoData(),
		Result:     r.Result,
		Comparison: r.Comparison,
	}
	if out.NoData {
		out.Message = noDataMessage
	}
	for _, rej := range r.Rejections {
		out.Rejected = append(out.Rejected, JSONRejection{ID: rej.ID, Raw: rej.Raw, Message: rej.Err.Error()})
	}
	return out
}

// Format formats a single report as JSON
func (f *JSONFormatter) Format(report *Report) error {
	return f.write(JSONReport{
		Header:     newHeader(),
		JSONResult: toJSONResult(report),
	})
}

// FormatBatch formats a batch report as JSON
func (f *JSONFormatter) FormatBatch(batch *BatchReport) error {
	out := JSONBatchReport{
		Header:   newHeader(),
		Root:     batch.Root,
		Pattern:  batch.Pattern,
		Duration: time.Since(batch.StartTime).Round(time.Millisecond).String(),
		Results:  make([]JSONResult, len(batch.Entries)),
		Failures: batch.Failures,
	}
	for i := range batch.Entries {
		out.Results[i] = toJSONResult(&batch.Entries[i])
	}
	return f.write(out)
}

func (f *JSONFormatter) write(v any) error {
	var jsonBytes []byte
	var err error

	if f.indent {
		jsonBytes, err = json.MarshalIndent(v, "", "  ")
	} else {
		jsonBytes, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("error marshaling JSON: %w", err)
	}

	if f.outputFile != "" {
		if err := os.WriteFile(f.outputFile, jsonBytes, 0644); err != nil {
			return fmt.Errorf("error writing to file %s: %w", f.outputFile, err)
		}
		return nil
	}

	_, err = fmt.Fprintln(f.w, string(jsonBytes))
	return err
}
