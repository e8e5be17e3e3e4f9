package output

import (
	"time"

	"github.com/dotcommander/lifeindex/internal/answers"
	"github.com/dotcommander/lifeindex/internal/baseline"
	"github.com/dotcommander/lifeindex/internal/scoring"
)

// Report is everything a formatter needs to present one scored snapshot
type Report struct {
	Source     string
	Result     *scoring.Result // nil when there was nothing to score
	Rejections []answers.Rejection
	Comparison *baseline.Comparison
	StartTime  time.Time
}

// NoData reports whether the snapshot produced no score
func (r *Report) NoData() bool {
	return r.Result == nil
}

// BatchReport collects the reports of a batch run
type BatchReport struct {
	Root      string
	Pattern   string
	Entries   []Report
	Failures  []Failure
	StartTime time.Time
}

// Failure is a snapshot that could not be read or scored
type Failure struct {
	Source  string `json:"source"`
	Message string `json:"message"`
}

// Scored returns the number of entries that produced a score
func (b *BatchReport) Scored() int {
	n := 0
	for i := range b.Entries {
		if !b.Entries[i].NoData() {
			n++
		}
	}
	return n
}

// Formatter presents reports in one output format
type Formatter interface {
	Format(report *Report) error
	FormatBatch(batch *BatchReport) error
}

const noDataMessage = "No data: answer at least one question to get a score"
