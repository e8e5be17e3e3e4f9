package scoring

import (
	"errors"
	"fmt"
	"math"

	"github.com/dotcommander/lifeindex/internal/survey"
)

// ErrNoData is returned when there is nothing to aggregate.
var ErrNoData = errors.New("no data: answer at least one question to get a score")

// Aggregator pairs a normalization policy with the law that combines the
// resulting quality values.
type Aggregator interface {
	Law() survey.Law
	// Quality maps a scaled 0..10 value onto the law's quality axis.
	Quality(scaled float64) float64
	// Aggregate combines quality values into a 0..10 score.
	Aggregate(qualities []float64) (float64, error)
}

// NewAggregator returns the aggregator for law.
func NewAggregator(law survey.Law) (Aggregator, error) {
	switch law {
	case survey.LawGeometric:
		return GeometricMean{}, nil
	case survey.LawStatistical:
		return StatisticalMean{}, nil
	default:
		return nil, fmt.Errorf("unknown aggregation law %q", law)
	}
}

// GeometricMean combines compressed-range qualities in [0.1, 0.9] as
// (∏ q)^(1/N) × 10.
type GeometricMean struct{}

func (GeometricMean) Law() survey.Law { return survey.LawGeometric }

func (GeometricMean) Quality(scaled float64) float64 {
	return Compress(scaled)
}

func (GeometricMean) Aggregate(qualities []float64) (float64, error) {
	if len(qualities) == 0 {
		return 0, ErrNoData
	}
	product := 1.0
	for _, q := range qualities {
		product *= q
	}
	return math.Pow(product, 1/float64(len(qualities))) * QualityMax, nil
}

// StatisticalMean converts each scaled value to its population percentile
// (×10) and averages them.
type StatisticalMean struct{}

func (StatisticalMean) Law() survey.Law { return survey.LawStatistical }

func (StatisticalMean) Quality(scaled float64) float64 {
	return Percentile(scaled) * QualityMax
}

func (StatisticalMean) Aggregate(qualities []float64) (float64, error) {
	if len(qualities) == 0 {
		return 0, ErrNoData
	}
	var sum float64
	for _, q := range qualities {
		sum += q
	}
	return sum / float64(len(qualities)), nil
}
