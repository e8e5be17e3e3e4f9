package scoring

import (
	"math"

	"github.com/dotcommander/lifeindex/internal/survey"
)

// QualityMax is the top of the common quality axis.
const QualityMax = 10.0

// Population parameters assumed by the statistical policy.
const (
	PopulationMean   = 5.0
	PopulationStdDev = 2.0
)

// Compressed-range bounds used with the geometric mean.
const (
	CompressedFloor = 0.1
	CompressedSpan  = 0.8
)

// Scale maps raw on the encoding's native range to [0,10]. When inverted is
// set the raw value is flipped first so that the native minimum becomes the
// best outcome.
func Scale(raw float64, enc survey.Encoding, inverted bool) float64 {
	if inverted {
		raw = enc.Invert(raw)
	}
	return raw / enc.Max * QualityMax
}

// Compress maps a scaled value into [0.1, 0.9] so no item can reach 0 or 1.
func Compress(scaled float64) float64 {
	return CompressedFloor + (scaled/QualityMax)*CompressedSpan
}

// ZScore standardises a scaled value against the assumed population.
func ZScore(scaled float64) float64 {
	return (scaled - PopulationMean) / PopulationStdDev
}

// Percentile returns the cumulative probability of a scaled value.
func Percentile(scaled float64) float64 {
	return NormalCDF(ZScore(scaled))
}

// NormalCDF approximates the standard normal CDF with the Zelen-Severo
// polynomial (Abramowitz & Stegun 26.2.17). Absolute error is below 7.5e-8.
func NormalCDF(z float64) float64 {
	t := 1 / (1 + 0.2316419*math.Abs(z))
	d := 0.3989423 * math.Exp(-z*z/2)
	p := d * t * (0.3193815 + t*(-0.3565638+t*(1.781478+t*(-1.821256+t*1.330274))))
	if z >= 0 {
		return 1 - p
	}
	return p
}
