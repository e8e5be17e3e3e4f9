package scoring

import (
	"math"

	"github.com/dotcommander/lifeindex/internal/answers"
	"github.com/dotcommander/lifeindex/internal/survey"
)

// DerivedMax is the top of the derived-score scale.
const DerivedMax = 9

// DerivedEncoding is the native scale of derived scores, integers 0..9.
var DerivedEncoding = survey.Encoding{Name: "derived9", Max: DerivedMax, Step: 1}

// Threshold maps values strictly below Below to Score.
type Threshold struct {
	Below float64
	Score int
}

// BMIThresholds peak at the healthy band and fall away on both sides.
// Order matters: first match wins, evaluated low to high.
var BMIThresholds = []Threshold{
	{17.0, 0},
	{18.5, 2},
	{20.1, 5},
	{23.1, 9},
	{25.1, 7},
	{27.6, 4},
	{30.0, 2},
	{math.Inf(1), 0},
}

// SavingsThresholds map a savings rate in percent to a score.
var SavingsThresholds = []Threshold{
	{0, 0},
	{5, 2},
	{10, 4},
	{15, 6},
	{20, 7},
	{30, 8},
	{math.Inf(1), 9},
}

// ScoreFromThresholds returns the score of the first threshold above v.
func ScoreFromThresholds(v float64, table []Threshold) int {
	for _, th := range table {
		if v < th.Below {
			return th.Score
		}
	}
	return 0
}

// ComputeBMI returns weight / height² with height in centimetres.
// It reports false when height is not positive.
func ComputeBMI(heightCM, weightKG float64) (float64, bool) {
	if heightCM <= 0 {
		return 0, false
	}
	m := heightCM / 100
	return weightKG / (m * m), true
}

// ComputeSavingsRate returns savings as a percentage of salary. It reports
// false when salary is zero.
func ComputeSavingsRate(salary, savings float64) (float64, bool) {
	if salary == 0 {
		return 0, false
	}
	return savings / salary * 100, true
}

// RoundTenth rounds v to one decimal place for display.
func RoundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

// Metric is a derived value and its 0..9 score.
type Metric struct {
	Value float64 `json:"value"`
	Score int     `json:"score"`
}

// Display returns the value rounded to one decimal.
func (m Metric) Display() float64 {
	return RoundTenth(m.Value)
}

// Metrics holds the derived metrics that could be computed.
type Metrics struct {
	BMI         *Metric `json:"bmi,omitempty"`
	SavingsRate *Metric `json:"savings_rate,omitempty"`
}

// DeriveMetrics computes BMI and savings rate from the store's auxiliary
// inputs. Missing or unusable inputs leave the metric nil.
func DeriveMetrics(s *answers.Store) Metrics {
	var out Metrics

	height, hok := s.AuxValue(answers.AuxHeight)
	weight, wok := s.AuxValue(answers.AuxWeight)
	if hok && wok {
		if bmi, ok := ComputeBMI(height, weight); ok {
			out.BMI = &Metric{Value: bmi, Score: ScoreFromThresholds(bmi, BMIThresholds)}
		}
	}

	salary, sok := s.AuxValue(answers.AuxSalary)
	savings, vok := s.AuxValue(answers.AuxSavings)
	if sok && vok {
		if rate, ok := ComputeSavingsRate(salary, savings); ok {
			out.SavingsRate = &Metric{Value: rate, Score: ScoreFromThresholds(rate, SavingsThresholds)}
		}
	}

	return out
}
