package survey

import (
	"errors"
	"fmt"
	"math"
)

// ErrOutOfRange is returned when a raw value falls outside its encoding.
var ErrOutOfRange = errors.New("raw value out of range")

// stepTolerance absorbs float noise when checking step granularity.
const stepTolerance = 1e-9

// Encoding describes how raw answers are written on their native scale.
type Encoding struct {
	Name string
	Max  float64 // minimum is always 0
	Step float64
}

var (
	// Ordinal5 is the discrete 5-point scale, integers 0..4.
	Ordinal5 = Encoding{Name: "ordinal5", Max: 4, Step: 1}

	// Continuous10 is the slider scale, 0..10 in 0.1 steps.
	Continuous10 = Encoding{Name: "continuous10", Max: 10, Step: 0.1}
)

// Midpoint returns the centre of the native scale.
func (e Encoding) Midpoint() float64 {
	return e.Max / 2
}

// Validate checks v against the encoding bounds and step granularity.
func (e Encoding) Validate(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %v is not a finite number", ErrOutOfRange, v)
	}
	if v < 0 || v > e.Max {
		return fmt.Errorf("%w: %v not in [0, %v] for %s", ErrOutOfRange, v, e.Max, e.Name)
	}
	steps := v / e.Step
	if math.Abs(steps-math.Round(steps)) > stepTolerance*math.Max(1, steps) {
		return fmt.Errorf("%w: %v is not a multiple of %v for %s", ErrOutOfRange, v, e.Step, e.Name)
	}
	return nil
}

// Invert flips v so that the native minimum becomes the maximum.
func (e Encoding) Invert(v float64) float64 {
	return e.Max - v
}
