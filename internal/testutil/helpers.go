// Package testutil provides reusable helpers for transcoder tests:
// deterministic test-signal generators and common slice assertions.
package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Default tolerances for various test scenarios.
const (
	DefaultTolerance   = 1e-10
	MagnitudeTolerance = 1e-2
	DBTolerance        = 0.01
)

// Sine generates numSamples of a sine wave at freq Hz and the given
// amplitude, sampled at sampleRate.
func Sine(freq, sampleRate, amplitude float64, numSamples int) []float64 {
	signal := make([]float64, numSamples)
	for i := range signal {
		signal[i] = amplitude * math.Sin(2*math.Pi*freq*float64(i)/sampleRate)
	}
	return signal
}

// SineInt16 generates a 16-bit PCM sine wave. Amplitude is a fraction of
// full scale in (0, 1].
func SineInt16(freq, sampleRate, amplitude float64, numSamples int) []int16 {
	signal := make([]int16, numSamples)
	for i := range signal {
		v := amplitude * math.Sin(2*math.Pi*freq*float64(i)/sampleRate) * 32767.0
		signal[i] = int16(math.Round(v))
	}
	return signal
}

// Multitone sums equal-amplitude sines at the given frequencies, scaled so
// the result stays within [-1, 1].
func Multitone(freqs []float64, sampleRate float64, numSamples int) []float64 {
	signal := make([]float64, numSamples)
	if len(freqs) == 0 {
		return signal
	}

	amplitude := 1.0 / float64(len(freqs))
	for _, freq := range freqs {
		for i := range signal {
			signal[i] += amplitude * math.Sin(2*math.Pi*freq*float64(i)/sampleRate)
		}
	}
	return signal
}

// AssertNoNaNOrInf verifies that no elements in the slice are NaN or Inf.
func AssertNoNaNOrInf(t *testing.T, s []float64) bool {
	t.Helper()
	for i, v := range s {
		if math.IsNaN(v) {
			return assert.Fail(t, "found NaN", "s[%d] is NaN", i)
		}
		if math.IsInf(v, 0) {
			return assert.Fail(t, "found Inf", "s[%d] is Inf", i)
		}
	}
	return true
}

// AssertAllInRange verifies that all elements are within [minVal, maxVal].
func AssertAllInRange(t *testing.T, s []float64, minVal, maxVal float64) bool {
	t.Helper()
	for i, v := range s {
		if v < minVal || v > maxVal {
			return assert.Fail(t, "value out of range",
				"s[%d]=%f is outside range [%f, %f]", i, v, minVal, maxVal)
		}
	}
	return true
}

// AssertRelativeError verifies that the relative error between actual and
// expected is within tolerance.
func AssertRelativeError(t *testing.T, expected, actual, tolerance float64) bool {
	t.Helper()
	if expected == 0 {
		return assert.InDelta(t, expected, actual, tolerance)
	}
	relError := math.Abs(actual-expected) / math.Abs(expected)
	return assert.LessOrEqual(t, relError, tolerance,
		"relative error %e exceeds tolerance %e (expected=%f, actual=%f)",
		relError, tolerance, expected, actual)
}
