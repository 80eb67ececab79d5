package filter

import (
	"math"
	"math/cmplx"
)

// defaultResponsePoints is the default resolution of a frequency sweep.
const defaultResponsePoints = 512

// Response holds the magnitude response of a chain over a frequency sweep.
type Response struct {
	// Frequencies in Hz, linearly spaced from 0 to Nyquist.
	Frequencies []float64

	// Magnitude is the linear gain at each frequency.
	Magnitude []float64
}

// MagnitudeAt evaluates the chain's gain at a single frequency by evaluating
// each section's transfer function on the unit circle.
func (c *Chain) MagnitudeAt(freq, sampleRate float64) float64 {
	w := 2 * math.Pi * freq / sampleRate
	z := cmplx.Exp(complex(0, -w))
	z2 := z * z

	h := complex(c.Gain, 0)
	for _, sec := range c.Sections {
		num := complex(sec.B0, 0) + complex(sec.B1, 0)*z + complex(sec.B2, 0)*z2
		den := complex(1, 0) + complex(sec.A1, 0)*z + complex(sec.A2, 0)*z2
		h *= num / den
	}
	return cmplx.Abs(h)
}

// ComputeResponse sweeps the chain's magnitude response from DC to Nyquist.
// Fewer than two points selects the default resolution.
func (c *Chain) ComputeResponse(sampleRate float64, numPoints int) Response {
	if numPoints < 2 {
		numPoints = defaultResponsePoints
	}

	r := Response{
		Frequencies: make([]float64, numPoints),
		Magnitude:   make([]float64, numPoints),
	}

	nyquist := sampleRate / 2
	for i := range numPoints {
		f := nyquist * float64(i) / float64(numPoints-1)
		r.Frequencies[i] = f
		r.Magnitude[i] = c.MagnitudeAt(f, sampleRate)
	}
	return r
}
