// Package resample performs sample-rate conversion using windowed-sinc
// interpolation. Downsampling gates the kernel with an anti-aliasing cutoff
// and may additionally be shaped by an IIR filter from the filter package;
// upsampling uses the plain windowed sinc, since no aliasing can occur.
package resample

import (
	"math"

	"github.com/tphakala/simd/f64"

	"github.com/tphakala/go-ulaw-transcoder/internal/filter"
)

// MinWindowSize is the smallest usable window half-width in taps. Any value
// at or above this produces a valid, audibly continuous result; larger
// windows trade CPU for reduced ringing and aliasing.
const MinWindowSize = 2

// Blackman window coefficients.
const (
	blackmanA0 = 0.42
	blackmanA1 = 0.5
	blackmanA2 = 0.08
)

// Options control the quality/speed trade-offs of one conversion.
type Options struct {
	// WindowSize is the sinc kernel half-width in input samples.
	WindowSize int

	// CutoffRatio positions the anti-aliasing cutoff relative to the
	// Nyquist frequency of the lower of the two rates. Only consulted
	// when downsampling.
	CutoffRatio float64

	// AntiAlias optionally shapes the stop band with an IIR lowpass
	// designed from this spec before the sinc stage. Nil selects the
	// plain windowed sinc. Ignored when upsampling.
	AntiAlias *filter.Spec
}

// blackmanWindow precomputes a Blackman window of 2·windowSize+1 taps.
func blackmanWindow(windowSize int) []float64 {
	window := make([]float64, windowSize*2+1)
	for i := range window {
		x := float64(i) / float64(len(window)-1)
		window[i] = blackmanA0 - blackmanA1*math.Cos(2*math.Pi*x) + blackmanA2*math.Cos(4*math.Pi*x)
	}
	return window
}

// Resample converts input from inRate to outRate. The input slice is not
// modified; a new output slice of length ⌊len(input)·outRate/inRate⌋ is
// returned.
func Resample(input []float64, inRate, outRate float64, opts Options) ([]float64, error) {
	ratio := outRate / inRate
	// Round rather than truncate: one second of input must map to exactly
	// one second of output even when the ratio is not exactly
	// representable in binary.
	outputLen := int(math.Round(float64(len(input)) * ratio))
	output := make([]float64, outputLen)
	if outputLen == 0 {
		return output, nil
	}

	windowSize := opts.WindowSize
	if windowSize < MinWindowSize {
		windowSize = MinWindowSize
	}

	// The kernel cutoff gates the sinc at the anti-aliasing frequency when
	// reducing the rate. Upsampling keeps the full input band.
	cutoff := 1.0
	downsampling := ratio < 1.0
	if downsampling && opts.CutoffRatio > 0 {
		cutoff = ratio * opts.CutoffRatio
	}

	// Optional IIR shaping for steeper stop-band rejection.
	if downsampling && opts.AntiAlias != nil {
		shaped, err := shapeInput(input, *opts.AntiAlias)
		if err != nil {
			return nil, err
		}
		input = shaped
	}

	window := blackmanWindow(windowSize)
	sinc := getSincTable(windowSize)

	// Scratch buffers reused across output samples so the inner loop is a
	// pair of SIMD reductions over contiguous memory.
	weights := make([]float64, windowSize*2+1)

	for i := range output {
		pos := float64(i) / ratio
		center := int(pos)

		start := center - windowSize
		if start < 0 {
			start = 0
		}
		end := center + windowSize
		if end > len(input)-1 {
			end = len(input) - 1
		}

		n := end - start + 1
		w := weights[:n]
		for k := range w {
			inputIdx := start + k
			x := math.Pi * cutoff * (pos - float64(inputIdx))
			w[k] = window[inputIdx-center+windowSize] * sinc.lookup(x)
		}

		sum := f64.DotProduct(input[start:end+1], w)
		weightSum := f64.Sum(w)
		if weightSum != 0 {
			sum /= weightSum
		}
		output[i] = sum
	}

	return output, nil
}

// shapeInput runs the input through a freshly designed lowpass chain,
// leaving the caller's slice untouched.
func shapeInput(input []float64, spec filter.Spec) ([]float64, error) {
	chain, err := filter.LowPass(spec)
	if err != nil {
		return nil, err
	}

	shaped := make([]float64, len(input))
	copy(shaped, input)
	chain.Process(shaped, chain.NewState())
	return shaped, nil
}
