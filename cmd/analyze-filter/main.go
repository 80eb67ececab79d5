// Command analyze-filter prints the designed coefficient cascade and
// frequency response of an anti-aliasing filter family, comparing the
// analytic transfer function against an FFT measurement of the impulse
// response. Useful when tuning family/order/ripple choices for a new
// signal path.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"

	"github.com/tphakala/go-ulaw-transcoder/internal/analysis"
	"github.com/tphakala/go-ulaw-transcoder/internal/filter"
)

const (
	// Impulse response length and FFT size for the measured response.
	impulseLength = 4096
	fftSize       = 4096

	// Frequencies of interest for a telephony anti-aliasing filter.
	sweepPoints = 9

	minDB = -120.0
)

func main() {
	family := flag.Int("family", int(filter.FamilyButterworth), "Filter family (0=Simple, 1=Butterworth, 2=Bessel, 3=Chebyshev)")
	order := flag.Int("order", 4, "Filter order (2, 4 or 6)")
	cutoff := flag.Float64("cutoff", 3800, "Cutoff frequency in Hz")
	rate := flag.Float64("rate", 44100, "Sample rate in Hz")
	ripple := flag.Float64("ripple", 0, "Chebyshev passband ripple in dB")
	flag.Parse()

	spec := filter.Spec{
		Family:     filter.Family(*family),
		Cutoff:     *cutoff,
		SampleRate: *rate,
		Order:      *order,
		RippleDB:   *ripple,
	}

	chain, err := filter.LowPass(spec)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("=== %s lowpass, order %d, cutoff %.0f Hz @ %.0f Hz ===\n",
		spec.Family, spec.Order, spec.Cutoff, spec.SampleRate)
	fmt.Printf("Sections: %d, gain: %.6f\n\n", len(chain.Sections), chain.Gain)

	for i, sec := range chain.Sections {
		fmt.Printf("  SOS %d: b = [%+.8f %+.8f %+.8f]  a = [1 %+.8f %+.8f]\n",
			i, sec.B0, sec.B1, sec.B2, sec.A1, sec.A2)
	}

	// Measure the realized response by filtering a unit impulse and
	// transforming it; divergence from the analytic sweep points at a
	// coefficient or stability problem.
	impulse := make([]float64, impulseLength)
	impulse[0] = 1.0
	chain.Process(impulse, chain.NewState())
	measured := analysis.MeasuredResponse(impulse, fftSize)

	fmt.Printf("\n%12s %14s %14s\n", "freq (Hz)", "analytic (dB)", "measured (dB)")
	nyquist := spec.SampleRate / 2
	for i := range sweepPoints {
		freq := spec.Cutoff * math.Pow(2, float64(i-sweepPoints/2))
		if freq >= nyquist {
			break
		}

		analytic := toDB(chain.MagnitudeAt(freq, spec.SampleRate))
		bin := int(freq / spec.SampleRate * fftSize)
		fmt.Printf("%12.1f %14.2f %14.2f\n", freq, analytic, toDB(measured[bin]))
	}

	peak := analysis.Peak(impulse)
	rms := analysis.RMS(impulse)
	fmt.Printf("\nImpulse response: peak %.6f, RMS %.6f\n", peak, rms)
}

func toDB(mag float64) float64 {
	if mag <= 0 {
		return minDB
	}
	db := 20 * math.Log10(mag)
	if db < minDB {
		return minDB
	}
	return db
}
