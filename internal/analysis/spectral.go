// Package analysis provides spectral measurements used to verify pipeline
// output: dominant-frequency detection, RMS level, and FFT-based magnitude
// response of filter impulse responses.
package analysis

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
)

// SpectralPeak returns the frequency in Hz of the strongest component of
// signal at the given sample rate. The signal is Hann-windowed before the
// transform to suppress leakage from non-integer cycle counts.
func SpectralPeak(signal []float64, sampleRate float64) float64 {
	n := len(signal)
	if n < 2 {
		return 0
	}

	windowed := make([]float64, n)
	for i, s := range signal {
		w := 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n-1))
		windowed[i] = s * w
	}

	fft := fourier.NewFFT(n)
	coeffs := fft.Coefficients(nil, windowed)

	peakBin := 0
	peakMag := 0.0
	// Skip the DC bin; a band-limited telephony signal has no meaningful
	// DC component and residual offset would mask the real peak.
	for i := 1; i < len(coeffs); i++ {
		if mag := cmplxAbs(coeffs[i]); mag > peakMag {
			peakMag = mag
			peakBin = i
		}
	}

	return fft.Freq(peakBin) * sampleRate
}

// RMS returns the root-mean-square level of the signal.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	var sum float64
	for _, s := range signal {
		sum += s * s
	}
	return math.Sqrt(sum / float64(len(signal)))
}

// RMSError returns the RMS of the pointwise difference of two equal-length
// signals.
func RMSError(a, b []float64) float64 {
	n := min(len(a), len(b))
	if n == 0 {
		return 0
	}

	var sum float64
	for i := range n {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum / float64(n))
}

// Peak returns the peak absolute amplitude of the signal.
func Peak(signal []float64) float64 {
	peak := 0.0
	for _, s := range signal {
		if a := math.Abs(s); a > peak {
			peak = a
		}
	}
	return peak
}

// MeasuredResponse computes the magnitude response of an impulse response by
// zero-padding it to fftSize and transforming. It returns the magnitudes of
// the positive-frequency bins.
func MeasuredResponse(impulse []float64, fftSize int) []float64 {
	if fftSize < len(impulse) {
		fftSize = len(impulse)
	}

	padded := make([]float64, fftSize)
	copy(padded, impulse)

	fft := fourier.NewFFT(fftSize)
	coeffs := fft.Coefficients(nil, padded)

	mags := make([]float64, len(coeffs))
	for i, c := range coeffs {
		mags[i] = cmplxAbs(c)
	}
	return mags
}

func cmplxAbs(c complex128) float64 {
	return math.Hypot(real(c), imag(c))
}
