package transcoder

import (
	"errors"
	"fmt"

	"github.com/tphakala/go-ulaw-transcoder/internal/filter"
)

// FilterFamily selects the anti-aliasing filter family used when
// downsampling to the telephony rate.
type FilterFamily int

const (
	// FilterSimple is a cascade of single-pole lowpass sections.
	// Cheapest and most forgiving, with the softest knee.
	FilterSimple FilterFamily = iota

	// FilterButterworth is maximally flat in the passband.
	FilterButterworth

	// FilterBessel preserves waveform shape via maximally flat group delay.
	FilterBessel

	// FilterChebyshev gives the steepest roll-off at a given order in
	// exchange for passband ripple. Requires ChebyshevRipple.
	FilterChebyshev
)

// String returns the family name used in CLI help and error messages.
func (f FilterFamily) String() string {
	switch f {
	case FilterSimple:
		return "simple"
	case FilterButterworth:
		return "butterworth"
	case FilterBessel:
		return "bessel"
	case FilterChebyshev:
		return "chebyshev"
	default:
		return "unknown"
	}
}

// Common errors returned by the transcoder.
var (
	// ErrInvalidConfig indicates invalid configuration parameters.
	// It is always reported before any processing begins.
	ErrInvalidConfig = errors.New("invalid transcoder configuration")

	// ErrInvalidFormat indicates input bytes that are not parseable as
	// the container or encoding expected for the selected direction.
	ErrInvalidFormat = errors.New("invalid input format")
)

// Config holds the full parameter set for one transcoding invocation.
// It is constructed once, validated eagerly, and read-only thereafter.
type Config struct {
	// InputRate is the input sample rate in Hz.
	// Zero means detect from the WAV header.
	InputRate int

	// ForceMono downmixes multi-channel input by averaging all channels.
	ForceMono bool

	// LowPassCutoff is the band-limiting lowpass cutoff in Hz.
	// Zero disables the stage.
	LowPassCutoff float64

	// HighPassCutoff is the band-limiting highpass cutoff in Hz.
	// Zero disables the stage.
	HighPassCutoff float64

	// NormalizePeak is the target peak level as a fraction of full
	// scale, in (0, 1].
	NormalizePeak float64

	// CompressionRatio is the dynamic range compression ratio.
	// 1.0 means no compression.
	CompressionRatio float64

	// CompressionThreshold is the level above which compression applies,
	// as a fraction of full scale in [0, 1].
	CompressionThreshold float64

	// WindowSize is the sinc kernel half-width of the resampler in taps.
	WindowSize int

	// AntiAliasingRatio positions the anti-aliasing cutoff relative to
	// the target Nyquist frequency, in (0, 1].
	AntiAliasingRatio float64

	// AntiAliasingType selects the anti-aliasing filter family.
	AntiAliasingType FilterFamily

	// FilterOrder is the anti-aliasing filter order.
	// Must be even and within [2, 6].
	FilterOrder int

	// ChebyshevRipple is the passband ripple in dB.
	// Required for FilterChebyshev and rejected for every other family.
	ChebyshevRipple float64
}

// DefaultConfig returns the default transcoding parameters, tuned for
// TTS-style speech destined for telephony playback.
func DefaultConfig() *Config {
	return &Config{
		InputRate:            0, // detect from WAV header
		ForceMono:            true,
		LowPassCutoff:        defaultLowPassHz,
		HighPassCutoff:       defaultHighPassHz,
		NormalizePeak:        defaultNormalizePeak,
		CompressionRatio:     defaultCompressionRatio,
		CompressionThreshold: defaultCompressionThreshold,
		WindowSize:           defaultWindowSize,
		AntiAliasingRatio:    defaultAntiAliasingRatio,
		AntiAliasingType:     FilterButterworth,
		FilterOrder:          defaultFilterOrder,
		ChebyshevRipple:      0,
	}
}

// Validate checks the configuration eagerly, before any processing begins.
func (c *Config) Validate() error {
	if c.InputRate < 0 {
		return fmt.Errorf("%w: input rate must be non-negative, got %d", ErrInvalidConfig, c.InputRate)
	}

	if c.LowPassCutoff < 0 {
		return fmt.Errorf("%w: low-pass cutoff must be non-negative, got %v", ErrInvalidConfig, c.LowPassCutoff)
	}

	if c.HighPassCutoff < 0 {
		return fmt.Errorf("%w: high-pass cutoff must be non-negative, got %v", ErrInvalidConfig, c.HighPassCutoff)
	}

	if c.NormalizePeak <= 0 || c.NormalizePeak > 1 {
		return fmt.Errorf("%w: normalize peak must be in (0, 1], got %v", ErrInvalidConfig, c.NormalizePeak)
	}

	if c.CompressionRatio < 1 {
		return fmt.Errorf("%w: compression ratio must be >= 1.0, got %v", ErrInvalidConfig, c.CompressionRatio)
	}

	if c.CompressionThreshold < 0 || c.CompressionThreshold > 1 {
		return fmt.Errorf("%w: compression threshold must be in [0, 1], got %v", ErrInvalidConfig, c.CompressionThreshold)
	}

	if c.WindowSize < minWindowSize {
		return fmt.Errorf("%w: window size must be at least %d, got %d", ErrInvalidConfig, minWindowSize, c.WindowSize)
	}

	if c.AntiAliasingRatio <= 0 || c.AntiAliasingRatio > 1 {
		return fmt.Errorf("%w: anti-aliasing ratio must be in (0, 1], got %v", ErrInvalidConfig, c.AntiAliasingRatio)
	}

	if c.AntiAliasingType < FilterSimple || c.AntiAliasingType > FilterChebyshev {
		return fmt.Errorf("%w: unknown anti-aliasing type %d", ErrInvalidConfig, int(c.AntiAliasingType))
	}

	if c.FilterOrder < filter.MinOrder || c.FilterOrder > filter.MaxOrder || c.FilterOrder%2 != 0 {
		return fmt.Errorf("%w: filter order must be even and within [%d, %d], got %d",
			ErrInvalidConfig, filter.MinOrder, filter.MaxOrder, c.FilterOrder)
	}

	if c.AntiAliasingType == FilterChebyshev {
		if c.ChebyshevRipple <= 0 {
			return fmt.Errorf("%w: chebyshev anti-aliasing requires a positive ripple", ErrInvalidConfig)
		}
	} else if c.ChebyshevRipple != 0 {
		// A ripple supplied alongside a non-Chebyshev family is an
		// inconsistent request, rejected rather than silently ignored.
		return fmt.Errorf("%w: chebyshev ripple supplied for %s anti-aliasing", ErrInvalidConfig, c.AntiAliasingType)
	}

	return nil
}

// family maps the public enum onto the filter package's family type.
func (f FilterFamily) family() filter.Family {
	switch f {
	case FilterButterworth:
		return filter.FamilyButterworth
	case FilterBessel:
		return filter.FamilyBessel
	case FilterChebyshev:
		return filter.FamilyChebyshev1
	default:
		return filter.FamilySimple
	}
}
