package filter

import (
	"errors"
	"fmt"
	"math"
)

// Family enumerates the supported anti-aliasing / band-limiting filter
// families. The family is dispatched once at design time; the resulting Chain
// is a plain coefficient cascade with no per-sample dispatch.
type Family int

const (
	// FamilySimple is a cascade of single-pole RC-equivalent sections.
	// Cheapest to design and apply, softest knee.
	FamilySimple Family = iota

	// FamilyButterworth is maximally flat in the passband.
	FamilyButterworth

	// FamilyBessel has maximally flat group delay, preserving waveform
	// shape at the cost of a slower magnitude roll-off.
	FamilyBessel

	// FamilyChebyshev1 trades passband ripple for the steepest roll-off
	// at a given order. It is the only family that consumes a ripple value.
	FamilyChebyshev1
)

// String returns the family name for logs and error messages.
func (f Family) String() string {
	switch f {
	case FamilySimple:
		return "simple"
	case FamilyButterworth:
		return "butterworth"
	case FamilyBessel:
		return "bessel"
	case FamilyChebyshev1:
		return "chebyshev"
	default:
		return "unknown"
	}
}

// Valid reports whether f is a known family.
func (f Family) Valid() bool {
	return f >= FamilySimple && f <= FamilyChebyshev1
}

// Spec describes one filter to design. It is immutable once constructed.
type Spec struct {
	// Family selects the pole-placement strategy.
	Family Family

	// Cutoff is the -3 dB (Simple, Butterworth, Bessel) or ripple-band
	// edge (Chebyshev) frequency in Hz.
	Cutoff float64

	// SampleRate is the working sample rate in Hz.
	SampleRate float64

	// Order is the filter order. Must be even and within [2, 6];
	// the cascade uses Order/2 second-order sections.
	Order int

	// RippleDB is the Chebyshev passband ripple in dB.
	// Required for FamilyChebyshev1, rejected for every other family.
	RippleDB float64
}

// ErrInvalidSpec indicates an unusable filter specification.
var ErrInvalidSpec = errors.New("invalid filter specification")

// Filter design limits.
const (
	// MinOrder and MaxOrder bound the supported cascade orders.
	MinOrder = 2
	MaxOrder = 6

	// maxNormalizedFreq caps section center frequencies below Nyquist to
	// keep the bilinear mapping well conditioned. Bessel sections place
	// poles above the nominal cutoff, so a spec near Nyquist could
	// otherwise fold over.
	maxNormalizedFreq = 0.499

	// rippleMin and rippleMax bound the accepted Chebyshev ripple.
	rippleMin = 0.01
	rippleMax = 6.0

	dbPerDecade  = 10.0
	dbPerVoltage = 20.0
)

// Validate checks the specification eagerly, before any coefficients are
// computed.
func (s *Spec) Validate() error {
	if !s.Family.Valid() {
		return fmt.Errorf("%w: unknown family %d", ErrInvalidSpec, int(s.Family))
	}

	if s.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate must be positive, got %v", ErrInvalidSpec, s.SampleRate)
	}

	if s.Cutoff <= 0 || s.Cutoff >= s.SampleRate/2 {
		return fmt.Errorf("%w: cutoff %v Hz outside (0, %v)", ErrInvalidSpec, s.Cutoff, s.SampleRate/2)
	}

	if s.Order < MinOrder || s.Order > MaxOrder || s.Order%2 != 0 {
		return fmt.Errorf("%w: order must be even and within [%d, %d], got %d",
			ErrInvalidSpec, MinOrder, MaxOrder, s.Order)
	}

	if s.Family == FamilyChebyshev1 {
		if s.RippleDB < rippleMin || s.RippleDB > rippleMax {
			return fmt.Errorf("%w: chebyshev ripple must be within [%v, %v] dB, got %v",
				ErrInvalidSpec, rippleMin, rippleMax, s.RippleDB)
		}
	} else if s.RippleDB != 0 {
		return fmt.Errorf("%w: ripple is only valid for the chebyshev family", ErrInvalidSpec)
	}

	return nil
}

// protoSection is one second-order section of the analog lowpass prototype,
// expressed as a center-frequency multiplier relative to the cutoff and a
// quality factor.
type protoSection struct {
	freqMult float64
	q        float64
}

// besselSections holds published normalized (f0, Q) section data for the
// Bessel lowpass prototype, normalized to the -3 dB frequency.
// Values per the standard filter-design tables (Williams & Taylor,
// "Electronic Filter Design Handbook").
var besselSections = map[int][]protoSection{
	2: {{1.2723, 0.5773}},
	4: {{1.4192, 0.5219}, {1.5912, 0.8055}},
	6: {{1.6060, 0.5103}, {1.6913, 0.6112}, {1.9071, 1.0234}},
}

// butterworthSections computes the (f0, Q) pairs for a Butterworth cascade
// from the standard unit-circle pole placement: all sections sit at the
// cutoff with Q_k = 1 / (2 sin((2k+1)π/2N)).
func butterworthSections(order int) []protoSection {
	n := order / 2
	sections := make([]protoSection, n)
	for k := range n {
		angle := float64(2*k+1) * math.Pi / float64(2*order)
		sections[k] = protoSection{freqMult: 1.0, q: 1.0 / (2.0 * math.Sin(angle))}
	}
	return sections
}

// chebyshevSections computes Chebyshev Type I prototype sections from the
// closed-form pole locations on the ripple ellipse:
//
//	s_k = -sinh(μ)·sin(θ_k) + j·cosh(μ)·cos(θ_k)
//
// with μ = asinh(1/ε)/N and ε derived from the ripple. Frequencies are
// normalized to the ripple-band edge.
func chebyshevSections(order int, rippleDB float64) []protoSection {
	epsilon := math.Sqrt(math.Pow(10, rippleDB/dbPerDecade) - 1)
	mu := math.Asinh(1/epsilon) / float64(order)
	sinhMu := math.Sinh(mu)
	coshMu := math.Cosh(mu)

	n := order / 2
	sections := make([]protoSection, n)
	for k := range n {
		theta := float64(2*k+1) * math.Pi / float64(2*order)
		re := sinhMu * math.Sin(theta)
		im := coshMu * math.Cos(theta)
		omega := math.Hypot(re, im)
		sections[k] = protoSection{freqMult: omega, q: omega / (2 * re)}
	}
	return sections
}

// prototype returns the analog prototype sections for the spec.
func prototype(s Spec) []protoSection {
	switch s.Family {
	case FamilyButterworth:
		return butterworthSections(s.Order)
	case FamilyBessel:
		return besselSections[s.Order]
	case FamilyChebyshev1:
		return chebyshevSections(s.Order, s.RippleDB)
	default:
		return nil
	}
}

// passbandGain returns the overall chain gain that keeps the passband peak at
// unity. Even-order Chebyshev sections built with unity DC gain ripple up to
// +RippleDB, so the cascade is scaled back down; every other family is
// already flat.
func passbandGain(s Spec) float64 {
	if s.Family == FamilyChebyshev1 {
		return math.Pow(10, -s.RippleDB/dbPerVoltage)
	}
	return 1.0
}

// lowPassBiquad builds one digital lowpass section at center frequency f0
// and quality q using the bilinear biquad formulas (Bristow-Johnson,
// "Cookbook formulae for audio EQ biquad filter coefficients").
func lowPassBiquad(f0, sampleRate, q float64) Biquad {
	w0 := 2 * math.Pi * clampFreq(f0, sampleRate) / sampleRate
	cosw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)

	a0 := 1 + alpha
	return Biquad{
		B0: (1 - cosw) / 2 / a0,
		B1: (1 - cosw) / a0,
		B2: (1 - cosw) / 2 / a0,
		A1: -2 * cosw / a0,
		A2: (1 - alpha) / a0,
	}
}

// highPassBiquad is the highpass counterpart of lowPassBiquad.
func highPassBiquad(f0, sampleRate, q float64) Biquad {
	w0 := 2 * math.Pi * clampFreq(f0, sampleRate) / sampleRate
	cosw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)

	a0 := 1 + alpha
	return Biquad{
		B0: (1 + cosw) / 2 / a0,
		B1: -(1 + cosw) / a0,
		B2: (1 + cosw) / 2 / a0,
		A1: -2 * cosw / a0,
		A2: (1 - alpha) / a0,
	}
}

// simpleLowPassSection builds a single-pole RC-equivalent lowpass as a
// degenerate biquad: y[n] = y[n-1] + α(x[n] − y[n-1]).
func simpleLowPassSection(cutoff, sampleRate float64) Biquad {
	wc := 2 * math.Pi * clampFreq(cutoff, sampleRate)
	alpha := wc / (wc + sampleRate)
	return Biquad{B0: alpha, A1: -(1 - alpha)}
}

// simpleHighPassSection builds a single-pole RC-equivalent highpass:
// y[n] = α(y[n-1] + x[n] − x[n-1]).
func simpleHighPassSection(cutoff, sampleRate float64) Biquad {
	wc := 2 * math.Pi * clampFreq(cutoff, sampleRate)
	alpha := sampleRate / (sampleRate + wc)
	return Biquad{B0: alpha, B1: -alpha, A1: -alpha}
}

func clampFreq(f, sampleRate float64) float64 {
	limit := maxNormalizedFreq * sampleRate
	if f > limit {
		return limit
	}
	return f
}

// LowPass designs a lowpass Chain for the spec.
func LowPass(s Spec) (*Chain, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	n := s.Order / 2
	chain := &Chain{Sections: make([]Biquad, 0, n), Gain: passbandGain(s)}

	if s.Family == FamilySimple {
		for range n {
			chain.Sections = append(chain.Sections, simpleLowPassSection(s.Cutoff, s.SampleRate))
		}
		return chain, nil
	}

	for _, sec := range prototype(s) {
		chain.Sections = append(chain.Sections,
			lowPassBiquad(s.Cutoff*sec.freqMult, s.SampleRate, sec.q))
	}
	return chain, nil
}

// HighPass designs a highpass Chain for the spec. The analog prototype is
// mapped through the standard s → 1/s transform, which inverts each
// section's frequency multiplier and keeps its Q.
func HighPass(s Spec) (*Chain, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	n := s.Order / 2
	chain := &Chain{Sections: make([]Biquad, 0, n), Gain: passbandGain(s)}

	if s.Family == FamilySimple {
		for range n {
			chain.Sections = append(chain.Sections, simpleHighPassSection(s.Cutoff, s.SampleRate))
		}
		return chain, nil
	}

	for _, sec := range prototype(s) {
		chain.Sections = append(chain.Sections,
			highPassBiquad(s.Cutoff/sec.freqMult, s.SampleRate, sec.q))
	}
	return chain, nil
}
