// Package filter provides IIR filter design and application for the
// transcoding pipeline. All filters are realized as cascaded second-order
// sections (biquads) for numerical stability at higher orders, with the
// per-filter delay-line state held in explicit caller-owned values so that
// buffers can be processed in chunks without discontinuities.
package filter

// Biquad holds normalized direct-form I coefficients for one second-order
// section. The denominator a0 is already divided out.
type Biquad struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// BiquadState is the two-sample input/output history of one section.
// A zero value is a valid cold start.
type BiquadState struct {
	x1, x2 float64
	y1, y2 float64
}

// ProcessSample advances one section by a single sample.
func (b *Biquad) ProcessSample(x float64, s *BiquadState) float64 {
	y := b.B0*x + b.B1*s.x1 + b.B2*s.x2 - b.A1*s.y1 - b.A2*s.y2
	s.x2, s.x1 = s.x1, x
	s.y2, s.y1 = s.y1, y
	return y
}

// Chain is a cascade of second-order sections with an overall gain.
// A Chain is immutable once designed and safe for concurrent use as long as
// each goroutine applies it with its own ChainState.
type Chain struct {
	Sections []Biquad
	Gain     float64
}

// ChainState holds one BiquadState per section of a Chain.
type ChainState struct {
	sections []BiquadState
}

// NewState returns a cold-start state sized for the chain.
func (c *Chain) NewState() *ChainState {
	return &ChainState{sections: make([]BiquadState, len(c.Sections))}
}

// Reset clears the delay lines for reuse on an independent channel pass.
func (s *ChainState) Reset() {
	for i := range s.sections {
		s.sections[i] = BiquadState{}
	}
}

// ProcessSample runs a single sample through the full cascade.
func (c *Chain) ProcessSample(x float64, s *ChainState) float64 {
	y := x
	for i := range c.Sections {
		y = c.Sections[i].ProcessSample(y, &s.sections[i])
	}
	return y * c.Gain
}

// Process filters buf in place, carrying state forward across calls.
// Splitting a buffer into chunks and carrying the same state produces
// bit-identical output to a single whole-buffer pass.
func (c *Chain) Process(buf []float64, s *ChainState) {
	for i, x := range buf {
		buf[i] = c.ProcessSample(x, s)
	}
}

// Order returns the effective filter order of the cascade.
func (c *Chain) Order() int {
	return 2 * len(c.Sections)
}
