package filter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-ulaw-transcoder/internal/testutil"
)

func testChain(t *testing.T) *Chain {
	t.Helper()
	chain, err := LowPass(Spec{
		Family: FamilyButterworth, Cutoff: 3400, SampleRate: 44100, Order: 4,
	})
	require.NoError(t, err)
	return chain
}

func TestChunkedProcessingMatchesWholeBuffer(t *testing.T) {
	chain := testChain(t)
	signal := testutil.Multitone([]float64{440, 1000, 5000}, 44100, 4096)

	whole := make([]float64, len(signal))
	copy(whole, signal)
	chain.Process(whole, chain.NewState())

	// Any chunking with carried state must be bit-identical.
	for _, chunkSize := range []int{1, 7, 256, 1000} {
		chunked := make([]float64, len(signal))
		copy(chunked, signal)

		state := chain.NewState()
		for start := 0; start < len(chunked); start += chunkSize {
			end := min(start+chunkSize, len(chunked))
			chain.Process(chunked[start:end], state)
		}

		for i := range whole {
			if whole[i] != chunked[i] {
				t.Fatalf("chunk size %d diverges at sample %d: %v != %v",
					chunkSize, i, whole[i], chunked[i])
			}
		}
	}
}

func TestStateResetGivesRepeatableOutput(t *testing.T) {
	chain := testChain(t)
	signal := testutil.Sine(1000, 44100, 0.5, 1024)

	first := make([]float64, len(signal))
	copy(first, signal)
	state := chain.NewState()
	chain.Process(first, state)

	second := make([]float64, len(signal))
	copy(second, signal)
	state.Reset()
	chain.Process(second, state)

	assert.Equal(t, first, second)
}

func TestColdStartIsZeroState(t *testing.T) {
	chain := testChain(t)

	// A zero input through a cold filter stays exactly zero.
	buf := make([]float64, 256)
	chain.Process(buf, chain.NewState())
	for i, v := range buf {
		require.Zero(t, v, "sample %d", i)
	}
}

func TestChainOrder(t *testing.T) {
	for _, order := range []int{2, 4, 6} {
		chain, err := LowPass(Spec{
			Family: FamilyButterworth, Cutoff: 1000, SampleRate: 8000, Order: order,
		})
		require.NoError(t, err)
		assert.Equal(t, order, chain.Order())
	}
}

func TestChainStability(t *testing.T) {
	// A long run through every family must neither blow up nor go
	// denormal-NaN, even with the cutoff close to Nyquist.
	families := []Spec{
		{Family: FamilySimple, Cutoff: 3800, SampleRate: 8000, Order: 2},
		{Family: FamilyButterworth, Cutoff: 3800, SampleRate: 8000, Order: 6},
		{Family: FamilyBessel, Cutoff: 3000, SampleRate: 8000, Order: 6},
		{Family: FamilyChebyshev1, Cutoff: 3000, SampleRate: 8000, Order: 6, RippleDB: 1.0},
	}

	signal := testutil.Multitone([]float64{200, 1000, 3500}, 8000, 32768)

	for _, spec := range families {
		chain, err := LowPass(spec)
		require.NoError(t, err, "family %s", spec.Family)

		buf := make([]float64, len(signal))
		copy(buf, signal)
		chain.Process(buf, chain.NewState())

		testutil.AssertNoNaNOrInf(t, buf)
		testutil.AssertAllInRange(t, buf, -2, 2)
	}
}

func TestBiquadImpulseMatchesDifferenceEquation(t *testing.T) {
	b := Biquad{B0: 0.2, B1: 0.3, B2: 0.1, A1: -0.4, A2: 0.05}

	var s BiquadState
	got := []float64{
		b.ProcessSample(1, &s),
		b.ProcessSample(0, &s),
		b.ProcessSample(0, &s),
	}

	// Hand-evaluated impulse response of the difference equation.
	h0 := 0.2
	h1 := 0.3 + 0.4*h0
	h2 := 0.1 + 0.4*h1 - 0.05*h0
	want := []float64{h0, h1, h2}

	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-12, "tap %d", i)
	}
}

func TestMagnitudeAtMatchesMeasuredGain(t *testing.T) {
	chain := testChain(t)
	const freq = 1000.0

	// Drive a steady sine and compare the measured RMS gain against the
	// analytic transfer function.
	signal := testutil.Sine(freq, 44100, 1.0, 44100)
	buf := make([]float64, len(signal))
	copy(buf, signal)
	chain.Process(buf, chain.NewState())

	// Skip the cold-start transient.
	tail := buf[len(buf)/2:]
	var sum float64
	for _, v := range tail {
		sum += v * v
	}
	measured := math.Sqrt(sum/float64(len(tail))) * math.Sqrt2

	assert.InDelta(t, chain.MagnitudeAt(freq, 44100), measured, 0.01)
}
