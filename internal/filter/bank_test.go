package filter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-ulaw-transcoder/internal/testutil"
)

const bankSampleRate = 44100.0

func telephoneBank(t *testing.T) *Bank {
	t.Helper()
	bank, err := NewBank(
		&Spec{Family: FamilySimple, Cutoff: 200, SampleRate: bankSampleRate, Order: 2},
		&Spec{Family: FamilySimple, Cutoff: 3400, SampleRate: bankSampleRate, Order: 2},
	)
	require.NoError(t, err)
	return bank
}

// steadyStateRMS measures RMS over the second half of the buffer, past the
// cold-start transient.
func steadyStateRMS(buf []float64) float64 {
	tail := buf[len(buf)/2:]
	var sum float64
	for _, v := range tail {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(tail)))
}

func bankGainAt(t *testing.T, bank *Bank, freq float64) float64 {
	t.Helper()
	signal := testutil.Sine(freq, bankSampleRate, 1.0, 16384)
	inRMS := steadyStateRMS(signal)

	bank.Process(signal, bank.NewState())
	return steadyStateRMS(signal) / inRMS
}

func TestBankEmulatesTelephoneBandwidth(t *testing.T) {
	bank := telephoneBank(t)

	voiceGain := bankGainAt(t, bank, 1000)
	bassGain := bankGainAt(t, bank, 50)
	trebleGain := bankGainAt(t, bank, 12000)

	assert.Greater(t, voiceGain, 0.8, "voice band should pass")
	assert.Less(t, bassGain, 0.4, "deep bass should be attenuated")
	assert.Less(t, trebleGain, 0.4, "highs should be attenuated")
	assert.Greater(t, voiceGain, bassGain)
	assert.Greater(t, voiceGain, trebleGain)
}

func TestBankNilSpecsPassThrough(t *testing.T) {
	bank, err := NewBank(nil, nil)
	require.NoError(t, err)

	signal := testutil.Sine(1000, bankSampleRate, 0.5, 512)
	want := make([]float64, len(signal))
	copy(want, signal)

	bank.Process(signal, bank.NewState())
	assert.Equal(t, want, signal)
}

func TestBankSingleStage(t *testing.T) {
	// Lowpass only: bass passes, treble does not.
	bank, err := NewBank(nil,
		&Spec{Family: FamilySimple, Cutoff: 3400, SampleRate: bankSampleRate, Order: 2})
	require.NoError(t, err)

	assert.Greater(t, bankGainAt(t, bank, 100), 0.9)
	assert.Less(t, bankGainAt(t, bank, 15000), 0.3)
}

func TestBankStateResetBetweenChannels(t *testing.T) {
	bank := telephoneBank(t)
	state := bank.NewState()

	signal := testutil.Sine(1000, bankSampleRate, 0.5, 2048)

	first := make([]float64, len(signal))
	copy(first, signal)
	bank.Process(first, state)

	state.Reset()
	second := make([]float64, len(signal))
	copy(second, signal)
	bank.Process(second, state)

	assert.Equal(t, first, second)
}

func TestBankRejectsBadSpec(t *testing.T) {
	_, err := NewBank(&Spec{Family: FamilySimple, Cutoff: -5, SampleRate: bankSampleRate, Order: 2}, nil)
	require.ErrorIs(t, err, ErrInvalidSpec)

	_, err = NewBank(nil, &Spec{Family: FamilySimple, Cutoff: 3400, SampleRate: bankSampleRate, Order: 5})
	require.ErrorIs(t, err, ErrInvalidSpec)
}
