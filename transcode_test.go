package transcoder

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-ulaw-transcoder/internal/analysis"
	"github.com/tphakala/go-ulaw-transcoder/internal/testutil"
)

const (
	testToneHz  = 1000.0
	testInRate  = 44100
	ulawSilence = 0xFF
	peakTol     = 0.05
	spectralTol = 0.02
)

// oneSecondWAV builds a mono 16-bit WAV of a full-scale test tone.
func oneSecondWAV(t *testing.T, rate int) []byte {
	t.Helper()
	samples := testutil.SineInt16(testToneHz, float64(rate), 1.0, rate)
	return encodeWAVBytes(samples, rate)
}

func TestWavToUlawOneSecondIsExactly8000Bytes(t *testing.T) {
	ulaw, err := WavToUlaw(oneSecondWAV(t, testInRate), nil)
	require.NoError(t, err)
	assert.Len(t, ulaw, TelephonyRate, "one second of input must produce one second of μ-law")
}

func TestWavToUlawDecodedPeakTracksNormalizeTarget(t *testing.T) {
	cfg := DefaultConfig()
	ulaw, err := WavToUlaw(oneSecondWAV(t, testInRate), cfg)
	require.NoError(t, err)

	decoded, err := DecodePCM16(ulaw, TelephonyRate, cfg.WindowSize)
	require.NoError(t, err)

	peak := 0.0
	for _, s := range decoded {
		if v := float64(s) / maxPCM16; v > peak {
			peak = v
		} else if -v > peak {
			peak = -v
		}
	}
	testutil.AssertRelativeError(t, cfg.NormalizePeak, peak, peakTol)
}

func TestRoundTripKeepsToneFrequency(t *testing.T) {
	ulaw, err := WavToUlaw(oneSecondWAV(t, testInRate), nil)
	require.NoError(t, err)

	wavOut, err := UlawToWav(ulaw, testInRate, defaultWindowSize)
	require.NoError(t, err)

	decoder := wav.NewDecoder(bytes.NewReader(wavOut))
	require.True(t, decoder.IsValidFile())
	pcm, err := decoder.FullPCMBuffer()
	require.NoError(t, err)

	format := decoder.Format()
	require.NotNil(t, format)
	assert.Equal(t, testInRate, format.SampleRate)
	assert.Equal(t, 1, format.NumChannels)

	signal := make([]float64, len(pcm.Data))
	for i, s := range pcm.Data {
		signal[i] = float64(s) / maxPCM16
	}
	testutil.AssertRelativeError(t, testToneHz, analysis.SpectralPeak(signal, float64(testInRate)), spectralTol)
}

func TestEncodeAtTelephonyRateSkipsResampling(t *testing.T) {
	samples := testutil.SineInt16(testToneHz, TelephonyRate, 0.8, TelephonyRate)

	ulaw, err := EncodePCM16(samples, TelephonyRate, nil)
	require.NoError(t, err)
	assert.Len(t, ulaw, len(samples))
}

func TestEncodeAllFilterFamilies(t *testing.T) {
	samples := testutil.SineInt16(testToneHz, testInRate, 0.8, testInRate/10)

	for _, family := range []FilterFamily{FilterSimple, FilterButterworth, FilterBessel, FilterChebyshev} {
		t.Run(family.String(), func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.AntiAliasingType = family
			if family == FilterChebyshev {
				cfg.ChebyshevRipple = 0.5
			}

			ulaw, err := EncodePCM16(samples, testInRate, cfg)
			require.NoError(t, err)
			assert.NotEmpty(t, ulaw)
		})
	}
}

func TestEncodeRejectsInvalidInput(t *testing.T) {
	samples := testutil.SineInt16(testToneHz, TelephonyRate, 0.5, 100)

	_, err := EncodePCM16(samples, 0, nil)
	require.ErrorIs(t, err, ErrInvalidConfig)

	cfg := DefaultConfig()
	cfg.AntiAliasingType = FilterFamily(9)
	_, err = EncodePCM16(samples, testInRate, cfg)
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestDecodeRejectsInvalidArguments(t *testing.T) {
	ulaw := make([]byte, 100)

	_, err := DecodePCM16(ulaw, 0, defaultWindowSize)
	require.ErrorIs(t, err, ErrInvalidConfig)

	_, err = DecodePCM16(ulaw, testInRate, 1)
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestDecodeAtTelephonyRateIsOneToOne(t *testing.T) {
	ulaw := []byte{0xFF, 0x7F, 0x80, 0x00, 0xC5}

	decoded, err := DecodePCM16(ulaw, TelephonyRate, defaultWindowSize)
	require.NoError(t, err)
	assert.Len(t, decoded, len(ulaw))
	assert.EqualValues(t, 0, decoded[0])
}

func TestWavToUlawRejectsGarbage(t *testing.T) {
	_, err := WavToUlaw([]byte("definitely not a wav file"), nil)
	require.ErrorIs(t, err, ErrInvalidFormat)

	_, err = WavToUlaw(nil, nil)
	require.ErrorIs(t, err, ErrInvalidFormat)
}

func TestWavToUlawHonorsExplicitInputRate(t *testing.T) {
	// Header says 44.1 kHz; config overrides to 22.05 kHz, so the same
	// payload covers two seconds and yields twice the μ-law bytes.
	wavBytes := oneSecondWAV(t, testInRate)

	cfg := DefaultConfig()
	cfg.InputRate = testInRate / 2
	ulaw, err := WavToUlaw(wavBytes, cfg)
	require.NoError(t, err)
	assert.Len(t, ulaw, 2*TelephonyRate)
}

func TestForceMonoAveragesChannels(t *testing.T) {
	// Perfectly anti-phased channels cancel to silence, which μ-law
	// encodes as 0xFF.
	const n = 4000
	left := testutil.SineInt16(testToneHz, testInRate, 0.5, n)

	wavBytes := writeStereoWAV(t, left, negate(left), testInRate)

	cfg := DefaultConfig()
	cfg.ForceMono = true
	ulaw, err := WavToUlaw(wavBytes, cfg)
	require.NoError(t, err)
	require.NotEmpty(t, ulaw)

	for i, b := range ulaw {
		require.EqualValues(t, ulawSilence, b, "byte %d should encode silence", i)
	}
}

func TestExtractSamplesPromotes8Bit(t *testing.T) {
	// Unsigned 8-bit midpoint is silence; extremes map near full scale.
	data := []int{128, 255, 0, 192}

	samples := extractSamples(data, 1, 8, false)
	require.Len(t, samples, 4)
	assert.EqualValues(t, 0, samples[0])
	assert.EqualValues(t, (255-128)<<8, samples[1])
	assert.EqualValues(t, (0-128)<<8, samples[2])
	assert.EqualValues(t, (192-128)<<8, samples[3])
}

func TestEncodeWAVBytesHeader(t *testing.T) {
	samples := []int16{0, 1000, -1000}
	out := encodeWAVBytes(samples, TelephonyRate)

	require.Len(t, out, wavHeaderSize+len(samples)*2)
	assert.Equal(t, "RIFF", string(out[0:4]))
	assert.Equal(t, "WAVE", string(out[8:12]))
	assert.Equal(t, "data", string(out[36:40]))

	decoder := wav.NewDecoder(bytes.NewReader(out))
	require.True(t, decoder.IsValidFile())
	pcm, err := decoder.FullPCMBuffer()
	require.NoError(t, err)
	require.Len(t, pcm.Data, len(samples))
	assert.Equal(t, 1000, pcm.Data[1])
	assert.Equal(t, -1000, pcm.Data[2])
}

func negate(s []int16) []int16 {
	out := make([]int16, len(s))
	for i, v := range s {
		out[i] = -v
	}
	return out
}

// writeStereoWAV encodes interleaved stereo 16-bit PCM through the reference
// encoder, which needs a seekable file to patch chunk sizes.
func writeStereoWAV(t *testing.T, left, right []int16, rate int) []byte {
	t.Helper()
	require.Equal(t, len(left), len(right))

	path := filepath.Join(t.TempDir(), "stereo.wav")
	f, err := os.Create(path)
	require.NoError(t, err)

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 2, SampleRate: rate},
		SourceBitDepth: 16,
		Data:           make([]int, 2*len(left)),
	}
	for i := range left {
		buf.Data[2*i] = int(left[i])
		buf.Data[2*i+1] = int(right[i])
	}

	enc := wav.NewEncoder(f, rate, 16, 2, 1)
	require.NoError(t, enc.Write(buf))
	require.NoError(t, enc.Close())
	require.NoError(t, f.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return data
}
