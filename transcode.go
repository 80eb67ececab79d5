package transcoder

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-audio/wav"

	"github.com/tphakala/go-ulaw-transcoder/internal/dynamics"
	"github.com/tphakala/go-ulaw-transcoder/internal/filter"
	"github.com/tphakala/go-ulaw-transcoder/internal/g711"
	"github.com/tphakala/go-ulaw-transcoder/internal/resample"
)

// EncodePCM16 runs the forward pipeline on mono 16-bit PCM samples at the
// given rate: band-limit, compress/normalize, resample to the telephony
// rate, and μ-law encode. The input slice is not modified.
func EncodePCM16(samples []int16, rate int, cfg *Config) ([]byte, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rate <= 0 {
		return nil, fmt.Errorf("%w: sample rate must be positive, got %d", ErrInvalidConfig, rate)
	}

	buf := toFloat64(samples)

	// Telephone band limiting at the source rate.
	bank, err := newBandLimitBank(cfg, float64(rate))
	if err != nil {
		return nil, err
	}
	bank.Process(buf, bank.NewState())

	// Dynamic range processing. Normalizing after compression pins the
	// stage's output peak at the configured level.
	dynamics.Apply(buf, dynamics.Params{
		NormalizePeak: cfg.NormalizePeak,
		Ratio:         cfg.CompressionRatio,
		Threshold:     cfg.CompressionThreshold,
	})

	// Anti-aliased conversion to the canonical telephony rate.
	if rate != TelephonyRate {
		buf, err = resample.Resample(buf, float64(rate), TelephonyRate, resample.Options{
			WindowSize:  cfg.WindowSize,
			CutoffRatio: cfg.AntiAliasingRatio,
			AntiAlias:   antiAliasSpec(cfg, float64(rate)),
		})
		if err != nil {
			return nil, err
		}
	}

	return g711.Encode(toInt16(buf)), nil
}

// DecodePCM16 runs the reverse pipeline: μ-law decode at the telephony rate
// followed by windowed-sinc resampling to outRate. No filtering or dynamics
// are applied; fidelity to the decoded signal is preserved.
func DecodePCM16(ulaw []byte, outRate, windowSize int) ([]int16, error) {
	if outRate <= 0 {
		return nil, fmt.Errorf("%w: output rate must be positive, got %d", ErrInvalidConfig, outRate)
	}
	if windowSize < minWindowSize {
		return nil, fmt.Errorf("%w: window size must be at least %d, got %d", ErrInvalidConfig, minWindowSize, windowSize)
	}

	samples := g711.Decode(ulaw)
	if outRate == TelephonyRate {
		return samples, nil
	}

	// Upsampling for playback needs no anti-aliasing shaping.
	buf, err := resample.Resample(toFloat64(samples), TelephonyRate, float64(outRate), resample.Options{
		WindowSize: windowSize,
	})
	if err != nil {
		return nil, err
	}

	return toInt16(buf), nil
}

// WavToUlaw decodes a 16-bit PCM WAV container and transcodes it to raw
// μ-law bytes at the telephony rate.
func WavToUlaw(wavBytes []byte, cfg *Config) ([]byte, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	decoder := wav.NewDecoder(bytes.NewReader(wavBytes))
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("%w: not a valid WAV file", ErrInvalidFormat)
	}

	format := decoder.Format()
	if format == nil {
		return nil, fmt.Errorf("%w: missing WAV format chunk", ErrInvalidFormat)
	}

	pcm, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: reading WAV data: %v", ErrInvalidFormat, err)
	}

	rate := cfg.InputRate
	if rate == 0 {
		rate = format.SampleRate
	}

	samples := extractSamples(pcm.Data, format.NumChannels, pcm.SourceBitDepth, cfg.ForceMono)
	return EncodePCM16(samples, rate, cfg)
}

// UlawToWav decodes raw μ-law bytes, resamples to outRate, and returns a
// complete 16-bit mono WAV file.
func UlawToWav(ulaw []byte, outRate, windowSize int) ([]byte, error) {
	samples, err := DecodePCM16(ulaw, outRate, windowSize)
	if err != nil {
		return nil, err
	}
	return encodeWAVBytes(samples, outRate), nil
}

// newBandLimitBank builds the telephone band-limiting filter bank at the
// source rate. Zero cutoffs disable the corresponding stage.
func newBandLimitBank(cfg *Config, rate float64) (*filter.Bank, error) {
	var highPass, lowPass *filter.Spec

	if cfg.HighPassCutoff > 0 {
		highPass = &filter.Spec{
			Family:     filter.FamilySimple,
			Cutoff:     cfg.HighPassCutoff,
			SampleRate: rate,
			Order:      bandLimitOrder,
		}
	}
	if cfg.LowPassCutoff > 0 {
		lowPass = &filter.Spec{
			Family:     filter.FamilySimple,
			Cutoff:     cfg.LowPassCutoff,
			SampleRate: rate,
			Order:      bandLimitOrder,
		}
	}

	return filter.NewBank(highPass, lowPass)
}

// antiAliasSpec returns the IIR shaping spec for the resampler, or nil for
// the simple family, which relies on the gated sinc kernel alone.
func antiAliasSpec(cfg *Config, rate float64) *filter.Spec {
	if cfg.AntiAliasingType == FilterSimple {
		return nil
	}
	return &filter.Spec{
		Family:     cfg.AntiAliasingType.family(),
		Cutoff:     cfg.AntiAliasingRatio * TelephonyRate / halfDivisor,
		SampleRate: rate,
		Order:      cfg.FilterOrder,
		RippleDB:   cfg.ChebyshevRipple,
	}
}

// extractSamples converts decoded WAV data to mono int16, promoting
// unsigned 8-bit sources and averaging channels when downmixing.
func extractSamples(data []int, channels, bitDepth int, forceMono bool) []int16 {
	if forceMono && channels > 1 {
		samples := make([]int16, len(data)/channels)
		for i := range samples {
			sum := 0
			for ch := range channels {
				idx := i*channels + ch
				if idx < len(data) {
					sum += data[idx]
				}
			}
			samples[i] = promoteSample(sum/channels, bitDepth)
		}
		return samples
	}

	samples := make([]int16, len(data))
	for i, s := range data {
		samples[i] = promoteSample(s, bitDepth)
	}
	return samples
}

// promoteSample widens an 8-bit unsigned sample to signed 16-bit;
// 16-bit samples pass through.
func promoteSample(s, bitDepth int) int16 {
	if bitDepth == wavBitDepth8 {
		return int16((s - pcm8Offset) << pcm8Shift)
	}
	return int16(s)
}

// toFloat64 normalizes 16-bit PCM to [-1, 1].
func toFloat64(samples []int16) []float64 {
	buf := make([]float64, len(samples))
	for i, s := range samples {
		buf[i] = float64(s) / maxPCM16
	}
	return buf
}

// toInt16 requantizes normalized samples to 16-bit PCM, hard-clipping any
// residual overflow.
func toInt16(buf []float64) []int16 {
	samples := make([]int16, len(buf))
	for i, s := range buf {
		v := math.Round(s * maxPCM16)
		if v > maxPCM16 {
			v = maxPCM16
		} else if v < minPCM16 {
			v = minPCM16
		}
		samples[i] = int16(v)
	}
	return samples
}

// WAV container constants for the in-memory encoder.
const (
	wavHeaderSize      = 44
	wavRiffHeaderSize  = 36
	wavPCMSubchunkSize = 16
	wavPCMFormat       = 1
	bitsPerByte        = 8
)

// encodeWAVBytes builds a complete mono 16-bit PCM WAV file in memory.
// Sizes are known up front, so the header needs no patching pass.
func encodeWAVBytes(samples []int16, sampleRate int) []byte {
	bytesPerSample := outputBitDepth / bitsPerByte
	dataSize := len(samples) * bytesPerSample
	out := make([]byte, wavHeaderSize+dataSize)

	// RIFF header
	copy(out[0:4], "RIFF")
	binary.LittleEndian.PutUint32(out[4:8], uint32(wavRiffHeaderSize+dataSize))
	copy(out[8:12], "WAVE")

	// fmt subchunk
	copy(out[12:16], "fmt ")
	binary.LittleEndian.PutUint32(out[16:20], wavPCMSubchunkSize)
	binary.LittleEndian.PutUint16(out[20:22], wavPCMFormat)
	binary.LittleEndian.PutUint16(out[22:24], 1) // mono
	binary.LittleEndian.PutUint32(out[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(out[28:32], uint32(sampleRate*bytesPerSample))
	binary.LittleEndian.PutUint16(out[32:34], uint16(bytesPerSample))
	binary.LittleEndian.PutUint16(out[34:36], outputBitDepth)

	// data subchunk
	copy(out[36:40], "data")
	binary.LittleEndian.PutUint32(out[40:44], uint32(dataSize))

	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[wavHeaderSize+i*2:], uint16(s))
	}

	return out
}
