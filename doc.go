// Package transcoder converts between linear-PCM WAV audio and G.711 μ-law
// companded audio, tuned for telephone-bandwidth and TTS-style signal paths.
//
// The forward pipeline (WAV → μ-law) band-limits the signal to telephone
// bandwidth, applies soft-knee compression and peak normalization, resamples
// to the canonical 8 kHz telephony rate through an anti-aliased windowed-sinc
// stage, and μ-law encodes each sample. The reverse pipeline (μ-law → WAV)
// decodes and resamples to the requested playback rate without further
// processing.
//
// # Quick Start
//
// Convert a WAV file's bytes to raw μ-law with default settings:
//
//	ulaw, err := transcoder.WavToUlaw(wavBytes, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Convert μ-law bytes back to a 44.1 kHz WAV file:
//
//	wavOut, err := transcoder.UlawToWav(ulaw, 44100, 64)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Configuration
//
// All processing parameters live in [Config]: band-limiting cutoffs,
// normalization and compression levels, resampler window size, and the
// anti-aliasing filter family and order. [DefaultConfig] matches telephone
// playback of speech. Configurations are validated eagerly: every invalid
// parameter is reported as [ErrInvalidConfig] before any processing starts.
//
// # Anti-aliasing filter families
//
//   - [FilterSimple]: gated sinc kernel only, cheapest.
//   - [FilterButterworth]: maximally flat passband.
//   - [FilterBessel]: maximally flat group delay, best transient response.
//   - [FilterChebyshev]: steepest roll-off, requires a ripple value.
//
// The DSP stages are pure transforms over caller-owned buffers and perform
// no I/O; the whole transform either runs to completion or fails without
// partial output.
package transcoder
