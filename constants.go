package transcoder

// TelephonyRate is the canonical G.711 telephony sample rate in Hz.
// Every wav2ulaw conversion targets this rate; every ulaw2wav conversion
// starts from it.
const TelephonyRate = 8000

// Default configuration values.
const (
	// defaultLowPassHz and defaultHighPassHz emulate telephone bandwidth.
	defaultLowPassHz  = 3400
	defaultHighPassHz = 200

	defaultNormalizePeak        = 0.95
	defaultCompressionRatio     = 1.5
	defaultCompressionThreshold = 0.5

	defaultWindowSize        = 64
	defaultAntiAliasingRatio = 0.95
	defaultFilterOrder       = 4
)

// Engine constants.
const (
	// minWindowSize is the smallest accepted resampler window.
	minWindowSize = 2

	// bandLimitOrder is the order of the telephone band-limiting stages.
	// Single-pole RC-equivalent sections give the soft knee expected of
	// an analog telephone channel.
	bandLimitOrder = 2

	// maxPCM16 scales between 16-bit PCM and normalized float samples.
	maxPCM16 = 32767.0

	// minPCM16 bounds the clamp when requantizing.
	minPCM16 = -32768.0

	// pcm8Offset and pcm8Shift promote unsigned 8-bit WAV samples to
	// signed 16-bit.
	pcm8Offset = 128
	pcm8Shift  = 8

	// wavBitDepth8 marks unsigned 8-bit PCM input.
	wavBitDepth8 = 8

	// outputBitDepth is the PCM bit depth of ulaw2wav output.
	outputBitDepth = 16

	// halfDivisor derives a Nyquist frequency from a sample rate.
	halfDivisor = 2
)
