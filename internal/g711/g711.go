// Package g711 implements the ITU-T G.711 μ-law companding codec.
//
// μ-law compresses a 14-bit linear magnitude into an 8-bit code word made of
// a sign bit, a 3-bit segment (exponent) and a 4-bit mantissa. The code word
// is transmitted bit-inverted. Encoding is lossy; decoding an encoded sample
// lands within one quantization step of the original for every segment.
package g711

const (
	// bias is the G.711 μ-law bias added before segment search (0x84 = 132).
	bias = 0x84

	// clip is the maximum 14-bit magnitude representable after biasing.
	clip = 8159

	// linearShift converts 16-bit PCM to the 14-bit domain of the law.
	linearShift = 2

	mantissaMask = 0x0F
	exponentMask = 0x07
	signBit      = 0x80
	segmentBits  = 4
)

// segmentEnd holds the upper bound of each of the 8 μ-law segments
// in the biased 14-bit magnitude domain.
var segmentEnd = [8]int{0x3F, 0x7F, 0xFF, 0x1FF, 0x3FF, 0x7FF, 0xFFF, 0x1FFF}

// segment returns the index of the μ-law segment containing value.
func segment(value int) int {
	for i, end := range segmentEnd {
		if value <= end {
			return i
		}
	}
	return len(segmentEnd)
}

// EncodeSample compresses a 16-bit linear PCM sample to a μ-law code word.
// The mapping is even-symmetric in sign: EncodeSample(-x) differs from
// EncodeSample(x) only in the sign bit.
func EncodeSample(pcm int16) byte {
	value := int(pcm)
	mask := byte(0xFF)

	// Negating before the shift keeps the law even-symmetric in sign:
	// truncating first would bias negative magnitudes by one step.
	if value < 0 {
		value = -value
		mask = 0x7F
	}
	value >>= linearShift

	if value > clip {
		value = clip
	}
	value += bias >> linearShift

	seg := segment(value)
	if seg >= len(segmentEnd) {
		return 0x7F ^ mask
	}

	encoded := byte(seg<<segmentBits) | byte((value>>(seg+1))&mantissaMask)
	return encoded ^ mask
}

// DecodeSample expands a μ-law code word to a 16-bit linear PCM sample.
func DecodeSample(ulaw byte) int16 {
	value := ^ulaw
	sign := value & signBit
	exponent := (value >> segmentBits) & exponentMask
	mantissa := value & mantissaMask

	decoded := ((int(mantissa)<<3)+bias)<<exponent - bias
	if sign != 0 {
		decoded = -decoded
	}

	return int16(decoded)
}

// Encode compresses a slice of 16-bit PCM samples to μ-law bytes.
func Encode(pcm []int16) []byte {
	out := make([]byte, len(pcm))
	for i, s := range pcm {
		out[i] = EncodeSample(s)
	}
	return out
}

// Decode expands μ-law bytes to 16-bit PCM samples.
func Decode(ulaw []byte) []int16 {
	out := make([]int16, len(ulaw))
	for i, b := range ulaw {
		out[i] = DecodeSample(b)
	}
	return out
}
