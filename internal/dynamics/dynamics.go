// Package dynamics implements peak normalization and soft-knee dynamic range
// compression on normalized float samples in [-1, 1].
package dynamics

import "math"

// Processing constants.
const (
	// kneeWidth is the transition band of the soft knee, as a fraction of
	// full scale centered on the threshold. Inside the band the gain curve
	// blends quadratically between the linear and compressed regions so
	// the transfer function has no slope discontinuity.
	kneeWidth = 0.1

	// unityRatio disables compression entirely.
	unityRatio = 1.0

	fullScale = 1.0
)

// Params holds the dynamics settings for one pass.
type Params struct {
	// NormalizePeak scales the buffer so its peak equals this level.
	// Zero disables normalization.
	NormalizePeak float64

	// Ratio is the compression ratio above the threshold. 1.0 is a no-op.
	Ratio float64

	// Threshold is the level above which gain reduction applies,
	// as a fraction of full scale.
	Threshold float64
}

// Normalize scales buf in place so its peak absolute amplitude equals peak.
// An all-zero buffer is returned unchanged.
func Normalize(buf []float64, peak float64) {
	maxAbs := 0.0
	for _, s := range buf {
		if a := math.Abs(s); a > maxAbs {
			maxAbs = a
		}
	}
	if maxAbs == 0 {
		return
	}

	scale := peak / maxAbs
	for i := range buf {
		buf[i] *= scale
	}
}

// compressMagnitude maps an absolute sample level through the soft-knee
// compression curve. Below the knee the mapping is identity; above it the
// excess over the threshold is divided by the ratio; inside the knee the two
// regimes are blended with a quadratic interpolation.
func compressMagnitude(level, ratio, threshold float64) float64 {
	lower := threshold - kneeWidth/2
	upper := threshold + kneeWidth/2

	switch {
	case level <= lower:
		return level
	case level >= upper:
		return threshold + (level-threshold)/ratio
	default:
		// Quadratic blend across the knee: identity at the lower edge,
		// compressed slope at the upper edge.
		t := (level - lower) / kneeWidth
		excess := level - lower
		return lower + excess - t*t*(kneeWidth/2)*(1-1/ratio)
	}
}

// Compress applies soft-knee compression to buf in place.
// A ratio of exactly 1.0 leaves the buffer untouched.
func Compress(buf []float64, ratio, threshold float64) {
	if ratio == unityRatio {
		return
	}

	for i, s := range buf {
		level := math.Abs(s)
		if level == 0 {
			continue
		}
		buf[i] = math.Copysign(compressMagnitude(level, ratio, threshold), s)
	}
}

// Apply runs compression then normalization, clamping the result to full
// scale. Compressing first lets the normalize target define the final peak
// level of the stage; residual overflow is hard-clipped, never wrapped.
func Apply(buf []float64, p Params) {
	Compress(buf, p.Ratio, p.Threshold)

	if p.NormalizePeak > 0 {
		Normalize(buf, p.NormalizePeak)
	}

	for i, s := range buf {
		if s > fullScale {
			buf[i] = fullScale
		} else if s < -fullScale {
			buf[i] = -fullScale
		}
	}
}
