// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// CubicInterpolate evaluates a Catmull-Rom spline through four consecutive
// samples. x is the fractional position between y1 and y2 (0 <= x <= 1).
func CubicInterpolate(y0, y1, y2, y3, x float32) float32 {
	a0 := -0.5*y0 + 1.5*y1 - 1.5*y2 + 0.5*y3
	a1 := y0 - 2.5*y1 + 2*y2 - 0.5*y3
	a2 := -0.5*y0 + 0.5*y2

	return ((a0*x+a1)*x+a2)*x + y1
}

// Float32ToInt16 converts a sample in [-1,1] to 16-bit PCM, clamping
// anything outside the range.
func Float32ToInt16(x float32) int16 {
	if x >= 1 {
		return math.MaxInt16
	}
	if x <= -1 {
		return math.MinInt16
	}

	return int16(x * 32767.0)
}

// IntToFloat32 normalizes a signed integer PCM sample of the given bit depth
// to [-1,1). Unknown depths are treated as 16-bit.
func IntToFloat32(v int, bitDepth int) float32 {
	switch bitDepth {
	case 8:
		return float32(v) / 128.0
	case 24:
		return float32(v) / 8388608.0
	case 32:
		return float32(float64(v) / 2147483648.0)
	default:
		return float32(v) / 32768.0
	}
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// SemitoneRatio returns the frequency ratio for a shift of n semitones.
func SemitoneRatio(n float64) float64 {
	return math.Exp2(n / 12)
}

// SpeedToSemitones returns how far playing at the given speed moves the
// pitch, in semitones. Speed must be positive.
func SpeedToSemitones(speed float64) float64 {
	return 12 * math.Log2(speed)
}
