package core

import "math"

// FullScale is the largest sample magnitude a PCM buffer may hold.
const FullScale = 1.0

// ClampBlock limits every sample of buf to [-limit, limit] in place and
// returns how many samples were changed.
func ClampBlock(buf []float64, limit float64) int {
	clipped := 0
	for i, v := range buf {
		switch {
		case v > limit:
			buf[i] = limit
			clipped++
		case v < -limit:
			buf[i] = -limit
			clipped++
		}
	}
	return clipped
}

// DBToLinear converts dB to linear amplitude (20*log10 convention).
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}
	if linear == 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(linear)
}
