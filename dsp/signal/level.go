package signal

import (
	"math"

	"github.com/cwbudde/algo-modem/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

// Peak returns max |data[i]|, or 0 for empty input.
func Peak(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return vecmath.MaxAbs(data)
}

// RMS returns the root mean square of data, or 0 for empty input.
func RMS(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return math.Sqrt(vecmath.DotProduct(data, data) / float64(len(data)))
}

// PeakDB returns Peak in dBFS.
func PeakDB(data []float64) float64 {
	return core.LinearToDB(Peak(data))
}

// RMSDB returns RMS in dBFS.
func RMSDB(data []float64) float64 {
	return core.LinearToDB(RMS(data))
}

// Normalize returns a copy of data scaled so its peak equals targetPeak.
// Silent input stays silent.
func Normalize(data []float64, targetPeak float64) []float64 {
	out := make([]float64, len(data))
	peak := Peak(data)
	if peak == 0 || targetPeak <= 0 {
		return out
	}
	vecmath.ScaleBlock(out, data, targetPeak/peak)
	return out
}
