package spectrum

import "github.com/cwbudde/algo-vecmath"

// PowerFromParts computes |X[k]|^2 = re[k]^2 + im[k]^2 into dst.
//
// This is the zero-allocation path for callers that keep real and imaginary
// parts in separate scratch slices. All three slices must have equal length.
func PowerFromParts(dst, re, im []float64) {
	vecmath.Power(dst, re, im)
}

// SplitComplex copies the real and imaginary parts of in into re and im.
func SplitComplex(re, im []float64, in []complex128) {
	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}
}

// PairScore compresses the powers of a lo/hi tone pair into a signed
// confidence in [-127, 127]: positive favours hi, negative favours lo.
// Zero total power yields 0.
func PairScore(lo, hi float64) int8 {
	total := lo + hi
	if total <= 0 {
		return 0
	}
	v := 127 * (hi - lo) / total
	switch {
	case v > 127:
		v = 127
	case v < -127:
		v = -127
	}
	if v < 0 {
		return int8(v - 0.5)
	}
	return int8(v + 0.5)
}
