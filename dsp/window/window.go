// Package window provides the fade shapes used to smooth frame boundaries.
//
// A fade is the rising (or falling) half of a symmetric window. Applying a
// fade at a symbol change removes the step discontinuity that would otherwise
// splatter energy into neighbouring tone bins.
package window

import (
	"math"
	"strings"

	"github.com/cwbudde/algo-vecmath"
)

// Type identifies a fade shape.
type Type int

const (
	// TypeRectangular applies no fade (hard switching).
	TypeRectangular Type = iota
	// TypeHann is a raised-cosine fade.
	TypeHann
	// TypeBlackman is a three-term Blackman fade with a softer onset.
	TypeBlackman
	// TypeWelch is a parabolic fade.
	TypeWelch
	// TypeLinear is a straight-line fade.
	TypeLinear
)

var (
	hannCoeffs     = []float64{0.5, -0.5}
	blackmanCoeffs = []float64{0.42, -0.5, 0.08}
)

var typeNames = map[Type]string{
	TypeRectangular: "rectangular",
	TypeHann:        "hann",
	TypeBlackman:    "blackman",
	TypeWelch:       "welch",
	TypeLinear:      "linear",
}

// String returns the lower-case name of t.
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown"
}

// Types lists every supported fade shape in declaration order.
func Types() []Type {
	return []Type{TypeRectangular, TypeHann, TypeBlackman, TypeWelch, TypeLinear}
}

// ParseType resolves a fade name such as "hann" (case-insensitive).
func ParseType(name string) (Type, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, t := range Types() {
		if typeNames[t] == name {
			return t, nil
		}
	}
	return 0, errUnknownType(name)
}

// Rise returns a fade-in ramp of the given length. Values increase
// monotonically from near 0 towards 1; the end points are sampled at
// half-sample offsets so neither 0 nor 1 is repeated across a boundary.
func Rise(t Type, length int) []float64 {
	if length <= 0 {
		return nil
	}

	out := make([]float64, length)
	for i := range out {
		// Position along the rising half of the full window: x in (0, 0.5).
		x := 0.5 * (float64(i) + 0.5) / float64(length)
		out[i] = evalRise(t, x)
	}
	return out
}

// Fall returns the time-reversed Rise ramp.
func Fall(t Type, length int) []float64 {
	out := Rise(t, length)
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// FadeIn multiplies the head of buf by ramp in place.
func FadeIn(buf, ramp []float64) error {
	if len(ramp) > len(buf) {
		return errRampTooLong(len(ramp), len(buf))
	}
	vecmath.MulBlockInPlace(buf[:len(ramp)], ramp)
	return nil
}

// FadeOut multiplies the tail of buf by ramp in place. ramp is expected to
// be falling, as returned by Fall.
func FadeOut(buf, ramp []float64) error {
	if len(ramp) > len(buf) {
		return errRampTooLong(len(ramp), len(buf))
	}
	vecmath.MulBlockInPlace(buf[len(buf)-len(ramp):], ramp)
	return nil
}

func evalRise(t Type, x float64) float64 {
	switch t {
	case TypeRectangular:
		return 1
	case TypeHann:
		return cosineFromCoeffs(x, hannCoeffs)
	case TypeBlackman:
		return cosineFromCoeffs(x, blackmanCoeffs)
	case TypeWelch:
		d := x - 0.5
		return 1 - 4*d*d
	case TypeLinear:
		return 2 * x
	default:
		return 1
	}
}

func cosineFromCoeffs(x float64, coeffs []float64) float64 {
	phase := 2 * math.Pi * x

	sum := 0.0
	for k, c := range coeffs {
		sum += c * math.Cos(float64(k)*phase)
	}

	return sum
}
