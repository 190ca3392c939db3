package window

import (
	"math"
	"testing"
)

func TestRiseMonotonic(t *testing.T) {
	for _, typ := range Types() {
		t.Run(typ.String(), func(t *testing.T) {
			r := Rise(typ, 64)
			if len(r) != 64 {
				t.Fatalf("len = %d, want 64", len(r))
			}
			for i, v := range r {
				if v < 0 || v > 1 {
					t.Fatalf("r[%d] = %v, want in [0,1]", i, v)
				}
				if i > 0 && v < r[i-1]-1e-15 {
					t.Fatalf("r[%d] = %v < r[%d] = %v", i, v, i-1, r[i-1])
				}
			}
		})
	}
}

func TestRiseHannSymmetry(t *testing.T) {
	// A raised-cosine fade and its complement sum to one.
	r := Rise(TypeHann, 32)
	for i := range r {
		sum := r[i] + r[len(r)-1-i]
		if math.Abs(sum-1) > 1e-12 {
			t.Fatalf("r[%d]+r[%d] = %v, want 1", i, len(r)-1-i, sum)
		}
	}
}

func TestFallIsReversedRise(t *testing.T) {
	r := Rise(TypeBlackman, 17)
	f := Fall(TypeBlackman, 17)
	for i := range r {
		if r[i] != f[len(f)-1-i] {
			t.Fatalf("Fall[%d] = %v, want %v", len(f)-1-i, f[len(f)-1-i], r[i])
		}
	}
}

func TestFadeInOut(t *testing.T) {
	buf := []float64{1, 1, 1, 1, 1, 1, 1, 1}

	if err := FadeIn(buf, Rise(TypeLinear, 2)); err != nil {
		t.Fatalf("FadeIn() error = %v", err)
	}
	if err := FadeOut(buf, Fall(TypeLinear, 2)); err != nil {
		t.Fatalf("FadeOut() error = %v", err)
	}

	want := []float64{0.25, 0.75, 1, 1, 1, 1, 0.75, 0.25}
	for i := range want {
		if math.Abs(buf[i]-want[i]) > 1e-12 {
			t.Fatalf("buf[%d] = %v, want %v", i, buf[i], want[i])
		}
	}
}

func TestFadeRampTooLong(t *testing.T) {
	if err := FadeIn(make([]float64, 2), Rise(TypeHann, 3)); err == nil {
		t.Fatal("expected error for ramp longer than buffer")
	}
	if err := FadeOut(make([]float64, 2), Fall(TypeHann, 3)); err == nil {
		t.Fatal("expected error for ramp longer than buffer")
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		in   string
		want Type
	}{
		{in: "hann", want: TypeHann},
		{in: " Blackman ", want: TypeBlackman},
		{in: "RECTANGULAR", want: TypeRectangular},
		{in: "welch", want: TypeWelch},
		{in: "linear", want: TypeLinear},
	}
	for _, tt := range tests {
		got, err := ParseType(tt.in)
		if err != nil {
			t.Fatalf("ParseType(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseType(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := ParseType("kaiser"); err == nil {
		t.Fatal("expected error for unknown type")
	}
}

func TestRiseEmpty(t *testing.T) {
	if Rise(TypeHann, 0) != nil {
		t.Fatal("expected nil ramp for zero length")
	}
}
