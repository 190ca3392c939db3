package signal

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-modem/internal/testutil"
)

func TestChannelIdentity(t *testing.T) {
	in := testutil.DeterministicSine(1000, 48000, 0.5, 256)
	out, clipped := NewChannel().Apply(in)
	if clipped != 0 {
		t.Fatalf("Apply() clipped = %d, want 0", clipped)
	}
	testutil.RequireSliceEqual(t, out, in)
}

func TestChannelDeterministic(t *testing.T) {
	in := testutil.DeterministicSine(440, 48000, 0.3, 512)
	a, _ := NewChannel(WithNoise(0.1), WithSeed(9)).Apply(in)
	b, _ := NewChannel(WithNoise(0.1), WithSeed(9)).Apply(in)
	testutil.RequireSliceEqual(t, a, b)

	c, _ := NewChannel(WithNoise(0.1), WithSeed(10)).Apply(in)
	same := true
	for i := range a {
		if a[i] != c[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("different seeds produced identical noise")
	}
}

func TestChannelNoiseBounded(t *testing.T) {
	in := make([]float64, 1024)
	out, _ := NewChannel(WithNoise(0.25)).Apply(in)
	testutil.RequireBounded(t, out, 0.25)
	if Peak(out) == 0 {
		t.Fatal("noise channel produced silence")
	}
}

func TestChannelClamps(t *testing.T) {
	in := []float64{0.5, -0.5, 0.1}
	out, clipped := NewChannel(WithGainDB(12)).Apply(in)
	if clipped != 2 {
		t.Fatalf("Apply() clipped = %d, want 2", clipped)
	}
	testutil.RequireBounded(t, out, 1)
}

func TestChannelIgnoresInvalidOptions(t *testing.T) {
	c := NewChannel(WithGain(-1), WithNoise(-1))
	if c.Gain() != 1 || c.Noise() != 0 {
		t.Fatalf("NewChannel() gain=%v noise=%v, want 1 and 0", c.Gain(), c.Noise())
	}
}

func TestLevels(t *testing.T) {
	sine := testutil.DeterministicSine(1000, 48000, 0.5, 4800)

	if got := Peak(sine); math.Abs(got-0.5) > 1e-3 {
		t.Fatalf("Peak() = %v, want 0.5", got)
	}
	if got := RMS(sine); math.Abs(got-0.5/math.Sqrt2) > 1e-6 {
		t.Fatalf("RMS() = %v, want %v", got, 0.5/math.Sqrt2)
	}
	if got := PeakDB([]float64{1, -1}); got != 0 {
		t.Fatalf("PeakDB() = %v, want 0", got)
	}
	if got := RMSDB(nil); !math.IsInf(got, -1) {
		t.Fatalf("RMSDB(nil) = %v, want -Inf", got)
	}
}

func TestNormalize(t *testing.T) {
	out := Normalize([]float64{0.1, -0.2, 0.05}, 1)
	if got := Peak(out); math.Abs(got-1) > 1e-12 {
		t.Fatalf("Peak(Normalize()) = %v, want 1", got)
	}
	if silent := Normalize(make([]float64, 4), 1); Peak(silent) != 0 {
		t.Fatal("Normalize() of silence is not silent")
	}
}
