package spectrum

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-modem/internal/testutil"
)

func TestGoertzelMatchesDFT(t *testing.T) {
	sampleRate := 48000.0
	freq := 1875.0
	sig := testutil.DeterministicSine(freq, sampleRate, 1.0, 1024)

	g, err := NewGoertzel(freq, sampleRate)
	if err != nil {
		t.Fatalf("NewGoertzel() error = %v", err)
	}
	g.ProcessBlock(sig)

	var dft complex128
	for n, x := range sig {
		angle := -2 * math.Pi * freq / sampleRate * float64(n)
		dft += complex(x, 0) * cmplx.Exp(complex(0, angle))
	}
	want := real(dft)*real(dft) + imag(dft)*imag(dft)

	if got := g.Power(); math.Abs(got-want) > 1e-7*want {
		t.Fatalf("Power() = %v, want %v", got, want)
	}
}

func TestGoertzelReset(t *testing.T) {
	g, _ := NewGoertzel(1000, 48000)
	g.ProcessBlock([]float64{1, 0.5})
	if g.Power() == 0 {
		t.Fatal("Power should be non-zero after processing")
	}
	g.Reset()
	if g.Power() != 0 {
		t.Fatal("Power should be zero after reset")
	}
}

func TestGoertzelValidation(t *testing.T) {
	if _, err := NewGoertzel(1000, 0); err == nil {
		t.Fatal("expected error for zero sample rate")
	}
	if _, err := NewGoertzel(30000, 48000); err == nil {
		t.Fatal("expected error above nyquist")
	}
	if _, err := NewGoertzel(-1, 48000); err == nil {
		t.Fatal("expected error for negative frequency")
	}
}

func TestMultiGoertzelDiscriminatesTonePair(t *testing.T) {
	tab, err := Generate(testLayout())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	m, err := NewMultiGoertzel(tab.Frequencies(), 48000)
	if err != nil {
		t.Fatalf("NewMultiGoertzel() error = %v", err)
	}
	if m.Len() != 8 {
		t.Fatalf("Len() = %d, want 8", m.Len())
	}

	// Slot 1 hi tone only.
	m.ProcessBlock(testutil.DeterministicSine(tab.Hi(1).Frequency, 48000, 1, 1024))
	powers := make([]float64, m.Len())
	m.PowersInto(powers)

	if score := PairScore(powers[2], powers[3]); score < 120 {
		t.Fatalf("slot 1 score = %d, want strongly hi", score)
	}

	m.Reset()
	m.PowersInto(powers)
	for i, p := range powers {
		if p != 0 {
			t.Fatalf("powers[%d] = %v after reset, want 0", i, p)
		}
	}
}
