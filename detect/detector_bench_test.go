package detect

import (
	"testing"

	"github.com/cwbudde/algo-modem/internal/testutil"
	"github.com/cwbudde/algo-modem/modem"
)

func benchmarkDetect(b *testing.B, method Method) {
	m, err := modem.NewModulator()
	if err != nil {
		b.Fatal(err)
	}
	pcm, err := m.Modulate(testutil.Payload(1, 32))
	if err != nil {
		b.Fatal(err)
	}
	det, err := New(m.Config(), WithMethod(method))
	if err != nil {
		b.Fatal(err)
	}

	b.SetBytes(int64(len(pcm) * 8))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := det.Detect(pcm); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDetectFFT(b *testing.B)      { benchmarkDetect(b, MethodFFT) }
func BenchmarkDetectGoertzel(b *testing.B) { benchmarkDetect(b, MethodGoertzel) }
