package modem

import (
	"testing"

	"github.com/cwbudde/algo-modem/internal/testutil"
)

func BenchmarkGeneratePCMBuffer(b *testing.B) {
	m, err := NewModulator()
	if err != nil {
		b.Fatalf("NewModulator() error = %v", err)
	}
	if err := m.GenerateSpectrum(); err != nil {
		b.Fatalf("GenerateSpectrum() error = %v", err)
	}

	msg := testutil.Payload(1, 32)
	pcm := make([]float64, 0, m.Config().SamplesFor(len(msg)))

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Reset()
		var err error
		pcm, err = m.GeneratePCMBuffer(pcm, msg)
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDecode(b *testing.B) {
	m, err := NewModulator()
	if err != nil {
		b.Fatalf("NewModulator() error = %v", err)
	}
	msg := testutil.Payload(2, 32)
	if _, err := m.Modulate(msg); err != nil {
		b.Fatal(err)
	}
	detected := bitsOf(m.EccPayload(), m.Config().SlotsFor(len(msg)))

	d, err := NewDecoder()
	if err != nil {
		b.Fatalf("NewDecoder() error = %v", err)
	}
	out := make([]byte, len(msg))

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := d.Decode(len(detected), detected, out); err != nil {
			b.Fatal(err)
		}
	}
}
