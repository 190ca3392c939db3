package spectrum

import (
	"fmt"
	"math"
)

// Goertzel evaluates the power of a single frequency over a block of
// samples without computing a full FFT. For a frequency sitting exactly on
// an FFT bin of the block length, Power equals |X[k]|^2 of that bin.
//
// The analyzer accumulates every sample passed since the last Reset.
type Goertzel struct {
	frequency  float64
	sampleRate float64
	coeff      float64
	s0, s1     float64
}

// NewGoertzel creates an analyzer for frequency, which must lie in
// [0, sampleRate/2].
func NewGoertzel(frequency, sampleRate float64) (*Goertzel, error) {
	if err := validateSampleRate(sampleRate); err != nil {
		return nil, err
	}
	if frequency < 0 || frequency > sampleRate/2 || math.IsNaN(frequency) {
		return nil, fmt.Errorf("goertzel: frequency must be between 0 and sampleRate/2: %v", frequency)
	}

	return &Goertzel{
		frequency:  frequency,
		sampleRate: sampleRate,
		coeff:      2 * math.Cos(2*math.Pi*frequency/sampleRate),
	}, nil
}

// Reset clears the accumulated state.
func (g *Goertzel) Reset() {
	g.s0 = 0
	g.s1 = 0
}

// ProcessBlock feeds a block of samples.
func (g *Goertzel) ProcessBlock(input []float64) {
	s0, s1 := g.s0, g.s1
	coeff := g.coeff
	for _, x := range input {
		s := x + coeff*s0 - s1
		s1 = s0
		s0 = s
	}
	g.s0, g.s1 = s0, s1
}

// Power returns the squared magnitude of the tracked frequency.
func (g *Goertzel) Power() float64 {
	return g.s0*g.s0 + g.s1*g.s1 - g.coeff*g.s0*g.s1
}

// Frequency returns the tracked frequency in Hz.
func (g *Goertzel) Frequency() float64 { return g.frequency }

// MultiGoertzel runs one Goertzel analyzer per frequency over shared input.
type MultiGoertzel struct {
	analyzers []*Goertzel
}

// NewMultiGoertzel creates analyzers for all frequencies.
func NewMultiGoertzel(frequencies []float64, sampleRate float64) (*MultiGoertzel, error) {
	analyzers := make([]*Goertzel, len(frequencies))
	for i, f := range frequencies {
		g, err := NewGoertzel(f, sampleRate)
		if err != nil {
			return nil, err
		}
		analyzers[i] = g
	}
	return &MultiGoertzel{analyzers: analyzers}, nil
}

// Len returns the number of analyzers.
func (m *MultiGoertzel) Len() int { return len(m.analyzers) }

// ProcessBlock feeds the same block to every analyzer.
func (m *MultiGoertzel) ProcessBlock(input []float64) {
	for _, g := range m.analyzers {
		g.ProcessBlock(input)
	}
}

// PowersInto writes the power of every analyzer into dst, which must have
// length Len.
func (m *MultiGoertzel) PowersInto(dst []float64) {
	for i, g := range m.analyzers {
		dst[i] = g.Power()
	}
}

// Reset clears every analyzer.
func (m *MultiGoertzel) Reset() {
	for _, g := range m.analyzers {
		g.Reset()
	}
}

func validateSampleRate(sampleRate float64) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("goertzel: sample rate must be > 0: %v", sampleRate)
	}
	return nil
}
