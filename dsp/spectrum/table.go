package spectrum

import (
	"fmt"
	"slices"
)

// MaxSlots is the largest number of bit slots a frame may carry.
const MaxSlots = 8

// Layout describes where tones sit in the spectrum of one frame.
type Layout struct {
	// SampleRate in Hz.
	SampleRate float64
	// FFTSize is the frame length in samples.
	FFTSize int
	// StartBin is the bin of the lo tone of slot 0.
	StartBin int
	// Slots is the number of bits carried per frame.
	Slots int
	// Spacing is the distance between adjacent tones in bins.
	Spacing int
}

// Bin returns the FFT bin of the tone for the given slot and symbol bit.
func (l Layout) Bin(slot, bit int) int {
	return l.StartBin + (2*slot+bit)*l.Spacing
}

// BinHz returns the width of one bin in Hz.
func (l Layout) BinHz() float64 {
	return l.SampleRate / float64(l.FFTSize)
}

// Validate reports whether every tone of the layout lies strictly between
// DC and Nyquist.
func (l Layout) Validate() error {
	if l.SampleRate <= 0 {
		return fmt.Errorf("spectrum: sample rate must be > 0: %f", l.SampleRate)
	}
	if l.FFTSize < 4 {
		return fmt.Errorf("spectrum: fft size must be >= 4: %d", l.FFTSize)
	}
	if l.Slots < 1 || l.Slots > MaxSlots {
		return fmt.Errorf("spectrum: slots must be in [1,%d]: %d", MaxSlots, l.Slots)
	}
	if l.Spacing < 1 {
		return fmt.Errorf("spectrum: tone spacing must be >= 1: %d", l.Spacing)
	}
	if l.StartBin < 1 {
		return fmt.Errorf("spectrum: start bin must be >= 1: %d", l.StartBin)
	}
	if top := l.Bin(l.Slots-1, 1); top >= l.FFTSize/2 {
		return fmt.Errorf("spectrum: highest tone bin %d reaches nyquist bin %d", top, l.FFTSize/2)
	}
	return nil
}

// Tone is one FFT bin used as a symbol carrier.
type Tone struct {
	Bin       int
	Frequency float64
}

// Table is the precomputed lo/hi tone pair for every bit slot. It is
// read-only after Generate returns.
type Table struct {
	layout Layout
	tones  [][2]Tone
}

// Generate builds the tone table for l. The result depends only on l.
func Generate(l Layout) (*Table, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}

	binHz := l.BinHz()
	tones := make([][2]Tone, l.Slots)
	for slot := range tones {
		for bit := 0; bit < 2; bit++ {
			bin := l.Bin(slot, bit)
			tones[slot][bit] = Tone{Bin: bin, Frequency: float64(bin) * binHz}
		}
	}

	return &Table{layout: l, tones: tones}, nil
}

// Layout returns the layout the table was generated from.
func (t *Table) Layout() Layout { return t.layout }

// Slots returns the number of bit slots per frame.
func (t *Table) Slots() int { return len(t.tones) }

// Tone returns the carrier for symbol bit (0 or 1) of slot.
func (t *Table) Tone(slot, bit int) Tone { return t.tones[slot][bit&1] }

// Lo returns the 0-symbol carrier of slot.
func (t *Table) Lo(slot int) Tone { return t.tones[slot][0] }

// Hi returns the 1-symbol carrier of slot.
func (t *Table) Hi(slot int) Tone { return t.tones[slot][1] }

// Frequencies lists all tone frequencies, ordered lo then hi for each slot.
func (t *Table) Frequencies() []float64 {
	out := make([]float64, 0, 2*len(t.tones))
	for _, pair := range t.tones {
		out = append(out, pair[0].Frequency, pair[1].Frequency)
	}
	return out
}

// Pattern writes the frequency-domain vector of a frame into dst, which
// must have length FFTSize. Bit k of symbol selects the tone of slot k.
// Each active bin holds -i and its mirror +i, so the inverse transform is
// a sum of unit-coefficient sines.
func (t *Table) Pattern(dst []complex128, symbol uint8) error {
	n := t.layout.FFTSize
	if len(dst) != n {
		return fmt.Errorf("spectrum: pattern length %d, want %d", len(dst), n)
	}

	clear(dst)
	for slot := range t.tones {
		bin := t.tones[slot][(symbol>>slot)&1].Bin
		dst[bin] = complex(0, -1)
		dst[n-bin] = complex(0, 1)
	}
	return nil
}

// Equal reports whether t and other describe the same tones.
func (t *Table) Equal(other *Table) bool {
	if t == nil || other == nil {
		return t == other
	}
	return t.layout == other.layout && slices.Equal(t.tones, other.tones)
}
