package detect

import (
	"errors"
	"fmt"
	"strings"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-modem/dsp/spectrum"
	"github.com/cwbudde/algo-modem/modem"
)

// ErrMisaligned reports PCM whose length is not a whole number of
// (repeated) frames.
var ErrMisaligned = errors.New("detect: pcm is not frame aligned")

// Method selects how tone powers are measured.
type Method int

const (
	// MethodFFT runs one forward FFT per frame.
	MethodFFT Method = iota
	// MethodGoertzel evaluates only the tone bins.
	MethodGoertzel
)

func (m Method) String() string {
	switch m {
	case MethodFFT:
		return "fft"
	case MethodGoertzel:
		return "goertzel"
	default:
		return "unknown"
	}
}

// ParseMethod resolves "fft" or "goertzel".
func ParseMethod(name string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "fft":
		return MethodFFT, nil
	case "goertzel":
		return MethodGoertzel, nil
	default:
		return 0, fmt.Errorf("detect: unknown method %q", name)
	}
}

// Option configures a Detector.
type Option func(*Detector)

// WithMethod selects the power measurement. Unknown methods are ignored.
func WithMethod(m Method) Option {
	return func(d *Detector) {
		if m == MethodFFT || m == MethodGoertzel {
			d.method = m
		}
	}
}

// Detector scores PCM frames. It owns scratch buffers and is not safe for
// concurrent use.
type Detector struct {
	cfg    modem.Config
	table  *spectrum.Table
	method Method

	plan     *algofft.Plan[complex128]
	in       []complex128
	spec     []complex128
	re, im   []float64
	power    []float64
	goertzel *spectrum.MultiGoertzel
	tones    []float64

	lo, hi []float64
}

// New creates a Detector for cfg.
func New(cfg modem.Config, opts ...Option) (*Detector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	table, err := spectrum.Generate(cfg.Layout())
	if err != nil {
		return nil, fmt.Errorf("detect: %w", err)
	}

	d := &Detector{
		cfg:    cfg,
		table:  table,
		method: MethodFFT,
		lo:     make([]float64, table.Slots()),
		hi:     make([]float64, table.Slots()),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}

	n := cfg.SamplesPerFrame
	switch d.method {
	case MethodGoertzel:
		g, err := spectrum.NewMultiGoertzel(table.Frequencies(), cfg.SampleRate)
		if err != nil {
			return nil, fmt.Errorf("detect: %w", err)
		}
		d.goertzel = g
		d.tones = make([]float64, g.Len())
	default:
		plan, err := algofft.NewPlan64(n)
		if err != nil {
			return nil, fmt.Errorf("detect: fft plan: %w", err)
		}
		d.plan = plan
		d.in = make([]complex128, n)
		d.spec = make([]complex128, n)
		d.re = make([]float64, n)
		d.im = make([]float64, n)
		d.power = make([]float64, n)
	}
	return d, nil
}

// Method returns the configured measurement method.
func (d *Detector) Method() Method { return d.method }

// Config returns the geometry the Detector was built for.
func (d *Detector) Config() modem.Config { return d.cfg }

// Detect scores every bit slot of pcm. totalLength is the number of scores,
// ready to pass to modem.Decoder.Decode together with detected.
func (d *Detector) Detect(pcm []float64) (totalLength int, detected []int8, err error) {
	n := d.cfg.SamplesPerFrame
	span := n * d.cfg.Repeat
	if len(pcm)%span != 0 {
		return 0, nil, fmt.Errorf("%w: %d samples, frame span %d", ErrMisaligned, len(pcm), span)
	}

	frames := len(pcm) / span
	slots := d.table.Slots()
	detected = make([]int8, frames*slots)

	for f := 0; f < frames; f++ {
		clear(d.lo)
		clear(d.hi)
		for r := 0; r < d.cfg.Repeat; r++ {
			start := (f*d.cfg.Repeat + r) * n
			if err := d.accumulate(pcm[start : start+n]); err != nil {
				return 0, nil, err
			}
		}
		for k := 0; k < slots; k++ {
			detected[f*slots+k] = spectrum.PairScore(d.lo[k], d.hi[k])
		}
	}
	return len(detected), detected, nil
}

func (d *Detector) accumulate(frame []float64) error {
	if d.method == MethodGoertzel {
		d.goertzel.Reset()
		d.goertzel.ProcessBlock(frame)
		d.goertzel.PowersInto(d.tones)
		for k := range d.lo {
			d.lo[k] += d.tones[2*k]
			d.hi[k] += d.tones[2*k+1]
		}
		return nil
	}

	for i, v := range frame {
		d.in[i] = complex(v, 0)
	}
	if err := d.plan.Forward(d.spec, d.in); err != nil {
		return fmt.Errorf("detect: forward FFT failed: %w", err)
	}
	spectrum.SplitComplex(d.re, d.im, d.spec)
	spectrum.PowerFromParts(d.power, d.re, d.im)
	for k := range d.lo {
		d.lo[k] += d.power[d.table.Lo(k).Bin]
		d.hi[k] += d.power[d.table.Hi(k).Bin]
	}
	return nil
}
