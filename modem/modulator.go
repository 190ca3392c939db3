package modem

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-modem/dsp/core"
	"github.com/cwbudde/algo-modem/dsp/spectrum"
	"github.com/cwbudde/algo-modem/dsp/window"
	"github.com/cwbudde/algo-modem/ecc"
	"github.com/cwbudde/algo-vecmath"
)

// State is the lifecycle position of a Modulator.
type State int

const (
	// StateIdle is a fresh Modulator without a spectrum table.
	StateIdle State = iota
	// StateSpectrumReady has a tone table and accepts a message.
	StateSpectrumReady
	// StateEncoding is synthesizing a message.
	StateEncoding
	// StateFinalized holds a complete PCM buffer; call Reset to reuse.
	StateFinalized
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSpectrumReady:
		return "spectrum-ready"
	case StateEncoding:
		return "encoding"
	case StateFinalized:
		return "finalized"
	default:
		return "unknown"
	}
}

// Modulator turns one message into PCM samples.
type Modulator struct {
	cfg   Config
	coder *ecc.Coder

	state State
	table *spectrum.Table
	plan  *algofft.Plan[complex128]

	// synthScale maps the inverse transform of a unit pattern to unit
	// amplitude tones.
	synthScale float64
	toneGain   float64
	rise       []float64
	fall       []float64

	eccPayload   []byte
	frames       int
	bins         []complex128
	timeBuf      []complex128
	currentFrame []float64
	outputFrames []float64
}

// NewModulator creates a Modulator. Options are applied over DefaultConfig;
// an invalid result returns an error wrapping ErrInvalidConfiguration.
func NewModulator(opts ...Option) (*Modulator, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	n := cfg.SamplesPerFrame
	ramp := cfg.RampSamples()
	return &Modulator{
		cfg:          cfg,
		coder:        ecc.NewCoder(ecc.WithMaxPayload(cfg.MaxPayload)),
		toneGain:     cfg.OutputGain / float64(cfg.PayloadFrameSize),
		rise:         window.Rise(cfg.FadeShape, ramp),
		fall:         window.Fall(cfg.FadeShape, ramp),
		bins:         make([]complex128, n),
		timeBuf:      make([]complex128, n),
		currentFrame: make([]float64, n),
	}, nil
}

// Config returns the validated configuration.
func (m *Modulator) Config() Config { return m.cfg }

// State returns the current lifecycle state.
func (m *Modulator) State() State { return m.state }

// MaxPayload returns the longest message GeneratePCMBuffer accepts.
func (m *Modulator) MaxPayload() int { return m.cfg.MaxPayloadBytes() }

// FrameCount returns the number of distinct frames of the current message.
func (m *Modulator) FrameCount() int { return m.frames }

// Spectrum returns the tone table, or nil before GenerateSpectrum.
func (m *Modulator) Spectrum() *spectrum.Table { return m.table }

// EccPayload returns a copy of the encoded form of the current message.
func (m *Modulator) EccPayload() []byte {
	return append([]byte(nil), m.eccPayload...)
}

// CurrentFrame returns the frame scratch buffer. It is overwritten by the
// next WriteFrame.
func (m *Modulator) CurrentFrame() []float64 { return m.currentFrame }

// GenerateSpectrum builds the tone table and FFT plan. Calling it again is
// a no-op.
func (m *Modulator) GenerateSpectrum() error {
	if m.state != StateIdle {
		return nil
	}

	table, err := spectrum.Generate(m.cfg.Layout())
	if err != nil {
		return fmt.Errorf("modem: spectrum: %w", err)
	}
	plan, err := algofft.NewPlan64(m.cfg.SamplesPerFrame)
	if err != nil {
		return fmt.Errorf("modem: fft plan: %w", err)
	}

	m.table = table
	m.plan = plan
	if err := m.calibrate(); err != nil {
		return err
	}
	m.state = StateSpectrumReady
	return nil
}

// calibrate measures the amplitude the inverse transform gives a single
// unit-coefficient tone. For b orthogonal tones of amplitude a the mean
// square is b*a*a/2.
func (m *Modulator) calibrate() error {
	if err := m.table.Pattern(m.bins, 0); err != nil {
		return err
	}
	if err := m.plan.Inverse(m.timeBuf, m.bins); err != nil {
		return fmt.Errorf("modem: inverse FFT failed: %w", err)
	}

	energy := 0.0
	for _, v := range m.timeBuf {
		energy += real(v) * real(v)
	}
	meanSquare := energy / float64(len(m.timeBuf))
	amplitude := math.Sqrt(2 * meanSquare / float64(m.table.Slots()))
	if amplitude == 0 || math.IsNaN(amplitude) {
		return fmt.Errorf("modem: inverse FFT produced a silent calibration frame")
	}

	m.synthScale = 1 / amplitude
	return nil
}

// WriteFrame synthesizes frame into the CurrentFrame scratch with every tone
// at unit amplitude.
func (m *Modulator) WriteFrame(frame int) error {
	if m.state != StateEncoding {
		return fmt.Errorf("%w: WriteFrame in state %s", ErrInvalidState, m.state)
	}
	if frame < 0 || frame >= m.frames {
		return fmt.Errorf("%w: frame %d outside [0,%d)", ErrInvalidState, frame, m.frames)
	}

	symbol := symbolAt(m.eccPayload, frame, m.cfg.PayloadFrameSize)
	if err := m.table.Pattern(m.bins, symbol); err != nil {
		return err
	}
	if err := m.plan.Inverse(m.timeBuf, m.bins); err != nil {
		return fmt.Errorf("modem: inverse FFT failed: %w", err)
	}

	for i, v := range m.timeBuf {
		m.currentFrame[i] = real(v) * m.synthScale
	}
	return nil
}

// AmplifySignal scales CurrentFrame to the output gain, fades in the first
// offset samples and out the last residue samples, then clamps to full
// scale.
func (m *Modulator) AmplifySignal(offset, residue int) error {
	if m.state != StateEncoding {
		return fmt.Errorf("%w: AmplifySignal in state %s", ErrInvalidState, m.state)
	}
	if offset < 0 || residue < 0 || offset+residue > len(m.currentFrame) {
		return fmt.Errorf("%w: fades %d+%d exceed frame of %d samples",
			ErrInvalidState, offset, residue, len(m.currentFrame))
	}

	vecmath.ScaleBlockInPlace(m.currentFrame, m.toneGain)
	if offset > 0 {
		if err := window.FadeIn(m.currentFrame, m.ramp(m.rise, offset, window.Rise)); err != nil {
			return err
		}
	}
	if residue > 0 {
		if err := window.FadeOut(m.currentFrame, m.ramp(m.fall, residue, window.Fall)); err != nil {
			return err
		}
	}
	core.ClampBlock(m.currentFrame, core.FullScale)
	return nil
}

func (m *Modulator) ramp(cached []float64, length int, build func(window.Type, int) []float64) []float64 {
	if len(cached) == length {
		return cached
	}
	return build(m.cfg.FadeShape, length)
}

// GeneratePCMBuffer encodes message and writes its PCM samples into pcm,
// reusing its capacity, and returns the filled slice of length
// Config.SamplesFor(len(message)). The capacity check runs before any
// sample is written.
func (m *Modulator) GeneratePCMBuffer(pcm []float64, message []byte) ([]float64, error) {
	if m.state == StateEncoding || m.state == StateFinalized {
		return pcm, fmt.Errorf("%w: GeneratePCMBuffer in state %s", ErrInvalidState, m.state)
	}
	if limit := m.MaxPayload(); len(message) > limit {
		return pcm, fmt.Errorf("%w: %d > %d bytes", ErrPayloadTooLarge, len(message), limit)
	}

	encoded, err := m.coder.Encode(message)
	if err != nil {
		return pcm, fmt.Errorf("%w: %w", ErrPayloadTooLarge, err)
	}
	if err := m.GenerateSpectrum(); err != nil {
		return pcm, err
	}

	m.eccPayload = encoded
	m.frames = m.cfg.FramesFor(len(message))
	m.state = StateEncoding

	n := m.cfg.SamplesPerFrame
	b := m.cfg.PayloadFrameSize
	repeat := m.cfg.Repeat
	ramp := m.cfg.RampSamples()
	m.outputFrames = m.outputFrames[:0]

	for f := 0; f < m.frames; f++ {
		symbol := symbolAt(encoded, f, b)
		fadeIn := f == 0 || symbolAt(encoded, f-1, b) != symbol
		fadeOut := f == m.frames-1 || symbolAt(encoded, f+1, b) != symbol

		for r := 0; r < repeat; r++ {
			if err := m.WriteFrame(f); err != nil {
				return pcm, err
			}

			offset, residue := 0, 0
			if fadeIn && r == 0 {
				offset = ramp
			}
			if fadeOut && r == repeat-1 {
				residue = ramp
			}
			if err := m.AmplifySignal(offset, residue); err != nil {
				return pcm, err
			}

			m.outputFrames = append(m.outputFrames, m.currentFrame[:n]...)
		}
	}

	pcm = core.EnsureLen(pcm, len(m.outputFrames))
	copy(pcm, m.outputFrames)
	m.state = StateFinalized
	return pcm, nil
}

// Modulate is GeneratePCMBuffer into a fresh buffer.
func (m *Modulator) Modulate(message []byte) ([]float64, error) {
	return m.GeneratePCMBuffer(nil, message)
}

// Reset discards the current message and keeps the tone table.
func (m *Modulator) Reset() {
	if m.state == StateIdle {
		return
	}
	m.eccPayload = nil
	m.frames = 0
	m.outputFrames = m.outputFrames[:0]
	m.state = StateSpectrumReady
}
