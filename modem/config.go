package modem

import (
	"math"
	"sort"

	"github.com/cwbudde/algo-modem/dsp/core"
	"github.com/cwbudde/algo-modem/dsp/spectrum"
	"github.com/cwbudde/algo-modem/dsp/window"
	"github.com/cwbudde/algo-modem/ecc"
)

// Default geometry.
const (
	DefaultSampleRate       = 48000.0
	DefaultSamplesPerFrame  = 1024
	DefaultPayloadFrameSize = 4
	DefaultPayloadFrames    = 256
	DefaultFrequencyStart   = 1875.0
	DefaultToneSpacing      = 2
	DefaultOutputGain       = 0.5
	DefaultRampFraction     = 1.0 / 16
	DefaultFadeShape        = window.TypeHann
	DefaultRepeat           = 1
	DefaultMaxPayload       = ecc.DefaultMaxPayload
)

// Limits enforced by Validate.
const (
	MinSamplesPerFrame  = 16
	MaxPayloadFrameSize = spectrum.MaxSlots
	MaxRepeat           = 16
	MaxRampFraction     = 0.5
)

// DecisionThreshold separates 0 from 1 decisions: a detection score above
// the threshold decides 1.
const DecisionThreshold int8 = 0

// Config describes the signal geometry shared by Modulator, Decoder and the
// detection stage. The zero value is not valid; start from DefaultConfig or
// NewConfig.
type Config struct {
	// SampleRate in Hz.
	SampleRate float64
	// SamplesPerFrame is the frame length; a power of two.
	SamplesPerFrame int
	// PayloadFrameSize is the number of bits carried per frame.
	PayloadFrameSize int
	// PayloadFrames is the largest number of frames a message may use.
	PayloadFrames int
	// FrequencyStart is the nominal frequency of the lowest tone in Hz.
	// It is rounded to the nearest FFT bin.
	FrequencyStart float64
	// ToneSpacing is the distance between adjacent tones in FFT bins.
	ToneSpacing int
	// OutputGain is the peak amplitude of a frame in (0, 1].
	OutputGain float64
	// RampFraction is the share of a frame used for each fade.
	RampFraction float64
	// FadeShape selects the fade ramp.
	FadeShape window.Type
	// Repeat is how many times each frame is emitted back to back.
	Repeat int
	// MaxPayload is the largest message length in bytes.
	MaxPayload int
}

// Option mutates a Config. Values are validated by NewConfig, not by the
// option itself.
type Option func(*Config)

// DefaultConfig returns the default geometry.
func DefaultConfig() Config {
	return Config{
		SampleRate:       DefaultSampleRate,
		SamplesPerFrame:  DefaultSamplesPerFrame,
		PayloadFrameSize: DefaultPayloadFrameSize,
		PayloadFrames:    DefaultPayloadFrames,
		FrequencyStart:   DefaultFrequencyStart,
		ToneSpacing:      DefaultToneSpacing,
		OutputGain:       DefaultOutputGain,
		RampFraction:     DefaultRampFraction,
		FadeShape:        DefaultFadeShape,
		Repeat:           DefaultRepeat,
		MaxPayload:       DefaultMaxPayload,
	}
}

// NewConfig applies opts over DefaultConfig and validates the result.
func NewConfig(opts ...Option) (Config, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// WithConfig replaces the whole configuration. Later options still apply.
func WithConfig(c Config) Option {
	return func(cfg *Config) { *cfg = c }
}

// WithSampleRate sets the sample rate in Hz.
func WithSampleRate(sampleRate float64) Option {
	return func(cfg *Config) { cfg.SampleRate = sampleRate }
}

// WithSamplesPerFrame sets the frame length in samples.
func WithSamplesPerFrame(n int) Option {
	return func(cfg *Config) { cfg.SamplesPerFrame = n }
}

// WithPayloadFrameSize sets the number of bits per frame.
func WithPayloadFrameSize(bits int) Option {
	return func(cfg *Config) { cfg.PayloadFrameSize = bits }
}

// WithPayloadFrames sets the frame capacity of a message.
func WithPayloadFrames(frames int) Option {
	return func(cfg *Config) { cfg.PayloadFrames = frames }
}

// WithFrequencyStart sets the frequency of the lowest tone in Hz.
func WithFrequencyStart(hz float64) Option {
	return func(cfg *Config) { cfg.FrequencyStart = hz }
}

// WithToneSpacing sets the spacing between tones in bins.
func WithToneSpacing(bins int) Option {
	return func(cfg *Config) { cfg.ToneSpacing = bins }
}

// WithOutputGain sets the peak output amplitude.
func WithOutputGain(gain float64) Option {
	return func(cfg *Config) { cfg.OutputGain = gain }
}

// WithRampFraction sets the fade length as a share of the frame.
func WithRampFraction(fraction float64) Option {
	return func(cfg *Config) { cfg.RampFraction = fraction }
}

// WithFadeShape sets the fade ramp shape.
func WithFadeShape(shape window.Type) Option {
	return func(cfg *Config) { cfg.FadeShape = shape }
}

// WithRepeat sets how often each frame is emitted.
func WithRepeat(n int) Option {
	return func(cfg *Config) { cfg.Repeat = n }
}

// WithMaxPayload sets the largest message length in bytes.
func WithMaxPayload(n int) Option {
	return func(cfg *Config) { cfg.MaxPayload = n }
}

// Validate reports the first violated constraint as an error wrapping
// ErrInvalidConfiguration.
func (c Config) Validate() error {
	switch {
	case !(c.SampleRate > 0) || math.IsInf(c.SampleRate, 0):
		return invalidConfig("sample rate must be > 0: %v", c.SampleRate)
	case c.SamplesPerFrame < MinSamplesPerFrame || !core.IsPowerOfTwo(c.SamplesPerFrame):
		return invalidConfig("samples per frame must be a power of two >= %d: %d", MinSamplesPerFrame, c.SamplesPerFrame)
	case c.PayloadFrameSize < 1 || c.PayloadFrameSize > MaxPayloadFrameSize:
		return invalidConfig("payload frame size must be in [1,%d]: %d", MaxPayloadFrameSize, c.PayloadFrameSize)
	case c.PayloadFrames < 1:
		return invalidConfig("payload frames must be >= 1: %d", c.PayloadFrames)
	case !(c.FrequencyStart > 0) || math.IsInf(c.FrequencyStart, 0):
		return invalidConfig("frequency start must be > 0: %v", c.FrequencyStart)
	case c.ToneSpacing < 1:
		return invalidConfig("tone spacing must be >= 1: %d", c.ToneSpacing)
	case !(c.OutputGain > 0 && c.OutputGain <= core.FullScale):
		return invalidConfig("output gain must be in (0,1]: %v", c.OutputGain)
	case !(c.RampFraction >= 0 && c.RampFraction <= MaxRampFraction):
		return invalidConfig("ramp fraction must be in [0,%v]: %v", MaxRampFraction, c.RampFraction)
	case c.FadeShape.String() == "unknown":
		return invalidConfig("unknown fade shape %d", int(c.FadeShape))
	case c.Repeat < 1 || c.Repeat > MaxRepeat:
		return invalidConfig("repeat must be in [1,%d]: %d", MaxRepeat, c.Repeat)
	case c.MaxPayload < 1 || c.MaxPayload > ecc.DefaultMaxPayload:
		return invalidConfig("max payload must be in [1,%d]: %d", ecc.DefaultMaxPayload, c.MaxPayload)
	}

	if err := c.Layout().Validate(); err != nil {
		return invalidConfig("%v", err)
	}
	if need := c.FramesFor(1); need > c.PayloadFrames {
		return invalidConfig("payload frames %d cannot carry a 1-byte message (needs %d)", c.PayloadFrames, need)
	}
	return nil
}

// BinHz returns the FFT bin width in Hz.
func (c Config) BinHz() float64 {
	return c.SampleRate / float64(c.SamplesPerFrame)
}

// StartBin returns the FFT bin of the lowest tone.
func (c Config) StartBin() int {
	return int(math.Round(c.FrequencyStart / c.BinHz()))
}

// Layout returns the tone layout of one frame.
func (c Config) Layout() spectrum.Layout {
	return spectrum.Layout{
		SampleRate: c.SampleRate,
		FFTSize:    c.SamplesPerFrame,
		StartBin:   c.StartBin(),
		Slots:      c.PayloadFrameSize,
		Spacing:    c.ToneSpacing,
	}
}

// ToneBin returns the FFT bin carrying bit (0 or 1) in slot.
func (c Config) ToneBin(slot, bit int) int {
	return c.Layout().Bin(slot, bit&1)
}

// FramesFor returns the number of distinct frames an n-byte message needs.
func (c Config) FramesFor(n int) int {
	bits := 8 * ecc.EncodedLen(n)
	return (bits + c.PayloadFrameSize - 1) / c.PayloadFrameSize
}

// SlotsFor returns the number of detected bit slots an n-byte message
// produces, padding included.
func (c Config) SlotsFor(n int) int {
	return c.FramesFor(n) * c.PayloadFrameSize
}

// SamplesFor returns the PCM length of an n-byte message.
func (c Config) SamplesFor(n int) int {
	return c.FramesFor(n) * c.Repeat * c.SamplesPerFrame
}

// MaxPayloadBytes returns the longest message that fits both MaxPayload and
// the frame capacity.
func (c Config) MaxPayloadBytes() int {
	return sort.Search(c.MaxPayload+1, func(n int) bool {
		return c.FramesFor(n) > c.PayloadFrames
	}) - 1
}

// RampSamples returns the fade length: RampFraction of a frame, rounded to
// whole samples.
func (c Config) RampSamples() int {
	return int(math.Round(c.RampFraction * float64(c.SamplesPerFrame)))
}
