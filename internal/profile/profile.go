// Package profile loads named modem geometries from YAML.
//
// Every key is optional; an absent or zero key keeps the modem default.
//
//	name: lab
//	samples_per_frame: 2048
//	payload_frame_size: 2
//	frequency_start: 3000
//	repeat: 3
//	fade: blackman
//	detection: goertzel
package profile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/cwbudde/algo-modem/detect"
	"github.com/cwbudde/algo-modem/dsp/window"
	"github.com/cwbudde/algo-modem/internal/wavio"
	"github.com/cwbudde/algo-modem/modem"
	"gopkg.in/yaml.v3"
)

// Profile is the YAML form of a modem configuration plus the I/O settings
// the CLI needs.
type Profile struct {
	Name             string  `yaml:"name"`
	SampleRate       float64 `yaml:"sample_rate"`
	SamplesPerFrame  int     `yaml:"samples_per_frame"`
	PayloadFrameSize int     `yaml:"payload_frame_size"`
	PayloadFrames    int     `yaml:"payload_frames"`
	FrequencyStart   float64 `yaml:"frequency_start"`
	ToneSpacing      int     `yaml:"tone_spacing"`
	OutputGain       float64 `yaml:"output_gain"`
	// RampFraction is a pointer so that an explicit 0 disables fades.
	RampFraction *float64 `yaml:"ramp_fraction"`
	Fade         string   `yaml:"fade"`
	Repeat       int      `yaml:"repeat"`
	MaxPayload   int      `yaml:"max_payload"`
	BitDepth     int      `yaml:"bit_depth"`
	Detection    string   `yaml:"detection"`
}

// Load reads and validates the YAML profile at path.
func Load(path string) (*Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("profile: open %q: %w", path, err)
	}
	defer f.Close()

	p, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("profile: parse %q: %w", path, err)
	}
	return p, nil
}

// LoadFromReader decodes a YAML profile from r and validates it. Unknown
// keys are rejected.
func LoadFromReader(r io.Reader) (*Profile, error) {
	p := &Profile{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(p); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("profile: decode yaml: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Resolve returns the built-in profile called nameOrPath, or loads it as a
// file path when no built-in matches.
func Resolve(nameOrPath string) (*Profile, error) {
	if _, ok := builtins[nameOrPath]; ok {
		return Builtin(nameOrPath)
	}
	return Load(nameOrPath)
}

// Validate checks that the profile yields a valid modem configuration and
// known fade, detection and bit depth settings.
func (p *Profile) Validate() error {
	if _, err := p.Config(); err != nil {
		return err
	}
	if _, err := p.Method(); err != nil {
		return fmt.Errorf("profile: %w", err)
	}
	switch p.WAVBitDepth() {
	case 8, 16, 24, 32:
	default:
		return fmt.Errorf("profile: bit_depth must be 8, 16, 24 or 32: %d", p.BitDepth)
	}
	return nil
}

// Options converts the non-zero fields into modem options.
func (p *Profile) Options() ([]modem.Option, error) {
	var opts []modem.Option
	if p.SampleRate != 0 {
		opts = append(opts, modem.WithSampleRate(p.SampleRate))
	}
	if p.SamplesPerFrame != 0 {
		opts = append(opts, modem.WithSamplesPerFrame(p.SamplesPerFrame))
	}
	if p.PayloadFrameSize != 0 {
		opts = append(opts, modem.WithPayloadFrameSize(p.PayloadFrameSize))
	}
	if p.PayloadFrames != 0 {
		opts = append(opts, modem.WithPayloadFrames(p.PayloadFrames))
	}
	if p.FrequencyStart != 0 {
		opts = append(opts, modem.WithFrequencyStart(p.FrequencyStart))
	}
	if p.ToneSpacing != 0 {
		opts = append(opts, modem.WithToneSpacing(p.ToneSpacing))
	}
	if p.OutputGain != 0 {
		opts = append(opts, modem.WithOutputGain(p.OutputGain))
	}
	if p.RampFraction != nil {
		opts = append(opts, modem.WithRampFraction(*p.RampFraction))
	}
	if p.Fade != "" {
		shape, err := window.ParseType(p.Fade)
		if err != nil {
			return nil, fmt.Errorf("profile: fade: %w", err)
		}
		opts = append(opts, modem.WithFadeShape(shape))
	}
	if p.Repeat != 0 {
		opts = append(opts, modem.WithRepeat(p.Repeat))
	}
	if p.MaxPayload != 0 {
		opts = append(opts, modem.WithMaxPayload(p.MaxPayload))
	}
	return opts, nil
}

// Config returns the validated modem configuration of the profile.
func (p *Profile) Config() (modem.Config, error) {
	opts, err := p.Options()
	if err != nil {
		return modem.Config{}, err
	}
	cfg, err := modem.NewConfig(opts...)
	if err != nil {
		return modem.Config{}, fmt.Errorf("profile %q: %w", p.Name, err)
	}
	return cfg, nil
}

// Method returns the detection method, FFT when unset.
func (p *Profile) Method() (detect.Method, error) {
	if p.Detection == "" {
		return detect.MethodFFT, nil
	}
	return detect.ParseMethod(p.Detection)
}

// WAVBitDepth returns the output sample width, 16 when unset.
func (p *Profile) WAVBitDepth() int {
	if p.BitDepth == 0 {
		return wavio.DefaultBitDepth
	}
	return p.BitDepth
}

func (p *Profile) clone() *Profile {
	c := *p
	if p.RampFraction != nil {
		r := *p.RampFraction
		c.RampFraction = &r
	}
	return &c
}

var builtins = map[string]*Profile{
	"default": {Name: "default"},
	"robust": {
		Name:             "robust",
		PayloadFrameSize: 2,
		Repeat:           3,
		ToneSpacing:      4,
		Detection:        "goertzel",
	},
	"fast": {
		Name:             "fast",
		SamplesPerFrame:  512,
		PayloadFrameSize: 8,
	},
	"near-ultrasonic": {
		Name:           "near-ultrasonic",
		FrequencyStart: 17500,
		Fade:           "blackman",
	},
}

// Builtin returns a copy of the named built-in profile.
func Builtin(name string) (*Profile, error) {
	p, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("profile: unknown built-in %q (have %v)", name, Names())
	}
	return p.clone(), nil
}

// Names lists the built-in profiles in sorted order.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
