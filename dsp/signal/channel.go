package signal

import (
	"math/rand"

	"github.com/cwbudde/algo-modem/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

// Channel degrades PCM deterministically. The same options and input always
// produce the same output.
type Channel struct {
	gain  float64
	noise float64
	seed  int64
}

// Option configures a Channel.
type Option func(*Channel)

// WithGain sets the linear gain applied before noise. Negative values are
// ignored.
func WithGain(gain float64) Option {
	return func(c *Channel) {
		if gain >= 0 {
			c.gain = gain
		}
	}
}

// WithGainDB sets the gain in dB.
func WithGainDB(db float64) Option {
	return WithGain(core.DBToLinear(db))
}

// WithNoise sets the peak amplitude of uniform white noise. Negative values
// are ignored.
func WithNoise(amplitude float64) Option {
	return func(c *Channel) {
		if amplitude >= 0 {
			c.noise = amplitude
		}
	}
}

// WithSeed sets the noise seed.
func WithSeed(seed int64) Option {
	return func(c *Channel) {
		c.seed = seed
	}
}

// NewChannel creates a unity-gain, noiseless channel and applies opts.
func NewChannel(opts ...Option) *Channel {
	c := &Channel{gain: 1, seed: 1}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Gain returns the linear gain.
func (c *Channel) Gain() float64 { return c.gain }

// Noise returns the noise amplitude.
func (c *Channel) Noise() float64 { return c.noise }

// Apply returns the degraded copy of pcm and the number of samples clamped
// to full scale.
func (c *Channel) Apply(pcm []float64) ([]float64, int) {
	out := make([]float64, len(pcm))
	vecmath.ScaleBlock(out, pcm, c.gain)

	if c.noise > 0 {
		noise := make([]float64, len(pcm))
		rng := rand.New(rand.NewSource(c.seed))
		for i := range noise {
			noise[i] = (rng.Float64()*2 - 1) * c.noise
		}
		vecmath.AddBlockInPlace(out, noise)
	}

	clipped := core.ClampBlock(out, core.FullScale)
	return out, clipped
}
