// Package wavio reads and writes mono PCM WAV files with samples scaled to
// [-1, 1].
package wavio

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/cwbudde/algo-modem/dsp/core"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// DefaultBitDepth is used by WriteFile callers that do not care.
const DefaultBitDepth = 16

const formatPCM = 1

var (
	// ErrInvalidFile reports input that is not a readable WAV file.
	ErrInvalidFile = errors.New("wavio: invalid wav file")
	// ErrBitDepth reports an unsupported sample width.
	ErrBitDepth = errors.New("wavio: unsupported bit depth")
)

// sampleFormat returns the integer full scale of bitDepth and the stored
// value of silence. 8-bit WAV samples are unsigned around 128.
func sampleFormat(bitDepth int) (scale float64, zero int, err error) {
	switch bitDepth {
	case 8:
		return 127, 128, nil
	case 16, 24, 32:
		return float64(int64(1)<<(bitDepth-1) - 1), 0, nil
	default:
		return 0, 0, fmt.Errorf("%w: %d", ErrBitDepth, bitDepth)
	}
}

// Write encodes pcm as a mono integer WAV stream of 8, 16, 24 or 32 bits.
// Samples outside [-1, 1] are clamped.
func Write(w io.WriteSeeker, pcm []float64, sampleRate, bitDepth int) error {
	scale, zero, err := sampleFormat(bitDepth)
	if err != nil {
		return err
	}
	if sampleRate <= 0 {
		return fmt.Errorf("wavio: sample rate must be > 0: %d", sampleRate)
	}

	data := make([]int, len(pcm))
	for i, v := range pcm {
		v = math.Max(-core.FullScale, math.Min(core.FullScale, v))
		data[i] = zero + int(math.Round(v*scale))
	}

	enc := wav.NewEncoder(w, sampleRate, bitDepth, 1, formatPCM)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("wavio: write: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("wavio: close: %w", err)
	}
	return nil
}

// Read decodes a WAV stream into mono samples in [-1, 1]. Multi-channel
// input is averaged. The most negative integer code, which has no positive
// counterpart, reads as -1.
func Read(r io.ReadSeeker) ([]float64, int, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, 0, ErrInvalidFile
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}
	scale, zero, err := sampleFormat(int(dec.BitDepth))
	if err != nil {
		return nil, 0, err
	}

	channels := int(dec.NumChans)
	if channels < 1 {
		return nil, 0, fmt.Errorf("%w: %d channels", ErrInvalidFile, channels)
	}

	frames := len(buf.Data) / channels
	pcm := make([]float64, frames)
	for i := range pcm {
		sum := 0
		for c := 0; c < channels; c++ {
			sum += buf.Data[i*channels+c] - zero
		}
		v := float64(sum) / float64(channels) / scale
		pcm[i] = math.Max(-core.FullScale, math.Min(core.FullScale, v))
	}
	return pcm, int(dec.SampleRate), nil
}

// WriteFile writes pcm to path, replacing any existing file.
func WriteFile(path string, pcm []float64, sampleRate, bitDepth int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("wavio: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("wavio: %w", cerr)
		}
	}()
	return Write(f, pcm, sampleRate, bitDepth)
}

// ReadFile reads a WAV file from path.
func ReadFile(path string) ([]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("wavio: %w", err)
	}
	defer f.Close()
	return Read(f)
}
