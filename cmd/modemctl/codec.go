package main

import (
	"fmt"

	"github.com/cwbudde/algo-modem/detect"
	"github.com/cwbudde/algo-modem/internal/wavio"
	"github.com/cwbudde/algo-modem/modem"
)

func (e *env) modulate(payload []byte) ([]float64, error) {
	m, err := modem.NewModulator(modem.WithConfig(e.cfg))
	if err != nil {
		return nil, err
	}
	pcm, err := m.Modulate(payload)
	if err != nil {
		return nil, err
	}
	e.log.Debug("modulated",
		"bytes", len(payload),
		"encoded_bytes", len(m.EccPayload()),
		"frames", m.FrameCount(),
		"samples", len(pcm),
	)
	return pcm, nil
}

// demodulate runs detection and decoding and returns the payload with the
// number of corrected bytes.
func (e *env) demodulate(pcm []float64, method detect.Method) ([]byte, int, error) {
	det, err := detect.New(e.cfg, detect.WithMethod(method))
	if err != nil {
		return nil, 0, err
	}
	total, detected, err := det.Detect(pcm)
	if err != nil {
		return nil, 0, err
	}

	dec, err := modem.NewDecoder(modem.WithConfig(e.cfg))
	if err != nil {
		return nil, 0, err
	}
	payload, corrections, err := dec.Recover(total, detected)
	if err != nil {
		return nil, 0, fmt.Errorf("decode (status %d): %w", modem.StatusOf(err), err)
	}
	e.log.Debug("demodulated", "method", method, "slots", total, "corrections", corrections)
	return payload, corrections, nil
}

func (e *env) writeWAV(path string, pcm []float64) error {
	if err := wavio.WriteFile(path, pcm, e.sampleRate(), e.profile.WAVBitDepth()); err != nil {
		return err
	}
	e.log.Info("wrote wav",
		"path", path,
		"samples", len(pcm),
		"seconds", float64(len(pcm))/e.cfg.SampleRate,
	)
	return nil
}

func (e *env) readWAV(path string) ([]float64, error) {
	pcm, rate, err := wavio.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if rate != e.sampleRate() {
		return nil, fmt.Errorf("%s: sample rate %d Hz, profile expects %d Hz", path, rate, e.sampleRate())
	}
	return pcm, nil
}

// scanner builds a streaming detector for payloadLen-byte messages. A hop of
// zero analyses once per frame.
func (e *env) scanner(method detect.Method, payloadLen, hop int) (*detect.Scanner, error) {
	det, err := detect.New(e.cfg, detect.WithMethod(method))
	if err != nil {
		return nil, err
	}
	var opts []detect.ScanOption
	if hop != 0 {
		if hop < 0 || e.cfg.SamplesPerFrame%hop != 0 {
			return nil, fmt.Errorf("hop %d does not divide the %d-sample frame", hop, e.cfg.SamplesPerFrame)
		}
		opts = append(opts, detect.WithHop(hop))
	}
	return detect.NewScanner(det, payloadLen, opts...)
}
