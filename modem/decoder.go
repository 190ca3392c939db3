package modem

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-modem/ecc"
)

// Decoder recovers payloads from per-slot detection scores. It keeps no
// reference to its inputs.
type Decoder struct {
	cfg   Config
	coder *ecc.Coder
}

// NewDecoder creates a Decoder. Options are applied over DefaultConfig; an
// invalid result returns an error wrapping ErrInvalidConfiguration.
func NewDecoder(opts ...Option) (*Decoder, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	return &Decoder{
		cfg:   cfg,
		coder: ecc.NewCoder(ecc.WithMaxPayload(cfg.MaxPayload)),
	}, nil
}

// Config returns the validated configuration.
func (d *Decoder) Config() Config { return d.cfg }

// Decode recovers the payload carried by the first totalLength entries of
// detected and copies it into output.
//
// On success it returns the payload length and a nil error. On failure it
// returns one of the negative Status codes together with an error wrapping
// the matching sentinel.
func (d *Decoder) Decode(totalLength int, detected []int8, output []byte) (int, error) {
	payload, _, err := d.Recover(totalLength, detected)
	if err != nil {
		return StatusOf(err), err
	}
	if len(output) < len(payload) {
		err := fmt.Errorf("%w: need %d bytes, have %d", ErrShortBuffer, len(payload), len(output))
		return StatusShortBuffer, err
	}
	return copy(output, payload), nil
}

// Recover is Decode returning a freshly allocated payload and the number of
// bytes the error correction repaired.
func (d *Decoder) Recover(totalLength int, detected []int8) ([]byte, int, error) {
	eccLen, err := d.encodedLength(totalLength, len(detected))
	if err != nil {
		return nil, 0, err
	}

	n, err := ecc.DecodedLen(eccLen)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrMalformedBlock, err)
	}
	if n > d.cfg.MaxPayloadBytes() {
		return nil, 0, misaligned("%d slots carry %d bytes, more than the %d-byte limit",
			totalLength, n, d.cfg.MaxPayloadBytes())
	}

	received := packDecisions(detected[:totalLength], eccLen)
	payload, corrections, err := d.coder.Correct(received)
	switch {
	case err == nil:
		return payload, corrections, nil
	case errors.Is(err, ecc.ErrUncorrectable):
		return nil, 0, fmt.Errorf("%w: %w", ErrUncorrectable, err)
	case errors.Is(err, ecc.ErrMalformedBlock):
		return nil, 0, fmt.Errorf("%w: %w", ErrMalformedBlock, err)
	default:
		return nil, 0, fmt.Errorf("%w: %w", ErrFrameAlignment, err)
	}
}

// encodedLength checks that totalLength slots can come from a whole message
// and returns the length of its encoded form in bytes.
func (d *Decoder) encodedLength(totalLength, available int) (int, error) {
	b := d.cfg.PayloadFrameSize
	switch {
	case totalLength < 0:
		return 0, misaligned("negative slot count %d", totalLength)
	case available < totalLength:
		return 0, misaligned("detected buffer holds %d slots, want %d", available, totalLength)
	case totalLength%b != 0:
		return 0, misaligned("%d slots are not a multiple of %d bits per frame", totalLength, b)
	case totalLength/b > d.cfg.PayloadFrames:
		return 0, misaligned("%d frames exceed capacity of %d", totalLength/b, d.cfg.PayloadFrames)
	}

	eccLen := totalLength / 8
	if pad := totalLength - 8*eccLen; pad >= b {
		return 0, misaligned("%d padding slots span a whole frame", pad)
	}
	return eccLen, nil
}
