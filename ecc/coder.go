package ecc

import "fmt"

// DefaultMaxPayload is the largest payload a Coder accepts unless configured
// otherwise.
const DefaultMaxPayload = 1024

// Coder encodes payloads into Reed-Solomon protected blocks and corrects
// received block sequences. A Coder is immutable after construction.
type Coder struct {
	maxPayload int
}

// Option configures a Coder.
type Option func(*Coder)

// WithMaxPayload sets the largest payload length accepted by Encode.
// Non-positive values are ignored.
func WithMaxPayload(n int) Option {
	return func(c *Coder) {
		if validateMaxPayload(n) == nil {
			c.maxPayload = n
		}
	}
}

// NewCoder creates a Coder.
func NewCoder(opts ...Option) *Coder {
	c := &Coder{maxPayload: DefaultMaxPayload}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// MaxPayload returns the largest payload length accepted by Encode.
func (c *Coder) MaxPayload() int { return c.maxPayload }

// EncodedLen returns the encoded length of an n-byte payload.
func EncodedLen(n int) int {
	if n <= 0 {
		return 0
	}
	blocks := (n + BlockDataSize - 1) / BlockDataSize
	return n + blocks*ParitySize
}

// DecodedLen returns the payload length carried by an encoded sequence of
// m bytes. It fails with ErrMalformedBlock when the trailing block is too
// short to hold any data.
func DecodedLen(m int) (int, error) {
	if m < 0 {
		return 0, fmt.Errorf("%w: negative length %d", ErrMalformedBlock, m)
	}
	if m == 0 {
		return 0, nil
	}

	full := m / BlockSize
	tail := m % BlockSize
	if tail == 0 {
		return full * BlockDataSize, nil
	}
	if tail <= ParitySize {
		return 0, fmt.Errorf("%w: trailing block of %d bytes", ErrMalformedBlock, tail)
	}
	return full*BlockDataSize + tail - ParitySize, nil
}

// Encode returns the block-coded form of payload. The result is
// deterministic and has length EncodedLen(len(payload)).
func (c *Coder) Encode(payload []byte) ([]byte, error) {
	if len(payload) > c.maxPayload {
		return nil, fmt.Errorf("%w: %d > %d bytes", ErrPayloadTooLarge, len(payload), c.maxPayload)
	}

	out := make([]byte, EncodedLen(len(payload)))
	dst := out
	for len(payload) > 0 {
		k := min(len(payload), BlockDataSize)
		encodeBlock(dst[:k+ParitySize], payload[:k])
		payload = payload[k:]
		dst = dst[k+ParitySize:]
	}
	return out, nil
}

// Correct repairs received and returns the recovered payload together with
// the number of corrected bytes. received is not modified.
//
// ErrUncorrectable reports that at least one block held more than
// MaxCorrectable errors; the returned payload is nil in that case.
func (c *Coder) Correct(received []byte) ([]byte, int, error) {
	n, err := DecodedLen(len(received))
	if err != nil {
		return nil, 0, err
	}
	if n > c.maxPayload {
		return nil, 0, fmt.Errorf("%w: %d > %d bytes", ErrPayloadTooLarge, n, c.maxPayload)
	}

	work := append([]byte(nil), received...)
	payload := make([]byte, 0, n)
	corrections := 0

	for index := 0; len(work) > 0; index++ {
		size := min(len(work), BlockSize)
		block := work[:size]

		fixed, err := correctBlock(block)
		if err != nil {
			return nil, 0, fmt.Errorf("block %d: %w", index, err)
		}
		corrections += fixed

		payload = append(payload, block[:size-ParitySize]...)
		work = work[size:]
	}

	return payload, corrections, nil
}
