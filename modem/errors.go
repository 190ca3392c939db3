package modem

import (
	"errors"
	"fmt"
)

var (
	// ErrPayloadTooLarge reports a message longer than the configured
	// geometry can carry.
	ErrPayloadTooLarge = errors.New("modem: payload too large")
	// ErrFrameAlignment reports a detected slot count that no message of
	// the configured geometry can produce.
	ErrFrameAlignment = errors.New("modem: frame alignment mismatch")
	// ErrUncorrectable reports detected data with more errors than the ECC
	// layer can repair.
	ErrUncorrectable = errors.New("modem: uncorrectable data")
	// ErrMalformedBlock reports an encoded length that does not split into
	// whole ECC blocks.
	ErrMalformedBlock = errors.New("modem: malformed ecc block boundaries")
	// ErrShortBuffer reports an output buffer too small for the payload.
	ErrShortBuffer = errors.New("modem: output buffer too small")
	// ErrInvalidConfiguration reports non-positive or inconsistent geometry.
	ErrInvalidConfiguration = errors.New("modem: invalid configuration")
	// ErrInvalidState reports a call made out of lifecycle order.
	ErrInvalidState = errors.New("modem: invalid state")
)

// Decode status codes. Successful decodes return the non-negative number of
// payload bytes instead.
const (
	StatusFrameAlignment = -1
	StatusUncorrectable  = -2
	StatusMalformedBlock = -3
	StatusShortBuffer    = -4
	StatusUnknown        = -5
)

// StatusOf maps err to its decode status code. A nil error maps to 0.
func StatusOf(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrFrameAlignment):
		return StatusFrameAlignment
	case errors.Is(err, ErrUncorrectable):
		return StatusUncorrectable
	case errors.Is(err, ErrMalformedBlock):
		return StatusMalformedBlock
	case errors.Is(err, ErrShortBuffer):
		return StatusShortBuffer
	default:
		return StatusUnknown
	}
}

func invalidConfig(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfiguration}, args...)...)
}

func misaligned(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrFrameAlignment}, args...)...)
}
