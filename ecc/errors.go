package ecc

import (
	"errors"
	"fmt"
)

var (
	// ErrPayloadTooLarge is returned when a payload exceeds the coder's maximum.
	ErrPayloadTooLarge = errors.New("ecc: payload too large")
	// ErrUncorrectable is returned when a block holds more errors than the
	// code can repair.
	ErrUncorrectable = errors.New("ecc: uncorrectable block")
	// ErrMalformedBlock is returned when an encoded length cannot be split
	// into valid blocks.
	ErrMalformedBlock = errors.New("ecc: malformed block boundaries")
)

func validateMaxPayload(n int) error {
	if n <= 0 {
		return fmt.Errorf("ecc: max payload must be > 0: %d", n)
	}
	return nil
}
