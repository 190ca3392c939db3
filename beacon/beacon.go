package beacon

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Width limits in bytes per field.
const (
	DefaultWidth = 2
	MaxWidth     = 8
)

var (
	// ErrWidth reports a field width outside [1, MaxWidth].
	ErrWidth = errors.New("beacon: invalid field width")
	// ErrOverflow reports a value that does not fit the field width.
	ErrOverflow = errors.New("beacon: value exceeds field width")
	// ErrLength reports a payload that cannot hold two equal-width fields.
	ErrLength = errors.New("beacon: invalid payload length")
)

// Beacon is one decoded broadcast.
type Beacon struct {
	Identifier uint64
	Timestamp  uint64
}

func (b Beacon) String() string {
	return fmt.Sprintf("id=%d ts=%d", b.Identifier, b.Timestamp)
}

// Marshal encodes b with width bytes per field.
func Marshal(b Beacon, width int) ([]byte, error) {
	if width < 1 || width > MaxWidth {
		return nil, fmt.Errorf("%w: %d", ErrWidth, width)
	}
	if !fits(b.Identifier, width) {
		return nil, fmt.Errorf("%w: identifier %d in %d bytes", ErrOverflow, b.Identifier, width)
	}
	if !fits(b.Timestamp, width) {
		return nil, fmt.Errorf("%w: timestamp %d in %d bytes", ErrOverflow, b.Timestamp, width)
	}

	var buf [2 * MaxWidth]byte
	binary.LittleEndian.PutUint64(buf[:MaxWidth], b.Identifier)
	binary.LittleEndian.PutUint64(buf[MaxWidth:], b.Timestamp)

	out := make([]byte, 0, 2*width)
	out = append(out, buf[:width]...)
	out = append(out, buf[MaxWidth:MaxWidth+width]...)
	return out, nil
}

// Unmarshal decodes a payload produced by Marshal. The field width is half
// the payload length.
func Unmarshal(payload []byte) (Beacon, error) {
	if len(payload) == 0 || len(payload)%2 != 0 || len(payload) > 2*MaxWidth {
		return Beacon{}, fmt.Errorf("%w: %d bytes", ErrLength, len(payload))
	}

	width := len(payload) / 2
	return Beacon{
		Identifier: littleEndian(payload[:width]),
		Timestamp:  littleEndian(payload[width:]),
	}, nil
}

func fits(v uint64, width int) bool {
	return width == MaxWidth || v>>(8*uint(width)) == 0
}

func littleEndian(b []byte) uint64 {
	var v uint64
	for i := len(b) - 1; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v
}
