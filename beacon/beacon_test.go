package beacon

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMarshalLayout(t *testing.T) {
	got, err := Marshal(Beacon{Identifier: 0x1234, Timestamp: 0xabcd}, DefaultWidth)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := []byte{0x34, 0x12, 0xcd, 0xab}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Marshal() mismatch (-want +got):\n%s", diff)
	}

	back, err := Unmarshal(got)
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if back != (Beacon{Identifier: 0x1234, Timestamp: 0xabcd}) {
		t.Fatalf("Unmarshal() = %v", back)
	}
}

func TestMarshalWidths(t *testing.T) {
	for width := 1; width <= MaxWidth; width++ {
		b := Beacon{Identifier: 0x7f, Timestamp: 0x42}
		payload, err := Marshal(b, width)
		if err != nil {
			t.Fatalf("Marshal(width %d) error = %v", width, err)
		}
		if len(payload) != 2*width {
			t.Fatalf("len(Marshal(width %d)) = %d, want %d", width, len(payload), 2*width)
		}
		got, err := Unmarshal(payload)
		if err != nil || got != b {
			t.Fatalf("Unmarshal(width %d) = %v, %v; want %v", width, got, err, b)
		}
	}

	full := Beacon{Identifier: ^uint64(0), Timestamp: 1}
	payload, err := Marshal(full, MaxWidth)
	if err != nil {
		t.Fatalf("Marshal(max) error = %v", err)
	}
	if got, _ := Unmarshal(payload); got != full {
		t.Fatalf("Unmarshal(max) = %v, want %v", got, full)
	}
}

func TestMarshalErrors(t *testing.T) {
	tests := []struct {
		name  string
		b     Beacon
		width int
		want  error
	}{
		{name: "zero width", width: 0, want: ErrWidth},
		{name: "wide", width: 9, want: ErrWidth},
		{name: "identifier overflow", b: Beacon{Identifier: 0x10000}, width: 2, want: ErrOverflow},
		{name: "timestamp overflow", b: Beacon{Timestamp: 0x100}, width: 1, want: ErrOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Marshal(tt.b, tt.width); !errors.Is(err, tt.want) {
				t.Fatalf("Marshal() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestUnmarshalLength(t *testing.T) {
	for _, n := range []int{0, 3, 18} {
		if _, err := Unmarshal(make([]byte, n)); !errors.Is(err, ErrLength) {
			t.Fatalf("Unmarshal(%d bytes) error = %v, want ErrLength", n, err)
		}
	}
}
