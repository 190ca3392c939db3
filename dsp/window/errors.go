package window

import "fmt"

func errUnknownType(name string) error {
	return fmt.Errorf("window: unknown fade type %q", name)
}

func errRampTooLong(ramp, buf int) error {
	return fmt.Errorf("window: ramp length %d exceeds buffer length %d", ramp, buf)
}
