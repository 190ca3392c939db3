package window_test

import (
	"fmt"

	"github.com/cwbudde/algo-modem/dsp/window"
)

func ExampleRise() {
	r := window.Rise(window.TypeLinear, 4)
	fmt.Printf("%.3f %.3f %.3f %.3f\n", r[0], r[1], r[2], r[3])
	// Output:
	// 0.125 0.375 0.625 0.875
}

func ExampleFadeOut() {
	buf := []float64{1, 1, 1, 1}
	_ = window.FadeOut(buf, window.Fall(window.TypeHann, 2))
	fmt.Printf("%.3f %.3f %.3f %.3f\n", buf[0], buf[1], buf[2], buf[3])
	// Output:
	// 1.000 1.000 0.854 0.146
}
