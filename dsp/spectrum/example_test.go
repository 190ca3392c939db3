package spectrum_test

import (
	"fmt"

	"github.com/cwbudde/algo-modem/dsp/spectrum"
)

func ExampleGenerate() {
	tab, _ := spectrum.Generate(spectrum.Layout{
		SampleRate: 48000,
		FFTSize:    1024,
		StartBin:   40,
		Slots:      2,
		Spacing:    2,
	})
	for slot := 0; slot < tab.Slots(); slot++ {
		fmt.Printf("slot %d: lo %.3f Hz, hi %.3f Hz\n", slot, tab.Lo(slot).Frequency, tab.Hi(slot).Frequency)
	}
	// Output:
	// slot 0: lo 1875.000 Hz, hi 1968.750 Hz
	// slot 1: lo 2062.500 Hz, hi 2156.250 Hz
}

func ExamplePairScore() {
	fmt.Println(spectrum.PairScore(0.1, 9.9), spectrum.PairScore(4, 1))
	// Output:
	// 124 -76
}
