// Package spectrum holds the tone layout shared by the modulator and the
// detection stage, together with the bin-power helpers both sides use.
//
// A [Table] assigns every bit slot of a frame a pair of FFT bins: the "lo"
// tone signals a 0 and the "hi" tone signals a 1. Tables are pure functions
// of their [Layout], so an encoder and a decoder built from the same layout
// agree on every tone without sharing state.
package spectrum
