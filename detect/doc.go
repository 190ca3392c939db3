// Package detect turns modem PCM back into the per-slot scores consumed by
// modem.Decoder.
//
// Each frame is analysed for the power of its lo and hi tone per bit slot;
// the pair collapses into a signed score (see spectrum.PairScore). When a
// configuration repeats frames, the powers of all copies are summed before
// scoring.
//
// Detector.Detect works on one recorded message that starts on a frame
// boundary. Scanner works on a continuous capture: it accepts blocks of any
// size, keeps a per-window history and reports every fixed-length message it
// can decode, wherever it starts.
package detect
