// Package modem converts byte payloads into multi-tone PCM audio and turns
// per-slot detection scores back into bytes.
//
// # Signal layout
//
// A message is Reed-Solomon encoded (see package ecc) and split into frames
// of [Config.SamplesPerFrame] samples. Every frame carries
// [Config.PayloadFrameSize] bits; bit k of a frame is sent as one of two
// tones (lo for 0, hi for 1) reserved for slot k. Tones sit exactly on FFT
// bins of the frame length, so each one completes an integer number of
// cycles per frame and identical consecutive frames join seamlessly. Where
// the symbol changes, the modulator fades the boundary with a short ramp.
//
// There is no preamble or postamble. A message of n bytes produces
// [Config.FramesFor](n) frames, each repeated [Config.Repeat] times.
//
// # Decoding
//
// The [Decoder] consumes one signed score per bit slot, as produced by
// package detect or any compatible detection stage. Scores above
// [DecisionThreshold] decide 1, everything else 0, so both hard 0/1
// decisions and soft scores are accepted.
//
// # Lifecycle
//
// A [Modulator] encodes exactly one message: Idle → SpectrumReady →
// Encoding → Finalized. Call [Modulator.Reset] to reuse it. Neither
// Modulator nor Decoder is safe for concurrent use; use one instance per
// goroutine.
package modem
