// Package signal measures PCM levels and simulates a simple acoustic
// channel: a gain stage followed by additive white noise and a full-scale
// clamp.
package signal
