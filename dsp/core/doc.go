// Package core holds small sample-buffer helpers shared by the modem and
// dsp packages.
package core
