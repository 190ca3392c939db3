// Package ecc provides the Reed-Solomon error-correcting layer used to
// protect modem payloads against per-frame misclassification.
//
// Payloads are split into blocks of at most [BlockDataSize] data bytes, each
// followed by [ParitySize] parity bytes. A block is a shortened RS(255, 251)
// codeword over GF(2^8) and can repair up to [MaxCorrectable] corrupted bytes.
// Every block except the last carries a full [BlockDataSize] bytes, so the
// encoded length alone determines the block boundaries.
package ecc
