package modem

// symbolAt returns the bits of frame in payload, slot k in bit k. Global bit
// g = frame*slots + k is taken MSB first from payload[g/8]; bits past the
// end of payload are zero padding.
func symbolAt(payload []byte, frame, slots int) uint8 {
	var symbol uint8
	total := 8 * len(payload)
	for k := 0; k < slots; k++ {
		g := frame*slots + k
		if g >= total {
			break
		}
		if payload[g/8]>>(7-g%8)&1 == 1 {
			symbol |= 1 << k
		}
	}
	return symbol
}

// packDecisions turns the first 8*n scores into n bytes, MSB first.
func packDecisions(detected []int8, n int) []byte {
	out := make([]byte, n)
	for g := 0; g < 8*n; g++ {
		if detected[g] > DecisionThreshold {
			out[g/8] |= 0x80 >> (g % 8)
		}
	}
	return out
}
