package ecc

const (
	// BlockDataSize is the maximum number of payload bytes per block.
	BlockDataSize = 8
	// ParitySize is the number of parity bytes appended to every block.
	ParitySize = 4
	// BlockSize is the length of a full encoded block.
	BlockSize = BlockDataSize + ParitySize
	// MaxCorrectable is the number of corrupted bytes per block the code
	// is guaranteed to repair.
	MaxCorrectable = ParitySize / 2
)

// generator is ∏(x - α^i) for i in [0, ParitySize), descending degree with
// the leading 1 stored at index 0.
var generator = buildGenerator()

func buildGenerator() []byte {
	g := []byte{1}
	for i := 0; i < ParitySize; i++ {
		next := make([]byte, len(g)+1)
		root := gfPow(i)
		for j, c := range g {
			next[j] ^= c
			next[j+1] ^= gfMul(c, root)
		}
		g = next
	}
	return g
}

// encodeBlock writes data followed by its parity into dst, which must have
// room for len(data)+ParitySize bytes.
func encodeBlock(dst, data []byte) {
	var rem [ParitySize]byte
	for _, d := range data {
		f := d ^ rem[0]
		copy(rem[:], rem[1:])
		rem[ParitySize-1] = 0
		if f == 0 {
			continue
		}
		for j := 0; j < ParitySize; j++ {
			rem[j] ^= gfMul(generator[j+1], f)
		}
	}

	n := copy(dst, data)
	copy(dst[n:], rem[:])
}

// syndromes evaluates the block polynomial at α^0..α^(ParitySize-1).
// It reports whether all syndromes are zero.
func syndromes(block []byte, s *[ParitySize]byte) bool {
	clean := true
	for j := 0; j < ParitySize; j++ {
		x := gfPow(j)
		var v byte
		for _, c := range block {
			v = gfMul(v, x) ^ c
		}
		s[j] = v
		if v != 0 {
			clean = false
		}
	}
	return clean
}

// correctBlock repairs block in place and returns the number of bytes it
// changed. The first byte of block is the highest-degree coefficient.
//
//nolint:cyclop
func correctBlock(block []byte) (int, error) {
	var s [ParitySize]byte
	if syndromes(block, &s) {
		return 0, nil
	}

	// Berlekamp-Massey: locator and previous locator in ascending order.
	var locator, prev, tmp [ParitySize + 1]byte
	locator[0], prev[0] = 1, 1
	order, shift := 0, 1
	lastDiscrepancy := byte(1)

	for k := 0; k < ParitySize; k++ {
		d := s[k]
		for i := 1; i <= order; i++ {
			d ^= gfMul(locator[i], s[k-i])
		}
		if d == 0 {
			shift++
			continue
		}

		coef := gfDiv(d, lastDiscrepancy)
		tmp = locator
		for i := 0; i+shift <= ParitySize; i++ {
			locator[i+shift] ^= gfMul(coef, prev[i])
		}

		if 2*order <= k {
			order = k + 1 - order
			prev = tmp
			lastDiscrepancy = d
			shift = 1
		} else {
			shift++
		}
	}

	if order > MaxCorrectable {
		return 0, ErrUncorrectable
	}
	for i := order + 1; i <= ParitySize; i++ {
		if locator[i] != 0 {
			return 0, ErrUncorrectable
		}
	}
	lambda := locator[:order+1]

	// Chien search over the positions of the shortened block only.
	n := len(block)
	var positions [MaxCorrectable]int
	found := 0
	for i := 0; i < n; i++ {
		if polyEval(lambda, gfPow(-(n - 1 - i))) != 0 {
			continue
		}
		if found == order {
			return 0, ErrUncorrectable
		}
		positions[found] = i
		found++
	}
	if found != order {
		return 0, ErrUncorrectable
	}

	// Forney: omega = S(x)·Λ(x) mod x^ParitySize.
	var omega [ParitySize]byte
	for i := 0; i < ParitySize; i++ {
		for j := 0; j <= i && j <= order; j++ {
			omega[i] ^= gfMul(lambda[j], s[i-j])
		}
	}

	for _, i := range positions[:found] {
		p := n - 1 - i
		xInv := gfPow(-p)

		// Formal derivative keeps only the odd-degree terms.
		var deriv byte
		for k := 1; k <= order; k += 2 {
			deriv ^= gfMul(lambda[k], gfPow(gfLog[xInv]*(k-1)))
		}
		if deriv == 0 {
			return 0, ErrUncorrectable
		}

		block[i] ^= gfMul(gfPow(p), gfDiv(polyEval(omega[:], xInv), deriv))
	}

	if !syndromes(block, &s) {
		return 0, ErrUncorrectable
	}

	return found, nil
}
