package ecc

// primitivePoly is x^8 + x^4 + x^3 + x^2 + 1.
const primitivePoly = 0x11d

// gfExp holds α^i for i in [0, 510) so products can skip the modulo.
// gfLog is its inverse on non-zero elements.
var gfExp, gfLog = buildTables()

func buildTables() (exp [512]byte, log [256]int) {
	x := 1
	for i := 0; i < 255; i++ {
		exp[i] = byte(x)
		log[x] = i

		x <<= 1
		if x&0x100 != 0 {
			x ^= primitivePoly
		}
	}

	for i := 255; i < len(exp); i++ {
		exp[i] = exp[i-255]
	}

	return exp, log
}

func gfMul(a, b byte) byte {
	if a == 0 || b == 0 {
		return 0
	}
	return gfExp[gfLog[a]+gfLog[b]]
}

// gfDiv panics on division by zero; callers check the divisor first.
func gfDiv(a, b byte) byte {
	if b == 0 {
		panic("ecc: division by zero in GF(256)")
	}
	if a == 0 {
		return 0
	}
	return gfExp[(gfLog[a]+255-gfLog[b])%255]
}

// gfPow returns α^e for any integer e.
func gfPow(e int) byte {
	e %= 255
	if e < 0 {
		e += 255
	}
	return gfExp[e]
}

// polyEval evaluates p at x, with p in ascending order of degree.
func polyEval(p []byte, x byte) byte {
	var y byte
	for i := len(p) - 1; i >= 0; i-- {
		y = gfMul(y, x) ^ p[i]
	}
	return y
}
