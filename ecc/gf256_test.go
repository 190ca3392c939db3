package ecc

import "testing"

func TestGFFieldAxioms(t *testing.T) {
	for a := 1; a < 256; a++ {
		if got := gfMul(byte(a), 1); got != byte(a) {
			t.Fatalf("%d*1 = %d", a, got)
		}
		if got := gfDiv(byte(a), byte(a)); got != 1 {
			t.Fatalf("%d/%d = %d, want 1", a, a, got)
		}
		for _, b := range []byte{2, 3, 0x53, 0xca, 0xff} {
			if gfDiv(gfMul(byte(a), b), b) != byte(a) {
				t.Fatalf("(%d*%d)/%d != %d", a, b, b, a)
			}
		}
	}
}

func TestGeneratorRoots(t *testing.T) {
	desc := generator
	asc := make([]byte, len(desc))
	for i, c := range desc {
		asc[len(desc)-1-i] = c
	}
	for i := 0; i < ParitySize; i++ {
		if v := polyEval(asc, gfPow(i)); v != 0 {
			t.Fatalf("g(α^%d) = %d, want 0", i, v)
		}
	}
}

func TestGFPowNegative(t *testing.T) {
	for e := 1; e < 255; e++ {
		if gfMul(gfPow(e), gfPow(-e)) != 1 {
			t.Fatalf("α^%d * α^-%d != 1", e, e)
		}
	}
}
