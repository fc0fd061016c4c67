package sbox

import (
	"fmt"
	"slices"
)

// ANF returns, for each output coordinate i, the algebraic normal form of
// the Boolean function x ↦ bit i of f(x). Entry [i][u] is the coefficient
// of the monomial x^u.
func ANF(f *Sbox) [][]uint8 {
	coords := make([][]uint8, f.m)
	for i := range coords {
		coords[i] = coordinateANF(f, i)
	}
	return coords
}

// coordinateANF applies the binary Möbius transform in place to the truth
// table of coordinate i.
func coordinateANF(f *Sbox, i int) []uint8 {
	t := make([]uint8, len(f.lut))
	for x, y := range f.lut {
		t[x] = uint8(y>>i) & 1
	}
	for step := 1; step < len(t); step <<= 1 {
		for x := range t {
			if x&step != 0 {
				t[x] ^= t[x^step]
			}
		}
	}
	return t
}

// AlgebraicDegree returns the largest weight of a monomial with a nonzero
// coefficient in any coordinate of f. Constant functions have degree 0.
func AlgebraicDegree(f *Sbox) int {
	degree := 0
	for i := 0; i < f.m; i++ {
		for u, c := range coordinateANF(f, i) {
			if c != 0 {
				degree = max(degree, HammingWeight(uint64(u)))
			}
		}
	}
	return degree
}

// IsAffine reports whether points is a coset of a GF(2) subspace, i.e.
// closed under a ^ b ^ c. Sets with duplicates or whose size is not a power
// of two are never affine.
func IsAffine(points []uint64) bool {
	if !IsPowerOfTwo(len(points)) {
		return false
	}
	members := make(map[uint64]struct{}, len(points))
	for _, p := range points {
		if _, dup := members[p]; dup {
			return false
		}
		members[p] = struct{}{}
	}
	// With a fixed origin, closure under a^b^c reduces to the shifted set
	// being closed under XOR.
	origin := points[0]
	for i, a := range points {
		for _, b := range points[i+1:] {
			if _, ok := members[a^b^origin]; !ok {
				return false
			}
		}
	}
	return true
}

// Translation returns the permutation x ↦ x ^ t on bits-bit words.
func Translation(t uint64, bits int) (*Sbox, error) {
	if bits < 1 || bits > MaxInputBits {
		return nil, fmt.Errorf("%w: bit length %d", ErrDomain, bits)
	}
	if BitLength(t) > bits {
		return nil, fmt.Errorf("%w: translation %#x not in [0, 2^%d)", ErrDomain, t, bits)
	}
	lut := make([]uint64, 1<<bits)
	for x := range lut {
		lut[x] = uint64(x) ^ t
	}
	return fromTable(lut, bits, bits), nil
}

// AreTranslated reports whether f(x ^ c) == g(x) for some c, returning the
// smallest such c.
func AreTranslated(f, g *Sbox) (uint64, bool) {
	if f.n != g.n || f.m != g.m {
		return 0, false
	}
	shifted := make([]uint64, len(f.lut))
	for c := range f.lut {
		for x := range shifted {
			shifted[x] = f.lut[x^c]
		}
		if slices.Equal(shifted, g.lut) {
			return uint64(c), true
		}
	}
	return 0, false
}
