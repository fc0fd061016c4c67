package sbox

import "math/bits"

// Oplus returns the XOR of two bit vectors.
func Oplus(a, b uint64) uint64 {
	return a ^ b
}

// ScalarProduct returns the GF(2) dot product of a and b.
func ScalarProduct(a, b uint64) uint64 {
	return uint64(bits.OnesCount64(a&b) & 1)
}

// HammingWeight returns the number of set bits in x.
func HammingWeight(x uint64) int {
	return bits.OnesCount64(x)
}

// BitLength returns the number of bits needed to represent x; 0 for x == 0.
func BitLength(x uint64) int {
	return bits.Len64(x)
}

// IsPowerOfTwo reports whether k is a positive power of two.
func IsPowerOfTwo(k int) bool {
	return k > 0 && k&(k-1) == 0
}

// Log2 returns floor(log2(k)) for k > 0.
func Log2(k int) int {
	return bits.Len64(uint64(k)) - 1
}
