// Package linbasis extracts GF(2) bases from sets of bit vectors and tests
// span membership.
package linbasis

import (
	"math/bits"
	"slices"
)

// Basis is a set of linearly independent bit vectors kept in echelon form:
// no two stored vectors share a leading bit.
type Basis struct {
	// pivots maps a leading bit position to the reduced vector owning it.
	pivots map[int]uint64
	// vectors holds the accepted input vectors in insertion order.
	vectors []uint64
}

// New returns an empty basis.
func New() *Basis {
	return &Basis{pivots: make(map[int]uint64)}
}

// Reduce builds a basis of the space spanned by vectors, processing them in
// order and keeping each one that is independent of those already kept.
func Reduce(vectors []uint64) *Basis {
	b := New()
	for _, v := range vectors {
		b.Add(v)
	}
	return b
}

// reduce XORs out leading bits of v using the stored pivots.
func (b *Basis) reduce(v uint64) uint64 {
	for v != 0 {
		lead := bits.Len64(v) - 1
		p, ok := b.pivots[lead]
		if !ok {
			return v
		}
		v ^= p
	}
	return 0
}

// Add inserts v if it is not already in the span and reports whether it
// was kept.
func (b *Basis) Add(v uint64) bool {
	r := b.reduce(v)
	if r == 0 {
		return false
	}
	b.pivots[bits.Len64(r)-1] = r
	b.vectors = append(b.vectors, v)
	return true
}

// Contains reports whether v lies in the span of the basis.
func (b *Basis) Contains(v uint64) bool {
	return b.reduce(v) == 0
}

// Len returns the dimension of the spanned space.
func (b *Basis) Len() int {
	return len(b.vectors)
}

// Vectors returns the kept input vectors in insertion order.
func (b *Basis) Vectors() []uint64 {
	return slices.Clone(b.vectors)
}

// Span enumerates all 2^Len elements of the spanned space in Gray-code
// order, starting from zero.
func (b *Basis) Span() []uint64 {
	out := make([]uint64, 1<<len(b.vectors))
	var acc uint64
	for i := 1; i < len(out); i++ {
		acc ^= b.vectors[bits.TrailingZeros(uint(i))]
		out[i] = acc
	}
	return out
}

// IsInSpan reports whether v lies in the span of basis.
func IsInSpan(basis []uint64, v uint64) bool {
	return Reduce(basis).Contains(v)
}

// SubspaceBasis returns a basis of points when points is exactly a GF(2)
// vector space: distinct elements, 2^s of them, spanning an s-dimensional
// space.
func SubspaceBasis(points []uint64) (*Basis, bool) {
	n := len(points)
	if n == 0 || n&(n-1) != 0 {
		return nil, false
	}
	s := bits.Len(uint(n)) - 1
	seen := make(map[uint64]struct{}, n)
	for _, p := range points {
		if _, dup := seen[p]; dup {
			return nil, false
		}
		seen[p] = struct{}{}
	}
	b := Reduce(points)
	if b.Len() != s {
		return nil, false
	}
	return b, true
}

// IsVectorSpace reports whether points is exactly a GF(2) vector space.
func IsVectorSpace(points []uint64) bool {
	_, ok := SubspaceBasis(points)
	return ok
}

// CosetBasis shifts points by points[0] and returns the basis of the
// resulting set when it is a vector space, i.e. when points is a coset.
func CosetBasis(points []uint64) (*Basis, bool) {
	if len(points) == 0 {
		return nil, false
	}
	shifted := make([]uint64, len(points))
	for i, p := range points {
		shifted[i] = p ^ points[0]
	}
	return SubspaceBasis(shifted)
}
