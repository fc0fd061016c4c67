// Package sbox implements vectorial Boolean functions (S-boxes) stored as
// dense lookup tables, together with the derivative, component, degree and
// difference-table machinery used to analyse them.
//
// Every Sbox is immutable: constructors copy their input and every
// transform returns a fresh instance owning its own table.
package sbox

import (
	"fmt"
	"slices"
	"strings"
)

// MaxInputBits is the largest input size a lookup table may have.
const MaxInputBits = 30

// Sbox is a function from an n-bit domain to an m-bit codomain.
type Sbox struct {
	lut []uint64
	n   int
	m   int
}

// New builds an Sbox from a literal table. The input size is derived from
// the table length and the output size from the largest value (at least 1).
func New(lut []uint64) (*Sbox, error) {
	var top uint64
	for _, v := range lut {
		if v > top {
			top = v
		}
	}
	m := BitLength(top)
	if m == 0 {
		m = 1
	}
	if !IsPowerOfTwo(len(lut)) {
		return nil, fmt.Errorf("%w: table length %d is not a power of two", ErrDimensionMismatch, len(lut))
	}
	return NewWithSize(lut, Log2(len(lut)), m)
}

// NewWithSize builds an Sbox with explicit input and output sizes, for
// tables whose implicit output size is ambiguous.
func NewWithSize(lut []uint64, inputBits, outputBits int) (*Sbox, error) {
	if inputBits < 0 || inputBits > MaxInputBits {
		return nil, fmt.Errorf("%w: input size %d bits (max %d)", ErrResourceLimit, inputBits, MaxInputBits)
	}
	if outputBits < 1 || outputBits > 64 {
		return nil, fmt.Errorf("%w: output size must be in [1, 64], got %d", ErrDimensionMismatch, outputBits)
	}
	if len(lut) != 1<<inputBits {
		return nil, fmt.Errorf("%w: table has %d entries, expected %d for %d input bits",
			ErrDimensionMismatch, len(lut), 1<<inputBits, inputBits)
	}
	for x, v := range lut {
		if BitLength(v) > outputBits {
			return nil, fmt.Errorf("%w: value %#x at index %d exceeds %d output bits", ErrDomain, v, x, outputBits)
		}
	}
	return &Sbox{lut: slices.Clone(lut), n: inputBits, m: outputBits}, nil
}

// MustNew is like New but panics on error. Intended for literal tables.
func MustNew(lut []uint64) *Sbox {
	s, err := New(lut)
	if err != nil {
		panic(err)
	}
	return s
}

// Identity returns the identity permutation on bits-bit words.
func Identity(bits int) (*Sbox, error) {
	if bits < 0 || bits > MaxInputBits {
		return nil, fmt.Errorf("%w: input size %d bits (max %d)", ErrResourceLimit, bits, MaxInputBits)
	}
	lut := make([]uint64, 1<<bits)
	for x := range lut {
		lut[x] = uint64(x)
	}
	return fromTable(lut, bits, max(bits, 1)), nil
}

// fromTable wraps a table the caller already owns and has validated.
func fromTable(lut []uint64, n, m int) *Sbox {
	return &Sbox{lut: lut, n: n, m: m}
}

// InputBits returns n.
func (s *Sbox) InputBits() int { return s.n }

// OutputBits returns m.
func (s *Sbox) OutputBits() int { return s.m }

// InputSpaceSize returns 2^n.
func (s *Sbox) InputSpaceSize() int { return len(s.lut) }

// OutputSpaceSize returns 2^m.
func (s *Sbox) OutputSpaceSize() int { return 1 << s.m }

// LUT returns a copy of the lookup table.
func (s *Sbox) LUT() []uint64 {
	return slices.Clone(s.lut)
}

// At returns f(x) without bounds checking beyond the slice's own.
func (s *Sbox) At(x uint64) uint64 {
	return s.lut[x]
}

// Eval returns f(x).
func (s *Sbox) Eval(x uint64) (uint64, error) {
	if x >= uint64(len(s.lut)) {
		return 0, fmt.Errorf("%w: x=%#x not in [0, 2^%d)", ErrDomain, x, s.n)
	}
	return s.lut[x], nil
}

// Compose returns h = s ∘ g, i.e. h(x) = s(g(x)).
func (s *Sbox) Compose(g *Sbox) (*Sbox, error) {
	if s.n != g.m {
		return nil, fmt.Errorf("%w: cannot compose %d-bit input with %d-bit output",
			ErrDimensionMismatch, s.n, g.m)
	}
	lut := make([]uint64, len(g.lut))
	for x, y := range g.lut {
		lut[x] = s.lut[y]
	}
	return fromTable(lut, g.n, s.m), nil
}

// Power returns s composed with itself k times; Power(0) is the identity.
func (s *Sbox) Power(k int) (*Sbox, error) {
	if s.n != s.m {
		return nil, fmt.Errorf("%w: power needs equal input and output sizes, got %d->%d",
			ErrDimensionMismatch, s.n, s.m)
	}
	if k < 0 {
		return nil, fmt.Errorf("%w: negative exponent %d", ErrDomain, k)
	}
	result, err := Identity(s.n)
	if err != nil {
		return nil, err
	}
	base := s
	for k > 0 {
		if k&1 == 1 {
			if result, err = result.Compose(base); err != nil {
				return nil, err
			}
		}
		k >>= 1
		if k > 0 {
			if base, err = base.Compose(base); err != nil {
				return nil, err
			}
		}
	}
	return result, nil
}

// Equal reports whether both functions have the same dimensions and table.
func (s *Sbox) Equal(other *Sbox) bool {
	if other == nil {
		return false
	}
	return s.n == other.n && s.m == other.m && slices.Equal(s.lut, other.lut)
}

// IsInvertible reports whether s is a permutation of [0, 2^n).
func (s *Sbox) IsInvertible() bool {
	if s.n != s.m {
		return false
	}
	seen := make([]bool, len(s.lut))
	for _, y := range s.lut {
		if seen[y] {
			return false
		}
		seen[y] = true
	}
	return true
}

// Inverse returns the inverse permutation.
func (s *Sbox) Inverse() (*Sbox, error) {
	if !s.IsInvertible() {
		return nil, ErrNotInvertible
	}
	lut := make([]uint64, len(s.lut))
	for x, y := range s.lut {
		lut[y] = uint64(x)
	}
	return fromTable(lut, s.n, s.m), nil
}

// Derivative returns D_a f: x ↦ f(x) ^ f(x ^ a).
func (s *Sbox) Derivative(a uint64) (*Sbox, error) {
	if a >= uint64(len(s.lut)) {
		return nil, fmt.Errorf("%w: difference %#x not in [0, 2^%d)", ErrDomain, a, s.n)
	}
	lut := make([]uint64, len(s.lut))
	for x := range s.lut {
		lut[x] = s.lut[x] ^ s.lut[uint64(x)^a]
	}
	return fromTable(lut, s.n, s.m), nil
}

// Component returns the Boolean function x ↦ u · f(x).
func (s *Sbox) Component(u uint64) (*Sbox, error) {
	if BitLength(u) > s.m {
		return nil, fmt.Errorf("%w: direction %#x not in [0, 2^%d)", ErrDomain, u, s.m)
	}
	lut := make([]uint64, len(s.lut))
	for x, y := range s.lut {
		lut[x] = ScalarProduct(u, y)
	}
	return fromTable(lut, s.n, 1), nil
}

// Xor returns the pointwise sum x ↦ f(x) ^ g(x).
func (s *Sbox) Xor(g *Sbox) (*Sbox, error) {
	if s.n != g.n || s.m != g.m {
		return nil, fmt.Errorf("%w: %d->%d and %d->%d", ErrDimensionMismatch, s.n, s.m, g.n, g.m)
	}
	lut := make([]uint64, len(s.lut))
	for x := range s.lut {
		lut[x] = s.lut[x] ^ g.lut[x]
	}
	return fromTable(lut, s.n, s.m), nil
}

// Image returns the distinct output values in ascending order.
func (s *Sbox) Image() []uint64 {
	img := slices.Clone(s.lut)
	slices.Sort(img)
	return slices.Compact(img)
}

// IsConstant reports whether every entry of the table is the same.
func (s *Sbox) IsConstant() bool {
	for _, y := range s.lut {
		if y != s.lut[0] {
			return false
		}
	}
	return true
}

func (s *Sbox) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Sbox(%d->%d)[", s.n, s.m)
	for i, y := range s.lut {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%d", y)
	}
	b.WriteString("]")
	return b.String()
}
