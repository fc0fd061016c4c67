package analysis

import (
	"fmt"

	"github.com/Davincible/sboxkit/pkg/feistel"
	"github.com/Davincible/sboxkit/pkg/sbox"
)

// CommutingFunction returns G(a, f)(x‖y) = (x ^ D_a f(y) ‖ y ^ a) on 2n-bit
// words, for f: n → n.
func CommutingFunction(a uint64, f *sbox.Sbox) (*sbox.Sbox, error) {
	n := f.InputBits()
	if f.OutputBits() != n {
		return nil, fmt.Errorf("%w: expected n->n function, got %d->%d", sbox.ErrDimensionMismatch, n, f.OutputBits())
	}
	der, err := f.Derivative(a)
	if err != nil {
		return nil, err
	}
	mask := uint64(1)<<n - 1
	lut := make([]uint64, 1<<(2*n))
	for z := range lut {
		x, y := uint64(z)>>n, uint64(z)&mask
		lut[z] = (x^der.At(y))<<n | (y ^ a)
	}
	return sbox.NewWithSize(lut, 2*n, 2*n)
}

// VerifyCommutation checks Proposition 1 for S = SwapHalves ∘ Round(g3) ∘
// Round(g2) ∘ Round(g1): S ∘ G(a, g1) == G(a, g3) ∘ S for every a ≠ 0. It
// returns the first failing a, if any.
func VerifyCommutation(g1, g2, g3 *sbox.Sbox) (uint64, bool, error) {
	S, err := feistel.NetworkWithSwap(g1, g2, g3)
	if err != nil {
		return 0, false, err
	}
	for a := uint64(1); a < uint64(g1.InputSpaceSize()); a++ {
		G1, err := CommutingFunction(a, g1)
		if err != nil {
			return 0, false, err
		}
		G3, err := CommutingFunction(a, g3)
		if err != nil {
			return 0, false, err
		}
		lhs, err := S.Compose(G1)
		if err != nil {
			return 0, false, err
		}
		rhs, err := G3.Compose(S)
		if err != nil {
			return 0, false, err
		}
		if !lhs.Equal(rhs) {
			return a, false, nil
		}
	}
	return 0, true, nil
}

// LiftInvariant returns the Boolean function g(x‖y) = u·f(y) ^ u·x on
// 2n-bit words. When u·f1 + u·f3 is constant, LiftInvariant(u, f1) is an
// invariant of the 3-round network.
func LiftInvariant(u uint64, f *sbox.Sbox) (*sbox.Sbox, error) {
	n := f.InputBits()
	if f.OutputBits() != n {
		return nil, fmt.Errorf("%w: expected n->n function, got %d->%d", sbox.ErrDimensionMismatch, n, f.OutputBits())
	}
	if sbox.BitLength(u) > n {
		return nil, fmt.Errorf("%w: direction %#x not in [0, 2^%d)", sbox.ErrDomain, u, n)
	}
	mask := uint64(1)<<n - 1
	lut := make([]uint64, 1<<(2*n))
	for z := range lut {
		x, y := uint64(z)>>n, uint64(z)&mask
		lut[z] = sbox.ScalarProduct(u, f.At(y)) ^ sbox.ScalarProduct(u, x)
	}
	return sbox.NewWithSize(lut, 2*n, 1)
}

// IsInvariant reports whether the Boolean function g satisfies
// g ∘ S == g or g ∘ S == g ^ 1.
func IsInvariant(g, S *sbox.Sbox) (bool, error) {
	if g.OutputBits() != 1 {
		return false, fmt.Errorf("%w: invariant must be Boolean, got %d output bits", sbox.ErrDimensionMismatch, g.OutputBits())
	}
	gs, err := g.Compose(S)
	if err != nil {
		return false, err
	}
	if gs.Equal(g) {
		return true, nil
	}
	one, err := sbox.NewWithSize(constant(g.InputSpaceSize(), 1), g.InputBits(), 1)
	if err != nil {
		return false, err
	}
	flipped, err := g.Xor(one)
	if err != nil {
		return false, err
	}
	return gs.Equal(flipped), nil
}

func constant(size int, v uint64) []uint64 {
	lut := make([]uint64, size)
	for i := range lut {
		lut[i] = v
	}
	return lut
}
