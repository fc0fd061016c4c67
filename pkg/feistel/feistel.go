// Package feistel builds Feistel networks out of S-box round functions.
//
// Words are split with the left half in the most significant bits: a 2n-bit
// word z is (x‖y) with x = z >> n and y = z & (2^n - 1).
package feistel

import (
	"fmt"
	"math/rand/v2"

	"github.com/Davincible/sboxkit/pkg/sbox"
)

// Round returns the Feistel round (x‖y) ↦ (y ‖ x ^ f(y)) for f: n → n.
// The result is a permutation whatever f is.
func Round(f *sbox.Sbox) (*sbox.Sbox, error) {
	n := f.InputBits()
	if f.OutputBits() != n {
		return nil, fmt.Errorf("%w: round function must be n->n, got %d->%d",
			sbox.ErrDimensionMismatch, n, f.OutputBits())
	}
	if 2*n > sbox.MaxInputBits {
		return nil, fmt.Errorf("%w: %d-bit round function", sbox.ErrResourceLimit, n)
	}
	mask := uint64(1)<<n - 1
	lut := make([]uint64, 1<<(2*n))
	for z := range lut {
		x, y := uint64(z)>>n, uint64(z)&mask
		lut[z] = y<<n | (x ^ f.At(y))
	}
	return sbox.NewWithSize(lut, 2*n, 2*n)
}

// SwapHalves returns the permutation (x‖y) ↦ (y‖x) on bits-bit words.
func SwapHalves(bits int) (*sbox.Sbox, error) {
	if bits <= 0 || bits%2 != 0 || bits > sbox.MaxInputBits {
		return nil, fmt.Errorf("%w: swap needs a positive even bit length, got %d", sbox.ErrDomain, bits)
	}
	half := bits / 2
	mask := uint64(1)<<half - 1
	lut := make([]uint64, 1<<bits)
	for z := range lut {
		lut[z] = (uint64(z)&mask)<<half | uint64(z)>>half
	}
	return sbox.NewWithSize(lut, bits, bits)
}

// Network composes the Feistel rounds of the given round functions, the
// first one applied first: Round(fk) ∘ … ∘ Round(f1).
func Network(rounds ...*sbox.Sbox) (*sbox.Sbox, error) {
	if len(rounds) == 0 {
		return nil, fmt.Errorf("%w: network needs at least one round", sbox.ErrDomain)
	}
	var net *sbox.Sbox
	for i, f := range rounds {
		r, err := Round(f)
		if err != nil {
			return nil, fmt.Errorf("round %d: %w", i+1, err)
		}
		if net == nil {
			net = r
			continue
		}
		if net, err = r.Compose(net); err != nil {
			return nil, fmt.Errorf("round %d: %w", i+1, err)
		}
	}
	return net, nil
}

// NetworkWithSwap is Network followed by a final half swap, the shape of
// Scream's S-box: SwapHalves ∘ Round(f3) ∘ Round(f2) ∘ Round(f1).
func NetworkWithSwap(rounds ...*sbox.Sbox) (*sbox.Sbox, error) {
	net, err := Network(rounds...)
	if err != nil {
		return nil, err
	}
	return withSwap(net)
}

// Iterated returns Round(f)^rounds ∘ SwapHalves, the shape of iScream's
// S-box: the halves are swapped first, then the same round is applied
// rounds times.
func Iterated(f *sbox.Sbox, rounds int) (*sbox.Sbox, error) {
	r, err := Round(f)
	if err != nil {
		return nil, err
	}
	net, err := r.Power(rounds)
	if err != nil {
		return nil, err
	}
	sw, err := SwapHalves(r.InputBits())
	if err != nil {
		return nil, err
	}
	return net.Compose(sw)
}

func withSwap(net *sbox.Sbox) (*sbox.Sbox, error) {
	sw, err := SwapHalves(net.OutputBits())
	if err != nil {
		return nil, err
	}
	return sw.Compose(net)
}

// RandomFunction returns a function with independent uniform table entries.
func RandomFunction(r *rand.Rand, inputBits, outputBits int) (*sbox.Sbox, error) {
	if inputBits < 0 || inputBits > sbox.MaxInputBits {
		return nil, fmt.Errorf("%w: input size %d bits", sbox.ErrResourceLimit, inputBits)
	}
	if outputBits < 1 || outputBits > 64 {
		return nil, fmt.Errorf("%w: output size %d bits", sbox.ErrDomain, outputBits)
	}
	lut := make([]uint64, 1<<inputBits)
	mask := ^uint64(0) >> (64 - outputBits)
	for x := range lut {
		lut[x] = r.Uint64() & mask
	}
	return sbox.NewWithSize(lut, inputBits, outputBits)
}

// RandomPermutation returns a uniformly random permutation of bits-bit
// words.
func RandomPermutation(r *rand.Rand, bits int) (*sbox.Sbox, error) {
	if bits < 1 || bits > sbox.MaxInputBits {
		return nil, fmt.Errorf("%w: input size %d bits", sbox.ErrResourceLimit, bits)
	}
	lut := make([]uint64, 1<<bits)
	for x := range lut {
		lut[x] = uint64(x)
	}
	r.Shuffle(len(lut), func(i, j int) { lut[i], lut[j] = lut[j], lut[i] })
	return sbox.NewWithSize(lut, bits, bits)
}
