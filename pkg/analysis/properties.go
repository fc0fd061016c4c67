package analysis

import (
	"fmt"
	"slices"

	"github.com/Davincible/sboxkit/pkg/sbox"
)

// Report collects the three sufficient conditions checked for a 3-round
// Feistel network with round functions f1, f2, f3.
type Report struct {
	AffineCommutant    bool `json:"affine_commutant"`
	QuadraticInvariant bool `json:"quadratic_invariant"`
	PerfectSets        bool `json:"perfect_sets"`
}

// CheckTriple evaluates every condition for (f1, f2, f3).
func CheckTriple(f1, f2, f3 *sbox.Sbox, opts ...sbox.TableOption) (Report, error) {
	var r Report
	var err error
	if r.AffineCommutant, err = HasAffineCommutant(f1, f2, f3); err != nil {
		return Report{}, err
	}
	if r.QuadraticInvariant, err = HasQuadraticInvariant(f1, f2, f3); err != nil {
		return Report{}, err
	}
	if r.PerfectSets, err = HasPerfectSets(f1, f2, f3, opts...); err != nil {
		return Report{}, err
	}
	return r, nil
}

// HasAffineCommutant reports whether D_a f1 == D_a f3 is affine for some
// a ≠ 0, in which case the network commutes with an affine map.
func HasAffineCommutant(f1, _, f3 *sbox.Sbox) (bool, error) {
	if f1.InputBits() != f3.InputBits() {
		return false, fmt.Errorf("%w: %d-bit and %d-bit round functions",
			sbox.ErrDimensionMismatch, f1.InputBits(), f3.InputBits())
	}
	for a := uint64(1); a < uint64(f1.InputSpaceSize()); a++ {
		d1, _ := f1.Derivative(a)
		d3, _ := f3.Derivative(a)
		if d1.Equal(d3) && sbox.AlgebraicDegree(d1) <= 1 {
			return true, nil
		}
	}
	return false, nil
}

// HasQuadraticInvariant reports whether u·f1 + u·f3 is constant for some
// u ≠ 0.
func HasQuadraticInvariant(f1, _, f3 *sbox.Sbox) (bool, error) {
	us, err := CommonComponents(f1, f3)
	if err != nil {
		return false, err
	}
	return len(us) > 0, nil
}

// HasPerfectSets reports whether Theorem 1 yields perfect sets: f2 must be
// a permutation and some b ≠ 0 must give two-valued DDT rows {0, 2} in f1
// and f3 with D_b f1 == D_b f3 affine.
func HasPerfectSets(f1, f2, f3 *sbox.Sbox, opts ...sbox.TableOption) (bool, error) {
	if !f2.IsInvertible() {
		return false, nil
	}
	if err := requireSquarePair(f1, f3); err != nil {
		return false, err
	}
	t1, err := sbox.NewTables(f1, opts...)
	if err != nil {
		return false, err
	}
	t3, err := sbox.NewTables(f3, opts...)
	if err != nil {
		return false, err
	}
	for b := uint64(1); b < uint64(f1.InputSpaceSize()); b++ {
		ok1, _ := rowIsTwoValued(t1, b)
		ok3, _ := rowIsTwoValued(t3, b)
		if !ok1 || !ok3 {
			continue
		}
		d1, _ := f1.Derivative(b)
		d3, _ := f3.Derivative(b)
		if d1.Equal(d3) && sbox.AlgebraicDegree(d1) <= 1 {
			return true, nil
		}
	}
	return false, nil
}

// CommonComponents returns the u ≠ 0 for which u·f1 + u·f3 is constant.
func CommonComponents(f1, f3 *sbox.Sbox) ([]uint64, error) {
	if f1.InputBits() != f3.InputBits() || f1.OutputBits() != f3.OutputBits() {
		return nil, fmt.Errorf("%w: %d->%d and %d->%d", sbox.ErrDimensionMismatch,
			f1.InputBits(), f1.OutputBits(), f3.InputBits(), f3.OutputBits())
	}
	var us []uint64
	for u := uint64(1); u < uint64(f1.OutputSpaceSize()); u++ {
		c1, _ := f1.Component(u)
		c3, _ := f3.Component(u)
		sum, err := c1.Xor(c3)
		if err != nil {
			return nil, err
		}
		if sum.IsConstant() {
			us = append(us, u)
		}
	}
	return us, nil
}

// QuadraticComponents returns the u ≠ 0 for which u·f has degree at most 2.
func QuadraticComponents(f *sbox.Sbox) []uint64 {
	var us []uint64
	for u := uint64(1); u < uint64(f.OutputSpaceSize()); u++ {
		c, _ := f.Component(u)
		if sbox.AlgebraicDegree(c) <= 2 {
			us = append(us, u)
		}
	}
	return us
}

// DerivativeReport classifies the nonzero differences a of two round
// functions by how their derivatives agree.
type DerivativeReport struct {
	// SameImage lists a with Im(D_a f1) == Im(D_a f3).
	SameImage []uint64 `json:"same_image"`
	// AffineImage lists the a of SameImage whose image is affine.
	AffineImage []uint64 `json:"affine_image"`
	// AffineDerivative lists the a of AffineImage with deg D_a f1 <= 1.
	AffineDerivative []uint64 `json:"affine_derivative"`
	// Equal lists a with D_a f1 == D_a f3.
	Equal []uint64 `json:"equal"`
}

// CompareDerivatives builds the DerivativeReport of f1 and f3.
func CompareDerivatives(f1, f3 *sbox.Sbox) (DerivativeReport, error) {
	var r DerivativeReport
	if f1.InputBits() != f3.InputBits() || f1.OutputBits() != f3.OutputBits() {
		return r, fmt.Errorf("%w: %d->%d and %d->%d", sbox.ErrDimensionMismatch,
			f1.InputBits(), f1.OutputBits(), f3.InputBits(), f3.OutputBits())
	}
	for a := uint64(1); a < uint64(f1.InputSpaceSize()); a++ {
		d1, _ := f1.Derivative(a)
		d3, _ := f3.Derivative(a)
		if d1.Equal(d3) {
			r.Equal = append(r.Equal, a)
		}
		img := d1.Image()
		if !slices.Equal(img, d3.Image()) {
			continue
		}
		r.SameImage = append(r.SameImage, a)
		if !sbox.IsAffine(img) {
			continue
		}
		r.AffineImage = append(r.AffineImage, a)
		if sbox.AlgebraicDegree(d1) <= 1 {
			r.AffineDerivative = append(r.AffineDerivative, a)
		}
	}
	return r, nil
}

// DerivativeDegrees returns deg D_a f for a = 1 .. 2^n - 1.
func DerivativeDegrees(f *sbox.Sbox) []int {
	degrees := make([]int, 0, f.InputSpaceSize()-1)
	for a := uint64(1); a < uint64(f.InputSpaceSize()); a++ {
		d, _ := f.Derivative(a)
		degrees = append(degrees, sbox.AlgebraicDegree(d))
	}
	return degrees
}
