// Package analysis implements the structural predicates built on top of the
// S-box core: good and perfect sets of differences for Feistel networks,
// the sufficient conditions for affine commutants, quadratic invariants
// and perfect sets, and the commuting and invariant functions they predict.
package analysis

import (
	"fmt"
	"slices"

	"github.com/Davincible/sboxkit/pkg/linbasis"
	"github.com/Davincible/sboxkit/pkg/sbox"
)

func requireSquarePair(f1, f3 *sbox.Sbox) error {
	n := f1.InputBits()
	if f1.OutputBits() != n || f3.InputBits() != n || f3.OutputBits() != n {
		return fmt.Errorf("%w: round functions must share one n->n shape, got %d->%d and %d->%d",
			sbox.ErrDimensionMismatch, f1.InputBits(), f1.OutputBits(), f3.InputBits(), f3.OutputBits())
	}
	return nil
}

// rowIsTwoValued reports whether DDT[b] takes exactly the values {0, 2}.
func rowIsTwoValued(t *sbox.Tables, b uint64) (bool, error) {
	vals, err := t.RowValues(b)
	if err != nil {
		return false, err
	}
	return slices.Equal(vals, []int{0, 2}), nil
}

// liftImage places each x of img in the left half and b in the right half
// of a 2n-bit difference.
func liftImage(img []uint64, b uint64, n int) []uint64 {
	set := make([]uint64, len(img))
	for i, x := range img {
		set[i] = x<<n | b
	}
	return set
}

// CandidateGoodSets returns the sets of differences that Theorem 1 predicts
// to be good for the network SwapHalves ∘ Round(f3) ∘ Round(f2) ∘ Round(f1):
// for each b ≠ 0 such that DDT rows b of f1 and f3 both take the values
// {0, 2} and Im(D_b f1) == Im(D_b f3), the set {x‖b : x ∈ Im(D_b f1)}.
func CandidateGoodSets(f1, f3 *sbox.Sbox, opts ...sbox.TableOption) ([][]uint64, error) {
	return candidateSets(f1, f3, false, opts)
}

// CandidatePerfectSets narrows CandidateGoodSets to the b for which D_b f1
// is affine and D_b f3 is a translate of it.
func CandidatePerfectSets(f1, f3 *sbox.Sbox, opts ...sbox.TableOption) ([][]uint64, error) {
	return candidateSets(f1, f3, true, opts)
}

func candidateSets(f1, f3 *sbox.Sbox, perfect bool, opts []sbox.TableOption) ([][]uint64, error) {
	if err := requireSquarePair(f1, f3); err != nil {
		return nil, err
	}
	t1, err := sbox.NewTables(f1, opts...)
	if err != nil {
		return nil, err
	}
	t3, err := sbox.NewTables(f3, opts...)
	if err != nil {
		return nil, err
	}

	var res [][]uint64
	for b := uint64(1); b < uint64(f1.InputSpaceSize()); b++ {
		ok1, err := rowIsTwoValued(t1, b)
		if err != nil {
			return nil, err
		}
		ok3, err := rowIsTwoValued(t3, b)
		if err != nil {
			return nil, err
		}
		if !ok1 || !ok3 {
			continue
		}
		d1, _ := f1.Derivative(b)
		d3, _ := f3.Derivative(b)
		img := d1.Image()
		if !slices.Equal(img, d3.Image()) {
			continue
		}
		if perfect {
			if sbox.AlgebraicDegree(d1) > 1 {
				continue
			}
			if _, ok := sbox.AreTranslated(d1, d3); !ok {
				continue
			}
		}
		res = append(res, liftImage(img, b, f1.InputBits()))
	}
	return res, nil
}

// first returns XDDT[a][b][0] and YDDT[a][b][0], the smallest solution x
// of the cell and its image.
func first(t *sbox.Tables, a, b uint64) (x, y uint64, ok bool) {
	xs, err := t.Inputs(a, b)
	if err != nil || len(xs) == 0 {
		return 0, 0, false
	}
	return xs[0], t.Function().At(xs[0]), true
}

// spaceE collects XDDT[a0][b] for b in A and returns the basis of the
// resulting set shifted to zero, when that set is an affine space.
func spaceE(A []uint64, t *sbox.Tables) (*linbasis.Basis, []uint64, bool) {
	var temp []uint64
	for _, b := range A {
		xs, err := t.Inputs(A[0], b)
		if err != nil {
			return nil, nil, false
		}
		temp = append(temp, xs...)
	}
	if len(temp) == 0 {
		return nil, nil, false
	}
	shifted := make([]uint64, len(temp))
	for i, x := range temp {
		shifted[i] = x ^ temp[0]
	}
	basis, ok := linbasis.SubspaceBasis(shifted)
	return basis, shifted, ok
}

// IsGoodSet reports whether A is a good set of differences for the function
// whose tables are given: every DDT[a][b] over A × A has the same value, each
// ZDDT cell is affine, the XDDT cells of row A[0] form an affine space E and
// every YDDT cell is a coset of a subspace of E. A YDDT cell is taken as a
// set, so a cell in which two solutions share an image is rejected rather
// than deduplicated.
func IsGoodSet(A []uint64, t *sbox.Tables) bool {
	if len(A) == 0 {
		return false
	}
	w, err := t.Count(A[0], A[0])
	if err != nil {
		return false
	}
	for _, a := range A {
		for _, b := range A {
			c, err := t.Count(a, b)
			if err != nil || c != w {
				return false
			}
			words, _ := t.PairWords(a, b)
			if !sbox.IsAffine(words) {
				return false
			}
		}
	}

	E, _, ok := spaceE(A, t)
	if !ok {
		return false
	}
	for _, a := range A {
		for _, b := range A {
			ys, _ := t.Outputs(a, b)
			Y, ok := linbasis.CosetBasis(ys)
			if !ok {
				return false
			}
			for _, v := range Y.Vectors() {
				if !E.Contains(v) {
					return false
				}
			}
		}
	}
	return true
}

// IsPerfectSet reports whether A is a perfect set of differences: a good
// set satisfying the sum condition over every triple of A and the
// x/y alignment condition over every pair.
func IsPerfectSet(A []uint64, t *sbox.Tables) bool {
	if !IsGoodSet(A, t) {
		return false
	}
	_, E, ok := spaceE(A, t)
	if !ok {
		return false
	}
	members := make(map[uint64]struct{}, len(E))
	for _, e := range E {
		members[e] = struct{}{}
	}
	return sumCondition(A, t, members) && xyCondition(A, t, members)
}

func sumCondition(A []uint64, t *sbox.Tables, E map[uint64]struct{}) bool {
	for i := 0; i < len(A); i++ {
		for j := i + 1; j < len(A); j++ {
			for k := j + 1; k < len(A); k++ {
				d := A[i] ^ A[j] ^ A[k]
				xi, _, ok1 := first(t, A[i], A[i])
				xj, _, ok2 := first(t, A[j], A[j])
				xk, _, ok3 := first(t, A[k], A[k])
				xd, _, ok4 := first(t, d, d)
				if !(ok1 && ok2 && ok3 && ok4) {
					return false
				}
				if _, in := E[xi^xj^xk^xd]; !in {
					return false
				}
			}
		}
	}
	return true
}

func xyCondition(A []uint64, t *sbox.Tables, E map[uint64]struct{}) bool {
	x0, y0, ok := first(t, A[0], A[0])
	if !ok {
		return false
	}
	shift := x0 ^ y0
	for _, a := range A {
		for _, b := range A {
			x, _, ok1 := first(t, a, b)
			_, y, ok2 := first(t, b, a)
			if !ok1 || !ok2 {
				return false
			}
			// x ^ y must lie in the coset E ^ shift.
			if _, in := E[x^y^shift]; !in {
				return false
			}
		}
	}
	return true
}
