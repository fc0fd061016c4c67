package sbox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestANF(t *testing.T) {
	// x0 AND x1 on two bits.
	and := MustNew([]uint64{0, 0, 0, 1})
	anf := ANF(and)
	require.Len(t, anf, 1)
	assert.Equal(t, []uint8{0, 0, 0, 1}, anf[0])

	// x0 XOR x1 XOR 1
	xnor := MustNew([]uint64{1, 0, 0, 1})
	assert.Equal(t, []uint8{1, 1, 1, 0}, ANF(xnor)[0])
}

func TestAlgebraicDegree(t *testing.T) {
	tests := []struct {
		name string
		lut  []uint64
		want int
	}{
		{"Constant", []uint64{1, 1, 1, 1}, 0},
		{"Zero", []uint64{0, 0, 0, 0}, 0},
		{"Linear", []uint64{0, 1, 1, 0}, 1},
		{"Affine", []uint64{1, 0, 0, 1}, 1},
		{"Product", []uint64{0, 0, 0, 1}, 2},
		{"Identity", []uint64{0, 1, 2, 3, 4, 5, 6, 7}, 1},
		{"SKINNY", skinny, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AlgebraicDegree(MustNew(tt.lut)))
		})
	}
}

func TestDerivativeLowersDegree(t *testing.T) {
	f := MustNew(skinny)
	deg := AlgebraicDegree(f)
	for a := uint64(1); a < 16; a++ {
		d, err := f.Derivative(a)
		require.NoError(t, err)
		assert.Less(t, AlgebraicDegree(d), deg)
	}
}

func TestIsAffine(t *testing.T) {
	tests := []struct {
		name   string
		points []uint64
		want   bool
	}{
		{"Single point", []uint64{5}, true},
		{"Subspace", []uint64{0, 3, 5, 6}, true},
		{"Coset", []uint64{1, 2, 4, 7}, true},
		{"Coset any order", []uint64{7, 4, 1, 2}, true},
		{"Pair", []uint64{9, 12}, true},
		{"Not closed", []uint64{0, 1, 2, 4}, false},
		{"Odd size", []uint64{0, 1, 2}, false},
		{"Duplicates", []uint64{1, 1}, false},
		{"Empty", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAffine(tt.points))
		})
	}
}

func TestTranslation(t *testing.T) {
	tr, err := Translation(0x5, 4)
	require.NoError(t, err)
	assert.True(t, tr.IsInvertible())
	assert.Equal(t, uint64(0x5), tr.At(0))
	assert.Equal(t, uint64(0xa), tr.At(0xf))

	_, err = Translation(0x10, 4)
	assert.ErrorIs(t, err, ErrDomain)
	_, err = Translation(0, 0)
	assert.ErrorIs(t, err, ErrDomain)
}

func TestAreTranslated(t *testing.T) {
	f := MustNew(skinny)
	tr, _ := Translation(0x6, 4)
	g, err := f.Compose(tr)
	require.NoError(t, err)

	c, ok := AreTranslated(f, g)
	require.True(t, ok)
	assert.Equal(t, uint64(0x6), c)

	c, ok = AreTranslated(f, f)
	assert.True(t, ok)
	assert.Equal(t, uint64(0), c)

	id, _ := Identity(4)
	_, ok = AreTranslated(f, id)
	assert.False(t, ok)

	_, ok = AreTranslated(f, MustNew([]uint64{0, 1}))
	assert.False(t, ok)
}
