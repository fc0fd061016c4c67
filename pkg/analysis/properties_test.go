package analysis

import (
	"testing"

	"github.com/Davincible/sboxkit/pkg/catalog"
	"github.com/Davincible/sboxkit/pkg/sbox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckTriple(t *testing.T) {
	tests := []struct {
		f1, f2, f3 string
		want       Report
	}{
		{"f1", "f2", "f3", Report{AffineCommutant: true, QuadraticInvariant: true, PerfectSets: true}},
		{"f1", "f1", "f3", Report{AffineCommutant: true, QuadraticInvariant: true, PerfectSets: false}},
		{"f4", "f4", "f4", Report{AffineCommutant: false, QuadraticInvariant: true, PerfectSets: false}},
		{"f5", "f2", "f6", Report{AffineCommutant: true, QuadraticInvariant: false, PerfectSets: true}},
		{"f5", "f1", "f6", Report{AffineCommutant: true, QuadraticInvariant: false, PerfectSets: false}},
		{"f1", "f4", "f6", Report{AffineCommutant: false, QuadraticInvariant: false, PerfectSets: false}},
	}

	for _, tt := range tests {
		t.Run(tt.f1+"_"+tt.f2+"_"+tt.f3, func(t *testing.T) {
			report, err := CheckTriple(
				catalog.MustLookup(tt.f1),
				catalog.MustLookup(tt.f2),
				catalog.MustLookup(tt.f3),
			)
			require.NoError(t, err)
			assert.Equal(t, tt.want, report)
		})
	}
}

func TestCheckTripleDimensionMismatch(t *testing.T) {
	f1 := catalog.MustLookup("f1")
	wide := catalog.MustLookup("scream")

	_, err := CheckTriple(f1, f1, wide)
	assert.ErrorIs(t, err, sbox.ErrDimensionMismatch)
}

func TestCommonComponents(t *testing.T) {
	us, err := CommonComponents(catalog.MustLookup("f1"), catalog.MustLookup("f3"))
	require.NoError(t, err)
	assert.Equal(t, []uint64{2}, us)

	f4 := catalog.MustLookup("f4")
	us, err = CommonComponents(f4, f4)
	require.NoError(t, err)
	assert.Len(t, us, 15)

	_, err = CommonComponents(f4, sbox.MustNew([]uint64{0, 1}))
	assert.ErrorIs(t, err, sbox.ErrDimensionMismatch)
}

func TestQuadraticComponents(t *testing.T) {
	assert.Equal(t, []uint64{1, 4, 5}, QuadraticComponents(catalog.MustLookup("f4")))
}

func TestCompareDerivatives(t *testing.T) {
	r, err := CompareDerivatives(catalog.MustLookup("f1"), catalog.MustLookup("f3"))
	require.NoError(t, err)

	all := make([]uint64, 0, 15)
	for a := uint64(1); a < 16; a++ {
		all = append(all, a)
	}
	assert.Equal(t, all, r.SameImage)
	assert.Equal(t, []uint64{1, 8, 9}, r.AffineImage)
	assert.Equal(t, []uint64{1}, r.AffineDerivative)
	assert.Equal(t, []uint64{1}, r.Equal)

	f4 := catalog.MustLookup("f4")
	r, err = CompareDerivatives(f4, f4)
	require.NoError(t, err)
	assert.Empty(t, r.AffineDerivative)
	assert.Equal(t, []uint64{8, 9}, r.AffineImage)
	assert.Len(t, r.Equal, 15)
}

func TestDerivativeDegrees(t *testing.T) {
	degrees := DerivativeDegrees(catalog.MustLookup("f4"))
	require.Len(t, degrees, 15)
	for _, d := range degrees {
		assert.Equal(t, 2, d)
	}
}

func TestRoundFunctionStatistics(t *testing.T) {
	tests := []struct {
		name   string
		degree int
		du     int
	}{
		{"f1", 3, 2},
		{"f3", 3, 2},
		{"f2", 3, -1},
		{"f4", 3, -1},
		{"scream", 6, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := catalog.MustLookup(tt.name)
			assert.Equal(t, tt.degree, sbox.AlgebraicDegree(f))
			if tt.du < 0 {
				return
			}
			du, err := sbox.DifferentialUniformity(f)
			require.NoError(t, err)
			assert.Equal(t, tt.du, du)
		})
	}
}
