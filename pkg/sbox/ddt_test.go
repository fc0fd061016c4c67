package sbox

import (
	"slices"
	"testing"

	"github.com/Davincible/sboxkit/pkg/prng"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTables(t *testing.T) {
	f := MustNew(skinny)
	tables, err := NewTables(f, WithWorkers(3))
	require.NoError(t, err)
	assert.Same(t, f, tables.Function())

	t.Run("Rows sum to 2^n", func(t *testing.T) {
		for a := uint64(0); a < 16; a++ {
			row, err := tables.Row(a)
			require.NoError(t, err)
			sum := 0
			for _, c := range row {
				sum += c
				assert.Zero(t, c%2, "DDT entries of a permutation are even")
			}
			assert.Equal(t, 16, sum)
		}
	})

	t.Run("Row zero", func(t *testing.T) {
		row, err := tables.Row(0)
		require.NoError(t, err)
		assert.Equal(t, 16, row[0])
		for _, c := range row[1:] {
			assert.Zero(t, c)
		}
	})

	t.Run("Cells are consistent", func(t *testing.T) {
		for a := uint64(0); a < 16; a++ {
			for b := uint64(0); b < 16; b++ {
				count, err := tables.Count(a, b)
				require.NoError(t, err)
				xs, err := tables.Inputs(a, b)
				require.NoError(t, err)
				ys, err := tables.Outputs(a, b)
				require.NoError(t, err)
				pairs, err := tables.Pairs(a, b)
				require.NoError(t, err)
				words, err := tables.PairWords(a, b)
				require.NoError(t, err)

				require.Len(t, xs, count)
				require.Len(t, ys, count)
				require.Len(t, pairs, count)
				require.Len(t, words, count)
				assert.True(t, slices.IsSorted(xs))
				for i, x := range xs {
					assert.Equal(t, b, f.At(x)^f.At(x^a))
					assert.Equal(t, f.At(x), ys[i])
					assert.Equal(t, Pair{X: x, Y: f.At(x)}, pairs[i])
					assert.Equal(t, x<<4|f.At(x), words[i])
				}
			}
		}
	})

	t.Run("Row values", func(t *testing.T) {
		vals, err := tables.RowValues(0)
		require.NoError(t, err)
		assert.Equal(t, []int{0, 16}, vals)
	})

	t.Run("Out of range", func(t *testing.T) {
		_, err := tables.Count(16, 0)
		assert.ErrorIs(t, err, ErrDomain)
		_, err = tables.Inputs(0, 16)
		assert.ErrorIs(t, err, ErrDomain)
		_, err = tables.Row(99)
		assert.ErrorIs(t, err, ErrDomain)
	})
}

func TestTablesNonSquare(t *testing.T) {
	f, err := NewWithSize([]uint64{0, 1, 1, 0, 1, 0, 0, 1}, 3, 1)
	require.NoError(t, err)
	tables, err := NewTables(f)
	require.NoError(t, err)

	row, err := tables.Row(1)
	require.NoError(t, err)
	assert.Len(t, row, 2)
	assert.Equal(t, []int{0, 8}, row)
}

func TestRowInvariantsOfRandomFunctions(t *testing.T) {
	sizes := []struct{ n, m int }{{3, 2}, {4, 3}, {4, 6}, {5, 3}, {2, 5}}

	for seed := uint64(1); seed <= 8; seed++ {
		r := prng.FromUint64(seed)
		for _, size := range sizes {
			mask := uint64(1)<<size.m - 1
			lut := make([]uint64, 1<<size.n)
			for x := range lut {
				lut[x] = r.Uint64() & mask
			}
			f, err := NewWithSize(lut, size.n, size.m)
			require.NoError(t, err)

			tables, err := NewTables(f)
			require.NoError(t, err)
			counts, err := DDT(f)
			require.NoError(t, err)

			N := 1 << size.n
			for a := uint64(0); a < uint64(N); a++ {
				row, err := tables.Row(a)
				require.NoError(t, err)
				require.Len(t, row, 1<<size.m)
				assert.Equal(t, counts[a], row)

				sum := 0
				for b, c := range row {
					sum += c
					xs, err := tables.Inputs(a, uint64(b))
					require.NoError(t, err)
					assert.Len(t, xs, c)
				}
				assert.Equal(t, N, sum, "seed %d, %d->%d, a=%d", seed, size.n, size.m, a)
			}

			zero, err := tables.Row(0)
			require.NoError(t, err)
			assert.Equal(t, N, zero[0])
			for b, c := range zero[1:] {
				assert.Zero(t, c, "DDT[0][%d]", b+1)
			}
		}
	}
}

func TestTableCeiling(t *testing.T) {
	f := MustNew(skinny)
	_, err := NewTables(f, WithMaxInputBits(3))
	assert.ErrorIs(t, err, ErrResourceLimit)

	_, err = DDT(f, WithMaxInputBits(3))
	assert.ErrorIs(t, err, ErrResourceLimit)

	big := MustNew(make([]uint64, 1<<(DefaultMaxTableBits+1)))
	_, err = NewTables(big)
	assert.ErrorIs(t, err, ErrResourceLimit)
}

func TestDDTMatchesTables(t *testing.T) {
	f := MustNew(skinny)
	table, err := DDT(f)
	require.NoError(t, err)
	tables, err := NewTables(f)
	require.NoError(t, err)

	for a := range table {
		row, _ := tables.Row(uint64(a))
		assert.Equal(t, row, table[a])
	}
}

func TestDifferentialUniformity(t *testing.T) {
	tests := []struct {
		name string
		lut  []uint64
		want int
	}{
		{"SKINNY", skinny, 4},
		{"Linear map", []uint64{0, 1, 2, 3, 4, 5, 6, 7}, 8},
		{"APN 3-bit", []uint64{0, 1, 3, 6, 7, 4, 5, 2}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := DifferentialUniformity(MustNew(tt.lut))
			require.NoError(t, err)
			assert.Equal(t, tt.want, u)
		})
	}
}
