package sbox

import (
	"fmt"
	"log/slog"
	"runtime"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultMaxTableBits is the input size ceiling applied to difference
// tables unless overridden with WithMaxInputBits.
const DefaultMaxTableBits = 12

// MaxTableBits is the largest ceiling a configuration may request. Tables
// take 8 bytes per (a, b) entry, 512 MiB at this size.
const MaxTableBits = 13

// Pair is an (x, f(x)) point of a ZDDT cell.
type Pair struct {
	X uint64 `json:"x"`
	Y uint64 `json:"y"`
}

// Word packs the pair as x‖y with y occupying the low outputBits bits.
func (p Pair) Word(outputBits int) uint64 {
	return p.X<<outputBits | p.Y
}

type tableOptions struct {
	maxInputBits int
	workers      int
}

// TableOption configures difference table construction.
type TableOption func(*tableOptions)

// WithMaxInputBits sets the input size ceiling.
func WithMaxInputBits(bits int) TableOption {
	return func(o *tableOptions) { o.maxInputBits = bits }
}

// WithWorkers bounds the number of rows built concurrently. Values < 1 use
// GOMAXPROCS.
func WithWorkers(workers int) TableOption {
	return func(o *tableOptions) { o.workers = workers }
}

func buildOptions(opts []TableOption) tableOptions {
	o := tableOptions{maxInputBits: DefaultMaxTableBits}
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers < 1 {
		o.workers = runtime.GOMAXPROCS(0)
	}
	return o
}

func checkTableSize(f *Sbox, o tableOptions) error {
	if f.n > o.maxInputBits || f.m > o.maxInputBits {
		return fmt.Errorf("%w: %d->%d bit function exceeds table ceiling of %d bits",
			ErrResourceLimit, f.n, f.m, o.maxInputBits)
	}
	return nil
}

// row stores one line of the solution tables compactly: xs lists every x
// grouped by b = f(x) ^ f(x ^ a), ascending within each group, and the
// solutions for b are xs[offsets[b]:offsets[b+1]].
type row struct {
	offsets []uint32
	xs      []uint32
}

func (r row) cell(b uint64) []uint32 {
	return r.xs[r.offsets[b]:r.offsets[b+1]]
}

// Tables is the read-only bundle of difference tables of one function:
// the counts (DDT) and the solution sets projected on inputs (XDDT),
// outputs (YDDT) and input/output pairs (ZDDT).
type Tables struct {
	f    *Sbox
	rows []row
}

// NewTables computes all four difference tables of f in a single pass.
func NewTables(f *Sbox, opts ...TableOption) (*Tables, error) {
	o := buildOptions(opts)
	if err := checkTableSize(f, o); err != nil {
		return nil, err
	}

	start := time.Now()
	N := len(f.lut)
	t := &Tables{
		f:    f,
		rows: make([]row, N),
	}

	var g errgroup.Group
	g.SetLimit(o.workers)
	for a := 0; a < N; a++ {
		g.Go(func() error {
			t.rows[a] = buildRow(f, uint64(a))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slog.Debug("Difference tables built",
		"input_bits", f.n, "output_bits", f.m, "workers", o.workers, "duration", time.Since(start))
	return t, nil
}

// buildRow counting-sorts the inputs by their output difference.
func buildRow(f *Sbox, a uint64) row {
	offsets := make([]uint32, f.OutputSpaceSize()+1)
	for x := range f.lut {
		offsets[(f.lut[x]^f.lut[uint64(x)^a])+1]++
	}
	for b := 1; b < len(offsets); b++ {
		offsets[b] += offsets[b-1]
	}

	next := slices.Clone(offsets[:len(offsets)-1])
	xs := make([]uint32, len(f.lut))
	for x := range f.lut {
		b := f.lut[x] ^ f.lut[uint64(x)^a]
		xs[next[b]] = uint32(x)
		next[b]++
	}
	return row{offsets: offsets, xs: xs}
}

// Function returns the function the tables were built for.
func (t *Tables) Function() *Sbox { return t.f }

func (t *Tables) check(a, b uint64) error {
	if a >= uint64(len(t.rows)) {
		return fmt.Errorf("%w: input difference %#x not in [0, 2^%d)", ErrDomain, a, t.f.n)
	}
	if b >= uint64(t.f.OutputSpaceSize()) {
		return fmt.Errorf("%w: output difference %#x not in [0, 2^%d)", ErrDomain, b, t.f.m)
	}
	return nil
}

// Count returns DDT[a][b].
func (t *Tables) Count(a, b uint64) (int, error) {
	if err := t.check(a, b); err != nil {
		return 0, err
	}
	return len(t.rows[a].cell(b)), nil
}

// Row returns a copy of DDT[a].
func (t *Tables) Row(a uint64) ([]int, error) {
	if err := t.check(a, 0); err != nil {
		return nil, err
	}
	offsets := t.rows[a].offsets
	counts := make([]int, len(offsets)-1)
	for b := range counts {
		counts[b] = int(offsets[b+1] - offsets[b])
	}
	return counts, nil
}

// RowValues returns the distinct counts occurring in DDT[a], ascending.
func (t *Tables) RowValues(a uint64) ([]int, error) {
	row, err := t.Row(a)
	if err != nil {
		return nil, err
	}
	slices.Sort(row)
	return slices.Compact(row), nil
}

// Inputs returns XDDT[a][b]: the x with f(x) ^ f(x ^ a) == b.
func (t *Tables) Inputs(a, b uint64) ([]uint64, error) {
	if err := t.check(a, b); err != nil {
		return nil, err
	}
	xs := t.rows[a].cell(b)
	out := make([]uint64, len(xs))
	for i, x := range xs {
		out[i] = uint64(x)
	}
	return out, nil
}

// Outputs returns YDDT[a][b]: f(x) for every x in XDDT[a][b].
func (t *Tables) Outputs(a, b uint64) ([]uint64, error) {
	if err := t.check(a, b); err != nil {
		return nil, err
	}
	xs := t.rows[a].cell(b)
	ys := make([]uint64, len(xs))
	for i, x := range xs {
		ys[i] = t.f.lut[x]
	}
	return ys, nil
}

// Pairs returns ZDDT[a][b]: (x, f(x)) for every x in XDDT[a][b].
func (t *Tables) Pairs(a, b uint64) ([]Pair, error) {
	if err := t.check(a, b); err != nil {
		return nil, err
	}
	xs := t.rows[a].cell(b)
	ps := make([]Pair, len(xs))
	for i, x := range xs {
		ps[i] = Pair{X: uint64(x), Y: t.f.lut[x]}
	}
	return ps, nil
}

// PairWords returns ZDDT[a][b] packed with Pair.Word, ready for IsAffine.
func (t *Tables) PairWords(a, b uint64) ([]uint64, error) {
	ps, err := t.Pairs(a, b)
	if err != nil {
		return nil, err
	}
	words := make([]uint64, len(ps))
	for i, p := range ps {
		words[i] = p.Word(t.f.m)
	}
	return words, nil
}

// DDT computes only the count table of f.
func DDT(f *Sbox, opts ...TableOption) ([][]int, error) {
	o := buildOptions(opts)
	if err := checkTableSize(f, o); err != nil {
		return nil, err
	}
	N := len(f.lut)
	table := make([][]int, N)

	var g errgroup.Group
	g.SetLimit(o.workers)
	for a := 0; a < N; a++ {
		g.Go(func() error {
			row := make([]int, f.OutputSpaceSize())
			for x := range f.lut {
				row[f.lut[x]^f.lut[uint64(x)^uint64(a)]]++
			}
			table[a] = row
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return table, nil
}

// DifferentialUniformity returns the largest DDT entry over nonzero input
// differences.
func DifferentialUniformity(f *Sbox, opts ...TableOption) (int, error) {
	table, err := DDT(f, opts...)
	if err != nil {
		return 0, err
	}
	u := 0
	for _, row := range table[1:] {
		u = max(u, slices.Max(row))
	}
	return u, nil
}
