package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/Davincible/sboxkit/internal/validation"
	"github.com/Davincible/sboxkit/pkg/sbox"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// CellResult describes one DDT cell together with its solution set
type CellResult struct {
	A       uint64      `json:"a"`
	B       uint64      `json:"b"`
	Count   int         `json:"count"`
	Inputs  []uint64    `json:"inputs"`
	Outputs []uint64    `json:"outputs"`
	Pairs   []sbox.Pair `json:"pairs"`
	Affine  bool        `json:"affine"`
}

// RowResult holds one DDT row and its distinct values
type RowResult struct {
	A      uint64 `json:"a"`
	Counts []int  `json:"counts"`
	Values []int  `json:"values"`
}

// NewDDTCommand creates a command printing difference distribution tables
func NewDDTCommand() *cobra.Command {
	var (
		row  string
		cell string
	)

	cmd := &cobra.Command{
		Use:   "ddt [table|name]",
		Short: "Show the difference distribution table",
		Long: `Compute the difference distribution table of an S-box.

Without flags the full count table is printed. --row prints one row of
counts; --cell prints the solutions x of f(x) ^ f(x ^ a) = b together with
their images and the (x, f(x)) pairs.`,
		Example: `  # Full table of a 4-bit function
  sboxkit ddt f1

  # One row
  sboxkit ddt f1 --row 0x1

  # Solution set of one cell
  sboxkit ddt scream --cell 0x21,0x21`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}

			f, err := loadSbox(cmd, args[0])
			if err != nil {
				return fmt.Errorf("failed to load S-box: %w", err)
			}

			tables, err := sbox.NewTables(f, s.cfg.TableOptions()...)
			if err != nil {
				return fmt.Errorf("failed to build difference tables: %w", err)
			}

			w := cmd.OutOrStdout()
			switch {
			case cell != "":
				a, b, err := validation.ParseCell(cell)
				if err != nil {
					return err
				}
				result, err := cellResult(tables, a, b)
				if err != nil {
					return err
				}
				if s.json {
					return writeJSON(w, result)
				}
				printCell(w, result)
			case row != "":
				a, err := validation.ParseUint(row)
				if err != nil {
					return err
				}
				result, err := rowResult(tables, a)
				if err != nil {
					return err
				}
				if s.json {
					return writeJSON(w, result)
				}
				heading(w, fmt.Sprintf("DDT ROW 0x%x", a))
				fmt.Fprintf(w, "Counts: %s\n", formatInts(result.Counts))
				fmt.Fprintf(w, "Values: %s\n", formatInts(result.Values))
			default:
				counts := make([][]int, f.InputSpaceSize())
				for a := range counts {
					if counts[a], err = tables.Row(uint64(a)); err != nil {
						return err
					}
				}
				if s.json {
					return writeJSON(w, counts)
				}
				printTable(w, counts)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&row, "row", "", "Print a single row for input difference a")
	cmd.Flags().StringVar(&cell, "cell", "", "Print the solution set of cell a,b")

	return cmd
}

func cellResult(t *sbox.Tables, a, b uint64) (CellResult, error) {
	count, err := t.Count(a, b)
	if err != nil {
		return CellResult{}, err
	}
	inputs, _ := t.Inputs(a, b)
	outputs, _ := t.Outputs(a, b)
	pairs, _ := t.Pairs(a, b)
	words, _ := t.PairWords(a, b)
	return CellResult{
		A:       a,
		B:       b,
		Count:   count,
		Inputs:  inputs,
		Outputs: outputs,
		Pairs:   pairs,
		Affine:  sbox.IsAffine(words),
	}, nil
}

func rowResult(t *sbox.Tables, a uint64) (RowResult, error) {
	counts, err := t.Row(a)
	if err != nil {
		return RowResult{}, err
	}
	values, err := t.RowValues(a)
	if err != nil {
		return RowResult{}, err
	}
	return RowResult{A: a, Counts: counts, Values: values}, nil
}

func printCell(w io.Writer, r CellResult) {
	cyan := color.New(color.FgCyan)
	heading(w, fmt.Sprintf("DDT CELL (0x%x, 0x%x)", r.A, r.B))
	cyan.Fprint(w, "Count:   ")
	fmt.Fprintln(w, r.Count)
	cyan.Fprint(w, "Inputs:  ")
	fmt.Fprintln(w, formatWords(r.Inputs))
	cyan.Fprint(w, "Outputs: ")
	fmt.Fprintln(w, formatWords(r.Outputs))
	cyan.Fprint(w, "Affine:  ")
	fmt.Fprintln(w, yesNo(r.Affine))
}

func printTable(w io.Writer, counts [][]int) {
	width := len(fmt.Sprint(len(counts)))
	for a, row := range counts {
		cells := make([]string, len(row))
		for b, c := range row {
			cells[b] = fmt.Sprintf("%*d", width, c)
		}
		fmt.Fprintf(w, "%*x | %s\n", width, a, strings.Join(cells, " "))
	}
}
