package cli

import (
	"fmt"
	"io"

	"github.com/Davincible/sboxkit/pkg/analysis"
	"github.com/Davincible/sboxkit/pkg/feistel"
	"github.com/Davincible/sboxkit/pkg/sbox"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// SetResult is one candidate set and whether the network confirms it
type SetResult struct {
	Differences []uint64 `json:"differences"`
	Verified    bool     `json:"verified"`
}

// GoodSetsResult lists the candidate good and perfect sets of a network
type GoodSetsResult struct {
	GoodSets    []SetResult `json:"good_sets"`
	PerfectSets []SetResult `json:"perfect_sets"`
}

// NewGoodSetsCommand creates a command finding good and perfect sets of differences
func NewGoodSetsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goodsets f1 f2 f3",
		Short: "Find and verify good and perfect sets of differences",
		Long: `Derive the candidate good and perfect sets of differences predicted by the
round functions f1 and f3, build the network SwapHalves ∘ R(f3) ∘ R(f2) ∘ R(f1)
and verify every candidate against the network's difference tables.`,
		Example: `  sboxkit goodsets f1 f2 f3`,
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}

			fs := make([]*sbox.Sbox, 3)
			for i, arg := range args {
				if fs[i], err = loadSquareSbox(cmd, arg); err != nil {
					return fmt.Errorf("f%d: %w", i+1, err)
				}
			}

			opts := s.cfg.TableOptions()
			good, err := analysis.CandidateGoodSets(fs[0], fs[2], opts...)
			if err != nil {
				return fmt.Errorf("failed to derive good sets: %w", err)
			}
			perfect, err := analysis.CandidatePerfectSets(fs[0], fs[2], opts...)
			if err != nil {
				return fmt.Errorf("failed to derive perfect sets: %w", err)
			}

			net, err := feistel.NetworkWithSwap(fs...)
			if err != nil {
				return fmt.Errorf("failed to build network: %w", err)
			}
			tables, err := sbox.NewTables(net, opts...)
			if err != nil {
				return fmt.Errorf("failed to build difference tables: %w", err)
			}

			var result GoodSetsResult
			for _, A := range good {
				result.GoodSets = append(result.GoodSets, SetResult{Differences: A, Verified: analysis.IsGoodSet(A, tables)})
			}
			for _, A := range perfect {
				result.PerfectSets = append(result.PerfectSets, SetResult{Differences: A, Verified: analysis.IsPerfectSet(A, tables)})
			}

			w := cmd.OutOrStdout()
			if s.json {
				return writeJSON(w, result)
			}

			heading(w, "GOOD AND PERFECT SETS")
			printSets(w, "good", result.GoodSets)
			fmt.Fprintln(w)
			printSets(w, "perfect", result.PerfectSets)
			return nil
		},
	}

	return cmd
}

func printSets(w io.Writer, kind string, sets []SetResult) {
	cyan := color.New(color.FgCyan, color.Bold)
	verified := 0
	for _, set := range sets {
		if set.Verified {
			verified++
		}
	}
	cyan.Fprintf(w, "%d candidate %s sets, %d verified\n", len(sets), kind, verified)
	for _, set := range sets {
		fmt.Fprintf(w, "  %s %s\n", yesNo(set.Verified), formatWords(set.Differences))
	}
}
