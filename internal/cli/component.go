package cli

import (
	"fmt"

	"github.com/Davincible/sboxkit/internal/validation"
	"github.com/Davincible/sboxkit/pkg/analysis"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// NewComponentCommand creates a command extracting component functions u·f
func NewComponentCommand() *cobra.Command {
	var (
		direction string
		quadratic bool
	)

	cmd := &cobra.Command{
		Use:   "component [table|name]",
		Short: "Compute the component u·f",
		Long: `Compute the Boolean component x -> u · f(x) of an S-box. With --quadratic,
list every nonzero u for which u · f has degree at most 2 instead.`,
		Example: `  sboxkit component f4 --u 5
  sboxkit component f4 --quadratic`,
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

			w := cmd.OutOrStdout()
			if quadratic {
				us := analysis.QuadraticComponents(f)
				if s.json {
					return writeJSON(w, map[string][]uint64{"quadratic_components": us})
				}
				heading(w, "QUADRATIC COMPONENTS")
				color.New(color.FgCyan).Fprint(w, "u with deg(u·f) <= 2: ")
				fmt.Fprintln(w, formatWords(us))
				return nil
			}

			u, err := validation.ParseUint(direction)
			if err != nil {
				return err
			}
			c, err := f.Component(u)
			if err != nil {
				return err
			}

			result := newFunctionResult(c)
			if s.json {
				return writeJSON(w, result)
			}
			printFunction(cmd, fmt.Sprintf("COMPONENT 0x%x·f", u), result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&direction, "u", "u", "1", "Output direction u")
	cmd.Flags().BoolVar(&quadratic, "quadratic", false, "List the u whose component is at most quadratic")

	return cmd
}
