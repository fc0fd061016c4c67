package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCommand assembles the sboxkit command tree
func NewRootCommand(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sboxkit",
		Short: "Differential and algebraic analysis of S-boxes",
		Long: `sboxkit analyses vectorial Boolean functions (S-boxes) given as lookup tables.

Features:
- Difference distribution tables (counts and solution sets)
- Derivatives, components and algebraic degree
- Feistel network construction from round functions
- Good/perfect sets of differences and invariant checks

Tables are given as comma separated integers (0x hex allowed), as a
catalog name (scream, iscream, skinny4, f1..f6) or as "-" to read from stdin.
A literal table's output size is inferred from its largest entry unless
--output-bits is given; commands working on Feistel round functions assume
as many output bits as input bits.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
					Level: slog.LevelDebug,
				})))
			}
		},
	}

	rootCmd.AddCommand(
		NewInfoCommand(),
		NewDDTCommand(),
		NewDerivativeCommand(),
		NewComponentCommand(),
		NewFeistelCommand(),
		NewCheckCommand(),
		NewGoodSetsCommand(),
		NewVerifyCommand(),
		NewConfigCommand(),
	)

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "Output in JSON format")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().Int("output-bits", 0, "Output size of literal tables (0 infers it)")

	return rootCmd
}
