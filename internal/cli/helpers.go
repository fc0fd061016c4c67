package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Davincible/sboxkit/internal/validation"
	"github.com/Davincible/sboxkit/pkg/catalog"
	"github.com/Davincible/sboxkit/pkg/config"
	"github.com/Davincible/sboxkit/pkg/sbox"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// settings carries the resolved configuration of one command invocation
type settings struct {
	cfg  *config.Config
	json bool
}

// loadSettings merges the config file with the global flags
func loadSettings(cmd *cobra.Command) (*settings, error) {
	cm, err := config.NewConfigManager()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg := cm.GetConfig()

	s := &settings{cfg: cfg, json: cfg.UI.Format == "json"}
	if cmd.Flags().Changed("json") {
		s.json, _ = cmd.Flags().GetBool("json")
	}

	noColor, _ := cmd.Flags().GetBool("no-color")
	if noColor || !cfg.UI.UseColor {
		color.NoColor = true
	}

	return s, nil
}

// loadSbox resolves a catalog name, a literal table or "-" for stdin.
// Literal tables take their output size from --output-bits, or from the
// largest entry when the flag is unset.
func loadSbox(cmd *cobra.Command, arg string) (*sbox.Sbox, error) {
	return resolveSbox(cmd, arg, false)
}

// loadSquareSbox is loadSbox for commands that need n -> n functions:
// without --output-bits a literal table gets as many output bits as input
// bits.
func loadSquareSbox(cmd *cobra.Command, arg string) (*sbox.Sbox, error) {
	return resolveSbox(cmd, arg, true)
}

func resolveSbox(cmd *cobra.Command, arg string, square bool) (*sbox.Sbox, error) {
	arg = strings.TrimSpace(arg)

	if arg == "-" {
		input, err := readTableInput(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read table: %w", err)
		}
		arg = input
	}

	if validation.IsName(arg) {
		return catalog.Lookup(arg)
	}

	table, err := validation.ParseTable(arg)
	if err != nil {
		return nil, err
	}

	outputBits, _ := cmd.Flags().GetInt("output-bits")
	if outputBits < 0 {
		return nil, fmt.Errorf("--output-bits must not be negative, got %d", outputBits)
	}
	if outputBits == 0 && square {
		outputBits = max(sbox.Log2(len(table)), 1)
	}
	if outputBits == 0 {
		return sbox.New(table)
	}
	return sbox.NewWithSize(table, sbox.Log2(len(table)), outputBits)
}

// readTableInput reads a table from in, prompting when in is a terminal
func readTableInput(in io.Reader) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(os.Stderr, "Enter lookup table (comma separated, empty line to finish): ")
	}

	scanner := bufio.NewScanner(in)
	var lines []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" && len(lines) > 0 {
			break
		}
		lines = append(lines, line)
	}

	if err := scanner.Err(); err != nil {
		return "", err
	}

	return strings.Join(lines, " "), nil
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func formatWords(words []uint64) string {
	parts := make([]string, len(words))
	for i, w := range words {
		parts[i] = fmt.Sprintf("0x%x", w)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func formatInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func yesNo(ok bool) string {
	if ok {
		return color.GreenString("yes")
	}
	return color.RedString("no")
}

func heading(w io.Writer, title string) {
	yellow := color.New(color.FgYellow, color.Bold)
	fmt.Fprintln(w)
	yellow.Fprintf(w, "=== %s ===\n", title)
	fmt.Fprintln(w)
}
