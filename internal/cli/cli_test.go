package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Davincible/sboxkit/pkg/analysis"
	"github.com/Davincible/sboxkit/pkg/config"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the root command against an isolated config file
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("SBOXKIT_CONFIG", filepath.Join(t.TempDir(), "config.json"))
	color.NoColor = true

	root := NewRootCommand("test")
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func runJSON(t *testing.T, v any, args ...string) {
	t.Helper()
	out, err := run(t, "", append(args, "--json")...)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), v), out)
}

func TestInfoCommand(t *testing.T) {
	var result InfoResult
	runJSON(t, &result, "info", "scream")
	assert.Equal(t, InfoResult{
		InputBits:              8,
		OutputBits:             8,
		Invertible:             true,
		AlgebraicDegree:        6,
		DifferentialUniformity: 8,
	}, result)

	out, err := run(t, "", "info", "0,1,3,2")
	require.NoError(t, err)
	assert.Contains(t, out, "S-BOX PROPERTIES")
	assert.Contains(t, out, "2 -> 2 bits")
}

func TestInfoFromStdin(t *testing.T) {
	out, err := run(t, "0, 2, 0, 0xB, 3, 0, 0, 0xA,\n1, 0xE, 0, 6, 0xA, 4, 5, 2\n", "info", "-", "--json")
	require.NoError(t, err)

	var result InfoResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 4, result.InputBits)
	assert.Equal(t, 2, result.DifferentialUniformity)
	assert.False(t, result.Invertible)
}

func TestInfoErrors(t *testing.T) {
	_, err := run(t, "", "info", "nosuchbox")
	assert.ErrorContains(t, err, "unknown S-box")

	_, err = run(t, "", "info", "0,1,2")
	assert.ErrorContains(t, err, "power of two")

	_, err = run(t, "", "info")
	assert.Error(t, err)
}

func TestDDTCommand(t *testing.T) {
	t.Run("Full table", func(t *testing.T) {
		var counts [][]int
		runJSON(t, &counts, "ddt", "f1")
		require.Len(t, counts, 16)
		assert.Equal(t, 16, counts[0][0])
	})

	t.Run("Row", func(t *testing.T) {
		var row RowResult
		runJSON(t, &row, "ddt", "f1", "--row", "0x1")
		assert.Equal(t, uint64(1), row.A)
		assert.Equal(t, []int{0, 2}, row.Values)
	})

	t.Run("Cell", func(t *testing.T) {
		var cell CellResult
		runJSON(t, &cell, "ddt", "scream", "--cell", "0x21,0x21")
		assert.Equal(t, cell.Count, len(cell.Inputs))
		assert.Len(t, cell.Pairs, cell.Count)
		assert.True(t, cell.Affine)
	})

	t.Run("Text output", func(t *testing.T) {
		out, err := run(t, "", "ddt", "0,1,3,2")
		require.NoError(t, err)
		assert.Contains(t, out, "0 | 4 0 0 0")
	})

	t.Run("Out of range", func(t *testing.T) {
		_, err := run(t, "", "ddt", "f1", "--row", "16")
		assert.Error(t, err)
	})
}

func TestDDTRespectsConfigCeiling(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cm, err := config.NewConfigManagerAt(path)
	require.NoError(t, err)
	cfg := config.DefaultConfig()
	cfg.Tables.MaxInputBits = 4
	cm.SetConfig(cfg)
	require.NoError(t, cm.SaveConfig())

	t.Setenv("SBOXKIT_CONFIG", path)
	color.NoColor = true
	root := NewRootCommand("test")
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"ddt", "scream"})
	assert.ErrorContains(t, root.Execute(), "resource limit")
}

func TestDerivativeCommand(t *testing.T) {
	var result struct {
		FunctionResult
		Equal *bool `json:"equal"`
	}
	runJSON(t, &result, "derivative", "f1", "--a", "1", "--compare", "f3")
	require.NotNil(t, result.Equal)
	assert.True(t, *result.Equal)
	assert.LessOrEqual(t, result.AlgebraicDegree, 1)

	result.Equal = nil
	runJSON(t, &result, "derivative", "f1", "-a", "2", "--compare", "f3")
	require.NotNil(t, result.Equal)
	assert.False(t, *result.Equal)
}

func TestComponentCommand(t *testing.T) {
	var quad map[string][]uint64
	runJSON(t, &quad, "component", "f4", "--quadratic")
	assert.Equal(t, []uint64{1, 4, 5}, quad["quadratic_components"])

	var result FunctionResult
	runJSON(t, &result, "component", "f4", "-u", "5")
	assert.Len(t, result.Table, 16)
	assert.LessOrEqual(t, result.AlgebraicDegree, 2)

	_, err := run(t, "", "component", "f4", "--u", "0x10")
	assert.Error(t, err)
}

func TestFeistelCommand(t *testing.T) {
	var result FeistelResult
	runJSON(t, &result, "feistel", "-r", "f1", "-r", "f2", "-r", "f3", "--swap", "--compare", "scream")
	assert.Equal(t, 3, result.Rounds)
	assert.True(t, result.Invertible)
	require.NotNil(t, result.Matches)
	assert.True(t, *result.Matches)

	result = FeistelResult{}
	runJSON(t, &result, "feistel", "--round", "f4", "--iterate", "3", "--compare", "iscream")
	assert.True(t, result.Swap)
	assert.Equal(t, []uint64{0x00, 0x85, 0x65, 0xd2}, result.Table[:4])
	require.NotNil(t, result.Matches)
	assert.True(t, *result.Matches)

	_, err := run(t, "", "feistel")
	assert.ErrorContains(t, err, "--round")

	_, err = run(t, "", "feistel", "-r", "f1", "-r", "f2", "--iterate", "2")
	assert.ErrorContains(t, err, "exactly one")
}

// narrow has 4 input bits but every entry fits in 3.
const narrow = "0,1,2,3,4,5,6,7,0,1,2,3,4,5,6,7"

func TestLiteralOutputBits(t *testing.T) {
	t.Run("Inferred from entries", func(t *testing.T) {
		var result InfoResult
		runJSON(t, &result, "info", narrow)
		assert.Equal(t, 4, result.InputBits)
		assert.Equal(t, 3, result.OutputBits)
	})

	t.Run("Explicit", func(t *testing.T) {
		var result InfoResult
		runJSON(t, &result, "info", narrow, "--output-bits", "4")
		assert.Equal(t, 4, result.OutputBits)
	})

	t.Run("Too narrow", func(t *testing.T) {
		_, err := run(t, "", "info", narrow, "--output-bits", "2")
		assert.ErrorContains(t, err, "exceeds 2 output bits")
	})

	t.Run("Feistel round", func(t *testing.T) {
		var result FeistelResult
		runJSON(t, &result, "feistel", "--round", narrow, "--round", "f2", "--round", "f3")
		assert.Equal(t, 8, result.Bits)
		assert.True(t, result.Invertible)
	})

	t.Run("Check", func(t *testing.T) {
		var result CheckResult
		runJSON(t, &result, "check", narrow, "f2", "f3")
		assert.Equal(t, 16, result.DifferentialUnif1)
		assert.Equal(t, 2, result.DifferentialUnif3)
	})

	t.Run("Good sets", func(t *testing.T) {
		_, err := run(t, "", "goodsets", narrow, "f2", "f3")
		assert.NoError(t, err)
	})
}

func TestCheckCommand(t *testing.T) {
	var result CheckResult
	runJSON(t, &result, "check", "f1", "f2", "f3")
	assert.Equal(t, analysis.Report{AffineCommutant: true, QuadraticInvariant: true, PerfectSets: true}, result.Report)
	assert.Equal(t, []uint64{2}, result.CommonComponents)
	assert.Equal(t, []uint64{1}, result.Derivatives.Equal)
	assert.Equal(t, 2, result.DifferentialUnif1)

	out, err := run(t, "", "check", "f1", "f4", "f6")
	require.NoError(t, err)
	assert.Contains(t, out, "Affine commutant:    no")

	_, err = run(t, "", "check", "f1", "f2")
	assert.Error(t, err)
}

func TestGoodSetsCommand(t *testing.T) {
	var result GoodSetsResult
	runJSON(t, &result, "goodsets", "f1", "f2", "f3")
	require.Len(t, result.GoodSets, 15)
	require.Len(t, result.PerfectSets, 1)
	for _, set := range result.GoodSets {
		assert.True(t, set.Verified, "%v", set.Differences)
	}
	assert.True(t, result.PerfectSets[0].Verified)
}

func TestVerifyCommand(t *testing.T) {
	var result VerifyResult
	runJSON(t, &result, "verify", "--trials", "5", "--seed", "7")
	assert.Equal(t, uint64(7), result.Seed)
	assert.True(t, result.Passed())
	assert.Empty(t, result.FirstFailure)

	out, err := run(t, "", "verify", "-n", "3", "--bits", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "3/3")

	_, err = run(t, "", "verify", "--trials", "0")
	assert.Error(t, err)
}

func TestRunVerifyDeterministic(t *testing.T) {
	a, err := runVerify(11, 4, 3)
	require.NoError(t, err)
	b, err := runVerify(11, 4, 3)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, 4, a.Commuting)
}

func TestConfigCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.json")
	t.Setenv("SBOXKIT_CONFIG", path)
	color.NoColor = true

	exec := func(args ...string) (string, error) {
		root := NewRootCommand("test")
		var out bytes.Buffer
		root.SetOut(&out)
		root.SetArgs(args)
		err := root.Execute()
		return out.String(), err
	}

	out, err := exec("config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, path)
	_, err = os.Stat(path)
	require.NoError(t, err)

	_, err = exec("config", "init")
	assert.ErrorContains(t, err, "already exists")

	_, err = exec("config", "init", "--force")
	assert.NoError(t, err)

	out, err = exec("config", "show")
	require.NoError(t, err)
	var cfg config.Config
	require.NoError(t, json.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, *config.DefaultConfig(), cfg)
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "[0x1, 0xff]", formatWords([]uint64{1, 255}))
	assert.Equal(t, "[]", formatWords(nil))
	assert.Equal(t, "[0, 2]", formatInts([]int{0, 2}))
}
