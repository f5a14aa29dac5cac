package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func isolateConfig(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	xdg.Reload()
}

func TestImportExportRoundTrip(t *testing.T) {
	isolateConfig(t)
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "pivot.csv")
	rulPath := filepath.Join(dir, "design.RUL")
	outPath := filepath.Join(dir, "back.csv")

	require.NoError(t, os.WriteFile(csvPath,
		[]byte("NetClass,A,B\nA,,5\nB,5,\n"), 0644))

	out, err := runCommand(t, "import", csvPath, rulPath, "--unit", "mil")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 2 rules")

	data, err := os.ReadFile(rulPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "RULEKIND=Clearance")
	assert.Contains(t, string(data), "NAME=Clearance_A_to_B")

	out, err = runCommand(t, "export", rulPath, outPath)
	require.NoError(t, err)
	assert.Contains(t, out, "2x2 matrix")

	back, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "NetClass,A,B\nA,,5\nB,5,\n", string(back))
}

func TestImportWithExtraRuleKinds(t *testing.T) {
	isolateConfig(t)
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "pivot.csv")
	rulPath := filepath.Join(dir, "design.RUL")
	require.NoError(t, os.WriteFile(csvPath,
		[]byte("NetClass,A,B\nA,,5\nB,5,\n"), 0644))

	out, err := runCommand(t, "import", csvPath, rulPath,
		"--short-circuit", "--unrouted")
	require.NoError(t, err)
	// 2 clearance + 2 short circuit + 2 unrouted
	assert.Contains(t, out, "Wrote 6 rules")

	data, err := os.ReadFile(rulPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "RULEKIND=ShortCircuit")
	assert.Contains(t, string(data), "RULEKIND=UnroutedNet")
}

func TestShowRules(t *testing.T) {
	isolateConfig(t)
	dir := t.TempDir()

	rulPath := filepath.Join(dir, "design.RUL")
	line := "GAP=8.5mil|NAME=C1|RULEKIND=Clearance|SCOPE1EXPRESSION=InNetClass('Power')|SCOPE2EXPRESSION=InNetClass('Ground')\n"
	require.NoError(t, os.WriteFile(rulPath, []byte(line), 0644))

	out, err := runCommand(t, "show", rulPath)
	require.NoError(t, err)
	assert.Contains(t, out, "C1")
	assert.Contains(t, out, "8.5mil")

	out, err = runCommand(t, "show", rulPath, "--matrix")
	require.NoError(t, err)
	assert.Contains(t, out, "Power")
}

func TestShowEmptyFileFails(t *testing.T) {
	isolateConfig(t)
	rulPath := filepath.Join(t.TempDir(), "empty.RUL")
	require.NoError(t, os.WriteFile(rulPath, []byte("junk line\n"), 0644))

	_, err := runCommand(t, "show", rulPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "EMPTY_RESULT")
}

func TestConvertCommand(t *testing.T) {
	isolateConfig(t)

	out, err := runCommand(t, "convert", "1000", "mil", "inch")
	require.NoError(t, err)
	assert.Contains(t, out, "1000mil = 1inch")

	_, err = runCommand(t, "convert", "ten", "mil", "mm")
	require.Error(t, err)

	_, err = runCommand(t, "convert", "10", "furlong", "mm")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INVALID_UNIT")
}

func TestVersionCommand(t *testing.T) {
	isolateConfig(t)
	out, err := runCommand(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, "rulegen version"))
}
