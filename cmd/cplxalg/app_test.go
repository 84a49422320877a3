package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/cplxalg"
)

// testEnv isolates HOME and points the history at a temporary database.
func testEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	cfgPath := filepath.Join(dir, "cplxalg-test.yaml")
	content := "history:\n  enabled: true\n  path: " + filepath.Join(dir, "history.db") + "\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0644))
	return cfgPath
}

func runCmd(t *testing.T, cfgPath, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := rootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestExpandCommand(t *testing.T) {
	cfg := testEnv(t)

	out, err := runCmd(t, cfg, "", "expand", "(a+b)(a-b)")
	require.NoError(t, err)
	assert.Equal(t, "a^2 - b^2\n", out)

	out, err = runCmd(t, cfg, "", "--format", "latex", "expand", "a*a")
	require.NoError(t, err)
	assert.Equal(t, "a^{2}\n", out)

	out, err = runCmd(t, cfg, "", "--format", "json", "expand", "2")
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "poly", decoded["type"])
}

func TestExpandCommand_Errors(t *testing.T) {
	cfg := testEnv(t)

	_, err := runCmd(t, cfg, "", "expand", "(a+b")
	assert.Error(t, err)

	_, err = runCmd(t, cfg, "", "expand", "a/(b-b)")
	assert.ErrorIs(t, err, cplxalg.ErrDivisionByZero)

	_, err = runCmd(t, cfg, "", "--atoms", "quasi", "expand", "a")
	assert.Error(t, err)
}

func TestConjCommand(t *testing.T) {
	cfg := testEnv(t)

	out, err := runCmd(t, cfg, "", "--atoms", "plain", "conj", "a+b")
	require.NoError(t, err)
	assert.Equal(t, "a' + b'\n", out)

	out, err = runCmd(t, cfg, "", "--atoms", "real", "conj", "-e", "2a")
	require.NoError(t, err)
	assert.Equal(t, "2a\n", out)
}

func TestCheckAndHistory(t *testing.T) {
	cfg := testEnv(t)

	out, err := runCmd(t, cfg, "", "check", "(a+b)(a-b)", "a*a - b*b")
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)

	out, err = runCmd(t, cfg, "", "check", "a", "b")
	require.NoError(t, err)
	assert.Equal(t, "false\ndifference: a - b\n", out)

	out, err = runCmd(t, cfg, "", "collinear", "a", "b", "(a+b)/2")
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)

	out, err = runCmd(t, cfg, "", "--no-history", "check", "a-a")
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)

	out, err = runCmd(t, cfg, "", "history")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[2], "holds")
	assert.Contains(t, lines[2], "(a+b)(a-b) = a*a - b*b")

	out, err = runCmd(t, cfg, "", "history", "--kind", "collinear")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "collinear"))

	out, err = runCmd(t, cfg, "", "history", "--clear")
	require.NoError(t, err)
	assert.Equal(t, "removed 3 checks\n", out)
}

func TestConcurrentCommand(t *testing.T) {
	cfg := testEnv(t)

	// medians of the triangle abc
	out, err := runCmd(t, cfg, "", "--atoms", "plain", "--no-history", "concurrent",
		"a", "(b+c)/2", "b", "(c+a)/2", "c", "(a+b)/2")
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)
}

func TestServeCommand(t *testing.T) {
	cfg := testEnv(t)

	stdin := strings.Join([]string{
		`{"tool":"expand","params":{"expr":"a+a"}}`,
		``,
		`not json`,
		`{"tool":"is_zero","params":{"expr":"a-a"}}`,
	}, "\n")
	out, err := runCmd(t, cfg, stdin, "serve")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)

	var resp cplxalg.ToolResponse
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &resp))
	assert.Equal(t, "2a", resp.String)
	assert.Empty(t, resp.Error)

	resp = cplxalg.ToolResponse{}
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &resp))
	assert.Contains(t, resp.Error, "invalid request")

	resp = cplxalg.ToolResponse{}
	require.NoError(t, json.Unmarshal([]byte(lines[2]), &resp))
	assert.Equal(t, "true", resp.String)
}

func TestVersionCommand(t *testing.T) {
	cfg := testEnv(t)

	out, err := runCmd(t, cfg, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, Version)
}
