package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the CLI in a scratch directory and returns stdout.
func run(t *testing.T, dir, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--db", filepath.Join(dir, "bmi.db"), "--log-level", "error"}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCalc(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	out, err := run(t, dir, "", "calc", "--weight", "60", "--height", "165")
	require.NoError(t, err)
	assert.Equal(t, "BMI: 22.04\nResult: Normal weight\n", out)

	out, err = run(t, dir, "", "calc", "--weight", "abc", "--height", "170")
	assert.Error(t, err)
	assert.Equal(t, "BMI: Invalid input\n", out)
}

func TestAddAndHistory(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	out, err := run(t, dir, "", "history")
	require.NoError(t, err)
	assert.Equal(t, "No records yet\n", out)

	out, err = run(t, dir, "", "add", "--name", "Alice", "--weight", "60", "--height", "165")
	require.NoError(t, err)
	assert.Contains(t, out, "Saved record #1")

	_, err = run(t, dir, "", "add", "--name", "Bob", "--weight", "x", "--height", "180")
	assert.Error(t, err)

	out, err = run(t, dir, "", "history")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "CATEGORY")
	assert.Contains(t, lines[1], "Alice")
	assert.Contains(t, lines[1], "22.04")
	assert.Contains(t, lines[1], "Normal weight")
}

func TestInteractiveForm(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	input := strings.Join([]string{
		"Alice", "60", "165", "y",
		"Bob", "abc", "180",
		"Carol", "95", "170", "n",
		"q",
	}, "\n") + "\n"

	out, err := run(t, dir, input, "form")
	require.NoError(t, err)
	assert.Contains(t, out, "Saved record #1")
	assert.Contains(t, out, "BMI: Invalid input")
	assert.Contains(t, out, "Result: Obesity")
	assert.NotContains(t, out, "Saved record #2")

	out, err = run(t, dir, "", "history")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "\n"), "header and one record")
}

func TestTrend(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	_, err := run(t, dir, "", "add", "--weight", "70", "--height", "175")
	require.NoError(t, err)

	path := filepath.Join(dir, "chart.html")
	_, err = run(t, dir, "", "trend", "--out", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "BMI Trend")
	assert.Contains(t, string(data), "[175,22.857142857142858]")
	assert.NotContains(t, string(data), "No records yet")

	out, err := run(t, dir, "", "trend", "--out", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "</html>")

	_, err = run(t, dir, "", "trend", "--out", filepath.Join(dir, "missing", "chart.html"))
	assert.Error(t, err)
}

func TestHashPassword(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	out, err := run(t, dir, "correct-horse\n", "hash-password")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "$2a$"), "bcrypt hash expected, got %q", out)

	_, err = run(t, dir, "short\n", "hash-password")
	assert.Error(t, err)
}
