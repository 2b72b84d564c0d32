package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCmd executes a fresh root command with args and returns its combined
// output.
func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// chdir moves the test into dir and restores the old working directory on
// cleanup.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

// newTree creates files under a fresh temp dir and moves the test into it.
func newTree(t *testing.T, files ...string) {
	t.Helper()
	dir := t.TempDir()
	for _, f := range files {
		path := filepath.Join(dir, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, nil, 0644))
	}
	chdir(t, dir)
}

func sortedLines(s string) []string {
	lines := strings.Split(strings.TrimSuffix(s, "\n"), "\n")
	if len(lines) == 1 && lines[0] == "" {
		return nil
	}
	return lines
}

func TestRootMatchesSimplePattern(t *testing.T) {
	newTree(t, "a.txt", "b.txt", "c.log")

	out, err := runCmd(t, "--no-color", "*.txt")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.txt", "b.txt"}, sortedLines(out))
}

func TestRootMatchesRecursivePattern(t *testing.T) {
	newTree(t, "x.txt", "sub/y.txt", "sub/z.log")

	out, err := runCmd(t, "--no-color", ".../*.txt")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"x.txt", "sub/y.txt"}, sortedLines(out))
}

func TestRootMultiplePatterns(t *testing.T) {
	newTree(t, "a.txt", "b.log")

	out, err := runCmd(t, "--no-color", "*.txt", "*.log")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.txt", "b.log"}, sortedLines(out))
}

func TestRootFilesOnlyFlag(t *testing.T) {
	newTree(t, "sub/inner.txt", "top.txt")

	out, err := runCmd(t, "--no-color", "-f", "*")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"top.txt"}, sortedLines(out))
}

func TestRootLimitFlag(t *testing.T) {
	newTree(t, "a.txt", "b.txt", "c.txt")

	out, err := runCmd(t, "--no-color", "-n", "1", "*.txt")
	require.NoError(t, err)
	assert.Len(t, sortedLines(out), 1)
}

func TestRootLimitAppliesPerPattern(t *testing.T) {
	newTree(t, "a.txt", "b.txt", "c.log", "d.log")

	out, err := runCmd(t, "--no-color", "-n", "1", "*.txt", "*.log")
	require.NoError(t, err)
	assert.Len(t, sortedLines(out), 2)
}

func TestRootBackslashSeparator(t *testing.T) {
	newTree(t, "sub/y.txt")

	out, err := runCmd(t, "--no-color", "-s", `\`, "sub/*.txt")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{`sub\y.txt`}, sortedLines(out))
}

func TestRootAbsoluteFlag(t *testing.T) {
	newTree(t, "a.txt")

	out, err := runCmd(t, "--no-color", "-a", "*.txt")
	require.NoError(t, err)

	lines := sortedLines(out)
	require.Len(t, lines, 1)
	assert.True(t, filepath.IsAbs(lines[0]), "got %q", lines[0])
}

func TestRootRejectsBadSlash(t *testing.T) {
	newTree(t, "a.txt")

	_, err := runCmd(t, "-s", "|", "*.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "slash")
}

func TestRootRejectsNegativeLimit(t *testing.T) {
	newTree(t, "a.txt")

	_, err := runCmd(t, "-n", "-3", "*.txt")
	require.Error(t, err)
}

func TestRootRequiresPattern(t *testing.T) {
	_, err := runCmd(t)
	require.Error(t, err)
}

func TestRootEmptyPatternIsAnError(t *testing.T) {
	newTree(t)

	_, err := runCmd(t, ".")
	require.Error(t, err)
}

func TestRootZeroMatchesIsNotAnError(t *testing.T) {
	newTree(t, "a.txt")

	out, err := runCmd(t, "--no-color", "*.log")
	require.NoError(t, err)
	assert.Empty(t, sortedLines(out))
}

func TestVersionCommand(t *testing.T) {
	out, err := runCmd(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "pathmatch version")
}
