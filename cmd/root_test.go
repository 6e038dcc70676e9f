package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func execute(t *testing.T, args ...string) error {
	t.Helper()
	cmd := NewRootCmd(zap.NewNop())
	cmd.SetArgs(args)
	return cmd.Execute()
}

func TestRootCommandFlattensDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("hello"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".git", "config"), []byte("nope"), 0o644))

	output := filepath.Join(t.TempDir(), "out.md")
	require.NoError(t, execute(t, "-o", output, dir))

	doc, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(doc), "=== a.txt ===\nhello\n")
	assert.NotContains(t, string(doc), ".git/config")
}

func TestRootCommandExcludeFlag(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "keep.txt"), []byte("k"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "drop.log"), []byte("d"), 0o644))

	output := filepath.Join(t.TempDir(), "out.md")
	require.NoError(t, execute(t, "-o", output, "-e", "*.log", dir))

	doc, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(doc), "=== keep.txt ===")
	assert.NotContains(t, string(doc), "drop.log")
}

func TestRootCommandIgnoreFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "keep.txt"), []byte("k"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "secret.env"), []byte("s"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".gitgetignore"), []byte("*.env\n"), 0o644))

	output := filepath.Join(t.TempDir(), "out.md")
	require.NoError(t, execute(t, "-o", output, dir))

	doc, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(doc), "=== keep.txt ===")
	assert.NotContains(t, string(doc), "secret.env")
	// The ignore file itself is excluded from the document.
	assert.NotContains(t, string(doc), "=== .gitgetignore ===")
}

func TestRootCommandBadTarget(t *testing.T) {
	err := execute(t, "-o", filepath.Join(t.TempDir(), "out.md"), "no-such-thing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "neither an existing directory nor a repository URL")
}

func TestRootCommandBadBinaryMode(t *testing.T) {
	err := execute(t, "--binary", "zip", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid binary mode")
}

func TestRootCommandRequiresOneArg(t *testing.T) {
	assert.Error(t, execute(t))
	assert.Error(t, execute(t, "a", "b"))
}
