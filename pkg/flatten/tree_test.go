package flatten

import (
	"testing"

	"gitget/pkg/ignore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGenerateTree(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"a.txt":     "x",
		"sub/b.txt": "y",
		".git/head": "z",
	})

	tree, err := GenerateTree(dir, ignore.New(".git/"), zap.NewNop())
	require.NoError(t, err)

	// Directories sort before files.
	assert.Contains(t, tree, "├── sub/")
	assert.Contains(t, tree, "│   └── b.txt")
	assert.Contains(t, tree, "└── a.txt")
	assert.NotContains(t, tree, ".git")
}

func TestGenerateTreeMissingRoot(t *testing.T) {
	_, err := GenerateTree(t.TempDir()+"/nope", nil, zap.NewNop())
	assert.Error(t, err)
}
