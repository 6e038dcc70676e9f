// File: pkg/flatten/tree.go
package flatten

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gitget/pkg/ignore"

	"go.uber.org/zap"
)

// GenerateTree renders an ASCII tree of the non-excluded entries under root.
func GenerateTree(root string, rules *ignore.Ruleset, logger *zap.Logger) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolve root %s: %w", root, err)
	}

	var tree strings.Builder
	tree.WriteString(filepath.Base(absRoot) + "/\n")

	subtree, err := renderSubtree(absRoot, absRoot, rules, "", logger)
	if err != nil {
		return "", err
	}
	if subtree != "" {
		tree.WriteString(subtree)
		tree.WriteString("\n")
	}
	return tree.String(), nil
}

// renderSubtree builds the tree recursively: directories first, then files,
// alphabetically within each group.
func renderSubtree(directory, root string, rules *ignore.Ruleset, prefix string, logger *zap.Logger) (string, error) {
	entries, err := os.ReadDir(directory)
	if err != nil {
		return "", fmt.Errorf("read directory %s: %w", directory, err)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].IsDir() != entries[j].IsDir() {
			return entries[i].IsDir()
		}
		return entries[i].Name() < entries[j].Name()
	})

	var output []string
	for i, entry := range entries {
		connector := "├── "
		extension := "│   "
		if i == len(entries)-1 {
			connector = "└── "
			extension = "    "
		}

		entryPath := filepath.Join(directory, entry.Name())
		relPath, _ := filepath.Rel(root, entryPath)
		relPath = filepath.ToSlash(relPath)
		if rules != nil && rules.MatchesPath(relPath) {
			continue
		}

		if entry.IsDir() {
			output = append(output, prefix+connector+entry.Name()+"/")
			subtree, subErr := renderSubtree(entryPath, root, rules, prefix+extension, logger)
			if subErr != nil {
				logger.Warn("Failed to render subtree",
					zap.String("directory", entryPath), zap.Error(subErr))
				continue
			}
			if subtree != "" {
				output = append(output, subtree)
			}
		} else {
			output = append(output, prefix+connector+entry.Name())
		}
	}

	return strings.Join(output, "\n"), nil
}
