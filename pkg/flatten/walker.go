// File: pkg/flatten/walker.go
package flatten

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Walk enumerates the regular files under cfg.Root, skipping excluded paths,
// and assigns each a monotone sequence index. filepath.WalkDir visits entries
// in lexical order per directory level, so repeated runs against an unchanged
// tree yield identical ordering.
//
// A missing or unreadable root is fatal. Errors on individual entries below
// the root are logged and the entries skipped.
func Walk(cfg Config, logger *zap.Logger) ([]FileTask, error) {
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("resolve root %s: %w", cfg.Root, err)
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("traverse root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("traverse root: %s is not a directory", root)
	}

	var tasks []FileTask
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return fmt.Errorf("traverse root: %w", err)
			}
			logger.Warn("Error accessing path during traversal",
				zap.String("path", path), zap.Error(err))
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if path == root {
			return nil
		}

		relPath, relErr := filepath.Rel(root, path)
		if relErr != nil {
			logger.Warn("Unable to determine relative path",
				zap.String("path", path), zap.Error(relErr))
			return nil
		}
		relPath = filepath.ToSlash(relPath)

		if d.IsDir() {
			if cfg.Rules != nil && cfg.Rules.MatchesPath(relPath) {
				logger.Debug("Skipping excluded directory", zap.String("directory", relPath))
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}
		if cfg.Rules != nil && cfg.Rules.MatchesPath(relPath) {
			logger.Debug("Skipping excluded file", zap.String("file", relPath))
			return nil
		}
		if len(cfg.Extensions) > 0 && !matchesExtension(relPath, cfg.Extensions) {
			return nil
		}
		if cfg.MaxFileSizeKB > 0 {
			fi, infoErr := d.Info()
			if infoErr != nil {
				logger.Warn("Failed to stat file during traversal",
					zap.String("file", relPath), zap.Error(infoErr))
				return nil
			}
			if fi.Size() > int64(cfg.MaxFileSizeKB)*1024 {
				logger.Debug("Skipping file over size limit",
					zap.String("file", relPath), zap.Int64("sizeBytes", fi.Size()))
				return nil
			}
		}

		tasks = append(tasks, FileTask{
			Index:   len(tasks),
			RelPath: relPath,
			AbsPath: path,
		})
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	logger.Debug("Completed file traversal",
		zap.String("root", root), zap.Int("files", len(tasks)))
	return tasks, nil
}

func matchesExtension(relPath string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(relPath))
	for _, want := range exts {
		if ext == strings.ToLower(want) {
			return true
		}
	}
	return false
}
