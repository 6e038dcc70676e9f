// File: pkg/flatten/flatten.go
package flatten

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Run executes the full pipeline: Walk → reader pool → sequencer → document
// writer. Output block order always equals walker enumeration order,
// regardless of reader completion order. Per-file read failures are recorded
// inline and never fail the run; a missing root or an unwritable output is
// fatal and cancels all stages promptly.
func Run(ctx context.Context, cfg Config, logger *zap.Logger) (Stats, error) {
	start := time.Now()
	logger.Info("Starting flatten run",
		zap.String("root", cfg.Root), zap.String("output", cfg.Output))

	tasks, err := Walk(cfg, logger)
	if err != nil {
		return Stats{}, err
	}

	if cfg.Tree != "" {
		tree, treeErr := GenerateTree(cfg.Root, cfg.Rules, logger)
		if treeErr != nil {
			return Stats{}, fmt.Errorf("generate tree: %w", treeErr)
		}
		if writeErr := os.WriteFile(cfg.Tree, []byte(tree), 0o644); writeErr != nil {
			return Stats{}, fmt.Errorf("write tree file: %w", writeErr)
		}
		logger.Debug("Wrote tree structure", zap.String("treeFile", cfg.Tree))
	}

	out, err := os.Create(cfg.Output)
	if err != nil {
		return Stats{}, fmt.Errorf("create output file: %w", err)
	}

	stats, runErr := assemble(ctx, cfg, tasks, out, logger)

	if closeErr := out.Close(); closeErr != nil && runErr == nil {
		runErr = fmt.Errorf("close output file: %w", closeErr)
	}
	if runErr != nil {
		logger.Error("Flatten run failed", zap.Error(runErr))
		return stats, runErr
	}

	logger.Info("Flatten run completed",
		zap.Int("files", stats.Files),
		zap.Int("unreadable", stats.Unreadable),
		zap.Int("binaries", stats.Binaries),
		zap.Duration("elapsed", time.Since(start)))
	return stats, nil
}

// assemble runs the concurrent stages against an already-open output target.
//
// Backpressure: the dispatcher acquires a window slot before handing out each
// task and the writer side releases it after the block is flushed downstream,
// so at most BufferLimit results are in flight or buffered at any instant.
func assemble(ctx context.Context, cfg Config, tasks []FileTask, out *os.File, logger *zap.Logger) (Stats, error) {
	read := cfg.Read
	if read == nil {
		read = defaultRead(cfg.BinaryMode)
	}
	pool := NewPool(cfg.Workers, read, logger)

	limit := cfg.BufferLimit
	if limit <= 0 {
		limit = DefaultBufferLimit
	}

	label := cfg.Label
	if label == "" {
		label = filepath.Base(cfg.Root)
	}

	doc := NewDocWriter(out)
	if err := doc.WriteHeader(label); err != nil {
		return Stats{}, err
	}

	taskCh := make(chan FileTask)
	resultCh := make(chan FileResult)
	window := make(chan struct{}, limit)

	var stats Stats
	g, ctx := errgroup.WithContext(ctx)

	// Dispatcher: feeds the pool, gated by the backpressure window.
	g.Go(func() error {
		defer close(taskCh)
		for _, task := range tasks {
			select {
			case window <- struct{}{}:
			case <-ctx.Done():
				return ctx.Err()
			}
			select {
			case taskCh <- task:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	// Reader pool: fan-out over taskCh, fan-in to resultCh.
	g.Go(func() error {
		pool.Process(ctx, taskCh, resultCh)
		close(resultCh)
		return nil
	})

	// Sequencer + writer: the single ordered consumer.
	g.Go(func() error {
		seq := NewSequencer()
		for res := range resultCh {
			for _, ordered := range seq.Push(res) {
				if err := doc.WriteBlock(ordered); err != nil {
					return err
				}
				<-window
			}
			if seq.HighWater() > stats.MaxPending {
				stats.MaxPending = seq.HighWater()
			}
		}
		if seq.Pending() > 0 {
			return fmt.Errorf("sequencer finished with %d results stranded before index %d",
				seq.Pending(), seq.Next())
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		// Leave whatever prefix was assembled on disk; the document is
		// documented as potentially incomplete on fatal errors.
		_ = doc.Flush()
		return stats, err
	}

	if err := doc.WriteFooter(); err != nil {
		return stats, err
	}
	stats.Files, stats.Unreadable, stats.Binaries = doc.Stats()
	return stats, nil
}
