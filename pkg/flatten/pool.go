// File: pkg/flatten/pool.go
package flatten

import (
	"context"
	"runtime"
	"sync"

	"go.uber.org/zap"
)

// Pool is a fixed-size set of reader workers. Each worker consumes exactly
// one FileTask at a time and emits exactly one FileResult; workers share no
// mutable state, so only the channel handoffs are synchronized.
type Pool struct {
	workers int
	read    ReadFunc
	logger  *zap.Logger
}

// NewPool builds a pool of the given size. A non-positive size falls back to
// the number of CPUs.
func NewPool(workers int, read ReadFunc, logger *zap.Logger) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
		logger.Debug("Adjusted worker count", zap.Int("workers", workers))
	}
	return &Pool{workers: workers, read: read, logger: logger}
}

// Size returns the number of workers the pool runs.
func (p *Pool) Size() int { return p.workers }

// Process consumes tasks until the channel closes and sends one result per
// task, returning once every worker has finished. Results arrive in
// completion order, not task order. Cancelling ctx unblocks workers stuck
// sending to a full results channel.
func (p *Pool) Process(ctx context.Context, tasks <-chan FileTask, results chan<- FileResult) {
	var wg sync.WaitGroup
	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		workerLogger := p.logger.With(zap.Int("workerID", w))
		go p.worker(ctx, tasks, results, &wg, workerLogger)
	}
	wg.Wait()
}

func (p *Pool) worker(ctx context.Context, tasks <-chan FileTask, results chan<- FileResult, wg *sync.WaitGroup, logger *zap.Logger) {
	defer wg.Done()

	for task := range tasks {
		res := p.read(ctx, task)
		select {
		case results <- res:
			logger.Debug("Worker processed file",
				zap.String("file", task.RelPath), zap.Int("index", task.Index))
		case <-ctx.Done():
			return
		}
	}
}
