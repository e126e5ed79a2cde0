// Package worker runs independent tasks on a bounded ants goroutine pool.
package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
)

// ErrPoolClosed is returned when submitting to a released pool.
var ErrPoolClosed = errors.New("worker pool is closed")

// Config configures a Pool.
type Config struct {
	Name   string        // Used in log fields
	Size   int           // Maximum concurrent workers; <= 0 means 1
	Expiry time.Duration // Idle worker lifetime; 0 uses the ants default
	Logger *zap.Logger   // Receives recovered panics; nil discards them
}

// Pool wraps ants.Pool with index-based fan-out.
type Pool struct {
	pool   *ants.Pool
	name   string
	logger *zap.Logger
}

// NewPool creates a blocking pool. Panics inside tasks are recovered and logged.
func NewPool(cfg Config) (*Pool, error) {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	size := cfg.Size
	if size <= 0 {
		size = 1
	}

	p := &Pool{name: cfg.Name, logger: log}
	opts := []ants.Option{
		ants.WithPanicHandler(func(v interface{}) {
			p.logger.Error("Worker panic recovered",
				zap.String("pool", p.name),
				zap.Any("panic", v),
				zap.Stack("stack"),
			)
		}),
		ants.WithNonblocking(false),
	}
	if cfg.Expiry > 0 {
		opts = append(opts, ants.WithExpiryDuration(cfg.Expiry))
	}

	pool, err := ants.NewPool(size, opts...)
	if err != nil {
		return nil, err
	}
	p.pool = pool
	return p, nil
}

// Run calls task for every index in [0, n) on the pool and waits for the
// submitted calls to finish. Submission stops once ctx is done, in which
// case ctx.Err() is returned. Each index is handed to exactly one call, so
// tasks may write to index-addressed slots without locking.
func (p *Pool) Run(ctx context.Context, n int, task func(ctx context.Context, i int)) error {
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		if ctx.Err() != nil {
			break
		}
		idx := i
		wg.Add(1)
		err := p.pool.Submit(func() {
			defer wg.Done()
			task(ctx, idx)
		})
		if err != nil {
			wg.Done()
			wg.Wait()
			if errors.Is(err, ants.ErrPoolClosed) {
				return ErrPoolClosed
			}
			return err
		}
	}
	wg.Wait()
	return ctx.Err()
}

// Cap returns the pool capacity.
func (p *Pool) Cap() int {
	return p.pool.Cap()
}

// Release closes the pool and waits up to timeout for running tasks.
func (p *Pool) Release(timeout time.Duration) {
	if err := p.pool.ReleaseTimeout(timeout); err != nil {
		p.logger.Warn("Pool shutdown timeout", zap.String("pool", p.name), zap.Error(err))
	}
}
