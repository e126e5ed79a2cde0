package tlaudit

import (
	"context"
	"time"

	"github.com/ZaguanLabs/tlaudit/internal/worker"
	"go.uber.org/zap"
)

const poolReleaseTimeout = 5 * time.Second

// extractAll extracts every discovered visual document. The returned slice
// is index-aligned with s.files, so the output order never depends on which
// worker finished first.
func (a *Auditor) extractAll(ctx context.Context, s *scan) ([]Categories, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cats := make([]Categories, len(s.files))
	errs := make([]error, len(s.files))

	if a.concurrency < 2 || len(s.files) < 2 {
		for i, rel := range s.files {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			cats[i], errs[i] = a.extractFile(s, rel)
		}
	} else if err := a.extractParallel(ctx, s, cats, errs); err != nil {
		return nil, err
	}

	for _, err := range errs {
		if err != nil {
			s.log.Debug("Skipping file", zap.Error(err))
		}
	}
	return cats, nil
}

func (a *Auditor) extractParallel(ctx context.Context, s *scan, cats []Categories, errs []error) error {
	size := a.concurrency
	if size > len(s.files) {
		size = len(s.files)
	}

	pool, err := worker.NewPool(worker.Config{Name: "extract-" + s.id, Size: size, Logger: s.log})
	if err != nil {
		return err
	}
	defer pool.Release(poolReleaseTimeout)
	s.log.Debug("Extracting in parallel", zap.Int("workers", pool.Cap()), zap.Int("files", len(s.files)))

	err = pool.Run(ctx, len(s.files), func(_ context.Context, i int) {
		cats[i], errs[i] = a.extractFile(s, s.files[i])
	})
	if err != nil {
		return err
	}

	// A panicking task leaves its slot empty.
	for i := range cats {
		if cats[i] == nil {
			cats[i] = newCategories()
		}
	}
	return nil
}
