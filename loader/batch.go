// SPDX-License-Identifier: EPL-2.0

package loader

import (
	"context"
	"sync"

	"github.com/ik5/soundboard/catalog"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// BatchResult counts the outcome of LoadBatch.
type BatchResult struct {
	Total  int
	Loaded int
	Failed int
}

// LoadBatch loads sounds in groups of Options.BatchSize. The loads of a
// group run concurrently; the next group starts when the previous one is
// done. Folders, malformed entries and duplicate paths are skipped.
//
// progress, when set, is called once per sound after it loads or fails,
// never concurrently, with done counting up to total.
// Failures are counted, never returned.
func (l *Loader) LoadBatch(ctx context.Context, sounds []catalog.Sound, progress func(done, total int)) BatchResult {
	valid := lo.Filter(sounds, func(s catalog.Sound, i int) bool {
		if err := s.Validate(); err != nil {
			l.log.Warn("Skipping malformed sound", zap.Int("index", i), zap.Error(err))
			return false
		}
		return s.Type == catalog.KindSound
	})
	valid = lo.UniqBy(valid, func(s catalog.Sound) string { return s.Path })

	res := BatchResult{Total: len(valid)}

	var mu sync.Mutex
	done := 0
	report := func(loaded bool) {
		mu.Lock()
		defer mu.Unlock()

		done++
		if loaded {
			res.Loaded++
		} else {
			res.Failed++
		}
		if progress != nil {
			progress(done, res.Total)
		}
	}

	for _, group := range lo.Chunk(valid, l.opts.BatchSize) {
		g, gctx := errgroup.WithContext(ctx)
		for _, s := range group {
			g.Go(func() error {
				_, err := l.Load(gctx, s)
				report(err == nil)
				return nil
			})
		}
		_ = g.Wait()
	}

	l.log.Info("Batch load finished",
		zap.Int("total", res.Total),
		zap.Int("loaded", res.Loaded),
		zap.Int("failed", res.Failed))

	return res
}
