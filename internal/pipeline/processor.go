package pipeline

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/Excalibur9527/pdfOcr2Word/internal/domain"
)

// RecognizeFunc obtains raw text for one page input.
type RecognizeFunc func(ctx context.Context, page domain.Page) (string, error)

// ProcessPages fans per-page recognition out across a bounded worker
// pool and returns the results in page order, regardless of completion
// order. Each result is written into its pre-sized slot by exactly one
// worker, so the slots need no locking; the progress counter does, and
// the increment-and-report step runs as one atomic unit so a listener
// never observes lost or out-of-order counts.
//
// Any page failure aborts the whole batch and discards results already
// computed; there is no partial-success mode.
func ProcessPages(ctx context.Context, pages []domain.Page, recognize RecognizeFunc, workers int, progress domain.ProgressFunc) ([]domain.PageResult, error) {
	total := len(pages)

	// Announce the fixed total before any work is dispatched.
	if progress != nil {
		progress(0, total)
	}

	// Zero tasks never construct a pool.
	if total == 0 {
		return nil, nil
	}

	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]domain.PageResult, total)

	var mu sync.Mutex
	completed := 0

	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)

	for i, page := range pages {
		i, page := i, page
		eg.Go(func() error {
			text, err := recognize(gctx, page)
			if err != nil {
				return fmt.Errorf("page %d: %w", page.Index, err)
			}

			results[i] = domain.PageResult{Index: page.Index, RawText: text}

			mu.Lock()
			completed++
			if progress != nil {
				progress(completed, total)
			}
			mu.Unlock()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	// Every slot must be filled with its own page's index, 1..N with no
	// gaps, before reconstruction may run.
	for i := range results {
		if results[i].Index != pages[i].Index {
			return nil, domain.RecognitionError(
				fmt.Sprintf("page %d produced no result", pages[i].Index), nil)
		}
	}

	return results, nil
}
