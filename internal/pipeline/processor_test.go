package pipeline

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Excalibur9527/pdfOcr2Word/internal/domain"
)

func makePages(n int) []domain.Page {
	pages := make([]domain.Page, n)
	for i := range pages {
		pages[i] = domain.Page{Index: i + 1, ImagePath: fmt.Sprintf("page_%d.png", i+1)}
	}
	return pages
}

func TestProcessPagesOrderPreservation(t *testing.T) {
	// Recognition with random per-task latency must still produce
	// results in page order, for every worker bound.
	for _, workers := range []int{1, 2, 4, 16} {
		workers := workers
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			pages := makePages(20)

			recognize := func(ctx context.Context, page domain.Page) (string, error) {
				time.Sleep(time.Duration(rand.Intn(5)) * time.Millisecond)
				return fmt.Sprintf("text of page %d", page.Index), nil
			}

			results, err := ProcessPages(context.Background(), pages, recognize, workers, nil)
			require.NoError(t, err)
			require.Len(t, results, len(pages))

			for i, res := range results {
				assert.Equal(t, i+1, res.Index)
				assert.Equal(t, fmt.Sprintf("text of page %d", i+1), res.RawText)
			}
		})
	}
}

func TestProcessPagesProgressMonotonicity(t *testing.T) {
	pages := makePages(12)

	var mu sync.Mutex
	var completedSeq []int
	var totalSeq []int
	progress := func(completed, total int) {
		mu.Lock()
		completedSeq = append(completedSeq, completed)
		totalSeq = append(totalSeq, total)
		mu.Unlock()
	}

	recognize := func(ctx context.Context, page domain.Page) (string, error) {
		time.Sleep(time.Duration(rand.Intn(3)) * time.Millisecond)
		return "x", nil
	}

	_, err := ProcessPages(context.Background(), pages, recognize, 4, progress)
	require.NoError(t, err)

	// One announcement plus one report per page.
	require.Len(t, completedSeq, len(pages)+1)
	assert.Equal(t, 0, completedSeq[0])
	assert.Equal(t, len(pages), completedSeq[len(completedSeq)-1])

	for i := 1; i < len(completedSeq); i++ {
		assert.GreaterOrEqual(t, completedSeq[i], completedSeq[i-1], "completed must never decrease")
	}
	for _, total := range totalSeq {
		assert.Equal(t, len(pages), total, "total must never change mid-run")
	}
}

func TestProcessPagesFailFast(t *testing.T) {
	// One failing page aborts the whole batch and discards partial
	// results. This all-or-nothing behavior is intentional; there is no
	// partial-success mode.
	pages := makePages(8)
	boom := errors.New("unreadable glyphs")

	recognize := func(ctx context.Context, page domain.Page) (string, error) {
		if page.Index == 5 {
			return "", boom
		}
		return "ok", nil
	}

	results, err := ProcessPages(context.Background(), pages, recognize, 2, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "page 5")
	assert.Nil(t, results)
}

func TestProcessPagesEmptyInput(t *testing.T) {
	// Zero tasks must short-circuit before any pool is constructed,
	// still honoring the progress contract with a single (0, 0) call.
	var calls [][2]int
	progress := func(completed, total int) {
		calls = append(calls, [2]int{completed, total})
	}

	recognize := func(ctx context.Context, page domain.Page) (string, error) {
		t.Fatal("recognize must not be called for zero pages")
		return "", nil
	}

	results, err := ProcessPages(context.Background(), nil, recognize, 4, progress)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Equal(t, [][2]int{{0, 0}}, calls)
}

func TestProcessPagesContextCancellation(t *testing.T) {
	pages := makePages(4)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	recognize := func(ctx context.Context, page domain.Page) (string, error) {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(time.Second):
			return "late", nil
		}
	}

	_, err := ProcessPages(ctx, pages, recognize, 2, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProcessPagesDefaultWorkerBound(t *testing.T) {
	// Workers <= 0 must resolve to a usable bound, not panic or hang.
	pages := makePages(3)
	recognize := func(ctx context.Context, page domain.Page) (string, error) {
		return "t", nil
	}

	results, err := ProcessPages(context.Background(), pages, recognize, 0, nil)
	require.NoError(t, err)
	assert.Len(t, results, 3)
}
