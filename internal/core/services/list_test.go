// internal/core/services/list_test.go
package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GGT-dev-tech/auctionos/internal/core/domain"
	"github.com/GGT-dev-tech/auctionos/internal/core/services"
	"github.com/GGT-dev-tech/auctionos/test/helpers"
)

type fetchRecorder struct {
	mu    sync.Mutex
	calls []domain.PropertyFilter
}

func (r *fetchRecorder) record(f domain.PropertyFilter) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, f)
	return len(r.calls)
}

func (r *fetchRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func (r *fetchRecorder) last() domain.PropertyFilter {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[len(r.calls)-1]
}

func TestListController_DebounceCollapsesRapidEdits(t *testing.T) {
	rec := &fetchRecorder{}
	props := helpers.CreateTestProperties(3)

	fetch := func(ctx context.Context, f domain.PropertyFilter, page domain.Page) ([]domain.Property, error) {
		rec.record(f)
		return props, nil
	}

	ctrl := services.NewListController(fetch, services.ListConfig{
		Settle:   50 * time.Millisecond,
		PageSize: 25,
	}, helpers.TestLogger())

	ctrl.Start(context.Background(), helpers.EmptyFilter())

	helpers.AssertEventuallyWithTimeout(t, func() bool {
		return rec.count() == 1
	}, time.Second, "initial load should fetch once")

	// Five keystrokes inside the settle window become one request.
	for _, kw := range []string{"m", "mi", "mia", "miam", "miami"} {
		kw := kw
		ctrl.UpdateFilter(func(f *domain.PropertyFilter) {
			f.Keyword = kw
		})
		time.Sleep(5 * time.Millisecond)
	}

	helpers.AssertEventuallyWithTimeout(t, func() bool {
		return rec.count() == 2
	}, time.Second, "rapid edits should collapse into one fetch")

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 2, rec.count(), "no extra fetches after the window settles")
	assert.Equal(t, "miami", rec.last().Keyword, "fetch reflects the latest filter snapshot")

	snap := ctrl.Snapshot()
	assert.Equal(t, services.StateLoaded, snap.State)
	assert.Len(t, snap.Items, 3)
}

func TestListController_StaleResponseNeverOverwritesNewer(t *testing.T) {
	release := make(chan struct{})
	slow := helpers.CreateTestProperties(5)
	fast := helpers.CreateTestProperties(1)

	fetch := func(ctx context.Context, f domain.PropertyFilter, page domain.Page) ([]domain.Property, error) {
		if f.Keyword == "" {
			<-release
			return slow, nil
		}
		return fast, nil
	}

	ctrl := services.NewListController(fetch, services.ListConfig{
		Settle:   10 * time.Millisecond,
		PageSize: 25,
	}, helpers.TestLogger())

	// First request hangs; the filter edit issues a newer one that
	// resolves first.
	ctrl.Start(context.Background(), helpers.EmptyFilter())
	ctrl.UpdateFilter(func(f *domain.PropertyFilter) {
		f.Keyword = "harris"
	})

	helpers.AssertEventuallyWithTimeout(t, func() bool {
		return ctrl.Snapshot().State == services.StateLoaded
	}, time.Second, "newer request should commit")
	require.Len(t, ctrl.Snapshot().Items, 1)

	// The stale response lands late and must be discarded.
	close(release)
	time.Sleep(100 * time.Millisecond)

	snap := ctrl.Snapshot()
	assert.Equal(t, services.StateLoaded, snap.State)
	assert.Len(t, snap.Items, 1, "stale response must not overwrite the newer result")
}

func TestListController_RefreshErrorKeepsStaleData(t *testing.T) {
	var failing bool
	var mu sync.Mutex
	props := helpers.CreateTestProperties(2)

	fetch := func(ctx context.Context, f domain.PropertyFilter, page domain.Page) ([]domain.Property, error) {
		mu.Lock()
		defer mu.Unlock()
		if failing {
			return nil, errors.New("upstream unavailable")
		}
		return props, nil
	}

	ctrl := services.NewListController(fetch, services.ListConfig{
		Settle:   10 * time.Millisecond,
		PageSize: 25,
	}, helpers.TestLogger())

	ctrl.Start(context.Background(), helpers.EmptyFilter())
	helpers.AssertEventuallyWithTimeout(t, func() bool {
		return ctrl.Snapshot().State == services.StateLoaded
	}, time.Second, "initial load")

	mu.Lock()
	failing = true
	mu.Unlock()
	ctrl.Refresh()

	helpers.AssertEventuallyWithTimeout(t, func() bool {
		return ctrl.Snapshot().State == services.StateError
	}, time.Second, "refresh failure should surface the error state")

	snap := ctrl.Snapshot()
	require.Error(t, snap.Err)
	assert.Len(t, snap.Items, 2, "previous data stays visible through a failed refresh")
}

func TestListController_EmptyResult(t *testing.T) {
	fetch := func(ctx context.Context, f domain.PropertyFilter, page domain.Page) ([]domain.Property, error) {
		return nil, nil
	}

	ctrl := services.NewListController(fetch, services.ListConfig{
		Settle:   10 * time.Millisecond,
		PageSize: 25,
	}, helpers.TestLogger())

	ctrl.Start(context.Background(), helpers.EmptyFilter())
	helpers.AssertEventuallyWithTimeout(t, func() bool {
		return ctrl.Snapshot().State == services.StateEmpty
	}, time.Second, "empty result should land in the empty state")
	assert.NoError(t, ctrl.Snapshot().Err)
}

func TestListController_PageSetBeforeStart(t *testing.T) {
	var mu sync.Mutex
	var pages []domain.Page

	fetch := func(ctx context.Context, f domain.PropertyFilter, page domain.Page) ([]domain.Property, error) {
		mu.Lock()
		pages = append(pages, page)
		mu.Unlock()
		return helpers.CreateTestProperties(1), nil
	}

	ctrl := services.NewListController(fetch, services.ListConfig{
		Settle:   20 * time.Millisecond,
		PageSize: 25,
	}, helpers.TestLogger())

	// A one-shot caller jumps to a page before starting; the initial
	// load must carry the offset rather than fetch page zero first.
	ctrl.SetPage(50)
	ctrl.Start(context.Background(), helpers.EmptyFilter())

	helpers.AssertEventuallyWithTimeout(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(pages) >= 1
	}, time.Second, "initial load should fetch")

	mu.Lock()
	assert.Equal(t, 50, pages[0].Skip, "initial load carries the pre-set offset")
	mu.Unlock()

	// The settle window elapses without a second fetch; Start absorbed
	// the pending page change.
	time.Sleep(60 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, pages, 1, "pre-start page change must not fire its own fetch")
}

func TestListController_FilterChangeResetsPagination(t *testing.T) {
	var mu sync.Mutex
	var pages []domain.Page

	fetch := func(ctx context.Context, f domain.PropertyFilter, page domain.Page) ([]domain.Property, error) {
		mu.Lock()
		pages = append(pages, page)
		mu.Unlock()
		return helpers.CreateTestProperties(1), nil
	}

	ctrl := services.NewListController(fetch, services.ListConfig{
		Settle:   10 * time.Millisecond,
		PageSize: 25,
	}, helpers.TestLogger())

	ctrl.Start(context.Background(), helpers.EmptyFilter())
	ctrl.NextPage()
	helpers.AssertEventuallyWithTimeout(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(pages) >= 2
	}, time.Second, "page change should fetch")

	ctrl.UpdateFilter(func(f *domain.PropertyFilter) {
		f.State = "TX"
	})
	helpers.AssertEventuallyWithTimeout(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(pages) >= 3
	}, time.Second, "filter change should fetch")

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 25, pages[1].Skip, "next page advances the offset")
	assert.Equal(t, 0, pages[2].Skip, "filter change resets to the first page")
}
