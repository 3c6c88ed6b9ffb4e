package view

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func newTestController(fetch Fetcher[entity]) *Controller[entity] {
	return NewController("entities", 10, fetch, entityID)
}

func page(ids ...uint) Page[entity] {
	p := Page[entity]{Total: len(ids)}
	for _, id := range ids {
		p.Items = append(p.Items, entity{ID: id})
	}
	return p
}

func TestControllerFilterChangeResetsOffset(t *testing.T) {
	t.Parallel()

	var gotOffsets []int
	c := newTestController(func(_ context.Context, f Filter) (Page[entity], error) {
		gotOffsets = append(gotOffsets, f.Offset)
		return page(1), nil
	})

	ctx := context.Background()
	c.SetPage(ctx, 3)
	if c.Filter().Offset != 30 {
		t.Fatalf("offset after page 3 = %d, want 30", c.Filter().Offset)
	}

	c.SetFilter(ctx, func(f *Filter) { f.Search = "golang" })
	if c.Filter().Offset != 0 {
		t.Fatalf("filter change must reset offset, got %d", c.Filter().Offset)
	}
	if len(gotOffsets) != 2 || gotOffsets[1] != 0 {
		t.Fatalf("second fetch offset = %v, want [30 0]", gotOffsets)
	}
	if c.Filter().Search != "golang" {
		t.Fatal("search filter not applied")
	}
}

func TestControllerLoadingLifecycle(t *testing.T) {
	t.Parallel()

	fetchErr := errors.New("backend down")
	fail := true
	var sawLoading bool
	c := newTestController(nil)
	c.fetch = func(_ context.Context, _ Filter) (Page[entity], error) {
		sawLoading = c.Loading()
		if fail {
			return Page[entity]{}, fetchErr
		}
		return page(1, 2), nil
	}

	if c.State() != StateIdle {
		t.Fatalf("initial state = %s, want idle", c.State())
	}

	ctx := context.Background()
	c.Refresh(ctx)
	if !sawLoading {
		t.Fatal("loading flag must be set while the fetch runs")
	}
	if c.Loading() {
		t.Fatal("loading flag must clear after a failed fetch")
	}
	if c.State() != StateError || !errors.Is(c.Err(), fetchErr) {
		t.Fatalf("state = %s err = %v, want error state", c.State(), c.Err())
	}

	fail = false
	c.Refresh(ctx)
	if c.State() != StateSuccess || c.Err() != nil {
		t.Fatalf("state = %s err = %v, want success", c.State(), c.Err())
	}
	if c.Loading() {
		t.Fatal("loading flag must clear after success")
	}
	if len(c.Items()) != 2 || c.Total() != 2 {
		t.Fatalf("items = %d total = %d, want 2/2", len(c.Items()), c.Total())
	}
}

func TestControllerStaleResponseDiscarded(t *testing.T) {
	t.Parallel()

	slowStarted := make(chan struct{})
	release := make(chan struct{})
	c := newTestController(func(ctx context.Context, f Filter) (Page[entity], error) {
		if f.Search == "slow" {
			close(slowStarted)
			<-release
			return page(99), nil
		}
		return page(1), nil
	})

	ctx := context.Background()
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.SetFilter(ctx, func(f *Filter) { f.Search = "slow" })
	}()
	<-slowStarted

	// A newer fetch supersedes the in-flight one.
	c.SetFilter(ctx, func(f *Filter) { f.Search = "fast" })
	close(release)
	wg.Wait()

	items := c.Items()
	if len(items) != 1 || items[0].ID != 1 {
		t.Fatalf("stale response committed: items = %v", items)
	}
	if c.Loading() {
		t.Fatal("a stale completion must not disturb the loading flag")
	}
	if c.State() != StateSuccess {
		t.Fatalf("state = %s, want success", c.State())
	}
}

func TestControllerStaleFetchContextCancelled(t *testing.T) {
	t.Parallel()

	slowStarted := make(chan struct{})
	cancelled := make(chan struct{})
	c := newTestController(func(ctx context.Context, f Filter) (Page[entity], error) {
		if f.Search == "slow" {
			close(slowStarted)
			<-ctx.Done()
			close(cancelled)
			return Page[entity]{}, ctx.Err()
		}
		return page(1), nil
	})

	ctx := context.Background()
	go c.SetFilter(ctx, func(f *Filter) { f.Search = "slow" })
	<-slowStarted
	c.SetFilter(ctx, func(f *Filter) { f.Search = "fast" })
	<-cancelled

	if err := c.Err(); err != nil {
		t.Fatalf("cancelled stale fetch must not surface an error, got %v", err)
	}
}

func TestControllerPageCount(t *testing.T) {
	t.Parallel()

	totals := map[int]int{0: 0, 1: 1, 10: 1, 11: 2, 95: 10}
	for total, want := range totals {
		c := newTestController(func(_ context.Context, _ Filter) (Page[entity], error) {
			return Page[entity]{Total: total}, nil
		})
		c.Refresh(context.Background())
		if got := c.PageCount(); got != want {
			t.Fatalf("PageCount with total %d = %d, want %d", total, got, want)
		}
	}
}

func TestControllerRemove(t *testing.T) {
	t.Parallel()

	c := newTestController(func(_ context.Context, _ Filter) (Page[entity], error) {
		p := page(1, 2, 3)
		p.Total = 30
		return p, nil
	})
	c.Refresh(context.Background())

	if !c.Remove(2) {
		t.Fatal("expected removal of id 2")
	}
	if len(c.Items()) != 2 || c.Total() != 29 {
		t.Fatalf("items = %d total = %d, want 2/29", len(c.Items()), c.Total())
	}

	if c.Remove(2) {
		t.Fatal("second removal of the same id must be a no-op")
	}
	if len(c.Items()) != 2 || c.Total() != 29 {
		t.Fatal("no-op removal must not change state")
	}
}

func TestControllerPatchAndReplace(t *testing.T) {
	t.Parallel()

	c := newTestController(func(_ context.Context, _ Filter) (Page[entity], error) {
		return page(1, 2), nil
	})
	c.Refresh(context.Background())

	if !c.Patch(1, func(e *entity) { e.Name = "patched" }) {
		t.Fatal("expected a patch")
	}
	if c.Items()[0].Name != "patched" {
		t.Fatal("patch not applied")
	}

	if !c.Replace(2, entity{ID: 2, Name: "fresh"}) {
		t.Fatal("expected a replace")
	}
	if c.Items()[1].Name != "fresh" {
		t.Fatal("replace not applied")
	}

	if c.Patch(99, func(e *entity) {}) {
		t.Fatal("patching a missing id must report false")
	}
}
