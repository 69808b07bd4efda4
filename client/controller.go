package client

import (
	"context"
	"log"
	"sort"
	"sync"
)

// SortMode selects how the controller orders its snapshot.
type SortMode string

const (
	SortNewest  SortMode = "newest"
	SortHighest SortMode = "highest"
	SortLowest  SortMode = "lowest"
)

// ListController keeps a live snapshot of the review list: it fetches on
// Start, refetches after every local mutation and on every change
// notification, and re-sorts locally. A failed refetch keeps the previous
// snapshot so readers always have the last good list.
type ListController struct {
	client   *Client
	onUpdate func([]Review)

	mu      sync.Mutex
	fetched []Review // fetch order (newest first), the stable tie-break
	loaded  bool
	mode    SortMode
	sub     *Subscription
}

// NewListController creates a controller in newest-first mode. onUpdate, if
// non-nil, runs after every snapshot change.
func NewListController(c *Client, onUpdate func([]Review)) *ListController {
	return &ListController{
		client:   c,
		onUpdate: onUpdate,
		mode:     SortNewest,
	}
}

// Start performs the initial fetch and subscribes to the change feed.
// wsURL may be empty to skip the subscription (polling callers).
func (lc *ListController) Start(ctx context.Context, wsURL string) error {
	if err := lc.fetch(ctx); err != nil {
		return err
	}

	if wsURL != "" {
		sub, err := Subscribe(wsURL, func(table string) {
			// Payload-free by design: any change on any watched
			// table means refetch.
			if err := lc.fetch(context.Background()); err != nil {
				log.Printf("Refetch after change notification failed, keeping stale list: %v", err)
			}
		})
		if err != nil {
			return err
		}
		lc.mu.Lock()
		lc.sub = sub
		lc.mu.Unlock()
	}
	return nil
}

// Stop releases the change subscription. Safe to call more than once and
// regardless of how Start went.
func (lc *ListController) Stop() {
	lc.mu.Lock()
	sub := lc.sub
	lc.sub = nil
	lc.mu.Unlock()

	if sub != nil {
		sub.Close()
	}
}

// Refresh refetches the list. Failures keep the previous snapshot and are
// not surfaced past the log: reads are stale-but-available.
func (lc *ListController) Refresh(ctx context.Context) {
	if err := lc.fetch(ctx); err != nil {
		log.Printf("Review list refresh failed, keeping stale list: %v", err)
	}
}

func (lc *ListController) fetch(ctx context.Context) error {
	reviews, err := lc.client.ListReviews(ctx)
	if err != nil {
		return err
	}

	lc.mu.Lock()
	lc.fetched = reviews
	lc.loaded = true
	snapshot := lc.sortedLocked()
	cb := lc.onUpdate
	lc.mu.Unlock()

	if cb != nil {
		cb(snapshot)
	}
	return nil
}

// SetSort changes the sort mode and re-sorts the current snapshot without a
// network round trip.
func (lc *ListController) SetSort(mode SortMode) {
	lc.mu.Lock()
	lc.mode = mode
	snapshot := lc.sortedLocked()
	cb := lc.onUpdate
	lc.mu.Unlock()

	if cb != nil {
		cb(snapshot)
	}
}

// Reviews returns the current snapshot in the active sort order.
func (lc *ListController) Reviews() []Review {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return lc.sortedLocked()
}

// Loaded reports whether at least one fetch has succeeded.
func (lc *ListController) Loaded() bool {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return lc.loaded
}

// sortedLocked copies the fetch-order slice and sorts stably, so equal
// ratings keep their fetch order.
func (lc *ListController) sortedLocked() []Review {
	out := make([]Review, len(lc.fetched))
	copy(out, lc.fetched)

	switch lc.mode {
	case SortHighest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	case SortLowest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Rating < out[j].Rating })
	}
	return out
}

// Submit is the form flow: validate, create, persist the credential, then
// refetch. The form's own state handling (clearing fields, staying
// populated on failure) is the caller's concern.
func (lc *ListController) Submit(ctx context.Context, name string, rating int, comment string) (Review, error) {
	review, err := lc.client.CreateReview(ctx, name, rating, comment)
	if err != nil {
		return Review{}, err
	}
	lc.Refresh(ctx)
	return review, nil
}

// Edit is the card save flow; false means the edit was refused without
// revealing why.
func (lc *ListController) Edit(ctx context.Context, id, name string, rating int, comment string) (bool, error) {
	ok, err := lc.client.UpdateReview(ctx, id, name, rating, comment)
	if err != nil {
		return false, err
	}
	if ok {
		lc.Refresh(ctx)
	}
	return ok, nil
}

// Remove is the card delete flow; the credential entry goes with the row.
func (lc *ListController) Remove(ctx context.Context, id string) (bool, error) {
	ok, err := lc.client.DeleteReview(ctx, id)
	if err != nil {
		return false, err
	}
	if ok {
		lc.Refresh(ctx)
	}
	return ok, nil
}
