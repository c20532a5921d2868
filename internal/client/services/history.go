package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/secondwear/internal/client/query"
	"github.com/dmitrijs2005/secondwear/internal/client/repositories/history"
	"github.com/dmitrijs2005/secondwear/internal/logging"
)

// History is the navigation stack around a ListingService: every filter
// change is a visit that can be undone with Back and redone with Forward.
// Visits are also recorded in the repository so they can be reopened in a
// later run.
type History struct {
	listing *ListingService
	repo    history.Repository
	log     logging.Logger

	mu      sync.Mutex
	back    []string
	forward []string
}

// NewHistory wraps listing. repo may be nil.
func NewHistory(listing *ListingService, repo history.Repository, log logging.Logger) *History {
	return &History{listing: listing, repo: repo, log: log.With("service", "history")}
}

// Visit navigates to raw. A visit to the current query is a plain
// navigation and does not grow the stack.
func (h *History) Visit(ctx context.Context, raw string) (View, error) {
	next := query.Canonical(raw)
	current := h.listing.Serialized()

	h.mu.Lock()
	if next != current {
		h.back = append(h.back, current)
		h.forward = nil
	}
	h.mu.Unlock()

	h.record(ctx, next)
	return h.listing.Navigate(ctx, next)
}

// SetFilter visits the current query with key set to value.
func (h *History) SetFilter(ctx context.Context, key, value string) (View, error) {
	raw, err := query.SetFilter(h.listing.Serialized(), key, value)
	if err != nil {
		return h.listing.View(), err
	}
	return h.Visit(ctx, raw)
}

// ClearFilters visits the default query.
func (h *History) ClearFilters(ctx context.Context) (View, error) {
	return h.Visit(ctx, "")
}

func (h *History) Back(ctx context.Context) (View, error) {
	h.mu.Lock()
	if len(h.back) == 0 {
		h.mu.Unlock()
		return h.listing.View(), ErrNoHistory
	}
	prev := h.back[len(h.back)-1]
	h.back = h.back[:len(h.back)-1]
	h.forward = append(h.forward, h.listing.Serialized())
	h.mu.Unlock()

	return h.listing.Navigate(ctx, prev)
}

func (h *History) Forward(ctx context.Context) (View, error) {
	h.mu.Lock()
	if len(h.forward) == 0 {
		h.mu.Unlock()
		return h.listing.View(), ErrNoHistory
	}
	next := h.forward[len(h.forward)-1]
	h.forward = h.forward[:len(h.forward)-1]
	h.back = append(h.back, h.listing.Serialized())
	h.mu.Unlock()

	return h.listing.Navigate(ctx, next)
}

// Depth returns how many steps Back and Forward can take.
func (h *History) Depth() (back, forward int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.back), len(h.forward)
}

// Recent lists previously visited non-default queries, newest first.
func (h *History) Recent(ctx context.Context, limit int) ([]history.Entry, error) {
	if h.repo == nil {
		return nil, nil
	}
	return h.repo.Recent(ctx, limit)
}

func (h *History) record(ctx context.Context, q string) {
	if h.repo == nil || q == "" {
		return
	}
	if err := h.repo.Add(ctx, q); err != nil {
		h.log.Warn(ctx, "failed to record query", "query", q, "error", err)
	}
}
