package services

import (
	"bytes"
	"context"
	"sync"

	"github.com/dmitrijs2005/secondwear/internal/client/client"
	"github.com/dmitrijs2005/secondwear/internal/client/models"
	"github.com/dmitrijs2005/secondwear/internal/client/query"
	"github.com/dmitrijs2005/secondwear/internal/logging"
	"github.com/dmitrijs2005/secondwear/internal/metrics"
)

// View is the listing as last reconciled with the API.
//
// Loaded is false until the first successful fetch, so an empty Items slice
// with Loaded set means "no matches". Err holds the error of the most recent
// fetch and is cleared by the next successful one; Items are kept on error.
type View struct {
	Query  string
	Items  []models.Item
	Total  int
	Loaded bool
	Err    error
}

// ListingService keeps the visible items consistent with the serialized
// query. The serialized form is the only stored criteria; State values are
// always parsed from it.
type ListingService struct {
	gw  client.Gateway
	log logging.Logger

	mu      sync.Mutex
	raw     string
	fetched string
	started bool
	gen     uint64
	view    View
}

func NewListingService(gw client.Gateway, log logging.Logger) *ListingService {
	return &ListingService{gw: gw, log: log.With("service", "listing")}
}

// Serialized returns the canonical query currently in effect.
func (s *ListingService) Serialized() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.raw
}

// ReadQuery derives the criteria from the serialized form.
func (s *ListingService) ReadQuery() query.State {
	return query.Parse(s.Serialized())
}

// View returns a copy of the current view state.
func (s *ListingService) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *ListingService) snapshot() View {
	v := s.view
	if v.Items != nil {
		items := make([]models.Item, len(v.Items))
		copy(items, v.Items)
		v.Items = items
	}
	return v
}

// SetFilter sets key to value (or removes it when value is blank) and
// navigates to the resulting query.
func (s *ListingService) SetFilter(ctx context.Context, key, value string) (View, error) {
	raw, err := query.SetFilter(s.Serialized(), key, value)
	if err != nil {
		return s.View(), err
	}
	return s.Navigate(ctx, raw)
}

// ClearFilters navigates to the default query.
func (s *ListingService) ClearFilters(ctx context.Context) (View, error) {
	return s.Navigate(ctx, "")
}

// Navigate makes raw the current query. The API is called only when the
// canonical form differs from the one last fetched.
func (s *ListingService) Navigate(ctx context.Context, raw string) (View, error) {
	canonical := query.Canonical(raw)

	s.mu.Lock()
	s.raw = canonical
	unchanged := s.started && canonical == s.fetched
	s.mu.Unlock()

	if unchanged {
		return s.View(), nil
	}
	return s.FetchForQuery(ctx, query.Parse(canonical))
}

// Refresh re-fetches the current query unconditionally.
func (s *ListingService) Refresh(ctx context.Context) (View, error) {
	return s.FetchForQuery(ctx, s.ReadQuery())
}

// FetchForQuery requests the listing for st and reconciles the view. On
// success the items replace the view in server order. On failure the items
// are kept and the error is recorded in View.Err. A response overtaken by a
// newer fetch is dropped with ErrStaleResponse.
func (s *ListingService) FetchForQuery(ctx context.Context, st query.State) (View, error) {
	key := st.Encode()

	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.started = true
	s.fetched = key
	s.mu.Unlock()

	res := s.gw.Call(ctx, "/items", &client.RequestOptions{Query: st.APIValues()})
	coll, err := decodeItems(res)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		metrics.ListingFetchesTotal.WithLabelValues("stale").Inc()
		s.log.Debug(ctx, "dropping stale listing response", "query", key)
		return s.snapshot(), ErrStaleResponse
	}

	if err != nil {
		metrics.ListingFetchesTotal.WithLabelValues("error").Inc()
		s.view.Err = err
		return s.snapshot(), err
	}

	metrics.ListingFetchesTotal.WithLabelValues("ok").Inc()
	s.view = View{
		Query:  key,
		Items:  coll.Items,
		Total:  coll.Total,
		Loaded: true,
	}
	return s.snapshot(), nil
}

// decodeItems accepts {"items": [...]} and a bare array. The result always
// has a non-nil Items slice.
func decodeItems(res client.Result) (models.ItemCollection, error) {
	var coll models.ItemCollection
	if !res.OK {
		return coll, res.Err()
	}

	if bytes.HasPrefix(bytes.TrimSpace(res.Data), []byte("[")) {
		if err := res.Decode(&coll.Items); err != nil {
			return coll, err
		}
	} else if err := res.Decode(&coll); err != nil {
		return coll, err
	}

	if coll.Items == nil {
		coll.Items = []models.Item{}
	}
	if coll.Total == 0 {
		coll.Total = len(coll.Items)
	}
	return coll, nil
}
