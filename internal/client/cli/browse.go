package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/secondwear/internal/client/query"
	"github.com/dmitrijs2005/secondwear/internal/client/services"
)

const recentLimit = 10

var filterAliases = map[string]string{
	"q":         query.KeyQuery,
	"search":    query.KeyQuery,
	"category":  query.KeyCategory,
	"sort":      query.KeySort,
	"sort_by":   query.KeySort,
	"condition": query.KeyCondition,
	"seller":    query.KeySeller,
	"seller_id": query.KeySeller,
}

func filterKey(name string) (string, error) {
	if k, ok := filterAliases[strings.ToLower(name)]; ok {
		return k, nil
	}
	return "", fmt.Errorf("%w: %q (use q, category, sort, condition or seller)", query.ErrUnknownFilter, name)
}

// Items prints the listing for the current query, loading it on first use.
// A listing that has never loaded successfully is fetched again.
func (a *App) Items(ctx context.Context) error {
	v := a.listing.View()
	if !v.Loaded {
		if v.Err != nil {
			return a.show(a.listing.Refresh(ctx))
		}
		return a.show(a.listing.Navigate(ctx, a.listing.Serialized()))
	}
	a.printView(v)
	return nil
}

func (a *App) Refresh(ctx context.Context) error {
	return a.show(a.listing.Refresh(ctx))
}

// Filter sets one filter: filter <key> <value...>.
func (a *App) Filter(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: filter <key> <value>; sort keys: %s", joinSortKeys())
	}
	key, err := filterKey(args[0])
	if err != nil {
		return err
	}
	return a.show(a.history.SetFilter(ctx, key, strings.Join(args[1:], " ")))
}

// Unfilter removes one filter: unfilter <key>.
func (a *App) Unfilter(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: unfilter <key>")
	}
	key, err := filterKey(args[0])
	if err != nil {
		return err
	}
	return a.show(a.history.SetFilter(ctx, key, ""))
}

func (a *App) ClearFilters(ctx context.Context) error {
	return a.show(a.history.ClearFilters(ctx))
}

// Open navigates to a serialized query, e.g. "open q=jacket&sort_by=price_asc".
func (a *App) Open(ctx context.Context, args []string) error {
	return a.show(a.history.Visit(ctx, strings.Join(args, " ")))
}

func (a *App) Back(ctx context.Context) error {
	return a.show(a.history.Back(ctx))
}

func (a *App) Forward(ctx context.Context) error {
	return a.show(a.history.Forward(ctx))
}

// Recent lists previously visited queries; reopen one with "open".
func (a *App) Recent(ctx context.Context) error {
	entries, err := a.history.Recent(ctx, recentLimit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		a.printf("No recent searches\n")
		return nil
	}
	for _, e := range entries {
		a.printf("%s  %s\n", e.VisitedAt.Local().Format("2006-01-02 15:04"), e.Query)
	}
	return nil
}

// Show prints one item: show <id>.
func (a *App) Show(ctx context.Context, args []string) error {
	if a.items == nil {
		return errUnavailable
	}
	id, err := parseID(args, "show <item-id>")
	if err != nil {
		return err
	}

	it, err := a.items.Get(ctx, id)
	if err != nil {
		return err
	}
	a.printf("%s\n", it.Title)
	a.printf("Price: %s\n", it.PriceLabel())
	details := []struct{ label, value string }{
		{"Brand", it.Brand},
		{"Size", it.Size},
		{"Color", it.Color},
		{"Condition", it.Condition},
		{"Category", it.Category},
	}
	for _, d := range details {
		if d.value != "" {
			a.printf("%s: %s\n", d.label, d.value)
		}
	}
	if it.Seller != nil {
		a.printf("Seller: %s (id %d)\n", it.Seller.Username, it.Seller.ID)
	}
	if it.IsSold {
		a.printf("SOLD\n")
	}
	if it.Description != "" {
		a.printf("\n%s\n", it.Description)
	}
	for _, img := range it.Images {
		a.printf("Image: %s\n", img.ImageURL)
	}
	return nil
}

// Featured prints the newest listings: featured [limit].
func (a *App) Featured(ctx context.Context, args []string) error {
	if a.items == nil {
		return errUnavailable
	}
	limit := services.DefaultFeaturedLimit
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid limit %q", args[0])
		}
		limit = n
	}

	items, err := a.items.Featured(ctx, limit)
	if err != nil {
		return err
	}
	for _, it := range items {
		a.printf("%s\n", it)
	}
	return nil
}

func (a *App) Categories(ctx context.Context) error {
	if a.items == nil {
		return errUnavailable
	}
	cats, err := a.items.Categories(ctx)
	if err != nil {
		return err
	}
	for _, c := range cats {
		if c.Count > 0 {
			a.printf("%s (%d)\n", c.Name, c.Count)
		} else {
			a.printf("%s\n", c.Name)
		}
	}
	return nil
}

// show prints the outcome of a navigation. A fetch failure is part of the
// view and printed with it; any other error is returned. A stale response
// is dropped silently since a newer fetch superseded it.
func (a *App) show(v services.View, err error) error {
	if errors.Is(err, services.ErrStaleResponse) {
		return nil
	}
	if err != nil && !errors.Is(v.Err, err) {
		return err
	}
	a.printView(v)
	return nil
}

func (a *App) printView(v services.View) {
	label := v.Query
	if label == "" {
		label = "all items"
	}
	a.printf("Listing: %s\n", label)
	if v.Err != nil {
		a.printf("Could not load items: %v\n", v.Err)
	}
	if !v.Loaded {
		return
	}
	if len(v.Items) == 0 {
		a.printf("No items found\n")
		return
	}
	for _, it := range v.Items {
		a.printf("  %s\n", it)
	}
	a.printf("%d of %d items\n", len(v.Items), v.Total)
}

func joinSortKeys() string {
	keys := query.SortKeys()
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = string(k)
	}
	return strings.Join(out, ", ")
}

func parseID(args []string, usage string) (int64, error) {
	if len(args) == 0 {
		return 0, errors.New("usage: " + usage)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", args[0])
	}
	return id, nil
}
