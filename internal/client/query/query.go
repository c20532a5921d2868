// Package query implements the listing filter state and its canonical
// query-string form.
//
// The serialized form is the source of truth. A State is always derived from
// it with Parse and written back with Encode, which omits defaults and orders
// keys, so the same criteria always produce the same string.
package query

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Keys of the serialized form.
const (
	KeyQuery     = "q"
	KeyCategory  = "category"
	KeySort      = "sort_by"
	KeyCondition = "condition"
	KeySeller    = "seller_id"
)

var (
	ErrUnknownFilter = errors.New("unknown filter")
	ErrInvalidSort   = errors.New("invalid sort key")
)

type SortKey string

const (
	SortNewest     SortKey = "newest"
	SortPriceAsc   SortKey = "price_asc"
	SortPriceDesc  SortKey = "price_desc"
	SortMostViewed SortKey = "most_viewed"
	SortMostLiked  SortKey = "most_liked"
)

// DefaultSort applies when the serialized form carries no sort key.
const DefaultSort = SortNewest

var sortToAPI = map[SortKey]string{
	SortNewest:     "created_at",
	SortPriceAsc:   "price",
	SortPriceDesc:  "price_desc",
	SortMostViewed: "views",
	SortMostLiked:  "likes",
}

// SortKeys lists the accepted sort keys in display order.
func SortKeys() []SortKey {
	return []SortKey{SortNewest, SortPriceAsc, SortPriceDesc, SortMostViewed, SortMostLiked}
}

// ParseSort accepts a sort key or its server spelling ("created_at", "price",
// "views", "likes") so links written against the API keep working.
func ParseSort(s string) (SortKey, bool) {
	s = strings.TrimSpace(s)
	if _, ok := sortToAPI[SortKey(s)]; ok {
		return SortKey(s), true
	}
	for k, v := range sortToAPI {
		if v == s {
			return k, true
		}
	}
	return "", false
}

// APIValue is the sort_by value understood by the listing endpoint.
func (k SortKey) APIValue() string {
	if v, ok := sortToAPI[k]; ok {
		return v
	}
	return sortToAPI[DefaultSort]
}

// State is the decoded listing criteria. Empty strings mean "all".
type State struct {
	Query     string
	Category  string
	Sort      SortKey
	Condition string
	SellerID  string
}

// Parse decodes a serialized form. A leading "?" is ignored. Unknown keys,
// blank values and unknown sort keys are dropped, and missing fields take
// their defaults.
func Parse(raw string) State {
	st := State{Sort: DefaultSort}

	vals, err := url.ParseQuery(strings.TrimPrefix(strings.TrimSpace(raw), "?"))
	if err != nil && vals == nil {
		return st
	}

	st.Query = strings.TrimSpace(vals.Get(KeyQuery))
	st.Category = strings.TrimSpace(vals.Get(KeyCategory))
	st.Condition = strings.TrimSpace(vals.Get(KeyCondition))
	st.SellerID = strings.TrimSpace(vals.Get(KeySeller))
	if k, ok := ParseSort(vals.Get(KeySort)); ok {
		st.Sort = k
	}
	return st
}

// Encode returns the canonical serialized form: non-default fields only,
// keys in sorted order. The zero State encodes to "".
func (s State) Encode() string {
	vals := url.Values{}
	put := func(k, v string) {
		if v = strings.TrimSpace(v); v != "" {
			vals.Set(k, v)
		}
	}
	put(KeyQuery, s.Query)
	put(KeyCategory, s.Category)
	put(KeyCondition, s.Condition)
	put(KeySeller, s.SellerID)
	if s.Sort != "" && s.Sort != DefaultSort {
		if _, ok := sortToAPI[s.Sort]; ok {
			vals.Set(KeySort, string(s.Sort))
		}
	}
	return vals.Encode()
}

func (s State) String() string { return s.Encode() }

// IsDefault reports whether no filter deviates from its default.
func (s State) IsDefault() bool { return s.Encode() == "" }

// With returns a copy of s with key set to value. A blank value removes the
// key.
func (s State) With(key, value string) (State, error) {
	value = strings.TrimSpace(value)
	switch key {
	case KeyQuery:
		s.Query = value
	case KeyCategory:
		s.Category = value
	case KeyCondition:
		s.Condition = value
	case KeySeller:
		s.SellerID = value
	case KeySort:
		if value == "" {
			s.Sort = DefaultSort
			break
		}
		k, ok := ParseSort(value)
		if !ok {
			return s, fmt.Errorf("%w: %q", ErrInvalidSort, value)
		}
		s.Sort = k
	default:
		return s, fmt.Errorf("%w: %q", ErrUnknownFilter, key)
	}
	return s, nil
}

// SetFilter applies With to the state encoded in raw and returns the new
// canonical form.
func SetFilter(raw, key, value string) (string, error) {
	st, err := Parse(raw).With(key, value)
	if err != nil {
		return "", err
	}
	return st.Encode(), nil
}

// Canonical re-encodes raw. Two strings describing the same criteria have the
// same canonical form.
func Canonical(raw string) string {
	return Parse(raw).Encode()
}

// APIValues returns the listing endpoint parameters for every non-default
// field, with the sort key translated to the server vocabulary.
func (s State) APIValues() url.Values {
	vals := url.Values{}
	if s.Query != "" {
		vals.Set("q", s.Query)
	}
	if s.Category != "" {
		vals.Set("category", s.Category)
	}
	if s.Condition != "" {
		vals.Set("condition", s.Condition)
	}
	if s.SellerID != "" {
		vals.Set("seller_id", s.SellerID)
	}
	if s.Sort != "" && s.Sort != DefaultSort {
		vals.Set("sort_by", s.Sort.APIValue())
	}
	return vals
}
