// Package catalog serves the event catalog and implements its search filter.
package catalog

import (
	"cmp"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/eventhub/backend/internal/errs"
	"github.com/eventhub/backend/internal/models"
)

// SortOrder is an explicit catalog ordering. The zero value keeps catalog order.
type SortOrder string

const (
	SortNone      SortOrder = ""
	SortDate      SortOrder = "date"
	SortPriceAsc  SortOrder = "price_asc"
	SortPriceDesc SortOrder = "price_desc"
	SortTitle     SortOrder = "title"
)

func (s SortOrder) valid() bool {
	switch s {
	case SortNone, SortDate, SortPriceAsc, SortPriceDesc, SortTitle:
		return true
	}
	return false
}

// Query selects a subsequence of the catalog. The zero Query matches every event.
type Query struct {
	Text     string
	Tags     []string
	MinPrice int
	// MaxPrice is inclusive; nil means no upper bound.
	MaxPrice *int
	Sort     SortOrder
}

// Matches reports whether e passes the text, tag and price conditions of q.
func (q Query) Matches(e models.Event) bool {
	if q.Text != "" {
		needle := strings.ToLower(q.Text)
		if !strings.Contains(strings.ToLower(e.Title), needle) &&
			!strings.Contains(strings.ToLower(e.Description), needle) &&
			!strings.Contains(strings.ToLower(e.Organizer), needle) {
			return false
		}
	}
	if len(q.Tags) > 0 && !slices.ContainsFunc(q.Tags, e.HasTag) {
		return false
	}
	p := e.Price()
	if p < q.MinPrice {
		return false
	}
	if q.MaxPrice != nil && p > *q.MaxPrice {
		return false
	}
	return true
}

// Filter returns the events matching q. The result is a new slice in catalog order unless
// q.Sort asks for another one; events is never modified.
func Filter(events []models.Event, q Query) []models.Event {
	out := make([]models.Event, 0, len(events))
	for _, e := range events {
		if q.Matches(e) {
			out = append(out, e)
		}
	}
	sortEvents(out, q.Sort)
	return out
}

func sortEvents(events []models.Event, order SortOrder) {
	var compare func(a, b models.Event) int
	switch order {
	case SortDate:
		compare = func(a, b models.Event) int { return a.StartDate.Compare(b.StartDate) }
	case SortPriceAsc:
		compare = func(a, b models.Event) int { return cmp.Compare(a.Price(), b.Price()) }
	case SortPriceDesc:
		compare = func(a, b models.Event) int { return cmp.Compare(b.Price(), a.Price()) }
	case SortTitle:
		compare = func(a, b models.Event) int {
			return cmp.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
		}
	default:
		return
	}
	slices.SortStableFunc(events, compare)
}

// Tags returns every tag used in events, each once, in first-seen order.
func Tags(events []models.Event) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, e := range events {
		for _, t := range e.Tags {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	return out
}

// ParseQuery reads q, tags, min_price, max_price and sort from URL parameters. Tags may be
// repeated or comma-separated. q is matched as given, surrounding spaces included.
func ParseQuery(v url.Values) (Query, error) {
	q := Query{Text: v.Get("q"), Sort: SortOrder(v.Get("sort"))}

	for _, raw := range v["tags"] {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" && !slices.Contains(q.Tags, t) {
				q.Tags = append(q.Tags, t)
			}
		}
	}

	var fields []errs.FieldError
	if s := v.Get("min_price"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			fields = append(fields, errs.FieldError{Field: "min_price", Message: "Minimum price must be a non-negative number"})
		} else {
			q.MinPrice = n
		}
	}
	if s := v.Get("max_price"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			fields = append(fields, errs.FieldError{Field: "max_price", Message: "Maximum price must be a non-negative number"})
		} else {
			q.MaxPrice = &n
		}
	}
	if len(fields) == 0 && q.MaxPrice != nil && q.MinPrice > *q.MaxPrice {
		fields = append(fields, errs.FieldError{Field: "min_price", Message: "Minimum price must not exceed maximum price"})
	}
	if !q.Sort.valid() {
		fields = append(fields, errs.FieldError{Field: "sort", Message: "Sort must be one of date, price_asc, price_desc, title"})
	}
	if len(fields) > 0 {
		return Query{}, &errs.ValidationError{Fields: fields}
	}
	return q, nil
}
