package tracker

import (
	"sort"
	"strings"

	"suppliertracker/internal/domain/model"
)

// Filters holds the filter-widget values. They are read on demand when the
// visible subset is derived, never cached alongside it.
type Filters struct {
	Status string
	Date   string
	Query  string
}

// DefaultFilters returns the values every page starts with.
func DefaultFilters() Filters {
	return Filters{Status: FilterAll, Date: FilterAll}
}

// Filtered derives the visible subset of orders. All four predicates are
// combined with AND; with everything at its default the result is the
// snapshot unchanged, in the same order.
func Filtered(orders []model.Order, activeTab string, f Filters) []model.Order {
	tab := activeTab
	if tab == "" {
		tab = TabAll
	}
	status := f.Status
	if status == "" {
		status = FilterAll
	}
	date := f.Date
	if date == "" {
		date = FilterAll
	}
	query := strings.ToLower(strings.TrimSpace(f.Query))

	out := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		if tab != TabAll && deliveryOf(o) != tab {
			continue
		}
		if status != FilterAll && statusOf(o) != status {
			continue
		}
		if date != FilterAll && deref(o.OrderDate) != date {
			continue
		}
		if query != "" && !strings.Contains(haystack(o), query) {
			continue
		}
		out = append(out, o)
	}
	return out
}

// DateOptions rebuilds the date-filter choices from a snapshot: the "all"
// sentinel followed by every distinct non-empty order date, newest first.
// The current selection is preserved when it still exists, otherwise it
// falls back to "all".
func DateOptions(orders []model.Order, current string) ([]string, string) {
	seen := make(map[string]struct{})
	for _, o := range orders {
		if d := deref(o.OrderDate); d != "" {
			seen[d] = struct{}{}
		}
	}
	dates := make([]string, 0, len(seen))
	for d := range seen {
		dates = append(dates, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	selected := FilterAll
	if _, ok := seen[current]; ok {
		selected = current
	}
	return append([]string{FilterAll}, dates...), selected
}

func deliveryOf(o model.Order) string {
	if o.DeliveryMethod == "" {
		return string(model.DeliveryJNT)
	}
	return strings.ToLower(string(o.DeliveryMethod))
}

func statusOf(o model.Order) string {
	if o.Status == "" {
		return string(model.StatusPending)
	}
	return strings.ToLower(string(o.Status))
}

// haystack joins the searchable text fields into one lowercased string so a
// query can match across any of them.
func haystack(o model.Order) string {
	parts := make([]string, 0, 5)
	for _, s := range []string{deref(o.OrderCode), o.CustomerName, deref(o.FBProfile), o.OrderDetails, deref(o.Notes)} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.ToLower(strings.Join(parts, " "))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
