package tracker

import "suppliertracker/internal/domain/model"

// TabAll selects every delivery channel.
const TabAll = "all"

// FilterAll is the sentinel for an inactive status or date filter.
const FilterAll = "all"

// ViewState is the single mutable state behind a rendered order page: the
// last-loaded snapshot, the edit target, and the active delivery tab.
type ViewState struct {
	Orders    []model.Order
	EditingID *int64
	ActiveTab string
}

// NewViewState creates an empty state on the "all" tab.
func NewViewState() *ViewState {
	return &ViewState{Orders: []model.Order{}, ActiveTab: TabAll}
}

// ReplaceOrders swaps the snapshot wholesale. The collection is never patched
// in place; every mutation is confirmed by a fresh load.
func (s *ViewState) ReplaceOrders(orders []model.Order) {
	if orders == nil {
		orders = []model.Order{}
	}
	s.Orders = orders
}
