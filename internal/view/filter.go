// Package view implements the paginated resource view pattern: filter
// state, a fenced list fetch controller, pure list reducers, a tab router,
// and a debounce primitive.
package view

import "makernet/internal/api"

// Filter holds the active query parameters for one list view. It is pure
// data; the controller owns when changes trigger a fetch.
type Filter struct {
	Search    string
	Status    string
	Type      string
	SortBy    string
	MinBudget *int
	MaxBudget *int
	Offset    int
	Limit     int
}

// Params converts the filter into API list parameters.
func (f Filter) Params() api.ListParams {
	return api.ListParams{
		Limit:     f.Limit,
		Offset:    f.Offset,
		Search:    f.Search,
		Status:    f.Status,
		Type:      f.Type,
		SortBy:    f.SortBy,
		MinBudget: f.MinBudget,
		MaxBudget: f.MaxBudget,
	}
}

// Page returns the zero-based page index implied by the offset.
func (f Filter) Page() int {
	if f.Limit <= 0 {
		return 0
	}
	return f.Offset / f.Limit
}
