// Package pagination drives list browsing over an injected fetch function:
// Controller replaces the visible page on every fetch, Scroller appends pages
// for infinite scrolling. Both surface failures as state, never as returned
// errors, and both drop responses that arrive after a newer request was issued.
package pagination

import (
	"context"

	"dareboard/internal/apiutil"
)

// Params is what a fetch function receives. Extra carries caller filters
// (difficulty, status, ...) untouched.
type Params struct {
	Page  int
	Limit int
	Extra map[string]string
}

// FetchFunc loads one page. Implementations report failure through the error
// and may return any envelope shape.
type FetchFunc[T any] func(ctx context.Context, p Params) (apiutil.Envelope[T], error)

// PaginationState is derived from the last successful fetch.
type PaginationState struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// derivePagination merges server metadata over values computed from the
// request and the number of items received.
func derivePagination(req apiutil.PaginationParams, received int, meta *apiutil.Meta) PaginationState {
	ps := PaginationState{Page: req.Page, Limit: req.Limit, Total: received}

	if meta != nil {
		if meta.Page != nil && *meta.Page >= 1 {
			ps.Page = *meta.Page
		}
		if meta.Limit != nil && *meta.Limit > 0 {
			ps.Limit = apiutil.ClampLimit(*meta.Limit)
		}
		if meta.Total != nil {
			ps.Total = *meta.Total
		}
	}

	ps.TotalPages = (ps.Total + ps.Limit - 1) / ps.Limit
	if meta != nil && meta.TotalPages != nil {
		ps.TotalPages = *meta.TotalPages
	}

	ps.HasNext = ps.Page < ps.TotalPages
	ps.HasPrev = ps.Page > 1
	if meta != nil {
		if meta.HasNext != nil {
			ps.HasNext = *meta.HasNext
		}
		if meta.HasPrev != nil {
			ps.HasPrev = *meta.HasPrev
		}
	}
	return ps
}

// deriveHasMore prefers the server's hasMore, then hasNext, then whether the
// page came back full.
func deriveHasMore(received, limit int, meta *apiutil.Meta) bool {
	if meta != nil {
		if meta.HasMore != nil {
			return *meta.HasMore
		}
		if meta.HasNext != nil {
			return *meta.HasNext
		}
	}
	return received == limit
}

func cloneItems[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}

func cloneExtra(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
