package data

import (
	"dareboard/internal/apiutil"
	"dareboard/internal/domain/dare"
)

// ListRequest represents a paginated list request
type ListRequest struct {
	Page       int             `json:"page,omitempty"`
	Limit      int             `json:"limit,omitempty"`
	Difficulty dare.Difficulty `json:"difficulty,omitempty"`
	Status     dare.Status     `json:"status,omitempty"`
	Creator    string          `json:"creator,omitempty"`
	Search     string          `json:"q,omitempty"`
	Sort       dare.SortKey    `json:"sort,omitempty"`
	DareID     string          `json:"dareId,omitempty"`
}

// Validate normalizes paging and drops filter values the domain does not
// recognise, so an unknown difficulty widens the list instead of failing it.
func (req *ListRequest) Validate() {
	if req.Limit <= 0 {
		req.Limit = apiutil.DefaultPageSize
	}
	p := apiutil.ClampPagination(req.Page, req.Limit)
	req.Page, req.Limit = p.Page, p.Limit

	if !req.Difficulty.Valid() {
		req.Difficulty = ""
	}
	if !req.Status.Valid() {
		req.Status = ""
	}
	if !req.Sort.Valid() {
		req.Sort = dare.SortNewest
	}
}

// Offset is the row offset of the requested page.
func (req ListRequest) Offset() int {
	return (req.Page - 1) * req.Limit
}

func (req ListRequest) filter() dare.Filter {
	return dare.Filter{
		Difficulty: req.Difficulty,
		Status:     req.Status,
		CreatorID:  req.Creator,
		Search:     req.Search,
	}
}

// Pagination is the block the list clients read back.
type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// ListResponse represents a paginated list response
type ListResponse[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

func newListResponse[T any](items []T, req ListRequest, total int) *ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	pages := 0
	if req.Limit > 0 {
		pages = (total + req.Limit - 1) / req.Limit
	}
	return &ListResponse[T]{
		Data: items,
		Pagination: Pagination{
			Page:       req.Page,
			Limit:      req.Limit,
			Total:      total,
			TotalPages: pages,
			HasNext:    req.Page < pages,
			HasPrev:    req.Page > 1,
		},
	}
}
