package apiutil

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/spf13/cast"
)

// Platform paging limits
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MinPageSize     = 5
	MaxPageSize     = 100
)

// PageInput carries untrusted page/limit values (query strings, flags, JSON).
type PageInput struct {
	Page  any
	Limit any
}

// PaginationParams is a clamped page request: Page >= 1, Limit in
// [MinPageSize, MaxPageSize].
type PaginationParams struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Input converts p back into a PageInput, so validated params can be fed
// through ValidatePaginationParams again.
func (p PaginationParams) Input() PageInput {
	return PageInput{Page: p.Page, Limit: p.Limit}
}

// Offset returns the row offset of the first item on the page.
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// ValidatePaginationParams parses both fields leniently, falling back to the
// defaults when a value is missing or unparsable, then clamps them.
func ValidatePaginationParams(in PageInput) PaginationParams {
	page := parseIntOr(in.Page, DefaultPage)
	limit := parseIntOr(in.Limit, DefaultPageSize)
	return ClampPagination(page, limit)
}

// ClampPagination clamps already-typed values.
func ClampPagination(page, limit int) PaginationParams {
	if page < 1 {
		page = 1
	}
	return PaginationParams{Page: page, Limit: ClampLimit(limit)}
}

// ClampLimit constrains limit to [MinPageSize, MaxPageSize].
func ClampLimit(limit int) int {
	if limit < MinPageSize {
		return MinPageSize
	}
	if limit > MaxPageSize {
		return MaxPageSize
	}
	return limit
}

// parseIntOr reads a leading integer out of v. Strings follow the usual lenient
// parse ("12abc" -> 12, " 7" -> 7, "abc" -> def); floats are truncated; NaN,
// infinities and unknown types yield def.
func parseIntOr(v any, def int) int {
	switch t := v.(type) {
	case nil:
		return def
	case string:
		return leadingInt(t, def)
	case json.Number:
		return leadingInt(t.String(), def)
	case float64:
		return truncFloat(t, def)
	case float32:
		return truncFloat(float64(t), def)
	case bool:
		return def
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return def
	}
	return n
}

func truncFloat(f float64, def int) int {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	if f > math.MaxInt32 {
		return math.MaxInt32
	}
	if f < math.MinInt32 {
		return math.MinInt32
	}
	return int(f)
}

func leadingInt(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	neg := false
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}
	n, digits := 0, 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		if n < math.MaxInt32/10 {
			n = n*10 + int(r-'0')
		} else {
			n = math.MaxInt32
		}
		digits++
	}
	if digits == 0 {
		return def
	}
	if neg {
		return -n
	}
	return n
}
