package dare

import (
	"sort"
	"strings"
)

// SortKey selects a list ordering.
type SortKey string

const (
	SortNewest     SortKey = "newest"
	SortOldest     SortKey = "oldest"
	SortDifficulty SortKey = "difficulty"
	SortTitle      SortKey = "title"
)

func (k SortKey) Valid() bool {
	switch k {
	case SortNewest, SortOldest, SortDifficulty, SortTitle:
		return true
	}
	return false
}

// Filter narrows a dare list. Zero fields match everything.
type Filter struct {
	Difficulty Difficulty
	Status     Status
	CreatorID  string
	Search     string
}

// Match reports whether d passes every set field.
func (f Filter) Match(d Dare) bool {
	if f.Difficulty != "" && d.Difficulty != f.Difficulty {
		return false
	}
	if f.Status != "" && d.Status != f.Status {
		return false
	}
	if f.CreatorID != "" && d.CreatorID != f.CreatorID {
		return false
	}
	if q := strings.TrimSpace(strings.ToLower(f.Search)); q != "" {
		if !strings.Contains(strings.ToLower(d.Title), q) &&
			!strings.Contains(strings.ToLower(d.Description), q) {
			return false
		}
	}
	return true
}

// FilterDares returns the dares that match f, keeping order.
func FilterDares(in []Dare, f Filter) []Dare {
	out := make([]Dare, 0, len(in))
	for _, d := range in {
		if f.Match(d) {
			out = append(out, d)
		}
	}
	return out
}

// SortDares orders dares in place. Ties fall back to newest first, then ID.
func SortDares(ds []Dare, key SortKey) {
	sort.SliceStable(ds, func(i, j int) bool {
		a, b := ds[i], ds[j]
		switch key {
		case SortOldest:
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.Before(b.CreatedAt)
			}
		case SortDifficulty:
			if a.Difficulty.Rank() != b.Difficulty.Rank() {
				return a.Difficulty.Rank() < b.Difficulty.Rank()
			}
		case SortTitle:
			at, bt := strings.ToLower(a.Title), strings.ToLower(b.Title)
			if at != bt {
				return at < bt
			}
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}
