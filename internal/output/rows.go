package output

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"dareboard/internal/domain/dare"
	"dareboard/internal/pagination"
)

func DareTable(ds []dare.Dare) TableData {
	t := TableData{Headers: []string{"ID", "Title", "Difficulty", "Status", "Creator", "Created"}}
	for _, d := range ds {
		t.Rows = append(t.Rows, []string{
			d.ID,
			truncate(d.Title, 48),
			d.Difficulty.Label(),
			d.Status.Label(),
			labelOr(d.CreatorName, d.CreatorID),
			date(d.CreatedAt),
		})
	}
	return t
}

func ActTable(as []dare.Act) TableData {
	t := TableData{Headers: []string{"ID", "Dare", "Performer", "Status", "Grade", "Submitted"}}
	for _, a := range as {
		grade := "-"
		if a.Grade != nil {
			grade = strconv.Itoa(*a.Grade)
		}
		t.Rows = append(t.Rows, []string{a.ID, a.DareID, a.PerformerID, a.Status.Label(), grade, date(a.SubmittedAt)})
	}
	return t
}

// DareDetail renders one dare as field/value rows.
func DareDetail(d dare.Dare) TableData {
	return TableData{
		Headers: []string{"Field", "Value"},
		Rows: [][]string{
			{"ID", d.ID},
			{"Title", d.Title},
			{"Description", d.Description},
			{"Difficulty", d.Difficulty.Label()},
			{"Status", d.Status.Label()},
			{"Privacy", d.Privacy.Label()},
			{"Creator", labelOr(d.CreatorName, d.CreatorID)},
			{"Tags", strings.Join(d.Tags, ", ")},
			{"Created", date(d.CreatedAt)},
		},
	}
}

// PageSummary is the one-line footer printed under a page.
func PageSummary(p pagination.PaginationState) string {
	if p.TotalPages == 0 {
		return "no results"
	}
	return fmt.Sprintf("page %d of %d (%d total, %d per page)", p.Page, p.TotalPages, p.Total, p.Limit)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func labelOr(label, fallback string) string {
	if label != "" {
		return label
	}
	return fallback
}

func date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
