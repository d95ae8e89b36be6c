package output

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"dareboard/internal/domain/dare"
	"dareboard/internal/pagination"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFormatter(f Format) (*Formatter, *bytes.Buffer, *bytes.Buffer) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	fm := NewFormatter(f, false)
	fm.Writer, fm.ErrWriter = out, errOut
	return fm, out, errOut
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatTable, "TABLE": FormatTable, "json": FormatJSON, "yml": FormatYAML} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

var sample = []dare.Dare{{
	ID:         "d1",
	Title:      "Sing in public",
	Difficulty: dare.DifficultyEdge,
	Status:     dare.Status("pending"),
	CreatorID:  "u1",
	CreatedAt:  time.Date(2025, 3, 4, 10, 0, 0, 0, time.UTC),
}}

func TestPrint_Table(t *testing.T) {
	fm, out, _ := newTestFormatter(FormatTable)
	require.NoError(t, fm.Print(sample, DareTable(sample)))

	s := out.String()
	assert.Contains(t, s, "ID")
	assert.Contains(t, s, "Sing in public")
	assert.Contains(t, s, "Edge")
	assert.Contains(t, s, "2025-03-04")
}

func TestPrint_NoHeaders(t *testing.T) {
	fm, out, _ := newTestFormatter(FormatTable)
	fm.NoHeaders = true
	require.NoError(t, fm.Print(sample, DareTable(sample)))
	assert.NotContains(t, out.String(), "DIFFICULTY")
}

func TestPrint_JSON(t *testing.T) {
	fm, out, _ := newTestFormatter(FormatJSON)
	require.NoError(t, fm.Print(sample, DareTable(sample)))
	assert.Contains(t, out.String(), `"creatorId": "u1"`)
}

func TestPrint_YAMLUsesJSONNames(t *testing.T) {
	fm, out, _ := newTestFormatter(FormatYAML)
	require.NoError(t, fm.Print(sample, DareTable(sample)))
	assert.Contains(t, out.String(), "creatorId: u1")
	assert.Contains(t, out.String(), "difficulty: edge")
}

func TestNoteGoesToErrWriter(t *testing.T) {
	fm, out, errOut := newTestFormatter(FormatJSON)
	fm.Note("page %d", 2)
	assert.Empty(t, out.String())
	assert.Equal(t, "page 2\n", errOut.String())
}

func TestPageSummary(t *testing.T) {
	assert.Equal(t, "no results", PageSummary(pagination.PaginationState{Page: 1, Limit: 20}))
	assert.Equal(t, "page 2 of 3 (45 total, 20 per page)",
		PageSummary(pagination.PaginationState{Page: 2, Limit: 20, Total: 45, TotalPages: 3}))
}

func TestActTable(t *testing.T) {
	g := 4
	tbl := ActTable([]dare.Act{{ID: "a1", DareID: "d1", Grade: &g}, {ID: "a2"}})
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, "4", tbl.Rows[0][4])
	assert.Equal(t, "-", tbl.Rows[1][4])
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.True(t, strings.HasSuffix(truncate(strings.Repeat("x", 60), 48), "…"))
	assert.Len(t, []rune(truncate(strings.Repeat("x", 60), 48)), 48)
}
