package postgres

import (
	"fmt"
	"strings"

	"dareboard/internal/domain/dare"
)

const dareColumns = `id, title, COALESCE(description, ''), difficulty, status, COALESCE(privacy, ''),
		creator_id, COALESCE(creator_name, ''), COALESCE(tags, '{}'), created_at, updated_at`

const actColumns = `id, dare_id, performer_id, status, grade, COALESCE(evidence_url, ''), submitted_at`

// dareQuery holds the list and count statements for one filter. Both share
// args; the list statement appends limit and offset.
type dareQuery struct {
	list  string
	count string
	args  []any
}

func buildDareQuery(f dare.Filter, sort dare.SortKey) dareQuery {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.Difficulty != "" {
		add("difficulty = $%d", string(f.Difficulty))
	}
	if f.Status != "" {
		add("status = $%d", string(f.Status))
	}
	if f.CreatorID != "" {
		add("creator_id = $%d", f.CreatorID)
	}
	if q := strings.TrimSpace(f.Search); q != "" {
		add("(title ILIKE $%[1]d OR description ILIKE $%[1]d)", "%"+escapeLike(q)+"%")
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	list := fmt.Sprintf("SELECT %s FROM dares%s ORDER BY %s LIMIT $%d OFFSET $%d",
		dareColumns, where, orderBy(sort), len(args)+1, len(args)+2)

	return dareQuery{
		list:  list,
		count: "SELECT count(*) FROM dares" + where,
		args:  args,
	}
}

// listArgs returns the shared args followed by limit and offset.
func (q dareQuery) listArgs(limit, offset int) []any {
	out := make([]any, 0, len(q.args)+2)
	out = append(out, q.args...)
	return append(out, limit, offset)
}

// orderBy mirrors dare.SortDares: ties break newest first, then by id.
func orderBy(key dare.SortKey) string {
	const tail = "created_at DESC, id ASC"
	switch key {
	case dare.SortOldest:
		return "created_at ASC, id ASC"
	case dare.SortDifficulty:
		return difficultyRank() + " ASC, " + tail
	case dare.SortTitle:
		return "lower(title) ASC, " + tail
	}
	return tail
}

func difficultyRank() string {
	var b strings.Builder
	b.WriteString("CASE difficulty")
	for _, d := range dare.Difficulties {
		fmt.Fprintf(&b, " WHEN '%s' THEN %d", d, d.Rank())
	}
	b.WriteString(" ELSE 0 END")
	return b.String()
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
