package postgres

import (
	"context"
	"errors"
	"fmt"

	"dareboard/internal/domain/dare"

	"github.com/jackc/pgx/v5"
)

// ErrNotFound is returned by Get when no row matches.
var ErrNotFound = errors.New("not found")

// DareRepository reads dares and acts for the feed server.
type DareRepository struct {
	db Querier
}

// NewDareRepository creates a new dare repository
func NewDareRepository(db Querier) *DareRepository {
	return &DareRepository{db: db}
}

// List returns one page of dares matching f plus the total match count.
func (r *DareRepository) List(ctx context.Context, f dare.Filter, sort dare.SortKey, limit, offset int) ([]dare.Dare, int, error) {
	q := buildDareQuery(f, sort)

	var total int
	if err := r.db.QueryRow(ctx, q.count, q.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count dares: %w", err)
	}
	if total == 0 || offset >= total {
		return []dare.Dare{}, total, nil
	}

	rows, err := r.db.Query(ctx, q.list, q.listArgs(limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list dares: %w", err)
	}
	defer rows.Close()

	dares := make([]dare.Dare, 0, limit)
	for rows.Next() {
		d, err := scanDare(rows)
		if err != nil {
			return nil, 0, err
		}
		dares = append(dares, d)
	}
	return dares, total, rows.Err()
}

// Get finds a dare by ID
func (r *DareRepository) Get(ctx context.Context, id string) (*dare.Dare, error) {
	row := r.db.QueryRow(ctx, `SELECT `+dareColumns+` FROM dares WHERE id = $1`, id)
	d, err := scanDare(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ListActs returns one page of acts, optionally for a single dare, newest
// submission first.
func (r *DareRepository) ListActs(ctx context.Context, dareID string, limit, offset int) ([]dare.Act, int, error) {
	where, args := "", []any{}
	if dareID != "" {
		where = " WHERE dare_id = $1"
		args = append(args, dareID)
	}

	var total int
	if err := r.db.QueryRow(ctx, "SELECT count(*) FROM acts"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count acts: %w", err)
	}
	if total == 0 || offset >= total {
		return []dare.Act{}, total, nil
	}

	sql := fmt.Sprintf("SELECT %s FROM acts%s ORDER BY submitted_at DESC, id ASC LIMIT $%d OFFSET $%d",
		actColumns, where, len(args)+1, len(args)+2)
	rows, err := r.db.Query(ctx, sql, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list acts: %w", err)
	}
	defer rows.Close()

	acts := make([]dare.Act, 0, limit)
	for rows.Next() {
		var a dare.Act
		if err := rows.Scan(&a.ID, &a.DareID, &a.PerformerID, &a.Status, &a.Grade, &a.EvidenceURL, &a.SubmittedAt); err != nil {
			return nil, 0, err
		}
		acts = append(acts, a)
	}
	return acts, total, rows.Err()
}

// scanDare scans a single row into a dare
func scanDare(row pgx.Row) (dare.Dare, error) {
	var d dare.Dare
	err := row.Scan(
		&d.ID, &d.Title, &d.Description, &d.Difficulty, &d.Status, &d.Privacy,
		&d.CreatorID, &d.CreatorName, &d.Tags, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}
