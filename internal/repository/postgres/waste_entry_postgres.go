package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"wastetracker/internal/model"
	"wastetracker/internal/repository"
)

const entryColumns = `id, food_item, category, quantity, unit, quantity_kg, waste_date, reason, notes, created_at`

// WasteEntryPostgres is a PostgreSQL implementation of repository.WasteEntryRepository.
type WasteEntryPostgres struct {
	db *sql.DB
}

// NewWasteEntryPostgres creates a new WasteEntryPostgres repository.
func NewWasteEntryPostgres(db *sql.DB) *WasteEntryPostgres {
	return &WasteEntryPostgres{db: db}
}

var _ repository.WasteEntryRepository = (*WasteEntryPostgres)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (model.WasteEntry, error) {
	var (
		e   model.WasteEntry
		day time.Time
	)
	err := row.Scan(
		&e.ID,
		&e.FoodItem,
		&e.Category,
		&e.Quantity,
		&e.Unit,
		&e.QuantityKg,
		&day,
		&e.Reason,
		&e.Notes,
		&e.CreatedAt,
	)
	if err != nil {
		return model.WasteEntry{}, err
	}
	e.Date = model.NewDay(day)
	return e, nil
}

func scanEntries(rows *sql.Rows) ([]model.WasteEntry, error) {
	defer rows.Close()
	items := make([]model.WasteEntry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Create inserts a new entry row and returns the stored record.
func (r *WasteEntryPostgres) Create(ctx context.Context, e *model.WasteEntry) (*model.WasteEntry, error) {
	const q = `
		INSERT INTO waste_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + entryColumns
	row := r.db.QueryRowContext(ctx, q,
		e.ID,
		e.FoodItem,
		e.Category,
		e.Quantity,
		e.Unit,
		e.QuantityKg,
		e.Date.Time,
		e.Reason,
		e.Notes,
		e.CreatedAt,
	)
	out, err := scanEntry(row)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByID fetches a single entry by its ID.
func (r *WasteEntryPostgres) FindByID(ctx context.Context, id string) (*model.WasteEntry, error) {
	const q = `SELECT ` + entryColumns + ` FROM waste_entries WHERE id = $1`
	e, err := scanEntry(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// List returns entries ordered by q.SortBy using LIMIT/OFFSET pagination and a total count.
func (r *WasteEntryPostgres) List(ctx context.Context, q repository.EntryQuery) (*repository.PageResult[model.WasteEntry], error) {
	col, ok := repository.EntrySortColumns[q.SortBy]
	if !ok {
		return nil, fmt.Errorf("unsupported sort key %q", q.SortBy)
	}
	dir := "DESC"
	if q.Ascending {
		dir = "ASC"
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM waste_entries`).Scan(&total); err != nil {
		return nil, err
	}

	// col and dir come from fixed sets above, never from raw input.
	qList := `SELECT ` + entryColumns + ` FROM waste_entries ORDER BY ` + col + ` ` + dir + `, id ` + dir + ` LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, qList, q.Limit, q.Offset)
	if err != nil {
		return nil, err
	}
	items, err := scanEntries(rows)
	if err != nil {
		return nil, err
	}

	return &repository.PageResult[model.WasteEntry]{
		Items: items,
		Total: total,
	}, nil
}

// ListByDateRange returns entries whose waste_date lies in [From, To).
func (r *WasteEntryPostgres) ListByDateRange(ctx context.Context, dr repository.DateRange) ([]model.WasteEntry, error) {
	const q = `
		SELECT ` + entryColumns + `
		FROM waste_entries
		WHERE ($1::date IS NULL OR waste_date >= $1::date)
		  AND ($2::date IS NULL OR waste_date < $2::date)
		ORDER BY waste_date ASC, created_at ASC
	`
	rows, err := r.db.QueryContext(ctx, q, nullTime(dr.From), nullTime(dr.To))
	if err != nil {
		return nil, err
	}
	return scanEntries(rows)
}

// Recent returns the n most recent entries by waste date.
func (r *WasteEntryPostgres) Recent(ctx context.Context, n int) ([]model.WasteEntry, error) {
	const q = `
		SELECT ` + entryColumns + `
		FROM waste_entries
		ORDER BY waste_date DESC, created_at DESC
		LIMIT $1
	`
	rows, err := r.db.QueryContext(ctx, q, n)
	if err != nil {
		return nil, err
	}
	return scanEntries(rows)
}

// Delete removes an entry by ID.
func (r *WasteEntryPostgres) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM waste_entries WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
