package repository

import (
	"context"
	"time"

	"wastetracker/internal/model"
)

// EntrySortColumns maps the public sort keys of waste entries to their columns.
// Keys outside this map must never reach a query.
var EntrySortColumns = map[string]string{
	"date":        "waste_date",
	"food_item":   "food_item",
	"category":    "category",
	"quantity":    "quantity",
	"unit":        "unit",
	"quantity_kg": "quantity_kg",
	"reason":      "reason",
	"created_at":  "created_at",
}

// EntryQuery is a page of waste entries in a given order.
type EntryQuery struct {
	PageQuery
	// SortBy is a key of EntrySortColumns.
	SortBy    string
	Ascending bool
}

// DateRange selects entries with From <= date < To. A nil bound is open.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// WasteEntryRepository defines data access for waste entries.
// No business logic here, only persistence.
type WasteEntryRepository interface {
	// Create inserts a new entry and returns the stored row.
	Create(ctx context.Context, e *model.WasteEntry) (*model.WasteEntry, error)

	// FindByID returns an entry by ID or sql.ErrNoRows.
	FindByID(ctx context.Context, id string) (*model.WasteEntry, error)

	// List returns one page of entries plus the total number of rows.
	List(ctx context.Context, q EntryQuery) (*PageResult[model.WasteEntry], error)

	// ListByDateRange returns every entry whose date falls inside r, oldest first.
	ListByDateRange(ctx context.Context, r DateRange) ([]model.WasteEntry, error)

	// Recent returns the n most recent entries by date.
	Recent(ctx context.Context, n int) ([]model.WasteEntry, error)

	// Delete removes an entry by ID. It returns sql.ErrNoRows when nothing was deleted.
	Delete(ctx context.Context, id string) error
}
