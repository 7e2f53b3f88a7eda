package postgres

import (
	"context"
	"database/sql"

	"wastetracker/internal/model"
	"wastetracker/internal/repository"
)

const imageColumns = `id, filename, storage_path, size, content_type, food_name, category, expiry_days, created_at`

// FoodImagePostgres is a PostgreSQL implementation of repository.FoodImageRepository.
type FoodImagePostgres struct {
	db *sql.DB
}

// NewFoodImagePostgres creates a new FoodImagePostgres repository.
func NewFoodImagePostgres(db *sql.DB) *FoodImagePostgres {
	return &FoodImagePostgres{db: db}
}

var _ repository.FoodImageRepository = (*FoodImagePostgres)(nil)

func scanImage(row rowScanner) (model.FoodImage, error) {
	var img model.FoodImage
	err := row.Scan(
		&img.ID,
		&img.Filename,
		&img.StoragePath,
		&img.Size,
		&img.ContentType,
		&img.FoodName,
		&img.Category,
		&img.ExpiryDays,
		&img.CreatedAt,
	)
	return img, err
}

// Create inserts a new image row and returns the stored record.
func (r *FoodImagePostgres) Create(ctx context.Context, img *model.FoodImage) (*model.FoodImage, error) {
	const q = `
		INSERT INTO food_images (` + imageColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + imageColumns
	out, err := scanImage(r.db.QueryRowContext(ctx, q,
		img.ID,
		img.Filename,
		img.StoragePath,
		img.Size,
		img.ContentType,
		img.FoodName,
		img.Category,
		img.ExpiryDays,
		img.CreatedAt,
	))
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByID fetches a single image record by its ID.
func (r *FoodImagePostgres) FindByID(ctx context.Context, id string) (*model.FoodImage, error) {
	const q = `SELECT ` + imageColumns + ` FROM food_images WHERE id = $1`
	img, err := scanImage(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		return nil, err
	}
	return &img, nil
}

// List returns image records newest first with a total count.
func (r *FoodImagePostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.FoodImage], error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM food_images`).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + imageColumns + `
		FROM food_images
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.FoodImage, 0)
	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, img)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.FoodImage]{
		Items: items,
		Total: total,
	}, nil
}
