package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"wastetracker/internal/model"
	"wastetracker/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var imageCols = []string{"id", "filename", "storage_path", "size", "content_type", "food_name", "category", "expiry_days", "created_at"}

func TestFoodImagePostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewFoodImagePostgres(db)
	img := &model.FoodImage{
		ID:          "img-1",
		Filename:    "img-1.jpg",
		StoragePath: "images/img-1.jpg",
		Size:        2048,
		ContentType: "image/jpeg",
		FoodName:    "Banana",
		Category:    "Fruit",
		ExpiryDays:  3,
		CreatedAt:   time.Now().UTC(),
	}

	mock.ExpectQuery("INSERT INTO food_images").
		WithArgs(img.ID, img.Filename, img.StoragePath, img.Size, img.ContentType, img.FoodName, img.Category, img.ExpiryDays, img.CreatedAt).
		WillReturnRows(sqlmock.NewRows(imageCols).
			AddRow(img.ID, img.Filename, img.StoragePath, img.Size, img.ContentType, img.FoodName, img.Category, img.ExpiryDays, img.CreatedAt))

	got, err := repo.Create(context.Background(), img)

	require.NoError(t, err)
	assert.Equal(t, "Banana", got.FoodName)
	assert.Equal(t, 3, got.ExpiryDays)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFoodImagePostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewFoodImagePostgres(db)

	mock.ExpectQuery("SELECT (.+) FROM food_images WHERE id = ?").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	got, err := repo.FindByID(context.Background(), "missing")

	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.Nil(t, got)
}

func TestFoodImagePostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewFoodImagePostgres(db)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM food_images").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT (.+) FROM food_images ORDER BY").
		WithArgs(10, 0).
		WillReturnRows(sqlmock.NewRows(imageCols).
			AddRow("img-1", "img-1.png", "images/img-1.png", 10, "image/png", "Apple", "Fruit", 3, time.Now()))

	res, err := repo.List(context.Background(), repository.PageQuery{Limit: 10, Offset: 0})

	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	assert.Len(t, res.Items, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}
