package repository

import (
	"context"

	"wastetracker/internal/model"
)

// FoodImageRepository stores metadata of uploaded food photos.
type FoodImageRepository interface {
	Create(ctx context.Context, img *model.FoodImage) (*model.FoodImage, error)
	FindByID(ctx context.Context, id string) (*model.FoodImage, error)
	List(ctx context.Context, pq PageQuery) (*PageResult[model.FoodImage], error)
}
