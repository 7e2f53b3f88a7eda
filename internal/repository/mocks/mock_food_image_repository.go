package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"wastetracker/internal/model"
	"wastetracker/internal/repository"
)

type MockFoodImageRepository struct {
	mock.Mock
}

func (m *MockFoodImageRepository) Create(ctx context.Context, img *model.FoodImage) (*model.FoodImage, error) {
	args := m.Called(ctx, img)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	if f, ok := args.Get(0).(func(context.Context, *model.FoodImage) *model.FoodImage); ok {
		return f(ctx, img), args.Error(1)
	}
	return args.Get(0).(*model.FoodImage), args.Error(1)
}

func (m *MockFoodImageRepository) FindByID(ctx context.Context, id string) (*model.FoodImage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FoodImage), args.Error(1)
}

func (m *MockFoodImageRepository) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.FoodImage], error) {
	args := m.Called(ctx, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.FoodImage]), args.Error(1)
}
