package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"wastetracker/internal/service"
)

type MockFoodImageService struct {
	mock.Mock
}

func (m *MockFoodImageService) Analyze(ctx context.Context, f service.FileInput) (*service.Analysis, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Analysis), args.Error(1)
}

func (m *MockFoodImageService) List(ctx context.Context, limit, offset int) (*service.ImageListResult, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ImageListResult), args.Error(1)
}

func (m *MockFoodImageService) Get(ctx context.Context, id string) (*service.ImageView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ImageView), args.Error(1)
}
