package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"wastetracker/internal/model"
	"wastetracker/internal/repository"
)

type MockWasteEntryRepository struct {
	mock.Mock
}

func (m *MockWasteEntryRepository) Create(ctx context.Context, e *model.WasteEntry) (*model.WasteEntry, error) {
	args := m.Called(ctx, e)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WasteEntry), args.Error(1)
}

func (m *MockWasteEntryRepository) FindByID(ctx context.Context, id string) (*model.WasteEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WasteEntry), args.Error(1)
}

func (m *MockWasteEntryRepository) List(ctx context.Context, q repository.EntryQuery) (*repository.PageResult[model.WasteEntry], error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.WasteEntry]), args.Error(1)
}

func (m *MockWasteEntryRepository) ListByDateRange(ctx context.Context, r repository.DateRange) ([]model.WasteEntry, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.WasteEntry), args.Error(1)
}

func (m *MockWasteEntryRepository) Recent(ctx context.Context, n int) ([]model.WasteEntry, error) {
	args := m.Called(ctx, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.WasteEntry), args.Error(1)
}

func (m *MockWasteEntryRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
