package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"wastetracker/internal/model"
	"wastetracker/internal/service"
	"wastetracker/internal/stats"
)

type MockWasteService struct {
	mock.Mock
}

func (m *MockWasteService) Add(ctx context.Context, in service.AddEntryInput) (*service.AddEntryResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AddEntryResult), args.Error(1)
}

func (m *MockWasteService) List(ctx context.Context, p service.ListEntriesParams) (*service.EntryListResult, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.EntryListResult), args.Error(1)
}

func (m *MockWasteService) Get(ctx context.Context, id string) (*model.WasteEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WasteEntry), args.Error(1)
}

func (m *MockWasteService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockWasteService) Stats(ctx context.Context, period string) (*stats.Summary, error) {
	args := m.Called(ctx, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stats.Summary), args.Error(1)
}

func (m *MockWasteService) Chart(ctx context.Context, kind, period string) (*stats.Chart, error) {
	args := m.Called(ctx, kind, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stats.Chart), args.Error(1)
}
