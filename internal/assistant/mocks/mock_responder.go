package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"wastetracker/internal/assistant"
)

type MockResponder struct {
	mock.Mock
}

func (m *MockResponder) Reply(ctx context.Context, message string) (assistant.Reply, error) {
	args := m.Called(ctx, message)
	return args.Get(0).(assistant.Reply), args.Error(1)
}
