package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"wastetracker/internal/recognition"
)

type MockRecognizer struct {
	mock.Mock
}

func (m *MockRecognizer) Recognize(ctx context.Context, image []byte) (recognition.Result, error) {
	args := m.Called(ctx, image)
	return args.Get(0).(recognition.Result), args.Error(1)
}

func (m *MockRecognizer) Name() string {
	args := m.Called()
	return args.String(0)
}
