package mocks

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"wastetracker/internal/storage"
)

// MockStorage is a testify mock that also keeps the bytes of every Put, so
// tests can check what actually reached the bucket.
type MockStorage struct {
	mock.Mock

	mu      sync.Mutex
	objects map[string][]byte
}

// Put drains r before matching and keeps the bytes when the call succeeds.
// Return(nil, err) answers with an ObjectInfo echoing the key, the bytes read
// and the content type.
func (m *MockStorage) Put(ctx context.Context, key string, r io.Reader, opt storage.PutObjectOptions) (storage.ObjectInfo, error) {
	data, readErr := io.ReadAll(r)
	if readErr != nil {
		return storage.ObjectInfo{}, readErr
	}

	args := m.Called(ctx, key, r, opt)
	if err := args.Error(1); err != nil {
		return storage.ObjectInfo{}, err
	}

	m.mu.Lock()
	if m.objects == nil {
		m.objects = make(map[string][]byte)
	}
	m.objects[key] = data
	m.mu.Unlock()

	if args.Get(0) == nil {
		return storage.ObjectInfo{Key: key, Size: int64(len(data)), ContentType: opt.ContentType}, nil
	}
	return args.Get(0).(storage.ObjectInfo), nil
}

func (m *MockStorage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	if args.Error(0) == nil {
		m.mu.Lock()
		delete(m.objects, key)
		m.mu.Unlock()
	}
	return args.Error(0)
}

func (m *MockStorage) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, key, expiry)
	return args.String(0), args.Error(1)
}

// Object returns what Put stored under key and was not deleted since.
func (m *MockStorage) Object(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[key]
	return data, ok
}

// Len is the number of objects currently stored.
func (m *MockStorage) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}
