package session

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockStore is a mock implementation of Store using testify/mock.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Get(ctx context.Context, id string) (Session, bool, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(Session), args.Bool(1), args.Error(2)
}

func (m *MockStore) Put(ctx context.Context, id string, sess Session) error {
	args := m.Called(ctx, id, sess)
	return args.Error(0)
}

func (m *MockStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
