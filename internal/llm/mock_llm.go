package llm

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockClient is a mock implementation of Client using testify/mock.
type MockClient struct {
	mock.Mock
}

func (m *MockClient) Answer(ctx context.Context, documentText, question string) (string, error) {
	args := m.Called(ctx, documentText, question)
	return args.String(0), args.Error(1)
}

func (m *MockClient) Service() string {
	args := m.Called()
	return args.String(0)
}
