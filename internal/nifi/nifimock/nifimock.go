// Package nifimock has mocks for the nifi package.
package nifimock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/webcat/nifictl/internal/model"
)

// MockClient is a mock implementation of nifi.Client.
type MockClient struct {
	mock.Mock
}

func (m *MockClient) CreateProcessGroup(ctx context.Context, parentID, name string) (string, error) {
	args := m.Called(ctx, parentID, name)
	return args.String(0), args.Error(1)
}

func (m *MockClient) DeleteProcessGroup(ctx context.Context, groupID string) error {
	args := m.Called(ctx, groupID)
	return args.Error(0)
}

func (m *MockClient) CreateProcessor(ctx context.Context, groupID, processorType string, config map[string]string) (string, error) {
	args := m.Called(ctx, groupID, processorType, config)
	return args.String(0), args.Error(1)
}

func (m *MockClient) SetProcessorState(ctx context.Context, processorID string, state model.ProcessorState) error {
	args := m.Called(ctx, processorID, state)
	return args.Error(0)
}

func (m *MockClient) DeleteProcessor(ctx context.Context, processorID string) error {
	args := m.Called(ctx, processorID)
	return args.Error(0)
}

func (m *MockClient) StartFlow(ctx context.Context, flowID string) error {
	args := m.Called(ctx, flowID)
	return args.Error(0)
}

func (m *MockClient) StopFlow(ctx context.Context, flowID string) error {
	args := m.Called(ctx, flowID)
	return args.Error(0)
}

func (m *MockClient) DeleteFlow(ctx context.Context, flowID string) error {
	args := m.Called(ctx, flowID)
	return args.Error(0)
}
