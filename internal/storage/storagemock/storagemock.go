// Package storagemock has mocks for the storage package.
package storagemock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/webcat/nifictl/internal/model"
)

// MockRunRepository is a mock implementation of storage.RunRepository.
type MockRunRepository struct {
	mock.Mock
}

func (m *MockRunRepository) CreateRun(ctx context.Context, run model.FlowRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *MockRunRepository) ListRuns(ctx context.Context, flowID string) ([]model.FlowRun, error) {
	args := m.Called(ctx, flowID)
	runs, _ := args.Get(0).([]model.FlowRun)
	return runs, args.Error(1)
}
