package storage

import (
	"context"

	"github.com/webcat/nifictl/internal/model"
)

// RunRepository is the interface for flow run history persistence.
type RunRepository interface {
	// CreateRun stores a flow run record.
	CreateRun(ctx context.Context, run model.FlowRun) error
	// ListRuns returns flow run records, newest first. An empty flowID
	// returns the runs of all flows.
	ListRuns(ctx context.Context, flowID string) ([]model.FlowRun, error)
}
