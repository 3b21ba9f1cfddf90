package nifi

import (
	"context"

	"github.com/webcat/nifictl/internal/model"
)

// Client is the interface for engine resource lifecycle management.
//
// All operations block until the HTTP round trip against the engine completes
// and the response has been validated. Implementations hold no resource state
// between calls, the engine is always authoritative.
type Client interface {
	// CreateProcessGroup creates a process group under the received parent and
	// returns the id assigned by the engine.
	CreateProcessGroup(ctx context.Context, parentID, name string) (string, error)
	// DeleteProcessGroup reads the group's current revision and deletes it
	// asserting that revision. A concurrent mutation between the read and the
	// delete surfaces as model.ErrVersionConflict, callers must re-issue the
	// whole operation.
	DeleteProcessGroup(ctx context.Context, groupID string) error
	// CreateProcessor creates a processor inside a process group and returns
	// the id assigned by the engine.
	CreateProcessor(ctx context.Context, groupID, processorType string, config map[string]string) (string, error)
	// SetProcessorState transitions a processor between RUNNING and STOPPED.
	SetProcessorState(ctx context.Context, processorID string, state model.ProcessorState) error
	// DeleteProcessor deletes a processor.
	DeleteProcessor(ctx context.Context, processorID string) error

	// StartFlow starts a flow. The flow id is the id of the flow's single
	// processor.
	StartFlow(ctx context.Context, flowID string) error
	// StopFlow stops a flow. The flow id is the id of the flow's single
	// processor.
	StopFlow(ctx context.Context, flowID string) error
	// DeleteFlow deletes a flow. The flow id is the id of the flow's process
	// group.
	DeleteFlow(ctx context.Context, flowID string) error
}
