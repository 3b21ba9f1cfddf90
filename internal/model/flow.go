package model

import (
	"fmt"
	"time"
)

// ProcessorState represents the run state of a processor in the engine.
type ProcessorState string

const (
	// ProcessorStateCreated indicates the processor exists but was never started.
	ProcessorStateCreated ProcessorState = "CREATED"
	// ProcessorStateRunning indicates the processor is running.
	ProcessorStateRunning ProcessorState = "RUNNING"
	// ProcessorStateStopped indicates the processor is stopped.
	ProcessorStateStopped ProcessorState = "STOPPED"
)

// ProcessGroup represents a process group (container) resource in the engine.
// The engine is authoritative for all of its fields, they are never cached
// between calls.
type ProcessGroup struct {
	ID       string
	ParentID string
	Name     string
	Revision int64
}

// Processor represents a single configurable unit of work inside a process group.
type Processor struct {
	ID       string
	GroupID  string
	Type     string
	Config   map[string]string
	State    ProcessorState
	Revision int64
}

// FlowDefinition is the static definition used to create a flow.
//
// A flow is deliberately modeled as exactly one processor inside one process
// group, there is no independent flow entity in the engine.
type FlowDefinition struct {
	Name          string
	ParentGroupID string
	Processor     FlowProcessorDefinition
}

// FlowProcessorDefinition defines the single processor of a flow.
type FlowProcessorDefinition struct {
	Type   string
	Config map[string]string
}

// Validate validates the flow definition.
func (f *FlowDefinition) Validate() error {
	if f.Name == "" {
		return fmt.Errorf("name is required: %w", ErrNotValid)
	}

	if f.ParentGroupID == "" {
		return fmt.Errorf("parent group id is required: %w", ErrNotValid)
	}

	if f.Processor.Type == "" {
		return fmt.Errorf("processor type is required: %w", ErrNotValid)
	}

	return nil
}

// RunAction represents the lifecycle action recorded for a flow.
type RunAction string

const (
	// RunActionCreate indicates the flow resources were created.
	RunActionCreate RunAction = "create"
	// RunActionRun indicates a flow start attempt.
	RunActionRun RunAction = "run"
	// RunActionStop indicates a flow stop attempt.
	RunActionStop RunAction = "stop"
	// RunActionRemove indicates a flow removal attempt.
	RunActionRemove RunAction = "remove"
)

// RunStatus represents the outcome of a recorded flow action.
type RunStatus string

const (
	// RunStatusSuccess indicates the action succeeded.
	RunStatusSuccess RunStatus = "success"
	// RunStatusFailed indicates the action failed.
	RunStatusFailed RunStatus = "failed"
)

// FlowRun is an audit record of a single flow lifecycle attempt.
// The engine remains authoritative for resource state, runs are history only.
type FlowRun struct {
	ID        string
	FlowID    string
	Action    RunAction
	Status    RunStatus
	Error     string
	CreatedAt time.Time
}
