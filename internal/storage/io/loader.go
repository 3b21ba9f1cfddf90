package io

import (
	"context"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"

	"github.com/webcat/nifictl/internal/model"
)

// FlowYAMLRepository loads flow definitions from YAML files.
type FlowYAMLRepository struct {
	fs fs.FS
}

// NewFlowYAMLRepository creates a new YAML flow definition repository.
func NewFlowYAMLRepository(filesystem fs.FS) *FlowYAMLRepository {
	return &FlowYAMLRepository{fs: filesystem}
}

// GetFlowDefinition loads a flow definition from a YAML file and returns a
// validated domain model.
func (r *FlowYAMLRepository) GetFlowDefinition(ctx context.Context, path string) (model.FlowDefinition, error) {
	data, err := fs.ReadFile(r.fs, path)
	if err != nil {
		return model.FlowDefinition{}, fmt.Errorf("reading flow definition file: %w", err)
	}

	if ctx.Err() != nil {
		return model.FlowDefinition{}, ctx.Err()
	}

	var def FlowDefinition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return model.FlowDefinition{}, fmt.Errorf("parsing YAML: %w", err)
	}

	m := def.toModel()
	if err := m.Validate(); err != nil {
		return model.FlowDefinition{}, fmt.Errorf("invalid flow definition: %w", err)
	}

	return m, nil
}

// FlowDefinition represents the YAML structure for a flow definition.
type FlowDefinition struct {
	Name        string              `yaml:"name"`
	ParentGroup string              `yaml:"parent_group"`
	Processor   ProcessorDefinition `yaml:"processor"`
}

// ProcessorDefinition represents the YAML structure for the flow's processor.
type ProcessorDefinition struct {
	Type   string            `yaml:"type"`
	Config map[string]string `yaml:"config"`
}

func (f FlowDefinition) toModel() model.FlowDefinition {
	parent := f.ParentGroup
	if parent == "" {
		// The engine's canvas root.
		parent = "root"
	}

	return model.FlowDefinition{
		Name:          f.Name,
		ParentGroupID: parent,
		Processor: model.FlowProcessorDefinition{
			Type:   f.Processor.Type,
			Config: f.Processor.Config,
		},
	}
}
