package model_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/webcat/nifictl/internal/model"
)

func TestFlowDefinitionValidate(t *testing.T) {
	valid := model.FlowDefinition{
		Name:          "BulkInsertFlow",
		ParentGroupID: "root",
		Processor: model.FlowProcessorDefinition{
			Type: "org.apache.nifi.processors.standard.PutDatabaseRecord",
		},
	}

	tests := map[string]struct {
		mutate func(d *model.FlowDefinition)
		expErr bool
	}{
		"A valid definition should pass.": {
			mutate: func(d *model.FlowDefinition) {},
		},
		"A definition without name should fail.": {
			mutate: func(d *model.FlowDefinition) { d.Name = "" },
			expErr: true,
		},
		"A definition without parent group should fail.": {
			mutate: func(d *model.FlowDefinition) { d.ParentGroupID = "" },
			expErr: true,
		},
		"A definition without processor type should fail.": {
			mutate: func(d *model.FlowDefinition) { d.Processor.Type = "" },
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			def := valid
			test.mutate(&def)

			err := def.Validate()

			if test.expErr {
				require.Error(t, err)
				require.ErrorIs(t, err, model.ErrNotValid)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
