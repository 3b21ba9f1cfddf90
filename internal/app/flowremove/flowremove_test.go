package flowremove_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/webcat/nifictl/internal/app/flowremove"
	"github.com/webcat/nifictl/internal/model"
	"github.com/webcat/nifictl/internal/nifi/nifimock"
)

func TestServiceRun(t *testing.T) {
	tests := map[string]struct {
		mockClient func(m *nifimock.MockClient)
		req        flowremove.Request
		expErr     bool
		expErrIs   error
	}{
		"Removing a flow should delete its process group.": {
			mockClient: func(m *nifimock.MockClient) {
				m.On("DeleteFlow", mock.Anything, "G1").Once().Return(nil)
			},
			req: flowremove.Request{FlowID: "G1"},
		},
		"A version conflict should surface wrapped, without retries.": {
			mockClient: func(m *nifimock.MockClient) {
				m.On("DeleteFlow", mock.Anything, "G1").Once().Return(fmt.Errorf("boom: %w", model.ErrVersionConflict))
			},
			req:      flowremove.Request{FlowID: "G1"},
			expErr:   true,
			expErrIs: model.ErrVersionConflict,
		},
		"An empty flow id should fail without calling the engine.": {
			mockClient: func(m *nifimock.MockClient) {},
			req:        flowremove.Request{},
			expErr:     true,
			expErrIs:   model.ErrNotValid,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			mockClient := &nifimock.MockClient{}
			test.mockClient(mockClient)

			svc, err := flowremove.NewService(flowremove.ServiceConfig{Client: mockClient})
			require.NoError(t, err)

			err = svc.Run(context.Background(), test.req)

			if test.expErr {
				require.Error(t, err)
				if test.expErrIs != nil {
					assert.ErrorIs(t, err, test.expErrIs)
				}
			} else {
				require.NoError(t, err)
			}

			mockClient.AssertExpectations(t)
		})
	}
}
