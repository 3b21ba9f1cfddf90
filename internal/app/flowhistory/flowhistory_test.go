package flowhistory_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/webcat/nifictl/internal/app/flowhistory"
	"github.com/webcat/nifictl/internal/model"
	"github.com/webcat/nifictl/internal/storage/storagemock"
)

func TestServiceRun(t *testing.T) {
	createdAt := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

	tests := map[string]struct {
		mockRepo func(m *storagemock.MockRunRepository)
		req      flowhistory.Request
		expRuns  []model.FlowRun
		expErr   bool
	}{
		"Listing should return the repository runs.": {
			mockRepo: func(m *storagemock.MockRunRepository) {
				m.On("ListRuns", mock.Anything, "").Once().Return([]model.FlowRun{
					{ID: "01JXAMPLE0000000000000001", FlowID: "proc-1", Action: model.RunActionRun, Status: model.RunStatusSuccess, CreatedAt: createdAt},
				}, nil)
			},
			expRuns: []model.FlowRun{
				{ID: "01JXAMPLE0000000000000001", FlowID: "proc-1", Action: model.RunActionRun, Status: model.RunStatusSuccess, CreatedAt: createdAt},
			},
		},
		"Listing by flow id should forward the filter.": {
			mockRepo: func(m *storagemock.MockRunRepository) {
				m.On("ListRuns", mock.Anything, "proc-1").Once().Return(nil, nil)
			},
			req: flowhistory.Request{FlowID: "proc-1"},
		},
		"A repository failure should fail the listing.": {
			mockRepo: func(m *storagemock.MockRunRepository) {
				m.On("ListRuns", mock.Anything, "").Once().Return(nil, fmt.Errorf("boom"))
			},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			mockRepo := &storagemock.MockRunRepository{}
			test.mockRepo(mockRepo)

			svc, err := flowhistory.NewService(flowhistory.ServiceConfig{Repository: mockRepo})
			require.NoError(t, err)

			runs, err := svc.Run(context.Background(), test.req)

			if test.expErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, test.expRuns, runs)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}
