package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webcat/nifictl/internal/model"
	"github.com/webcat/nifictl/internal/storage/sqlite"
)

func newTestRepository(t *testing.T) *sqlite.Repository {
	t.Helper()

	repo, err := sqlite.NewRepository(context.Background(), sqlite.RepositoryConfig{
		DBPath: filepath.Join(t.TempDir(), "nifictl.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	return repo
}

func TestNewRepository(t *testing.T) {
	t.Run("Missing db path should fail.", func(t *testing.T) {
		_, err := sqlite.NewRepository(context.Background(), sqlite.RepositoryConfig{})
		require.Error(t, err)
	})

	t.Run("Valid config should create the schema.", func(t *testing.T) {
		repo := newTestRepository(t)

		runs, err := repo.ListRuns(context.Background(), "")
		require.NoError(t, err)
		assert.Empty(t, runs)
	})
}

func TestRepositoryCreateRun(t *testing.T) {
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

	tests := map[string]struct {
		run    model.FlowRun
		expErr bool
	}{
		"A valid run should be stored.": {
			run: model.FlowRun{
				ID:        "01JXAMPLE0000000000000001",
				FlowID:    "proc-1",
				Action:    model.RunActionRun,
				Status:    model.RunStatusSuccess,
				CreatedAt: now,
			},
		},
		"A failed run should keep its error message.": {
			run: model.FlowRun{
				ID:        "01JXAMPLE0000000000000002",
				FlowID:    "proc-1",
				Action:    model.RunActionRun,
				Status:    model.RunStatusFailed,
				Error:     "engine transport failed",
				CreatedAt: now,
			},
		},
		"A run without id should fail.": {
			run:    model.FlowRun{FlowID: "proc-1"},
			expErr: true,
		},
		"A run without flow id should fail.": {
			run:    model.FlowRun{ID: "01JXAMPLE0000000000000003"},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			repo := newTestRepository(t)

			err := repo.CreateRun(context.Background(), test.run)

			if test.expErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			runs, err := repo.ListRuns(context.Background(), test.run.FlowID)
			require.NoError(t, err)
			require.Len(t, runs, 1)
			assert.Equal(t, test.run, runs[0])
		})
	}
}

func TestRepositoryListRuns(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	seed := []model.FlowRun{
		{ID: "01JXAMPLE0000000000000001", FlowID: "proc-1", Action: model.RunActionRun, Status: model.RunStatusSuccess, CreatedAt: base},
		{ID: "01JXAMPLE0000000000000002", FlowID: "proc-2", Action: model.RunActionRun, Status: model.RunStatusFailed, Error: "boom", CreatedAt: base.Add(time.Minute)},
		{ID: "01JXAMPLE0000000000000003", FlowID: "proc-1", Action: model.RunActionStop, Status: model.RunStatusSuccess, CreatedAt: base.Add(2 * time.Minute)},
	}
	for _, run := range seed {
		require.NoError(t, repo.CreateRun(ctx, run))
	}

	t.Run("Listing all runs should return newest first.", func(t *testing.T) {
		runs, err := repo.ListRuns(ctx, "")
		require.NoError(t, err)
		require.Len(t, runs, 3)
		assert.Equal(t, "01JXAMPLE0000000000000003", runs[0].ID)
		assert.Equal(t, "01JXAMPLE0000000000000002", runs[1].ID)
		assert.Equal(t, "01JXAMPLE0000000000000001", runs[2].ID)
	})

	t.Run("Listing by flow id should filter.", func(t *testing.T) {
		runs, err := repo.ListRuns(ctx, "proc-1")
		require.NoError(t, err)
		require.Len(t, runs, 2)
		assert.Equal(t, model.RunActionStop, runs[0].Action)
		assert.Equal(t, model.RunActionRun, runs[1].Action)
	})
}
