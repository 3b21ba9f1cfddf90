package commands

import (
	"context"
	"fmt"

	"github.com/webcat/nifictl/internal/metrics"
	"github.com/webcat/nifictl/internal/nifi"
	"github.com/webcat/nifictl/internal/storage"
	"github.com/webcat/nifictl/internal/storage/sqlite"
)

// newEngineClient creates the engine client from the root configuration.
func newEngineClient(rootCmd *RootCommand, rec metrics.Recorder) (*nifi.EngineClient, error) {
	client, err := nifi.NewEngineClient(nifi.EngineClientConfig{
		BaseURL: rootCmd.EngineURL,
		Metrics: rec,
		Logger:  rootCmd.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create engine client: %w", err)
	}

	return client, nil
}

// newRunRepository returns the run history repository and its closer. A nil
// repository (history disabled) is a valid result.
func newRunRepository(ctx context.Context, rootCmd *RootCommand) (storage.RunRepository, func() error, error) {
	if rootCmd.NoHistory {
		return nil, func() error { return nil }, nil
	}

	repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
		DBPath: rootCmd.DBPath,
		Logger: rootCmd.Logger,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("could not create run repository: %w", err)
	}

	return repo, repo.Close, nil
}
