package flowhistory

import (
	"context"
	"fmt"

	"github.com/webcat/nifictl/internal/log"
	"github.com/webcat/nifictl/internal/model"
	"github.com/webcat/nifictl/internal/storage"
)

// ServiceConfig is the configuration for the flow history service.
type ServiceConfig struct {
	Repository storage.RunRepository
	Logger     log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.FlowHistory"})

	return nil
}

// Service lists the recorded flow run history.
type Service struct {
	repo   storage.RunRepository
	logger log.Logger
}

// NewService creates a new flow history service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}, nil
}

// Request represents the flow history request parameters.
type Request struct {
	// FlowID filters the history to a single flow. Empty lists everything.
	FlowID string
}

// Run lists flow run records, newest first.
func (s *Service) Run(ctx context.Context, req Request) ([]model.FlowRun, error) {
	runs, err := s.repo.ListRuns(ctx, req.FlowID)
	if err != nil {
		return nil, fmt.Errorf("could not list flow runs: %w", err)
	}

	s.logger.Debugf("Listed %d flow runs", len(runs))
	return runs, nil
}
