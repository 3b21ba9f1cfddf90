package flowstop

import (
	"context"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/webcat/nifictl/internal/log"
	"github.com/webcat/nifictl/internal/model"
	"github.com/webcat/nifictl/internal/nifi"
	"github.com/webcat/nifictl/internal/storage"
)

// ServiceConfig is the configuration for the flow stop service.
type ServiceConfig struct {
	Client nifi.Client
	// Repository is optional, a nil repository disables history recording.
	Repository storage.RunRepository
	Logger     log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Client == nil {
		return fmt.Errorf("engine client is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.FlowStop"})

	return nil
}

// Service stops flows on the engine.
type Service struct {
	client nifi.Client
	repo   storage.RunRepository
	logger log.Logger
}

// NewService creates a new flow stop service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		client: cfg.Client,
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}, nil
}

// Request represents the flow stop request parameters.
type Request struct {
	// FlowID is the flow to stop (the id of the flow's single processor).
	FlowID string
}

// Run stops a flow.
func (s *Service) Run(ctx context.Context, req Request) error {
	if req.FlowID == "" {
		return fmt.Errorf("flow id is required: %w", model.ErrNotValid)
	}

	s.logger.Debugf("Stopping flow: %s", req.FlowID)

	err := s.client.StopFlow(ctx, req.FlowID)
	s.recordRun(ctx, req.FlowID, err)
	if err != nil {
		return fmt.Errorf("could not stop flow %s: %w", req.FlowID, err)
	}

	s.logger.Infof("Flow %s stopped", req.FlowID)
	return nil
}

func (s *Service) recordRun(ctx context.Context, flowID string, opErr error) {
	if s.repo == nil {
		return
	}

	run := model.FlowRun{
		ID:        ulid.Make().String(),
		FlowID:    flowID,
		Action:    model.RunActionStop,
		Status:    model.RunStatusSuccess,
		CreatedAt: time.Now().UTC(),
	}
	if opErr != nil {
		run.Status = model.RunStatusFailed
		run.Error = opErr.Error()
	}

	if err := s.repo.CreateRun(ctx, run); err != nil {
		s.logger.Warningf("Could not record flow stop: %v", err)
	}
}
