// Package server exposes the flow control HTTP API.
//
// It is a thin boundary: the single user facing operation is starting a flow
// by id, everything else (metrics, health) is operational plumbing. Any
// failure below surfaces as one generic failure, the client error taxonomy
// is for internal diagnostics only.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/webcat/nifictl/internal/app/flowrun"
	"github.com/webcat/nifictl/internal/log"
)

// FlowRunner knows how to start a flow by id.
type FlowRunner interface {
	Run(ctx context.Context, req flowrun.Request) error
}

// Config is the configuration for the API server handler.
type Config struct {
	FlowRunner FlowRunner
	Logger     log.Logger
}

func (c *Config) defaults() error {
	if c.FlowRunner == nil {
		return fmt.Errorf("flow runner is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "server.API"})

	return nil
}

// Server handles the flow control API requests.
type Server struct {
	runner FlowRunner
	logger log.Logger
}

// New creates a new API server.
func New(cfg Config) (*Server, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Server{
		runner: cfg.FlowRunner,
		logger: cfg.Logger,
	}, nil
}

// Handler returns the HTTP handler with all API routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /flows/{flowID}/run", s.handleRunFlow)
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	return mux
}

func (s *Server) handleRunFlow(w http.ResponseWriter, r *http.Request) {
	flowID := r.PathValue("flowID")

	err := s.runner.Run(r.Context(), flowrun.Request{FlowID: flowID})
	if err != nil {
		// Log the real cause, answer with a generic failure.
		s.logger.Errorf("Flow start failed: %v", err)
		http.Error(w, fmt.Sprintf("could not start flow %s", flowID), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "Flow %s started\n", flowID)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "ok")
}
