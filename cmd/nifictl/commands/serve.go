package commands

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/webcat/nifictl/internal/app/flowrun"
	"github.com/webcat/nifictl/internal/metrics"
	"github.com/webcat/nifictl/internal/server"
)

type ServeCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	listenAddr        string
	metricsListenAddr string
}

// NewServeCommand returns the serve command.
func NewServeCommand(rootCmd *RootCommand, app *kingpin.Application) *ServeCommand {
	c := &ServeCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("serve", "Run the flow control HTTP API.")
	c.Cmd.Flag("listen-addr", "API listen address.").Default(":8081").StringVar(&c.listenAddr)
	c.Cmd.Flag("metrics-listen-addr", "Metrics listen address.").Default(":8082").StringVar(&c.metricsListenAddr)

	return c
}

func (c ServeCommand) Name() string { return c.Cmd.FullCommand() }

func (c ServeCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	rec := metrics.NewPrometheusRecorder(prometheus.DefaultRegisterer)

	client, err := newEngineClient(c.rootCmd, rec)
	if err != nil {
		return err
	}

	repo, closeRepo, err := newRunRepository(ctx, c.rootCmd)
	if err != nil {
		return err
	}
	defer closeRepo()

	runSvc, err := flowrun.NewService(flowrun.ServiceConfig{
		Client:     client,
		Repository: repo,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	apiServer, err := server.New(server.Config{
		FlowRunner: runSvc,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create API server: %w", err)
	}

	var g run.Group

	// Context cancellation (e.g. termination signal handled on main).
	{
		ctx, cancel := context.WithCancel(ctx)
		g.Add(
			func() error {
				<-ctx.Done()
				logger.Debugf("Context cancelled, stopping servers")
				return nil
			},
			func(_ error) {
				cancel()
			},
		)
	}

	// Flow control API.
	{
		srv := &http.Server{
			Addr:    c.listenAddr,
			Handler: apiServer.Handler(),
		}

		g.Add(
			func() error {
				logger.Infof("Flow control API listening on %s", c.listenAddr)
				return srv.ListenAndServe()
			},
			func(_ error) {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				_ = srv.Shutdown(shutdownCtx)
			},
		)
	}

	// Metrics.
	{
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		srv := &http.Server{
			Addr:    c.metricsListenAddr,
			Handler: mux,
		}

		g.Add(
			func() error {
				logger.Infof("Metrics listening on %s", c.metricsListenAddr)
				return srv.ListenAndServe()
			},
			func(_ error) {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				_ = srv.Shutdown(shutdownCtx)
			},
		)
	}

	return g.Run()
}
