package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/webcat/nifictl/internal/app/flowrun"
	"github.com/webcat/nifictl/internal/metrics"
)

type RunCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	flowID string
}

// NewRunCommand returns the run command.
func NewRunCommand(rootCmd *RootCommand, app *kingpin.Application) *RunCommand {
	c := &RunCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("run", "Start a flow on the engine.")
	c.Cmd.Arg("flow-id", "Flow ID (the flow's processor ID).").Required().StringVar(&c.flowID)

	return c
}

func (c RunCommand) Name() string { return c.Cmd.FullCommand() }

func (c RunCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	client, err := newEngineClient(c.rootCmd, metrics.Noop)
	if err != nil {
		return err
	}

	repo, closeRepo, err := newRunRepository(ctx, c.rootCmd)
	if err != nil {
		return err
	}
	defer closeRepo()

	svc, err := flowrun.NewService(flowrun.ServiceConfig{
		Client:     client,
		Repository: repo,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	if err := svc.Run(ctx, flowrun.Request{FlowID: c.flowID}); err != nil {
		return err
	}

	fmt.Fprintf(c.rootCmd.Stdout, "Flow %s started\n", c.flowID)
	return nil
}
