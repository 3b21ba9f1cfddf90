package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/webcat/nifictl/internal/app/flowstop"
	"github.com/webcat/nifictl/internal/metrics"
)

type StopCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	flowID string
}

// NewStopCommand returns the stop command.
func NewStopCommand(rootCmd *RootCommand, app *kingpin.Application) *StopCommand {
	c := &StopCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("stop", "Stop a running flow.")
	c.Cmd.Arg("flow-id", "Flow ID (the flow's processor ID).").Required().StringVar(&c.flowID)

	return c
}

func (c StopCommand) Name() string { return c.Cmd.FullCommand() }

func (c StopCommand) Run(ctx context.Context) error {
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

	svc, err := flowstop.NewService(flowstop.ServiceConfig{
		Client:     client,
		Repository: repo,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	if err := svc.Run(ctx, flowstop.Request{FlowID: c.flowID}); err != nil {
		return err
	}

	fmt.Fprintf(c.rootCmd.Stdout, "Flow %s stopped\n", c.flowID)
	return nil
}
