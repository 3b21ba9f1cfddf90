package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/webcat/nifictl/internal/app/flowremove"
	"github.com/webcat/nifictl/internal/metrics"
)

type RmCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	flowID string
}

// NewRmCommand returns the rm command.
func NewRmCommand(rootCmd *RootCommand, app *kingpin.Application) *RmCommand {
	c := &RmCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("rm", "Remove a flow from the engine.")
	c.Cmd.Arg("flow-id", "Flow ID (the flow's process group ID).").Required().StringVar(&c.flowID)

	return c
}

func (c RmCommand) Name() string { return c.Cmd.FullCommand() }

func (c RmCommand) Run(ctx context.Context) error {
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

	svc, err := flowremove.NewService(flowremove.ServiceConfig{
		Client:     client,
		Repository: repo,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	if err := svc.Run(ctx, flowremove.Request{FlowID: c.flowID}); err != nil {
		return err
	}

	fmt.Fprintf(c.rootCmd.Stdout, "Flow %s removed\n", c.flowID)
	return nil
}
