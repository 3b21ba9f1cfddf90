package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/webcat/nifictl/internal/app/flowhistory"
	"github.com/webcat/nifictl/internal/printer"
	"github.com/webcat/nifictl/internal/storage/sqlite"
)

type HistoryCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	flowID string
	output string
}

// NewHistoryCommand returns the history command.
func NewHistoryCommand(rootCmd *RootCommand, app *kingpin.Application) *HistoryCommand {
	c := &HistoryCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("history", "List recorded flow runs.")
	c.Cmd.Arg("flow-id", "Filter history by flow ID.").StringVar(&c.flowID)
	c.Cmd.Flag("output", "Output format.").Short('o').Default(OutputFormatTable).EnumVar(&c.output, OutputFormatTable, OutputFormatJSON)

	return c
}

func (c HistoryCommand) Name() string { return c.Cmd.FullCommand() }

func (c HistoryCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
		DBPath: c.rootCmd.DBPath,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("could not create run repository: %w", err)
	}
	defer repo.Close()

	svc, err := flowhistory.NewService(flowhistory.ServiceConfig{
		Repository: repo,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	runs, err := svc.Run(ctx, flowhistory.Request{FlowID: c.flowID})
	if err != nil {
		return err
	}

	var p printer.Printer
	switch c.output {
	case OutputFormatJSON:
		p = printer.NewJSONPrinter(c.rootCmd.Stdout)
	default:
		p = printer.NewTablePrinter(c.rootCmd.Stdout)
	}

	if len(runs) == 0 {
		return p.PrintMessage("No flow runs recorded")
	}

	return p.PrintHistory(runs)
}
