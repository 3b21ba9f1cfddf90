package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kingpin/v2"

	"github.com/webcat/nifictl/internal/app/flowcreate"
	"github.com/webcat/nifictl/internal/metrics"
	storageio "github.com/webcat/nifictl/internal/storage/io"
)

type CreateCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	definitionFile string
}

// NewCreateCommand returns the create command.
func NewCreateCommand(rootCmd *RootCommand, app *kingpin.Application) *CreateCommand {
	c := &CreateCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("create", "Create a flow on the engine from a definition file.")
	c.Cmd.Flag("file", "Path to a flow definition YAML file.").Short('f').Required().StringVar(&c.definitionFile)

	return c
}

func (c CreateCommand) Name() string { return c.Cmd.FullCommand() }

func (c CreateCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	// Load the flow definition from YAML.
	defPath := c.definitionFile
	if !filepath.IsAbs(defPath) {
		absPath, err := filepath.Abs(defPath)
		if err != nil {
			return fmt.Errorf("could not resolve flow definition path: %w", err)
		}
		defPath = absPath
	}

	defRepo := storageio.NewFlowYAMLRepository(os.DirFS("/"))
	definition, err := defRepo.GetFlowDefinition(ctx, defPath[1:])
	if err != nil {
		return fmt.Errorf("could not load flow definition: %w", err)
	}

	client, err := newEngineClient(c.rootCmd, metrics.Noop)
	if err != nil {
		return err
	}

	repo, closeRepo, err := newRunRepository(ctx, c.rootCmd)
	if err != nil {
		return err
	}
	defer closeRepo()

	svc, err := flowcreate.NewService(flowcreate.ServiceConfig{
		Client:     client,
		Repository: repo,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	resp, err := svc.Run(ctx, flowcreate.Request{Definition: definition})
	if err != nil {
		return err
	}

	fmt.Fprintf(c.rootCmd.Stdout, "Flow %q created\n", definition.Name)
	fmt.Fprintf(c.rootCmd.Stdout, "Process group: %s\n", resp.GroupID)
	fmt.Fprintf(c.rootCmd.Stdout, "Processor:     %s\n", resp.ProcessorID)
	return nil
}
