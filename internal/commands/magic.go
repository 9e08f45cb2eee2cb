package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"todo/internal/app"
	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/output"
)

func init() {
	Register(&MagicCmd{})
}

// MagicCmd implements the magic command: expand a goal into subtasks.
type MagicCmd struct{}

func (c *MagicCmd) Name() string      { return "magic" }
func (c *MagicCmd) Aliases() []string { return []string{"expand"} }
func (c *MagicCmd) Synopsis() string  { return "Break a goal down into tasks" }
func (c *MagicCmd) Usage() string     { return "todo magic <goal...>" }
func (c *MagicCmd) NeedsStore() bool  { return true }

func (c *MagicCmd) RegisterFlags(fs *flag.FlagSet) {}

// Run expands the goal and prints the new block. Generation failures are
// logged by the gateway and leave the goal itself as the only new task.
func (c *MagicCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	goal := strings.Join(args, " ")

	created, err := a.Generate(ctx, goal)
	if err != nil {
		if errors.Is(err, app.ErrGenerationInFlight) {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		storageError(errOut, err)
		return exitcode.StorageError
	}

	if cfg.Quiet {
		return exitcode.Success
	}
	// The block is prepended, so its positions are 1..n.
	for i, t := range created {
		output.FormatTask(out, i+1, t)
	}
	return exitcode.Success
}
