package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"todo/internal/app"
	"todo/internal/config"
	"todo/internal/exitcode"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct{}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return nil }
func (c *AddCmd) Synopsis() string  { return "Add a task" }
func (c *AddCmd) Usage() string     { return "todo add <text...>" }
func (c *AddCmd) NeedsStore() bool  { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {}

// Run adds the joined args as one task. Blank text is a silent no-op.
func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	text := strings.Join(args, " ")

	_, ok, err := a.Submit(text)
	if err != nil {
		storageError(errOut, err)
		return exitcode.StorageError
	}
	if !ok {
		return exitcode.Success
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// storageError reports a failed snapshot write. The in-memory change stands
// for the rest of the process but was not saved.
func storageError(errOut io.Writer, err error) {
	fmt.Fprintf(errOut, "error: storage error: %v\n", err)
}
