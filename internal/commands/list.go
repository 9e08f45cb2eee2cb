package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todo/internal/app"
	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/output"
	"todo/internal/task"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `todo` (no args) and `todo list --filter <mode>`.
type ListCmd struct {
	filter string
}

// SetFilter sets the filter mode (for testing).
func (c *ListCmd) SetFilter(filter string) {
	c.filter = filter
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return nil }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string     { return "todo list [--filter all|active|completed]" }
func (c *ListCmd) NeedsStore() bool  { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.filter, "filter", "all", "")
	fs.StringVar(&c.filter, "f", "all", "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	mode := task.All
	if c.filter != "" {
		var err error
		if mode, err = task.ParseFilterMode(c.filter); err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
	}

	if mode != task.All {
		output.FormatFilterHeader(out, mode)
	}

	// Numbers are positions in the full list so done/rm can use them under any filter.
	shown := 0
	for i, t := range a.Tasks() {
		if !mode.Matches(t) {
			continue
		}
		output.FormatTask(out, i+1, t)
		shown++
	}

	if cfg.Quiet {
		return exitcode.Success
	}
	if shown == 0 {
		fmt.Fprintln(out, output.EmptyText)
	}
	fmt.Fprintln(out)
	output.FormatActiveCount(out, a.ActiveCount())
	return exitcode.Success
}
