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
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "todo help [command]" }
func (c *HelpCmd) NeedsStore() bool  { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

// Run prints the full usage, or the usage of one command when named.
func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(out, helpText)
		return exitcode.Success
	}

	cmd, ok := DefaultRegistry.Find(args[0])
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", args[0])
		return exitcode.UserError
	}
	fmt.Fprintf(out, "%s\n\nUsage:\n  %s\n", cmd.Synopsis(), cmd.Usage())
	if aliases := cmd.Aliases(); len(aliases) > 0 {
		fmt.Fprintf(out, "\nAliases: %s\n", strings.Join(aliases, ", "))
	}
	return exitcode.Success
}

const helpText = `Usage:
  todo                                          List all tasks
  todo list [common flags] [--filter <mode>]    List tasks (all, active, completed)
  todo add [common flags] <text...>             Add a task
  todo magic [common flags] <goal...>           Break a goal down into tasks
  todo done [common flags] <ref>                Toggle a task completed/active
  todo rm [common flags] <ref>                  Delete a task
  todo tui [common flags]                       Interactive mode
  todo help [command]
  todo version

A <ref> is a task number as shown by list, or an id prefix (4+ characters).

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr

Environment:
  GEMINI_API_KEY, API_KEY   Credential for magic (API key)
  GEMINI_ACCESS_TOKEN       Credential for magic (OAuth access token)
  TODO_MODEL                Override the generation model
`
