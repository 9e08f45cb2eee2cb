// Package commands holds the todo subcommands. Each one registers itself with
// DefaultRegistry from init and drives an app.App built by the dispatcher.
package commands

import (
	"context"
	"flag"
	"io"

	"todo/internal/app"
	"todo/internal/config"
)

// Command is one todo subcommand.
//
// The dispatcher parses the common flags and the ones added by RegisterFlags,
// then loads config. For a command whose NeedsStore is true it builds the App
// before Run: the snapshot is read once and the expansion gateway is attached,
// so magic and tui can generate. A failure there exits with
// exitcode.ConfigError and Run is never called. Commands that only print
// (help, version) get a nil App and never touch the snapshot.
type Command interface {
	Name() string
	Aliases() []string

	// Synopsis is the one-line summary shown by help.
	Synopsis() string
	Usage() string

	// NeedsStore reports whether Run needs a loaded App.
	NeedsStore() bool

	// RegisterFlags adds command flags to the dispatcher's flag set. Flag
	// values are reset on every dispatch.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command with the positional args left after flag
	// parsing and returns an exitcode value. Mutations are persisted by the
	// App before Run returns; a write failure maps to exitcode.StorageError.
	Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int
}
