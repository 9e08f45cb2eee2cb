package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todo/internal/app"
	"todo/internal/config"
	"todo/internal/exitcode"
)

// Version is the application version. Set at build time.
var Version = "0.1.0"

func init() {
	Register(&VersionCmd{})
}

// VersionCmd prints the version and, with --verbose, the generation settings
// a magic add would use. It never opens the task snapshot.
type VersionCmd struct {
	verbose bool
}

func (c *VersionCmd) Name() string      { return "version" }
func (c *VersionCmd) Aliases() []string { return nil }
func (c *VersionCmd) Synopsis() string  { return "Print version and generation settings" }
func (c *VersionCmd) Usage() string     { return "todo version [--verbose]" }
func (c *VersionCmd) NeedsStore() bool  { return false }

func (c *VersionCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.verbose, "verbose", false, "")
	fs.BoolVar(&c.verbose, "v", false, "")
}

func (c *VersionCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	fmt.Fprintf(out, "%s %s\n", config.AppName, Version)
	if !c.verbose {
		return exitcode.Success
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = "default"
	}
	fmt.Fprintf(out, "model:      %s\n", cfg.Model)
	fmt.Fprintf(out, "endpoint:   %s\n", endpoint)
	fmt.Fprintf(out, "credential: %s\n", credentialSource(cfg))
	fmt.Fprintf(out, "config:     %s\n", cfg.Dir)
	return exitcode.Success
}

// credentialSource names the credential gemini.New would pick.
func credentialSource(cfg *config.Config) string {
	switch {
	case cfg.APIKey != "":
		return "api key"
	case cfg.AccessToken != "":
		return "access token"
	}
	return "none (magic adds the goal unchanged)"
}
