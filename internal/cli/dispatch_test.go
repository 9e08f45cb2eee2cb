package cli_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"todo/internal/app"
	"todo/internal/cli"
	"todo/internal/commands"
	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/expand"
	"todo/internal/store"
	"todo/internal/testutil"
)

// clearEnv keeps credentials from the developer's shell out of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"GEMINI_API_KEY", "API_KEY", "GEMINI_ACCESS_TOKEN", "TODO_MODEL"} {
		t.Setenv(key, "")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
}

// testFactory creates an app factory over the given storage and generator.
func testFactory(storage *testutil.MemoryStorage, gen expand.Generator) cli.AppFactory {
	return func(ctx context.Context, cfg *config.Config, logger *log.Logger) (*app.App, error) {
		s := store.New(storage, cfg.SnapshotKey, store.WithLogger(logger))
		s.Load()
		return app.New(s, expand.New(gen, cfg.Model, logger)), nil
	}
}

func run(t *testing.T, d *cli.Dispatcher, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	code = d.Run(context.Background(), args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	d := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewMemoryStorage(), nil))

	_, stderr, code := run(t, d, "unknowncmd")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: unknowncmd\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagBeforeCommand(t *testing.T) {
	d := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewMemoryStorage(), nil))

	_, stderr, code := run(t, d, "--quiet")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: --quiet\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_HelpCommand(t *testing.T) {
	clearEnv(t)
	d := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewMemoryStorage(), nil))

	stdout, stderr, code := run(t, d, "help", "--config", t.TempDir())

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.Contains(stdout, "Usage:") {
		t.Error("expected help output to contain 'Usage:'")
	}
}

func TestDispatcher_VersionCommand(t *testing.T) {
	clearEnv(t)
	d := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewMemoryStorage(), nil))

	stdout, stderr, code := run(t, d, "version", "--config", t.TempDir())

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "todo 0.1.0\n" {
		t.Errorf("expected 'todo 0.1.0\\n', got %q", stdout)
	}
}

func TestDispatcher_VersionVerbose(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_ACCESS_TOKEN", "token")
	d := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewMemoryStorage(), nil))
	dir := t.TempDir()

	stdout, _, code := run(t, d, "version", "--verbose", "--config", dir)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	for _, want := range []string{"model:      gemini-2.5-flash\n", "credential: access token\n", "config:     " + dir + "\n"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected output to contain %q, got %q", want, stdout)
		}
	}
}

func TestDispatcher_UnknownFlag(t *testing.T) {
	d := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewMemoryStorage(), nil))

	_, stderr, code := run(t, d, "help", "--unknown")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown flag: -unknown\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_MissingFlagValue(t *testing.T) {
	d := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewMemoryStorage(), nil))

	_, stderr, code := run(t, d, "list", "--filter")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: flag needs an argument: -filter\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_NoArgsListsTasks(t *testing.T) {
	clearEnv(t)
	d := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewMemoryStorage(), nil))

	stdout, _, code := run(t, d)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if !strings.Contains(stdout, "No tasks yet") {
		t.Errorf("expected empty list output, got %q", stdout)
	}
}

func TestDispatcher_AddThenFilteredList(t *testing.T) {
	clearEnv(t)
	storage := testutil.NewMemoryStorage()
	d := cli.NewDispatcher(commands.DefaultRegistry, testFactory(storage, nil))
	dir := t.TempDir()

	if _, stderr, code := run(t, d, "add", "--config", dir, "Buy", "milk"); code != exitcode.Success {
		t.Fatalf("add failed: %d %s", code, stderr)
	}
	if _, stderr, code := run(t, d, "toggle", "--config", dir, "1"); code != exitcode.Success {
		t.Fatalf("toggle failed: %d %s", code, stderr)
	}

	stdout, _, code := run(t, d, "list", "--config", dir, "--filter", "completed")
	if code != exitcode.Success {
		t.Fatalf("list failed: %d", code)
	}
	if !strings.Contains(stdout, "   1  [x] Buy milk\n") {
		t.Errorf("expected completed task, got %q", stdout)
	}

	if _, ok := storage.Value("todo-app-data"); !ok {
		t.Error("expected snapshot under the default key")
	}
}

func TestDispatcher_InvalidConfigFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, config.ConfigFile), []byte("model = [unterminated"), 0o600); err != nil {
		t.Fatal(err)
	}
	d := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewMemoryStorage(), nil))

	_, stderr, code := run(t, d, "list", "--config", dir)

	if code != exitcode.ConfigError {
		t.Errorf("expected exit code %d, got %d", exitcode.ConfigError, code)
	}
	if !strings.HasPrefix(stderr, "error: config error:") {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_FactoryError(t *testing.T) {
	clearEnv(t)
	factory := func(ctx context.Context, cfg *config.Config, logger *log.Logger) (*app.App, error) {
		return nil, errors.New("no generation credential configured")
	}
	d := cli.NewDispatcher(commands.DefaultRegistry, factory)

	_, stderr, code := run(t, d, "list", "--config", t.TempDir())

	if code != exitcode.ConfigError {
		t.Errorf("expected exit code %d, got %d", exitcode.ConfigError, code)
	}
	if stderr != "error: config error: no generation credential configured\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_FactoryNotCalledForHelp(t *testing.T) {
	clearEnv(t)
	called := false
	factory := func(ctx context.Context, cfg *config.Config, logger *log.Logger) (*app.App, error) {
		called = true
		return nil, errors.New("unexpected")
	}
	d := cli.NewDispatcher(commands.DefaultRegistry, factory)

	if _, _, code := run(t, d, "help", "--config", t.TempDir()); code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if called {
		t.Error("expected help not to build the app")
	}
}

func TestDispatcher_MagicWithoutCredentialWarns(t *testing.T) {
	clearEnv(t)
	d := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewMemoryStorage(), nil))

	stdout, stderr, code := run(t, d, "magic", "--config", t.TempDir(), "Plan", "a", "party")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "   1  [ ] Plan a party\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}
	if !strings.Contains(stderr, "API key is missing") {
		t.Errorf("expected missing key warning on stderr, got %q", stderr)
	}
}
