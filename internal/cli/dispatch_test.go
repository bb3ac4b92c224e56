package cli_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"todo/internal/cli"
	"todo/internal/commands"
	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
	"todo/internal/testutil"
)

// testFactory creates a service factory that returns the given FakeService.
func testFactory(svc *testutil.FakeService) cli.ServiceFactory {
	return func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return svc, nil
	}
}

// run dispatches args with a temporary config directory prepended to the
// common flags of the command.
func run(t *testing.T, factory cli.ServiceFactory, dir string, args ...string) (int, string, string) {
	t.Helper()
	t.Setenv(config.EnvFile, "")
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		args = append([]string{args[0], "--config", dir}, args[1:]...)
	}
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)
	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	code, _, stderr := run(t, nil, t.TempDir(), "unknowncmd")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: unknowncmd\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagBeforeCommand(t *testing.T) {
	code, _, stderr := run(t, nil, t.TempDir(), "--quiet")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: --quiet\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_HelpCommand(t *testing.T) {
	code, stdout, stderr := run(t, nil, t.TempDir(), "help")

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
	code, stdout, _ := run(t, nil, t.TempDir(), "version")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "todo 0.1.0\n" {
		t.Errorf("expected 'todo 0.1.0\\n', got %q", stdout)
	}
}

func TestDispatcher_UnknownFlag(t *testing.T) {
	code, _, stderr := run(t, nil, t.TempDir(), "help", "--unknown")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown flag: -unknown\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_MissingFlagValue(t *testing.T) {
	code, _, stderr := run(t, nil, t.TempDir(), "add", "--due")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: flag needs an argument: -due\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_AddThenList(t *testing.T) {
	dir := t.TempDir()

	if code, _, stderr := run(t, nil, dir, "add", "--due", "25-12-2024", "Buy", "milk"); code != exitcode.Success {
		t.Fatalf("add failed with %d: %s", code, stderr)
	}
	if code, _, stderr := run(t, nil, dir, "add", "Call mom"); code != exitcode.Success {
		t.Fatalf("add failed with %d: %s", code, stderr)
	}
	if code, _, stderr := run(t, nil, dir, "done", "2"); code != exitcode.Success {
		t.Fatalf("done failed with %d: %s", code, stderr)
	}

	data, err := os.ReadFile(filepath.Join(dir, config.TasksFile))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := "Buy milk\nFalse\n25-12-2024\n\nCall mom\nTrue\n\n\n"
	if string(data) != expected {
		t.Errorf("expected %q, got %q", expected, data)
	}

	// No args lists everything
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, nil)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(config.EnvFile, filepath.Join(dir, config.TasksFile))
	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), nil, &stdout, &stderr)
	if code != exitcode.Success {
		t.Fatalf("list failed with %d: %s", code, stderr.String())
	}
	expected = "   1  ◻ Buy milk (Due: 25-12-2024)\n   2  ✓ Call mom\n"
	if stdout.String() != expected {
		t.Errorf("expected %q, got %q", expected, stdout.String())
	}
}

func TestDispatcher_FileFlagOverridesConfig(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, config.ConfigFile), []byte("file = \"elsewhere.txt\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	file := filepath.Join(dir, "mine.txt")

	code, _, stderr := run(t, nil, dir, "add", "--file", file, "Water plants")
	if code != exitcode.Success {
		t.Fatalf("add failed with %d: %s", code, stderr)
	}
	if _, err := os.Stat(file); err != nil {
		t.Errorf("expected %s to exist: %v", file, err)
	}
}

func TestDispatcher_BadConfigFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, config.ConfigFile), []byte("file = \n"), 0644); err != nil {
		t.Fatal(err)
	}

	code, _, stderr := run(t, nil, dir, "list")
	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if !strings.HasPrefix(stderr, "error: loading config file") {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_MalformedTaskFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, config.TasksFile), []byte("Pay rent\nFalse\nsoon\n\n"), 0644); err != nil {
		t.Fatal(err)
	}

	code, _, stderr := run(t, nil, dir, "list")
	if code != exitcode.StorageError {
		t.Errorf("expected exit code %d, got %d", exitcode.StorageError, code)
	}
	if !strings.HasPrefix(stderr, "error: ") {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_DebugLogsToStderr(t *testing.T) {
	code, _, stderr := run(t, nil, t.TempDir(), "list", "--debug")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if !strings.Contains(stderr, "loaded tasks") {
		t.Errorf("expected debug output, got %q", stderr)
	}
}

func TestDispatcher_AuthWithoutFactory(t *testing.T) {
	code, _, stderr := run(t, nil, t.TempDir(), "lists")

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if !strings.Contains(stderr, "oauth_client.json not found") {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_FactoryAuthError(t *testing.T) {
	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return nil, errors.Join(errors.New("refresh failed"), service.ErrAuth)
	}

	code, _, stderr := run(t, factory, t.TempDir(), "lists")
	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if !strings.HasPrefix(stderr, "error: auth error:") {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_PushUsesFactory(t *testing.T) {
	dir := t.TempDir()
	svc := testutil.NewFakeService()

	if code, _, stderr := run(t, nil, dir, "add", "Buy milk"); code != exitcode.Success {
		t.Fatalf("add failed with %d: %s", code, stderr)
	}
	code, stdout, stderr := run(t, testFactory(svc), dir, "push")
	if code != exitcode.Success {
		t.Fatalf("push failed with %d: %s", code, stderr)
	}
	if stdout != "pushed 1, skipped 0\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}
	if got := svc.Tasks(testutil.DefaultListID); len(got) != 1 || got[0].Title != "Buy milk" {
		t.Errorf("unexpected remote tasks %+v", got)
	}
}
