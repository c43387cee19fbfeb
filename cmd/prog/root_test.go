// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"prog-cli/internal/config"
	"prog-cli/internal/testutil"
	"prog-cli/internal/testutil/progfiletest"
	"prog-cli/pkg/alias"
	"prog-cli/pkg/invocation"
	"prog-cli/pkg/progfile"
)

type (
	staticConfig struct {
		cfg *config.Config
		err error
	}

	testCLI struct {
		app    *App
		stdout *bytes.Buffer
		stderr *bytes.Buffer
	}
)

func (s staticConfig) Load(context.Context, config.LoadOptions) (*config.Config, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.cfg, nil
}

func newTestCLI(t *testing.T, cfg *config.Config) *testCLI {
	t.Helper()

	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	app := NewApp(Dependencies{
		Config: staticConfig{cfg: cfg},
		Stdin:  strings.NewReader(""),
		Stdout: stdout,
		Stderr: stderr,
	})
	return &testCLI{app: app, stdout: stdout, stderr: stderr}
}

func (c *testCLI) run(args ...string) error {
	root := newRootCommand(c.app)
	root.SetArgs(args)
	root.SetOut(c.stdout)
	root.SetErr(c.stderr)
	return root.ExecuteContext(context.Background())
}

func sampleConfig(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	progfiletest.WriteConfig(t, dir, progfile.FormatYAML, progfiletest.NewDocument(
		progfiletest.WithCommand("build", "make all"),
		progfiletest.WithCommand("greet(1)", "echo hello $1"),
		progfiletest.WithList("push", "git add .", "git commit", "git push"),
		progfiletest.WithMap("configure",
			progfiletest.WithCommand("debug", "cmake -B build"),
			progfiletest.WithCommand("release", "cmake -B release -DCMAKE_BUILD_TYPE=Release"),
		),
		progfiletest.WithCommand("fail", "false"),
		progfiletest.WithCommand("after", "echo after"),
	))
	return dir
}

func TestGetVersionString(t *testing.T) {
	origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
	t.Cleanup(func() {
		Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
	})

	Version, Commit, BuildDate = "v1.2.3", "abc1234", "2026-01-15T10:00:00Z"
	if got, want := getVersionString(), "v1.2.3 (commit: abc1234, built: 2026-01-15T10:00:00Z)"; got != want {
		t.Errorf("getVersionString() = %q, want %q", got, want)
	}

	Version = "dev"
	if got, want := getVersionString(), "dev (built from source)"; got != want {
		t.Errorf("getVersionString() = %q, want %q", got, want)
	}
}

func TestRoot_NoArgsShowsHelp(t *testing.T) {
	t.Parallel()

	cli := newTestCLI(t, nil)
	if err := cli.run(); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	out := cli.stdout.String()
	for _, want := range []string{"Usage:", "Quote every target that contains spaces", "prog 'run(5, fast)'"} {
		if !strings.Contains(out, want) {
			t.Errorf("help output missing %q:\n%s", want, out)
		}
	}
}

func TestRoot_DryRun(t *testing.T) {
	t.Parallel()

	dir := sampleConfig(t)
	cli := newTestCLI(t, nil)

	err := cli.run("-p", dir, "-n", "greet(world)", "configure.debug; push[0,2]")
	if err != nil {
		t.Fatalf("run() error = %v\nstderr:\n%s", err, cli.stderr.String())
	}

	want := "echo hello world\ncmake -B build\ngit add .\ngit push\n"
	if got := cli.stdout.String(); got != want {
		t.Errorf("dry-run output = %q, want %q", got, want)
	}
}

func TestRoot_DryRunQuotesWords(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.MustWriteFile(t, dir, "prog.yml", "show: echo $HOME *.go\n")
	cli := newTestCLI(t, nil)

	if err := cli.run("-p", dir, "--dry-run", "show"); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if got, want := cli.stdout.String(), "echo '$HOME' '*.go'\n"; got != want {
		t.Errorf("dry-run output = %q, want %q", got, want)
	}
}

func TestRoot_Script(t *testing.T) {
	t.Parallel()

	dir := sampleConfig(t)
	script := testutil.MustWriteFile(t, t.TempDir(), "release.prog", "#!/usr/bin/env -S prog -s\nconfigure.debug\nbuild\n")
	cli := newTestCLI(t, nil)

	if err := cli.run("-p", dir, "-n", "-s", script); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if got, want := cli.stdout.String(), "cmake -B build\nmake all\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestRoot_ScriptWithTargets(t *testing.T) {
	t.Parallel()

	cli := newTestCLI(t, nil)
	if err := cli.run("-p", sampleConfig(t), "-s", "x.prog", "build"); err == nil {
		t.Fatal("run() expected error when combining --script and targets")
	}
}

func TestRoot_List(t *testing.T) {
	t.Parallel()

	cli := newTestCLI(t, nil)
	if err := cli.run("-p", sampleConfig(t), "--list"); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	out := cli.stdout.String()
	for _, want := range []string{"prog.yml", "build", "make all", "greet(1)", "push", "[2]", "git push", "configure", "release"} {
		if !strings.Contains(out, want) {
			t.Errorf("list output missing %q:\n%s", want, out)
		}
	}
}

func TestRoot_RunVirtual(t *testing.T) {
	t.Parallel()

	cli := newTestCLI(t, nil)
	if err := cli.run("-p", sampleConfig(t), "-r", "virtual", "greet(world)", "greet(again)"); err != nil {
		t.Fatalf("run() error = %v\nstderr:\n%s", err, cli.stderr.String())
	}
	if got, want := cli.stdout.String(), "hello world\nhello again\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestRoot_RunUsesConfiguredRuntime(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.DefaultRuntime = config.RuntimeVirtual
	cli := newTestCLI(t, cfg)

	if err := cli.run("-p", sampleConfig(t), "-v", "after"); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if got := cli.stdout.String(); got != "after\n" {
		t.Errorf("output = %q, want %q", got, "after\n")
	}
	if !strings.Contains(cli.stderr.String(), "echo after") {
		t.Errorf("verbose run should log the command, stderr:\n%s", cli.stderr.String())
	}
}

func TestRoot_RunStopsAtFailure(t *testing.T) {
	t.Parallel()

	cli := newTestCLI(t, nil)
	err := cli.run("-p", sampleConfig(t), "-r", "virtual", "fail; after")

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("run() error = %v, want *ExitError", err)
	}
	if exitErr.Code != 1 {
		t.Errorf("exit code = %d, want 1", exitErr.Code)
	}
	if strings.Contains(cli.stdout.String(), "after") {
		t.Errorf("commands after the failure must not run, stdout:\n%s", cli.stdout.String())
	}
}

func TestRoot_RunNative(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("native test commands are POSIX programs")
	}

	dir := sampleConfig(t)
	cli := newTestCLI(t, nil)
	if err := cli.run("-p", dir, "-r", "native", "greet(native)"); err != nil {
		t.Fatalf("run() error = %v\nstderr:\n%s", err, cli.stderr.String())
	}
	if got := cli.stdout.String(); got != "hello native\n" {
		t.Errorf("output = %q, want %q", got, "hello native\n")
	}
}

func TestRoot_ResolutionErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		target string
		want   error
	}{
		{"syntax", "build(", invocation.ErrInvalidSyntax},
		{"missing alias", "after; deploy", alias.ErrAliasNotFound},
	}

	dir := sampleConfig(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cli := newTestCLI(t, nil)
			err := cli.run("-p", dir, "-r", "virtual", tt.target)
			if !errors.Is(err, tt.want) {
				t.Fatalf("run() error = %v, want %v", err, tt.want)
			}
			if cli.stdout.Len() != 0 {
				t.Errorf("nothing should run on resolution failure, stdout:\n%s", cli.stdout.String())
			}
		})
	}
}

func TestRoot_MissingConfig(t *testing.T) {
	t.Parallel()

	cli := newTestCLI(t, nil)
	err := cli.run("-p", t.TempDir(), "build")
	if !errors.Is(err, progfile.ErrConfigNotFound) {
		t.Fatalf("run() error = %v, want ErrConfigNotFound", err)
	}
}

func TestRoot_InvalidRuntimeFlag(t *testing.T) {
	t.Parallel()

	cli := newTestCLI(t, nil)
	if err := cli.run("-p", sampleConfig(t), "-r", "container", "build"); err == nil {
		t.Fatal("run() expected error for an unknown runtime")
	}
}

func TestRoot_SettingsLoadFailure(t *testing.T) {
	t.Parallel()

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	loadErr := errors.New("broken settings")
	app := NewApp(Dependencies{Config: staticConfig{err: loadErr}, Stdout: stdout, Stderr: stderr})
	cli := &testCLI{app: app, stdout: stdout, stderr: stderr}

	dir := sampleConfig(t)
	if err := cli.run("-p", dir, "-n", "build"); err != nil {
		t.Fatalf("default settings failure should fall back to defaults, got %v", err)
	}
	if !strings.Contains(stderr.String(), "broken settings") {
		t.Errorf("expected a warning, stderr:\n%s", stderr.String())
	}

	if err := cli.run("-p", dir, "--settings", "custom.cue", "-n", "build"); !errors.Is(err, loadErr) {
		t.Errorf("explicit settings failure = %v, want %v", err, loadErr)
	}
}

func TestRoot_Generate(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cli := newTestCLI(t, nil)

	if err := cli.run("-p", dir, "--generate", "--template", "go", "--format", "toml"); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "prog.toml")); err != nil {
		t.Fatalf("prog.toml not written: %v", err)
	}
	if !strings.Contains(cli.stdout.String(), "Created") {
		t.Errorf("stdout = %q", cli.stdout.String())
	}

	err := cli.run("-p", dir, "-g", "-t", "cargo", "-f", "yaml")
	if !errors.Is(err, progfile.ErrFileExists) {
		t.Fatalf("second generate error = %v, want ErrFileExists", err)
	}

	if err := cli.run("-p", dir, "-g", "-t", "cargo", "-f", "toml", "--force"); err != nil {
		t.Fatalf("forced generate error = %v", err)
	}
	file, err := progfile.Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	build, ok := file.Document.Lookup("build")
	if !ok || build.Kind != progfile.MapValue {
		t.Errorf("forced generate should write the cargo template, build = %+v", build)
	}
}

func TestRoot_GenerateUsesSettingsDefaults(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.DefaultFormat = progfile.FormatJSON
	cfg.DefaultTemplate = progfile.TemplateMake
	cli := newTestCLI(t, cfg)

	dir := t.TempDir()
	if err := cli.run("-p", dir, "-g"); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	file, err := progfile.Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if file.Format != progfile.FormatJSON {
		t.Errorf("Format = %s, want json", file.Format)
	}
}

func TestRoot_GenerateThenRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cli := newTestCLI(t, nil)
	if err := cli.run("-p", dir, "-g", "-t", "go", "-f", "cue", "-n", "build"); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if !strings.Contains(cli.stdout.String(), "go build") {
		t.Errorf("expected the go template's build command, stdout:\n%s", cli.stdout.String())
	}
}

func TestRoot_Convert(t *testing.T) {
	t.Parallel()

	dir := sampleConfig(t)
	before, err := progfile.Load(dir)
	if err != nil {
		t.Fatal(err)
	}

	cli := newTestCLI(t, nil)
	if err := cli.run("-p", dir, "--convert", "--format", "cue"); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "prog.yml")); !os.IsNotExist(err) {
		t.Errorf("prog.yml should be removed, stat error = %v", err)
	}
	after, err := progfile.Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if after.Format != progfile.FormatCUE {
		t.Errorf("Format = %s, want cue", after.Format)
	}
	if len(after.Document.Entries) != len(before.Document.Entries) {
		t.Errorf("converted document has %d entries, want %d", len(after.Document.Entries), len(before.Document.Entries))
	}
}

func TestRoot_GenerateAndConvertExclusive(t *testing.T) {
	t.Parallel()

	cli := newTestCLI(t, nil)
	if err := cli.run("-p", t.TempDir(), "-g", "-c"); err == nil {
		t.Fatal("run() expected error for --generate with --convert")
	}
}

func TestRoot_EnvFile(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("uses the POSIX printenv utility")
	}

	dir := t.TempDir()
	testutil.MustWriteFile(t, dir, "prog.yml", "mode: printenv PROG_TEST_MODE\n")
	testutil.MustWriteFile(t, dir, "dev.env", "export PROG_TEST_MODE=development\n")

	cli := newTestCLI(t, nil)
	if err := cli.run("-p", dir, "-r", "native", "-e", "dev.env", "-e", "local.env?", "mode"); err != nil {
		t.Fatalf("run() error = %v\nstderr:\n%s", err, cli.stderr.String())
	}
	if got := cli.stdout.String(); got != "development\n" {
		t.Errorf("output = %q, want %q", got, "development\n")
	}

	if err := cli.run("-p", dir, "-e", "missing.env", "mode"); err == nil {
		t.Fatal("run() expected error for a missing required env file")
	}
}

func TestRoot_RunFailureReportsStderr(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.MustWriteFile(t, dir, "prog.yml", "missing: prog-definitely-not-a-real-program --flag\n")
	cli := newTestCLI(t, nil)

	err := cli.run("-p", dir, "-r", "virtual", "missing")

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("run() error = %v, want *ExitError", err)
	}
	if exitErr.Code != 127 {
		t.Errorf("exit code = %d, want 127", exitErr.Code)
	}
	if !strings.Contains(err.Error(), "exit status 127: ") || !strings.Contains(err.Error(), "prog-definitely-not-a-real-program") {
		t.Errorf("error should carry the last stderr line, got %q", err.Error())
	}
}
