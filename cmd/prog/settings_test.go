// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"strings"
	"testing"

	"prog-cli/internal/config"
	"prog-cli/pkg/progfile"
)

func TestSettingsShow(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.DefaultRuntime = config.RuntimeVirtual
	cfg.DefaultFormat = progfile.FormatTOML
	cfg.Editor = "nvim"
	cli := newTestCLI(t, cfg)

	if err := cli.run("settings", "show", "--settings", "missing.cue"); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	out := cli.stdout.String()
	for _, want := range []string{"Current Settings", "(using defaults)", "default_runtime", "virtual", "toml", "nvim", "tty"} {
		if !strings.Contains(out, want) {
			t.Errorf("settings show output missing %q:\n%s", want, out)
		}
	}
}

func TestSettingsDump(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.DefaultTemplate = progfile.TemplateCargo
	cli := newTestCLI(t, cfg)

	if err := cli.run("settings", "dump"); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if got, want := cli.stdout.String(), config.GenerateCUE(cfg); got != want {
		t.Errorf("settings dump = %q, want %q", got, want)
	}
}

func TestSettings_LoadError(t *testing.T) {
	t.Parallel()

	loadErr := errors.New("broken settings")
	cli := newTestCLI(t, nil)
	cli.app.Config = staticConfig{err: loadErr}

	for _, sub := range []string{"show", "dump"} {
		if err := cli.run("settings", sub); !errors.Is(err, loadErr) {
			t.Errorf("settings %s error = %v, want %v", sub, err, loadErr)
		}
	}
}
