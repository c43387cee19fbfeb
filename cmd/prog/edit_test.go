// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"runtime"
	"testing"

	"prog-cli/internal/config"
	"prog-cli/pkg/progfile"
)

func TestEditorCommand(t *testing.T) {
	tests := []struct {
		name    string
		setting string
		visual  string
		editor  string
		want    string
		wantErr bool
	}{
		{name: "setting wins", setting: "code --wait", visual: "vim", editor: "nano", want: "code --wait"},
		{name: "visual", visual: "vim", editor: "nano", want: "vim"},
		{name: "editor", editor: "nano", want: "nano"},
		{name: "blank setting ignored", setting: "  ", editor: "nano", want: "nano"},
		{name: "none", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("VISUAL", tt.visual)
			t.Setenv("EDITOR", tt.editor)

			cfg := config.DefaultConfig()
			cfg.Editor = tt.setting

			got, err := editorCommand(cfg)
			if tt.wantErr {
				if !errors.Is(err, ErrNoEditor) {
					t.Fatalf("editorCommand() error = %v, want ErrNoEditor", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("editorCommand() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("editorCommand() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEdit_OpensConfig(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("uses the POSIX true utility as editor")
	}

	cfg := config.DefaultConfig()
	cfg.Editor = "true"
	cli := newTestCLI(t, cfg)

	if err := cli.run("edit", "-p", sampleConfig(t)); err != nil {
		t.Fatalf("run() error = %v", err)
	}
}

func TestEdit_EditorFails(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("uses the POSIX false utility as editor")
	}

	cfg := config.DefaultConfig()
	cfg.Editor = "false"
	cli := newTestCLI(t, cfg)

	if err := cli.run("edit", "-p", sampleConfig(t)); err == nil {
		t.Fatal("run() expected error when the editor fails")
	}
}

func TestEdit_MissingConfig(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Editor = "true"
	cli := newTestCLI(t, cfg)

	err := cli.run("edit", "-p", t.TempDir())
	if !errors.Is(err, progfile.ErrConfigNotFound) {
		t.Fatalf("run() error = %v, want ErrConfigNotFound", err)
	}
}
