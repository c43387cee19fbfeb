// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestTailBuffer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		writes []string
		want   string
	}{
		{"under limit", []string{"ab", "cd"}, "abcd"},
		{"exact limit", []string{"abcd", "ef"}, "bcdef"},
		{"drops oldest", []string{"abc", "def", "g"}, "cdefg"},
		{"single oversized write", []string{"abcdefgh"}, "defgh"},
		{"oversized after content", []string{"xy", "abcdefgh"}, "defgh"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tail := &tailBuffer{max: 5}
			for _, w := range tt.writes {
				n, err := tail.Write([]byte(w))
				if err != nil || n != len(w) {
					t.Fatalf("Write(%q) = %d, %v", w, n, err)
				}
			}
			if got := tail.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTeeStderr(t *testing.T) {
	t.Parallel()

	var stream bytes.Buffer
	w, tail := teeStderr(&stream)
	big := strings.Repeat("x", errTailSize) + "last line\n"
	if _, err := w.Write([]byte(big)); err != nil {
		t.Fatal(err)
	}

	if stream.String() != big {
		t.Error("the stream should receive every byte")
	}
	if got := tail.String(); len(got) != errTailSize || !strings.HasSuffix(got, "last line\n") {
		t.Errorf("tail kept %d bytes ending %q", len(got), got[len(got)-10:])
	}

	w, tail = teeStderr(nil)
	if _, err := w.Write([]byte("only tail")); err != nil {
		t.Fatal(err)
	}
	if tail.String() != "only tail" {
		t.Errorf("tail = %q, want %q", tail.String(), "only tail")
	}
}

func TestAttachErrOutput(t *testing.T) {
	t.Parallel()

	tail := &tailBuffer{max: errTailSize}
	_, _ = tail.Write([]byte("boom\n"))

	if got := attachErrOutput(NewSuccessResult(), tail); got.ErrOutput != "" {
		t.Errorf("success result ErrOutput = %q, want empty", got.ErrOutput)
	}
	if got := attachErrOutput(NewExitCodeResult(2), tail); got.ErrOutput != "boom\n" {
		t.Errorf("failed result ErrOutput = %q, want %q", got.ErrOutput, "boom\n")
	}
}

func TestExitResult(t *testing.T) {
	t.Parallel()

	if got := exitResult(nil); !got.Success() {
		t.Errorf("exitResult(nil) = %+v, want success", got)
	}

	startErr := errors.New("permission denied")
	got := exitResult(startErr)
	if got.ExitCode != 1 || !errors.Is(got.Error, startErr) {
		t.Errorf("exitResult(start error) = %+v, want exit 1 wrapping the error", got)
	}
}
