// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"errors"
	"testing"
)

func TestNewErrorResult(t *testing.T) {
	t.Parallel()

	testErr := errors.New("test error")
	result := NewErrorResult(1, testErr)

	if result.ExitCode != 1 {
		t.Errorf("expected ExitCode 1, got %d", result.ExitCode)
	}
	if !errors.Is(result.Error, testErr) {
		t.Errorf("expected error %v, got %v", testErr, result.Error)
	}
	if result.Success() {
		t.Error("error result should not report success")
	}
}

func TestNewSuccessResult(t *testing.T) {
	t.Parallel()

	result := NewSuccessResult()

	if result.ExitCode != 0 || result.Error != nil {
		t.Errorf("expected zero result, got %+v", result)
	}
	if !result.Success() {
		t.Error("success result should report success")
	}
}

func TestNewExitCodeResult(t *testing.T) {
	t.Parallel()

	result := NewExitCodeResult(42)

	if result.ExitCode != 42 {
		t.Errorf("expected ExitCode 42, got %d", result.ExitCode)
	}
	if result.Error != nil {
		t.Errorf("expected nil error, got %v", result.Error)
	}
	if result.Success() {
		t.Error("non-zero exit should not report success")
	}
}

func TestExitCode_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code ExitCode
		want bool
	}{
		{0, true},
		{1, true},
		{255, true},
		{-1, false},
		{256, false},
	}

	for _, tt := range tests {
		ok, errs := tt.code.IsValid()
		if ok != tt.want {
			t.Errorf("ExitCode(%d).IsValid() = %v, want %v", tt.code, ok, tt.want)
		}
		if !ok {
			if len(errs) != 1 || !errors.Is(errs[0], ErrInvalidExitCode) {
				t.Errorf("ExitCode(%d).IsValid() errors = %v, want one ErrInvalidExitCode", tt.code, errs)
			}
		}
	}
}

func TestExitCode_String(t *testing.T) {
	t.Parallel()

	if got := ExitCode(127).String(); got != "127" {
		t.Errorf("String() = %q, want %q", got, "127")
	}
	if !ExitCode(0).IsSuccess() || ExitCode(2).IsSuccess() {
		t.Error("IsSuccess() should be true only for 0")
	}
}

func TestResult_LastErrLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		errOutput string
		want      string
	}{
		{"empty", "", ""},
		{"single", "cat: x: No such file or directory\n", "cat: x: No such file or directory"},
		{"trailing blanks", "first\n  second  \n\n \n", "second"},
		{"no newline", "a\nb", "b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := &Result{ExitCode: 1, ErrOutput: tt.errOutput}
			if got := r.LastErrLine(); got != tt.want {
				t.Errorf("LastErrLine() = %q, want %q", got, tt.want)
			}
		})
	}
}
