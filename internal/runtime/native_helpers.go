// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"errors"
	"io"
	"os/exec"
)

// errTailSize bounds the standard error kept for a failed command.
const errTailSize = 4 << 10

// tailBuffer is an io.Writer keeping only the last max bytes written to it.
type tailBuffer struct {
	buf []byte
	max int
}

// teeStderr returns a writer that copies to w, which may be nil, and to a
// tail buffer recording the end of the stream.
func teeStderr(w io.Writer) (io.Writer, *tailBuffer) {
	tail := &tailBuffer{max: errTailSize}
	if w == nil {
		return tail, tail
	}
	return io.MultiWriter(w, tail), tail
}

func (t *tailBuffer) Write(p []byte) (int, error) {
	n := len(p)
	if n >= t.max {
		t.buf = append(t.buf[:0], p[n-t.max:]...)
		return n, nil
	}
	if over := len(t.buf) + n - t.max; over > 0 {
		t.buf = append(t.buf[:0], t.buf[over:]...)
	}
	t.buf = append(t.buf, p...)
	return n, nil
}

func (t *tailBuffer) String() string {
	return string(t.buf)
}

// attachErrOutput records the stderr tail on a failed result.
func attachErrOutput(result *Result, tail *tailBuffer) *Result {
	if !result.Success() && tail != nil {
		result.ErrOutput = tail.String()
	}
	return result
}

// exitResult turns the error of a finished exec.Cmd into a Result. A process
// that ran and exited non-zero gives its exit code and no error; a process
// that could not run, or was killed by a signal, gives exit code 1 and the error.
func exitResult(err error) *Result {
	if err == nil {
		return &Result{}
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return &Result{ExitCode: 1, Error: err}
	}

	code := ExitCode(exitErr.ExitCode())
	if ok, errs := code.IsValid(); !ok {
		return &Result{ExitCode: 1, Error: errors.Join(err, errs[0])}
	}
	return &Result{ExitCode: code}
}
