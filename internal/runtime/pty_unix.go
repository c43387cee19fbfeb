// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package runtime

import (
	"errors"
	"io"
	"os/exec"
	"syscall"

	"github.com/creack/pty"
)

// runWithPty starts cmd on a new pseudo-terminal and copies everything the
// terminal prints to out until the program exits.
func runWithPty(cmd *exec.Cmd, out io.Writer) error {
	ptmx, err := pty.Start(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = ptmx.Close() }()

	// Reading the master side fails with EIO once the child closes the
	// terminal; that is the normal end of output on Linux.
	if _, err := io.Copy(out, ptmx); err != nil && !errors.Is(err, syscall.EIO) {
		_ = cmd.Wait()
		return err
	}
	return cmd.Wait()
}
