// SPDX-License-Identifier: MPL-2.0

//go:build windows

package runtime

import (
	"errors"
	"io"
	"os/exec"
)

// runWithPty is not supported on Windows.
func runWithPty(_ *exec.Cmd, _ io.Writer) error {
	return errors.New("pseudo-terminals are not supported on Windows")
}
