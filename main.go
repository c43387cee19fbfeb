// SPDX-License-Identifier: MPL-2.0

package main

import cmd "prog-cli/cmd/prog"

func main() {
	cmd.Execute()
}
