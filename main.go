// SPDX-License-Identifier: MPL-2.0

package main

import cmd "modget-cli/cmd/modget"

func main() {
	cmd.Execute()
}
