// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"github.com/spf13/cobra"
)

func newDebugCommand(c *command) *cobra.Command {
	return &cobra.Command{
		Use:   "debug",
		Short: "Build, then boot with the CPU frozen at reset for a debugger",
		Long: `Build the boot image and launch QEMU with the virtual CPU halted at the
first instruction of reset and a GDB remote endpoint exposed. No guest code
executes until a debugger attaches and issues a continue. Blocks until the
emulator exits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := c.spec.Build(
				cmd.Context(), c.io.Stdout, c.io.Stderr,
			)
			if err != nil {
				return err
			}

			_, err = c.spec.Launch(
				cmd.Context(),
				path,
				true,
				c.io.Stdin, c.io.Stdout, c.io.Stderr,
			)

			return err
		},
	}
}
