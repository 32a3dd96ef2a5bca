// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"github.com/spf13/cobra"
)

func newRunCommand(c *command) *cobra.Command {
	return &cobra.Command{
		Use:     "run",
		Aliases: []string{"qemu"},
		Short:   "Boot the previously built image in QEMU",
		Long: `Launch QEMU with the boot image attached as raw-format boot drive and
block until the emulator exits. The image must have been built before, run
never triggers a build. The emulator's own exit status is not propagated as
this command's exit code.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := c.spec.Launch(
				cmd.Context(),
				c.spec.ImagePath(),
				false,
				c.io.Stdin, c.io.Stdout, c.io.Stderr,
			)

			return err
		},
	}
}
