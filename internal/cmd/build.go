// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newBuildCommand(c *command) *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Compile the kernel into a bootable disk image",
		Long: `Invoke the kernel toolchain to produce a flat bootable disk image at the
deterministic path target/<target>/<profile>/bootimage-<crate>.bin. Safe to
invoke repeatedly. Toolchain diagnostics stream through unmodified and a
toolchain failure code becomes this command's exit code.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := c.spec.Build(
				cmd.Context(), c.io.Stdout, c.io.Stderr,
			)
			if err != nil {
				return err
			}

			fmt.Fprintln(c.io.Stdout, path)

			return nil
		},
	}
}
