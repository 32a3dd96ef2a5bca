// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"github.com/spf13/cobra"
)

func newCleanCommand(c *command) *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove the build artifact tree",
		Long: `Remove all toolchain-produced artifacts of the project. Cleaning an
already clean tree succeeds. If any part of the tree cannot be removed the
command fails and the toolchain reports what could not be removed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.spec.Clean(cmd.Context(), c.io.Stdout, c.io.Stderr)
		},
	}
}

func newAllCommand(c *command) *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "Build the image, then run it",
		Long: `Run build and run in sequence. Stops at the first failing step, so the
emulator is never launched after a failed build.`,
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
				false,
				c.io.Stdin, c.io.Stdout, c.io.Stderr,
			)

			return err
		},
	}
}
