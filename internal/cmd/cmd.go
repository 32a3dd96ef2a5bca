// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cmd is the command line surface of bootrun.
//
// It exposes the four operations build, run, debug and clean plus the
// composite all, maps configuration and flags onto the bootrun spec and
// translates errors into process exit codes. Build failures carry the
// toolchain's exit code through, the emulator's exit status is never
// propagated.
package cmd

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/aibor/bootrun/internal/bootrun"
	"github.com/aibor/bootrun/internal/cargo"
	"github.com/aibor/bootrun/internal/config"
)

// IO provides input and output details for the command.
type IO struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Run is the main entry point for the CLI command.
//
// The first element of args is the program name. The returned value is
// supposed to be used with [os.Exit].
func Run(ctx context.Context, args []string, cfg IO) int {
	root := newRootCommand(cfg)
	root.SetArgs(args[1:])
	root.SetIn(cfg.Stdin)
	root.SetOut(cfg.Stdout)
	root.SetErr(cfg.Stderr)

	err := root.ExecuteContext(ctx)
	if err != nil {
		return handleError(err)
	}

	return 0
}

func handleError(err error) int {
	slog.Error(err.Error())

	// The toolchain's failure code passes through, so callers can
	// distinguish its failure modes the same way as with a direct
	// invocation.
	var buildErr *cargo.BuildError
	if errors.As(err, &buildErr) {
		if buildErr.ExitCode > 0 {
			return buildErr.ExitCode
		}

		return 1
	}

	var cleanErr *cargo.CleanError
	if errors.As(err, &cleanErr) {
		if cleanErr.ExitCode > 0 {
			return cleanErr.ExitCode
		}

		return 1
	}

	return 1
}

// command carries the state shared by all sub commands.
type command struct {
	io IO

	// Flags not part of [config.Config].
	logDebug bool
	verbose  bool

	spec *bootrun.Spec
}

func newRootCommand(cfg IO) *cobra.Command {
	c := &command{io: cfg}

	root := &cobra.Command{
		Use:   "bootrun",
		Short: "Build a bootable kernel image and run it in QEMU",
		Long: `bootrun compiles a kernel crate into a flat bootable disk image and
boots that image in QEMU. In debug mode the virtual CPU is frozen at reset
and a GDB remote endpoint is exposed, so a debugger can attach before any
guest instruction executes.`,
		Version:           readVersion(),
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}

	flags := root.PersistentFlags()
	flags.String("dir", ".", "kernel project directory")
	flags.String("target", "", "target triple to build for")
	flags.String("profile", "debug", "build profile: debug or release")
	flags.String("crate", "", "kernel crate name (default: project dir name)")
	flags.String("cargo-bin", "cargo", "cargo binary to use")
	flags.String("qemu-bin", "qemu-system-x86_64", "QEMU binary to use")
	flags.String("machine", "", "QEMU machine type to use")
	flags.String("cpu", "", "QEMU CPU type to use")
	flags.Uint64("smp", 0, "number of guest CPUs")
	flags.Uint64("memory-mb", 0, "guest memory in MB")
	flags.Bool("no-kvm", false, "disable hardware acceleration")
	flags.Uint16("gdb-port", config.DefaultGDBPort,
		"TCP port for the GDB remote endpoint in debug mode")
	flags.StringSlice("qemu-args", nil,
		"extra QEMU arguments, e.g. \"-device isa-debug-exit\"")
	flags.BoolVar(&c.verbose, "verbose", false,
		"print the QEMU command line before launching")
	flags.BoolVar(&c.logDebug, "log-debug", false, "enable debug logging")

	root.AddCommand(
		newBuildCommand(c),
		newRunCommand(c),
		newDebugCommand(c),
		newCleanCommand(c),
		newAllCommand(c),
	)

	return root
}

// setup loads the configuration with the given flags bound and prepares the
// shared spec. It runs once before any sub command.
func (c *command) setup(cmd *cobra.Command, _ []string) error {
	setupLogging(c.io.Stderr, c.logDebug)

	flags := cmd.Root().PersistentFlags()

	dir, err := flags.GetString("dir")
	if err != nil {
		return err
	}

	cfg, err := config.Load(dir, flags)
	if err != nil {
		return err
	}

	spec, err := bootrun.NewSpec(cfg)
	if err != nil {
		return err
	}

	spec.Qemu.Verbose = c.verbose
	c.spec = spec

	return nil
}
