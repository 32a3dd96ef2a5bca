// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/unix"
)

// terminateGracePeriod is the time the spawned QEMU process is given to shut
// down after SIGTERM before it is killed. It bounds how long a canceled run
// can leave a child process behind.
const terminateGracePeriod = 10 * time.Second

// Command is a single QEMU command that can be run once.
type Command struct {
	name      string
	args      []string
	debugHalt bool
	gdbPort   uint16
	verbose   bool

	state State
}

// NewCommand validates the given [CommandSpec] and compiles it into a
// runnable [Command].
//
// It fails without spawning anything if the spec is not launchable, most
// notably if the boot image does not exist.
func NewCommand(spec CommandSpec) (*Command, error) {
	err := spec.Validate()
	if err != nil {
		return nil, err
	}

	args, err := BuildArgumentStrings(spec.arguments())
	if err != nil {
		return nil, err
	}

	cmd := &Command{
		name:      spec.Executable,
		args:      args,
		debugHalt: spec.DebugHalt,
		gdbPort:   spec.GDBPort,
		verbose:   spec.Verbose,
		state:     StateNotStarted,
	}

	return cmd, nil
}

// String implements [fmt.Stringer].
func (c *Command) String() string {
	return c.name + " " + strings.Join(c.args, " ")
}

// State returns the current lifecycle state of the command.
func (c *Command) State() State {
	return c.state
}

// Run starts the QEMU process in the foreground and blocks until it exits.
//
// The process's exit code is returned as data. A non-zero or
// signal-terminated exit of the emulator is not an error, emulator exit
// codes are not contractually meaningful. An error is returned only if the
// process could not be spawned or waited for.
//
// If ctx is canceled, the child is sent SIGTERM and killed after a bounded
// grace period, so no orphaned emulator process survives the caller.
func (c *Command) Run(
	ctx context.Context,
	stdin io.Reader,
	stdout, stderr io.Writer,
) (int, error) {
	cmd := exec.CommandContext(ctx, c.name, c.args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.Cancel = func() error {
		return cmd.Process.Signal(unix.SIGTERM)
	}
	cmd.WaitDelay = terminateGracePeriod

	if c.verbose {
		fmt.Fprintln(stderr, cmd.String())
	}

	c.state = StateStarting

	notifierGroup := errgroup.Group{}
	notifierStop := func() {}

	if c.debugHalt {
		notifier := gdbNotifier{
			port: c.gdbPort,
			out:  stderr,
		}

		var notifierCtx context.Context

		notifierCtx, notifierStop = context.WithCancel(ctx)
		defer notifierStop()

		notifierGroup.Go(func() error {
			return notifier.run(notifierCtx)
		})
	}

	err := cmd.Start()
	if err != nil {
		c.state = StateExited

		notifierStop()
		_ = notifierGroup.Wait()

		return -1, &CommandError{Err: fmt.Errorf("start: %w", err)}
	}

	if c.debugHalt {
		c.state = StateRunningHalted
	} else {
		c.state = StateRunning
	}

	err = cmd.Wait()
	c.state = StateExited

	notifierStop()

	notifierErr := notifierGroup.Wait()

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// Pass through, covers signal-terminated exits as well.
		return exitErr.ExitCode(), notifierErr
	}

	if err != nil {
		return -1, &CommandError{Err: fmt.Errorf("wait: %w", err)}
	}

	return cmd.ProcessState.ExitCode(), notifierErr
}
