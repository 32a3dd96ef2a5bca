// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cargo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"golang.org/x/sys/unix"
)

// terminateGracePeriod is the time a spawned toolchain process is given to
// shut down after SIGTERM before it is killed.
const terminateGracePeriod = 10 * time.Second

// Build runs the toolchain build invocation for the given [Spec] and blocks
// until it finishes.
//
// On success the bootable disk image exists at [Spec.ImagePath] and that
// path is returned. The toolchain's output streams through to the given
// writers unmodified. The toolchain is assumed to write its image
// atomically; since that is its guarantee and not ours, existence and
// non-zero size are verified as a post-condition before success is
// reported.
//
// Canceling ctx terminates the toolchain process within a bounded grace
// period.
func Build(
	ctx context.Context,
	spec Spec,
	stdout, stderr io.Writer,
) (string, error) {
	spec.AddDefaults()

	err := spec.Validate()
	if err != nil {
		return "", &BuildError{Err: err}
	}

	err = runToolchain(ctx, spec, spec.buildArgs(), stdout, stderr)
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code := exitErr.ExitCode()

			return "", &BuildError{
				Err:      exitCodeError("toolchain", code),
				ExitCode: code,
			}
		}

		return "", &BuildError{Err: err, ExitCode: -1}
	}

	imagePath := spec.ImagePath()

	err = verifyImage(imagePath)
	if err != nil {
		return "", &BuildError{Err: err, ExitCode: -1}
	}

	return imagePath, nil
}

// Clean removes the entire build artifact tree of the project by running the
// toolchain's own clean invocation.
//
// The toolchain scopes it to the project's target directory, shared caches
// are not touched. Cleaning an already clean tree succeeds trivially. If any
// part of the tree cannot be removed, the toolchain exits non-zero with the
// paths it could not remove on its error stream and a [CleanError] is
// returned.
func Clean(ctx context.Context, spec Spec, stdout, stderr io.Writer) error {
	spec.AddDefaults()

	err := runToolchain(ctx, spec, []string{"clean"}, stdout, stderr)
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code := exitErr.ExitCode()

			return &CleanError{
				Err:      exitCodeError("toolchain", code),
				ExitCode: code,
			}
		}

		return &CleanError{Err: err, ExitCode: -1}
	}

	return nil
}

func runToolchain(
	ctx context.Context,
	spec Spec,
	args []string,
	stdout, stderr io.Writer,
) error {
	cmd := exec.CommandContext(ctx, spec.Executable, args...)
	cmd.Dir = spec.Dir
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.Cancel = func() error {
		return cmd.Process.Signal(unix.SIGTERM)
	}
	cmd.WaitDelay = terminateGracePeriod

	err := cmd.Run()
	if err != nil {
		return fmt.Errorf("%s: %w", spec.Executable, err)
	}

	return nil
}

// verifyImage checks the builder's post-condition: the image exists and is
// a non-empty regular file.
func verifyImage(path string) error {
	stat, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrImageMissing, path)
		}

		return fmt.Errorf("stat image: %w", err)
	}

	if !stat.Mode().IsRegular() || stat.Size() == 0 {
		return fmt.Errorf("%w: %s", ErrImageEmpty, path)
	}

	return nil
}
