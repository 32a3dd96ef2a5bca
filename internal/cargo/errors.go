// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cargo

import (
	"errors"
	"strconv"
)

var (
	// ErrImageMissing is returned if the toolchain reported success but the
	// boot image does not exist at the deterministic path.
	ErrImageMissing = errors.New("toolchain produced no boot image")

	// ErrImageEmpty is returned if the toolchain reported success but the
	// boot image file has zero size.
	ErrImageEmpty = errors.New("toolchain produced an empty boot image")

	// ErrEmptyTargetTriple is returned if no target triple is configured.
	ErrEmptyTargetTriple = errors.New("target triple must not be empty")

	// ErrEmptyCrateName is returned if no crate name is configured and none
	// can be derived from the project directory.
	ErrEmptyCrateName = errors.New("crate name must not be empty")
)

// BuildError is returned if the toolchain build invocation failed or did not
// produce a usable image. The toolchain's own diagnostics have already been
// written to the error stream by the time this error surfaces.
type BuildError struct {
	Err      error
	ExitCode int
}

// Error implements the [error] interface.
func (e *BuildError) Error() string {
	return "build: " + e.Err.Error()
}

// Is implements the [errors.Is] interface.
func (*BuildError) Is(other error) bool {
	_, ok := other.(*BuildError)
	return ok
}

// Unwrap implements the [errors.Unwrap] interface.
func (e *BuildError) Unwrap() error {
	return e.Err
}

// CleanError is returned if the toolchain could not remove the build
// artifact tree.
type CleanError struct {
	Err      error
	ExitCode int
}

// Error implements the [error] interface.
func (e *CleanError) Error() string {
	return "clean: " + e.Err.Error()
}

// Is implements the [errors.Is] interface.
func (*CleanError) Is(other error) bool {
	_, ok := other.(*CleanError)
	return ok
}

// Unwrap implements the [errors.Unwrap] interface.
func (e *CleanError) Unwrap() error {
	return e.Err
}

func exitCodeError(name string, code int) error {
	return errors.New(name + " exited with code " + strconv.Itoa(code))
}
