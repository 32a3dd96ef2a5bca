// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import "errors"

var (
	// ErrImageNotFound is returned if the boot image does not exist at the
	// given path. The launcher never builds images itself.
	ErrImageNotFound = errors.New("boot image not found")

	// ErrImageNotRegular is returned if the boot image path does not point
	// to a regular file.
	ErrImageNotRegular = errors.New("boot image is not a regular file")

	// ErrImageEmpty is returned if the boot image file has zero size and so
	// cannot contain a valid boot sector.
	ErrImageEmpty = errors.New("boot image is empty")

	// ErrArgumentCollision is returned if two [Argument]s are considered
	// equal.
	ErrArgumentCollision = errors.New("colliding args")

	// ErrGDBPortInvalid is returned if debug halt mode is requested without
	// a usable TCP port for the GDB remote endpoint.
	ErrGDBPortInvalid = errors.New("gdb port must not be 0")
)

// ArgumentError indicates an issue with an input argument.
type ArgumentError struct {
	msg string
}

// Error implements the [error] interface.
func (e *ArgumentError) Error() string {
	return "argument error: " + e.msg
}

// Is implements the [errors.Is] interface.
func (*ArgumentError) Is(other error) bool {
	_, ok := other.(*ArgumentError)
	return ok
}

// CommandError wraps any host side error occurred during Command execution.
//
// The guest's exit status is not wrapped in it. Emulator exit codes are not
// contractually meaningful and are passed through as plain data instead.
type CommandError struct {
	Err error
}

// Error implements the [error] interface.
func (e *CommandError) Error() string {
	return "qemu: " + e.Err.Error()
}

// Is implements the [errors.Is] interface.
func (*CommandError) Is(other error) bool {
	_, ok := other.(*CommandError)
	return ok
}

// Unwrap implements the [errors.Unwrap] interface.
func (e *CommandError) Unwrap() error {
	return e.Err
}
