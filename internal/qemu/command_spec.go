// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import (
	"os"
	"strconv"
)

// DefaultGDBPort is the TCP port QEMU's gdbstub listens on if not told
// otherwise. It matches QEMU's own "-s" shorthand.
const DefaultGDBPort = 1234

const guestArch = "amd64"

// CommandSpec defines the parameters for a [Command].
type CommandSpec struct {
	// Path to the qemu-system binary.
	Executable string

	// Path to the flat bootable disk image. It is attached as raw-format
	// boot drive. The image must exist already, the launcher never builds
	// it.
	Image string

	// QEMU machine type to use. Depends on the QEMU binary used. Empty
	// leaves the binary's default machine in place.
	Machine string

	// CPU type to use. Depends on machine type and QEMU binary used.
	CPU string

	// Number of CPUs for the guest.
	SMP uint64

	// Memory for the machine in MB.
	Memory uint64

	// Disable KVM support.
	NoKVM bool

	// DebugHalt freezes the virtual CPU at reset and exposes a GDB remote
	// endpoint on GDBPort. Both effects are enabled together, never just
	// one, so a debugger can always attach before the first instruction.
	DebugHalt bool

	// TCP port the GDB remote endpoint listens on in debug halt mode.
	GDBPort uint16

	// ExtraArgs are extra arguments that are passed to the QEMU command.
	// They must not interfere with the essential arguments set by the
	// command itself or an error will be returned on [NewCommand].
	ExtraArgs []Argument

	// Print the composed QEMU command line before running.
	Verbose bool
}

// AddDefaults fills unset fields with defaults for booting a raw x86 boot
// image. KVM is probed and disabled if unavailable.
func (s *CommandSpec) AddDefaults() {
	if s.Executable == "" {
		s.Executable = "qemu-system-x86_64"
	}

	if s.GDBPort == 0 {
		s.GDBPort = DefaultGDBPort
	}

	if !s.NoKVM {
		s.NoKVM = !KVMAvailable(guestArch)
	}
}

// Validate checks the spec for launchability.
//
// The boot image is a strict precondition. It is checked here so an
// unusable spec fails before any process is spawned.
func (s *CommandSpec) Validate() error {
	if s.Executable == "" {
		return &ArgumentError{"qemu executable must not be empty"}
	}

	if s.Image == "" {
		return &ArgumentError{"boot image path must not be empty"}
	}

	stat, err := os.Stat(s.Image)
	if err != nil {
		return ErrImageNotFound
	}

	if !stat.Mode().IsRegular() {
		return ErrImageNotRegular
	}

	if stat.Size() == 0 {
		return ErrImageEmpty
	}

	if s.DebugHalt && s.GDBPort == 0 {
		return ErrGDBPortInvalid
	}

	return nil
}

// arguments compiles the argument list for the QEMU command.
func (s *CommandSpec) arguments() []Argument {
	args := []Argument{
		RepeatableArg("drive", "format=raw", "file="+s.Image),
	}

	if s.Machine != "" {
		args = append(args, UniqueArg("machine", s.Machine))
	}

	if s.CPU != "" {
		args = append(args, UniqueArg("cpu", s.CPU))
	}

	if s.SMP != 0 {
		args = append(args, UniqueArg("smp", strconv.FormatUint(s.SMP, 10)))
	}

	if s.Memory != 0 {
		args = append(args, UniqueArg("m", strconv.FormatUint(s.Memory, 10)))
	}

	if !s.NoKVM {
		args = append(args, UniqueArg("enable-kvm"))
	}

	// Do not load any user config files.
	args = append(args, UniqueArg("no-user-config"))

	if s.DebugHalt {
		// Flag pair for attaching a debugger before the first instruction.
		// Always added together: the gdbstub endpoint and the frozen CPU.
		args = append(args,
			UniqueArg("gdb", "tcp::"+strconv.Itoa(int(s.GDBPort))),
			UniqueArg("S"),
		)
	}

	args = append(args, s.ExtraArgs...)

	return args
}
