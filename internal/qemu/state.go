// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

// State is the lifecycle state of a single [Command] invocation.
//
// In normal mode the transition is NotStarted, Starting, Running, Exited.
// With debug halt enabled, RunningHalted precedes Running: the virtual CPU
// sits frozen at reset until the attached debugger issues a continue. That
// continue happens inside the emulator and is not observable from the host
// process, so the host side keeps reporting RunningHalted until the process
// exits.
type State int

const (
	StateNotStarted State = iota
	StateStarting
	StateRunningHalted
	StateRunning
	StateExited
)

// String implements [fmt.Stringer].
func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not started"
	case StateStarting:
		return "starting"
	case StateRunningHalted:
		return "running (halted at reset)"
	case StateRunning:
		return "running"
	case StateExited:
		return "exited"
	default:
		return "invalid"
	}
}
