// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package qemu boots a flat bootable disk image in QEMU.
//
// A [CommandSpec] describes a single run: the image is attached as a
// raw-format boot drive and QEMU runs in the foreground until the guest
// shuts down or the user closes the emulator. With [CommandSpec.DebugHalt]
// set, the virtual CPU is frozen at reset and a GDB remote endpoint is
// exposed, so a debugger can attach before the first guest instruction.
package qemu
