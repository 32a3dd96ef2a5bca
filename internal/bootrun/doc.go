// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package bootrun composes the image builder and the emulator launcher.
//
// Control flow is strictly sequential: a build completes before a launch
// starts, a launch never triggers a rebuild, and clean is independent of
// both. Both operations block until the invoked external process
// terminates.
package bootrun
