// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cargo drives the external kernel toolchain.
//
// The toolchain is a black box with a narrow contract: given a target triple
// and a build profile it places a flat bootable disk image at a
// deterministic path below the project's target directory, or exits
// non-zero with diagnostics on its error stream. This package composes the
// invocations, streams the diagnostics through verbatim and verifies the
// image post-condition. It never inspects or modifies the kernel sources.
package cargo
