// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bootrun

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aibor/bootrun/internal/qemu"
)

var errExtraArgFormat = errors.New("must start with \"-\"")

// ParseExtraArgs parses configured extra emulator arguments.
//
// Each entry is one argument in the form "-name" or "-name value". They are
// treated as repeatable, so the same device can be configured multiple
// times; collisions with the essential arguments surface when the command
// is built.
func ParseExtraArgs(args []string) ([]qemu.Argument, error) {
	parsed := make([]qemu.Argument, 0, len(args))

	for _, arg := range args {
		arg = strings.TrimSpace(arg)
		if arg == "" {
			continue
		}

		name, found := strings.CutPrefix(arg, "-")
		if !found {
			return nil, fmt.Errorf("%q: %w", arg, errExtraArgFormat)
		}

		name, value, _ := strings.Cut(name, " ")

		if value == "" {
			parsed = append(parsed, qemu.RepeatableArg(name))
		} else {
			parsed = append(parsed, qemu.RepeatableArg(name, value))
		}
	}

	return parsed, nil
}
