// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func argStrings(t *testing.T, spec CommandSpec) []string {
	t.Helper()

	args, err := BuildArgumentStrings(spec.arguments())
	require.NoError(t, err)

	return args
}

func TestCommandSpecArguments(t *testing.T) {
	t.Run("image as raw boot drive", func(t *testing.T) {
		args := argStrings(t, CommandSpec{
			Image: "/some/bootimage-kernel.bin",
			NoKVM: true,
		})

		assert.Contains(t, args, "-drive")
		assert.Contains(t, args, "format=raw,file=/some/bootimage-kernel.bin")
	})

	t.Run("optional machine args", func(t *testing.T) {
		args := argStrings(t, CommandSpec{
			Image:   "img.bin",
			Machine: "q35",
			CPU:     "max",
			SMP:     2,
			Memory:  256,
			NoKVM:   true,
		})

		assert.Subset(t, args, []string{
			"-machine", "q35",
			"-cpu", "max",
			"-smp", "2",
			"-m", "256",
		})
		assert.NotContains(t, args, "-enable-kvm")
	})

	t.Run("kvm enabled unless disabled", func(t *testing.T) {
		args := argStrings(t, CommandSpec{Image: "img.bin"})

		assert.Contains(t, args, "-enable-kvm")
	})
}

// The freeze-at-reset flag and the gdbstub endpoint must always be enabled
// together, never just one of them.
func TestCommandSpecDebugHaltFlagPair(t *testing.T) {
	tests := []struct {
		name      string
		debugHalt bool
	}{
		{name: "disabled", debugHalt: false},
		{name: "enabled", debugHalt: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := CommandSpec{
				Image:     "img.bin",
				NoKVM:     true,
				DebugHalt: tt.debugHalt,
				GDBPort:   4321,
			}

			args := argStrings(t, spec)

			if tt.debugHalt {
				assert.Contains(t, args, "-S")
				assert.Contains(t, args, "-gdb")
				assert.Contains(t, args, "tcp::4321")
			} else {
				assert.NotContains(t, args, "-S")
				assert.NotContains(t, args, "-gdb")
			}
		})
	}
}

func TestCommandSpecAddDefaults(t *testing.T) {
	spec := CommandSpec{}
	spec.AddDefaults()

	assert.Equal(t, "qemu-system-x86_64", spec.Executable)
	assert.EqualValues(t, DefaultGDBPort, spec.GDBPort)
}

func TestCommandSpecValidate(t *testing.T) {
	existing := filepath.Join(t.TempDir(), "bootimage-kernel.bin")
	err := os.WriteFile(existing, []byte{0x55, 0xaa}, 0o600)
	require.NoError(t, err)

	empty := filepath.Join(t.TempDir(), "empty.bin")
	err = os.WriteFile(empty, nil, 0o600)
	require.NoError(t, err)

	tests := []struct {
		name        string
		spec        CommandSpec
		expectedErr error
	}{
		{
			name: "valid",
			spec: CommandSpec{
				Executable: "qemu-system-x86_64",
				Image:      existing,
			},
		},
		{
			name:        "empty executable",
			spec:        CommandSpec{Image: existing},
			expectedErr: &ArgumentError{},
		},
		{
			name:        "empty image path",
			spec:        CommandSpec{Executable: "q"},
			expectedErr: &ArgumentError{},
		},
		{
			name: "image does not exist",
			spec: CommandSpec{
				Executable: "q",
				Image:      filepath.Join(t.TempDir(), "nope.bin"),
			},
			expectedErr: ErrImageNotFound,
		},
		{
			name: "image is empty",
			spec: CommandSpec{
				Executable: "q",
				Image:      empty,
			},
			expectedErr: ErrImageEmpty,
		},
		{
			name: "image is a directory",
			spec: CommandSpec{
				Executable: "q",
				Image:      t.TempDir(),
			},
			expectedErr: ErrImageNotRegular,
		},
		{
			name: "debug halt without port",
			spec: CommandSpec{
				Executable: "q",
				Image:      existing,
				DebugHalt:  true,
			},
			expectedErr: ErrGDBPortInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.Validate()

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}

			assert.NoError(t, err)
		})
	}
}
