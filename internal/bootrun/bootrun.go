// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bootrun

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aibor/bootrun/internal/cargo"
	"github.com/aibor/bootrun/internal/config"
	"github.com/aibor/bootrun/internal/qemu"
)

// Spec describes a full build-and-launch setup for one kernel project.
//
// It is split into the parameters of the toolchain invocation and the
// parameters of the emulator invocation. The deterministic image path
// derived from the cargo part is the only thing both sides share.
type Spec struct {
	Cargo cargo.Spec
	Qemu  Qemu
}

// Qemu specifies the input for creating a new [qemu.Command].
type Qemu struct {
	Executable string
	Machine    string
	CPU        string
	SMP        uint64
	Memory     uint64
	NoKVM      bool
	GDBPort    uint16
	ExtraArgs  []qemu.Argument
	Verbose    bool
}

// NewSpec builds a [Spec] from the loaded configuration.
func NewSpec(cfg *config.Config) (*Spec, error) {
	extraArgs, err := ParseExtraArgs(cfg.QemuArgs)
	if err != nil {
		return nil, fmt.Errorf("qemu args: %w", err)
	}

	spec := &Spec{
		Cargo: cargo.Spec{
			Executable:   cfg.CargoBin,
			Dir:          cfg.Dir,
			TargetTriple: cfg.Target,
			Profile:      cfg.Profile,
			CrateName:    cfg.Crate,
		},
		Qemu: Qemu{
			Executable: cfg.QemuBin,
			Machine:    cfg.Machine,
			CPU:        cfg.CPU,
			SMP:        cfg.SMP,
			Memory:     cfg.MemoryMB,
			NoKVM:      cfg.NoKVM,
			GDBPort:    cfg.GDBPort,
			ExtraArgs:  extraArgs,
		},
	}

	spec.Cargo.AddDefaults()

	return spec, nil
}

// ImagePath returns the deterministic boot image path for the spec.
func (s *Spec) ImagePath() string {
	return s.Cargo.ImagePath()
}

// Build produces the bootable disk image and returns its path.
func (s *Spec) Build(ctx context.Context, stdout, stderr io.Writer) (string, error) {
	slog.Debug("Building boot image",
		slog.String("target", s.Cargo.TargetTriple),
		slog.String("profile", s.Cargo.Profile))

	path, err := cargo.Build(ctx, s.Cargo, stdout, stderr)
	if err != nil {
		return "", err
	}

	slog.Debug("Boot image ready", slog.String("path", path))

	return path, nil
}

// Launch boots the image at imagePath in the emulator and blocks until the
// emulator process exits.
//
// With debugHalt set, the virtual CPU is frozen at reset and the GDB remote
// endpoint is exposed. The emulator's exit status is returned as data, it is
// not an error and not meaningful to the orchestration.
func (s *Spec) Launch(
	ctx context.Context,
	imagePath string,
	debugHalt bool,
	stdin io.Reader,
	stdout, stderr io.Writer,
) (int, error) {
	cmdSpec := qemu.CommandSpec{
		Executable: s.Qemu.Executable,
		Image:      imagePath,
		Machine:    s.Qemu.Machine,
		CPU:        s.Qemu.CPU,
		SMP:        s.Qemu.SMP,
		Memory:     s.Qemu.Memory,
		NoKVM:      s.Qemu.NoKVM,
		DebugHalt:  debugHalt,
		GDBPort:    s.Qemu.GDBPort,
		ExtraArgs:  s.Qemu.ExtraArgs,
		Verbose:    s.Qemu.Verbose,
	}

	cmdSpec.AddDefaults()

	cmd, err := qemu.NewCommand(cmdSpec)
	if err != nil {
		return -1, fmt.Errorf("new qemu command: %w", err)
	}

	slog.Debug("QEMU command", slog.String("command", cmd.String()))

	rc, err := cmd.Run(ctx, stdin, stdout, stderr)
	if err != nil {
		return rc, fmt.Errorf("qemu run: %w", err)
	}

	slog.Debug("Emulator exited", slog.Int("status", rc))

	return rc, nil
}

// Clean removes the entire build artifact tree.
func (s *Spec) Clean(ctx context.Context, stdout, stderr io.Writer) error {
	slog.Debug("Cleaning build artifact tree", slog.String("dir", s.Cargo.Dir))

	return cargo.Clean(ctx, s.Cargo, stdout, stderr)
}
