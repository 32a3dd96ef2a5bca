// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cargo

import "path/filepath"

// Profile names the two build profiles the toolchain knows.
const (
	ProfileDebug   = "debug"
	ProfileRelease = "release"
)

// Spec defines a toolchain invocation for one kernel project.
type Spec struct {
	// Path to the cargo binary.
	Executable string

	// Project directory containing the kernel crate. The build artifact
	// tree lives in its "target" sub directory.
	Dir string

	// Target triple the kernel is compiled for. Must name a previously
	// configured build target, the toolchain validates it.
	TargetTriple string

	// Build profile, either "debug" or "release".
	Profile string

	// Name of the kernel crate. Determines the boot image file name.
	CrateName string

	// Extra arguments appended to the build invocation.
	ExtraArgs []string
}

// AddDefaults fills unset fields. The crate name falls back to the project
// directory's base name, matching the toolchain's default crate naming.
func (s *Spec) AddDefaults() {
	if s.Executable == "" {
		s.Executable = "cargo"
	}

	if s.Dir == "" {
		s.Dir = "."
	}

	if s.Profile == "" {
		s.Profile = ProfileDebug
	}

	if s.CrateName == "" {
		abs, err := filepath.Abs(s.Dir)
		if err == nil {
			s.CrateName = filepath.Base(abs)
		}
	}
}

// Validate checks that the spec can address a build target and an image
// path. Triple and profile contents are not validated beyond that, the
// toolchain owns their semantics.
func (s *Spec) Validate() error {
	if s.TargetTriple == "" {
		return ErrEmptyTargetTriple
	}

	if s.CrateName == "" {
		return ErrEmptyCrateName
	}

	return nil
}

// ImagePath returns the deterministic path of the bootable disk image for
// this spec.
//
// It is the single source of the path convention shared by builder and
// launcher: target/<triple>/<profile>/bootimage-<crate>.bin below the
// project directory. The path is stable across repeated builds with
// unchanged inputs.
func (s *Spec) ImagePath() string {
	return filepath.Join(
		s.Dir,
		"target",
		s.TargetTriple,
		s.Profile,
		"bootimage-"+s.CrateName+".bin",
	)
}

// buildArgs compiles the argument list for the build invocation.
func (s *Spec) buildArgs() []string {
	args := []string{"bootimage", "--target", s.TargetTriple}

	if s.Profile == ProfileRelease {
		args = append(args, "--release")
	}

	args = append(args, s.ExtraArgs...)

	return args
}
