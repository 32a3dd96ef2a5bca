// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cargo_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aibor/bootrun/internal/cargo"
)

const (
	testTriple = "x86_64-testkernel"
	testCrate  = "testkernel"
)

// writeToolchain writes an executable shell script standing in for the
// cargo binary, so the toolchain contract can be exercised without a real
// compiler.
func writeToolchain(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "cargo-stub")
	err := os.WriteFile(path, []byte("#!/bin/sh\n"+content+"\n"), 0o755)
	require.NoError(t, err)

	return path
}

func newSpec(t *testing.T, toolchain string) cargo.Spec {
	t.Helper()

	return cargo.Spec{
		Executable:   toolchain,
		Dir:          t.TempDir(),
		TargetTriple: testTriple,
		CrateName:    testCrate,
	}
}

func imageScript(profile string) string {
	dir := filepath.Join("target", testTriple, profile)
	file := filepath.Join(dir, "bootimage-"+testCrate+".bin")

	return "mkdir -p " + dir + "\nprintf 'boot' > " + file
}

func TestBuild(t *testing.T) {
	spec := newSpec(t, writeToolchain(t, imageScript("debug")))

	var stdout, stderr bytes.Buffer

	path, err := cargo.Build(testContext(t), spec, &stdout, &stderr)
	require.NoError(t, err)

	assert.Equal(t, spec.ImagePath(), path)

	stat, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, stat.Size())
}

func TestBuildIsRepeatable(t *testing.T) {
	spec := newSpec(t, writeToolchain(t, imageScript("debug")))

	var stdout, stderr bytes.Buffer

	first, err := cargo.Build(testContext(t), spec, &stdout, &stderr)
	require.NoError(t, err)

	second, err := cargo.Build(testContext(t), spec, &stdout, &stderr)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestBuildFailures(t *testing.T) {
	tests := []struct {
		name             string
		script           string
		expectedErr      error
		expectedExitCode int
	}{
		{
			name:             "toolchain exits non-zero",
			script:           "echo 'error: build failed' >&2\nexit 42",
			expectedExitCode: 42,
		},
		{
			name:             "no image produced",
			script:           "exit 0",
			expectedErr:      cargo.ErrImageMissing,
			expectedExitCode: -1,
		},
		{
			name: "empty image produced",
			script: "mkdir -p target/" + testTriple + "/debug\n" +
				"touch target/" + testTriple + "/debug/bootimage-" +
				testCrate + ".bin",
			expectedErr:      cargo.ErrImageEmpty,
			expectedExitCode: -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := newSpec(t, writeToolchain(t, tt.script))

			var stdout, stderr bytes.Buffer

			_, err := cargo.Build(testContext(t), spec, &stdout, &stderr)

			var buildErr *cargo.BuildError
			require.ErrorAs(t, err, &buildErr)
			assert.Equal(t, tt.expectedExitCode, buildErr.ExitCode)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			}
		})
	}
}

// The toolchain's diagnostics pass through verbatim.
func TestBuildStreamsDiagnostics(t *testing.T) {
	spec := newSpec(t, writeToolchain(
		t, "echo 'compiling testkernel'\necho 'warning: unused' >&2\nexit 1",
	))

	var stdout, stderr bytes.Buffer

	_, err := cargo.Build(testContext(t), spec, &stdout, &stderr)
	require.ErrorIs(t, err, &cargo.BuildError{})

	assert.Equal(t, "compiling testkernel\n", stdout.String())
	assert.Equal(t, "warning: unused\n", stderr.String())
}

func TestBuildInvalidSpec(t *testing.T) {
	spec := cargo.Spec{
		Executable: writeToolchain(t, "exit 0"),
		Dir:        t.TempDir(),
		CrateName:  testCrate,
	}

	var stdout, stderr bytes.Buffer

	_, err := cargo.Build(testContext(t), spec, &stdout, &stderr)

	require.ErrorIs(t, err, cargo.ErrEmptyTargetTriple)
	require.ErrorIs(t, err, &cargo.BuildError{})
}

func TestClean(t *testing.T) {
	t.Run("removes artifact tree", func(t *testing.T) {
		spec := newSpec(t, writeToolchain(t, "rm -rf target"))

		require.NoError(t, os.MkdirAll(
			filepath.Join(spec.Dir, "target", testTriple, "debug"), 0o755,
		))

		var stdout, stderr bytes.Buffer

		err := cargo.Clean(testContext(t), spec, &stdout, &stderr)
		require.NoError(t, err)
		assert.NoDirExists(t, filepath.Join(spec.Dir, "target"))
	})

	t.Run("idempotent", func(t *testing.T) {
		spec := newSpec(t, writeToolchain(t, "rm -rf target"))

		var stdout, stderr bytes.Buffer

		require.NoError(t, cargo.Clean(testContext(t), spec, &stdout, &stderr))
		require.NoError(t, cargo.Clean(testContext(t), spec, &stdout, &stderr))
	})

	t.Run("failure surfaces", func(t *testing.T) {
		spec := newSpec(t, writeToolchain(
			t, "echo 'error: permission denied' >&2\nexit 13",
		))

		var stdout, stderr bytes.Buffer

		err := cargo.Clean(testContext(t), spec, &stdout, &stderr)

		var cleanErr *cargo.CleanError
		require.ErrorAs(t, err, &cleanErr)
		assert.Equal(t, 13, cleanErr.ExitCode)
		assert.Contains(t, stderr.String(), "permission denied")
	})
}

// The toolchain is invoked with the sub command and flags it expects.
func TestToolchainInvocation(t *testing.T) {
	argsFile := filepath.Join(t.TempDir(), "args")
	stub := writeToolchain(
		t, "printf '%s\\n' \"$@\" > "+argsFile+"\n"+imageScript("release"),
	)

	spec := newSpec(t, stub)
	spec.Profile = cargo.ProfileRelease

	var stdout, stderr bytes.Buffer

	_, err := cargo.Build(testContext(t), spec, &stdout, &stderr)
	require.NoError(t, err)

	args, err := os.ReadFile(argsFile)
	require.NoError(t, err)

	assert.Equal(
		t,
		"bootimage\n--target\n"+testTriple+"\n--release\n",
		string(args),
	)
}
