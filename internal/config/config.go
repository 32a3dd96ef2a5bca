// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads the bootrun configuration.
//
// Values are merged from three layers with ascending precedence: built-in
// defaults, an optional "bootrun.yaml" file in the project directory and
// environment variables prefixed with "BOOTRUN_". Command line flags are
// bound on top by the CLI layer.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	configName = "bootrun"
	envPrefix  = "BOOTRUN"

	// DefaultGDBPort matches QEMU's own gdbstub default.
	DefaultGDBPort = 1234
)

// Config holds all bootrun configuration.
type Config struct {
	// Dir is the kernel project directory.
	Dir string `mapstructure:"dir"`

	// Target is the target triple the kernel is compiled for.
	Target string `mapstructure:"target"`

	// Profile is the build profile, "debug" or "release".
	Profile string `mapstructure:"profile"`

	// Crate is the kernel crate name. Empty derives it from the project
	// directory name.
	Crate string `mapstructure:"crate"`

	// CargoBin is the toolchain binary to invoke.
	CargoBin string `mapstructure:"cargo_bin"`

	// QemuBin is the emulator binary to invoke.
	QemuBin string `mapstructure:"qemu_bin"`

	// Machine is the QEMU machine type. Empty keeps QEMU's default.
	Machine string `mapstructure:"machine"`

	// CPU is the QEMU CPU type. Empty keeps QEMU's default.
	CPU string `mapstructure:"cpu"`

	// SMP is the number of guest CPUs. Zero keeps QEMU's default.
	SMP uint64 `mapstructure:"smp"`

	// MemoryMB is the guest memory in megabytes. Zero keeps QEMU's default.
	MemoryMB uint64 `mapstructure:"memory_mb"`

	// NoKVM disables KVM hardware acceleration.
	NoKVM bool `mapstructure:"no_kvm"`

	// GDBPort is the TCP port for the GDB remote endpoint in debug mode.
	GDBPort uint16 `mapstructure:"gdb_port"`

	// QemuArgs are extra emulator arguments, one "-name value" string each.
	QemuArgs []string `mapstructure:"qemu_args"`
}

func newViper(dir string) *viper.Viper {
	v := viper.New()

	// Every key needs a registered default, otherwise values set via
	// environment only are invisible to Unmarshal.
	v.SetDefault("dir", ".")
	v.SetDefault("target", "")
	v.SetDefault("profile", "debug")
	v.SetDefault("crate", "")
	v.SetDefault("cargo_bin", "cargo")
	v.SetDefault("qemu_bin", "qemu-system-x86_64")
	v.SetDefault("machine", "")
	v.SetDefault("cpu", "")
	v.SetDefault("smp", 0)
	v.SetDefault("memory_mb", 0)
	v.SetDefault("no_kvm", false)
	v.SetDefault("gdb_port", DefaultGDBPort)
	v.SetDefault("qemu_args", []string{})

	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads the configuration for the project in dir.
//
// A missing config file is fine, defaults and environment still apply. The
// given flag set, if any, is bound with highest precedence; flag names map
// to config keys with dashes replaced by underscores.
func Load(dir string, flags *pflag.FlagSet) (*Config, error) {
	v := newViper(dir)

	if flags != nil {
		var bindErr error

		flags.VisitAll(func(flag *pflag.Flag) {
			key := strings.ReplaceAll(flag.Name, "-", "_")

			err := v.BindPFlag(key, flag)
			if err != nil && bindErr == nil {
				bindErr = err
			}
		})

		if bindErr != nil {
			return nil, fmt.Errorf("bind flags: %w", bindErr)
		}
	}

	err := v.ReadInConfig()
	if err != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(err, &notFoundErr) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config

	err = v.Unmarshal(&cfg)
	if err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}
