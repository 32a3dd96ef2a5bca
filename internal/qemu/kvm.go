// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import (
	"os"
	"runtime"
)

// KVMAvailable checks if KVM hardware acceleration can be used for the given
// guest architecture. It requires a matching host architecture and write
// access to the KVM device.
func KVMAvailable(arch string) bool {
	if runtime.GOARCH != arch {
		return false
	}

	file, err := os.OpenFile("/dev/kvm", os.O_WRONLY, 0)
	_ = file.Close()

	return err == nil
}
