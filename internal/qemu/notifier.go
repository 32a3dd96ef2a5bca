// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import (
	"context"
	"fmt"
	"io"
	"net"
	"strconv"
	"time"
)

const gdbProbeInterval = 100 * time.Millisecond

// gdbNotifier polls the GDB remote endpoint of a freshly started QEMU
// process and tells the user once it accepts connections.
//
// With the CPU frozen at reset there is no other feedback that the emulator
// is up and a debugger may attach now.
type gdbNotifier struct {
	port uint16
	out  io.Writer
}

func (n gdbNotifier) run(ctx context.Context) error {
	addr := net.JoinHostPort("localhost", strconv.Itoa(int(n.port)))
	dialer := net.Dialer{Timeout: gdbProbeInterval}

	ticker := time.NewTicker(gdbProbeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			// The run ended before the endpoint came up. Not an error of
			// its own, the command's result covers it.
			return nil
		case <-ticker.C:
		}

		conn, err := dialer.DialContext(ctx, "tcp", addr)
		if err != nil {
			continue
		}

		_ = conn.Close()

		fmt.Fprintf(
			n.out,
			"CPU halted at reset, GDB remote endpoint ready on %s\n",
			addr,
		)

		return nil
	}
}
