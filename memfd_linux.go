// SPDX-FileCopyrightText: Copyright 2025 Carabiner Systems, Inc
// SPDX-License-Identifier: Apache-2.0

//go:build linux

package replicate

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/chainguard-dev/clog"
	"golang.org/x/sys/unix"

	"github.com/carabiner-dev/replicate/internal/selfexe"
)

// Memfd copies the running executable into an anonymous in-memory file
// and returns it. The file's /proc/self/fd/N path can be executed
// directly, or the descriptor can be inherited by a child process,
// without any temporary directory to clean up afterwards: closing the
// returned file releases the image. Linux only.
func Memfd(ctx context.Context) (*os.File, error) {
	src, err := selfexe.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close() //nolint:errcheck

	// Try with MFD_EXEC first (kernel 6.3+), fall back for older kernels.
	// MFD_CLOEXEC is deliberately not set so the fd can be inherited.
	fd, err := unix.MemfdCreate("replicate", unix.MFD_ALLOW_SEALING|0x10)
	if err != nil {
		fd, err = unix.MemfdCreate("replicate", unix.MFD_ALLOW_SEALING)
		if err != nil {
			return nil, fmt.Errorf("memfd_create failed: %w", err)
		}
	}

	mem := os.NewFile(uintptr(fd), "replicate")

	if _, err := io.Copy(mem, src); err != nil {
		mem.Close() //nolint:errcheck,gosec
		return nil, fmt.Errorf("copying executable into memfd: %w", err)
	}

	// Rewind so the caller can read the image from the start.
	if _, err := mem.Seek(0, io.SeekStart); err != nil {
		mem.Close() //nolint:errcheck,gosec
		return nil, fmt.Errorf("rewinding memfd: %w", err)
	}

	// Seal the image against modification. Optional: if sealing is
	// blocked (e.g. by SELinux) the copy still works.
	seals := unix.F_SEAL_SEAL | unix.F_SEAL_SHRINK | unix.F_SEAL_GROW | unix.F_SEAL_WRITE
	if _, err := unix.FcntlInt(mem.Fd(), unix.F_ADD_SEALS, seals); err != nil {
		clog.FromContext(ctx).WarnContext(ctx, "failed to seal in-memory copy")
	}

	return mem, nil
}
