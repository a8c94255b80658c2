// SPDX-FileCopyrightText: Copyright 2025 Carabiner Systems, Inc
// SPDX-License-Identifier: Apache-2.0

//go:build !linux && !android && !dragonfly && !netbsd && !solaris

package selfexe

import "os"

// executablePath falls back to the path the process was launched from.
// Unlike the procfs aliases this can go stale: if the binary has been
// moved or deleted since process start, opening the result fails.
func executablePath() (string, error) {
	return os.Executable()
}
