// SPDX-FileCopyrightText: Copyright 2025 Carabiner Systems, Inc
// SPDX-License-Identifier: Apache-2.0

// Package selfexe resolves the binary image of the running process.
//
// Where the kernel exposes a virtual alias for the current executable
// (/proc/self/exe and friends) that alias is used, since it is always
// live: it keeps working even after the on-disk binary is moved or
// deleted. Everywhere else the path recorded at process launch is the
// best available answer and may go stale.
package selfexe

import (
	"fmt"
	"os"
)

// Path returns the path to the currently running executable.
//
// The strategy is selected at build time per operating system; see the
// executablePath implementations. The result is re-resolved on every
// call, never cached.
func Path() (string, error) {
	path, err := executablePath()
	if err != nil {
		return "", fmt.Errorf("resolving executable path: %w", err)
	}
	return path, nil
}

// Open resolves the running executable and opens it for reading.
func Open() (*os.File, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening executable: %w", err)
	}
	return f, nil
}
