// SPDX-FileCopyrightText: Copyright 2025 Carabiner Systems, Inc
// SPDX-License-Identifier: Apache-2.0

//go:build unix

package replicate

import (
	"fmt"
	"io/fs"
	"os"
)

// makeExecutable sets the permission bits on the copy so it can be run
// independently of the original binary.
func makeExecutable(path string, mode fs.FileMode) error {
	if err := os.Chmod(path, mode); err != nil {
		return fmt.Errorf("making copy executable: %w", err)
	}
	return nil
}
