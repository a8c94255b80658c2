// SPDX-FileCopyrightText: Copyright 2025 Carabiner Systems, Inc
// SPDX-License-Identifier: Apache-2.0

//go:build solaris

package selfexe

import (
	"fmt"
	"os"
)

// executablePath returns the per-pid procfs alias for the current
// process image on Solaris and illumos.
func executablePath() (string, error) {
	return fmt.Sprintf("/proc/%d/path/a.out", os.Getpid()), nil
}
