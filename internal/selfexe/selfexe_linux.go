// SPDX-FileCopyrightText: Copyright 2025 Carabiner Systems, Inc
// SPDX-License-Identifier: Apache-2.0

//go:build linux || android

package selfexe

// executablePath returns the kernel's virtual alias for the current
// process image. The link target can be unlinked while this path keeps
// resolving to the loaded image.
func executablePath() (string, error) {
	return "/proc/self/exe", nil
}
