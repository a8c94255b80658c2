// SPDX-FileCopyrightText: Copyright 2025 Carabiner Systems, Inc
// SPDX-License-Identifier: Apache-2.0

//go:build netbsd

package selfexe

// executablePath returns NetBSD's procfs alias for the current
// process image.
func executablePath() (string, error) {
	return "/proc/curproc/exe", nil
}
