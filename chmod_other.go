// SPDX-FileCopyrightText: Copyright 2025 Carabiner Systems, Inc
// SPDX-License-Identifier: Apache-2.0

//go:build !unix

package replicate

import "io/fs"

// makeExecutable is a no-op on platforms without POSIX permission bits.
// Whether the copy is actually runnable there is up to the caller and
// the platform's own execution rules.
func makeExecutable(_ string, _ fs.FileMode) error {
	return nil
}
