// SPDX-FileCopyrightText: Copyright 2025 Carabiner Systems, Inc
// SPDX-License-Identifier: Apache-2.0

//go:build !linux

package replicate

import (
	"context"
	"fmt"
	"os"
)

// Memfd is not available on non-Linux platforms. Use New or SameName
// to materialize the copy on disk instead.
func Memfd(_ context.Context) (*os.File, error) {
	return nil, fmt.Errorf("memfd_create not supported on this platform")
}
