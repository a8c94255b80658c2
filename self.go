// SPDX-FileCopyrightText: Copyright 2025 Carabiner Systems, Inc
// SPDX-License-Identifier: Apache-2.0

package replicate

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/carabiner-dev/replicate/internal/selfexe"
)

// SelfPath returns the path of the currently running executable. On
// Linux this is /proc/self/exe; other platforms use their own procfs
// alias or fall back to the path the process was launched from.
func SelfPath() (string, error) {
	return selfexe.Path()
}

// OpenSelf opens the currently running executable for reading. The path
// is re-resolved on every call.
func OpenSelf() (*os.File, error) {
	return selfexe.Open()
}

// Fingerprint returns the hex-encoded SHA-256 of the running binary's
// bytes, read through the same resolver the replication operations use.
func Fingerprint() (string, error) {
	src, err := selfexe.Open()
	if err != nil {
		return "", err
	}
	defer src.Close() //nolint:errcheck

	hasher := sha256.New()
	if _, err := io.Copy(hasher, src); err != nil {
		return "", fmt.Errorf("hashing executable: %w", err)
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}
