// SPDX-FileCopyrightText: Copyright 2025 Carabiner Systems, Inc
// SPDX-License-Identifier: Apache-2.0

//go:build unix

package replicate

import (
	"context"
	"io/fs"
	"os"
	"testing"

	"github.com/carabiner-dev/replicate/options"
)

func TestCopyIsExecutable(t *testing.T) {
	for name, create := range map[string]func() (*Replica, error){
		"randomized": func() (*Replica, error) { return New(context.Background()) },
		"same_name":  func() (*Replica, error) { return SameName(context.Background()) },
	} {
		t.Run(name, func(t *testing.T) {
			replica, err := create()
			if err != nil {
				t.Fatalf("creating replica: %v", err)
			}
			defer replica.Close() //nolint:errcheck

			info, err := os.Stat(replica.Path())
			if err != nil {
				t.Fatalf("Stat failed: %v", err)
			}

			if got := info.Mode().Perm(); got != 0o755 {
				t.Errorf("Expected mode 0755, got %o", got)
			}
		})
	}
}

func TestWithMode(t *testing.T) {
	replica, err := New(context.Background(), options.WithMode(0o700))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer replica.Close() //nolint:errcheck

	info, err := os.Stat(replica.Path())
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}

	if got := info.Mode().Perm(); got != fs.FileMode(0o700) {
		t.Errorf("Expected mode 0700, got %o", got)
	}
}
