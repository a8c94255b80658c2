// SPDX-FileCopyrightText: Copyright 2025 Carabiner Systems, Inc
// SPDX-License-Identifier: Apache-2.0

package replicate

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/carabiner-dev/replicate/options"
)

func TestNew(t *testing.T) {
	replica, err := New(context.Background())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer replica.Close() //nolint:errcheck

	name := filepath.Base(replica.Path())
	if !strings.HasPrefix(name, "replicate_") {
		t.Errorf("Expected copy name to start with replicate_, got %s", name)
	}

	// The copy must be readable once the handle is returned
	f, err := os.Open(replica.Path())
	if err != nil {
		t.Fatalf("Expected copy to be readable: %v", err)
	}
	f.Close() //nolint:errcheck,gosec
}

func TestSameName(t *testing.T) {
	exePath, err := os.Executable()
	if err != nil {
		t.Fatalf("os.Executable failed: %v", err)
	}

	replica, err := SameName(context.Background())
	if err != nil {
		t.Fatalf("SameName failed: %v", err)
	}
	defer replica.Close() //nolint:errcheck

	if got, want := filepath.Base(replica.Path()), filepath.Base(exePath); got != want {
		t.Errorf("Expected copy name %s, got %s", want, got)
	}
}

func TestContentFidelity(t *testing.T) {
	checkContents := func(t *testing.T, replica *Replica) {
		t.Helper()

		self, err := OpenSelf()
		if err != nil {
			t.Fatalf("OpenSelf failed: %v", err)
		}
		defer self.Close() //nolint:errcheck

		want, err := io.ReadAll(self)
		if err != nil {
			t.Fatalf("reading self: %v", err)
		}

		got, err := os.ReadFile(replica.Path())
		if err != nil {
			t.Fatalf("reading copy: %v", err)
		}

		if !bytes.Equal(got, want) {
			t.Errorf("Copy contents differ from running binary (%d vs %d bytes)", len(got), len(want))
		}
	}

	t.Run("randomized", func(t *testing.T) {
		replica, err := New(context.Background())
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		defer replica.Close() //nolint:errcheck
		checkContents(t, replica)
	})

	t.Run("same_name", func(t *testing.T) {
		replica, err := SameName(context.Background())
		if err != nil {
			t.Fatalf("SameName failed: %v", err)
		}
		defer replica.Close() //nolint:errcheck
		checkContents(t, replica)
	})
}

func TestCleanup(t *testing.T) {
	replica, err := New(context.Background())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	dir := replica.Dir()
	path := replica.Path()

	if err := replica.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("Expected copy %s to be deleted", path)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("Expected temp directory %s to be deleted", dir)
	}

	// Close is idempotent
	if err := replica.Close(); err != nil {
		t.Errorf("Expected second Close to succeed, got %v", err)
	}
}

func TestSameNameCleanup(t *testing.T) {
	replica, err := SameName(context.Background())
	if err != nil {
		t.Fatalf("SameName failed: %v", err)
	}

	dir := replica.Dir()

	if err := replica.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("Expected temp directory %s to be deleted", dir)
	}
}

func TestIndependentReplicas(t *testing.T) {
	first, err := New(context.Background())
	if err != nil {
		t.Fatalf("first New failed: %v", err)
	}
	defer first.Close() //nolint:errcheck

	second, err := New(context.Background())
	if err != nil {
		t.Fatalf("second New failed: %v", err)
	}
	defer second.Close() //nolint:errcheck

	if first.Dir() == second.Dir() {
		t.Fatalf("Expected distinct temp directories, both are %s", first.Dir())
	}

	for _, dir := range []string{first.Dir(), second.Dir()} {
		if _, err := os.ReadDir(dir); err != nil {
			t.Errorf("Expected %s to be listable: %v", dir, err)
		}
	}

	// Dropping one replica must not touch the other's files
	if err := first.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if _, err := os.Stat(second.Path()); err != nil {
		t.Errorf("Expected second copy to survive first Close: %v", err)
	}
}

func TestLocationContainment(t *testing.T) {
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

			rel, err := filepath.Rel(replica.Dir(), replica.Path())
			if err != nil {
				t.Fatalf("Rel failed: %v", err)
			}
			if rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
				t.Errorf("Expected %s to live inside %s", replica.Path(), replica.Dir())
			}
		})
	}
}

func TestReplicaString(t *testing.T) {
	replica, err := New(context.Background())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer replica.Close() //nolint:errcheck

	if replica.String() != replica.Path() {
		t.Errorf("Expected String %s to match Path %s", replica.String(), replica.Path())
	}
}

func TestNewWithOptions(t *testing.T) {
	parent := t.TempDir()

	replica, err := New(context.Background(),
		options.WithPrefix("clone_"),
		options.WithDir(parent),
	)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer replica.Close() //nolint:errcheck

	if name := filepath.Base(replica.Path()); !strings.HasPrefix(name, "clone_") {
		t.Errorf("Expected copy name to start with clone_, got %s", name)
	}

	if rel, err := filepath.Rel(parent, replica.Dir()); err != nil || strings.HasPrefix(rel, "..") {
		t.Errorf("Expected temp directory %s under %s", replica.Dir(), parent)
	}
}

func TestFingerprint(t *testing.T) {
	digest, err := Fingerprint()
	if err != nil {
		t.Fatalf("Fingerprint failed: %v", err)
	}

	if len(digest) != 64 {
		t.Errorf("Expected 64 hex chars, got %d", len(digest))
	}

	// Stable across calls while the binary does not change
	again, err := Fingerprint()
	if err != nil {
		t.Fatalf("second Fingerprint failed: %v", err)
	}
	if digest != again {
		t.Errorf("Expected stable fingerprint, got %s then %s", digest, again)
	}
}
