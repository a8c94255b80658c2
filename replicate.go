// SPDX-FileCopyrightText: Copyright 2025 Carabiner Systems, Inc
// SPDX-License-Identifier: Apache-2.0

// Package replicate copies the currently running executable into a
// temporary location.
//
// This lets a process hand an executable copy of itself to another
// execution context that cannot reach the original binary's path, for
// example a container that volume-mounts the copy or a docker build
// context that needs the binary under its own name.
//
// The copy lives in a freshly created temporary directory and both are
// removed when the returned Replica is closed. The usual temp-file
// caveats apply: the copy should be short-lived, and every user on the
// system with access to the temp directory is trusted.
package replicate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/chainguard-dev/clog"

	"github.com/carabiner-dev/replicate/internal/selfexe"
	"github.com/carabiner-dev/replicate/options"
)

// ErrNoFileName is returned by SameName when the resolved executable
// path has no final path component to reuse.
var ErrNoFileName = errors.New("executable path has no file name")

// copyLocation is the path of the copy inside the temporary directory.
// The randomized variant tracks its file for eager removal; the fixed
// variant is owned only through the directory.
type copyLocation interface {
	path() string
	cleanup()
}

// randomizedLocation is a copy with a prefix + random suffix name.
type randomizedLocation string

func (l randomizedLocation) path() string { return string(l) }

// cleanup removes the copy eagerly. Best effort: the recursive
// directory removal that follows catches anything left behind.
func (l randomizedLocation) cleanup() {
	os.Remove(string(l)) //nolint:errcheck,gosec
}

// fixedLocation is a copy named after the original executable.
type fixedLocation string

func (l fixedLocation) path() string { return string(l) }

func (l fixedLocation) cleanup() {}

// Replica is a temporary copy of the running executable.
//
// It owns the temporary directory holding the copy. Callers must call
// Close when done with the copy; Close is idempotent and its error is
// safe to ignore under defer.
type Replica struct {
	// dir is the temporary directory holding the copy.
	dir string
	// loc is the full path to the copy inside dir.
	loc copyLocation
}

// New creates a copy of the currently running executable under a
// randomized name (options.Default.Prefix plus a random suffix) inside
// a new temporary directory. The copy is marked executable on platforms
// with POSIX permission bits.
func New(ctx context.Context, optFns ...options.ReplicaOptsFn) (*Replica, error) {
	opts, err := applyOptions(optFns)
	if err != nil {
		return nil, err
	}

	// Create the temporary directory that will own the copy.
	dir, err := os.MkdirTemp(opts.Dir, "replicate-")
	if err != nil {
		return nil, fmt.Errorf("creating temp directory: %w", err)
	}

	// CreateTemp retries on name collision until it finds a free name.
	dst, err := os.CreateTemp(dir, opts.Prefix+"*")
	if err != nil {
		os.RemoveAll(dir) //nolint:errcheck,gosec
		return nil, fmt.Errorf("creating copy file: %w", err)
	}
	copyPath := dst.Name()

	// Stream the running binary into the copy.
	if _, err := copySelf(dst); err != nil {
		dst.Close()       //nolint:errcheck,gosec
		os.RemoveAll(dir) //nolint:errcheck,gosec
		return nil, err
	}

	if err := dst.Close(); err != nil {
		os.RemoveAll(dir) //nolint:errcheck,gosec
		return nil, fmt.Errorf("closing copy file: %w", err)
	}

	// Try and make the copy executable.
	if err := makeExecutable(copyPath, opts.Mode); err != nil {
		os.RemoveAll(dir) //nolint:errcheck,gosec
		return nil, err
	}

	clog.FromContext(ctx).Debugf("Replicated running binary to %s", copyPath)

	return &Replica{
		dir: dir,
		loc: randomizedLocation(copyPath),
	}, nil
}

// SameName creates a copy of the currently running executable that
// keeps the original's file name, for consumers that key off the
// binary's name (build contexts, argv[0]-sensitive tooling). The
// directory is cleaned up when the Replica is closed.
func SameName(ctx context.Context, optFns ...options.ReplicaOptsFn) (*Replica, error) {
	opts, err := applyOptions(optFns)
	if err != nil {
		return nil, err
	}

	// Resolve the launch path rather than the procfs alias: the copy
	// should carry the program's name, not "exe".
	exePath, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("getting the executable path: %w", err)
	}

	name := filepath.Base(exePath)
	if name == "." || name == string(os.PathSeparator) {
		return nil, fmt.Errorf("%w: %q", ErrNoFileName, exePath)
	}

	dir, err := os.MkdirTemp(opts.Dir, "replicate-")
	if err != nil {
		return nil, fmt.Errorf("creating temp directory: %w", err)
	}

	copyPath := filepath.Join(dir, name)

	// Unlike the randomized variant there is no collision retry here:
	// the directory is freshly created and exclusively ours.
	dst, err := os.Create(copyPath)
	if err != nil {
		os.RemoveAll(dir) //nolint:errcheck,gosec
		return nil, fmt.Errorf("creating copy file: %w", err)
	}

	if _, err := copySelf(dst); err != nil {
		dst.Close()       //nolint:errcheck,gosec
		os.RemoveAll(dir) //nolint:errcheck,gosec
		return nil, err
	}

	// Close before returning so the bytes are flushed and the handle is
	// released ahead of any external consumer of the path.
	if err := dst.Close(); err != nil {
		os.RemoveAll(dir) //nolint:errcheck,gosec
		return nil, fmt.Errorf("closing copy file: %w", err)
	}

	if err := makeExecutable(copyPath, opts.Mode); err != nil {
		os.RemoveAll(dir) //nolint:errcheck,gosec
		return nil, err
	}

	clog.FromContext(ctx).Debugf("Replicated running binary to %s", copyPath)

	return &Replica{
		dir: dir,
		loc: fixedLocation(copyPath),
	}, nil
}

// applyOptions builds the effective option set for one call
func applyOptions(optFns []options.ReplicaOptsFn) (*options.Replica, error) {
	opts := options.Default
	for _, fn := range optFns {
		if err := fn(&opts); err != nil {
			return nil, fmt.Errorf("applying option: %w", err)
		}
	}
	return &opts, nil
}

// copySelf streams the bytes of the running executable into w. The
// source is re-resolved on every call, never cached.
func copySelf(w io.Writer) (int64, error) {
	src, err := selfexe.Open()
	if err != nil {
		return 0, err
	}
	defer src.Close() //nolint:errcheck

	n, err := io.Copy(w, src)
	if err != nil {
		return n, fmt.Errorf("copying executable: %w", err)
	}
	return n, nil
}

// Dir returns the path of the temporary directory holding the copy.
func (r *Replica) Dir() string {
	return r.dir
}

// Path returns the path of the copy.
func (r *Replica) Path() string {
	return r.loc.path()
}

// String returns the path of the copy, so a Replica can be used
// directly wherever a path string is expected.
func (r *Replica) String() string {
	return r.Path()
}

// Close removes the copy and its temporary directory. It is idempotent
// and safe to call from a defer; deletion of files that are already
// gone is not an error.
func (r *Replica) Close() error {
	// Eagerly drop the copy first where the variant tracks it.
	r.loc.cleanup()

	if err := os.RemoveAll(r.dir); err != nil {
		return fmt.Errorf("removing temp directory: %w", err)
	}
	return nil
}
