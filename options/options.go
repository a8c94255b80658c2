// SPDX-FileCopyrightText: Copyright 2025 Carabiner Systems, Inc
// SPDX-License-Identifier: Apache-2.0

package options

import "io/fs"

// Replica options controlling how a copy of the running binary is made
type Replica struct {
	Prefix string      // Filename prefix for randomized copies
	Dir    string      // Parent for the temporary directory, "" = os.TempDir()
	Mode   fs.FileMode // Permission bits set on the copy (unix only)
}

// Default replica options
var Default = Replica{
	Prefix: "replicate_",
	Dir:    "", // Empty = system temp directory
	Mode:   0o755,
}

// ReplicaOptsFn is a functional option for a replication call
type ReplicaOptsFn func(*Replica) error

// WithPrefix sets the filename prefix used by the randomized variant
func WithPrefix(prefix string) ReplicaOptsFn {
	return func(o *Replica) error {
		o.Prefix = prefix
		return nil
	}
}

// WithDir sets the directory under which the temporary directory is created
func WithDir(dir string) ReplicaOptsFn {
	return func(o *Replica) error {
		o.Dir = dir
		return nil
	}
}

// WithMode sets the permission bits applied to the copy
func WithMode(mode fs.FileMode) ReplicaOptsFn {
	return func(o *Replica) error {
		o.Mode = mode
		return nil
	}
}
