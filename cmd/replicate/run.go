// SPDX-FileCopyrightText: Copyright 2025 Carabiner Systems, Inc
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/chainguard-dev/clog"
	"github.com/spf13/cobra"

	"github.com/carabiner-dev/replicate"
)

// defaultImage needs a static build of this binary to run inside it
// (assuming the host is not the same distro).
const defaultImage = "alpine:3"

func newRunCommand() *cobra.Command {
	var image string

	runCmd := &cobra.Command{
		Use:   "run [-- args...]",
		Short: "Run a copy of this binary inside a container",
		Long: `run copies the running binary into a temporary directory, volume-mounts
the copy into a container image and executes it there, forwarding any
arguments after "--" to the copy.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			replica, err := replicate.New(ctx)
			if err != nil {
				return fmt.Errorf("replicating binary: %w", err)
			}
			defer replica.Close() //nolint:errcheck

			clog.FromContext(ctx).Infof("Copy of this binary is at %s", replica.Path())

			// Mount the copy at the same path inside the container so
			// it can be invoked by its own location.
			mount := fmt.Sprintf("%s:%s", replica.Path(), replica.Path())
			dockerArgs := append(
				[]string{"run", "--rm", "-t", "-v", mount, image, replica.Path()},
				args...,
			)

			docker := exec.CommandContext(ctx, "docker", dockerArgs...)
			docker.Stdin = os.Stdin
			docker.Stdout = os.Stdout
			docker.Stderr = os.Stderr

			if err := docker.Run(); err != nil {
				return fmt.Errorf("running container: %w", err)
			}
			return nil
		},
	}

	runCmd.Flags().StringVar(&image, "image", defaultImage, "container image to run the copy in")

	return runCmd
}
