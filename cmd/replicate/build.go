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

func newBuildCommand() *cobra.Command {
	var (
		contextName string
		dockerfile  string
		buildDir    string
	)

	buildCmd := &cobra.Command{
		Use:   "build",
		Short: "Expose a copy of this binary as a docker build context",
		Long: `build copies the running binary, keeping its original file name, and
hands the copy's directory to docker build as a named build context. A
Dockerfile can then COPY the binary out of that context by name.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			replica, err := replicate.SameName(ctx)
			if err != nil {
				return fmt.Errorf("replicating binary: %w", err)
			}
			defer replica.Close() //nolint:errcheck

			clog.FromContext(ctx).Infof("Copy of this binary is at %s", replica.Path())

			dockerArgs := []string{
				"build",
				"--build-context", fmt.Sprintf("%s=%s", contextName, replica.Dir()),
				"-f", dockerfile,
				buildDir,
			}

			docker := exec.CommandContext(ctx, "docker", dockerArgs...)
			docker.Stdout = os.Stdout
			docker.Stderr = os.Stderr

			if err := docker.Run(); err != nil {
				return fmt.Errorf("building image: %w", err)
			}
			return nil
		},
	}

	buildCmd.Flags().StringVar(&contextName, "context-name", "replicate", "name of the extra build context")
	buildCmd.Flags().StringVarP(&dockerfile, "file", "f", "Dockerfile", "Dockerfile to build")
	buildCmd.Flags().StringVar(&buildDir, "dir", ".", "primary build context directory")

	return buildCmd
}
