// SPDX-FileCopyrightText: Copyright 2025 Carabiner Systems, Inc
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/carabiner-dev/replicate"
)

func newPathCommand() *cobra.Command {
	var fingerprint bool

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the resolved path of the running binary",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if fingerprint {
				digest, err := replicate.Fingerprint()
				if err != nil {
					return fmt.Errorf("fingerprinting binary: %w", err)
				}
				fmt.Println(digest)
				return nil
			}

			path, err := replicate.SelfPath()
			if err != nil {
				return fmt.Errorf("resolving binary path: %w", err)
			}
			fmt.Println(path)
			return nil
		},
	}

	pathCmd.Flags().BoolVar(&fingerprint, "fingerprint", false, "print the binary's SHA-256 instead of its path")

	return pathCmd
}
