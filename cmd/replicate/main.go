// SPDX-FileCopyrightText: Copyright 2025 Carabiner Systems, Inc
// SPDX-License-Identifier: Apache-2.0

// replicate demonstrates handing a copy of the running binary to a
// container: `run` volume-mounts a randomized copy into an image and
// executes it there, `build` exposes a same-name copy as a docker build
// context, `path` prints what would be copied.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/chainguard-dev/clog"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var debug bool

	rootCmd := &cobra.Command{
		Use:   "replicate",
		Short: "Copy the running binary into a temporary location",
		Long: `replicate copies its own binary into a temporary directory and hands
the copy to a consumer that cannot reach the original path, such as a
container run or a docker build context. The copy and its directory are
removed when the command finishes.`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			cmd.SetContext(logContext(cmd.Context(), debug))
		},
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")

	rootCmd.AddCommand(newRunCommand())
	rootCmd.AddCommand(newBuildCommand())
	rootCmd.AddCommand(newPathCommand())

	return rootCmd
}

// logContext wires a clog logger into the command context so the
// library's debug output is visible when requested.
func logContext(ctx context.Context, debug bool) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	logger := clog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	return clog.WithLogger(ctx, logger)
}
