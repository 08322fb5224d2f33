// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gitlab.com/tozd/go/errors"

	"github.com/petar-djukic/go-fileedit/internal/files"
	"github.com/petar-djukic/go-fileedit/internal/server"
)

// newServeCmd creates the "serve" command.
func newServeCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP file tool server over stdio",
		Long:  "Serve exposes list_directory, read_file, save_file, append_file, delete_this_file, move_file and edit_file as MCP tools on stdin/stdout.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, closeLog, err := commandContext(cmd, v, true)
			if err != nil {
				return err
			}
			defer closeLog()

			ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer cancel()

			svc, err := files.New(ctx, files.Config{
				ProjectDir: v.GetString("project-dir"),
				UseGit:     !v.GetBool("no-git"),
				AutoCommit: v.GetBool("auto-commit"),
			})
			if err != nil {
				return errors.Errorf("initialization failed: %w", err)
			}

			logger := zerolog.Ctx(ctx)
			srv := server.New(svc, *logger, version)
			if err := srv.Serve(ctx, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil && !errors.Is(err, ctx.Err()) {
				return errors.Errorf("server stopped: %w", err)
			}
			logger.Info().Msg("server stopped")
			return nil
		},
	}
}
