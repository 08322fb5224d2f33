// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gitlab.com/tozd/go/errors"
)

// newUndoCmd creates the "undo" command.
func newUndoCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "undo",
		Short: "Revert the last go-fileedit commit",
		Long:  "Undo performs a soft reset of the last commit if it was made by go-fileedit.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, closeLog, err := commandContext(cmd, v, false)
			if err != nil {
				return err
			}
			defer closeLog()

			ed, err := newEditor(ctx, v)
			if err != nil {
				return err
			}
			if err := ed.Undo(ctx); err != nil {
				return errors.Errorf("undo failed: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Successfully reverted last go-fileedit commit.")
			return nil
		},
	}
}
