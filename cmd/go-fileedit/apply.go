// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gitlab.com/tozd/go/errors"

	"github.com/petar-djukic/go-fileedit/pkg/types"
)

// newApplyCmd creates the "apply" command.
func newApplyCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply [FILE]",
		Short: "Apply SEARCH/REPLACE blocks",
		Long: `Apply reads SEARCH/REPLACE blocks from FILE, or stdin when FILE is
omitted or "-", and applies them to the files they name. Each file is
written only if all of its blocks apply.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, closeLog, err := commandContext(cmd, v, false)
			if err != nil {
				return err
			}
			defer closeLog()

			dryRun, _ := cmd.Flags().GetBool("dry-run")
			asJSON, _ := cmd.Flags().GetBool("json")

			path := "-"
			if len(args) == 1 {
				path = args[0]
			}
			data, err := readInput(cmd.InOrStdin(), path)
			if err != nil {
				return err
			}

			ed, err := newEditor(ctx, v)
			if err != nil {
				return err
			}
			result, err := ed.ApplyBlocks(ctx, string(data), editOptions(v, types.DefaultEditOptions()), dryRun)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				if err := printJSON(out, result); err != nil {
					return err
				}
			} else {
				for _, pe := range result.ParseErrors {
					fmt.Fprintf(cmd.ErrOrStderr(), "parse error: %s\n", pe)
				}
				for i := range result.Files {
					printResult(out, &result.Files[i])
				}
			}
			if !result.Success {
				return errors.New("not all blocks were applied")
			}
			return nil
		},
	}

	cmd.Flags().BoolP("dry-run", "n", false, "Show the diffs without writing files")
	cmd.Flags().Bool("json", false, "Print the result as JSON")
	return cmd
}
