// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"

	"github.com/petar-djukic/go-fileedit/internal/editor"
	"github.com/petar-djukic/go-fileedit/pkg/types"
)

// newEditCmd creates the "edit" command.
func newEditCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit FILE",
		Short: "Apply an edit list to a file",
		Long: `Edit applies a YAML or JSON edit list to FILE and prints the diff.

The edit list is either a list of {old_text, new_text} objects or an object
with "edits" and an optional "options" map.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, closeLog, err := commandContext(cmd, v, false)
			if err != nil {
				return err
			}
			defer closeLog()

			editsPath, _ := cmd.Flags().GetString("edits")
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			asJSON, _ := cmd.Flags().GetBool("json")

			data, err := readInput(cmd.InOrStdin(), editsPath)
			if err != nil {
				return err
			}
			edits, opts, err := decodeEditList(data)
			if err != nil {
				return err
			}
			opts = editOptions(v, opts)

			ed, err := newEditor(ctx, v)
			if err != nil {
				return err
			}
			result, err := ed.EditFile(ctx, args[0], edits, opts, dryRun)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				if err := printJSON(out, result); err != nil {
					return err
				}
			} else {
				printResult(out, result)
			}
			if !result.Success {
				return errors.New(result.Error)
			}
			return nil
		},
	}

	cmd.Flags().StringP("edits", "e", "-", "Edit list file, or - for stdin")
	cmd.Flags().BoolP("dry-run", "n", false, "Show the diff without writing the file")
	cmd.Flags().Bool("json", false, "Print the result as JSON")
	return cmd
}

// decodeEditList parses a YAML or JSON edit list. Options in the document
// are overlaid on the defaults.
func decodeEditList(data []byte) ([]types.EditOperation, types.EditOptions, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, types.EditOptions{}, errors.Errorf("%w: parsing edit list: %s", editor.ErrInvalidInput, err.Error())
	}

	rawEdits := doc
	var rawOptions map[string]any
	if obj, ok := doc.(map[string]any); ok {
		rawEdits = obj["edits"]
		if o, ok := obj["options"]; ok && o != nil {
			rawOptions, ok = o.(map[string]any)
			if !ok {
				return nil, types.EditOptions{}, errors.Errorf("%w: options must be a map, got %T", editor.ErrInvalidInput, o)
			}
		}
	}

	edits, err := editor.DecodeEdits(rawEdits)
	if err != nil {
		return nil, types.EditOptions{}, err
	}
	opts, ignored, err := editor.DecodeOptions(rawOptions)
	if err != nil {
		return nil, types.EditOptions{}, err
	}
	if len(ignored) > 0 {
		return nil, types.EditOptions{}, errors.Errorf("%w: unknown options %v", editor.ErrInvalidInput, ignored)
	}
	return edits, opts, nil
}

// readInput reads path, or stdin when path is "-".
func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" || path == "" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, errors.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}
