// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Command go-fileedit edits files by (old_text, new_text) replacement, from
// the command line or as an MCP tool server.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gitlab.com/tozd/go/errors"

	"github.com/petar-djukic/go-fileedit/internal/logging"
	"github.com/petar-djukic/go-fileedit/pkg/fileedit"
	"github.com/petar-djukic/go-fileedit/pkg/types"
)

const version = "0.1.0"

var envKeyReplacer = strings.NewReplacer("-", "_")

func main() {
	if err := newRootCmd(viper.New()).Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command tree around one viper instance.
func newRootCmd(v *viper.Viper) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "go-fileedit",
		Short:         "Apply old_text/new_text edits to files",
		Long:          "go-fileedit applies ordered text replacements to files, reports a diff and a result per edit, and can serve the same operations as MCP tools.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	// Global flags.
	flags := rootCmd.PersistentFlags()
	flags.String("project-dir", ".", "Project root; all paths are confined to it")
	flags.String("log-level", "info", "Log level (trace, debug, info, warn, error)")
	flags.String("log-file", "", "JSON log file (serve defaults to <project-dir>/logs/)")
	flags.Bool("console-only", false, "Log to the console only")
	flags.Bool("no-git", false, "Disable git integration")
	flags.Bool("auto-commit", false, "Commit each successfully edited file")
	flags.Bool("partial-match", false, "Fall back to fuzzy matching when exact matching fails")
	flags.Float64("match-threshold", types.DefaultMatchThreshold, "Minimum fuzzy match confidence (0.0-1.0)")
	flags.Bool("stop-on-failure", false, "Skip remaining edits after the first failure")

	for _, name := range []string{
		"project-dir", "log-level", "log-file", "console-only", "no-git",
		"auto-commit", "partial-match", "match-threshold", "stop-on-failure",
	} {
		_ = v.BindPFlag(name, flags.Lookup(name))
	}

	// Env vars: GO_FILEEDIT_PROJECT_DIR, GO_FILEEDIT_AUTO_COMMIT, etc.
	v.SetEnvPrefix("GO_FILEEDIT")
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()

	// Config file.
	v.SetConfigName(".go-fileedit")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // Optional.

	rootCmd.AddCommand(newServeCmd(v))
	rootCmd.AddCommand(newEditCmd(v))
	rootCmd.AddCommand(newApplyCmd(v))
	rootCmd.AddCommand(newUndoCmd(v))
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// newVersionCmd creates the "version" command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print go-fileedit version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "go-fileedit %s\n", version)
		},
	}
}

// commandContext returns the command's context carrying the configured
// logger, and a function that closes the log file. When defaultFile is set
// and no log file is configured, logs also go to the project's logs
// directory unless --console-only is given.
func commandContext(cmd *cobra.Command, v *viper.Viper, defaultFile bool) (context.Context, func(), error) {
	file := v.GetString("log-file")
	if v.GetBool("console-only") {
		file = ""
	} else if file == "" && defaultFile {
		file = logging.DefaultLogFile(v.GetString("project-dir"), time.Now())
	}

	logger, closer, err := logging.New(logging.Config{
		Level:   v.GetString("log-level"),
		File:    file,
		Console: cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, nil, err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if file != "" {
		logger.Debug().Str("log_file", file).Msg("logging to file")
	}
	return logger.WithContext(ctx), func() { closeQuietly(closer) }, nil
}

// newEditor opens the project named by --project-dir.
func newEditor(ctx context.Context, v *viper.Viper) (fileedit.Editor, error) {
	ed, err := fileedit.New(ctx, fileedit.Config{
		ProjectDir: v.GetString("project-dir"),
		NoGit:      v.GetBool("no-git"),
		AutoCommit: v.GetBool("auto-commit"),
	})
	if err != nil {
		return nil, errors.Errorf("initialization failed: %w", err)
	}
	return ed, nil
}

// editOptions builds engine options from defaults, overridden by any
// option set through flags, environment, or config file.
func editOptions(v *viper.Viper, base types.EditOptions) types.EditOptions {
	if v.IsSet("partial-match") {
		base.PartialMatch = v.GetBool("partial-match")
	}
	if v.IsSet("match-threshold") {
		base.MatchThreshold = v.GetFloat64("match-threshold")
	}
	if v.IsSet("stop-on-failure") {
		base.StopOnFailure = v.GetBool("stop-on-failure")
	}
	return base
}

func closeQuietly(c io.Closer) {
	_ = c.Close()
}
