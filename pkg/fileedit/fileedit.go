// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package fileedit is the public interface of go-fileedit: an in-memory
// edit engine for (old_text, new_text) replacements and a project-rooted
// editor that applies them to files.
package fileedit

import (
	"context"

	"gitlab.com/tozd/go/errors"

	"github.com/petar-djukic/go-fileedit/internal/editor"
	"github.com/petar-djukic/go-fileedit/pkg/types"
)

var (
	// ErrInvalidConfig is returned by New for unusable configuration.
	ErrInvalidConfig = errors.Base("invalid config")

	// ErrInvalidInput is returned for malformed edit lists or options.
	ErrInvalidInput = editor.ErrInvalidInput
)

// Config configures an Editor.
type Config struct {
	ProjectDir  string // Project root (required); all paths are confined to it
	NoGit       bool   // Disable git integration
	AutoCommit  bool   // Commit each successfully edited file
	Concurrency int    // Files edited at once by ApplyBlocks (default 4)
}

// Result is the outcome of editing one file.
type Result struct {
	FilePath     string              `json:"file_path"`
	Success      bool                `json:"success"`
	Diff         string              `json:"diff"`
	MatchResults []types.MatchResult `json:"match_results"`
	DryRun       bool                `json:"dry_run"`
	Message      string              `json:"message,omitempty"`
	Error        string              `json:"error,omitempty"`
	Commit       string              `json:"commit,omitempty"`
	Created      bool                `json:"created,omitempty"`
}

// BlocksResult is the outcome of ApplyBlocks.
type BlocksResult struct {
	Files       []Result `json:"files"`
	ParseErrors []string `json:"parse_errors,omitempty"`
	Success     bool     `json:"success"`
}

// Editor applies edits to files in one project.
type Editor interface {
	// EditFile applies edits to one file. The file is written only when
	// every edit succeeds, something changed, and dryRun is false.
	EditFile(ctx context.Context, path string, edits []types.EditOperation, opts types.EditOptions, dryRun bool) (*Result, error)

	// ApplyBlocks parses SEARCH/REPLACE blocks from text and applies them
	// file by file.
	ApplyBlocks(ctx context.Context, text string, opts types.EditOptions, dryRun bool) (*BlocksResult, error)

	// Undo reverts the last commit made by AutoCommit.
	Undo(ctx context.Context) error
}

// ApplyEdits applies edits to document in memory. It returns the resulting
// document, one MatchResult per edit, and whether the document changed.
func ApplyEdits(document string, edits []types.EditOperation, opts types.EditOptions) (string, []types.MatchResult, bool, error) {
	report, err := editor.ApplyEdits(document, edits, opts)
	if err != nil {
		return "", nil, false, err
	}
	return report.Document, report.Results, report.Changed, nil
}

// UnifiedDiff renders a unified diff between two texts, or "" when they are
// equal.
func UnifiedDiff(original, final, fromLabel, toLabel string) string {
	return editor.UnifiedDiff(original, final, fromLabel, toLabel)
}
