// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package files

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/petar-djukic/go-fileedit/internal/editor"
	"github.com/petar-djukic/go-fileedit/internal/logging"
	"github.com/petar-djukic/go-fileedit/internal/storage"
	"github.com/petar-djukic/go-fileedit/pkg/types"
)

const (
	msgNoChanges = "No changes needed - content already in desired state"
	msgFailedFmt = "Failed to find exact match for %d edit(s)"
)

// EditRequest is one file's worth of edits.
type EditRequest struct {
	FilePath string
	Edits    []types.EditOperation
	Options  types.EditOptions
	DryRun   bool

	// CommitSummary is used for the auto-commit message. Optional.
	CommitSummary string
}

// EditFileResult is the outcome of EditFile. Failed matches are reported
// here rather than as an error.
type EditFileResult struct {
	Success      bool                `json:"success"`
	Diff         string              `json:"diff"`
	MatchResults []types.MatchResult `json:"match_results"`
	FilePath     string              `json:"file_path"`
	DryRun       bool                `json:"dry_run"`
	Message      string              `json:"message,omitempty"`
	Error        string              `json:"error,omitempty"`
	Commit       string              `json:"commit,omitempty"`
}

// EditFile reads a file, applies the edits, and writes the result back when
// every edit succeeded, something changed, and DryRun is off. The diff is
// computed either way. An error is returned only when the file cannot be
// read or written or the edits are invalid.
func (s *Service) EditFile(ctx context.Context, req EditRequest) (result *EditFileResult, err error) {
	done := logging.Call(ctx, "edit_file", map[string]any{"file_path": req.FilePath, "edits": len(req.Edits), "dry_run": req.DryRun})
	defer func() { done(err) }()

	abs, rel, err := s.root.Resolve(req.FilePath)
	if err != nil {
		return nil, err
	}
	original, err := storage.Read(abs)
	if err != nil {
		return nil, err
	}

	report, err := s.engine.ApplyEdits(original, req.Edits, req.Options)
	if err != nil {
		return nil, err
	}

	result = &EditFileResult{
		Success:      report.Success(),
		Diff:         editor.UnifiedDiff(original, report.Document, "a/"+rel, "b/"+rel),
		MatchResults: report.Results,
		FilePath:     rel,
		DryRun:       req.DryRun,
	}

	logger := zerolog.Ctx(ctx)
	switch {
	case !result.Success:
		result.Message = fmt.Sprintf(msgFailedFmt, report.Failed())
		result.Error = result.Message
		logger.Warn().Str("file_path", rel).Int("failed", report.Failed()).Msg("edits did not match")
		return result, nil
	case !report.Changed:
		result.Message = msgNoChanges
		return result, nil
	case req.DryRun:
		return result, nil
	}

	if err := storage.WriteAtomic(abs, []byte(report.Document)); err != nil {
		return nil, err
	}
	logger.Info().Str("file_path", rel).Int("edits", len(req.Edits)).Msg("applied edits")

	if s.repo != nil {
		hash, err := s.repo.AutoCommit([]string{abs}, req.CommitSummary)
		if err != nil {
			logger.Warn().Err(err).Str("file_path", rel).Msg("auto-commit failed")
		} else if !hash.IsZero() {
			result.Commit = hash.String()
		}
	}
	return result, nil
}
