// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package fileedit

import (
	"context"
	"os"

	"gitlab.com/tozd/go/errors"

	"github.com/petar-djukic/go-fileedit/internal/editformat"
	"github.com/petar-djukic/go-fileedit/internal/files"
	"github.com/petar-djukic/go-fileedit/internal/git"
	"github.com/petar-djukic/go-fileedit/pkg/types"
)

// New validates the config and returns an Editor rooted at cfg.ProjectDir.
// A project outside any git repository works with git features disabled.
func New(ctx context.Context, cfg Config) (Editor, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, errors.Errorf("%w: %s", ErrInvalidConfig, err.Error())
	}

	svc, err := files.New(ctx, files.Config{
		ProjectDir: cfg.ProjectDir,
		UseGit:     !cfg.NoGit,
		AutoCommit: cfg.AutoCommit,
	})
	if err != nil {
		return nil, errors.Errorf("%w: %s", ErrInvalidConfig, err.Error())
	}
	return &editorAdapter{svc: svc, concurrency: cfg.Concurrency}, nil
}

func validateConfig(cfg Config) error {
	if cfg.ProjectDir == "" {
		return errors.New("ProjectDir is required")
	}
	if info, err := os.Stat(cfg.ProjectDir); err != nil || !info.IsDir() {
		return errors.Errorf("ProjectDir %q does not exist or is not a directory", cfg.ProjectDir)
	}
	if cfg.AutoCommit && cfg.NoGit {
		return errors.New("AutoCommit requires git")
	}
	if cfg.Concurrency < 0 {
		return errors.New("Concurrency must not be negative")
	}
	return nil
}

// editorAdapter adapts the internal file service to the public Editor.
type editorAdapter struct {
	svc         *files.Service
	concurrency int
}

func (a *editorAdapter) EditFile(ctx context.Context, path string, edits []types.EditOperation, opts types.EditOptions, dryRun bool) (*Result, error) {
	fr, err := a.svc.EditFile(ctx, files.EditRequest{
		FilePath: path,
		Edits:    edits,
		Options:  opts,
		DryRun:   dryRun,
	})
	if err != nil {
		return nil, err
	}
	return convert(fr, false), nil
}

func (a *editorAdapter) ApplyBlocks(ctx context.Context, text string, opts types.EditOptions, dryRun bool) (*BlocksResult, error) {
	parsed, err := editformat.Parse(text)
	if err != nil {
		return nil, err
	}

	router := &editformat.Router{Files: a.svc, Options: opts, DryRun: dryRun, Concurrency: a.concurrency}
	outcomes, err := router.ApplyAll(ctx, parsed.Group())
	if err != nil {
		return nil, err
	}

	result := &BlocksResult{Success: len(parsed.ParseErrors) == 0}
	for _, pe := range parsed.ParseErrors {
		result.ParseErrors = append(result.ParseErrors, pe.Error())
	}
	for _, o := range outcomes {
		if o.Err != nil {
			result.Success = false
			result.Files = append(result.Files, Result{FilePath: o.FilePath, DryRun: dryRun, Error: o.Err.Error()})
			continue
		}
		r := convert(o.Result, o.Created)
		result.Success = result.Success && r.Success
		result.Files = append(result.Files, *r)
	}
	return result, nil
}

func (a *editorAdapter) Undo(ctx context.Context) error {
	repo := a.svc.Repo()
	if repo == nil {
		return git.ErrNoGit
	}
	return repo.Undo()
}

func convert(fr *files.EditFileResult, created bool) *Result {
	return &Result{
		FilePath:     fr.FilePath,
		Success:      fr.Success,
		Diff:         fr.Diff,
		MatchResults: fr.MatchResults,
		DryRun:       fr.DryRun,
		Message:      fr.Message,
		Error:        fr.Error,
		Commit:       fr.Commit,
		Created:      created,
	}
}
