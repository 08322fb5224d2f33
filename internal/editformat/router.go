// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package editformat

import (
	"context"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"

	"github.com/petar-djukic/go-fileedit/internal/editor"
	"github.com/petar-djukic/go-fileedit/internal/files"
	"github.com/petar-djukic/go-fileedit/internal/storage"
	"github.com/petar-djukic/go-fileedit/pkg/types"
)

const (
	defaultConcurrency = 4

	detailCreated      = "File created"
	detailNotEvaluated = "Not evaluated: the file does not exist yet"
)

// FileEditor is the part of the file service the router needs.
type FileEditor interface {
	EditFile(ctx context.Context, req files.EditRequest) (*files.EditFileResult, error)
	ReadFile(ctx context.Context, path string) (string, error)
	SaveFile(ctx context.Context, path, content string) error
}

// FileOutcome is the result of applying one file's edits.
type FileOutcome struct {
	FilePath string
	Result   *files.EditFileResult // nil when Err is set
	Created  bool                  // The file did not exist and was created from the first block
	Err      error
}

// Router applies grouped edits. Different files are edited concurrently;
// the edits of one file are always applied together, in order.
type Router struct {
	Files       FileEditor
	Options     types.EditOptions
	DryRun      bool
	Concurrency int // Files edited at once (default 4)
}

// ApplyAll applies every group and returns one outcome per group, in the
// order given. A failing file does not stop the others.
func (r *Router) ApplyAll(ctx context.Context, groups []FileEdits) ([]FileOutcome, error) {
	outcomes := make([]FileOutcome, len(groups))

	g, ctx := errgroup.WithContext(ctx)
	limit := r.Concurrency
	if limit <= 0 {
		limit = defaultConcurrency
	}
	g.SetLimit(limit)

	for i, group := range groups {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			outcomes[i] = r.applyFile(ctx, group)
			if outcomes[i].Err != nil {
				zerolog.Ctx(ctx).Warn().Err(outcomes[i].Err).Str("file_path", group.FilePath).Msg("edit blocks not applied")
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

func (r *Router) applyFile(ctx context.Context, group FileEdits) FileOutcome {
	outcome := FileOutcome{FilePath: group.FilePath}
	req := files.EditRequest{
		FilePath: group.FilePath,
		Edits:    group.Edits,
		Options:  r.Options,
		DryRun:   r.DryRun,
	}

	result, err := r.Files.EditFile(ctx, req)
	if errors.Is(err, storage.ErrNotFound) && len(group.Edits) > 0 && group.Edits[0].OldText == "" {
		return r.createFile(ctx, group)
	}
	outcome.Result, outcome.Err = result, err
	return outcome
}

// createFile handles a block with an empty SEARCH section aimed at a file
// that does not exist yet: its replacement becomes the file's content, and
// any further blocks are applied to the new file. Results stay one per
// block, the creating block first.
func (r *Router) createFile(ctx context.Context, group FileEdits) FileOutcome {
	outcome := FileOutcome{FilePath: group.FilePath, Created: true}
	content := group.Edits[0].NewText
	rest := group.Edits[1:]

	if r.DryRun {
		results := []types.MatchResult{createdMatch()}
		for i := range rest {
			results = append(results, types.MatchResult{
				EditIndex: i + 1,
				MatchType: types.MatchSkipped,
				Details:   detailNotEvaluated,
			})
		}
		outcome.Result = createdResult(group.FilePath, content, results)
		outcome.Result.DryRun = true
		if len(rest) > 0 {
			outcome.Result.Message = "File would be created; later blocks for it were not evaluated"
		}
		return outcome
	}

	if err := r.Files.SaveFile(ctx, group.FilePath, content); err != nil {
		outcome.Err = err
		return outcome
	}
	if len(rest) == 0 {
		outcome.Result = createdResult(group.FilePath, content, []types.MatchResult{createdMatch()})
		return outcome
	}

	result, err := r.Files.EditFile(ctx, files.EditRequest{
		FilePath: group.FilePath,
		Edits:    rest,
		Options:  r.Options,
	})
	if err != nil {
		outcome.Err = err
		return outcome
	}
	final, err := r.Files.ReadFile(ctx, group.FilePath)
	if err != nil {
		outcome.Err = err
		return outcome
	}
	for i := range result.MatchResults {
		result.MatchResults[i].EditIndex++
	}
	result.MatchResults = append([]types.MatchResult{createdMatch()}, result.MatchResults...)
	result.Diff = newFileDiff(group.FilePath, final)
	outcome.Result = result
	return outcome
}

func createdMatch() types.MatchResult {
	return types.MatchResult{
		EditIndex:  0,
		Matched:    true,
		Confidence: 1,
		MatchType:  types.MatchExact,
		Details:    detailCreated,
	}
}

func createdResult(path, content string, results []types.MatchResult) *files.EditFileResult {
	return &files.EditFileResult{
		Success:      true,
		Diff:         newFileDiff(path, content),
		MatchResults: results,
		FilePath:     path,
	}
}

func newFileDiff(path, content string) string {
	return editor.UnifiedDiff("", content, "a/"+path, "b/"+path)
}
