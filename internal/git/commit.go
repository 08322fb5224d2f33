// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package git

import (
	"os"
	"path/filepath"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"gitlab.com/tozd/go/errors"
)

const (
	authorName  = "go-fileedit"
	authorEmail = "noreply@go-fileedit"
)

// Move renames a tracked file through the index, like git mv. Both paths
// are absolute. The destination must not exist; its parent directories are
// created.
func (r *Repo) Move(from, to string) error {
	fromRel, err := r.relPath(from)
	if err != nil {
		return err
	}
	toRel, err := r.relPath(to)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(to), 0o755); err != nil {
		return errors.Errorf("creating directory for %s: %w", toRel, err)
	}
	wt, err := r.repo.Worktree()
	if err != nil {
		return errors.Errorf("getting worktree: %w", err)
	}
	if _, err := wt.Move(fromRel, toRel); err != nil {
		return errors.Errorf("moving %s to %s: %w", fromRel, toRel, err)
	}
	return nil
}

// AutoCommit stages the given files (absolute paths) and commits them with
// a generated message. It is a no-op unless Config.AutoCommit is set.
// Returns the zero hash when nothing was committed.
func (r *Repo) AutoCommit(files []string, summary string) (plumbing.Hash, error) {
	if !r.cfg.AutoCommit || len(files) == 0 {
		return plumbing.ZeroHash, nil
	}

	wt, err := r.repo.Worktree()
	if err != nil {
		return plumbing.ZeroHash, errors.Errorf("getting worktree: %w", err)
	}

	rels := make([]string, 0, len(files))
	for _, f := range files {
		rel, err := r.relPath(f)
		if err != nil {
			return plumbing.ZeroHash, err
		}
		if _, err := wt.Add(rel); err != nil {
			return plumbing.ZeroHash, errors.Errorf("staging %s: %w", rel, err)
		}
		rels = append(rels, rel)
	}

	hash, err := wt.Commit(GenerateMessage(summary, rels), &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  authorName,
			Email: authorEmail,
			When:  time.Now(),
		},
	})
	if err != nil {
		return plumbing.ZeroHash, errors.Errorf("committing: %w", err)
	}
	return hash, nil
}

// Undo soft-resets HEAD to its parent if HEAD was made by this tool,
// leaving the changes staged in the working tree.
func (r *Repo) Undo() error {
	ours, err := r.IsFileEditCommit()
	if err != nil {
		return err
	}
	if !ours {
		return ErrNotFileEditCommit
	}

	commit, err := r.head()
	if err != nil {
		return err
	}
	if commit.NumParents() == 0 {
		return errors.New("cannot undo: HEAD is the initial commit")
	}
	parent, err := commit.Parent(0)
	if err != nil {
		return errors.Errorf("getting parent commit: %w", err)
	}

	wt, err := r.repo.Worktree()
	if err != nil {
		return errors.Errorf("getting worktree: %w", err)
	}
	if err := wt.Reset(&gogit.ResetOptions{Commit: parent.Hash, Mode: gogit.SoftReset}); err != nil {
		return errors.Errorf("resetting to parent: %w", err)
	}
	return nil
}
