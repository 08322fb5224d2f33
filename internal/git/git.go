// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package git provides the git-aware parts of file operations: detecting
// tracked files, moving them through the index, committing edits, and
// undoing the last commit this tool made.
package git

import (
	"path/filepath"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/format/index"
	"github.com/go-git/go-git/v5/plumbing/object"
	"gitlab.com/tozd/go/errors"
)

const trailer = "Edited-By: go-fileedit"

var (
	// ErrNoGit is returned when the directory is not inside a git repository.
	ErrNoGit = errors.Base("not a git repository")

	// ErrNotFileEditCommit is returned when undo targets a commit this tool
	// did not make.
	ErrNotFileEditCommit = errors.Base("not a go-fileedit commit")

	// ErrOutsideWorktree is returned for paths outside the repository.
	ErrOutsideWorktree = errors.Base("path is outside the git worktree")
)

// Config configures git integration.
type Config struct {
	WorkDir    string // Directory inside the repository
	AutoCommit bool   // Commit files after successful edits
}

// Repo wraps a go-git repository for the operations we need.
type Repo struct {
	repo *gogit.Repository
	root string
	cfg  Config
}

// Open opens the repository containing cfg.WorkDir, searching parent
// directories for .git. Returns ErrNoGit when there is none.
func Open(cfg Config) (*Repo, error) {
	r, err := gogit.PlainOpenWithOptions(cfg.WorkDir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, errors.Errorf("%w: %s", ErrNoGit, err.Error())
	}
	wt, err := r.Worktree()
	if err != nil {
		return nil, errors.Errorf("%w: %s", ErrNoGit, err.Error())
	}
	root, err := filepath.EvalSymlinks(wt.Filesystem.Root())
	if err != nil {
		return nil, errors.Errorf("resolving worktree root: %w", err)
	}
	return &Repo{repo: r, root: root, cfg: cfg}, nil
}

// Root returns the absolute worktree root.
func (r *Repo) Root() string {
	return r.root
}

// IsTracked reports whether the file at abs is in the index.
func (r *Repo) IsTracked(abs string) (bool, error) {
	rel, err := r.relPath(abs)
	if err != nil {
		return false, err
	}
	idx, err := r.repo.Storer.Index()
	if err != nil {
		return false, errors.Errorf("reading index: %w", err)
	}
	if _, err := idx.Entry(rel); err != nil {
		if errors.Is(err, index.ErrEntryNotFound) {
			return false, nil
		}
		return false, errors.Errorf("looking up %s: %w", rel, err)
	}
	return true, nil
}

// IsFileEditCommit reports whether HEAD carries this tool's trailer.
func (r *Repo) IsFileEditCommit() (bool, error) {
	commit, err := r.head()
	if err != nil {
		return false, err
	}
	return strings.Contains(commit.Message, trailer), nil
}

// relPath converts an absolute path into the slash-separated form go-git
// uses for index entries.
func (r *Repo) relPath(abs string) (string, error) {
	resolved := abs
	if dir, err := filepath.EvalSymlinks(filepath.Dir(abs)); err == nil {
		resolved = filepath.Join(dir, filepath.Base(abs))
	}
	rel, err := filepath.Rel(r.root, resolved)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.Errorf("%w: %s", ErrOutsideWorktree, abs)
	}
	return filepath.ToSlash(rel), nil
}

func (r *Repo) head() (*object.Commit, error) {
	head, err := r.repo.Head()
	if err != nil {
		return nil, errors.Errorf("getting HEAD: %w", err)
	}
	commit, err := r.repo.CommitObject(head.Hash())
	if err != nil {
		return nil, errors.Errorf("getting commit: %w", err)
	}
	return commit, nil
}
