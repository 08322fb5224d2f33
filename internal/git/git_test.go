// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package git

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_ValidRepo(t *testing.T) {
	dir := initTestRepo(t)

	repo, err := Open(Config{WorkDir: dir})
	require.NoError(t, err)
	assert.NotNil(t, repo)
}

func TestOpen_NotARepo(t *testing.T) {
	_, err := Open(Config{WorkDir: t.TempDir()})
	assert.ErrorIs(t, err, ErrNoGit)
}

func TestOpen_FromSubdirectory(t *testing.T) {
	dir := initTestRepo(t)
	sub := filepath.Join(dir, "internal", "pkg")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	repo, err := Open(Config{WorkDir: sub})
	require.NoError(t, err)

	resolved, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	assert.Equal(t, resolved, repo.Root())
}

func TestIsTracked(t *testing.T) {
	dir := initTestRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "untracked.go"), []byte("package main\n"), 0o644))

	repo, err := Open(Config{WorkDir: dir})
	require.NoError(t, err)

	tracked, err := repo.IsTracked(filepath.Join(dir, "main.go"))
	require.NoError(t, err)
	assert.True(t, tracked)

	tracked, err = repo.IsTracked(filepath.Join(dir, "untracked.go"))
	require.NoError(t, err)
	assert.False(t, tracked)

	_, err = repo.IsTracked(filepath.Join(filepath.Dir(dir), "elsewhere.go"))
	assert.ErrorIs(t, err, ErrOutsideWorktree)
}

func TestIsFileEditCommit(t *testing.T) {
	t.Run("tool commit", func(t *testing.T) {
		dir := initTestRepo(t)
		addFileAndCommit(t, dir, "test.go", "package main\n", "chore: edit test.go\n\n"+trailer)

		repo, err := Open(Config{WorkDir: dir})
		require.NoError(t, err)

		ours, err := repo.IsFileEditCommit()
		require.NoError(t, err)
		assert.True(t, ours)
	})

	t.Run("someone else's commit", func(t *testing.T) {
		dir := initTestRepo(t)

		repo, err := Open(Config{WorkDir: dir})
		require.NoError(t, err)

		ours, err := repo.IsFileEditCommit()
		require.NoError(t, err)
		assert.False(t, ours)
	})
}

// initTestRepo creates a temp dir with a git repo and an initial commit of
// main.go, and returns the directory path.
func initTestRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	r, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)

	wt, err := r.Worktree()
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.go"), []byte("package main\n\nfunc main() {}\n"), 0o644))
	_, err = wt.Add("main.go")
	require.NoError(t, err)

	_, err = wt.Commit("initial commit", &gogit.CommitOptions{
		Author: &object.Signature{Name: "Test", Email: "test@test.com", When: time.Now()},
	})
	require.NoError(t, err)

	return dir
}

// addFileAndCommit adds a file and creates a commit with the given message.
func addFileAndCommit(t *testing.T, dir, name, content, msg string) {
	t.Helper()

	r, err := gogit.PlainOpen(dir)
	require.NoError(t, err)
	wt, err := r.Worktree()
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	_, err = wt.Add(name)
	require.NoError(t, err)

	_, err = wt.Commit(msg, &gogit.CommitOptions{
		Author: &object.Signature{Name: "Test", Email: "test@test.com", When: time.Now()},
	})
	require.NoError(t, err)
}

// commitCount returns the number of commits reachable from HEAD.
func commitCount(t *testing.T, dir string) int {
	t.Helper()
	r, err := gogit.PlainOpen(dir)
	require.NoError(t, err)
	iter, err := r.Log(&gogit.LogOptions{})
	require.NoError(t, err)
	count := 0
	require.NoError(t, iter.ForEach(func(*object.Commit) error {
		count++
		return nil
	}))
	return count
}

func headMessage(t *testing.T, dir string) string {
	t.Helper()
	r, err := gogit.PlainOpen(dir)
	require.NoError(t, err)
	head, err := r.Head()
	require.NoError(t, err)
	commit, err := r.CommitObject(head.Hash())
	require.NoError(t, err)
	return commit.Message
}
