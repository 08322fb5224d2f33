// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package fileedit

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/go-fileedit/internal/git"
	"github.com/petar-djukic/go-fileedit/pkg/types"
)

func TestApplyEdits(t *testing.T) {
	doc := "def calculate(x):\n    result = x * 2\n    return result\n"
	edits := []types.EditOperation{{OldText: "    result = x * 2", NewText: "    result = x * 3"}}

	final, results, changed, err := ApplyEdits(doc, edits, types.DefaultEditOptions())
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "def calculate(x):\n    result = x * 3\n    return result\n", final)
	require.Len(t, results, 1)
	assert.Equal(t, types.MatchExact, results[0].MatchType)

	again, results, changed, err := ApplyEdits(final, edits, types.DefaultEditOptions())
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, final, again)
	assert.Equal(t, types.MatchSkipped, results[0].MatchType)

	_, _, _, err = ApplyEdits(doc, nil, types.DefaultEditOptions())
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUnifiedDiff(t *testing.T) {
	diff := UnifiedDiff("a\n", "b\n", "a/x", "b/x")
	assert.Contains(t, diff, "-a")
	assert.Contains(t, diff, "+b")
	assert.Empty(t, UnifiedDiff("same", "same", "a/x", "b/x"))
}

func TestNew_Validation(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	tests := []struct {
		name string
		cfg  Config
	}{
		{"missing project dir", Config{}},
		{"project dir is a file", Config{ProjectDir: file}},
		{"missing directory", Config{ProjectDir: filepath.Join(dir, "nope")}},
		{"auto-commit without git", Config{ProjectDir: dir, NoGit: true, AutoCommit: true}},
		{"negative concurrency", Config{ProjectDir: dir, Concurrency: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(context.Background(), tt.cfg)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestEditor_EditFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("hello world\n"), 0o644))

	ed, err := New(context.Background(), Config{ProjectDir: dir, NoGit: true})
	require.NoError(t, err)

	edits := []types.EditOperation{{OldText: "world", NewText: "there"}}

	preview, err := ed.EditFile(context.Background(), "a.txt", edits, types.DefaultEditOptions(), true)
	require.NoError(t, err)
	assert.True(t, preview.Success)
	assert.True(t, preview.DryRun)
	assert.Contains(t, preview.Diff, "+hello there")

	result, err := ed.EditFile(context.Background(), "a.txt", edits, types.DefaultEditOptions(), false)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, preview.Diff, result.Diff)
	assert.Equal(t, preview.MatchResults, result.MatchResults)

	data, err := os.ReadFile(filepath.Join(dir, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello there\n", string(data))
}

func TestEditor_ApplyBlocks(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("one\ntwo\n"), 0o644))

	ed, err := New(context.Background(), Config{ProjectDir: dir, NoGit: true})
	require.NoError(t, err)

	text := "a.txt\n<<<<<<< SEARCH\ntwo\n=======\nthree\n>>>>>>> REPLACE\n\n" +
		"b.txt\n<<<<<<< SEARCH\n=======\nnew file\n>>>>>>> REPLACE\n\n" +
		"<<<<<<< SEARCH\nno path\n=======\nx\n>>>>>>> REPLACE\n"

	result, err := ed.ApplyBlocks(context.Background(), text, types.DefaultEditOptions(), false)
	require.NoError(t, err)
	assert.False(t, result.Success, "parse errors make the run unsuccessful")
	require.Len(t, result.ParseErrors, 1)
	require.Len(t, result.Files, 2)
	assert.True(t, result.Files[0].Success)
	assert.True(t, result.Files[1].Created)

	data, err := os.ReadFile(filepath.Join(dir, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "one\nthree\n", string(data))
	data, err = os.ReadFile(filepath.Join(dir, "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, "new file\n", string(data))

	_, err = ed.ApplyBlocks(context.Background(), "no blocks here", types.DefaultEditOptions(), false)
	assert.Error(t, err)
}

func TestEditor_AutoCommitAndUndo(t *testing.T) {
	dir := t.TempDir()
	r, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := r.Worktree()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.go"), []byte("package main\n"), 0o644))
	_, err = wt.Add("main.go")
	require.NoError(t, err)
	_, err = wt.Commit("initial commit", &gogit.CommitOptions{
		Author: &object.Signature{Name: "Test", Email: "test@test.com", When: time.Now()},
	})
	require.NoError(t, err)

	ed, err := New(context.Background(), Config{ProjectDir: dir, AutoCommit: true})
	require.NoError(t, err)

	result, err := ed.EditFile(context.Background(), "main.go",
		[]types.EditOperation{{OldText: "package main\n", NewText: "package app\n"}}, types.DefaultEditOptions(), false)
	require.NoError(t, err)
	require.NotEmpty(t, result.Commit)

	require.NoError(t, ed.Undo(context.Background()))
	assert.ErrorIs(t, ed.Undo(context.Background()), git.ErrNotFileEditCommit)
}

func TestEditor_UndoWithoutGit(t *testing.T) {
	ed, err := New(context.Background(), Config{ProjectDir: t.TempDir(), NoGit: true})
	require.NoError(t, err)
	assert.ErrorIs(t, ed.Undo(context.Background()), git.ErrNoGit)
}
