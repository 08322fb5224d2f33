// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package sandbox

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRoot(t *testing.T) *Root {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "main.go"), []byte("package main\n"), 0o644))
	root, err := New(dir)
	require.NoError(t, err)
	return root
}

func TestResolve(t *testing.T) {
	root := newRoot(t)

	tests := []struct {
		name    string
		path    string
		wantRel string
		wantErr error
	}{
		{name: "relative file", path: "src/main.go", wantRel: "src/main.go"},
		{name: "not yet existing file", path: "src/new/file.txt", wantRel: "src/new/file.txt"},
		{name: "dot is the root", path: ".", wantRel: "."},
		{name: "cleaned traversal inside root", path: "src/../src/main.go", wantRel: "src/main.go"},
		{name: "absolute inside root", path: filepath.Join(root.Dir(), "src", "main.go"), wantRel: "src/main.go"},
		{name: "parent escape", path: "../outside.txt", wantErr: ErrOutsideRoot},
		{name: "deep escape", path: "src/../../outside.txt", wantErr: ErrOutsideRoot},
		{name: "absolute outside", path: filepath.Dir(root.Dir()), wantErr: ErrOutsideRoot},
		{name: "empty path", path: "  ", wantErr: ErrInvalidPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			abs, rel, err := root.Resolve(tt.path)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantRel, rel)
			assert.Equal(t, filepath.Join(root.Dir(), filepath.FromSlash(tt.wantRel)), abs)
		})
	}
}

func TestResolve_SymlinkOutsideRoot(t *testing.T) {
	root := newRoot(t)
	outside := t.TempDir()
	require.NoError(t, os.Symlink(outside, filepath.Join(root.Dir(), "escape")))

	_, _, err := root.Resolve("escape/secret.txt")
	assert.ErrorIs(t, err, ErrOutsideRoot)
}

func TestNew_NotADirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "f.txt")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	_, err := New(file)
	assert.Error(t, err)
}
