// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.txt")
	bad := filepath.Join(dir, "bad.bin")
	require.NoError(t, os.WriteFile(good, []byte("héllo\n"), 0o644))
	require.NoError(t, os.WriteFile(bad, []byte{0xff, 0xfe, 0x00}, 0o644))

	got, err := Read(good)
	require.NoError(t, err)
	assert.Equal(t, "héllo\n", got)

	_, err = Read(bad)
	assert.ErrorIs(t, err, ErrInvalidEncoding)

	_, err = Read(filepath.Join(dir, "missing.txt"))
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = Read(dir)
	assert.ErrorIs(t, err, ErrIsDirectory)
}

func TestWriteAtomic(t *testing.T) {
	t.Run("creates parents", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "a", "b", "c.txt")
		require.NoError(t, WriteAtomic(path, []byte("data")))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "data", string(got))
	})

	t.Run("preserves permissions and leaves no temp files", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "script.sh")
		require.NoError(t, os.WriteFile(path, []byte("old"), 0o755))

		require.NoError(t, WriteAtomic(path, []byte("new")))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("refuses directories", func(t *testing.T) {
		dir := t.TempDir()
		assert.ErrorIs(t, WriteAtomic(dir, []byte("x")), ErrIsDirectory)
	})
}

func TestAppend(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "log.txt")
	require.NoError(t, os.WriteFile(path, []byte("one\n"), 0o644))

	require.NoError(t, Append(path, "two\n"))
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\n", string(got))

	assert.ErrorIs(t, Append(filepath.Join(dir, "missing.txt"), "x"), ErrNotFound)
}

func TestDelete(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gone.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	require.NoError(t, Delete(path))
	assert.False(t, Exists(path))
	assert.ErrorIs(t, Delete(path), ErrNotFound)
	assert.ErrorIs(t, Delete(dir), ErrIsDirectory)
}
