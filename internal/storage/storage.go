// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package storage reads and writes project files. Writes go through a temp
// file and a rename so a file is either fully replaced or left untouched.
package storage

import (
	"io/fs"
	"os"
	"path/filepath"
	"unicode/utf8"

	"gitlab.com/tozd/go/errors"
)

var (
	ErrNotFound        = errors.Base("file not found")
	ErrIsDirectory     = errors.Base("path is a directory")
	ErrNotDirectory    = errors.Base("path is not a directory")
	ErrInvalidEncoding = errors.Base("file contains invalid UTF-8")
)

// Read returns the contents of the file at path. Content that is not valid
// UTF-8 is rejected with ErrInvalidEncoding.
func Read(path string) (string, error) {
	if err := requireFile(path); err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Errorf("reading %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return "", errors.Errorf("%w: %s", ErrInvalidEncoding, path)
	}
	return string(data), nil
}

// WriteAtomic replaces the file at path with data, creating parent
// directories as needed. Existing file permissions are preserved.
func WriteAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Errorf("creating directory %s: %w", dir, err)
	}

	perm := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		if info.IsDir() {
			return errors.Errorf("%w: %s", ErrIsDirectory, path)
		}
		perm = info.Mode().Perm()
	}

	f, err := os.CreateTemp(dir, ".go-fileedit-*.tmp")
	if err != nil {
		return errors.Errorf("creating temp file: %w", err)
	}
	tmpPath := f.Name()

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return errors.Errorf("writing temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return errors.Errorf("syncing temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return errors.Errorf("closing temp file: %w", err)
	}

	if err := os.Chmod(tmpPath, perm); err != nil {
		os.Remove(tmpPath)
		return errors.Errorf("setting permissions: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return errors.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// Append adds content to the end of an existing file.
func Append(path, content string) error {
	if err := requireFile(path); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		return errors.Errorf("opening %s: %w", path, err)
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return errors.Errorf("appending to %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return errors.Errorf("closing %s: %w", path, err)
	}
	return nil
}

// Delete removes a file. Directories are refused.
func Delete(path string) error {
	if err := requireFile(path); err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return errors.Errorf("deleting %s: %w", path, err)
	}
	return nil
}

// Exists reports whether anything exists at path.
func Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

func requireFile(path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return errors.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return errors.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return errors.Errorf("%w: %s", ErrIsDirectory, path)
	}
	return nil
}
