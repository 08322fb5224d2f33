// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package sandbox confines file paths to a project root. Every path a tool
// receives goes through Root.Resolve before any I/O happens.
package sandbox

import (
	"os"
	"path/filepath"
	"strings"

	"gitlab.com/tozd/go/errors"
)

var (
	// ErrOutsideRoot is returned for paths that resolve outside the root.
	ErrOutsideRoot = errors.Base("path is outside the project directory")

	// ErrInvalidPath is returned for empty paths.
	ErrInvalidPath = errors.Base("invalid path")
)

// Root is an absolute, symlink-resolved project directory.
type Root struct {
	dir string
}

// New resolves dir and checks that it is an existing directory.
func New(dir string) (*Root, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.Errorf("resolving project directory: %w", err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, errors.Errorf("resolving project directory: %w", err)
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return nil, errors.Errorf("project directory: %w", err)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("project directory %s is not a directory", resolved)
	}
	return &Root{dir: resolved}, nil
}

// Dir returns the absolute project directory.
func (r *Root) Dir() string {
	return r.dir
}

// Resolve maps path (absolute, or relative to the root) to an absolute path
// and a slash-separated path relative to the root. Symlinks in the existing
// part of the path are followed before the containment check, so a link
// pointing outside the root is rejected.
func (r *Root) Resolve(path string) (abs, rel string, err error) {
	if strings.TrimSpace(path) == "" {
		return "", "", errors.Errorf("%w: empty path", ErrInvalidPath)
	}

	candidate := path
	if !filepath.IsAbs(candidate) {
		candidate = filepath.Join(r.dir, candidate)
	}
	candidate = filepath.Clean(candidate)

	resolved, err := resolveExisting(candidate)
	if err != nil {
		return "", "", errors.Errorf("resolving %s: %w", path, err)
	}

	relPath, err := filepath.Rel(r.dir, resolved)
	if err != nil || relPath == ".." || strings.HasPrefix(relPath, ".."+string(filepath.Separator)) {
		return "", "", errors.Errorf("%w: %s", ErrOutsideRoot, path)
	}
	return resolved, filepath.ToSlash(relPath), nil
}

// resolveExisting follows symlinks in the longest existing prefix of path
// and re-appends the components that do not exist yet.
func resolveExisting(path string) (string, error) {
	var missing []string
	current := path
	for {
		resolved, err := filepath.EvalSymlinks(current)
		if err == nil {
			for i := len(missing) - 1; i >= 0; i-- {
				resolved = filepath.Join(resolved, missing[i])
			}
			return resolved, nil
		}
		if !os.IsNotExist(err) {
			return "", err
		}
		parent := filepath.Dir(current)
		if parent == current {
			return path, nil
		}
		missing = append(missing, filepath.Base(current))
		current = parent
	}
}
