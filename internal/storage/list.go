// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package storage

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"gitlab.com/tozd/go/errors"
)

// ListOptions filters the files returned by List.
type ListOptions struct {
	// UseGitignore applies the project's .gitignore files (nested ones
	// included) and .git/info/exclude. The .git directory is always skipped.
	UseGitignore bool

	// Pattern, when set, keeps only files whose root-relative path matches
	// the doublestar glob (for example "**/*.go").
	Pattern string
}

// List walks dir recursively and returns the files under it as sorted,
// slash-separated paths relative to root. dir must be root or inside it.
func List(root, dir string, opts ListOptions) ([]string, error) {
	info, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, errors.Errorf("%w: %s", ErrNotFound, dir)
	}
	if err != nil {
		return nil, errors.Errorf("stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("%w: %s", ErrNotDirectory, dir)
	}
	if opts.Pattern != "" && !doublestar.ValidatePattern(opts.Pattern) {
		return nil, errors.Errorf("invalid pattern %q", opts.Pattern)
	}

	matcher, err := ignoreMatcher(root, opts.UseGitignore)
	if err != nil {
		return nil, err
	}

	var files []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		parts := strings.Split(filepath.ToSlash(rel), "/")
		if matcher.Match(parts, d.IsDir()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		slashRel := filepath.ToSlash(rel)
		if opts.Pattern != "" {
			ok, err := doublestar.Match(opts.Pattern, slashRel)
			if err != nil || !ok {
				return nil
			}
		}
		files = append(files, slashRel)
		return nil
	})
	if err != nil {
		return nil, errors.Errorf("listing %s: %w", dir, err)
	}

	sort.Strings(files)
	return files, nil
}

// ignoreMatcher builds a gitignore matcher for root. The .git directory is
// always ignored, whether or not gitignore rules are used.
func ignoreMatcher(root string, useGitignore bool) (gitignore.Matcher, error) {
	patterns := []gitignore.Pattern{gitignore.ParsePattern(".git/", nil)}
	if useGitignore {
		fsPatterns, err := gitignore.ReadPatterns(osfs.New(root), nil)
		if err != nil {
			return nil, errors.Errorf("reading gitignore patterns: %w", err)
		}
		patterns = append(patterns, fsPatterns...)
	}
	return gitignore.NewMatcher(patterns), nil
}
