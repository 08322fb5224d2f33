// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package files implements the project-rooted file operations exposed by
// the tool server and the CLI. Every path is confined to the project
// directory before any I/O happens.
package files

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/petar-djukic/go-fileedit/internal/editor"
	"github.com/petar-djukic/go-fileedit/internal/git"
	"github.com/petar-djukic/go-fileedit/internal/logging"
	"github.com/petar-djukic/go-fileedit/internal/sandbox"
	"github.com/petar-djukic/go-fileedit/internal/storage"
)

// ErrDestinationExists is returned when a move target already exists.
var ErrDestinationExists = errors.Base("destination already exists")

// Config configures a Service.
type Config struct {
	ProjectDir string // Project root (required)
	UseGit     bool   // Use git for tracked-file moves and auto-commit
	AutoCommit bool   // Commit files after successful edits (requires UseGit)

	// Scorer overrides the fuzzy similarity metric.
	Scorer editor.Scorer
}

// Service performs file operations inside one project directory.
type Service struct {
	root   *sandbox.Root
	repo   *git.Repo
	engine *editor.Engine
}

// New validates the project directory and, when requested, opens the git
// repository that contains it. A project outside any repository works
// without git.
func New(ctx context.Context, cfg Config) (*Service, error) {
	if cfg.ProjectDir == "" {
		return nil, errors.New("project directory is required")
	}
	root, err := sandbox.New(cfg.ProjectDir)
	if err != nil {
		return nil, err
	}

	s := &Service{root: root, engine: &editor.Engine{Scorer: cfg.Scorer}}
	if cfg.UseGit {
		repo, err := git.Open(git.Config{WorkDir: root.Dir(), AutoCommit: cfg.AutoCommit})
		switch {
		case errors.Is(err, git.ErrNoGit):
			zerolog.Ctx(ctx).Info().Str("project_dir", root.Dir()).Msg("project is not in a git repository, git features disabled")
		case err != nil:
			return nil, err
		default:
			s.repo = repo
		}
	}
	return s, nil
}

// ProjectDir returns the absolute project directory.
func (s *Service) ProjectDir() string {
	return s.root.Dir()
}

// Repo returns the git repository, or nil when git is not in use.
func (s *Service) Repo() *git.Repo {
	return s.repo
}

// ListDirectory lists the files under dir (relative to the project) as
// project-relative paths.
func (s *Service) ListDirectory(ctx context.Context, dir string, opts storage.ListOptions) (files []string, err error) {
	done := logging.Call(ctx, "list_directory", map[string]any{"directory": dir, "use_gitignore": opts.UseGitignore, "pattern": opts.Pattern})
	defer func() { done(err) }()

	if dir == "" {
		dir = "."
	}
	abs, _, err := s.root.Resolve(dir)
	if err != nil {
		return nil, err
	}
	files, err = storage.List(s.root.Dir(), abs, opts)
	if err != nil {
		return nil, err
	}
	zerolog.Ctx(ctx).Info().Str("directory", dir).Int("files", len(files)).Msg("listed directory")
	return files, nil
}

// ReadFile returns the contents of a UTF-8 text file.
func (s *Service) ReadFile(ctx context.Context, path string) (content string, err error) {
	done := logging.Call(ctx, "read_file", map[string]any{"file_path": path})
	defer func() { done(err) }()

	abs, _, err := s.root.Resolve(path)
	if err != nil {
		return "", err
	}
	return storage.Read(abs)
}

// SaveFile writes content to path atomically, creating parent directories.
func (s *Service) SaveFile(ctx context.Context, path, content string) (err error) {
	done := logging.Call(ctx, "save_file", map[string]any{"file_path": path, "bytes": len(content)})
	defer func() { done(err) }()

	abs, rel, err := s.root.Resolve(path)
	if err != nil {
		return err
	}
	if err := storage.WriteAtomic(abs, []byte(content)); err != nil {
		return err
	}
	zerolog.Ctx(ctx).Info().Str("file_path", rel).Int("bytes", len(content)).Msg("saved file")
	return nil
}

// AppendFile appends content to an existing file.
func (s *Service) AppendFile(ctx context.Context, path, content string) (err error) {
	done := logging.Call(ctx, "append_file", map[string]any{"file_path": path, "bytes": len(content)})
	defer func() { done(err) }()

	abs, _, err := s.root.Resolve(path)
	if err != nil {
		return err
	}
	return storage.Append(abs, content)
}

// DeleteFile removes a file. Directories are refused.
func (s *Service) DeleteFile(ctx context.Context, path string) (err error) {
	done := logging.Call(ctx, "delete_this_file", map[string]any{"file_path": path})
	defer func() { done(err) }()

	abs, rel, err := s.root.Resolve(path)
	if err != nil {
		return err
	}
	if err := storage.Delete(abs); err != nil {
		return err
	}
	zerolog.Ctx(ctx).Info().Str("file_path", rel).Msg("deleted file")
	return nil
}

// MoveResult describes a completed move.
type MoveResult struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Method      string `json:"method"` // "git" or "filesystem"
}

// MoveFile moves or renames a file or directory inside the project. Files
// tracked by git are moved through the index; everything else, and any
// failed git move, falls back to a filesystem rename.
func (s *Service) MoveFile(ctx context.Context, source, destination string) (result *MoveResult, err error) {
	done := logging.Call(ctx, "move_file", map[string]any{"source_path": source, "destination_path": destination})
	defer func() { done(err) }()

	srcAbs, srcRel, err := s.root.Resolve(source)
	if err != nil {
		return nil, err
	}
	dstAbs, dstRel, err := s.root.Resolve(destination)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(srcAbs)
	if err != nil {
		return nil, errors.Errorf("%w: %s", storage.ErrNotFound, srcRel)
	}
	if storage.Exists(dstAbs) {
		return nil, errors.Errorf("%w: %s", ErrDestinationExists, dstRel)
	}

	result = &MoveResult{Source: srcRel, Destination: dstRel, Method: "filesystem"}
	logger := zerolog.Ctx(ctx)

	if s.repo != nil && !info.IsDir() {
		tracked, err := s.repo.IsTracked(srcAbs)
		if err != nil {
			logger.Warn().Err(err).Str("source", srcRel).Msg("could not check git tracking, using filesystem move")
		}
		if tracked {
			moveErr := s.repo.Move(srcAbs, dstAbs)
			if moveErr == nil {
				result.Method = "git"
				logger.Info().Str("source", srcRel).Str("destination", dstRel).Msg("moved file with git")
				return result, nil
			}
			logger.Warn().Err(moveErr).Str("source", srcRel).Msg("git move failed, using filesystem move")
		}
	}

	if err := os.MkdirAll(filepath.Dir(dstAbs), 0o755); err != nil {
		return nil, errors.Errorf("creating directory for %s: %w", dstRel, err)
	}
	if err := os.Rename(srcAbs, dstAbs); err != nil {
		return nil, errors.Errorf("moving %s to %s: %w", srcRel, dstRel, err)
	}
	logger.Info().Str("source", srcRel).Str("destination", dstRel).Msg("moved file")
	return result, nil
}
