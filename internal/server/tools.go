// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package server

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/petar-djukic/go-fileedit/internal/editor"
	"github.com/petar-djukic/go-fileedit/internal/files"
	"github.com/petar-djukic/go-fileedit/internal/sandbox"
	"github.com/petar-djukic/go-fileedit/internal/storage"
)

func (s *Server) listDirectory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	dir, err := optionalString(args, "directory")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	pattern, err := optionalString(args, "pattern")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	useGitignore, err := boolArg(args, "use_gitignore", true)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	list, err := s.files.ListDirectory(ctx, dir, storage.ListOptions{UseGitignore: useGitignore, Pattern: pattern})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if list == nil {
		list = []string{}
	}
	return jsonResult(list)
}

func (s *Server) readFile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := requiredString(req.GetArguments(), "file_path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	content, err := s.files.ReadFile(ctx, path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(content), nil
}

func (s *Server) saveFile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	path, err := requiredString(args, "file_path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	content, err := optionalString(args, "content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.files.SaveFile(ctx, path, content); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(true)
}

func (s *Server) appendFile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	path, err := requiredString(args, "file_path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	content, err := optionalString(args, "content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.files.AppendFile(ctx, path, content); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(true)
}

func (s *Server) deleteFile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := requiredString(req.GetArguments(), "file_path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.files.DeleteFile(ctx, path); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(true)
}

func (s *Server) moveFile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	source, err := requiredString(args, "source_path")
	if err != nil {
		return mcp.NewToolResultError("Invalid source path"), nil
	}
	destination, err := requiredString(args, "destination_path")
	if err != nil {
		return mcp.NewToolResultError("Invalid destination path"), nil
	}
	if _, err := s.files.MoveFile(ctx, source, destination); err != nil {
		return mcp.NewToolResultError(moveErrorMessage(err)), nil
	}
	return jsonResult(true)
}

// moveErrorMessage reduces a move failure to a short message without paths.
func moveErrorMessage(err error) string {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return "File not found"
	case errors.Is(err, files.ErrDestinationExists):
		return "Destination already exists"
	case errors.Is(err, fs.ErrPermission):
		return "Permission denied"
	case errors.Is(err, sandbox.ErrOutsideRoot), errors.Is(err, sandbox.ErrInvalidPath):
		return "Invalid path"
	default:
		return "Move operation failed"
	}
}

func (s *Server) editFile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	path, err := requiredString(args, "file_path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	edits, err := editor.DecodeEdits(args["edits"])
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	dryRun, err := boolArg(args, "dry_run", false)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var rawOptions map[string]any
	if v, ok := args["options"]; ok && v != nil {
		rawOptions, ok = v.(map[string]any)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("options must be an object, got %T", v)), nil
		}
	}
	opts, ignored, err := editor.DecodeOptions(rawOptions)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	for _, name := range ignored {
		zerolog.Ctx(ctx).Warn().Str("option", name).Msg("unsupported edit option ignored")
	}

	result, err := s.files.EditFile(ctx, files.EditRequest{
		FilePath: path,
		Edits:    edits,
		Options:  opts,
		DryRun:   dryRun,
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(result)
}

func requiredString(args map[string]any, key string) (string, error) {
	s, ok := args[key].(string)
	if !ok || s == "" {
		return "", errors.Errorf("%s must be a non-empty string, got %T", key, args[key])
	}
	return s, nil
}

// optionalString treats a missing or null value as "".
func optionalString(args map[string]any, key string) (string, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", errors.Errorf("%s must be a string, got %T", key, v)
	}
	return s, nil
}

func boolArg(args map[string]any, key string, def bool) (bool, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return def, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, errors.Errorf("%s must be a boolean, got %T", key, v)
	}
	return b, nil
}
