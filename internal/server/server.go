// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package server exposes the file service as MCP tools over stdio.
package server

import (
	"context"
	"encoding/json"
	"io"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/petar-djukic/go-fileedit/internal/files"
)

// Name is the server name reported to MCP clients.
const Name = "File System Service"

// Server wires the file service to an MCP server.
type Server struct {
	files  *files.Service
	logger zerolog.Logger
	srv    *mcpserver.MCPServer
}

// New builds the MCP server and registers every tool.
func New(svc *files.Service, logger zerolog.Logger, version string) *Server {
	s := &Server{files: svc, logger: logger}
	s.srv = mcpserver.NewMCPServer(Name, version,
		mcpserver.WithToolCapabilities(false),
		mcpserver.WithRecovery(),
		mcpserver.WithToolHandlerMiddleware(s.withLogger),
	)
	s.registerTools()
	return s
}

// MCP returns the underlying MCP server, for in-process clients.
func (s *Server) MCP() *mcpserver.MCPServer {
	return s.srv
}

// Serve speaks MCP over in and out until ctx is done or in is closed.
// Nothing but protocol traffic may be written to out.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	s.logger.Info().Str("project_dir", s.files.ProjectDir()).Msg("starting MCP server")
	stdio := mcpserver.NewStdioServer(s.srv)
	return stdio.Listen(ctx, in, out)
}

// withLogger puts the server logger into each tool call's context.
func (s *Server) withLogger(next mcpserver.ToolHandlerFunc) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		logger := s.logger.With().Str("tool", req.Params.Name).Logger()
		return next(logger.WithContext(ctx), req)
	}
}

func (s *Server) registerTools() {
	s.srv.AddTool(mcp.NewTool("list_directory",
		mcp.WithDescription("List the files in the project directory, recursively. Paths are relative to the project directory."),
		mcp.WithString("directory",
			mcp.Description("Directory to list, relative to the project directory (default: the project directory)"),
		),
		mcp.WithBoolean("use_gitignore",
			mcp.Description("Skip files ignored by .gitignore"),
			mcp.DefaultBool(true),
		),
		mcp.WithString("pattern",
			mcp.Description("Only return files matching this glob, for example **/*.go"),
		),
	), s.listDirectory)

	s.srv.AddTool(mcp.NewTool("read_file",
		mcp.WithDescription("Read the contents of a text file."),
		mcp.WithString("file_path",
			mcp.Required(),
			mcp.Description("Path to the file, relative to the project directory"),
		),
	), s.readFile)

	s.srv.AddTool(mcp.NewTool("save_file",
		mcp.WithDescription("Write content to a file, replacing it if it exists. Parent directories are created."),
		mcp.WithString("file_path",
			mcp.Required(),
			mcp.Description("Path to the file, relative to the project directory"),
		),
		mcp.WithString("content",
			mcp.Description("Content to write"),
		),
	), s.saveFile)

	s.srv.AddTool(mcp.NewTool("append_file",
		mcp.WithDescription("Append content to the end of an existing file."),
		mcp.WithString("file_path",
			mcp.Required(),
			mcp.Description("Path to the file, relative to the project directory"),
		),
		mcp.WithString("content",
			mcp.Description("Content to append"),
		),
	), s.appendFile)

	s.srv.AddTool(mcp.NewTool("delete_this_file",
		mcp.WithDescription("Delete a file. Directories are not deleted."),
		mcp.WithString("file_path",
			mcp.Required(),
			mcp.Description("Path to the file, relative to the project directory"),
		),
	), s.deleteFile)

	s.srv.AddTool(mcp.NewTool("move_file",
		mcp.WithDescription("Move or rename a file or directory within the project. Files tracked by git are moved with git."),
		mcp.WithString("source_path",
			mcp.Required(),
			mcp.Description("Current path, relative to the project directory"),
		),
		mcp.WithString("destination_path",
			mcp.Required(),
			mcp.Description("New path, relative to the project directory"),
		),
	), s.moveFile)

	s.srv.AddTool(mcp.NewTool("edit_file",
		mcp.WithDescription("Make selective edits to a file. Each edit replaces the first occurrence of old_text "+
			"with new_text, in order. Edits already present in the file are skipped. Returns a unified diff "+
			"and one match result per edit. The file is written only if every edit succeeds."),
		mcp.WithString("file_path",
			mcp.Required(),
			mcp.Description("Path to the file, relative to the project directory"),
		),
		mcp.WithArray("edits",
			mcp.Required(),
			mcp.Description("Edit operations, each with old_text and new_text"),
			mcp.Items(map[string]any{
				"type": "object",
				"properties": map[string]any{
					"old_text": map[string]any{"type": "string", "description": "Text to replace"},
					"new_text": map[string]any{"type": "string", "description": "Replacement text"},
				},
				"required": []string{"old_text", "new_text"},
			}),
		),
		mcp.WithBoolean("dry_run",
			mcp.Description("Compute the diff without writing the file"),
			mcp.DefaultBool(false),
		),
		mcp.WithObject("options",
			mcp.Description("Matching options: preserve_indentation, normalize_whitespace, partial_match, match_threshold, stop_on_failure"),
		),
	), s.editFile)
}

// jsonResult encodes v as the text content of a successful tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(data)), nil
}
