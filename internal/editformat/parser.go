// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package editformat reads SEARCH/REPLACE blocks from free-form text and
// applies them, grouped by file, through the file service.
//
// A block names its file on the line before the SEARCH marker:
//
//	path/to/file.go
//	<<<<<<< SEARCH
//	old text
//	=======
//	new text
//	>>>>>>> REPLACE
package editformat

import (
	"fmt"
	"strings"

	"gitlab.com/tozd/go/errors"

	"github.com/petar-djukic/go-fileedit/pkg/types"
)

const (
	markerSearch  = "<<<<<<< SEARCH"
	markerDivider = "======="
	markerReplace = ">>>>>>> REPLACE"
)

// ErrNoBlocks is returned when the input contains no SEARCH markers.
var ErrNoBlocks = errors.Base("no edit blocks found")

// ParseError describes a malformed block.
type ParseError struct {
	Line    int    // 1-based line of the SEARCH marker
	Block   string // Raw text of the block
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// Block is one parsed SEARCH/REPLACE block.
type Block struct {
	FilePath string
	Line     int // 1-based line of the SEARCH marker
	Edit     types.EditOperation
}

// FileEdits is the ordered edit list for one file.
type FileEdits struct {
	FilePath string
	Edits    []types.EditOperation
}

// ParseResult holds the blocks found in a text.
type ParseResult struct {
	Blocks      []Block
	ParseErrors []*ParseError
	Prose       string // Text outside the blocks
	BlocksFound int
}

// Parse extracts every SEARCH/REPLACE block from text. Malformed blocks are
// reported in ParseErrors and parsing continues after them.
func Parse(text string) (*ParseResult, error) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	result := &ParseResult{}
	var prose []string

	for i := 0; i < len(lines); {
		start := nextMarker(lines, i, markerSearch)
		if start < 0 {
			prose = append(prose, lines[i:]...)
			break
		}
		result.BlocksFound++

		path := ""
		if start > i {
			prose = append(prose, lines[i:start-1]...)
			path = cleanPath(lines[start-1])
		}

		search, next, ok := collect(lines, start+1, markerDivider)
		if !ok {
			result.fail(lines, start, next, "unclosed block: missing "+markerDivider+" divider")
			i = next
			continue
		}
		replace, next, ok := collect(lines, next, markerReplace)
		if !ok {
			result.fail(lines, start, next, "unclosed block: missing "+markerReplace+" marker")
			i = next
			continue
		}
		if next < len(lines) && isFence(lines[next]) {
			next++
		}
		i = next

		if path == "" {
			result.fail(lines, start, next, "missing file path before "+markerSearch+" marker")
			continue
		}
		result.Blocks = append(result.Blocks, Block{
			FilePath: path,
			Line:     start + 1,
			Edit:     types.EditOperation{OldText: search, NewText: replace},
		})
	}

	if result.BlocksFound == 0 {
		return nil, ErrNoBlocks
	}
	result.Prose = strings.TrimSpace(strings.Join(prose, "\n"))
	return result, nil
}

// Group collects the blocks by file, in order of each file's first block.
// Edits within a file keep their order in the text.
func (r *ParseResult) Group() []FileEdits {
	var groups []FileEdits
	index := map[string]int{}
	for _, b := range r.Blocks {
		i, ok := index[b.FilePath]
		if !ok {
			i = len(groups)
			index[b.FilePath] = i
			groups = append(groups, FileEdits{FilePath: b.FilePath})
		}
		groups[i].Edits = append(groups[i].Edits, b.Edit)
	}
	return groups
}

func (r *ParseResult) fail(lines []string, start, end int, msg string) {
	end = min(end, len(lines))
	r.ParseErrors = append(r.ParseErrors, &ParseError{
		Line:    start + 1,
		Block:   strings.Join(lines[start:end], "\n"),
		Message: msg,
	})
}

// collect gathers lines from start up to the marker. The returned text ends
// with a newline unless it is empty; next is the line after the marker, or
// len(lines) when the marker is missing.
func collect(lines []string, start int, marker string) (text string, next int, ok bool) {
	end := nextMarker(lines, start, marker)
	if end < 0 {
		return "", len(lines), false
	}
	if end == start {
		return "", end + 1, true
	}
	return strings.Join(lines[start:end], "\n") + "\n", end + 1, true
}

func nextMarker(lines []string, from int, marker string) int {
	for j := from; j < len(lines); j++ {
		if strings.TrimSpace(lines[j]) == marker {
			return j
		}
	}
	return -1
}

// cleanPath extracts a file path from the line before a SEARCH marker.
// Fences and sentences are not paths.
func cleanPath(line string) string {
	s := strings.TrimSpace(line)
	if isFence(s) {
		return ""
	}
	s = strings.TrimSuffix(s, ":")
	s = strings.TrimSpace(strings.Trim(s, "`*"))
	if strings.ContainsAny(s, " \t") && !strings.Contains(s, "/") {
		return ""
	}
	return s
}

func isFence(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "```")
}
