// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/petar-djukic/go-fileedit/pkg/fileedit"
	"github.com/petar-djukic/go-fileedit/pkg/types"
)

var (
	headerColor = color.New(color.Bold)
	hunkColor   = color.New(color.FgCyan)
	addColor    = color.New(color.FgGreen)
	delColor    = color.New(color.FgRed)
	failColor   = color.New(color.FgRed, color.Bold)
	skipColor   = color.New(color.FgYellow)
)

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

// printResult writes a file's diff followed by one line per edit.
func printResult(w io.Writer, r *fileedit.Result) {
	if r.Error != "" && len(r.MatchResults) == 0 {
		failColor.Fprintf(w, "%s: %s\n", r.FilePath, r.Error)
		return
	}
	printDiff(w, r.Diff)
	for _, m := range r.MatchResults {
		printMatch(w, r.FilePath, m)
	}
	if r.Message != "" {
		fmt.Fprintf(w, "%s: %s\n", r.FilePath, r.Message)
	}
	if r.Commit != "" {
		fmt.Fprintf(w, "%s: committed %s\n", r.FilePath, shortHash(r.Commit))
	}
}

// printDiff colors a unified diff line by line.
func printDiff(w io.Writer, diff string) {
	for _, line := range strings.SplitAfter(diff, "\n") {
		switch {
		case line == "":
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			headerColor.Fprint(w, line)
		case strings.HasPrefix(line, "@@"):
			hunkColor.Fprint(w, line)
		case strings.HasPrefix(line, "+"):
			addColor.Fprint(w, line)
		case strings.HasPrefix(line, "-"):
			delColor.Fprint(w, line)
		default:
			fmt.Fprint(w, line)
		}
	}
	if diff != "" && !strings.HasSuffix(diff, "\n") {
		fmt.Fprintln(w)
	}
}

func printMatch(w io.Writer, path string, m types.MatchResult) {
	line := fmt.Sprintf("%s: edit %d: %s", path, m.EditIndex, m.MatchType)
	if m.Matched {
		line += fmt.Sprintf(" at line %d (confidence %.2f)", m.LineIndex+1, m.Confidence)
	}
	if m.Details != "" {
		line += " - " + m.Details
	}

	switch m.MatchType {
	case types.MatchFailed:
		failColor.Fprintln(w, line)
	case types.MatchSkipped:
		skipColor.Fprintln(w, line)
	default:
		fmt.Fprintln(w, line)
	}
}

func shortHash(h string) string {
	if len(h) > 7 {
		return h[:7]
	}
	return h
}
