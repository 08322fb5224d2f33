// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package editor

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

const (
	diffContextLines = 3
	noNewlineMarker  = "\n\\ No newline at end of file\n"
)

// UnifiedDiff renders a standard unified diff of original against final,
// labelled with the caller's file names. It returns an empty string when the
// texts are equal. The engine never consults it to decide an outcome.
func UnifiedDiff(original, final, fromLabel, toLabel string) string {
	if original == final {
		return ""
	}
	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        diffLines(original),
		B:        diffLines(final),
		FromFile: fromLabel,
		ToFile:   toLabel,
		Context:  diffContextLines,
	})
	if err != nil {
		// Only a failing writer can produce an error; the string builder does not.
		return ""
	}
	return text
}

// diffLines splits s into lines that keep their terminators. A last line
// without a newline carries the "No newline at end of file" marker, so it
// differs from the same line with a newline and the output stays well formed.
func diffLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		return lines[:len(lines)-1]
	}
	lines[len(lines)-1] += noNewlineMarker
	return lines
}
