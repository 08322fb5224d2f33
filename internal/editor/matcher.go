// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package editor

import (
	"strings"
)

// strategy is one of the matching stages the engine tries, in priority order.
type strategy int

const (
	strategyExact strategy = iota
	strategyFuzzy
)

// strategies lists the stages in the order they are attempted.
var strategies = []strategy{strategyExact, strategyFuzzy}

// span locates a matched region of the working document.
type span struct {
	start      int     // Byte offset of the match start
	end        int     // Byte offset just past the match
	lineIndex  int     // Zero-based line where the match begins
	lineCount  int     // Lines covered by the match
	confidence float64 // 1.0 for exact matches
	normalized bool    // Found by whitespace-insensitive comparison
}

// rejection explains why the fuzzy stage did not accept a window.
type rejection struct {
	candidate bool    // False when no window could be scored at all
	lineIndex int     // Line of the best candidate
	score     float64 // Score of the best candidate
}

// exactMatch finds the first literal occurrence of pattern in doc. When
// normalize is set and the literal search fails, it retries with a
// whitespace-insensitive comparison of whole lines.
func exactMatch(doc, pattern string, normalize bool) (span, bool) {
	if pattern == "" {
		return span{}, false
	}
	if idx := strings.Index(doc, pattern); idx >= 0 {
		return span{
			start:      idx,
			end:        idx + len(pattern),
			lineIndex:  strings.Count(doc[:idx], "\n"),
			lineCount:  strings.Count(pattern, "\n") + 1,
			confidence: 1.0,
		}, true
	}
	if !normalize {
		return span{}, false
	}
	return whitespaceMatch(doc, pattern)
}

// whitespaceMatch slides the pattern's normalized lines over the document's
// normalized lines and returns the first window that is equal. The span
// covers the document's own lines, so indentation and inner spacing outside
// the window are untouched.
func whitespaceMatch(doc, pattern string) (span, bool) {
	patternLines := normalizeLines(splitLines(pattern))
	if isBlank(patternLines) {
		return span{}, false
	}

	docLines := splitLines(doc)
	normDoc := normalizeLines(docLines)
	n := len(patternLines)

	for i := 0; i+n <= len(normDoc); i++ {
		if equalLines(normDoc[i:i+n], patternLines) {
			start, end := windowBounds(doc, docLines, i, n, strings.HasSuffix(pattern, "\n"))
			return span{
				start:      start,
				end:        end,
				lineIndex:  i,
				lineCount:  n,
				confidence: 1.0,
				normalized: true,
			}, true
		}
	}
	return span{}, false
}

// fuzzyMatch scores every window of len(pattern lines) document lines and
// accepts the best one if it reaches the threshold. Ties keep the earliest
// window.
func (e *Engine) fuzzyMatch(doc, pattern string, threshold float64, normalize bool) (span, rejection, bool) {
	patternLines := splitLines(pattern)
	docLines := splitLines(doc)
	n := len(patternLines)
	if n == 0 || n > len(docLines) {
		return span{}, rejection{}, false
	}

	cmpPattern, cmpDoc := patternLines, docLines
	if normalize {
		cmpPattern, cmpDoc = normalizeLines(patternLines), normalizeLines(docLines)
	}

	score := e.scorer()
	best, bestIdx := -1.0, 0
	for i := 0; i+n <= len(cmpDoc); i++ {
		s := score(cmpDoc[i:i+n], cmpPattern)
		if s > best {
			best, bestIdx = s, i
		}
	}

	if best < threshold {
		return span{}, rejection{candidate: true, lineIndex: bestIdx, score: best}, false
	}

	start, end := windowBounds(doc, docLines, bestIdx, n, strings.HasSuffix(pattern, "\n"))
	return span{
		start:      start,
		end:        end,
		lineIndex:  bestIdx,
		lineCount:  n,
		confidence: best,
	}, rejection{}, true
}

// windowBounds converts a window of n lines starting at line i into byte
// offsets. The trailing newline is included only when the pattern ends with
// one.
func windowBounds(doc string, lines []string, i, n int, withNewline bool) (int, int) {
	start := lineOffset(lines, i)
	end := lineOffset(lines, i+n-1) + len(lines[i+n-1])
	if withNewline && end < len(doc) && doc[end] == '\n' {
		end++
	}
	return start, end
}

func equalLines(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func isBlank(lines []string) bool {
	for _, l := range lines {
		if l != "" {
			return false
		}
	}
	return true
}
