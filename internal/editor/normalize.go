// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package editor

import "strings"

// NormalizeLineEndings converts \r\n and lone \r terminators to \n.
func NormalizeLineEndings(s string) string {
	if !strings.Contains(s, "\r") {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// NormalizeLine trims a line and collapses runs of spaces and tabs into a
// single space. The result is only ever used for comparison.
func NormalizeLine(s string) string {
	return collapseSpaces(strings.TrimSpace(s))
}

// NormalizeWhitespace applies NormalizeLine to every line of s.
func NormalizeWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = NormalizeLine(line)
	}
	return strings.Join(lines, "\n")
}

// collapseSpaces replaces runs of spaces and tabs with a single space.
func collapseSpaces(s string) string {
	var b strings.Builder
	inSpace := false
	for _, r := range s {
		if r == ' ' || r == '\t' {
			if !inSpace {
				b.WriteByte(' ')
				inSpace = true
			}
		} else {
			b.WriteRune(r)
			inSpace = false
		}
	}
	return b.String()
}

// splitLines splits s on \n, dropping the empty element a terminal newline
// would otherwise produce.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// normalizeLines returns a normalized copy of lines.
func normalizeLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = NormalizeLine(line)
	}
	return out
}

// leadingWhitespace returns the run of spaces and tabs that starts line.
func leadingWhitespace(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}

// firstLine returns s up to its first newline.
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// lineOffset returns the byte offset of the start of line idx in the text
// the lines were split from.
func lineOffset(lines []string, idx int) int {
	offset := 0
	for i := 0; i < idx; i++ {
		offset += len(lines[i]) + 1
	}
	return offset
}

// lineEndings records the original terminator of each \n in a normalized
// document, so a mutated document can be written back with the endings its
// untouched lines had. A nil value means the document used \n throughout.
type lineEndings []string

// scanLineEndings returns the terminators of s in order, or nil when s
// contains no \r.
func scanLineEndings(s string) lineEndings {
	if !strings.Contains(s, "\r") {
		return nil
	}
	var endings lineEndings
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\n':
			endings = append(endings, "\n")
		case '\r':
			if i+1 < len(s) && s[i+1] == '\n' {
				endings = append(endings, "\r\n")
				i++
			} else {
				endings = append(endings, "\r")
			}
		}
	}
	return endings
}

// splice updates the endings for doc[start:end] being replaced with
// replacement. New line breaks reuse the replaced span's endings in order,
// then the ending of the line that holds the span.
func (le lineEndings) splice(doc string, start, end int, replacement string) lineEndings {
	if le == nil {
		return nil
	}
	before := strings.Count(doc[:start], "\n")
	removed := le[before : before+strings.Count(doc[start:end], "\n")]
	added := strings.Count(replacement, "\n")

	fallback := "\n"
	switch {
	case len(removed) > 0:
		fallback = removed[len(removed)-1]
	case before < len(le):
		fallback = le[before]
	case before > 0:
		fallback = le[before-1]
	}

	out := make(lineEndings, 0, len(le)-len(removed)+added)
	out = append(out, le[:before]...)
	for i := 0; i < added; i++ {
		if i < len(removed) {
			out = append(out, removed[i])
		} else {
			out = append(out, fallback)
		}
	}
	return append(out, le[before+len(removed):]...)
}

// restore writes the recorded terminators back into a normalized document.
func (le lineEndings) restore(doc string) string {
	if le == nil {
		return doc
	}
	var b strings.Builder
	b.Grow(len(doc) + len(le))
	k := 0
	for i := 0; i < len(doc); i++ {
		if doc[i] == '\n' && k < len(le) {
			b.WriteString(le[k])
			k++
			continue
		}
		b.WriteByte(doc[i])
	}
	return b.String()
}
