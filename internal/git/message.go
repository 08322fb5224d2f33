// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package git

import (
	"fmt"
	"strings"
	"unicode"
)

const maxSubjectLength = 72

// commitTypes maps summary keywords to conventional commit types. The first
// entry with a matching keyword wins.
var commitTypes = []struct {
	keywords []string
	prefix   string
}{
	{[]string{"fix", "bug", "typo", "correct", "repair"}, "fix"},
	{[]string{"rename", "move", "refactor", "restructure"}, "refactor"},
	{[]string{"test", "coverage"}, "test"},
	{[]string{"doc", "docs", "readme", "comment", "documentation"}, "docs"},
	{[]string{"format", "whitespace", "indent", "indentation", "style"}, "style"},
	{[]string{"add", "create", "implement", "new", "introduce"}, "feat"},
}

// GenerateMessage builds a conventional commit message from a short summary
// of the change and the files it touched (root-relative).
func GenerateMessage(summary string, files []string) string {
	summary = strings.TrimSpace(summary)
	if summary == "" {
		summary = defaultSummary(files)
	}

	msg := buildSubject(inferCommitType(summary), summary)
	if body := buildBody(files); body != "" {
		msg += "\n\n" + body
	}
	return msg + "\n\n" + trailer
}

// inferCommitType picks a commit type from whole-word keywords, defaulting
// to chore.
func inferCommitType(summary string) string {
	lower := strings.ToLower(summary)
	for _, ct := range commitTypes {
		for _, kw := range ct.keywords {
			if containsWord(lower, kw) {
				return ct.prefix
			}
		}
	}
	return "chore"
}

// containsWord checks whether text contains keyword bounded by non-letters.
func containsWord(text, keyword string) bool {
	idx := 0
	for {
		i := strings.Index(text[idx:], keyword)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(keyword)
		leftOK := start == 0 || !unicode.IsLetter(rune(text[start-1]))
		rightOK := end == len(text) || !unicode.IsLetter(rune(text[end]))
		if leftOK && rightOK {
			return true
		}
		idx = start + 1
	}
}

func defaultSummary(files []string) string {
	switch len(files) {
	case 0:
		return "edit files"
	case 1:
		return "edit " + files[0]
	default:
		return fmt.Sprintf("edit %d files", len(files))
	}
}

// buildSubject formats "type: summary", truncated to 72 characters.
func buildSubject(commitType, summary string) string {
	summary = strings.TrimRight(summary, ".")
	if summary == "" {
		summary = defaultSummary(nil)
	}
	summary = strings.ToLower(summary[:1]) + summary[1:]

	subject := fmt.Sprintf("%s: %s", commitType, summary)
	if len(subject) > maxSubjectLength {
		subject = subject[:maxSubjectLength-3] + "..."
	}
	return subject
}

func buildBody(files []string) string {
	if len(files) == 0 {
		return ""
	}
	var buf strings.Builder
	buf.WriteString("Files:\n")
	for _, f := range files {
		fmt.Fprintf(&buf, "- %s\n", f)
	}
	return strings.TrimRight(buf.String(), "\n")
}
