// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package git

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateMessage(t *testing.T) {
	tests := []struct {
		name        string
		summary     string
		files       []string
		wantSubject string
	}{
		{name: "fix", summary: "Fix typo in README.", files: []string{"README.md"}, wantSubject: "fix: fix typo in README"},
		{name: "rename", summary: "Rename handler file", files: []string{"a.go", "b.go"}, wantSubject: "refactor: rename handler file"},
		{name: "indentation", summary: "Adjust indentation", files: []string{"x.py"}, wantSubject: "style: adjust indentation"},
		{name: "default type", summary: "Bump version", files: []string{"VERSION"}, wantSubject: "chore: bump version"},
		{name: "generated summary for one file", files: []string{"main.go"}, wantSubject: "chore: edit main.go"},
		{name: "generated summary for several files", files: []string{"a.go", "b.go"}, wantSubject: "chore: edit 2 files"},
		{name: "punctuation only summary", summary: "...", wantSubject: "chore: edit files"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := GenerateMessage(tt.summary, tt.files)
			subject, _, _ := strings.Cut(msg, "\n")
			assert.Equal(t, tt.wantSubject, subject)
			assert.True(t, strings.HasSuffix(msg, trailer))
			for _, f := range tt.files {
				assert.Contains(t, msg, "- "+f)
			}
		})
	}
}

func TestGenerateMessage_LongSummaryTruncated(t *testing.T) {
	msg := GenerateMessage(strings.Repeat("update the configuration loader ", 5), []string{"config.go"})
	subject, _, _ := strings.Cut(msg, "\n")
	assert.LessOrEqual(t, len(subject), maxSubjectLength)
	assert.True(t, strings.HasSuffix(subject, "..."))
}

func TestInferCommitType(t *testing.T) {
	tests := []struct {
		summary string
		want    string
	}{
		{"fix the bug", "fix"},
		{"add a section", "feat"},
		{"move files around", "refactor"},
		{"update documentation", "docs"},
		{"prefix handling", "chore"},
	}

	for _, tt := range tests {
		t.Run(tt.summary, func(t *testing.T) {
			assert.Equal(t, tt.want, inferCommitType(tt.summary))
		})
	}
}
