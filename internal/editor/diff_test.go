// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnifiedDiff(t *testing.T) {
	tests := []struct {
		name     string
		original string
		final    string
		want     string
	}{
		{
			name:     "equal texts produce no diff",
			original: "a\n",
			final:    "a\n",
			want:     "",
		},
		{
			name:     "changed first line",
			original: "a = 1\nb = 2\n",
			final:    "a = 10\nb = 2\n",
			want:     "--- a/f.txt\n+++ b/f.txt\n@@ -1,2 +1,2 @@\n-a = 1\n+a = 10\n b = 2\n",
		},
		{
			name:     "changed middle line",
			original: "a\nb\nc\n",
			final:    "a\nB\nc\n",
			want:     "--- a/f.txt\n+++ b/f.txt\n@@ -1,3 +1,3 @@\n a\n-b\n+B\n c\n",
		},
		{
			name:     "context is limited to three lines",
			original: "1\n2\n3\n4\n5\n6\n7\n8\n9\n",
			final:    "1\n2\n3\n4\n5\n6\n7\n8\nnine\n",
			want:     "--- a/f.txt\n+++ b/f.txt\n@@ -6,4 +6,4 @@\n 6\n 7\n 8\n-9\n+nine\n",
		},
		{
			name:     "new file",
			original: "",
			final:    "x\ny\n",
			want:     "--- a/f.txt\n+++ b/f.txt\n@@ -0,0 +1,2 @@\n+x\n+y\n",
		},
		{
			name:     "last line without newline",
			original: "a\nb",
			final:    "a\nB",
			want:     "--- a/f.txt\n+++ b/f.txt\n@@ -1,2 +1,2 @@\n a\n-b\n\\ No newline at end of file\n+B\n\\ No newline at end of file\n",
		},
		{
			name:     "newline added at end",
			original: "a\nb",
			final:    "a\nb\n",
			want:     "--- a/f.txt\n+++ b/f.txt\n@@ -1,2 +1,2 @@\n a\n-b\n\\ No newline at end of file\n+b\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UnifiedDiff(tt.original, tt.final, "a/f.txt", "b/f.txt"))
		})
	}
}
