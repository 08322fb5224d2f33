// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLineEndings(t *testing.T) {
	assert.Equal(t, "a\nb\nc", NormalizeLineEndings("a\r\nb\rc"))
	assert.Equal(t, "plain\n", NormalizeLineEndings("plain\n"))
}

func TestNormalizeWhitespace(t *testing.T) {
	assert.Equal(t, "a b\nc d\n", NormalizeWhitespace("  a \t b\n\tc   d  \n"))
	assert.Equal(t, "x = 1", NormalizeLine("\t x   =\t1 "))
}

func TestSplitLines(t *testing.T) {
	assert.Nil(t, splitLines(""))
	assert.Equal(t, []string{"a", "b"}, splitLines("a\nb\n"))
	assert.Equal(t, []string{"a", "b"}, splitLines("a\nb"))
	assert.Equal(t, []string{"a", ""}, splitLines("a\n\n"))
}

func TestLineEndings(t *testing.T) {
	assert.Nil(t, scanLineEndings("a\nb\n"))
	assert.Equal(t, lineEndings{"\r\n", "\r", "\n"}, scanLineEndings("a\r\nb\rc\nd"))

	doc := "a\r\nb\nc\r\n"
	le := scanLineEndings(doc)
	normalized := NormalizeLineEndings(doc)
	assert.Equal(t, doc, le.restore(normalized))

	// "b\n" becomes two lines; both take the ending of the replaced line.
	le = le.splice(normalized, 2, 4, "b\nb2\n")
	assert.Equal(t, lineEndings{"\r\n", "\n", "\n", "\r\n"}, le)
	assert.Equal(t, "a\r\nb\nb2\nc\r\n", le.restore("a\nb\nb2\nc\n"))

	var none lineEndings
	assert.Nil(t, none.splice("x\n", 0, 1, "y"))
	assert.Equal(t, "y\n", none.restore("y\n"))
}
