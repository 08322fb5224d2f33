// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package editor

import (
	"unicode/utf8"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Scorer rates how closely a window of document lines resembles the pattern
// lines. It must be pure and return a value between 0.0 and 1.0.
type Scorer func(window, pattern []string) float64

// LevenshteinScorer averages the per-line Levenshtein similarity of the two
// sequences. It is the default Scorer.
func LevenshteinScorer(window, pattern []string) float64 {
	return meanLineScore(window, pattern, levenshteinRatio)
}

// SequenceScorer averages the per-line difflib sequence ratio
// (2*matches / total characters) of the two sequences.
func SequenceScorer(window, pattern []string) float64 {
	return meanLineScore(window, pattern, sequenceRatio)
}

// meanLineScore pairs lines by position and averages their similarity.
// Missing lines on either side score zero.
func meanLineScore(a, b []string, ratio func(x, y string) float64) float64 {
	n := max(len(a), len(b))
	if n == 0 {
		return 1.0
	}
	var total float64
	for i := 0; i < n; i++ {
		if i >= len(a) || i >= len(b) {
			continue
		}
		total += ratio(a[i], b[i])
	}
	return total / float64(n)
}

// levenshteinRatio computes 1 - distance/maxLen over runes using go-diff.
func levenshteinRatio(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(a, b, false)
	distance := dmp.DiffLevenshtein(diffs)
	maxLen := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	return 1.0 - float64(distance)/float64(maxLen)
}

// sequenceRatio runs difflib's SequenceMatcher over the runes of both lines.
func sequenceRatio(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}
	return difflib.NewMatcher(runes(a), runes(b)).Ratio()
}

func runes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
