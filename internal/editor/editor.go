// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package editor applies ordered (old_text, new_text) replacements to a
// document in memory. Each edit is matched against the document as mutated
// by the edits before it, using exact matching, an optional
// whitespace-insensitive retry, and an optional fuzzy fallback. Edits whose
// effect is already present are skipped so re-runs are idempotent.
package editor

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/petar-djukic/go-fileedit/pkg/types"
)

const (
	maxDetailText = 50

	detailNoChange       = "No change needed - text already matches desired state"
	detailAlreadyApplied = "Edit already applied - content already in desired state"
	detailUnchanged      = "Replacement leaves the matched text unchanged"
	detailNormalized     = "Matched after whitespace normalization"
	detailNotAttempted   = "Not attempted: an earlier edit failed"
	detailInserted       = "Empty old_text: inserted at start of document"
)

// Engine applies edit lists. The zero value is ready to use.
type Engine struct {
	// Scorer rates fuzzy candidates. Defaults to LevenshteinScorer.
	Scorer Scorer
}

// ApplyEdits applies edits with the default Engine.
func ApplyEdits(document string, edits []types.EditOperation, opts types.EditOptions) (*types.EditReport, error) {
	var e Engine
	return e.ApplyEdits(document, edits, opts)
}

// ApplyEdits applies edits to document in order and reports one MatchResult
// per edit. Per-edit failures are recorded in the report, not returned; the
// error is non-nil only for invalid input, in which case nothing is applied.
// Edits applied before a failure stay applied.
//
// Matching runs on a copy with \n line endings. When the document changed,
// every line break outside the replaced spans keeps its original terminator
// and new line breaks take the terminator of the text they replaced. If
// nothing changed, the report's Document is the input string as given.
func (e *Engine) ApplyEdits(document string, edits []types.EditOperation, opts types.EditOptions) (*types.EditReport, error) {
	if err := checkEdits(edits, opts); err != nil {
		return nil, err
	}

	original := NormalizeLineEndings(document)
	current := original
	endings := scanLineEndings(document)
	report := &types.EditReport{Results: make([]types.MatchResult, 0, len(edits))}

	failed := false
	for i, edit := range edits {
		if failed && opts.StopOnFailure {
			report.Results = append(report.Results, types.MatchResult{
				EditIndex: i,
				MatchType: types.MatchSkipped,
				Details:   detailNotAttempted,
			})
			continue
		}

		res, m, replacement := e.applyOne(current, i, normalizeEdit(edit), opts)
		if res.Matched {
			endings = endings.splice(current, m.start, m.end, replacement)
			current = current[:m.start] + replacement + current[m.end:]
		}
		if res.MatchType == types.MatchFailed {
			failed = true
		}
		report.Results = append(report.Results, res)
	}

	report.Changed = current != original
	if !report.Changed {
		report.Document = document
		return report, nil
	}
	report.Document = endings.restore(current)
	return report, nil
}

// applyOne runs a single edit through the state machine. When the result
// is Matched, doc[m.start:m.end] is to be replaced with replacement.
func (e *Engine) applyOne(doc string, index int, edit types.EditOperation, opts types.EditOptions) (types.MatchResult, span, string) {
	res := types.MatchResult{EditIndex: index}

	if edit.OldText == edit.NewText {
		res.MatchType = types.MatchSkipped
		res.Details = detailNoChange
		return res, span{}, ""
	}
	if edit.OldText == "" {
		return insertAtStart(doc, edit, res)
	}

	var rej rejection
	fuzzyTried := false
	for _, s := range strategies {
		var (
			m  span
			ok bool
		)
		switch s {
		case strategyExact:
			m, ok = exactMatch(doc, edit.OldText, opts.NormalizeWhitespace)
		case strategyFuzzy:
			if !opts.PartialMatch {
				continue
			}
			fuzzyTried = true
			m, rej, ok = e.fuzzyMatch(doc, edit.OldText, opts.MatchThreshold, opts.NormalizeWhitespace)
		}
		if ok {
			out, replacement := replaceSpan(doc, edit, m, s, opts, res)
			return out, m, replacement
		}
	}

	if alreadyApplied(doc, edit, opts) {
		res.MatchType = types.MatchSkipped
		res.Details = detailAlreadyApplied
		return res, span{}, ""
	}

	res.MatchType = types.MatchFailed
	res.Details = failureDetails(edit.OldText, fuzzyTried, rej, opts.MatchThreshold)
	if rej.candidate {
		res.Confidence = rej.score
		res.LineIndex = rej.lineIndex
		res.LineCount = len(splitLines(edit.OldText))
	}
	return res, span{}, ""
}

// insertAtStart handles an empty old_text, which occurs at offset 0 of any
// document. A document that already starts with new_text is left alone.
func insertAtStart(doc string, edit types.EditOperation, res types.MatchResult) (types.MatchResult, span, string) {
	if strings.HasPrefix(doc, edit.NewText) {
		res.MatchType = types.MatchSkipped
		res.Details = detailAlreadyApplied
		return res, span{}, ""
	}
	res.Matched = true
	res.Confidence = 1
	res.MatchType = types.MatchExact
	res.Details = detailInserted
	return res, span{}, edit.NewText
}

// replaceSpan computes the (reconciled) replacement for the matched span.
func replaceSpan(doc string, edit types.EditOperation, m span, s strategy, opts types.EditOptions, res types.MatchResult) (types.MatchResult, string) {
	matched := doc[m.start:m.end]
	replacement := edit.NewText
	if opts.PreserveIndentation {
		replacement, res.IndentationApplied = reconcileIndentation(matched, edit.NewText)
	}

	if replacement == matched {
		res.MatchType = types.MatchSkipped
		res.Details = detailUnchanged
		res.LineIndex = m.lineIndex
		res.LineCount = m.lineCount
		return res, ""
	}

	res.Matched = true
	res.Confidence = m.confidence
	res.LineIndex = m.lineIndex
	res.LineCount = m.lineCount
	res.MatchType = types.MatchExact
	if s == strategyFuzzy {
		res.MatchType = types.MatchFuzzy
	}
	if m.normalized {
		res.Details = detailNormalized
	}
	return res, replacement
}

// failureDetails distinguishes a missing pattern from a fuzzy candidate that
// scored below the threshold.
func failureDetails(oldText string, fuzzyTried bool, rej rejection, threshold float64) string {
	notFound := "Text not found: " + Truncate(oldText, maxDetailText)
	switch {
	case !fuzzyTried:
		return notFound
	case !rej.candidate:
		return notFound + " (no fuzzy candidate)"
	default:
		return fmt.Sprintf("%s (confidence too low: best candidate at line index %d scored %.2f, threshold %.2f)",
			notFound, rej.lineIndex, rej.score, threshold)
	}
}

// normalizeEdit converts the edit's line endings to match the working copy.
func normalizeEdit(edit types.EditOperation) types.EditOperation {
	return types.EditOperation{
		OldText: NormalizeLineEndings(edit.OldText),
		NewText: NormalizeLineEndings(edit.NewText),
	}
}

func (e *Engine) scorer() Scorer {
	if e.Scorer != nil {
		return e.Scorer
	}
	return LevenshteinScorer
}

// Truncate shortens s to at most maxLen bytes, marking the cut with "...".
// Limits below 3 yield just the marker.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := max(maxLen-3, 0)
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
