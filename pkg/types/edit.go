// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package types holds the data model shared by the edit engine, the file
// service, and the public fileedit package.
package types

import (
	"encoding/json"

	"gitlab.com/tozd/go/errors"
)

// DefaultMatchThreshold is the minimum fuzzy confidence used by default.
const DefaultMatchThreshold = 0.8

// EditOperation is a single requested replacement: the first occurrence of
// OldText becomes NewText. OldText == NewText is a legal no-op.
type EditOperation struct {
	OldText string `json:"old_text" yaml:"old_text"`
	NewText string `json:"new_text" yaml:"new_text"`
}

// EditOptions tunes how edits are matched and applied.
type EditOptions struct {
	PreserveIndentation bool `json:"preserve_indentation" yaml:"preserve_indentation"`
	NormalizeWhitespace bool `json:"normalize_whitespace" yaml:"normalize_whitespace"`

	// PartialMatch enables the fuzzy fallback; MatchThreshold is the minimum
	// confidence (0.0-1.0) a fuzzy candidate needs to be accepted.
	PartialMatch   bool    `json:"partial_match" yaml:"partial_match"`
	MatchThreshold float64 `json:"match_threshold" yaml:"match_threshold"`

	// StopOnFailure reports every edit after the first failure as skipped
	// instead of attempting it.
	StopOnFailure bool `json:"stop_on_failure" yaml:"stop_on_failure"`
}

// DefaultEditOptions returns the options used when a caller supplies none.
func DefaultEditOptions() EditOptions {
	return EditOptions{
		PreserveIndentation: true,
		NormalizeWhitespace: true,
		MatchThreshold:      DefaultMatchThreshold,
	}
}

// MatchType identifies how an edit was resolved.
type MatchType int

const (
	MatchExact   MatchType = iota // Literal or whitespace-insensitive match
	MatchFuzzy                    // Similarity-threshold match
	MatchSkipped                  // No-op or already applied
	MatchFailed                   // Nothing matched
)

func (m MatchType) String() string {
	switch m {
	case MatchExact:
		return "exact"
	case MatchFuzzy:
		return "fuzzy"
	case MatchSkipped:
		return "skipped"
	case MatchFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// MarshalJSON renders the match type as its lowercase name.
func (m MatchType) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON parses a lowercase match type name.
func (m *MatchType) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for _, t := range []MatchType{MatchExact, MatchFuzzy, MatchSkipped, MatchFailed} {
		if t.String() == name {
			*m = t
			return nil
		}
	}
	return errors.Errorf("unknown match type %q", name)
}

// MatchResult is the per-edit outcome of an ApplyEdits call. LineIndex is
// zero-based against the document as it stood before the edit was applied.
type MatchResult struct {
	EditIndex          int       `json:"edit_index"`
	Matched            bool      `json:"matched"`
	Confidence         float64   `json:"confidence"`
	LineIndex          int       `json:"line_index"`
	LineCount          int       `json:"line_count"`
	MatchType          MatchType `json:"match_type"`
	Details            string    `json:"details,omitempty"`
	IndentationApplied string    `json:"indentation_applied,omitempty"`
}

// EditReport aggregates the results of one ApplyEdits call.
type EditReport struct {
	Results  []MatchResult `json:"match_results"`
	Changed  bool          `json:"changed"`
	Document string        `json:"-"`
}

// Failed returns the number of edits that could not be matched.
func (r *EditReport) Failed() int {
	n := 0
	for _, res := range r.Results {
		if res.MatchType == MatchFailed {
			n++
		}
	}
	return n
}

// Success reports whether every edit matched, was skipped, or was already
// applied.
func (r *EditReport) Success() bool {
	return r.Failed() == 0
}
