// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package editor

import (
	"strings"

	"github.com/petar-djukic/go-fileedit/pkg/types"
)

// alreadyApplied reports whether an edit's effect is already present in doc.
// Both halves are required: the pattern must be absent, and the replacement
// (as authored, or after indentation reconciliation) must be present. A
// replacement that merely occurs somewhere while the pattern is still there
// does not count.
func alreadyApplied(doc string, edit types.EditOperation, opts types.EditOptions) bool {
	if containsText(doc, edit.OldText, opts.NormalizeWhitespace) {
		return false
	}
	if containsText(doc, edit.NewText, opts.NormalizeWhitespace) {
		return true
	}
	if !opts.PreserveIndentation {
		return false
	}
	reconciled, _ := reconcileIndentation(edit.OldText, edit.NewText)
	return reconciled != edit.NewText && containsText(doc, reconciled, opts.NormalizeWhitespace)
}

// containsText reports whether text occurs in doc literally or, when
// normalize is set, as a whitespace-insensitive window of lines.
func containsText(doc, text string, normalize bool) bool {
	if strings.Contains(doc, text) {
		return true
	}
	if !normalize {
		return false
	}
	_, ok := whitespaceMatch(doc, text)
	return ok
}
