// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package editor

import (
	"fmt"
	"strings"
)

// reconcileIndentation adapts replacement to the indentation of the text it
// replaces. When the replacement's first line is unindented and the matched
// text's first line is indented, every non-blank replacement line gets the
// matched base indent; nesting inside the replacement stays relative.
// Replacement text that carries its own indentation is returned as authored.
// The second return value describes what was done, or is empty when neither
// side is indented.
func reconcileIndentation(matched, replacement string) (string, string) {
	if replacement == "" {
		return replacement, ""
	}

	base := leadingWhitespace(firstLine(matched))
	own := leadingWhitespace(firstLine(replacement))

	switch {
	case base != "" && own == "":
		lines := strings.Split(replacement, "\n")
		for i, line := range lines {
			if strings.TrimSpace(line) == "" {
				continue
			}
			lines[i] = base + line
		}
		return strings.Join(lines, "\n"),
			fmt.Sprintf("applied base indentation (%s) to unindented replacement", describeIndent(base))
	case base != "" && own != "":
		return replacement,
			fmt.Sprintf("kept replacement indentation (%s), matched text had %s", describeIndent(own), describeIndent(base))
	case own != "":
		return replacement,
			fmt.Sprintf("kept replacement indentation (%s), matched text had none", describeIndent(own))
	default:
		return replacement, ""
	}
}

// describeIndent renders an indent such as "4 spaces" or "1 tab".
func describeIndent(indent string) string {
	tabs := strings.Count(indent, "\t")
	spaces := len(indent) - tabs
	switch {
	case tabs == 0:
		return plural(spaces, "space")
	case spaces == 0:
		return plural(tabs, "tab")
	default:
		return plural(tabs, "tab") + " and " + plural(spaces, "space")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
