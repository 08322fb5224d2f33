// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/petar-djukic/go-fileedit/pkg/types"
)

func TestAlreadyApplied(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		edit types.EditOperation
		opts types.EditOptions
		want bool
	}{
		{
			name: "pattern absent and replacement present",
			doc:  "name = \"new\"\n",
			edit: types.EditOperation{OldText: "name = \"old\"", NewText: "name = \"new\""},
			opts: types.DefaultEditOptions(),
			want: true,
		},
		{
			name: "pattern still present",
			doc:  "a()\nb()\n",
			edit: types.EditOperation{OldText: "a()", NewText: "b()"},
			opts: types.DefaultEditOptions(),
			want: false,
		},
		{
			name: "neither present",
			doc:  "c()\n",
			edit: types.EditOperation{OldText: "a()", NewText: "b()"},
			opts: types.DefaultEditOptions(),
			want: false,
		},
		{
			name: "reconciled replacement present",
			doc:  "func f() {\n\tnewCall()\n\tother()\n}\n",
			edit: types.EditOperation{OldText: "\toldCall()", NewText: "newCall()\nother()"},
			opts: types.EditOptions{PreserveIndentation: true},
			want: true,
		},
		{
			name: "replacement present after whitespace normalization",
			doc:  "x  =  2\n",
			edit: types.EditOperation{OldText: "x = 1", NewText: "x = 2"},
			opts: types.DefaultEditOptions(),
			want: true,
		},
		{
			name: "normalization disabled requires literal presence",
			doc:  "x  =  2\n",
			edit: types.EditOperation{OldText: "x = 1", NewText: "x = 2"},
			opts: types.EditOptions{PreserveIndentation: true},
			want: false,
		},
		{
			name: "deleted text counts as applied",
			doc:  "a\nc\n",
			edit: types.EditOperation{OldText: "b\n", NewText: ""},
			opts: types.DefaultEditOptions(),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, alreadyApplied(tt.doc, tt.edit, tt.opts))
		})
	}
}
