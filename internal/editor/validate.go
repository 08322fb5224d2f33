// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package editor

import (
	"encoding/json"
	"math"
	"sort"

	"gitlab.com/tozd/go/errors"

	"github.com/petar-djukic/go-fileedit/pkg/types"
)

// ErrInvalidInput is returned, wrapped, for malformed edit lists and options.
// Nothing is matched or applied when it is returned.
var ErrInvalidInput = errors.Base("invalid input")

// DecodeEdits converts untyped tool input (a decoded JSON or YAML list of
// objects) into edit operations.
func DecodeEdits(raw any) ([]types.EditOperation, error) {
	items, ok := raw.([]any)
	if !ok {
		if raw == nil {
			return nil, errors.Errorf("%w: edits must be a non-empty list", ErrInvalidInput)
		}
		return nil, errors.Errorf("%w: edits must be a list, got %T", ErrInvalidInput, raw)
	}
	if len(items) == 0 {
		return nil, errors.Errorf("%w: edits must be a non-empty list", ErrInvalidInput)
	}

	edits := make([]types.EditOperation, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, errors.Errorf("%w: edit %d must be an object, got %T", ErrInvalidInput, i, item)
		}
		oldRaw, hasOld := obj["old_text"]
		newRaw, hasNew := obj["new_text"]
		if !hasOld || !hasNew {
			return nil, errors.Errorf("%w: edit %d missing required keys 'old_text' or 'new_text'", ErrInvalidInput, i)
		}
		oldText, okOld := oldRaw.(string)
		newText, okNew := newRaw.(string)
		if !okOld || !okNew {
			return nil, errors.Errorf("%w: edit %d values must be strings", ErrInvalidInput, i)
		}
		edits = append(edits, types.EditOperation{OldText: oldText, NewText: newText})
	}
	return edits, nil
}

// DecodeOptions overlays recognized keys of raw onto the default options.
// Unrecognized keys are returned, sorted, so the caller can warn about them.
func DecodeOptions(raw map[string]any) (types.EditOptions, []string, error) {
	opts := types.DefaultEditOptions()
	var ignored []string

	for key, value := range raw {
		var err error
		switch key {
		case "preserve_indentation":
			opts.PreserveIndentation, err = boolOption(key, value)
		case "normalize_whitespace":
			opts.NormalizeWhitespace, err = boolOption(key, value)
		case "partial_match":
			opts.PartialMatch, err = boolOption(key, value)
		case "stop_on_failure":
			opts.StopOnFailure, err = boolOption(key, value)
		case "match_threshold":
			opts.MatchThreshold, err = floatOption(key, value)
		default:
			ignored = append(ignored, key)
		}
		if err != nil {
			return types.EditOptions{}, nil, err
		}
	}

	sort.Strings(ignored)
	if err := checkOptions(opts); err != nil {
		return types.EditOptions{}, nil, err
	}
	return opts, ignored, nil
}

func boolOption(key string, value any) (bool, error) {
	b, ok := value.(bool)
	if !ok {
		return false, errors.Errorf("%w: option %s must be a boolean, got %T", ErrInvalidInput, key, value)
	}
	return b, nil
}

func floatOption(key string, value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, errors.Errorf("%w: option %s: %s", ErrInvalidInput, key, err.Error())
		}
		return f, nil
	default:
		return 0, errors.Errorf("%w: option %s must be a number, got %T", ErrInvalidInput, key, value)
	}
}

func checkOptions(opts types.EditOptions) error {
	if math.IsNaN(opts.MatchThreshold) || opts.MatchThreshold < 0 || opts.MatchThreshold > 1 {
		return errors.Errorf("%w: match_threshold must be between 0 and 1, got %v", ErrInvalidInput, opts.MatchThreshold)
	}
	return nil
}

// checkEdits validates a typed edit list before any matching begins.
func checkEdits(edits []types.EditOperation, opts types.EditOptions) error {
	if len(edits) == 0 {
		return errors.Errorf("%w: edits must be a non-empty list", ErrInvalidInput)
	}
	return checkOptions(opts)
}
