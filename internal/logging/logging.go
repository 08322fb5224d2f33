// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package logging builds the zerolog logger shared by the CLI and the tool
// server: a human-readable console writer plus an optional JSON log file.
package logging

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

const maxFieldLength = 200

// Config selects where log output goes.
type Config struct {
	Level   string    // trace, debug, info, warn, error (default info)
	File    string    // JSON log file; empty disables file logging
	Console io.Writer // Console destination (default os.Stderr)
	NoColor bool
}

// New returns a logger for cfg and a closer for the log file, if any.
// The console always goes to stderr by default because stdout may carry
// protocol traffic.
func New(cfg Config) (zerolog.Logger, io.Closer, error) {
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
		if err != nil {
			return zerolog.Nop(), nopCloser{}, errors.Errorf("parsing log level %q: %w", cfg.Level, err)
		}
		level = parsed
	}

	console := cfg.Console
	if console == nil {
		console = os.Stderr
	}
	writers := []io.Writer{zerolog.ConsoleWriter{Out: console, TimeFormat: time.TimeOnly, NoColor: cfg.NoColor}}

	var closer io.Closer = nopCloser{}
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return zerolog.Nop(), nopCloser{}, errors.Errorf("creating log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), nopCloser{}, errors.Errorf("opening log file: %w", err)
		}
		writers = append(writers, f)
		closer = f
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().Timestamp().Logger()
	return logger, closer, nil
}

// DefaultLogFile returns the log file used when none is configured:
// <projectDir>/logs/go-fileedit_<timestamp>.log.
func DefaultLogFile(projectDir string, now time.Time) string {
	return filepath.Join(projectDir, "logs", "go-fileedit_"+now.Format("20060102_150405")+".log")
}

// Call logs the start of an operation and returns a function that logs its
// outcome and duration. Long string fields are shortened.
func Call(ctx context.Context, name string, fields map[string]any) func(err error) {
	logger := zerolog.Ctx(ctx).With().Str("call", name).Logger()
	start := time.Now()

	logger.Debug().Fields(shorten(fields)).Msg("call started")

	return func(err error) {
		elapsed := time.Since(start)
		if err != nil {
			logger.Error().Err(err).Dur("duration", elapsed).Msg("call failed")
			return
		}
		logger.Debug().Dur("duration", elapsed).Msg("call completed")
	}
}

func shorten(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		if s, ok := v.(string); ok && len(s) > maxFieldLength {
			cut := maxFieldLength
			for cut > 0 && !utf8.RuneStart(s[cut]) {
				cut--
			}
			v = s[:cut] + "..."
		}
		out[k] = v
	}
	return out
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
