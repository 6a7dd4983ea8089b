// Copyright (c) 2026 The WorkerFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package log wraps log/slog with the conventions used across the
// repository: packages take a contextual logger once at file scope
// via WithContext and the process selects the handler at startup.
package log

import (
	"context"
	"log/slog"
	"os"
	"sync/atomic"
)

// Logger emits leveled, structured records.
type Logger interface {
	Trace(msg string, ctx ...any)
	Debug(msg string, ctx ...any)
	Info(msg string, ctx ...any)
	Warn(msg string, ctx ...any)
	Error(msg string, ctx ...any)
	With(ctx ...any) Logger
}

// LevelTrace sits below slog's debug level.
const LevelTrace = slog.Level(-8)

var root atomic.Pointer[slog.Logger]

func init() {
	root.Store(slog.New(DiscardHandler()))
}

// SetHandler replaces the process-wide handler. Loggers already
// handed out keep logging through the new handler.
func SetHandler(h slog.Handler) {
	root.Store(slog.New(h))
}

// WithContext returns a logger carrying the given key-value context.
func WithContext(ctx ...any) Logger {
	return &logger{ctx: ctx}
}

type logger struct {
	ctx []any
}

func (l *logger) write(level slog.Level, msg string, ctx []any) {
	r := root.Load()
	args := make([]any, 0, len(l.ctx)+len(ctx))
	args = append(args, l.ctx...)
	args = append(args, ctx...)
	r.Log(context.Background(), level, msg, args...)
}

func (l *logger) Trace(msg string, ctx ...any) { l.write(LevelTrace, msg, ctx) }
func (l *logger) Debug(msg string, ctx ...any) { l.write(slog.LevelDebug, msg, ctx) }
func (l *logger) Info(msg string, ctx ...any)  { l.write(slog.LevelInfo, msg, ctx) }
func (l *logger) Warn(msg string, ctx ...any)  { l.write(slog.LevelWarn, msg, ctx) }
func (l *logger) Error(msg string, ctx ...any) { l.write(slog.LevelError, msg, ctx) }

func (l *logger) With(ctx ...any) Logger {
	merged := make([]any, 0, len(l.ctx)+len(ctx))
	merged = append(merged, l.ctx...)
	merged = append(merged, ctx...)
	return &logger{ctx: merged}
}

// NewTerminalHandler returns a text handler writing to stderr at the
// given level.
func NewTerminalHandler(level slog.Level) slog.Handler {
	return slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
}

// DiscardHandler returns a no-op handler.
func DiscardHandler() slog.Handler {
	return discardHandler{}
}

type discardHandler struct{}

func (discardHandler) Handle(context.Context, slog.Record) error { return nil }

func (discardHandler) Enabled(context.Context, slog.Level) bool { return false }

func (h discardHandler) WithGroup(string) slog.Handler { return h }

func (h discardHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
