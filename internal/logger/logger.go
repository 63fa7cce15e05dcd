/*
 * nouwii - Dual-destination slog handler.
 *
 * Copyright 2025, noumidev
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package logger wraps log/slog with the dual-destination handler the
// rest of nouwii is built around: everything enabled by level goes to an
// optional sink, while stderr only mirrors non-debug records (or
// everything, when verbose is set).
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// tee fans a record out to two independently-leveled slog.TextHandlers
// rather than hand-formatting the line itself; sink and stderr each decide
// on their own whether a given record clears their threshold.
type tee struct {
	sink   slog.Handler
	stderr slog.Handler
}

// New builds a *slog.Logger that writes records passing level to sink (nil
// is accepted and treated as a no-op destination) and mirrors to stderr.
// Debug records only reach stderr when verbose is true.
func New(sink io.Writer, level slog.Leveler, verbose bool) *slog.Logger {
	if sink == nil {
		sink = io.Discard
	}
	stderrLevel := slog.LevelInfo
	if verbose {
		stderrLevel = slog.LevelDebug
	}
	return slog.New(&tee{
		sink:   slog.NewTextHandler(sink, &slog.HandlerOptions{Level: level}),
		stderr: slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: stderrLevel}),
	})
}

func (t *tee) Enabled(ctx context.Context, level slog.Level) bool {
	return t.sink.Enabled(ctx, level) || t.stderr.Enabled(ctx, level)
}

func (t *tee) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &tee{sink: t.sink.WithAttrs(attrs), stderr: t.stderr.WithAttrs(attrs)}
}

func (t *tee) WithGroup(name string) slog.Handler {
	return &tee{sink: t.sink.WithGroup(name), stderr: t.stderr.WithGroup(name)}
}

func (t *tee) Handle(ctx context.Context, r slog.Record) error {
	var err error
	if t.sink.Enabled(ctx, r.Level) {
		if e := t.sink.Handle(ctx, r.Clone()); e != nil {
			err = e
		}
	}
	if t.stderr.Enabled(ctx, r.Level) {
		if e := t.stderr.Handle(ctx, r.Clone()); e != nil {
			err = e
		}
	}
	return err
}
