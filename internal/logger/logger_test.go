/*
 * nouwii - Logger test cases.
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

package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestSinkReceivesDebugWhenStderrWouldNot(t *testing.T) {
	var sink bytes.Buffer
	log := New(&sink, slog.LevelDebug, false)

	log.Debug("probe", "k", "v")

	if !strings.Contains(sink.String(), "probe") {
		t.Fatalf("sink missing debug record: %q", sink.String())
	}
}

func TestNilSinkDoesNotPanic(t *testing.T) {
	log := New(nil, slog.LevelInfo, false)
	log.Info("no sink configured")
}

func TestWithAttrsPropagatesToBothDestinations(t *testing.T) {
	var sink bytes.Buffer
	log := New(&sink, slog.LevelInfo, true).With("component", "test")

	log.Info("hello")

	if !strings.Contains(sink.String(), "component=test") {
		t.Fatalf("sink missing propagated attr: %q", sink.String())
	}
}
