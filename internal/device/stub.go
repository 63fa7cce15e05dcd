/*
 * nouwii - Shared device stub plumbing.
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

package device

import (
	"fmt"
	"log/slog"
)

// Base gives a peripheral stub the fatal/soft-stub helpers §4.6 and §7
// describe, plus a name for diagnostics. Embed it and implement only the
// widths/offsets the device actually supports; route everything else
// through Fatal or Soft.
type Base struct {
	Name string
	Log  *slog.Logger
}

// Fatal raises the guest-fatal-host-fatal path for an unimplemented
// width/offset combination (most devices; §4.6 "unknown offsets/widths are
// fatal").
func (b *Base) Fatal(addr uint32, width int, write bool) {
	b.Log.Error("unimplemented device access", "device", b.Name, "addr", fmt.Sprintf("%#08x", addr), "width", width, "write", write)
	panic(&UnimplementedError{Device: b.Name, Addr: addr, Width: width, Write: write})
}

// SoftRead warns on an unknown read and returns zero — the policy for AI,
// MI, SI, and VI (§4.6, §7 "soft stubs").
func (b *Base) SoftRead(addr uint32, width int) uint64 {
	b.Log.Warn("unimplemented register read, returning zero", "device", b.Name, "addr", fmt.Sprintf("%#08x", addr), "width", width)
	return 0
}

// SoftWrite warns on an unknown write and ignores it.
func (b *Base) SoftWrite(addr uint32, width int, v uint64) {
	b.Log.Warn("unimplemented register write, ignored", "device", b.Name, "addr", fmt.Sprintf("%#08x", addr), "width", width, "value", v)
}
