/*
 * nouwii - Memory-mapped device window router.
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

// Package device defines the memory-mapped register contract every
// peripheral stub implements, and the address-window router that the
// memory subsystem falls back to on a page-table miss.
package device

import (
	"fmt"
	"log/slog"
)

// Device is implemented by every memory-mapped register block. Most
// peripherals only implement a subset of widths; narrowing an
// unimplemented width is a fatal error (§4.1), signaled by panicking with
// *UnimplementedError, which the orchestrator's run loop recovers into the
// guest-fatal-host-fatal path.
type Device interface {
	Read8(addr uint32) uint8
	Read16(addr uint32) uint16
	Read32(addr uint32) uint32
	Read64(addr uint32) uint64
	Write8(addr uint32, v uint8)
	Write16(addr uint32, v uint16)
	Write32(addr uint32, v uint32)
	Write64(addr uint32, v uint64)
}

// UnimplementedError marks a fatal register access: a width a device
// doesn't support, or an offset nothing claims.
type UnimplementedError struct {
	Device string
	Addr   uint32
	Width  int
	Write  bool
}

func (e *UnimplementedError) Error() string {
	op := "read"
	if e.Write {
		op = "write"
	}
	return fmt.Sprintf("%s: unimplemented %s%d at %#08x", e.Device, op, e.Width, e.Addr)
}

// Window describes one disjoint device register range. ExtraMask folds
// additional address bits into the match (the bridge mirrors its 0x400-byte
// window across bit 23, per §3).
type Window struct {
	Name      string
	Base      uint32
	Size      uint32
	ExtraMask uint32
	Dev       Device
}

func (w *Window) matches(addr uint32) bool {
	mask := ^(w.Size - 1) &^ w.ExtraMask
	return addr&mask == w.Base
}

// Router performs the linear address-window scan described in §4.1: on a
// miss every configured window is tried in order, and a total miss is
// fatal.
type Router struct {
	log     *slog.Logger
	windows []Window
}

// NewRouter builds an empty router.
func NewRouter(log *slog.Logger) *Router {
	return &Router{log: log}
}

// Register installs a device window. Windows must not overlap; Register
// does not itself verify this (the caller owns the fixed table in §3).
func (r *Router) Register(w Window) {
	r.windows = append(r.windows, w)
}

func (r *Router) find(addr uint32) *Window {
	for i := range r.windows {
		if r.windows[i].matches(addr) {
			return &r.windows[i]
		}
	}
	return nil
}

func (r *Router) miss(addr uint32, width int, write bool) {
	r.log.Error("unmapped device access", "addr", fmt.Sprintf("%#08x", addr), "width", width, "write", write)
	panic(&UnimplementedError{Device: "router", Addr: addr, Width: width, Write: write})
}

func (r *Router) Read8(addr uint32) uint8 {
	if w := r.find(addr); w != nil {
		return w.Dev.Read8(addr &^ w.ExtraMask)
	}
	r.miss(addr, 8, false)
	return 0
}

func (r *Router) Read16(addr uint32) uint16 {
	if w := r.find(addr); w != nil {
		return w.Dev.Read16(addr &^ w.ExtraMask)
	}
	r.miss(addr, 16, false)
	return 0
}

func (r *Router) Read32(addr uint32) uint32 {
	if w := r.find(addr); w != nil {
		return w.Dev.Read32(addr &^ w.ExtraMask)
	}
	r.miss(addr, 32, false)
	return 0
}

func (r *Router) Read64(addr uint32) uint64 {
	if w := r.find(addr); w != nil {
		return w.Dev.Read64(addr &^ w.ExtraMask)
	}
	r.miss(addr, 64, false)
	return 0
}

func (r *Router) Write8(addr uint32, v uint8) {
	if w := r.find(addr); w != nil {
		w.Dev.Write8(addr&^w.ExtraMask, v)
		return
	}
	r.miss(addr, 8, true)
}

func (r *Router) Write16(addr uint32, v uint16) {
	if w := r.find(addr); w != nil {
		w.Dev.Write16(addr&^w.ExtraMask, v)
		return
	}
	r.miss(addr, 16, true)
}

func (r *Router) Write32(addr uint32, v uint32) {
	if w := r.find(addr); w != nil {
		w.Dev.Write32(addr&^w.ExtraMask, v)
		return
	}
	r.miss(addr, 32, true)
}

func (r *Router) Write64(addr uint32, v uint64) {
	if w := r.find(addr); w != nil {
		w.Dev.Write64(addr&^w.ExtraMask, v)
		return
	}
	r.miss(addr, 64, true)
}
