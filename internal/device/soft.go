/*
 * nouwii - Soft-stub devices with no modeled state.
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

import "log/slog"

// Soft implements a device whose every register is a soft stub (§4.6: AI,
// MI, SI, VI "log and return 0 / ignore writes; they must not crash the
// system").
type Soft struct {
	Base
}

// NewSoft builds a soft-stub device under the given name.
func NewSoft(name string, log *slog.Logger) *Soft {
	return &Soft{Base{Name: name, Log: log}}
}

func (d *Soft) Read8(addr uint32) uint8   { return uint8(d.SoftRead(addr, 8)) }
func (d *Soft) Read16(addr uint32) uint16 { return uint16(d.SoftRead(addr, 16)) }
func (d *Soft) Read32(addr uint32) uint32 { return uint32(d.SoftRead(addr, 32)) }
func (d *Soft) Read64(addr uint32) uint64 { return d.SoftRead(addr, 64) }

func (d *Soft) Write8(addr uint32, v uint8)   { d.SoftWrite(addr, 8, uint64(v)) }
func (d *Soft) Write16(addr uint32, v uint16) { d.SoftWrite(addr, 16, uint64(v)) }
func (d *Soft) Write32(addr uint32, v uint32) { d.SoftWrite(addr, 32, uint64(v)) }
func (d *Soft) Write64(addr uint32, v uint64) { d.SoftWrite(addr, 64, v) }
