/*
 * nouwii - Processor interface device stub.
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

// IrqLatch is the subset of *irq.PI (or *irq.Bridge) a device stub needs to
// read/write through its registers, without device importing irq directly
// for every field.
type IrqLatch interface {
	Assert(n uint)
	Clear(n uint)
	Pending() uint32
	Mask() uint32
	SetMask(mask uint32)
}

// PI is the CPU-side processor-interface register block (§4.6): INTFLAG,
// INTMASK, RESET, CONSOLE_TYPE.
type PI struct {
	Base
	latch IrqLatch
}

const (
	piIntFlag    = 0x0C00_3000
	piIntMask    = 0x0C00_3004
	piReset      = 0x0C00_3024
	piConsole    = 0x0C00_302C
	consoleValue = 0x2000_0000
)

// NewPI wires the register block to the CPU-side interrupt latch it fronts.
func NewPI(log *slog.Logger, latch IrqLatch) *PI {
	return &PI{Base: Base{Name: "PI", Log: log}, latch: latch}
}

func (d *PI) Read8(addr uint32) uint8  { d.Fatal(addr, 8, false); return 0 }
func (d *PI) Read16(addr uint32) uint16 { d.Fatal(addr, 16, false); return 0 }

func (d *PI) Read32(addr uint32) uint32 {
	switch addr {
	case piIntFlag:
		return d.latch.Pending()
	case piIntMask:
		return d.latch.Mask()
	case piReset:
		return 0
	case piConsole:
		return consoleValue
	default:
		d.Fatal(addr, 32, false)
		return 0
	}
}

func (d *PI) Read64(addr uint32) uint64 { d.Fatal(addr, 64, false); return 0 }

func (d *PI) Write8(addr uint32, v uint8)   { d.Fatal(addr, 8, true) }
func (d *PI) Write16(addr uint32, v uint16) { d.Fatal(addr, 16, true) }

// Write32 accepts only writes to INTMASK; INTFLAG only changes via Assert
// from device code (§4.6: "flags self-set by assert").
func (d *PI) Write32(addr uint32, v uint32) {
	switch addr {
	case piIntMask:
		d.latch.SetMask(v)
	case piIntFlag:
		// Guest writes to INTFLAG are accepted but do not change state;
		// only Assert()/Clear() from the propagation chain do.
	default:
		d.Fatal(addr, 32, true)
	}
}

func (d *PI) Write64(addr uint32, v uint64) { d.Fatal(addr, 64, true) }
