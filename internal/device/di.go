/*
 * nouwii - Disc interface device stub.
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

// DI is the disk-interface register block. Only the status and cover
// registers are modeled (§4.6 lists DI among the stubs with meaningful
// state, driven mostly through the HLE /dev/di ioctl path rather than this
// register window); any other offset is fatal.
type DI struct {
	Base
	status uint32
	cover  uint32
}

const (
	diStatus = 0x0D00_6000
	diCover  = 0x0D00_6004
)

func NewDI(log *slog.Logger) *DI {
	return &DI{Base: Base{Name: "DI", Log: log}}
}

func (d *DI) Read8(addr uint32) uint8   { d.Fatal(addr, 8, false); return 0 }
func (d *DI) Read16(addr uint32) uint16 { d.Fatal(addr, 16, false); return 0 }

func (d *DI) Read32(addr uint32) uint32 {
	switch addr {
	case diStatus:
		return d.status
	case diCover:
		return d.cover
	default:
		d.Fatal(addr, 32, false)
		return 0
	}
}

func (d *DI) Read64(addr uint32) uint64 { d.Fatal(addr, 64, false); return 0 }

func (d *DI) Write8(addr uint32, v uint8)   { d.Fatal(addr, 8, true) }
func (d *DI) Write16(addr uint32, v uint16) { d.Fatal(addr, 16, true) }

func (d *DI) Write32(addr uint32, v uint32) {
	switch addr {
	case diStatus:
		d.status = v
	case diCover:
		d.cover = v
	default:
		d.Fatal(addr, 32, true)
	}
}

func (d *DI) Write64(addr uint32, v uint64) { d.Fatal(addr, 64, true) }
