/*
 * nouwii - External interface device stub.
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

// EXI is the external-interface register block: three independent
// channels of 0x14 bytes each at 0x0D00_6800 (§4.6). DMA is not modeled;
// writing CR.tstart logs an immediate transfer and self-clears tstart.
type EXI struct {
	Base
	chans [3]exiChan
}

type exiChan struct {
	csr  uint32
	cr   uint32
	data uint32
}

const (
	exiChanStride = 0x14
	exiNumChans   = 3
	exiOffCSR     = 0x00
	exiOffCR      = 0x0C
	exiOffData    = 0x10

	exiCRTStart = 0x1 // start/busy bit, self-clears on immediate transfer
)

func NewEXI(log *slog.Logger) *EXI {
	return &EXI{Base: Base{Name: "EXI", Log: log}}
}

// decode splits an address into (channel, offset-within-channel, ok).
func (d *EXI) decode(addr uint32) (int, uint32, bool) {
	off := addr - 0x0D00_6800
	ch := int(off / exiChanStride)
	if ch >= exiNumChans {
		return 0, 0, false
	}
	return ch, off % exiChanStride, true
}

func (d *EXI) Read8(addr uint32) uint8 { d.Fatal(addr, 8, false); return 0 }
func (d *EXI) Read16(addr uint32) uint16 { d.Fatal(addr, 16, false); return 0 }

func (d *EXI) Read32(addr uint32) uint32 {
	ch, off, ok := d.decode(addr)
	if !ok {
		d.Fatal(addr, 32, false)
		return 0
	}
	switch off {
	case exiOffCSR:
		return d.chans[ch].csr
	case exiOffCR:
		return d.chans[ch].cr
	case exiOffData:
		return d.chans[ch].data
	default:
		d.Fatal(addr, 32, false)
		return 0
	}
}

func (d *EXI) Read64(addr uint32) uint64 { d.Fatal(addr, 64, false); return 0 }

func (d *EXI) Write8(addr uint32, v uint8)   { d.Fatal(addr, 8, true) }
func (d *EXI) Write16(addr uint32, v uint16) { d.Fatal(addr, 16, true) }

func (d *EXI) Write32(addr uint32, v uint32) {
	ch, off, ok := d.decode(addr)
	if !ok {
		d.Fatal(addr, 32, true)
		return
	}
	switch off {
	case exiOffCSR:
		d.chans[ch].csr = v
	case exiOffCR:
		d.chans[ch].cr = v
		if v&exiCRTStart != 0 {
			d.Log.Debug("exi immediate transfer", "channel", ch)
			d.chans[ch].cr &^= exiCRTStart
		}
	case exiOffData:
		d.chans[ch].data = v
	default:
		d.Fatal(addr, 32, true)
	}
}

func (d *EXI) Write64(addr uint32, v uint64) { d.Fatal(addr, 64, true) }
