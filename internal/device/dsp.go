/*
 * nouwii - Digital signal processor device stub.
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

// DSP is the digital signal processor mailbox/control register block
// (§4.6). Only 16- and 32-bit access are implemented; any other width is
// fatal (§4.1: "width mismatches are fatal errors").
type DSP struct {
	Base

	mailboxIn  uint32
	mailboxOut uint32
	control    uint16
	arSize     uint32
	mmAddr     uint32
	arAddr     uint32
	dmaSize    uint32
}

const (
	dspMailboxIn  = 0x0C00_5000
	dspMailboxOut = 0x0C00_5004
	dspControl    = 0x0C00_500A
	dspARSize     = 0x0C00_500C
	dspMMAddr     = 0x0C00_5010
	dspARAddr     = 0x0C00_5014
	dspDMASize    = 0x0C00_5018

	dspControlGuestMask = 0x0957
	dspCtrlDSPInt       = 0x0001 // write-1-to-clear
	dspCtrlARInt        = 0x0004 // write-1-to-clear
	dspCtrlAIInt        = 0x0010 // write-1-to-clear
	dspCtrlRes          = 0x0800 // self-clears after any write that observes it
	dspMailboxSetBit    = 0x8000_0000
)

func NewDSP(log *slog.Logger) *DSP {
	return &DSP{Base: Base{Name: "DSP", Log: log}}
}

func (d *DSP) Read8(addr uint32) uint8 { d.Fatal(addr, 8, false); return 0 }

func (d *DSP) Read16(addr uint32) uint16 {
	switch addr {
	case dspMailboxIn:
		return uint16(d.mailboxIn >> 16)
	case dspMailboxIn + 2:
		return uint16(d.mailboxIn)
	case dspMailboxOut:
		return uint16(d.mailboxOut >> 16)
	case dspMailboxOut + 2:
		return uint16(d.mailboxOut)
	case dspControl:
		return d.control
	default:
		d.Fatal(addr, 16, false)
		return 0
	}
}

func (d *DSP) Read32(addr uint32) uint32 {
	switch addr {
	case dspMailboxIn:
		return d.mailboxIn
	case dspMailboxOut:
		return d.mailboxOut
	case dspARSize:
		return d.arSize
	case dspMMAddr:
		return d.mmAddr
	case dspARAddr:
		return d.arAddr
	case dspDMASize:
		return d.dmaSize
	default:
		d.Fatal(addr, 32, false)
		return 0
	}
}

func (d *DSP) Read64(addr uint32) uint64 { d.Fatal(addr, 64, false); return 0 }

func (d *DSP) Write8(addr uint32, v uint8) { d.Fatal(addr, 8, true) }

func (d *DSP) Write16(addr uint32, v uint16) {
	switch addr {
	case dspMailboxIn:
		d.mailboxIn = uint32(v)<<16 | (d.mailboxIn & 0xFFFF)
	case dspMailboxIn + 2:
		d.mailboxIn = (d.mailboxIn &^ 0xFFFF) | uint32(v)
	case dspMailboxOut:
		d.mailboxOut = uint32(v)<<16 | (d.mailboxOut & 0xFFFF)
	case dspMailboxOut + 2:
		d.mailboxOut = (d.mailboxOut &^ 0xFFFF) | uint32(v)
	case dspControl:
		d.writeControl(v)
	default:
		d.Fatal(addr, 16, true)
	}
}

func (d *DSP) writeControl(v uint16) {
	next := d.control
	// Write-1-to-clear bits.
	for _, bit := range []uint16{dspCtrlDSPInt, dspCtrlARInt, dspCtrlAIInt} {
		if v&bit != 0 {
			next &^= bit
		}
	}
	// Remaining guest-writable bits take the new value directly.
	rw := uint16(dspControlGuestMask) &^ (dspCtrlDSPInt | dspCtrlARInt | dspCtrlAIInt)
	next = (next &^ rw) | (v & rw)
	d.control = next &^ dspCtrlRes // res observed then self-clears
}

func (d *DSP) Write32(addr uint32, v uint32) {
	switch addr {
	case dspMailboxIn:
		d.mailboxIn = v
	case dspMailboxOut:
		d.mailboxOut = v
	case dspARSize:
		d.arSize = v
	case dspMMAddr:
		d.mmAddr = v
	case dspARAddr:
		d.arAddr = v
	case dspDMASize:
		d.dmaSize = v
		// Observed init-handshake hack (§4.6): writing DMASIZE sets
		// CONTROL.arint and marks MAILBOX_OUT as having data.
		d.control |= dspCtrlARInt
		d.mailboxOut |= dspMailboxSetBit
	default:
		d.Fatal(addr, 32, true)
	}
}

func (d *DSP) Write64(addr uint32, v uint64) { d.Fatal(addr, 64, true) }
