/*
 * nouwii - Bridge mailbox registers.
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

// Package ipc implements the bridge's guest-facing mailbox registers and
// drives the two-phase ACK/COMPLETE reply sequence described in §4.5. The
// command semantics themselves live in internal/hle; this package only
// owns the wire-level register block and its scheduling.
package ipc

import (
	"log/slog"

	"github.com/noumidev/nouwii/internal/device"
	"github.com/noumidev/nouwii/internal/hle"
	"github.com/noumidev/nouwii/internal/irq"
	"github.com/noumidev/nouwii/internal/memory"
	"github.com/noumidev/nouwii/internal/sched"
)

// Register offsets within the bridge's device window (§4.6).
const (
	RegPPCMSG  = 0x0D00_0000
	RegPPCCTRL = 0x0D00_0004
	RegARMMSG  = 0x0D00_0008
	RegIRQFlag = 0x0D00_0030
	RegIRQMask = 0x0D00_0034
)

// PPCCTRL bit positions (§4.5).
const (
	ctrlX1  = 1 << 0 // execute, rising-edge starts a command
	ctrlY2  = 1 << 1 // acknowledge-pending, write-1-to-clear
	ctrlY1  = 1 << 2 // complete-pending, write-1-to-clear
	ctrlX2  = 1 << 3 // relaunch, rising-edge
	ctrlIY1 = 1 << 4 // interrupt-enable for complete
	ctrlIY2 = 1 << 5 // interrupt-enable for acknowledge

	ctrlGuestMask = ctrlX1 | ctrlX2 | ctrlIY1 | ctrlIY2
)

// BroadwayIPCLine is the bridge IRQ line the mailbox asserts (§4.5).
const BroadwayIPCLine = 30

// Reply timing, in cycles, for the two scheduled phases (§4.5: "after N1
// cycles assert ACKNOWLEDGE... N2 cycles later assert COMPLETE").
const (
	ackDelay      = 100
	completeDelay = 100
)

// Mailbox is the bridge's guest-visible IPC register block: PPCMSG,
// PPCCTRL, and the ARM-side message register, wired to the HLE service
// layer and the bridge interrupt latch.
type Mailbox struct {
	device.Base

	mem   *memory.Memory
	sched *sched.Scheduler
	irqb  *irq.Bridge
	svc   *hle.Service

	ppcmsg  uint32
	ppcctrl uint32
	armmsg  uint32

	lastCmdBase uint32
}

// New wires the mailbox to the subsystems it drives.
func New(log *slog.Logger, mem *memory.Memory, scheduler *sched.Scheduler, irqb *irq.Bridge, svc *hle.Service) *Mailbox {
	return &Mailbox{Base: device.Base{Name: "IPC", Log: log}, mem: mem, sched: scheduler, irqb: irqb, svc: svc}
}

func (m *Mailbox) Reset() {
	m.ppcmsg = 0
	m.ppcctrl = 0
	m.armmsg = 0
	m.lastCmdBase = 0
}

func (m *Mailbox) Read8(addr uint32) uint8   { m.Fatal(addr, 8, false); return 0 }
func (m *Mailbox) Read16(addr uint32) uint16 { m.Fatal(addr, 16, false); return 0 }

func (m *Mailbox) Read32(addr uint32) uint32 {
	switch addr {
	case RegPPCMSG:
		return m.ppcmsg
	case RegPPCCTRL:
		return m.ppcctrl
	case RegARMMSG:
		return m.armmsg
	case RegIRQFlag:
		return m.irqb.Pending()
	case RegIRQMask:
		return m.irqb.Mask()
	default:
		m.Fatal(addr, 32, false)
		return 0
	}
}

func (m *Mailbox) Read64(addr uint32) uint64 { m.Fatal(addr, 64, false); return 0 }

func (m *Mailbox) Write8(addr uint32, v uint8)   { m.Fatal(addr, 8, true) }
func (m *Mailbox) Write16(addr uint32, v uint16) { m.Fatal(addr, 16, true) }

func (m *Mailbox) Write32(addr uint32, v uint32) {
	switch addr {
	case RegPPCMSG:
		m.ppcmsg = v
	case RegPPCCTRL:
		m.writeCtrl(v)
	case RegIRQFlag:
		// Guest writes to the flag register are accepted but ignored; only
		// Assert/Clear from the propagation chain move it (mirrors PI's
		// INTFLAG handling, §4.6).
	case RegIRQMask:
		m.irqb.SetMask(v)
	default:
		m.Fatal(addr, 32, true)
	}
}

func (m *Mailbox) Write64(addr uint32, v uint64) { m.Fatal(addr, 64, true) }

// writeCtrl applies a guest write to PPCCTRL: y1/y2 are write-1-to-clear,
// x1/x2 are rising-edge triggers, iy1/iy2 just latch (§4.5).
func (m *Mailbox) writeCtrl(v uint32) {
	prev := m.ppcctrl

	if v&ctrlY2 != 0 {
		m.ppcctrl &^= ctrlY2
	}
	if v&ctrlY1 != 0 {
		m.ppcctrl &^= ctrlY1
	}
	m.ppcctrl = (m.ppcctrl &^ ctrlGuestMask) | (v & ctrlGuestMask)

	risingX1 := v&ctrlX1 != 0 && prev&ctrlX1 == 0
	risingX2 := v&ctrlX2 != 0 && prev&ctrlX2 == 0
	if risingX1 {
		m.startCommand(m.ppcmsg)
	}
	if risingX2 {
		m.startCommand(m.lastCmdBase)
	}

	m.propagateIRQ()
}

// startCommand executes the packet at base immediately (the service layer
// is synchronous; only the guest-visible ACK/COMPLETE notification is
// phased) and schedules the two reply phases.
func (m *Mailbox) startCommand(base uint32) {
	m.lastCmdBase = base
	m.svc.Execute(m.mem, base)

	m.sched.Schedule("ipc-ack", func(arg int) {
		m.ppcctrl |= ctrlY2
		m.propagateIRQ()
	}, 0, ackDelay)

	m.sched.Schedule("ipc-complete", func(arg int) {
		m.ppcctrl |= ctrlY1
		m.armmsg = m.ppcmsg
		m.propagateIRQ()
	}, 0, ackDelay+completeDelay)
}

// propagateIRQ asserts or clears bridge line 30 per §4.5: (y1&iy1)|(y2&iy2).
func (m *Mailbox) propagateIRQ() {
	active := (m.ppcctrl&ctrlY1 != 0 && m.ppcctrl&ctrlIY1 != 0) ||
		(m.ppcctrl&ctrlY2 != 0 && m.ppcctrl&ctrlIY2 != 0)
	if active {
		m.irqb.Assert(BroadwayIPCLine)
	} else {
		m.irqb.Clear(BroadwayIPCLine)
	}
}
