/*
 * nouwii - Bridge and processor interface interrupt latches.
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

// Package irq implements the two-stage interrupt latch chain described in
// §4.4: a device raises a bit on the bridge, the bridge's masked pending
// bits assert line 14 on the CPU-side (PI) controller, and PI's own masked
// pending bits make the CPU eligible to take an external interrupt.
package irq

import "log/slog"

// BridgePILine is the bridge IRQ line that the bridge asserts on PI whenever
// any bridge interrupt is pending and unmasked (§4.4).
const BridgePILine = 14

// Sink is the narrow interface a device uses to raise or clear an
// interrupt without knowing which controller it talks to. Both Bridge and
// PI implement it.
type Sink interface {
	Assert(n uint)
	Clear(n uint)
}

// Bridge is the Hollywood-side interrupt latch. Devices assert/clear bits
// on it directly; it propagates to PI line 14 whenever pending&mask != 0.
type Bridge struct {
	log *slog.Logger
	pi  *PI

	pending uint32
	mask    uint32
}

// NewBridge wires a bridge latch to the PI controller it propagates to.
func NewBridge(log *slog.Logger, pi *PI) *Bridge {
	return &Bridge{log: log, pi: pi}
}

func (b *Bridge) Reset() {
	b.pending = 0
	b.mask = 0
	b.propagate()
}

// Assert is idempotent on state but logs on the rising edge (§4.4).
func (b *Bridge) Assert(n uint) {
	bit := uint32(1) << n
	if b.pending&bit == 0 {
		b.log.Debug("bridge irq asserted", "line", n)
	}
	b.pending |= bit
	b.propagate()
}

func (b *Bridge) Clear(n uint) {
	bit := uint32(1) << n
	if b.pending&bit != 0 {
		b.log.Debug("bridge irq cleared", "line", n)
	}
	b.pending &^= bit
	b.propagate()
}

// SetMask installs the guest-writable mask register and re-propagates.
func (b *Bridge) SetMask(mask uint32) {
	b.mask = mask
	b.propagate()
}

func (b *Bridge) Pending() uint32 { return b.pending }
func (b *Bridge) Mask() uint32    { return b.mask }

func (b *Bridge) propagate() {
	if b.pending&b.mask != 0 {
		b.pi.Assert(BridgePILine)
	} else {
		b.pi.Clear(BridgePILine)
	}
}

// PI is the CPU-side (Processor Interface) interrupt latch. The CPU polls
// Eligible() at the defined re-examination points (§4.4): post MTMSR/RFI,
// and whenever the PI mask widens or a device assert propagates here.
type PI struct {
	log *slog.Logger

	pending uint32
	mask    uint32

	// onEligible is invoked whenever Eligible() may have newly become
	// true, letting the CPU immediately re-poll instead of waiting for
	// its own next re-examination point.
	onEligible func()
}

// NewPI builds a PI controller. onEligible may be nil; the CPU can instead
// poll Eligible() at its own re-examination points.
func NewPI(log *slog.Logger, onEligible func()) *PI {
	return &PI{log: log, onEligible: onEligible}
}

func (p *PI) Reset() {
	p.pending = 0
	p.mask = 0
}

func (p *PI) Assert(n uint) {
	bit := uint32(1) << n
	if p.pending&bit == 0 {
		p.log.Debug("pi irq asserted", "line", n)
	}
	p.pending |= bit
	p.notify()
}

func (p *PI) Clear(n uint) {
	bit := uint32(1) << n
	if p.pending&bit != 0 {
		p.log.Debug("pi irq cleared", "line", n)
	}
	p.pending &^= bit
	p.notify()
}

// SetMask installs the CPU-side mask register. Widening the mask is a
// re-examination point (§4.4).
func (p *PI) SetMask(mask uint32) {
	p.mask = mask
	p.notify()
}

func (p *PI) Pending() uint32 { return p.pending }
func (p *PI) Mask() uint32    { return p.mask }

// Eligible reports whether the CPU should take an external interrupt.
func (p *PI) Eligible() bool {
	return p.pending&p.mask != 0
}

func (p *PI) notify() {
	if p.Eligible() && p.onEligible != nil {
		p.onEligible()
	}
}
