/*
 * nouwii - Broadway register state.
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

// Package cpu implements the Broadway instruction interpreter: fetch/
// decode/execute, BAT translation, the SPR file, and paired-single
// floating point with quantized load/store (§4.2).
package cpu

import "log/slog"

// Memory is the narrow contract the interpreter needs from the memory
// subsystem (§5: "CPU depends on a Memory abstraction").
type Memory interface {
	Read8(addr uint32) uint8
	Read16(addr uint32) uint16
	Read32(addr uint32) uint32
	Read64(addr uint32) uint64
	Write8(addr uint32, v uint8)
	Write16(addr uint32, v uint16)
	Write32(addr uint32, v uint32)
	Write64(addr uint32, v uint64)
}

// IrqSink is the CPU-side interrupt controller the interpreter polls for
// external-interrupt eligibility at the defined re-examination points
// (§4.4).
type IrqSink interface {
	Eligible() bool
}

// batPair is one BAT descriptor pair (upper/lower), §3.
type batPair struct {
	upper uint32
	lower uint32
}

// State is the process-wide CPU context (§3). There is exactly one
// instance; nothing in this package is safe to share across goroutines,
// matching the spec's single-threaded execution model.
type State struct {
	log *slog.Logger
	mem Memory
	pi  IrqSink

	GPR [32]uint32

	// FPR lanes hold the raw IEEE-754 double bit pattern for PS0/PS1; they
	// alias bit-exactly with the paired-single view (§3 invariant).
	FPR [32][2]uint64

	CR    uint32 // condition register, 8 nibbles
	FPSCR uint32
	MSR   uint32
	XER   uint32
	LR    uint32
	CTR   uint32
	DAR   uint32
	DEC   uint32

	TBL uint32
	TBU uint32

	IBAT [8]batPair
	DBAT [8]batPair
	GQR  [8]uint32

	HID0 uint32
	HID2 uint32
	HID4 uint32
	L2CR uint32

	SPRG [4]uint32

	SRR0 uint32
	SRR1 uint32

	MMCR0 uint32
	MMCR1 uint32
	PMC   [4]uint32

	IA  uint32 // instruction address, advanced before dispatch
	CIA uint32 // address of the instruction currently executing

	cycleBudget int
	tbPrescale  int
}

// New builds a CPU context wired to its memory and CPU-side interrupt
// controller. The caller must call Reset before first use.
func New(log *slog.Logger, mem Memory, pi IrqSink) *State {
	return &State{log: log, mem: mem, pi: pi}
}

// CycleBudget returns a pointer to the live remaining-cycle cell, handed to
// the scheduler so its deadlines are measured relative to slice end (§4.3).
func (s *State) CycleBudget() *int { return &s.cycleBudget }

// Reset clears architectural state. HID4 bit 31 always reads 1 (§3), so it
// is pre-set here rather than forced on every read.
func (s *State) Reset() {
	*s = State{log: s.log, mem: s.mem, pi: s.pi}
	s.HID4 = 1 << 0 // bit 31 in MSB-numbering == bit 0 in Go's LSB numbering
}

// SetEntry installs the guest entry point (from the loader) as the first
// fetch address.
func (s *State) SetEntry(addr uint32) {
	s.IA = addr
}

// MSR bit positions, MSB-numbered per the architecture and converted to
// Go's LSB bit index (bit 31 in MSB numbering is bit 0 here).
const (
	msrPOW = 31 - 13
	msrILE = 31 - 15
	msrEE  = 31 - 16
	msrPR  = 31 - 17
	msrFP  = 31 - 18
	msrME  = 31 - 19
	msrFE0 = 31 - 20
	msrSE  = 31 - 21
	msrBE  = 31 - 22
	msrFE1 = 31 - 23
	msrIP  = 31 - 25
	msrIR  = 31 - 26
	msrDR  = 31 - 27
	msrRI  = 31 - 30
	msrLE  = 31 - 31
)

func (s *State) msrBit(pos uint) bool { return s.MSR&(1<<pos) != 0 }

func (s *State) setMSRBit(pos uint, v bool) {
	if v {
		s.MSR |= 1 << pos
	} else {
		s.MSR &^= 1 << pos
	}
}
