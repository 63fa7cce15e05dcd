/*
 * nouwii - Broadway CPU test cases.
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

package cpu

import (
	"io"
	"log/slog"
	"testing"

	"github.com/noumidev/nouwii/internal/device"
	"github.com/noumidev/nouwii/internal/memory"
)

func testLog() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestState(t *testing.T) (*State, *memory.Memory) {
	t.Helper()
	log := testLog()
	r := device.NewRouter(log)
	mem := memory.New(log, r)
	mem.Reset()
	s := New(log, mem, &fakeIrqSink{})
	s.Reset()
	return s, mem
}

type fakeIrqSink struct{ eligible bool }

func (f *fakeIrqSink) Eligible() bool { return f.eligible }

func asm(opcd uint32, rest uint32) uint32 {
	return opcd<<26 | rest
}

func TestAddiAndAdd(t *testing.T) {
	s, mem := newTestState(t)
	s.SetEntry(0x1000)

	// addi r3, 0, 5
	mem.Write32(0x1000, asm(opAddi, 3<<21|0<<16|5))
	// addi r4, 0, 7
	mem.Write32(0x1004, asm(opAddi, 4<<21|0<<16|7))
	// add r5, r3, r4 (opcode 31, xo=266)
	mem.Write32(0x1008, asm(opX31, 5<<21|3<<16|4<<11|xoAdd<<1))

	s.Run(3)

	if s.GPR[5] != 12 {
		t.Fatalf("r5 = %d, want 12", s.GPR[5])
	}
}

func TestCmpiSetsConditionField(t *testing.T) {
	s, mem := newTestState(t)
	s.SetEntry(0x2000)
	s.GPR[3] = 0xFFFF_FFFF // -1

	// cmpi cr0, 0, r3, 0
	mem.Write32(0x2000, asm(opCmpi, 0<<23|3<<16|0))
	s.Run(1)

	if s.crField(0) != crLT {
		t.Fatalf("cr0 = %#x, want crLT", s.crField(0))
	}
}

func TestBranchConditionalDecrementsCtr(t *testing.T) {
	s, mem := newTestState(t)
	s.SetEntry(0x3000)
	s.CTR = 1

	// bc with BO=bnzero-only (ignore cond, test ctr!=0): BO=0b10000 | ignoreCond? use mask bits
	bo := uint32(boIgnoreCond) // ctr must be nonzero, don't touch cond
	mem.Write32(0x3000, asm(opBc, bo<<21|0<<16|8)) // BD=8 (branch forward 8 if ctr-- != 0... but ctr starts at 1)
	s.Run(1)

	if s.CTR != 0 {
		t.Fatalf("CTR = %d, want 0 after decrement", s.CTR)
	}
	// ctr was 1, decremented to 0, so branch-not-taken (ctrIsZero bit clear means branch if ctr!=0)
	if s.IA != 0x3004 {
		t.Fatalf("IA = %#x, want fallthrough 0x3004", s.IA)
	}
}

func TestStoreLoadWordRoundTrip(t *testing.T) {
	s, mem := newTestState(t)
	s.SetEntry(0x4000)
	s.GPR[3] = 0xCAFEBABE
	s.GPR[4] = 0x1000

	// stw r3, 0(r4)
	mem.Write32(0x4000, asm(opStw, 3<<21|4<<16|0))
	// lwz r5, 0(r4)
	mem.Write32(0x4004, asm(opLwz, 5<<21|4<<16|0))
	s.Run(2)

	if s.GPR[5] != 0xCAFEBABE {
		t.Fatalf("r5 = %#x, want 0xCAFEBABE", s.GPR[5])
	}
}

func TestSystemCallAndRfiRoundTrip(t *testing.T) {
	s, mem := newTestState(t)
	s.SetEntry(0x5000)
	s.setMSRBit(msrEE, true)

	mem.Write32(0x5000, asm(opSc, 0))
	// at the vector, execute rfi
	mem.Write32(vectorSystemCall, asm(opCr, xoRfi<<1))

	s.Run(1) // sc: saves SRR0=return address (0x5004), jumps to 0xC00
	if s.SRR0 != 0x5004 {
		t.Fatalf("SRR0 = %#x, want 0x5004", s.SRR0)
	}
	if s.IA != vectorSystemCall {
		t.Fatalf("IA = %#x, want vector %#x", s.IA, vectorSystemCall)
	}

	s.Run(1) // rfi: returns to SRR0
	if s.IA != 0x5000+4 {
		t.Fatalf("IA after rfi = %#x, want 0x5004 (sc's successor)", s.IA)
	}
}

func TestExternalInterruptTakenWhenEligible(t *testing.T) {
	s, mem := newTestState(t)
	s.SetEntry(0x6000)
	s.setMSRBit(msrEE, true)
	s.pi = &fakeIrqSink{eligible: true}

	// addi r3,0,1 -- before this executes, the interrupt should already
	// have been taken at the re-examination point triggered by mtmsr in a
	// prior instruction. Simulate the simplest re-examination trigger: a
	// direct mtmsr writing EE=1 while already eligible.
	mem.Write32(0x6000, asm(opX31, 3<<21|0<<16|xoMtmsr<<1))
	s.GPR[3] = s.MSR // mtmsr r3 with current MSR (EE already set)

	s.Run(1)

	if s.IA != vectorExternal {
		t.Fatalf("IA = %#x, want external vector %#x", s.IA, vectorExternal)
	}
}

func TestBatTranslationIdentityWhenDisabled(t *testing.T) {
	s, _ := newTestState(t)
	// Translation disabled by default (msrDR/msrIR clear after Reset).
	pa := s.translate(0x1234_5678, false)
	if pa != 0x1234_5678 {
		t.Fatalf("pa = %#x, want identity map", pa)
	}
}

func TestBatTranslationMatch(t *testing.T) {
	s, _ := newTestState(t)
	s.setMSRBit(msrDR, true)

	// BEPI=0, BL=0 (128KiB block), valid entry covering addr 0.
	s.DBAT[0] = batPair{upper: 0, lower: 0}
	pa := s.translate(0x0000_1000, false)
	if pa != 0x0000_1000 {
		t.Fatalf("pa = %#x, want 0x1000 (bepi=0 maps to brpn=0)", pa)
	}
}

func TestFloatAddAndFctiwz(t *testing.T) {
	s, mem := newTestState(t)
	s.SetEntry(0x7000)
	s.setPS0(1, 2.5)
	s.setPS0(2, 1.5)

	// fadd f3, f1, f2 (opcode 63, fxo=21)
	mem.Write32(0x7000, asm(opX63, 3<<21|1<<16|2<<11|fxoFadd<<1))
	s.Run(1)
	if got := s.ps0(3); got != 4.0 {
		t.Fatalf("f3 = %v, want 4.0", got)
	}

	s.setPS0(4, 9.9)
	mem.Write32(0x7004, asm(opX63, 5<<21|0<<16|4<<11|xoFctiwz<<1))
	s.Run(1)
	if int32(uint32(s.FPR[5][0])) != 9 {
		t.Fatalf("fctiwz result = %d, want 9", int32(uint32(s.FPR[5][0])))
	}
}

func TestLswiStswiRoundTrip(t *testing.T) {
	s, mem := newTestState(t)
	s.SetEntry(0x8000)
	s.GPR[3] = 0x2000
	s.GPR[10] = 0x1122_3344
	s.GPR[11] = 0x5566_7788

	// stswi r10, r3, 8 (two registers worth of bytes)
	mem.Write32(0x8000, asm(opX31, 10<<21|3<<16|8<<11|xoStswi<<1))
	// lswi r20, r3, 8
	mem.Write32(0x8004, asm(opX31, 20<<21|3<<16|8<<11|xoLswi<<1))
	s.Run(2)

	if s.GPR[20] != 0x1122_3344 || s.GPR[21] != 0x5566_7788 {
		t.Fatalf("lswi result = %#x %#x, want 0x11223344 0x55667788", s.GPR[20], s.GPR[21])
	}
}

func TestUnenumeratedOpcodePanics(t *testing.T) {
	s, mem := newTestState(t)
	s.SetEntry(0x9000)

	// twi (opcode 3) is not in the required instruction set (§4.2) and
	// must hit the fatal unimplemented-opcode path, not be ignored.
	mem.Write32(0x9000, asm(3, 0))

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for unenumerated opcode, got none")
		}
	}()
	s.Run(1)
}
