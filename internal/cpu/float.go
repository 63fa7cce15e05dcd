/*
 * nouwii - Broadway paired-single floating point instructions.
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

import "github.com/noumidev/nouwii/internal/bits"

// A-form floating-point extended opcodes (FXO, bits 26-30, §4.2).
const (
	fxoFdiv  = 18
	fxoFsub  = 20
	fxoFadd  = 21
	fxoFmul  = 25
	fxoFmsub = 28
	fxoFmadd = 29
)

// X-form floating-point extended opcodes (full 10-bit XO).
const (
	xoFcmpu  = 0
	xoMtfsb1 = 38
	xoFneg   = 40
	xoFmr    = 72
	xoFctiwz = 15
	xoMtfsf  = 711
)

func (s *State) dispatch63(i instr) { s.dispatchFloatGroup(i) }

// dispatch59 is the single-precision sibling of opcode 63 (fadds/fsubs/
// etc.); the interpreter does not model single/double rounding
// differences for these forms (SPEC_FULL.md: out of scope beyond what the
// required instruction list names), so it shares the double-precision
// implementation.
func (s *State) dispatch59(i instr) { s.dispatchFloatGroup(i) }

func (s *State) dispatchFloatGroup(i instr) {
	switch i.FXO() {
	case fxoFadd:
		s.execFadd(i)
		return
	case fxoFsub:
		s.execFsub(i)
		return
	case fxoFmul:
		s.execFmul(i)
		return
	case fxoFdiv:
		s.execFdiv(i)
		return
	case fxoFmadd:
		s.execFmadd(i)
		return
	case fxoFmsub:
		s.execFmsub(i)
		return
	}

	switch i.XO() {
	case xoFcmpu:
		s.execFcmpu(i)
	case xoFneg:
		s.execFneg(i)
	case xoFmr:
		s.execFmr(i)
	case xoFctiwz:
		s.execFctiwz(i)
	case xoMtfsb1:
		s.execMtfsb1(i)
	case xoMtfsf:
		s.execMtfsf(i)
	default:
		s.log.Error("unimplemented float opcode", "fxo", i.FXO(), "xo", i.XO(), "addr", s.CIA)
		panic("cpu: unimplemented float opcode")
	}
}

func (s *State) ps0(reg int) float64 { return bits.BitsToF64(s.FPR[reg][0]) }
func (s *State) setPS0(reg int, v float64) {
	s.FPR[reg][0] = bits.F64ToBits(v)
}

func (s *State) execFadd(i instr) {
	s.setPS0(i.FRD(), s.ps0(i.FRA())+s.ps0(i.FRB()))
}

func (s *State) execFsub(i instr) {
	s.setPS0(i.FRD(), s.ps0(i.FRA())-s.ps0(i.FRB()))
}

func (s *State) execFmul(i instr) {
	s.setPS0(i.FRD(), s.ps0(i.FRA())*s.ps0(i.FRC()))
}

func (s *State) execFdiv(i instr) {
	s.setPS0(i.FRD(), s.ps0(i.FRA())/s.ps0(i.FRB()))
}

func (s *State) execFmadd(i instr) {
	s.setPS0(i.FRD(), s.ps0(i.FRA())*s.ps0(i.FRC())+s.ps0(i.FRB()))
}

func (s *State) execFmsub(i instr) {
	s.setPS0(i.FRD(), s.ps0(i.FRA())*s.ps0(i.FRC())-s.ps0(i.FRB()))
}

func (s *State) execFmr(i instr) {
	s.FPR[i.FRD()] = s.FPR[i.FRB()]
}

func (s *State) execFneg(i instr) {
	s.setPS0(i.FRD(), -s.ps0(i.FRB()))
	s.FPR[i.FRD()][1] = s.FPR[i.FRB()][1]
}

// execFcmpu sets the "unordered" bit for NaN operands (§4.2).
func (s *State) execFcmpu(i instr) {
	a, b := s.ps0(i.FRA()), s.ps0(i.FRB())
	var v uint32
	switch {
	case a != a || b != b: // NaN
		v = crSO
	case a < b:
		v = crLT
	case a > b:
		v = crGT
	default:
		v = crEQ
	}
	s.setCRField(i.CRFD(), v)
}

// execFctiwz truncates toward zero to a 32-bit integer stored in the low
// half of the PS0 lane (§4.2).
func (s *State) execFctiwz(i instr) {
	v := int32(s.ps0(i.FRB()))
	s.FPR[i.FRD()][0] = (s.FPR[i.FRD()][0] &^ 0xFFFF_FFFF) | uint64(uint32(v))
}

// execMtfsb1 sets one FPSCR bit, addressed by the 5-bit crbD field (same
// bit range as FRD).
func (s *State) execMtfsb1(i instr) {
	bit := uint(i.FRD())
	s.FPSCR |= 1 << (31 - bit)
}

// execMtfsf writes FPSCR nibbles selected by FM from the low 32 bits of
// FRB's bit pattern (§4.2).
func (s *State) execMtfsf(i instr) {
	fm := i.FM()
	src := uint32(s.FPR[i.FRB()][0])
	for field := uint32(0); field < 8; field++ {
		if fm&(1<<(7-field)) == 0 {
			continue
		}
		shift := crFieldShift(field)
		mask := uint32(0xF) << shift
		s.FPSCR = (s.FPSCR &^ mask) | (src & mask)
	}
}
