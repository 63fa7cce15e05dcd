/*
 * nouwii - Broadway integer arithmetic instructions.
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

import "math"

// D-form immediate arithmetic (§4.2).

func (s *State) execAddi(i instr) {
	var base int32
	if i.RA() != 0 {
		base = int32(s.GPR[i.RA()])
	}
	s.GPR[i.RD()] = uint32(base + i.SIMM())
}

func (s *State) execAddis(i instr) {
	var base int32
	if i.RA() != 0 {
		base = int32(s.GPR[i.RA()])
	}
	s.GPR[i.RD()] = uint32(base + (i.SIMM() << 16))
}

func (s *State) execAddic(i instr, dot bool) {
	a := s.GPR[i.RA()]
	imm := uint32(i.SIMM())
	result := a + imm
	s.setCA(a, imm, result)
	s.GPR[i.RD()] = result
	if dot {
		s.setFlags(0, int32(result))
	}
}

func (s *State) execSubfic(i instr) {
	a := s.GPR[i.RA()]
	imm := uint32(i.SIMM())
	result := ^a + imm + 1
	s.setCA(^a, imm, result)
	s.GPR[i.RD()] = result
}

func (s *State) execMulli(i instr) {
	s.GPR[i.RD()] = uint32(int32(s.GPR[i.RA()]) * i.SIMM())
}

// setCA computes XER.CA for an add of a+b producing result (standard
// unsigned-carry-out rule).
func (s *State) setCA(a, b, result uint32) {
	carry := result < a
	if carry {
		s.XER |= xerCA
	} else {
		s.XER &^= xerCA
	}
}

// XO-form register arithmetic.

func (s *State) execAdd(i instr) {
	result := s.GPR[i.RA()] + s.GPR[i.RB()]
	s.GPR[i.RD()] = result
	s.maybeSetCR0(i.RC(), result)
}

func (s *State) execAddc(i instr) {
	a, b := s.GPR[i.RA()], s.GPR[i.RB()]
	result := a + b
	s.setCA(a, b, result)
	s.GPR[i.RD()] = result
	s.maybeSetCR0(i.RC(), result)
}

func (s *State) execAdde(i instr) {
	a, b := s.GPR[i.RA()], s.GPR[i.RB()]
	carryIn := uint32(0)
	if s.XER&xerCA != 0 {
		carryIn = 1
	}
	result := a + b + carryIn
	carryOut := result < a || (carryIn == 1 && result == a)
	if carryOut {
		s.XER |= xerCA
	} else {
		s.XER &^= xerCA
	}
	s.GPR[i.RD()] = result
	s.maybeSetCR0(i.RC(), result)
}

func (s *State) execAddze(i instr) {
	a := s.GPR[i.RA()]
	carryIn := uint32(0)
	if s.XER&xerCA != 0 {
		carryIn = 1
	}
	result := a + carryIn
	if result < a {
		s.XER |= xerCA
	} else {
		s.XER &^= xerCA
	}
	s.GPR[i.RD()] = result
	s.maybeSetCR0(i.RC(), result)
}

func (s *State) execSubf(i instr) {
	result := s.GPR[i.RB()] - s.GPR[i.RA()]
	s.GPR[i.RD()] = result
	s.maybeSetCR0(i.RC(), result)
}

func (s *State) execSubfc(i instr) {
	a, b := s.GPR[i.RA()], s.GPR[i.RB()]
	result := ^a + b + 1
	s.setCA(^a, b, result)
	s.GPR[i.RD()] = result
	s.maybeSetCR0(i.RC(), result)
}

func (s *State) execSubfe(i instr) {
	a, b := s.GPR[i.RA()], s.GPR[i.RB()]
	carryIn := uint32(0)
	if s.XER&xerCA != 0 {
		carryIn = 1
	}
	notA := ^a
	result := notA + b + carryIn
	carryOut := result < notA || (carryIn == 1 && result == notA)
	if carryOut {
		s.XER |= xerCA
	} else {
		s.XER &^= xerCA
	}
	s.GPR[i.RD()] = result
	s.maybeSetCR0(i.RC(), result)
}

func (s *State) execSubfze(i instr) {
	a := s.GPR[i.RA()]
	carryIn := uint32(0)
	if s.XER&xerCA != 0 {
		carryIn = 1
	}
	notA := ^a
	result := notA + carryIn
	if result < notA {
		s.XER |= xerCA
	} else {
		s.XER &^= xerCA
	}
	s.GPR[i.RD()] = result
	s.maybeSetCR0(i.RC(), result)
}

func (s *State) execNeg(i instr) {
	result := ^s.GPR[i.RA()] + 1
	s.GPR[i.RD()] = result
	s.maybeSetCR0(i.RC(), result)
}

func (s *State) execMullw(i instr) {
	result := int32(s.GPR[i.RA()]) * int32(s.GPR[i.RB()])
	s.GPR[i.RD()] = uint32(result)
	s.maybeSetCR0(i.RC(), uint32(result))
}

func (s *State) execMulhw(i instr) {
	a := int64(int32(s.GPR[i.RA()]))
	b := int64(int32(s.GPR[i.RB()]))
	result := uint32((a * b) >> 32)
	s.GPR[i.RD()] = result
	s.maybeSetCR0(i.RC(), result)
}

func (s *State) execMulhwu(i instr) {
	a := uint64(s.GPR[i.RA()])
	b := uint64(s.GPR[i.RB()])
	result := uint32((a * b) >> 32)
	s.GPR[i.RD()] = result
	s.maybeSetCR0(i.RC(), result)
}

func (s *State) execDivw(i instr) {
	a := int32(s.GPR[i.RA()])
	b := int32(s.GPR[i.RB()])
	var result int32
	if b == 0 || (a == math.MinInt32 && b == -1) {
		result = 0 // architecturally undefined; zero keeps the interpreter deterministic
	} else {
		result = a / b
	}
	s.GPR[i.RD()] = uint32(result)
	s.maybeSetCR0(i.RC(), uint32(result))
}

func (s *State) execDivwu(i instr) {
	a := s.GPR[i.RA()]
	b := s.GPR[i.RB()]
	var result uint32
	if b != 0 {
		result = a / b
	}
	s.GPR[i.RD()] = result
	s.maybeSetCR0(i.RC(), result)
}
