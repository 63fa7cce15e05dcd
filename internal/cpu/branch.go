/*
 * nouwii - Broadway branch instructions.
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

// BO field bit masks, within the 5-bit value returned by instr.BO() (§4.2).
const (
	boIgnoreCond = 0x10
	boCondValue  = 0x08
	boIgnoreCtr  = 0x04
	boCtrIsZero  = 0x02
)

func (s *State) execB(i instr) {
	target := s.branchTarget(i.LI(), i.AA())
	if i.LK() {
		s.LR = s.CIA + 4
	}
	s.IA = target
}

func (s *State) execBc(i instr) {
	if !s.evalBranchCond(i.BO(), i.BI()) {
		return
	}
	target := s.branchTarget(i.BD(), i.AA())
	if i.LK() {
		s.LR = s.CIA + 4
	}
	s.IA = target
}

func (s *State) execBclr(i instr) {
	if !s.evalBranchCond(i.BO(), i.BI()) {
		return
	}
	target := s.LR &^ 0x3
	if i.LK() {
		s.LR = s.CIA + 4
	}
	s.IA = target
}

// execBcctr never decrements CTR (§4.2: "BCCTR must not request CTR
// decrement") since CTR is also the branch target.
func (s *State) execBcctr(i instr) {
	if !s.evalBranchCondNoCtr(i.BO(), i.BI()) {
		return
	}
	target := s.CTR &^ 0x3
	if i.LK() {
		s.LR = s.CIA + 4
	}
	s.IA = target
}

func (s *State) branchTarget(disp int32, absolute bool) uint32 {
	if absolute {
		return uint32(disp)
	}
	return uint32(int32(s.CIA) + disp)
}

func (s *State) evalBranchCond(bo, bi uint32) bool {
	ctrOK := s.applyCtrDecrement(bo)
	return ctrOK && s.condOK(bo, bi)
}

func (s *State) evalBranchCondNoCtr(bo, bi uint32) bool {
	return s.condOK(bo, bi)
}

func (s *State) applyCtrDecrement(bo uint32) bool {
	if bo&boIgnoreCtr != 0 {
		return true
	}
	s.CTR--
	ctrIsZero := bo&boCtrIsZero != 0
	return (s.CTR != 0) != ctrIsZero
}

func (s *State) condOK(bo, bi uint32) bool {
	if bo&boIgnoreCond != 0 {
		return true
	}
	bitSet := s.crBit(bi)
	wantSet := bo&boCondValue != 0
	return bitSet == wantSet
}

// crBit reads bit bi (MSB-numbered over the full 32-bit CR) as a boolean.
func (s *State) crBit(bi uint32) bool {
	shift := uint(31 - bi)
	return s.CR&(1<<shift) != 0
}
