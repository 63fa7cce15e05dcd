/*
 * nouwii - Broadway logical instructions.
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

func (s *State) execOri(i instr) {
	s.GPR[i.RA()] = s.GPR[i.RS()] | i.UIMM()
}

func (s *State) execOris(i instr) {
	s.GPR[i.RA()] = s.GPR[i.RS()] | (i.UIMM() << 16)
}

func (s *State) execXori(i instr) {
	s.GPR[i.RA()] = s.GPR[i.RS()] ^ i.UIMM()
}

func (s *State) execXoris(i instr) {
	s.GPR[i.RA()] = s.GPR[i.RS()] ^ (i.UIMM() << 16)
}

func (s *State) execAndiDot(i instr) {
	result := s.GPR[i.RS()] & i.UIMM()
	s.GPR[i.RA()] = result
	s.setFlags(0, int32(result))
}

func (s *State) execAndisDot(i instr) {
	result := s.GPR[i.RS()] & (i.UIMM() << 16)
	s.GPR[i.RA()] = result
	s.setFlags(0, int32(result))
}

func (s *State) execAnd(i instr) {
	result := s.GPR[i.RS()] & s.GPR[i.RB()]
	s.GPR[i.RA()] = result
	s.maybeSetCR0(i.RC(), result)
}

func (s *State) execAndc(i instr) {
	result := s.GPR[i.RS()] &^ s.GPR[i.RB()]
	s.GPR[i.RA()] = result
	s.maybeSetCR0(i.RC(), result)
}

func (s *State) execOr(i instr) {
	result := s.GPR[i.RS()] | s.GPR[i.RB()]
	s.GPR[i.RA()] = result
	s.maybeSetCR0(i.RC(), result)
}

func (s *State) execOrc(i instr) {
	result := s.GPR[i.RS()] | ^s.GPR[i.RB()]
	s.GPR[i.RA()] = result
	s.maybeSetCR0(i.RC(), result)
}

func (s *State) execXor(i instr) {
	result := s.GPR[i.RS()] ^ s.GPR[i.RB()]
	s.GPR[i.RA()] = result
	s.maybeSetCR0(i.RC(), result)
}

func (s *State) execNor(i instr) {
	result := ^(s.GPR[i.RS()] | s.GPR[i.RB()])
	s.GPR[i.RA()] = result
	s.maybeSetCR0(i.RC(), result)
}

func (s *State) execExtsb(i instr) {
	result := uint32(int32(int8(s.GPR[i.RS()])))
	s.GPR[i.RA()] = result
	s.maybeSetCR0(i.RC(), result)
}

func (s *State) execExtsh(i instr) {
	result := uint32(int32(int16(s.GPR[i.RS()])))
	s.GPR[i.RA()] = result
	s.maybeSetCR0(i.RC(), result)
}

func (s *State) execCntlzw(i instr) {
	result := bits.Clz32(s.GPR[i.RS()])
	s.GPR[i.RA()] = result
	s.maybeSetCR0(i.RC(), result)
}
