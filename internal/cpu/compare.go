/*
 * nouwii - Broadway integer compare instructions.
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

// compareBits computes the {LT,GT,EQ} ordering bits and ORs in XER.so
// (§4.2: "comparison instructions... compute the three ordering bits
// directly, OR in XER.so, and write the 4-bit field").
func (s *State) compareBits(lt, gt, eq bool) uint32 {
	var v uint32
	switch {
	case lt:
		v = crLT
	case gt:
		v = crGT
	case eq:
		v = crEQ
	}
	if s.XER&xerSO != 0 {
		v |= crSO
	}
	return v
}

func (s *State) execCmpi(i instr) {
	a := int32(s.GPR[i.RA()])
	b := i.SIMM()
	s.setCRField(i.CRFD(), s.compareBits(a < b, a > b, a == b))
}

func (s *State) execCmpli(i instr) {
	a := s.GPR[i.RA()]
	b := i.UIMM()
	s.setCRField(i.CRFD(), s.compareBits(a < b, a > b, a == b))
}

func (s *State) execCmp(i instr) {
	a := int32(s.GPR[i.RA()])
	b := int32(s.GPR[i.RB()])
	s.setCRField(i.CRFD(), s.compareBits(a < b, a > b, a == b))
}

func (s *State) execCmpRegL(i instr) {
	a := s.GPR[i.RA()]
	b := s.GPR[i.RB()]
	s.setCRField(i.CRFD(), s.compareBits(a < b, a > b, a == b))
}
