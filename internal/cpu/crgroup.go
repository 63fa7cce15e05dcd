/*
 * nouwii - Broadway condition-register-group instructions.
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

// Extended opcodes under primary opcode 19 (§4.2: MCRF, CR logical ops,
// BCLR/BCCTR, RFI, ISYNC).
const (
	xoMcrf  = 0
	xoBclr  = 16
	xoCrnor = 33
	xoRfi   = 50
	xoIsync = 150
	xoCrxor = 193
	xoCrand = 257
	xoCreqv = 289
	xoCror  = 449
	xoBcctr = 528
)

func (s *State) dispatchCrGroup(i instr) {
	switch i.XO() {
	case xoMcrf:
		s.execMcrf(i)
	case xoBclr:
		s.execBclr(i)
	case xoBcctr:
		s.execBcctr(i)
	case xoCrand:
		s.execCrOp(i, func(a, b bool) bool { return a && b })
	case xoCror:
		s.execCrOp(i, func(a, b bool) bool { return a || b })
	case xoCrxor:
		s.execCrOp(i, func(a, b bool) bool { return a != b })
	case xoCreqv:
		s.execCrOp(i, func(a, b bool) bool { return a == b })
	case xoCrnor:
		s.execCrOp(i, func(a, b bool) bool { return !(a || b) })
	case xoRfi:
		s.execRfi()
	case xoIsync:
		// Observable no-op (§4.2).
	default:
		s.log.Error("unimplemented cr-group opcode", "xo", i.XO(), "addr", s.CIA)
		panic("cpu: unimplemented opcode 19 extended")
	}
}

// execMcrf copies CR field crfS into crfD.
func (s *State) execMcrf(i instr) {
	s.setCRField(i.CRFD(), s.crField(i.CRFS()))
}

// execCrOp applies a 2-input boolean op to individual CR bits, addressed
// directly by BT/BA/BB (the BO/BI/RB field positions, reused for bit
// indices in this instruction group).
func (s *State) execCrOp(i instr, op func(a, b bool) bool) {
	bt := i.BO()
	ba := i.BI()
	bb := uint32(i.RB())
	result := op(s.crBit(ba), s.crBit(bb))
	shift := uint(31 - bt)
	if result {
		s.CR |= 1 << shift
	} else {
		s.CR &^= 1 << shift
	}
}
