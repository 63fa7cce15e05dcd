/*
 * nouwii - Broadway extended opcode 31 instructions.
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

// Extended opcodes under primary opcode 31 (§4.2). XO is the 10-bit field;
// Rc/OE decode from the low/next bit as usual.
const (
	xoCmp    = 0
	xoSubfc  = 8
	xoAddc   = 10
	xoMulhwu = 11
	xoMfcr   = 19
	xoLwzx   = 23
	xoSlw    = 24
	xoCntlzw = 26
	xoAnd    = 28
	xoCmpl   = 32
	xoSubf   = 40
	xoAndc   = 60
	xoMfmsr  = 83
	xoLbzx   = 87
	xoNeg    = 104
	xoNor    = 124
	xoSubfe  = 136
	xoAdde   = 138
	xoMtcrf  = 144
	xoMtmsr  = 146
	xoStwx   = 151
	xoStwux  = 183
	xoSubfze = 200
	xoAddze  = 202
	xoMtsr   = 210
	xoStbx   = 215
	xoOr     = 444
	xoMulhw  = 75
	xoDivwu  = 459
	xoMfspr  = 339
	xoLhzx   = 279
	xoMftb   = 371
	xoStfiwx = 983
	xoDcbi   = 470
	xoOrc    = 412
	xoSthx   = 407
	xoDivw   = 491
	xoMtspr  = 467
	xoXor    = 316
	xoDcbf   = 86
	xoAdd    = 266
	xoLswi   = 597
	xoSync   = 598
	xoLfdx   = 599
	xoStswi  = 725
	xoExtsh  = 922
	xoDcbz   = 1014
	xoIcbi   = 982
	xoExtsb  = 954
	xoMullw  = 235
	xoSrw    = 536
	xoSraw   = 792
	xoSrawi  = 824
	xoLwzux  = 55
)

func (s *State) dispatch31(i instr) {
	switch i.XO() {
	case xoCmp:
		s.execCmp(i)
	case xoCmpl:
		s.execCmpRegL(i)
	case xoAdd:
		s.execAdd(i)
	case xoAddc:
		s.execAddc(i)
	case xoAdde:
		s.execAdde(i)
	case xoAddze:
		s.execAddze(i)
	case xoSubf:
		s.execSubf(i)
	case xoSubfc:
		s.execSubfc(i)
	case xoSubfe:
		s.execSubfe(i)
	case xoSubfze:
		s.execSubfze(i)
	case xoNeg:
		s.execNeg(i)
	case xoMullw:
		s.execMullw(i)
	case xoMulhw:
		s.execMulhw(i)
	case xoMulhwu:
		s.execMulhwu(i)
	case xoDivw:
		s.execDivw(i)
	case xoDivwu:
		s.execDivwu(i)
	case xoAnd:
		s.execAnd(i)
	case xoAndc:
		s.execAndc(i)
	case xoOr:
		s.execOr(i)
	case xoOrc:
		s.execOrc(i)
	case xoXor:
		s.execXor(i)
	case xoNor:
		s.execNor(i)
	case xoExtsb:
		s.execExtsb(i)
	case xoExtsh:
		s.execExtsh(i)
	case xoCntlzw:
		s.execCntlzw(i)
	case xoSlw:
		s.execSlw(i)
	case xoSrw:
		s.execSrw(i)
	case xoSraw:
		s.execSraw(i)
	case xoSrawi:
		s.execSrawi(i)
	case xoLwzx:
		s.execLoadX(i, 32, false, false)
	case xoLwzux:
		s.execLoadX(i, 32, false, true)
	case xoLbzx:
		s.execLoadX(i, 8, false, false)
	case xoLhzx:
		s.execLoadX(i, 16, false, false)
	case xoStwx:
		s.execStoreX(i, 32, false)
	case xoStwux:
		s.execStoreX(i, 32, true)
	case xoStbx:
		s.execStoreX(i, 8, false)
	case xoSthx:
		s.execStoreX(i, 16, false)
	case xoLswi:
		s.execLswi(i)
	case xoStswi:
		s.execStswi(i)
	case xoLfdx:
		s.execLfdx(i)
	case xoStfiwx:
		s.execStfiwx(i)
	case xoMfspr:
		s.GPR[i.RD()] = s.mfspr(i.SPR())
	case xoMtspr:
		s.mtspr(i.SPR(), s.GPR[i.RS()])
	case xoMftb:
		s.GPR[i.RD()] = s.mftb(i.SPR())
	case xoMfcr:
		s.GPR[i.RD()] = s.CR
	case xoMtcrf:
		s.execMtcrf(i)
	case xoMfmsr:
		s.GPR[i.RD()] = s.MSR
	case xoMtmsr:
		s.setMSR(s.GPR[i.RS()])
	case xoMtsr:
		// Segment registers are unmodeled (segment-lookaside mode is
		// intentionally not enforced, §4.2); accepted as a no-op.
	case xoDcbf, xoDcbi:
		// No architectural state beyond the cache-line address itself.
	case xoDcbz:
		s.execDcbz(i)
	case xoIcbi, xoSync:
		// Observable no-ops (§4.2).
	default:
		s.log.Error("unimplemented extended opcode", "xo", i.XO(), "addr", s.CIA)
		panic("cpu: unimplemented extended opcode 31")
	}
}
