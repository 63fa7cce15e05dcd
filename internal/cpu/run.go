/*
 * nouwii - Broadway fetch/decode/execute loop.
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

// Primary opcodes used by the required instruction set (§4.2).
const (
	opPs     = 4 // paired-single register ops: PSMR, PSMERGE01, PSMERGE10
	opMulli  = 7
	opSubfic = 8
	opCmpli  = 10
	opCmpi   = 11
	opAddic  = 12
	opAddicDot = 13
	opAddi   = 14
	opAddis  = 15
	opBc     = 16
	opSc     = 17
	opB      = 18
	opCr     = 19 // MCRF, CRAND/OR/XOR/..., RFI, ISYNC, BCLR/BCCTR
	opRlwimi = 20
	opRlwinm = 21
	opOri    = 24
	opOris   = 25
	opXori   = 26
	opXoris  = 27
	opAndiDot = 28
	opAndisDot = 29
	opX31     = 31 // extended integer/logical/load-store-indexed/system
	opLwz     = 32
	opLwzu    = 33
	opLbz     = 34
	opLbzu    = 35
	opStw     = 36
	opStwu    = 37
	opStb     = 38
	opStbu    = 39
	opLhz     = 40
	opLhzu    = 41
	opLha     = 42
	opLhau    = 43
	opSth     = 44
	opSthu    = 45
	opLmw     = 46
	opStmw    = 47
	opLfs     = 48
	opLfsu    = 49
	opLfd     = 50
	opLfdu    = 51
	opStfs    = 52
	opStfsu   = 53
	opStfd    = 54
	opStfdu   = 55
	opPsq     = 56 // PSQL
	opPsqu    = 57
	opX59     = 59 // single-precision FP extended
	opPsqSt   = 60 // PSQST
	opPsqStu  = 61
	opX63     = 63 // double-precision FP extended
)

// Run executes exactly cycles instructions (none if cycles <= 0) and returns
// nothing; an external interrupt or exception taken mid-slice redirects
// control but does not end the slice early. The caller re-enters with the
// scheduler's next slice.
func (s *State) Run(cycles int) {
	s.cycleBudget = cycles
	for s.cycleBudget > 0 {
		s.step()
		s.cycleBudget--
		s.tbPrescale++
		if s.tbPrescale >= tbPrescaleDivisor {
			s.tbPrescale = 0
			s.advanceTimebase()
		}
	}
}

// tbPrescaleDivisor is the observed approximation: the timebase increments
// once per 12 executed instructions (§4.2).
const tbPrescaleDivisor = 12

func (s *State) advanceTimebase() {
	s.TBL++
	if s.TBL == 0 {
		s.TBU++
	}
}

func (s *State) step() {
	s.CIA = s.IA
	pa := s.translate(s.IA, true)
	word := s.mem.Read32(pa)
	s.IA += 4

	i := instr(word)
	s.dispatch(i)
}

func (s *State) dispatch(i instr) {
	switch i.OPCD() {
	case opPs:
		s.dispatch4(i)
	case opMulli:
		s.execMulli(i)
	case opSubfic:
		s.execSubfic(i)
	case opCmpli:
		s.execCmpli(i)
	case opCmpi:
		s.execCmpi(i)
	case opAddic:
		s.execAddic(i, false)
	case opAddicDot:
		s.execAddic(i, true)
	case opAddi:
		s.execAddi(i)
	case opAddis:
		s.execAddis(i)
	case opBc:
		s.execBc(i)
	case opSc:
		s.execSc()
	case opB:
		s.execB(i)
	case opCr:
		s.dispatchCrGroup(i)
	case opRlwimi:
		s.execRlwimi(i)
	case opRlwinm:
		s.execRlwinm(i)
	case opOri:
		s.execOri(i)
	case opOris:
		s.execOris(i)
	case opXori:
		s.execXori(i)
	case opXoris:
		s.execXoris(i)
	case opAndiDot:
		s.execAndiDot(i)
	case opAndisDot:
		s.execAndisDot(i)
	case opX31:
		s.dispatch31(i)
	case opLwz:
		s.execLoad(i, 32, false, false)
	case opLwzu:
		s.execLoad(i, 32, false, true)
	case opLbz:
		s.execLoad(i, 8, false, false)
	case opLbzu:
		s.execLoad(i, 8, false, true)
	case opStw:
		s.execStore(i, 32, false)
	case opStwu:
		s.execStore(i, 32, true)
	case opStb:
		s.execStore(i, 8, false)
	case opStbu:
		s.execStore(i, 8, true)
	case opLhz:
		s.execLoad(i, 16, false, false)
	case opLhzu:
		s.execLoad(i, 16, false, true)
	case opLha:
		s.execLoad(i, 16, true, false)
	case opLhau:
		s.execLoad(i, 16, true, true)
	case opSth:
		s.execStore(i, 16, false)
	case opSthu:
		s.execStore(i, 16, true)
	case opLmw:
		s.execLmw(i)
	case opStmw:
		s.execStmw(i)
	case opLfs:
		s.execLfs(i, false)
	case opLfsu:
		s.execLfs(i, true)
	case opLfd:
		s.execLfd(i, false)
	case opLfdu:
		s.execLfd(i, true)
	case opStfs:
		s.execStfs(i, false)
	case opStfsu:
		s.execStfs(i, true)
	case opStfd:
		s.execStfd(i, false)
	case opStfdu:
		s.execStfd(i, true)
	case opPsq:
		s.execPsql(i, false)
	case opPsqu:
		s.execPsql(i, true)
	case opPsqSt:
		s.execPsqst(i, false)
	case opPsqStu:
		s.execPsqst(i, true)
	case opX59:
		s.dispatch59(i)
	case opX63:
		s.dispatch63(i)
	default:
		s.log.Error("unimplemented opcode", "opcd", i.OPCD(), "addr", s.CIA)
		panic("cpu: unimplemented opcode")
	}
}
