/*
 * nouwii - Broadway floating point and quantized load/store instructions.
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

// execLfs widens the 32-bit IEEE value at the effective address into the
// double-precision PS0 lane, and into PS1 as well when paired-singles are
// enabled (§4.2: "LFS widens 32-bit IEEE to the double in PS0, and PS1 when
// paired-singles enabled").
func (s *State) execLfs(i instr, update bool) {
	ea := uint32(int32(s.raOrZero(i.RA())) + i.D())
	v := float64(bits.BitsToF32(s.readData(ea, 32)))
	s.setPS0(i.FRD(), v)
	if s.pairedSinglesEnabled() {
		s.FPR[i.FRD()][1] = bits.F64ToBits(v)
	}
	if update {
		s.GPR[i.RA()] = ea
	}
}

func (s *State) execLfd(i instr, update bool) {
	ea := uint32(int32(s.raOrZero(i.RA())) + i.D())
	hi := s.readData(ea, 32)
	lo := s.readData(ea+4, 32)
	s.FPR[i.FRD()][0] = uint64(hi)<<32 | uint64(lo)
	if update {
		s.GPR[i.RA()] = ea
	}
}

func (s *State) execStfs(i instr, update bool) {
	ea := uint32(int32(s.raOrZero(i.RA())) + i.D())
	s.writeData(ea, 32, bits.F32ToBits(float32(s.ps0(i.FRS()))))
	if update {
		s.GPR[i.RA()] = ea
	}
}

func (s *State) execStfd(i instr, update bool) {
	ea := uint32(int32(s.raOrZero(i.RA())) + i.D())
	v := s.FPR[i.FRS()][0]
	s.writeData(ea, 32, uint32(v>>32))
	s.writeData(ea+4, 32, uint32(v))
	if update {
		s.GPR[i.RA()] = ea
	}
}

// execLfdx is the X-form indexed double load (opcode 31).
func (s *State) execLfdx(i instr) {
	ea := s.raOrZero(i.RA()) + s.GPR[i.RB()]
	hi := s.readData(ea, 32)
	lo := s.readData(ea+4, 32)
	s.FPR[i.FRD()][0] = uint64(hi)<<32 | uint64(lo)
}

// execStfiwx stores the raw low-32-bit integer word of FRS's PS0 lane
// (opcode 31; no float conversion).
func (s *State) execStfiwx(i instr) {
	ea := s.raOrZero(i.RA()) + s.GPR[i.RB()]
	s.writeData(ea, 32, uint32(s.FPR[i.FRS()][0]))
}

// pairedSinglesEnabled reports HID2's paired-single enable bit.
const hid2PSE = 1 << 31

func (s *State) pairedSinglesEnabled() bool {
	return s.HID2&hid2PSE != 0
}

// dispatch4 handles the primary-opcode-4 paired-single register moves:
// PSMR, PSMERGE01, PSMERGE10 (§4.2).
const (
	xoPsMr      = 72
	xoPsMerge01 = 561
	xoPsMerge10 = 592
)

func (s *State) dispatch4(i instr) {
	switch i.XO() {
	case xoPsMr:
		s.FPR[i.FRD()] = s.FPR[i.FRB()]
	case xoPsMerge01:
		s.FPR[i.FRD()][0] = s.FPR[i.FRA()][0]
		s.FPR[i.FRD()][1] = s.FPR[i.FRB()][1]
	case xoPsMerge10:
		s.FPR[i.FRD()][0] = s.FPR[i.FRA()][1]
		s.FPR[i.FRD()][1] = s.FPR[i.FRB()][0]
	default:
		s.log.Error("unimplemented paired-single opcode", "xo", i.XO(), "addr", s.CIA)
		panic("cpu: unimplemented opcode 4 extended")
	}
}

// Quantize types understood by GQR (§4.2: "only the float type is
// required").
const gqrTypeFloat = 0

// execPsql loads a quantized pair (or scalar, when W=1) using GQR[I] to
// select the dequantize type and scale. Only the float type is
// implemented; W=1 means scalar and sets PS1 = 1.0 (§4.2).
func (s *State) execPsql(i instr, update bool) {
	gqr := s.GQR[i.QI()]
	ea := uint32(int32(s.raOrZero(i.RA())) + signExtend(bits.GetBits(uint32(i), 20, 31), 12))
	loadType := bits.GetBits(gqr, 29, 31)
	if loadType != gqrTypeFloat {
		s.log.Error("unsupported quantize load type", "type", loadType)
		panic("cpu: unsupported quantized load type")
	}
	ps0 := float64(bits.BitsToF32(s.readData(ea, 32)))
	if i.W() {
		s.setPS0(i.FRD(), ps0)
		s.FPR[i.FRD()][1] = bits.F64ToBits(1.0)
	} else {
		ps1 := float64(bits.BitsToF32(s.readData(ea+4, 32)))
		s.setPS0(i.FRD(), ps0)
		s.FPR[i.FRD()][1] = bits.F64ToBits(ps1)
	}
	if update {
		s.GPR[i.RA()] = ea
	}
}

// execPsqst stores a quantized pair (or scalar, when W=1); PS1 is not
// written to memory in the scalar form (§4.2).
func (s *State) execPsqst(i instr, update bool) {
	gqr := s.GQR[i.QI()]
	ea := uint32(int32(s.raOrZero(i.RA())) + signExtend(bits.GetBits(uint32(i), 20, 31), 12))
	storeType := bits.GetBits(gqr, 21, 23)
	if storeType != gqrTypeFloat {
		s.log.Error("unsupported quantize store type", "type", storeType)
		panic("cpu: unsupported quantized store type")
	}
	s.writeData(ea, 32, bits.F32ToBits(float32(s.ps0(i.FRS()))))
	if !i.W() {
		ps1 := bits.BitsToF64(s.FPR[i.FRS()][1])
		s.writeData(ea+4, 32, bits.F32ToBits(float32(ps1)))
	}
	if update {
		s.GPR[i.RA()] = ea
	}
}
