/*
 * nouwii - Broadway shift and rotate instructions.
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

func (s *State) execSlw(i instr) {
	amt := s.GPR[i.RB()] & 0x3F
	var result uint32
	if amt < 32 {
		result = s.GPR[i.RS()] << amt
	}
	s.GPR[i.RA()] = result
	s.maybeSetCR0(i.RC(), result)
}

func (s *State) execSrw(i instr) {
	amt := s.GPR[i.RB()] & 0x3F
	var result uint32
	if amt < 32 {
		result = s.GPR[i.RS()] >> amt
	}
	s.GPR[i.RA()] = result
	s.maybeSetCR0(i.RC(), result)
}

func (s *State) execSraw(i instr) {
	rs := s.GPR[i.RS()]
	amt := s.GPR[i.RB()] & 0x3F
	s.sraw(i, rs, amt)
}

func (s *State) execSrawi(i instr) {
	rs := s.GPR[i.RS()]
	s.sraw(i, rs, uint32(i.SH()))
}

func (s *State) sraw(i instr, rs uint32, amt uint32) {
	signed := int32(rs)
	var result int32
	var carry bool
	if amt >= 32 {
		if signed < 0 {
			result = -1
			carry = true
		}
	} else {
		result = signed >> amt
		carry = signed < 0 && (rs<<(32-amt)) != 0
	}
	if carry {
		s.XER |= xerCA
	} else {
		s.XER &^= xerCA
	}
	s.GPR[i.RA()] = uint32(result)
	s.maybeSetCR0(i.RC(), uint32(result))
}

func (s *State) execRlwinm(i instr) {
	rotated := bits.Rotl32(s.GPR[i.RS()], int(i.SH()))
	mask := bits.GetMask(i.MB(), i.ME())
	result := rotated & mask
	s.GPR[i.RA()] = result
	s.maybeSetCR0(i.RC(), result)
}

func (s *State) execRlwimi(i instr) {
	rotated := bits.Rotl32(s.GPR[i.RS()], int(i.SH()))
	mask := bits.GetMask(i.MB(), i.ME())
	result := (rotated & mask) | (s.GPR[i.RA()] &^ mask)
	s.GPR[i.RA()] = result
	s.maybeSetCR0(i.RC(), result)
}
