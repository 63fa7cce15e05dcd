/*
 * nouwii - Broadway integer load/store instructions.
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

// readData/writeData translate a data effective address and perform the
// width-sized memory access (§4.1, §4.2).
func (s *State) readData(ea uint32, width int) uint32 {
	pa := s.translate(ea, false)
	switch width {
	case 8:
		return uint32(s.mem.Read8(pa))
	case 16:
		return uint32(s.mem.Read16(pa))
	default:
		return s.mem.Read32(pa)
	}
}

func (s *State) writeData(ea uint32, width int, v uint32) {
	pa := s.translate(ea, false)
	switch width {
	case 8:
		s.mem.Write8(pa, uint8(v))
	case 16:
		s.mem.Write16(pa, uint16(v))
	default:
		s.mem.Write32(pa, v)
	}
}

func (s *State) raOrZero(ra int) uint32 {
	if ra == 0 {
		return 0
	}
	return s.GPR[ra]
}

// execLoad handles the D-form loads LBZ(U), LHZ(U), LHA(U), LWZ(U). signed
// applies only to the 16-bit half-word-algebraic form (LHA/LHAU).
func (s *State) execLoad(i instr, width int, signed, update bool) {
	ea := uint32(int32(s.raOrZero(i.RA())) + i.D())
	val := s.readData(ea, width)
	if signed && width == 16 {
		val = uint32(int32(int16(val)))
	}
	s.GPR[i.RD()] = val
	if update {
		s.GPR[i.RA()] = ea
	}
}

func (s *State) execStore(i instr, width int, update bool) {
	ea := uint32(int32(s.raOrZero(i.RA())) + i.D())
	s.writeData(ea, width, s.GPR[i.RS()])
	if update {
		s.GPR[i.RA()] = ea
	}
}

func (s *State) execLoadX(i instr, width int, signed, update bool) {
	ea := s.raOrZero(i.RA()) + s.GPR[i.RB()]
	val := s.readData(ea, width)
	if signed && width == 16 {
		val = uint32(int32(int16(val)))
	}
	s.GPR[i.RD()] = val
	if update {
		s.GPR[i.RA()] = ea
	}
}

func (s *State) execStoreX(i instr, width int, update bool) {
	ea := s.raOrZero(i.RA()) + s.GPR[i.RB()]
	s.writeData(ea, width, s.GPR[i.RS()])
	if update {
		s.GPR[i.RA()] = ea
	}
}

// execLmw loads RD..31 from consecutive words starting at the effective
// address (§4.2).
func (s *State) execLmw(i instr) {
	ea := uint32(int32(s.raOrZero(i.RA())) + i.D())
	for r := i.RD(); r <= 31; r++ {
		s.GPR[r] = s.readData(ea, 32)
		ea += 4
	}
}

func (s *State) execStmw(i instr) {
	ea := uint32(int32(s.raOrZero(i.RA())) + i.D())
	for r := i.RS(); r <= 31; r++ {
		s.writeData(ea, 32, s.GPR[r])
		ea += 4
	}
}

// execLswi loads a byte string into a rotating bank of registers starting
// at RD; a byte count of 0 means 32 bytes (§4.2).
func (s *State) execLswi(i instr) {
	ea := s.raOrZero(i.RA())
	nb := i.RB()
	if nb == 0 {
		nb = 32
	}
	reg := i.RD()
	var word uint32
	shift := 24
	for n := 0; n < nb; n++ {
		b := s.readData(ea, 8)
		word |= b << shift
		shift -= 8
		ea++
		if shift < 0 {
			s.GPR[reg] = word
			reg = (reg + 1) % 32
			word = 0
			shift = 24
		}
	}
	if shift != 24 {
		s.GPR[reg] = word
	}
}

func (s *State) execStswi(i instr) {
	ea := s.raOrZero(i.RA())
	nb := i.RB()
	if nb == 0 {
		nb = 32
	}
	reg := i.RD()
	word := s.GPR[reg]
	shift := 24
	for n := 0; n < nb; n++ {
		s.writeData(ea, 8, (word>>shift)&0xFF)
		ea++
		shift -= 8
		if shift < 0 {
			reg = (reg + 1) % 32
			word = s.GPR[reg]
			shift = 24
		}
	}
}
