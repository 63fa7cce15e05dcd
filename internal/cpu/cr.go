/*
 * nouwii - Broadway condition register helpers.
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

// XER bit positions (MSB-numbered: ca=bit 34-32=2, ov=1, so=0 from the top).
const (
	xerSO = 1 << 31
	xerOV = 1 << 30
	xerCA = 1 << 29
)

// crFieldShift returns the right-shift that brings 4-bit CR field field
// (0 = leftmost/cr0) down to the low nibble.
func crFieldShift(field uint32) uint {
	return uint((7 - field) * 4)
}

// setCRField installs a raw 4-bit value into CR field `field` (§4.2
// "set_cr").
func (s *State) setCRField(field uint32, value uint32) {
	shift := crFieldShift(field)
	mask := uint32(0xF) << shift
	s.CR = (s.CR &^ mask) | ((value & 0xF) << shift)
}

func (s *State) crField(field uint32) uint32 {
	return (s.CR >> crFieldShift(field)) & 0xF
}

// CR field bit flags, MSB-first within the nibble: LT GT EQ SO.
const (
	crLT = 1 << 3
	crGT = 1 << 2
	crEQ = 1 << 1
	crSO = 1 << 0
)

// setFlags computes {LT,GT,EQ,SO=XER.so} from a signed 32-bit result and
// writes it into the given CR field (§4.2 "set_flags").
func (s *State) setFlags(field uint32, value int32) {
	var v uint32
	switch {
	case value < 0:
		v = crLT
	case value > 0:
		v = crGT
	default:
		v = crEQ
	}
	if s.XER&xerSO != 0 {
		v |= crSO
	}
	s.setCRField(field, v)
}

// Rc=1 on integer ops always sets CR0 from the signed result (the open
// question decision recorded in SPEC_FULL.md).
func (s *State) maybeSetCR0(rc bool, value uint32) {
	if rc {
		s.setFlags(0, int32(value))
	}
}
