/*
 * nouwii - Broadway block address translation.
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

// translate implements §4.2's BAT lookup. isCode selects IBAT vs. DBAT and
// the matching MSR enable bit. Permission bits and the segment-lookaside
// mode are intentionally not enforced (SPEC_FULL.md open question).
func (s *State) translate(addr uint32, isCode bool) uint32 {
	var enabled bool
	var table *[8]batPair
	if isCode {
		enabled = s.msrBit(msrIR)
		table = &s.IBAT
	} else {
		enabled = s.msrBit(msrDR)
		table = &s.DBAT
	}
	if !enabled {
		return addr
	}

	n := 4
	if s.HID4&hid4SBE != 0 {
		n = 8
	}
	for idx := 0; idx < n; idx++ {
		pair := table[idx]
		bepi := bits.GetBits(pair.upper, 0, 14) << 17
		bl := bits.GetBits(pair.upper, 16, 26)
		length := bl << 17

		addrTop := addr &^ uint32(0x1_FFFF)
		if addrTop&^length == bepi {
			brpn := bits.GetBits(pair.lower, 0, 14) << 17
			return brpn | (addrTop & length) | (addr & 0x1_FFFF)
		}
	}

	s.log.Error("bat translation miss", "addr", addr, "code", isCode)
	panic("cpu: bat translation miss")
}

// hid4SBE is HID4's secondary-BAT-enable bit (§3: "secondary 4 enabled by
// HID4.sbe").
const hid4SBE = 1 << 7
