/*
 * nouwii - Broadway instruction field decode.
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

// instr wraps the raw 32-bit instruction word and exposes every field name
// the architecture defines (§4.2), extracted with the MSB-numbered helpers.
type instr uint32

func (i instr) raw() uint32 { return uint32(i) }

func (i instr) OPCD() uint32 { return bits.GetBits(uint32(i), 0, 5) }
func (i instr) XO() uint32   { return bits.GetBits(uint32(i), 21, 30) }
func (i instr) FXO() uint32  { return bits.GetBits(uint32(i), 26, 30) }

func (i instr) RD() int { return int(bits.GetBits(uint32(i), 6, 10)) }
func (i instr) RS() int { return int(bits.GetBits(uint32(i), 6, 10)) }
func (i instr) RA() int { return int(bits.GetBits(uint32(i), 11, 15)) }
func (i instr) RB() int { return int(bits.GetBits(uint32(i), 16, 20)) }

func (i instr) CRFD() uint32 { return bits.GetBits(uint32(i), 6, 8) }
func (i instr) CRFS() uint32 { return bits.GetBits(uint32(i), 11, 13) }

func (i instr) SH() uint { return uint(bits.GetBits(uint32(i), 16, 20)) }
func (i instr) MB() uint { return uint(bits.GetBits(uint32(i), 21, 25)) }
func (i instr) ME() uint { return uint(bits.GetBits(uint32(i), 26, 30)) }

func (i instr) BO() uint32 { return bits.GetBits(uint32(i), 6, 10) }
func (i instr) BI() uint32 { return bits.GetBits(uint32(i), 11, 15) }

// BD is the 14-bit branch displacement, sign-extended and shifted left 2.
func (i instr) BD() int32 {
	field := bits.GetBits(uint32(i), 16, 29)
	return signExtend(field, 14) << 2
}

// LI is the 24-bit branch-absolute displacement, sign-extended and shifted
// left 2.
func (i instr) LI() int32 {
	field := bits.GetBits(uint32(i), 6, 29)
	return signExtend(field, 24) << 2
}

func (i instr) SPR() uint32 {
	lo := bits.GetBits(uint32(i), 11, 15)
	hi := bits.GetBits(uint32(i), 16, 20)
	return lo | (hi << 5)
}

func (i instr) UIMM() uint32 { return bits.GetBits(uint32(i), 16, 31) }

func (i instr) SIMM() int32 {
	return signExtend(bits.GetBits(uint32(i), 16, 31), 16)
}

func (i instr) D() int32 { return i.SIMM() }

func (i instr) AA() bool { return bits.Bit(uint32(i), 30) }
func (i instr) LK() bool { return bits.Bit(uint32(i), 31) }
func (i instr) RC() bool { return bits.Bit(uint32(i), 31) }
func (i instr) L() bool  { return bits.Bit(uint32(i), 10) }

// W, I, FM, FC are used by the quantized load/store and FPSCR-move forms.
func (i instr) W() bool  { return bits.Bit(uint32(i), 16) }
func (i instr) QI() uint32 { return bits.GetBits(uint32(i), 17, 19) }
func (i instr) FM() uint32 { return bits.GetBits(uint32(i), 7, 14) }
func (i instr) FC() uint32 { return bits.GetBits(uint32(i), 6, 10) }

// FXM is MTCRF's 8-bit field mask (bits 12-19), one bit per CR nibble.
func (i instr) FXM() uint32 { return bits.GetBits(uint32(i), 12, 19) }

func (i instr) FRD() int { return int(bits.GetBits(uint32(i), 6, 10)) }
func (i instr) FRS() int { return int(bits.GetBits(uint32(i), 6, 10)) }
func (i instr) FRA() int { return int(bits.GetBits(uint32(i), 11, 15)) }
func (i instr) FRB() int { return int(bits.GetBits(uint32(i), 16, 20)) }
func (i instr) FRC() int { return int(bits.GetBits(uint32(i), 21, 25)) }

func signExtend(v uint32, width uint) int32 {
	shift := 32 - width
	return int32(v<<shift) >> shift
}
