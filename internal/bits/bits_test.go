/*
 * nouwii - Bit-field helper test cases.
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

package bits

import "testing"

func TestSwapRoundTrip(t *testing.T) {
	if got := Swap16(Swap16(0x1234)); got != 0x1234 {
		t.Errorf("Swap16 round trip got: %#x expected: %#x", got, 0x1234)
	}
	if got := Swap32(Swap32(0xDEADBEEF)); got != 0xDEADBEEF {
		t.Errorf("Swap32 round trip got: %#x expected: %#x", got, 0xDEADBEEF)
	}
	if got := Swap64(Swap64(0x0123456789ABCDEF)); got != 0x0123456789ABCDEF {
		t.Errorf("Swap64 round trip got: %#x expected: %#x", got, 0x0123456789ABCDEF)
	}
}

func TestSwap32KnownValue(t *testing.T) {
	if got := Swap32(0x12345678); got != 0x78563412 {
		t.Errorf("Swap32 got: %#x expected: %#x", got, 0x78563412)
	}
}

func TestClz32(t *testing.T) {
	cases := []struct {
		v    uint32
		want uint32
	}{
		{0, 32},
		{1, 31},
		{0x8000_0000, 0},
		{0x0000_0001, 31},
		{0x0001_0000, 15},
	}
	for _, c := range cases {
		if got := Clz32(c.v); got != c.want {
			t.Errorf("Clz32(%#x) got: %d expected: %d", c.v, got, c.want)
		}
	}
}

func TestRotl32(t *testing.T) {
	if got := Rotl32(0x8000_0001, 1); got != 0x0000_0003 {
		t.Errorf("Rotl32 got: %#x expected: %#x", got, 0x0000_0003)
	}
	if got := Rotl32(0x1234, 0); got != 0x1234 {
		t.Errorf("Rotl32 by 0 got: %#x expected: %#x", got, 0x1234)
	}
}

func TestGetMaskNoWrap(t *testing.T) {
	if got := GetMask(0, 31); got != 0xFFFF_FFFF {
		t.Errorf("GetMask(0,31) got: %#x expected: %#x", got, 0xFFFF_FFFF)
	}
	if got := GetMask(0, 0); got != 0x8000_0000 {
		t.Errorf("GetMask(0,0) got: %#x expected: %#x", got, 0x8000_0000)
	}
	if got := GetMask(31, 31); got != 0x0000_0001 {
		t.Errorf("GetMask(31,31) got: %#x expected: %#x", got, 0x0000_0001)
	}
}

func TestGetMaskWrap(t *testing.T) {
	// start > end wraps around bit 31: bits 30..31 union 0..1
	got := GetMask(30, 1)
	want := uint32(0xC000_0003)
	if got != want {
		t.Errorf("GetMask(30,1) got: %#x expected: %#x", got, want)
	}
}

func TestGetSetBits(t *testing.T) {
	// OPCD is bits 0-5.
	instr := uint32(0b111010_00000_00000_0000000000000000)
	if got := GetBits(instr, 0, 5); got != 0x3A {
		t.Errorf("GetBits(OPCD) got: %#x expected: %#x", got, 0x3A)
	}

	v := SetBits(0, 0, 5, 0x3A)
	if got := GetBits(v, 0, 5); got != 0x3A {
		t.Errorf("SetBits round trip got: %#x expected: %#x", got, 0x3A)
	}
}

func TestFloatBitcastRoundTrip(t *testing.T) {
	if got := BitsToF32(F32ToBits(1.5)); got != 1.5 {
		t.Errorf("float32 bitcast round trip got: %v expected: %v", got, 1.5)
	}
	if got := BitsToF64(F64ToBits(2.25)); got != 2.25 {
		t.Errorf("float64 bitcast round trip got: %v expected: %v", got, 2.25)
	}
}
