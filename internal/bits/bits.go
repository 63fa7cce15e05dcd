/*
 * nouwii - MSB-numbered bit-field and byte-swap helpers.
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

// Package bits implements the byte-swap, bit-counting, rotate, and
// MSB-numbered bit-field primitives used throughout the emulator.
//
// PowerPC numbers bits within a word from the most significant bit (bit 0 =
// MSB, bit 31 = LSB). GetMask/GetBits/SetBits work in that convention;
// everything else in the tree that slices a field out of an instruction word
// or a register goes through these.
package bits

import "math"

// Swap16 byte-swaps a 16-bit value.
func Swap16(v uint16) uint16 {
	return (v >> 8) | (v << 8)
}

// Swap32 byte-swaps a 32-bit value.
func Swap32(v uint32) uint32 {
	return (v >> 24) | ((v >> 8) & 0xFF00) | ((v << 8) & 0xFF0000) | (v << 24)
}

// Swap64 byte-swaps a 64-bit value.
func Swap64(v uint64) uint64 {
	return uint64(Swap32(uint32(v>>32))) | (uint64(Swap32(uint32(v))) << 32)
}

// Clz32 counts leading zero bits in a 32-bit value (32 if v == 0).
func Clz32(v uint32) uint32 {
	if v == 0 {
		return 32
	}
	var n uint32
	for v&0x8000_0000 == 0 {
		v <<= 1
		n++
	}
	return n
}

// Rotl32 rotates v left by amt bits (amt is masked to 0..31).
func Rotl32(v uint32, amt int) uint32 {
	amt &= 31
	if amt == 0 {
		return v
	}
	return (v << uint(amt)) | (v >> uint(32-amt))
}

// F32ToBits reinterprets a float32's bit pattern as a uint32.
func F32ToBits(f float32) uint32 {
	return math.Float32bits(f)
}

// BitsToF32 reinterprets a uint32 bit pattern as a float32.
func BitsToF32(v uint32) float32 {
	return math.Float32frombits(v)
}

// F64ToBits reinterprets a float64's bit pattern as a uint64.
func F64ToBits(f float64) uint64 {
	return math.Float64bits(f)
}

// BitsToF64 reinterprets a uint64 bit pattern as a float64.
func BitsToF64(v uint64) float64 {
	return math.Float64frombits(v)
}

// GetMask produces a contiguous mask of bits start..end in MSB-numbered
// positions. If start > end the field wraps around bit 31.
func GetMask(start, end uint) uint32 {
	var mask uint32
	if start <= end {
		mask = (^uint32(0) >> start) & (^uint32(0) << (31 - end))
	} else {
		mask = (^uint32(0) >> start) | (^uint32(0) << (31 - end))
	}
	return mask
}

// GetBits extracts the field [start,end] (MSB-numbered, inclusive) from v,
// right-justified in the result.
func GetBits(v uint32, start, end uint) uint32 {
	mask := GetMask(start, end)
	return (v & mask) >> (31 - end)
}

// SetBits returns v with the field [start,end] (MSB-numbered, inclusive)
// replaced by the low bits of value.
func SetBits(v uint32, start, end uint, value uint32) uint32 {
	mask := GetMask(start, end)
	return (v &^ mask) | ((value << (31 - end)) & mask)
}

// Bit reports whether bit n (MSB-numbered) of v is set.
func Bit(v uint32, n uint) bool {
	return GetBits(v, n, n) != 0
}
