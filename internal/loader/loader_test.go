/*
 * nouwii - Executable image loader test cases.
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

package loader

import "testing"

type fakeMem struct {
	written map[uint32]uint8
}

func newFakeMem() *fakeMem { return &fakeMem{written: map[uint32]uint8{}} }

func (m *fakeMem) Write8(addr uint32, v uint8) { m.written[addr] = v }

func putBE32(b []byte, off uint32, v uint32) {
	b[off] = byte(v >> 24)
	b[off+1] = byte(v >> 16)
	b[off+2] = byte(v >> 8)
	b[off+3] = byte(v)
}

func buildImage(t *testing.T) []byte {
	t.Helper()
	const textPayloadOff = headerSize
	payload := []byte{0xDE, 0xAD, 0xBE, 0xEF}

	buf := make([]byte, headerSize+len(payload))
	// One text segment: file offset = textPayloadOff, virtAddr = 0x8000_1000, size = 4.
	putBE32(buf, offTextFileOffsets, textPayloadOff)
	putBE32(buf, offTextVirtAddrs, 0x8000_1000)
	putBE32(buf, offTextSizes, 4)

	// BSS: address 0x8000_2000, size 8.
	putBE32(buf, offBSSAddr, 0x8000_2000)
	putBE32(buf, offBSSSize, 8)

	putBE32(buf, offEntryPoint, 0x8000_1000)

	copy(buf[textPayloadOff:], payload)
	return buf
}

func TestParseAndLoad(t *testing.T) {
	data := buildImage(t)
	img, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	mem := newFakeMem()
	entry, err := img.Load(mem)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if entry != 0x8000_1000&physicalMask {
		t.Fatalf("entry = %#x, want masked 0x8000_1000", entry)
	}

	want := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	base := physical(0x8000_1000)
	for i, b := range want {
		if got := mem.written[base+uint32(i)]; got != b {
			t.Fatalf("byte %d = %#x, want %#x", i, got, b)
		}
	}

	bssBase := physical(0x8000_2000)
	for i := uint32(0); i < 8; i++ {
		if got, ok := mem.written[bssBase+i]; !ok || got != 0 {
			t.Fatalf("bss byte %d = %#x (ok=%v), want 0", i, got, ok)
		}
	}
}

func TestZeroSizeSegmentsSkipped(t *testing.T) {
	data := buildImage(t)
	// Add a second text segment with size 0 — must not be loaded even
	// though its file offset/virt addr fields are garbage.
	putBE32(data, offTextFileOffsets+4, 0xFFFF_FFFF)
	putBE32(data, offTextVirtAddrs+4, 0xFFFF_FFFF)
	putBE32(data, offTextSizes+4, 0)

	img, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(img.segments) != 1 {
		t.Fatalf("segments = %d, want 1 (zero-size skipped)", len(img.segments))
	}
}
