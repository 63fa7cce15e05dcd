/*
 * nouwii - High-level emulation test cases.
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

package hle

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/noumidev/nouwii/internal/device"
	"github.com/noumidev/nouwii/internal/memory"
)

func newTestService(t *testing.T) (*Service, *memory.Memory) {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := device.NewRouter(log)
	mem := memory.New(log, router)
	mem.Reset()
	return New(log, t.TempDir()), mem
}

func writeCString(mem *memory.Memory, addr uint32, s string) {
	for i := 0; i < len(s); i++ {
		mem.Write8(addr+uint32(i), s[i])
	}
	mem.Write8(addr+uint32(len(s)), 0)
}

func TestOpenESAndGetTitleID(t *testing.T) {
	s, mem := newTestService(t)
	s.Reset()

	writeCString(mem, 0x1000_0020, "/dev/es")
	retval := s.dispatch(mem, CmdOpen, 0, [5]uint32{0x1000_0020, 0, 0, 0, 0})
	if retval != 0 {
		t.Fatalf("open /dev/es got fd: %d expected: 0", retval)
	}

	// Build an ioctlv vector: 0 inputs, 1 output {addr=0x1000_0100, size=8}.
	const vec = 0x1000_0200
	mem.Write32(vec, 0x1000_0100)
	mem.Write32(vec+4, 8)

	rv := s.dispatch(mem, CmdIoctlv, 0, [5]uint32{esIoctlvGetTitleID, 0, 1, vec, 0})
	if rv != 0 {
		t.Fatalf("GetTitleId retval got: %d expected: 0", rv)
	}
	got := uint64(mem.Read32(0x1000_0100))<<32 | uint64(mem.Read32(0x1000_0104))
	if got != esFixedTitleID {
		t.Errorf("GetTitleId output got: %#x expected: %#x", got, uint64(esFixedTitleID))
	}
}

func TestOpenESGetDataDir(t *testing.T) {
	s, mem := newTestService(t)
	s.Reset()
	writeCString(mem, 0x1000_0020, "/dev/es")
	fd := s.dispatch(mem, CmdOpen, 0, [5]uint32{0x1000_0020, 0, 0, 0, 0})

	const inAddr = 0x1000_0100
	mem.Write32(inAddr, 0x0000_0001)
	mem.Write32(inAddr+4, 0x0000_0002)

	const vec = 0x1000_0200
	mem.Write32(vec, inAddr)
	mem.Write32(vec+4, 8)
	mem.Write32(vec+8, 0x1000_0300)
	mem.Write32(vec+12, 64)

	rv := s.dispatch(mem, CmdIoctlv, fd, [5]uint32{esIoctlvGetDataDir, 1, 1, vec, 0})
	if rv != 0 {
		t.Fatalf("GetDataDir retval got: %d expected: 0", rv)
	}
	got := readCString(mem, 0x1000_0300)
	if got != "/title/00000001/00000002/data" {
		t.Errorf("GetDataDir path got: %q", got)
	}
}

func TestDIGetCoverRegister(t *testing.T) {
	s, mem := newTestService(t)
	s.Reset()
	writeCString(mem, 0x1000_0020, "/dev/di")
	fd := s.dispatch(mem, CmdOpen, 0, [5]uint32{0x1000_0020, 0, 0, 0, 0})

	mem.Write32(0x1000_0400, 0xFFFF_FFFF)
	rv := s.dispatch(mem, CmdIoctl, fd, [5]uint32{diIoctlGetCoverRegister, 0, 0, 0x1000_0400, 4})
	if rv != 0 {
		t.Fatalf("DvdLowGetCoverRegister retval got: %d expected: 0", rv)
	}
	if got := mem.Read32(0x1000_0400); got != 0 {
		t.Errorf("cover register got: %#x expected: 0", got)
	}
}

func TestFSGetAttrCopiesFixedLengthName(t *testing.T) {
	s, mem := newTestService(t)
	s.Reset()
	writeCString(mem, 0x1000_0020, "/dev/fs")
	fd := s.dispatch(mem, CmdOpen, 0, [5]uint32{0x1000_0020, 0, 0, 0, 0})

	const inAddr = 0x1000_0100
	const outAddr = 0x1000_0200

	// Poison the bytes just past the 0x40-byte name so a copy that runs
	// long (or an under-sized zero) would be caught.
	for i := uint32(0); i < fsAttrStructSize; i++ {
		mem.Write8(outAddr+i, 0xFF)
	}
	name := make([]byte, fsAttrInputNameSize)
	copy(name, "bogusname")
	for i, b := range name {
		mem.Write8(inAddr+uint32(i), b)
	}
	mem.Write8(inAddr+fsAttrInputNameSize, 0xAA) // one byte past the name

	rv := s.dispatch(mem, CmdIoctl, fd, [5]uint32{fsIoctlGetAttr, inAddr, fsAttrInputNameSize, outAddr, fsAttrStructSize})
	if rv != 0 {
		t.Fatalf("GetAttr retval got: %d expected: 0", rv)
	}

	for i := 0; i < len("bogusname"); i++ {
		if got := mem.Read8(outAddr + fsAttrNameOffset + uint32(i)); got != name[i] {
			t.Fatalf("output name byte %d got: %#x expected: %#x", i, got, name[i])
		}
	}
	if got := mem.Read8(outAddr + fsAttrStructSize - 1); got != 0 {
		t.Errorf("last byte of the 0x4C-byte output got: %#x expected: 0", got)
	}
}

func TestHostFileReadWriteRoundTrip(t *testing.T) {
	s, mem := newTestService(t)
	path := filepath.Join(s.fsRoot, "data.bin")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}
	s.Reset()

	writeCString(mem, 0x1000_0020, "data.bin")
	fd := s.dispatch(mem, CmdOpen, 0, [5]uint32{0x1000_0020, 0, 0, 0, 0})
	if fd < 0 {
		t.Fatalf("open host file failed: %d", fd)
	}

	n := s.dispatch(mem, CmdRead, fd, [5]uint32{0x1000_0100, 5, 0, 0, 0})
	if n != 5 {
		t.Fatalf("read got: %d expected: 5", n)
	}
	for i, want := range []byte("hello") {
		if got := mem.Read8(0x1000_0100 + uint32(i)); got != want {
			t.Errorf("byte %d got: %#x expected: %#x", i, got, want)
		}
	}

	if rv := s.dispatch(mem, CmdClose, fd, [5]uint32{}); rv != 0 {
		t.Errorf("close retval got: %d expected: 0", rv)
	}
}

func TestExecuteWritesResponsePacket(t *testing.T) {
	s, mem := newTestService(t)
	s.Reset()

	const base = 0x1000_0000
	writeCString(mem, 0x1000_0020, "/dev/es")
	mem.Write32(base+0, CmdOpen)
	mem.Write32(base+8, 0)
	mem.Write32(base+12, 0x1000_0020)
	mem.Write32(base+16, 0)

	s.Execute(mem, base)

	if got := mem.Read32(base + 0); got != cmdResponse {
		t.Errorf("response cmd word got: %d expected: %d", got, cmdResponse)
	}
	if got := mem.Read32(base + 8); got != CmdOpen {
		t.Errorf("response fd word got: %d expected original cmd: %d", got, CmdOpen)
	}
}
