/*
 * nouwii - High-level-emulated virtual devices.
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
	"github.com/noumidev/nouwii/internal/memory"
)

// diDevice backs /dev/di. Only DvdLowGetCoverRegister is implemented; any
// other ioctl is fatal (§4.5).
type diDevice struct{}

const diIoctlGetCoverRegister = 0x7A

func (d *diDevice) Ioctl(mem *memory.Memory, ioctl uint32, addr0, size0, addr1, size1 uint32) (int32, error) {
	if ioctl != diIoctlGetCoverRegister {
		return 0, errUnhandled
	}
	zeroMem(mem, addr1, 4)
	return 0, nil
}

func (d *diDevice) Ioctlv(mem *memory.Memory, ioctl uint32, in, out []IOVec) (int32, error) {
	return 0, errUnhandled
}

// esDevice backs /dev/es: title-metadata queries used by the loader's
// guest-side counterpart (§4.5).
type esDevice struct{}

const (
	esIoctlvGetDataDir  = 0x1D
	esIoctlvGetTitleID  = 0x20
	esFixedTitleID      = 0x0000_0001_0000_0002
	esDataDirPath       = "/title/00000001/00000002/data"
)

func (d *esDevice) Ioctl(mem *memory.Memory, ioctl uint32, addr0, size0, addr1, size1 uint32) (int32, error) {
	return 0, errUnhandled
}

func (d *esDevice) Ioctlv(mem *memory.Memory, ioctl uint32, in, out []IOVec) (int32, error) {
	switch ioctl {
	case esIoctlvGetDataDir:
		if len(in) < 1 || len(out) < 1 {
			return 0, errUnhandled
		}
		titleID := readTitleID(mem, in[0].Addr)
		if titleID != esFixedTitleID {
			return -1, nil
		}
		writeTruncatedString(mem, out[0].Addr, out[0].Size, esDataDirPath)
		return 0, nil
	case esIoctlvGetTitleID:
		if len(out) < 1 {
			return 0, errUnhandled
		}
		writeTitleID(mem, out[0].Addr, esFixedTitleID)
		return 0, nil
	default:
		return 0, errUnhandled
	}
}

func readTitleID(mem *memory.Memory, addr uint32) uint64 {
	return uint64(mem.Read32(addr))<<32 | uint64(mem.Read32(addr+4))
}

func writeTitleID(mem *memory.Memory, addr uint32, id uint64) {
	mem.Write32(addr, uint32(id>>32))
	mem.Write32(addr+4, uint32(id))
}

// fsDevice backs /dev/fs: SetAttr/GetAttr only (§4.5).
type fsDevice struct{}

const (
	fsIoctlSetAttr = 5
	fsIoctlGetAttr = 6

	fsAttrInputNameSize = 0x40
	fsAttrStructSize    = 0x4C
	fsAttrNameOffset    = 6
)

func (d *fsDevice) Ioctl(mem *memory.Memory, ioctl uint32, addr0, size0, addr1, size1 uint32) (int32, error) {
	switch ioctl {
	case fsIoctlSetAttr:
		zeroMem(mem, addr1, fsAttrStructSize)
		copyMem(mem, addr1+fsAttrNameOffset, addr0, fsAttrInputNameSize)
		return 0, nil
	case fsIoctlGetAttr:
		zeroMem(mem, addr1, fsAttrStructSize)
		copyMem(mem, addr1+fsAttrNameOffset, addr0, fsAttrInputNameSize)
		return 0, nil
	default:
		return 0, errUnhandled
	}
}

func (d *fsDevice) Ioctlv(mem *memory.Memory, ioctl uint32, in, out []IOVec) (int32, error) {
	return 0, errUnhandled
}

func zeroMem(mem *memory.Memory, addr uint32, size int) {
	for i := 0; i < size; i++ {
		mem.Write8(addr+uint32(i), 0)
	}
}

func copyMem(mem *memory.Memory, dst, src uint32, size int) {
	for i := 0; i < size; i++ {
		mem.Write8(dst+uint32(i), mem.Read8(src+uint32(i)))
	}
}

// writeTruncatedString writes s as ASCII bytes into mem at addr, truncated
// (not NUL-padded past the written length) to size.
func writeTruncatedString(mem *memory.Memory, addr, size uint32, s string) {
	n := int(size)
	if n > len(s) {
		n = len(s)
	}
	for i := 0; i < n; i++ {
		mem.Write8(addr+uint32(i), s[i])
	}
}
