/*
 * nouwii - Unified memory subsystem.
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

// Package memory implements the unified memory subsystem: two parallel
// page tables (read/write) over the guest's 32-bit address space, backed by
// the MEM1/MEM2 RAM banks, falling back to the device register router on a
// table miss (§4.1).
package memory

import (
	"fmt"
	"log/slog"

	"github.com/noumidev/nouwii/internal/device"
)

const (
	pageShift = 12
	pageSize  = 1 << pageShift
	pageMask  = pageSize - 1
	numPages  = 1 << (32 - pageShift)

	// Mem1Base and Mem2Base are the guest-physical bases of the two RAM
	// banks (§3).
	Mem1Base = 0x0000_0000
	Mem1Size = 24 * 1024 * 1024
	Mem2Base = 0x1000_0000
	Mem2Size = 64 * 1024 * 1024
)

// Memory owns the read/write page tables and the RAM banks, and dispatches
// misses to the device router.
type Memory struct {
	log *slog.Logger

	tableRd [numPages][]byte
	tableWr [numPages][]byte

	mem1 []byte
	mem2 []byte

	router *device.Router
}

// New allocates the RAM banks (not yet mapped — call Reset to map them) and
// wires the device router that misses fall through to.
func New(log *slog.Logger, router *device.Router) *Memory {
	return &Memory{
		log:    log,
		mem1:   make([]byte, Mem1Size),
		mem2:   make([]byte, Mem2Size),
		router: router,
	}
}

// Reset clears both page tables and remaps the RAM banks at their fixed
// bases, read/write.
func (m *Memory) Reset() {
	for i := range m.tableRd {
		m.tableRd[i] = nil
		m.tableWr[i] = nil
	}
	m.Map(m.mem1, Mem1Base, Mem1Size, true, true)
	m.Map(m.mem2, Mem2Base, Mem2Size, true, true)
}

// Map installs mem (len(mem) == size) into the selected page table(s)
// starting at base. base and size must be page-aligned; mapping over an
// already-installed page panics (programmer error, not a guest-fatal
// condition — config only happens at reset).
func (m *Memory) Map(mem []byte, base, size uint32, readable, writable bool) {
	if base&pageMask != 0 || size&pageMask != 0 {
		panic(fmt.Sprintf("memory: unaligned map base=%#x size=%#x", base, size))
	}
	firstPage := base >> pageShift
	numPages := size >> pageShift
	for p := uint32(0); p < numPages; p++ {
		page := firstPage + p
		off := p << pageShift
		end := off + pageSize
		if readable {
			if m.tableRd[page] != nil {
				panic(fmt.Sprintf("memory: page %#x already mapped (read)", page))
			}
			m.tableRd[page] = mem[off:end]
		}
		if writable {
			if m.tableWr[page] != nil {
				panic(fmt.Sprintf("memory: page %#x already mapped (write)", page))
			}
			m.tableWr[page] = mem[off:end]
		}
	}
}

// GetPointer returns a byte slice view of the page containing addr
// (preferring the read table), or nil if addr is not RAM-backed.
func (m *Memory) GetPointer(addr uint32) []byte {
	page := addr >> pageShift
	off := addr & pageMask
	if s := m.tableRd[page]; s != nil {
		return s[off:]
	}
	if s := m.tableWr[page]; s != nil {
		return s[off:]
	}
	return nil
}

func (m *Memory) Read8(addr uint32) uint8 {
	page := addr >> pageShift
	if s := m.tableRd[page]; s != nil {
		return s[addr&pageMask]
	}
	return m.router.Read8(addr)
}

// A multi-byte access that misses the table goes to the device router at
// its full width. One that fits inside a mapped page is served from that
// page's slice; accesses wider than a byte can straddle a page boundary
// (§4.1: BAT translation, and by extension this table, is oblivious to
// alignment), so one that crosses out of a mapped page walks byte-by-byte
// through Read8/Write8. 64-bit accesses are split into two 32-bit ones.

func (m *Memory) Read16(addr uint32) uint16 {
	if m.tableRd[addr>>pageShift] == nil {
		return m.router.Read16(addr)
	}
	if s := m.tableRd[addr>>pageShift]; s != nil && addr&pageMask != pageMask {
		off := addr & pageMask
		return uint16(s[off])<<8 | uint16(s[off+1])
	}
	return uint16(m.Read8(addr))<<8 | uint16(m.Read8(addr+1))
}

func (m *Memory) Read32(addr uint32) uint32 {
	if m.tableRd[addr>>pageShift] == nil {
		return m.router.Read32(addr)
	}
	if s :=m.tableRd[addr>>pageShift]; s != nil && addr&pageMask <= pageMask-3 {
		off := addr & pageMask
		return uint32(s[off])<<24 | uint32(s[off+1])<<16 | uint32(s[off+2])<<8 | uint32(s[off+3])
	}
	return uint32(m.Read8(addr))<<24 | uint32(m.Read8(addr+1))<<16 | uint32(m.Read8(addr+2))<<8 | uint32(m.Read8(addr+3))
}

func (m *Memory) Read64(addr uint32) uint64 {
	return uint64(m.Read32(addr))<<32 | uint64(m.Read32(addr+4))
}

func (m *Memory) Write8(addr uint32, v uint8) {
	page := addr >> pageShift
	if s := m.tableWr[page]; s != nil {
		s[addr&pageMask] = v
		return
	}
	m.router.Write8(addr, v)
}

func (m *Memory) Write16(addr uint32, v uint16) {
	if m.tableWr[addr>>pageShift] == nil {
		m.router.Write16(addr, v)
		return
	}
	if s :=m.tableWr[addr>>pageShift]; s != nil && addr&pageMask != pageMask {
		off := addr & pageMask
		s[off] = byte(v >> 8)
		s[off+1] = byte(v)
		return
	}
	m.Write8(addr, byte(v>>8))
	m.Write8(addr+1, byte(v))
}

func (m *Memory) Write32(addr uint32, v uint32) {
	if m.tableWr[addr>>pageShift] == nil {
		m.router.Write32(addr, v)
		return
	}
	if s :=m.tableWr[addr>>pageShift]; s != nil && addr&pageMask <= pageMask-3 {
		off := addr & pageMask
		s[off] = byte(v >> 24)
		s[off+1] = byte(v >> 16)
		s[off+2] = byte(v >> 8)
		s[off+3] = byte(v)
		return
	}
	m.Write8(addr, byte(v>>24))
	m.Write8(addr+1, byte(v>>16))
	m.Write8(addr+2, byte(v>>8))
	m.Write8(addr+3, byte(v))
}

func (m *Memory) Write64(addr uint32, v uint64) {
	m.Write32(addr, uint32(v>>32))
	m.Write32(addr+4, uint32(v))
}
