/*
 * nouwii - IPC command packet dispatch.
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
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/noumidev/nouwii/internal/memory"
)

// Command numbers from the 8-word packet's word 0 (§4.5).
const (
	CmdOpen   = 1
	CmdClose  = 2
	CmdRead   = 3
	CmdWrite  = 4
	CmdSeek   = 5
	CmdIoctl  = 6
	CmdIoctlv = 7

	cmdResponse = 8
)

// packet word offsets, relative to the base address the guest wrote into
// PPCMSG.
const (
	pktCmd    = 0
	pktRetval = 4
	pktFD     = 8
	pktArgs   = 12
)

// Execute reads the command packet at base, runs it, and writes the
// response packet back in place (§4.5: "storing the original command into
// the fd word and writing 8 into the cmd word").
func (s *Service) Execute(mem *memory.Memory, base uint32) {
	cmd := mem.Read32(base + pktCmd)
	fd := int32(mem.Read32(base + pktFD))
	var args [5]uint32
	for i := range args {
		args[i] = mem.Read32(base + pktArgs + uint32(i)*4)
	}

	retval := s.dispatch(mem, cmd, fd, args)

	mem.Write32(base+pktCmd, cmdResponse)
	mem.Write32(base+pktRetval, uint32(retval))
	mem.Write32(base+pktFD, cmd)
}

func (s *Service) dispatch(mem *memory.Memory, cmd uint32, fd int32, args [5]uint32) int32 {
	switch cmd {
	case CmdOpen:
		return s.open(mem, args[0], args[1])
	case CmdClose:
		return s.close(fd)
	case CmdRead:
		return s.read(mem, fd, args[0], args[1])
	case CmdWrite:
		return s.write(mem, fd, args[0], args[1])
	case CmdSeek:
		return s.seek(fd, args[0], args[1])
	case CmdIoctl:
		return s.ioctl(mem, fd, args[0], args[1], args[2], args[3], args[4])
	case CmdIoctlv:
		return s.ioctlv(mem, fd, args[0], args[1], args[2], args[3])
	default:
		s.log.Error("hle: unknown command", "cmd", cmd)
		panic(fmt.Sprintf("hle: unknown command %d", cmd))
	}
}

// readCString reads a NUL-terminated string starting at addr.
func readCString(mem *memory.Memory, addr uint32) string {
	var b strings.Builder
	for {
		c := mem.Read8(addr)
		if c == 0 {
			break
		}
		b.WriteByte(c)
		addr++
	}
	return b.String()
}

func (s *Service) open(mem *memory.Memory, namePtr, mode uint32) int32 {
	name := readCString(mem, namePtr)
	fd := s.alloc()
	if fd < 0 {
		s.log.Error("hle: descriptor table exhausted", "name", name)
		panic("hle: descriptor table exhausted")
	}

	if strings.HasPrefix(name, "/dev/") {
		handler := s.devices[name]
		s.fds[fd] = fdEntry{opened: true, name: name, handler: handler}
		s.log.Debug("hle open", "fd", fd, "name", name, "virtual", handler != nil)
		return int32(fd)
	}

	path := filepath.Join(s.fsRoot, name)
	f, err := openHostFile(path, mode)
	if err != nil {
		s.log.Warn("hle open failed", "name", name, "err", err)
		return -1
	}
	s.fds[fd] = fdEntry{opened: true, name: name, file: f}
	s.log.Debug("hle open", "fd", fd, "name", name, "path", path)
	return int32(fd)
}

func openHostFile(path string, mode uint32) (*os.File, error) {
	if mode == 0 {
		return os.Open(path)
	}
	return os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
}

func (s *Service) close(fd int32) int32 {
	if !s.valid(int(fd)) {
		return -1
	}
	e := &s.fds[fd]
	if e.file != nil {
		e.file.Close()
	}
	e.opened = false
	return 0
}

func (s *Service) read(mem *memory.Memory, fd int32, addr, size uint32) int32 {
	if !s.valid(int(fd)) || s.fds[fd].file == nil {
		s.log.Error("hle: read on unbacked descriptor", "fd", fd)
		panic(fmt.Sprintf("hle: read on unbacked descriptor %d", fd))
	}
	buf := make([]byte, size)
	n, err := s.fds[fd].file.Read(buf)
	if err != nil && n == 0 {
		return 0
	}
	for i := 0; i < n; i++ {
		mem.Write8(addr+uint32(i), buf[i])
	}
	return int32(n)
}

func (s *Service) write(mem *memory.Memory, fd int32, addr, size uint32) int32 {
	if !s.valid(int(fd)) || s.fds[fd].file == nil {
		s.log.Error("hle: write on unbacked descriptor", "fd", fd)
		panic(fmt.Sprintf("hle: write on unbacked descriptor %d", fd))
	}
	buf := make([]byte, size)
	for i := range buf {
		buf[i] = mem.Read8(addr + uint32(i))
	}
	n, err := s.fds[fd].file.Write(buf)
	if err != nil {
		s.log.Warn("hle write failed", "fd", fd, "err", err)
	}
	return int32(n)
}

// seekSet is the only accepted origin (§4.5).
const seekSet = 0

func (s *Service) seek(fd int32, offset, origin uint32) int32 {
	if !s.valid(int(fd)) || s.fds[fd].file == nil {
		s.log.Error("hle: seek on unbacked descriptor", "fd", fd)
		panic(fmt.Sprintf("hle: seek on unbacked descriptor %d", fd))
	}
	if origin != seekSet {
		s.log.Error("hle: unsupported seek origin", "origin", origin)
		panic(fmt.Sprintf("hle: unsupported seek origin %d", origin))
	}
	if _, err := s.fds[fd].file.Seek(int64(offset), 0); err != nil {
		s.log.Warn("hle seek failed", "fd", fd, "err", err)
		return -1
	}
	return 0
}

func (s *Service) ioctl(mem *memory.Memory, fd int32, ioctl, addr0, size0, addr1, size1 uint32) int32 {
	if !s.valid(int(fd)) || s.fds[fd].handler == nil {
		s.log.Error("hle: ioctl on non-virtual descriptor", "fd", fd)
		panic(fmt.Sprintf("hle: ioctl on non-virtual descriptor %d", fd))
	}
	retval, err := s.fds[fd].handler.Ioctl(mem, ioctl, addr0, size0, addr1, size1)
	if err != nil {
		s.log.Error("hle: unknown ioctl", "fd", fd, "ioctl", ioctl)
		panic(fmt.Sprintf("hle: unknown ioctl %#x on fd %d", ioctl, fd))
	}
	return retval
}

func (s *Service) ioctlv(mem *memory.Memory, fd int32, ioctl, nIn, nOut, vecAddr uint32) int32 {
	if !s.valid(int(fd)) || s.fds[fd].handler == nil {
		s.log.Error("hle: ioctlv on non-virtual descriptor", "fd", fd)
		panic(fmt.Sprintf("hle: ioctlv on non-virtual descriptor %d", fd))
	}

	in := readIOVecs(mem, vecAddr, nIn)
	out := readIOVecs(mem, vecAddr+nIn*8, nOut)

	retval, err := s.fds[fd].handler.Ioctlv(mem, ioctl, in, out)
	if err != nil {
		s.log.Error("hle: unknown ioctlv", "fd", fd, "ioctl", ioctl)
		panic(fmt.Sprintf("hle: unknown ioctlv %#x on fd %d", ioctl, fd))
	}
	return retval
}

// readIOVecs decodes n consecutive {address,size} big-endian word pairs
// starting at addr (§4.5).
func readIOVecs(mem *memory.Memory, addr uint32, n uint32) []IOVec {
	vecs := make([]IOVec, n)
	for i := range vecs {
		base := addr + uint32(i)*8
		vecs[i] = IOVec{Addr: mem.Read32(base), Size: mem.Read32(base + 4)}
	}
	return vecs
}
