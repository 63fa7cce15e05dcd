/*
 * nouwii - High-level-emulated file descriptor table.
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

// Package hle implements the high-level-emulated service-processor side of
// the IPC protocol: the file-descriptor table and the command handlers for
// Open/Close/Read/Write/Seek/Ioctl/Ioctlv (§4.5).
package hle

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/noumidev/nouwii/internal/memory"
)

// maxFDs is the fixed descriptor-table capacity (§3).
const maxFDs = 128

// fdEntry mirrors §3's literal shape: {opened, name, backing-file-or-null,
// ioctl-handler, ioctlv-handler}.
type fdEntry struct {
	opened  bool
	name    string
	file    *os.File
	handler deviceHandler // nil for plain host-filesystem files
}

// deviceHandler is implemented by each virtual device (/dev/di, /dev/es,
// /dev/fs). A handler whose device doesn't support ioctlv (or ioctl) returns
// errUnhandled so Service can treat it as the guest-fatal "unknown ioctl"
// case (§7).
type deviceHandler interface {
	Ioctl(mem *memory.Memory, ioctl uint32, addr0, size0, addr1, size1 uint32) (int32, error)
	Ioctlv(mem *memory.Memory, ioctl uint32, in, out []IOVec) (int32, error)
}

// IOVec is one {address,size} pair decoded from an ioctlv scatter-gather
// vector (§4.5: "each a pair of 32-bit big-endian words").
type IOVec struct {
	Addr uint32
	Size uint32
}

var errUnhandled = fmt.Errorf("hle: unhandled ioctl")

// Service owns the fixed descriptor table and the virtual-device registry.
// §9 records the allocator's behavior deliberately: fds are allocated
// monotonically and never reused, even though Close marks the slot unused —
// an observed design limit, not a bug to paper over.
type Service struct {
	log    *slog.Logger
	fsRoot string

	fds  [maxFDs]fdEntry
	next int

	devices map[string]deviceHandler
}

// New builds the service layer, rooting host-filesystem fallback opens at
// fsRoot (§5: "resolved relative to a directory named filesystem/").
func New(log *slog.Logger, fsRoot string) *Service {
	s := &Service{log: log, fsRoot: fsRoot}
	s.devices = map[string]deviceHandler{
		"/dev/di": &diDevice{},
		"/dev/es": &esDevice{},
		"/dev/fs": &fsDevice{},
	}
	return s
}

func (s *Service) Reset() {
	for i := range s.fds {
		if s.fds[i].opened && s.fds[i].file != nil {
			s.fds[i].file.Close()
		}
		s.fds[i] = fdEntry{}
	}
	s.next = 0
}

// alloc hands back the next never-reused slot index, or -1 if the table has
// been exhausted (fatal — §7 unknown-handle class).
func (s *Service) alloc() int {
	if s.next >= maxFDs {
		return -1
	}
	fd := s.next
	s.next++
	return fd
}

func (s *Service) valid(fd int) bool {
	return fd >= 0 && fd < maxFDs && s.fds[fd].opened
}
