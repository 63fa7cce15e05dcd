/*
 * nouwii - System orchestrator.
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

// Package system is the orchestrator: it owns every subsystem, wires the
// interface boundaries that would otherwise form import cycles (memory ↔
// device, CPU ↔ PI, IPC ↔ HLE ↔ memory), and drives the run loop (§2, §9
// "System container").
package system

import (
	"fmt"
	"log/slog"

	"github.com/noumidev/nouwii/internal/cpu"
	"github.com/noumidev/nouwii/internal/device"
	"github.com/noumidev/nouwii/internal/hle"
	"github.com/noumidev/nouwii/internal/ipc"
	"github.com/noumidev/nouwii/internal/irq"
	"github.com/noumidev/nouwii/internal/loader"
	"github.com/noumidev/nouwii/internal/memory"
	"github.com/noumidev/nouwii/internal/sched"
)

// FatalError is the guest-fatal-host-fatal diagnostic the run loop
// recovers at its top level (§7): a one-line message with the offending
// instruction address.
type FatalError struct {
	CIA uint32
	Err error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("fatal at cia=%#08x: %v", e.CIA, e.Err)
}

func (e *FatalError) Unwrap() error { return e.Err }

// System owns every subsystem and the pre-boot memory-constants table
// written at reset (§6).
type System struct {
	log *slog.Logger

	router *device.Router
	mem    *memory.Memory

	pi     *irq.PI
	bridge *irq.Bridge

	cpuState *cpu.State

	scheduler *sched.Scheduler

	hleSvc  *hle.Service
	mailbox *ipc.Mailbox
}

// New wires every subsystem in dependency order (§9 "no cycles need
// back-pointers if the System owns them and passes references downward").
func New(log *slog.Logger, fsRoot string) *System {
	s := &System{log: log}

	s.router = device.NewRouter(log)
	s.mem = memory.New(log, s.router)

	// irq.PI's onEligible callback re-polls the CPU the instant a newly
	// unmasked/asserted line makes it eligible (§4.4); cpuState is filled
	// in below, but the closure only dereferences it once invoked, after
	// cpu.New has run.
	s.pi = irq.NewPI(log, func() {
		if s.cpuState != nil {
			s.cpuState.PollInterrupts()
		}
	})
	s.bridge = irq.NewBridge(log, s.pi)

	s.cpuState = cpu.New(log, s.mem, s.pi)
	s.scheduler = sched.New(s.cpuState.CycleBudget())

	s.hleSvc = hle.New(log, fsRoot)
	s.mailbox = ipc.New(log, s.mem, s.scheduler, s.bridge, s.hleSvc)

	s.registerDevices()

	return s
}

// registerDevices installs the fixed device-window table (§3).
func (s *System) registerDevices() {
	piRegs := device.NewPI(s.log, s.pi)
	dsp := device.NewDSP(s.log)
	di := device.NewDI(s.log)
	exi := device.NewEXI(s.log)

	s.router.Register(device.Window{Name: "VI", Base: 0x0C00_2000, Size: 0x100, Dev: device.NewSoft("VI", s.log)})
	s.router.Register(device.Window{Name: "PI", Base: 0x0C00_3000, Size: 0x1000, Dev: piRegs})
	s.router.Register(device.Window{Name: "MI", Base: 0x0C00_4000, Size: 0x80, Dev: device.NewSoft("MI", s.log)})
	s.router.Register(device.Window{Name: "DSP", Base: 0x0C00_5000, Size: 0x200, Dev: dsp})
	s.router.Register(device.Window{Name: "Bridge", Base: 0x0D00_0000, Size: 0x400, ExtraMask: 1 << 23, Dev: s.mailbox})
	s.router.Register(device.Window{Name: "DI", Base: 0x0D00_6000, Size: 0x40, Dev: di})
	s.router.Register(device.Window{Name: "SI", Base: 0x0D00_6400, Size: 0x100, Dev: device.NewSoft("SI", s.log)})
	s.router.Register(device.Window{Name: "EXI", Base: 0x0D00_6800, Size: 0x80, Dev: exi})
	s.router.Register(device.Window{Name: "AI", Base: 0x0D00_6C00, Size: 0x20, Dev: device.NewSoft("AI", s.log)})
}

// Init brings a System built by New to its power-on state by calling Reset
// (New does all allocation and window registration, so tests can construct
// a System and Reset it repeatedly without re-registering device windows).
func (s *System) Init() {
	s.Reset()
}

// Reset re-zeroes every subsystem and rewrites the pre-boot memory
// constants table (§6).
func (s *System) Reset() {
	s.mem.Reset()
	s.pi.Reset()
	s.bridge.Reset()
	s.cpuState.Reset()
	s.scheduler.Reset()
	s.hleSvc.Reset()
	s.mailbox.Reset()

	writePrebootConstants(s.mem)
}

// Shutdown releases host resources (open HLE file descriptors); memory
// banks are ordinary Go slices and need no explicit free.
func (s *System) Shutdown() {
	s.hleSvc.Reset()
}

// LoadImage parses and loads an executable image, then sets the CPU entry
// point (§6).
func (s *System) LoadImage(data []byte) error {
	img, err := loader.Parse(data)
	if err != nil {
		return err
	}
	entry, err := img.Load(s.mem)
	if err != nil {
		return err
	}
	s.cpuState.SetEntry(entry)
	return nil
}

// Run drives the cooperative loop described in §2 and §5: the scheduler
// hands the CPU a slice of cycles, the CPU executes all of them (an
// exception redirects control but does not end the slice, so the slice
// boundary is the only re-entry point this loop needs), then at most one
// scheduler event fires. Guest/host fatal conditions surface as panics
// from deep in the CPU/memory/device stack (strings or
// *device.UnimplementedError); Run recovers any panic, wraps it in a
// *FatalError carrying the current CIA (a *FatalError is passed through
// as is), and returns it to the caller without logging it. The emulation
// does not continue after such an error.
func (s *System) Run() (err error) {
	defer func() {
		if r := recover(); r != nil {
			if fe, ok := r.(*FatalError); ok {
				err = fe
				return
			}
			err = &FatalError{CIA: s.cpuState.CIA, Err: fmt.Errorf("%v", r)}
		}
	}()

	for {
		slice := s.scheduler.NextSlice()
		s.cpuState.Run(slice)
		s.scheduler.Fire()
	}
}

// writePrebootConstants writes the fixed boot-ROM-emulation table to MEM1
// 0x28..0x3164 (§6). Values beyond the documented semaphore/version words
// are zero, matching an otherwise-unused low-memory region.
func writePrebootConstants(mem *memory.Memory) {
	const (
		lowMemBase  = 0x28
		highMemBase = 0x2C
		iosVersion  = 0xF4
		iosRevision = 0xF8
		initSemaddr = 0x3160
	)

	mem.Write32(lowMemBase, memory.Mem1Size)
	mem.Write32(highMemBase, memory.Mem2Size)
	mem.Write32(iosVersion, 0)
	mem.Write32(iosRevision, 0)
	mem.Write32(initSemaddr, 0)
}
