/*
 * nouwii - Broadway exception entry and system instructions.
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

// execMtcrf installs RS's nibbles into CR wherever the FXM field selects
// them.
func (s *State) execMtcrf(i instr) {
	rs := s.GPR[i.RS()]
	fxm := i.FXM()
	for field := uint32(0); field < 8; field++ {
		if fxm&(1<<(7-field)) == 0 {
			continue
		}
		shift := crFieldShift(field)
		mask := uint32(0xF) << shift
		s.CR = (s.CR &^ mask) | (rs & mask)
	}
}

// setMSR installs a new MSR value and re-examines interrupt eligibility
// (§4.4: "the CPU re-examines eligibility whenever MSR is written").
func (s *State) setMSR(v uint32) {
	s.MSR = v
	s.maybeTakeExternalInterrupt()
}

// execSc implements the system-call exception (§4.2: "save context, jump
// to vector 0xC00").
const vectorSystemCall = 0xC00
const vectorExternal = 0x500

func (s *State) execSc() {
	s.enterException(vectorSystemCall)
}

// PollInterrupts is the external re-examination hook the PI controller's
// onEligible callback drives (§4.4: an assert that newly makes the CPU
// eligible is a re-examination point in its own right, not just MSR
// writes and RFI).
func (s *State) PollInterrupts() {
	s.maybeTakeExternalInterrupt()
}

// maybeTakeExternalInterrupt is the CPU's re-examination point for pending
// external interrupts (§4.4); call after any MSR write, RFI, or mask
// widening.
func (s *State) maybeTakeExternalInterrupt() {
	if s.msrBit(msrEE) && s.pi != nil && s.pi.Eligible() {
		s.enterException(vectorExternal)
	}
}

// msrSaveMask is the bit mask of MSR bits copied into SRR1 and preserved
// across exception entry (§4.2: "mask 0x87C0_FF73").
const msrSaveMask = 0x87C0_FF73

func (s *State) enterException(vector uint32) {
	s.SRR0 = s.IA
	s.SRR1 = (s.SRR1 &^ msrSaveMask) | (s.MSR & msrSaveMask)

	ile := s.msrBit(msrILE)
	newMSR := s.MSR
	newMSR = setBit(newMSR, msrLE, ile)
	for _, bit := range []uint{msrRI, msrDR, msrIR, msrFE1, msrBE, msrSE, msrFE0, msrFP, msrPR, msrEE, msrPOW} {
		newMSR = setBit(newMSR, bit, false)
	}
	s.MSR = newMSR
	s.IA = vector
}

func setBit(v uint32, pos uint, on bool) uint32 {
	if on {
		return v | (1 << pos)
	}
	return v &^ (1 << pos)
}

// execRfi restores MSR/IA from SRR1/SRR0 and re-examines interrupts
// (§4.2: "RFI reverses the MSR half... then interrupts are re-examined").
func (s *State) execRfi() {
	s.MSR = (s.MSR &^ msrSaveMask) | (s.SRR1 & msrSaveMask)
	s.setMSRBit(msrPOW, false)
	s.IA = s.SRR0
	s.maybeTakeExternalInterrupt()
}

// execDcbz zeroes the 32-byte cache-line block containing the effective
// address (§4.2: "DCBZ must zero a 32-byte block in memory").
func (s *State) execDcbz(i instr) {
	var base uint32
	if i.RA() != 0 {
		base = s.GPR[i.RA()]
	}
	addr := (base + s.GPR[i.RB()]) &^ 0x1F
	for off := uint32(0); off < 32; off++ {
		s.mem.Write8(addr+off, 0)
	}
}
