/*
 * nouwii - Broadway special purpose register file.
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

// SPR numbers from §4.2's routing table.
const (
	sprXER  = 1
	sprLR   = 8
	sprCTR  = 9
	sprDAR  = 19
	sprDEC  = 22
	sprSRR0 = 26
	sprSRR1 = 27
	sprTBL  = 268
	sprTBU  = 269
	sprSPRG0 = 272
	sprSPRG3 = 275
	sprIBAT0U = 528
	sprIBAT3L = 535
	sprDBAT0U = 536
	sprDBAT3L = 543
	sprIBAT4U = 560
	sprIBAT7L = 567
	sprDBAT4U = 568
	sprDBAT7L = 575
	sprGQR0  = 912
	sprGQR7  = 919
	sprHID2  = 920
	sprMMCR0 = 952
	sprPMC1  = 953
	sprPMC2  = 954
	sprMMCR1 = 955
	sprPMC3  = 956
	sprPMC4  = 957
	sprHID0  = 1008
	sprHID4  = 1011
	sprL2CR  = 1017
)

// mfspr reads an SPR; anything not in the table is fatal (§4.2, §7).
func (s *State) mfspr(spr uint32) uint32 {
	switch {
	case spr == sprXER:
		return s.XER
	case spr == sprLR:
		return s.LR
	case spr == sprCTR:
		return s.CTR
	case spr == sprDAR:
		return s.DAR
	case spr == sprDEC:
		return s.DEC
	case spr == sprSRR0:
		return s.SRR0
	case spr == sprSRR1:
		return s.SRR1
	case spr == sprTBL:
		return s.TBL
	case spr == sprTBU:
		return s.TBU
	case spr >= sprSPRG0 && spr <= sprSPRG3:
		return s.SPRG[spr-sprSPRG0]
	case spr >= sprIBAT0U && spr <= sprIBAT3L:
		return s.batReg(&s.IBAT, spr-sprIBAT0U)
	case spr >= sprDBAT0U && spr <= sprDBAT3L:
		return s.batReg(&s.DBAT, spr-sprDBAT0U)
	case spr >= sprIBAT4U && spr <= sprIBAT7L:
		return s.batReg(&s.IBAT, 8+(spr-sprIBAT4U))
	case spr >= sprDBAT4U && spr <= sprDBAT7L:
		return s.batReg(&s.DBAT, 8+(spr-sprDBAT4U))
	case spr >= sprGQR0 && spr <= sprGQR7:
		return s.GQR[spr-sprGQR0]
	case spr == sprHID2:
		return s.HID2
	case spr == sprMMCR0:
		return s.MMCR0
	case spr == sprMMCR1:
		return s.MMCR1
	case spr == sprPMC1:
		return s.PMC[0]
	case spr == sprPMC2:
		return s.PMC[1]
	case spr == sprPMC3:
		return s.PMC[2]
	case spr == sprPMC4:
		return s.PMC[3]
	case spr == sprHID0:
		return s.HID0
	case spr == sprHID4:
		return s.HID4
	case spr == sprL2CR:
		return s.L2CR
	default:
		s.log.Error("mfspr: unknown spr", "spr", spr)
		panic("cpu: unknown spr read")
	}
}

// mtspr writes an SPR. Each BAT SPR's offset from its bank base selects
// entry offset/2 of the 8-slot BAT arrays: even offsets write the upper
// word, odd offsets the lower (U=even, L=odd, §4.2).
func (s *State) mtspr(spr uint32, v uint32) {
	switch {
	case spr == sprXER:
		s.XER = v
	case spr == sprLR:
		s.LR = v
	case spr == sprCTR:
		s.CTR = v
	case spr == sprDAR:
		s.DAR = v
	case spr == sprDEC:
		s.DEC = v
	case spr == sprSRR0:
		s.SRR0 = v
	case spr == sprSRR1:
		s.SRR1 = v
	case spr >= sprSPRG0 && spr <= sprSPRG3:
		s.SPRG[spr-sprSPRG0] = v
	case spr >= sprIBAT0U && spr <= sprIBAT3L:
		s.setBATReg(&s.IBAT, spr-sprIBAT0U, v)
	case spr >= sprDBAT0U && spr <= sprDBAT3L:
		s.setBATReg(&s.DBAT, spr-sprDBAT0U, v)
	case spr >= sprIBAT4U && spr <= sprIBAT7L:
		s.setBATReg(&s.IBAT, 8+(spr-sprIBAT4U), v)
	case spr >= sprDBAT4U && spr <= sprDBAT7L:
		s.setBATReg(&s.DBAT, 8+(spr-sprDBAT4U), v)
	case spr >= sprGQR0 && spr <= sprGQR7:
		s.GQR[spr-sprGQR0] = v
	case spr == sprHID2:
		s.HID2 = v
	case spr == sprMMCR0:
		s.MMCR0 = v
	case spr == sprMMCR1:
		s.MMCR1 = v
	case spr == sprPMC1:
		s.PMC[0] = v
	case spr == sprPMC2:
		s.PMC[1] = v
	case spr == sprPMC3:
		s.PMC[2] = v
	case spr == sprPMC4:
		s.PMC[3] = v
	case spr == sprHID0:
		// Flash-invalidate bits self-clear after any write that observes
		// them (§3).
		s.HID0 = v &^ hid0FlashInvalidate
	case spr == sprHID4:
		s.HID4 = v | hid4Bit31
	case spr == sprL2CR:
		// l2i self-clears l2ip (§4.2 SPR table).
		if v&l2crL2I != 0 {
			v &^= l2crL2IP
		}
		s.L2CR = v
	default:
		s.log.Error("mtspr: unknown spr", "spr", spr)
		panic("cpu: unknown spr write")
	}
}

const (
	hid0FlashInvalidate = 1<<11 | 1<<10 // ICFI, DCFI (MSB bits 20,21)
	hid4Bit31           = 1 << 0        // MSB bit 31 always reads 1
	l2crL2I             = 1 << 30       // MSB bit 1 (L2 global invalidate)
	l2crL2IP            = 1 << 31       // MSB bit 0 (L2 invalidate in progress)
)

func (s *State) batReg(table *[8]batPair, idx uint32) uint32 {
	if idx%2 == 0 {
		return table[idx/2].upper
	}
	return table[idx/2].lower
}

func (s *State) setBATReg(table *[8]batPair, idx uint32, v uint32) {
	if idx%2 == 0 {
		table[idx/2].upper = v
	} else {
		table[idx/2].lower = v
	}
}

// mftb reads the timebase; index selects TBL (268) or TBU (269).
func (s *State) mftb(spr uint32) uint32 {
	switch spr {
	case sprTBL:
		return s.TBL
	case sprTBU:
		return s.TBU
	default:
		s.log.Error("mftb: unknown tbr", "spr", spr)
		panic("cpu: unknown tbr read")
	}
}
