/*
 * nouwii - Executable image loader.
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

// Package loader parses the relocatable executable-image format described
// in §6: a fixed table of big-endian 32-bit segment descriptors followed
// by a single BSS range and an entry point, all addressed by a boot-ROM-
// style physical mapping.
package loader

import (
	"encoding/binary"
	"fmt"
)

const (
	numTextSegments = 7
	numDataSegments = 11

	offTextFileOffsets = 0x00
	offDataFileOffsets = 0x1C
	offTextVirtAddrs   = 0x48
	offDataVirtAddrs   = 0x64
	offTextSizes       = 0x90
	offDataSizes       = 0xAC
	offBSSAddr         = 0xD8
	offBSSSize         = 0xDC
	offEntryPoint      = 0xE0

	headerSize = 0xE4
)

// Memory is the narrow write surface the loader needs (§6: "the loader
// reads a blob, populates memory regions, returns an entry point").
type Memory interface {
	Write8(addr uint32, v uint8)
}

// physicalMask implements §6's "physical = virtual & 0x3FFF_FFFF".
const physicalMask = 0x3FFF_FFFF

func physical(virtual uint32) uint32 {
	return virtual & physicalMask
}

type segment struct {
	fileOffset uint32
	virtAddr   uint32
	size       uint32
}

// Image is the parsed header: the segment list plus BSS and entry point,
// still holding a reference to the backing file bytes for Load.
type Image struct {
	data     []byte
	segments []segment
	bssAddr  uint32
	bssSize  uint32
	entry    uint32
}

// Parse reads the fixed-layout header out of data (§6's offset table) and
// retains data for the subsequent Load.
func Parse(data []byte) (*Image, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("loader: image too short for header (%d bytes)", len(data))
	}

	img := &Image{data: data}

	readSegments := func(fileOffOff, virtOff, sizeOff, count uint32) {
		for i := uint32(0); i < count; i++ {
			fo := be32(data, fileOffOff+4*i)
			va := be32(data, virtOff+4*i)
			sz := be32(data, sizeOff+4*i)
			if sz == 0 {
				continue // zero-size sections are skipped (§6)
			}
			img.segments = append(img.segments, segment{fileOffset: fo, virtAddr: va, size: sz})
		}
	}
	readSegments(offTextFileOffsets, offTextVirtAddrs, offTextSizes, numTextSegments)
	readSegments(offDataFileOffsets, offDataVirtAddrs, offDataSizes, numDataSegments)

	img.bssAddr = be32(data, offBSSAddr)
	img.bssSize = be32(data, offBSSSize)
	img.entry = be32(data, offEntryPoint)

	return img, nil
}

func be32(data []byte, off uint32) uint32 {
	return binary.BigEndian.Uint32(data[off : off+4])
}

// Load copies every non-empty segment to its physical address, zeroes BSS,
// and returns the (masked) entry point for the CPU (§6).
func (img *Image) Load(mem Memory) (uint32, error) {
	for _, seg := range img.segments {
		if int(seg.fileOffset+seg.size) > len(img.data) {
			return 0, fmt.Errorf("loader: segment at file offset %#x size %#x exceeds image length %d", seg.fileOffset, seg.size, len(img.data))
		}
		pa := physical(seg.virtAddr)
		src := img.data[seg.fileOffset : seg.fileOffset+seg.size]
		for i, b := range src {
			mem.Write8(pa+uint32(i), b)
		}
	}

	bssPA := physical(img.bssAddr)
	for i := uint32(0); i < img.bssSize; i++ {
		mem.Write8(bssPA+i, 0)
	}

	return physical(img.entry), nil
}
