/*
 * nouwii - Emulator entry point.
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

package main

import (
	"log/slog"
	"os"

	getopt "github.com/pborman/getopt/v2"

	"github.com/noumidev/nouwii/internal/logger"
	"github.com/noumidev/nouwii/internal/memory"
	"github.com/noumidev/nouwii/internal/system"
)

func main() {
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optFilesystem := getopt.StringLong("filesystem", 'f', "filesystem", "Host filesystem root for HLE file opens")
	optMem1KiB := getopt.IntLong("mem1", 0, memory.Mem1Size/1024, "MEM1 size override, in KiB")
	optMem2KiB := getopt.IntLong("mem2", 0, memory.Mem2Size/1024, "MEM2 size override, in KiB")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	args := getopt.Args()
	if len(args) != 1 {
		getopt.Usage()
		os.Exit(1)
	}
	imagePath := args[0]

	// mem1/mem2 size overrides are accepted for CLI symmetry but ignored:
	// a value other than the fixed bank size only logs a warning, since the
	// unified memory subsystem's RAM banks are sized at construction (§3),
	// not reconfigured per run.
	if *optMem1KiB != memory.Mem1Size/1024 || *optMem2KiB != memory.Mem2Size/1024 {
		slog.Warn("mem1/mem2 size overrides are not supported; using fixed bank sizes")
	}

	var logFile *os.File
	if *optLogFile != "" {
		f, err := os.Create(*optLogFile)
		if err != nil {
			slog.Error("could not create log file", "path", *optLogFile, "err", err)
			os.Exit(1)
		}
		logFile = f
	}
	log := logger.New(logFile, slog.LevelDebug, false)

	data, err := os.ReadFile(imagePath)
	if err != nil {
		log.Error("could not read executable image", "path", imagePath, "err", err)
		os.Exit(1)
	}

	sys := system.New(log, *optFilesystem)
	sys.Init()

	if err := sys.LoadImage(data); err != nil {
		log.Error("could not load executable image", "err", err)
		os.Exit(1)
	}

	log.Info("nouwii started", "image", imagePath)

	if err := sys.Run(); err != nil {
		log.Error("fatal error", "err", err)
		os.Exit(1)
	}
}
