// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"fmt"
	"iter"
	"maps"

	"github.com/ezrec/minivm/cpu"
	"github.com/ezrec/minivm/internal"
	"github.com/ezrec/minivm/io"
	"github.com/ezrec/minivm/translate"
)

var _emulator_defines = map[string]string{
	"STACK_ENTRY": fmt.Sprintf("%v", cpu.STACK_ENTRY),
}

// Emulator state. CPU + program listing + console.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Listing of the running program, may be empty.
	Image    []byte       // Raw image, used when Program is empty.
	Loaded   int          // Bytes loaded by the last Reset.

	Console  io.Console // Console on PORT_CONSOLE.
	MaxTicks int        // Run tick limit, unlimited if zero.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(cpu.MEMORY_SIZE),
		Program: &cpu.Program{},
	}

	emu.Cpu.Port = &emu.Console

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.Concat2(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
	)
}

// Reset the cpu, and load the program (or image) into memory.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = false

	image := emu.Image
	if emu.Program != nil && len(emu.Program.Lines) != 0 {
		image = emu.Program.Binary()
	}

	emu.Cpu.Reset()
	emu.Loaded = 0
	err = emu.Cpu.Load(image)
	if err != nil {
		return
	}
	emu.Loaded = len(image)

	if emu.Verbose {
		translate.Logf("emulator: reset, %d byte image", len(image))
	}

	emu.Cpu.Verbose = emu.Verbose

	return
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// Code returns the instruction at the program counter.
func (emu *Emulator) Code() (code cpu.Instruction, err error) {
	return cpu.Decode(emu.Cpu.Memory, emu.Cpu.Pc)
}

// LineNo returns the source line number of the instruction at the program
// counter, or 0 if there is no source for it.
func (emu *Emulator) LineNo() int {
	if emu.Program == nil {
		return 0
	}

	dbg := emu.Program.Debug(emu.Cpu.Pc)
	if dbg.Line == nil {
		return 0
	}

	return dbg.LineNo
}

// Tick performs a single tick of the emulator.
// done is set once the cpu has halted, cleanly or by a fault.
func (emu *Emulator) Tick() (done bool, err error) {
	if emu.Cpu.Halted {
		done = true
		return
	}

	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	lineno := emu.LineNo()
	addr := emu.Cpu.Pc
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Address: addr, Err: err}
		}
	}()

	err = emu.Cpu.Tick()
	done = emu.Cpu.Halted

	return
}

// Run ticks the emulator until it halts, or MaxTicks is reached.
func (emu *Emulator) Run() (err error) {
	for {
		if emu.MaxTicks > 0 && emu.Cpu.Ticks >= emu.MaxTicks {
			err = &ErrRuntime{LineNo: emu.LineNo(), Address: emu.Cpu.Pc, Err: ErrTickLimit}
			return
		}

		var done bool
		done, err = emu.Tick()
		if done || err != nil {
			return
		}
	}
}
