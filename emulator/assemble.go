package emulator

import (
	"io"

	"github.com/ezrec/minivm/cpu"
)

// Assemble parses source text into the emulator's Program, with the
// emulator defines available as equates.
func (emu *Emulator) Assemble(input io.Reader) (err error) {
	asm := &cpu.Assembler{Verbose: emu.Verbose, Capacity: len(emu.Cpu.Memory)}
	for key, value := range emu.Defines() {
		asm.Predefine(key, value)
	}

	prog, err := asm.Parse(input)
	if err != nil {
		return
	}

	emu.Program = prog
	emu.Image = nil

	return
}
