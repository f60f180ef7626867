package cpu

import (
	"iter"
)

// Line is a single assembled source line.
type Line struct {
	LineNo  int
	Address int
	Text    string
	Code    Instruction
}

// Program is an assembled listing.
type Program struct {
	Lines []Line
}

// Debug locates the source line of an address.
type Debug struct {
	*Line
	Index int // Byte offset of the address within the instruction.
}

// Debug returns the source line that encodes addr. The embedded Line is
// nil if no instruction covers addr.
func (prog *Program) Debug(addr uint32) (dbg Debug) {
	for n, line := range prog.Lines {
		start := uint32(line.Address)
		if addr >= start && addr < start+uint32(line.Code.Size()) {
			dbg = Debug{
				Line:  &prog.Lines[n],
				Index: int(addr - start),
			}
			break
		}
	}

	return
}

// Size returns the image size in bytes.
func (prog *Program) Size() (size int) {
	if len(prog.Lines) == 0 {
		return
	}

	last := prog.Lines[len(prog.Lines)-1]
	return last.Address + last.Code.Size()
}

// Binary returns the memory image of the program, loaded at address 0.
func (prog *Program) Binary() (image []byte) {
	image = make([]byte, 0, prog.Size())
	for _, code := range prog.Codes() {
		image = code.Append(image)
	}

	return
}

// Codes iterates over the instructions and their addresses.
func (prog *Program) Codes() iter.Seq2[uint32, Instruction] {
	return func(yield func(addr uint32, code Instruction) bool) {
		for _, line := range prog.Lines {
			if !yield(uint32(line.Address), line.Code) {
				return
			}
		}
	}
}
