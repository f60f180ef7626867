package cpu

import (
	"encoding/binary"
)

// Decode decodes the instruction at addr in mem.
//
// An unknown opcode is a FAULT_OPCODE, and operand bytes past the end of
// mem are a FAULT_PC at the first missing byte. In both cases ins holds
// the opcode that was read.
func Decode(mem []byte, addr uint32) (ins Instruction, err error) {
	if uint64(addr) >= uint64(len(mem)) {
		err = &ErrFault{Kind: FAULT_PC, Ip: addr, Address: addr}
		return
	}

	ins.Opcode = Opcode(mem[addr])
	if !ins.Opcode.Valid() {
		err = &ErrFault{Kind: FAULT_OPCODE, Opcode: ins.Opcode, Ip: addr, Address: addr}
		return
	}

	arg := ins.Opcode.Arg()
	end := uint64(addr) + 1 + uint64(arg.Size())
	if end > uint64(len(mem)) {
		err = &ErrFault{Kind: FAULT_PC, Opcode: ins.Opcode, Ip: addr, Address: uint32(len(mem))}
		return
	}

	pos := addr + 1
	if arg.HasRegister() {
		ins.Register = mem[pos]
		pos++
	}
	if arg.HasWord() {
		ins.Operand = binary.LittleEndian.Uint16(mem[pos:])
	}

	return
}

// Disassemble decodes up to count instructions starting at addr,
// stopping at the first undecodable byte.
func Disassemble(mem []byte, addr uint32, count int) (lines []Disassembly, err error) {
	for range count {
		var ins Instruction
		ins, err = Decode(mem, addr)
		if err != nil {
			return
		}
		lines = append(lines, Disassembly{Address: addr, Instruction: ins})
		addr += uint32(ins.Size())
	}

	return
}

// Disassembly is an instruction and the address it was decoded from.
type Disassembly struct {
	Address uint32
	Instruction
}

func (dis Disassembly) String() string {
	return f("%04X: %v", dis.Address, dis.Instruction.String())
}
