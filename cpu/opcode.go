package cpu

import (
	"encoding/binary"
	"fmt"
)

// Opcode is the one byte instruction tag.
type Opcode uint8

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_NOP   = Opcode(0x00) // NOP
	OP_LOAD  = Opcode(0x01) // LOAD
	OP_ADD   = Opcode(0x02) // ADD
	OP_STORE = Opcode(0x03) // STORE
	OP_JMP   = Opcode(0x04) // JMP
	OP_JZ    = Opcode(0x05) // JZ
	OP_AND   = Opcode(0x06) // AND
	OP_OR    = Opcode(0x07) // OR
	OP_XOR   = Opcode(0x08) // XOR
	OP_NOT   = Opcode(0x09) // NOT
	OP_CALL  = Opcode(0x0a) // CALL
	OP_RET   = Opcode(0x0b) // RET
	OP_IN    = Opcode(0x0c) // IN
	OP_OUT   = Opcode(0x0d) // OUT
	OP_HALT  = Opcode(0xff) // HALT
)

// CodeArg describes the operand bytes that follow an opcode.
type CodeArg int

const (
	ARG_NONE     = CodeArg(0) // No operands.
	ARG_REG      = CodeArg(1) // Register byte.
	ARG_WORD     = CodeArg(2) // Little-endian immediate or address word.
	ARG_REG_WORD = CodeArg(3) // Register byte, then word.
)

// argMap is the operand layout of every defined opcode.
var argMap = map[Opcode]CodeArg{
	OP_NOP:   ARG_NONE,
	OP_LOAD:  ARG_REG_WORD,
	OP_ADD:   ARG_REG_WORD,
	OP_STORE: ARG_REG_WORD,
	OP_JMP:   ARG_WORD,
	OP_JZ:    ARG_REG_WORD,
	OP_AND:   ARG_REG_WORD,
	OP_OR:    ARG_REG_WORD,
	OP_XOR:   ARG_REG_WORD,
	OP_NOT:   ARG_REG,
	OP_CALL:  ARG_WORD,
	OP_RET:   ARG_NONE,
	OP_IN:    ARG_REG_WORD,
	OP_OUT:   ARG_REG_WORD,
	OP_HALT:  ARG_NONE,
}

// Valid returns true if the opcode is part of the instruction set.
func (op Opcode) Valid() (ok bool) {
	_, ok = argMap[op]
	return
}

// Arg returns the operand layout of the opcode.
// Unknown opcodes have no operands.
func (op Opcode) Arg() CodeArg {
	return argMap[op]
}

// HasRegister returns true if a register byte follows the opcode.
func (arg CodeArg) HasRegister() bool {
	return arg == ARG_REG || arg == ARG_REG_WORD
}

// HasWord returns true if a 16-bit word follows the opcode.
func (arg CodeArg) HasWord() bool {
	return arg == ARG_WORD || arg == ARG_REG_WORD
}

// Count returns the number of assembler operands.
func (arg CodeArg) Count() (count int) {
	if arg.HasRegister() {
		count++
	}
	if arg.HasWord() {
		count++
	}
	return
}

// Size returns the number of encoded bytes following the opcode.
func (arg CodeArg) Size() (size int) {
	if arg.HasRegister() {
		size += 1
	}
	if arg.HasWord() {
		size += 2
	}
	return
}

// Instruction is a single decoded instruction.
type Instruction struct {
	Opcode   Opcode
	Register uint8  // Raw register index, may be out of range.
	Operand  uint16 // Immediate, address or port.
}

// Size returns the encoded size in bytes.
func (ins Instruction) Size() int {
	return 1 + ins.Opcode.Arg().Size()
}

// Append appends the binary encoding of the instruction to buf.
func (ins Instruction) Append(buf []byte) []byte {
	arg := ins.Opcode.Arg()

	buf = append(buf, uint8(ins.Opcode))
	if arg.HasRegister() {
		buf = append(buf, ins.Register)
	}
	if arg.HasWord() {
		buf = binary.LittleEndian.AppendUint16(buf, ins.Operand)
	}

	return buf
}

// String returns the assembly language representation of the instruction.
func (ins Instruction) String() (out string) {
	arg := ins.Opcode.Arg()

	out = ins.Opcode.String()
	switch arg {
	case ARG_REG:
		out += fmt.Sprintf(" R%d", ins.Register)
	case ARG_WORD:
		out += fmt.Sprintf(" 0x%04X", ins.Operand)
	case ARG_REG_WORD:
		out += fmt.Sprintf(" R%d, 0x%04X", ins.Register, ins.Operand)
	}

	return
}
