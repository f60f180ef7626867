// Package cpu implements the microprocessor and assembler for the minivm
// system.
//
// The CPU consists of a program counter, eight general-purpose registers
// (r0-r7) holding 16-bit values, a call stack at the top of a flat 64KiB
// memory, and a single memory-mapped console port at 0xFF00. Instructions
// are one opcode byte, an optional register byte, and an optional
// little-endian 16-bit operand.
//
// The assembler translates one instruction per line into that encoding,
// supporting equates and compile-time expression evaluation. Every
// address is an absolute literal.
package cpu
