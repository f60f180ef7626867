package cpu

import (
	"encoding/binary"
)

const (
	STACK_ENTRY = 2 // Bytes per stack entry.
)

// Stack is the call stack: a downward growing region at the top of
// memory, addressed by Pointer.
type Stack struct {
	Pointer uint32
	Memory  []byte
}

// Push writes value below the stack pointer.
// Returns false, and writes nothing, when the stack is full.
func (s *Stack) Push(value uint16) (ok bool) {
	if s.Full() {
		return
	}

	s.Pointer -= STACK_ENTRY
	binary.LittleEndian.PutUint16(s.Memory[s.Pointer:], value)

	return true
}

// Pop reads the top entry and releases it.
// Returns 0 and false when the stack is empty.
func (s *Stack) Pop() (value uint16, ok bool) {
	value, ok = s.Peek()
	if ok {
		s.Pointer += STACK_ENTRY
	}
	return
}

// Empty returns true if there is no complete entry above the stack pointer.
func (s *Stack) Empty() bool {
	return int(s.Pointer) > len(s.Memory)-STACK_ENTRY
}

// Full returns true if there is no room for another entry.
func (s *Stack) Full() bool {
	return s.Pointer < STACK_ENTRY
}

// Depth returns the number of entries on the stack.
func (s *Stack) Depth() int {
	if s.Empty() {
		return 0
	}
	return (len(s.Memory) - int(s.Pointer)) / STACK_ENTRY
}

func (s *Stack) Peek() (value uint16, ok bool) {
	if s.Empty() {
		return
	}

	return binary.LittleEndian.Uint16(s.Memory[s.Pointer:]), true
}

// Reset moves the stack pointer to the top of memory.
func (s *Stack) Reset() {
	s.Pointer = uint32(len(s.Memory))
}
