package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newStack(size int) *Stack {
	s := &Stack{Memory: make([]byte, size)}
	s.Reset()
	return s
}

func TestStack_Push(t *testing.T) {
	assert := assert.New(t)

	s := newStack(16)
	assert.True(s.Empty())
	assert.False(s.Full())

	assert.True(s.Push(0x1234))
	assert.False(s.Empty())
	assert.Equal(1, s.Depth())
	assert.Equal(uint32(14), s.Pointer)
	assert.Equal([]byte{0x34, 0x12}, s.Memory[14:16])
}

func TestStack_Pop(t *testing.T) {
	assert := assert.New(t)

	s := newStack(16)
	s.Push(0x1234)
	s.Push(0xABCD)

	val, ok := s.Pop()
	assert.True(ok)
	assert.Equal(uint16(0xABCD), val)
	assert.Equal(1, s.Depth())

	val, ok = s.Pop()
	assert.True(ok)
	assert.Equal(uint16(0x1234), val)
	assert.Equal(0, s.Depth())
	assert.Equal(uint32(16), s.Pointer)
}

func TestStack_Pop_Empty(t *testing.T) {
	assert := assert.New(t)

	s := newStack(16)
	val, ok := s.Pop()
	assert.False(ok)
	assert.Equal(uint16(0), val)
	assert.Equal(uint32(16), s.Pointer)
}

func TestStack_Peek(t *testing.T) {
	assert := assert.New(t)

	s := newStack(16)
	s.Push(0x1234)
	s.Push(0xABCD)

	val, ok := s.Peek()
	assert.True(ok)
	assert.Equal(uint16(0xABCD), val)
	assert.Equal(2, s.Depth())
}

func TestStack_Full(t *testing.T) {
	assert := assert.New(t)

	s := newStack(8)
	for i := range 4 {
		assert.False(s.Full())
		assert.True(s.Push(uint16(i)))
	}

	assert.True(s.Full())
	assert.Equal(uint32(0), s.Pointer)

	// No write when full.
	before := append([]byte(nil), s.Memory...)
	assert.False(s.Push(0xffff))
	assert.Equal(before, s.Memory)
	assert.Equal(uint32(0), s.Pointer)
}

func TestStack_OddMemory(t *testing.T) {
	assert := assert.New(t)

	s := newStack(5)
	assert.True(s.Push(1))
	assert.True(s.Push(2))
	assert.True(s.Full())
	assert.Equal(uint32(1), s.Pointer)
	assert.Equal(2, s.Depth())
}

func TestStack_Reset(t *testing.T) {
	assert := assert.New(t)

	s := newStack(16)
	s.Push(0x1234)
	s.Push(0xABCD)
	assert.Equal(2, s.Depth())

	s.Reset()
	assert.True(s.Empty())
	assert.Equal(0, s.Depth())
}
