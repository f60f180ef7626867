package io

const (
	// BUFFER_DEFAULT_CAPACITY is the output capacity of a zero Buffer.
	BUFFER_DEFAULT_CAPACITY = 4096
)

// Buffer is an in-memory port. Input is replayed from the start on every
// Rewind, and Output collects sent bytes up to Capacity.
type Buffer struct {
	Capacity int // Output capacity in bytes.

	Input     []byte
	ReadIndex int
	Output    []byte
}

var _ Port = (*Buffer)(nil)

// Rewind restarts the input and empties the output.
func (buf *Buffer) Rewind() {
	if buf.Capacity == 0 {
		buf.Capacity = BUFFER_DEFAULT_CAPACITY
	}
	buf.ReadIndex = 0
	buf.Output = buf.Output[:0]
}

// Receive returns the next unread input byte.
func (buf *Buffer) Receive() (value uint8, ok bool) {
	if buf.ReadIndex >= len(buf.Input) {
		return
	}

	value = buf.Input[buf.ReadIndex]
	buf.ReadIndex++

	return value, true
}

// Send appends a byte to the output.
// Returns ErrPortFull if the output has reached capacity.
func (buf *Buffer) Send(value uint8) (err error) {
	capacity := buf.Capacity
	if capacity == 0 {
		capacity = BUFFER_DEFAULT_CAPACITY
	}
	if len(buf.Output) >= capacity {
		err = ErrPortFull
		return
	}

	buf.Output = append(buf.Output, value)

	return
}
