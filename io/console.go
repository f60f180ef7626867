package io

import (
	"io"
)

const (
	CONSOLE_EMPTY_READS = 100 // Empty reads tolerated before giving up.
)

// Console connects the port to a byte stream pair, such as a terminal.
// A nil Input is always at end of input, and a nil Output discards.
type Console struct {
	Input  io.Reader
	Output io.Writer

	Received int // Bytes read from Input.
	Sent     int // Bytes written to Output.
}

var _ Port = (*Console)(nil)

// Rewind is not possible on a console.
func (con *Console) Rewind() {
}

// Receive reads one byte from Input.
func (con *Console) Receive() (value uint8, ok bool) {
	if con.Input == nil {
		return
	}

	var one [1]byte
	for range CONSOLE_EMPTY_READS {
		n, err := con.Input.Read(one[:])
		if n == 1 {
			con.Received++
			return one[0], true
		}
		if err != nil {
			return
		}
	}

	// A reader that never makes progress is at end of input.
	return
}

// Send writes one byte to Output.
func (con *Console) Send(value uint8) (err error) {
	if con.Output == nil {
		return
	}

	_, err = con.Output.Write([]byte{value})
	if err != nil {
		return
	}
	con.Sent++

	return
}
