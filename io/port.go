// Package io provides the devices that can be attached to the minivm
// memory-mapped console port. Ports move single bytes: Receive feeds the
// IN instruction, Send consumes the OUT instruction.
package io

// Port defines the interface for all devices on the console port.
type Port interface {
	// Rewind resets the port to its initial state.
	Rewind()
	// Receive returns the next input byte, or false at end of input.
	Receive() (value uint8, ok bool)
	// Send writes a single byte to the port.
	Send(value uint8) error
}
