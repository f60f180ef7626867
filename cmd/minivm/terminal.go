package main

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/tebeka/atexit"
	"golang.org/x/term"
)

const (
	keyInterrupt = 0x03 // ^C
	keyEndOfFile = 0x04 // ^D
)

// rawTerminal holds a terminal in raw mode, so that the console port sees
// every key press as it is typed.
type rawTerminal struct {
	fd    int
	state *term.State
}

// openRawTerminal switches file to raw mode, if it is a terminal.
// Returns nil if file is not a terminal. The terminal is restored at exit.
func openRawTerminal(file *os.File) (rt *rawTerminal, err error) {
	fd := int(file.Fd())
	if !term.IsTerminal(fd) {
		return
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		err = errors.Wrap(err, "raw terminal")
		return
	}

	rt = &rawTerminal{fd: fd, state: state}
	atexit.Register(rt.Restore)

	return
}

// Restore returns the terminal to its original mode.
func (rt *rawTerminal) Restore() {
	if rt.state != nil {
		_ = term.Restore(rt.fd, rt.state)
		rt.state = nil
	}
}

// keyReader maps raw terminal keys to console input. Enter sends CR, which
// becomes a newline; ^C and ^D end the input.
type keyReader struct {
	io.Reader
	closed bool
}

func (kr *keyReader) Read(buf []byte) (n int, err error) {
	if kr.closed {
		err = io.EOF
		return
	}

	n, err = kr.Reader.Read(buf)
	for i, key := range buf[:n] {
		switch key {
		case '\r':
			buf[i] = '\n'
		case keyInterrupt, keyEndOfFile:
			kr.closed = true
			n = i
			if n == 0 {
				err = io.EOF
			}
			return
		}
	}

	return
}

// crlfWriter expands newlines for a raw terminal.
type crlfWriter struct {
	io.Writer
}

func (cw crlfWriter) Write(buf []byte) (n int, err error) {
	_, err = cw.Writer.Write(bytes.ReplaceAll(buf, []byte("\n"), []byte("\r\n")))
	if err != nil {
		return
	}

	n = len(buf)
	return
}
