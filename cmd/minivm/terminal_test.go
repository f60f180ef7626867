package main

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
)

func TestKeyReader(t *testing.T) {
	assert := assert.New(t)

	kr := &keyReader{Reader: strings.NewReader("ab\rc\x04ignored")}
	data, err := io.ReadAll(kr)
	assert.NoError(err)
	assert.Equal("ab\nc", string(data))

	// Stays closed.
	n, err := kr.Read(make([]byte, 4))
	assert.Equal(0, n)
	assert.Equal(io.EOF, err)

	kr = &keyReader{Reader: iotest.OneByteReader(strings.NewReader("x\x03y"))}
	data, err = io.ReadAll(kr)
	assert.NoError(err)
	assert.Equal("x", string(data))
}

func TestCrlfWriter(t *testing.T) {
	assert := assert.New(t)

	buf := &bytes.Buffer{}
	cw := crlfWriter{Writer: buf}

	n, err := cw.Write([]byte("one\ntwo\n"))
	assert.NoError(err)
	assert.Equal(8, n)
	assert.Equal("one\r\ntwo\r\n", buf.String())
}
