package io

import (
	"bytes"
	"errors"
	"strings"
	"testing/iotest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type emptyReader struct {
	reads int
}

func (er *emptyReader) Read(p []byte) (int, error) {
	er.reads++
	return 0, nil
}

type failWriter struct{}

func (failWriter) Write(p []byte) (int, error) {
	return 0, errors.New("write failed")
}

var _ = Describe("Console", func() {
	var (
		con    *Console
		output *bytes.Buffer
	)

	BeforeEach(func() {
		output = &bytes.Buffer{}
		con = &Console{
			Input:  strings.NewReader("hi"),
			Output: output,
		}
	})

	It("should receive input bytes in order", func() {
		value, ok := con.Receive()
		Expect(ok).To(BeTrue())
		Expect(value).To(Equal(uint8('h')))

		value, ok = con.Receive()
		Expect(ok).To(BeTrue())
		Expect(value).To(Equal(uint8('i')))

		_, ok = con.Receive()
		Expect(ok).To(BeFalse())
		Expect(con.Received).To(Equal(2))
	})

	It("should read from byte at a time readers", func() {
		con.Input = iotest.OneByteReader(iotest.HalfReader(strings.NewReader("abc")))

		var got []byte
		for {
			value, ok := con.Receive()
			if !ok {
				break
			}
			got = append(got, value)
		}
		Expect(string(got)).To(Equal("abc"))
	})

	It("should stop at a read error", func() {
		con.Input = iotest.ErrReader(errors.New("broken"))

		_, ok := con.Receive()
		Expect(ok).To(BeFalse())
	})

	It("should give up on readers that return no data", func() {
		empty := &emptyReader{}
		con.Input = empty

		_, ok := con.Receive()
		Expect(ok).To(BeFalse())
		Expect(empty.reads).To(Equal(CONSOLE_EMPTY_READS))
		Expect(con.Received).To(BeZero())
	})

	It("should send bytes to the output", func() {
		Expect(con.Send('o')).To(Succeed())
		Expect(con.Send('k')).To(Succeed())
		Expect(output.String()).To(Equal("ok"))
		Expect(con.Sent).To(Equal(2))
	})

	It("should report write errors", func() {
		con.Output = failWriter{}
		Expect(con.Send('x')).NotTo(Succeed())
		Expect(con.Sent).To(BeZero())
	})

	Describe("without streams", func() {
		BeforeEach(func() {
			con = &Console{}
		})

		It("should be at end of input", func() {
			_, ok := con.Receive()
			Expect(ok).To(BeFalse())
		})

		It("should discard output", func() {
			Expect(con.Send(0x41)).To(Succeed())
		})
	})

	It("should ignore rewind", func() {
		_, _ = con.Receive()
		con.Rewind()
		value, ok := con.Receive()
		Expect(ok).To(BeTrue())
		Expect(value).To(Equal(uint8('i')))
	})
})
