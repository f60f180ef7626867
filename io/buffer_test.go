package io

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Buffer", func() {
	var buf *Buffer

	BeforeEach(func() {
		buf = &Buffer{Input: []byte{0x10, 0x20}}
		buf.Rewind()
	})

	It("should default the capacity on rewind", func() {
		Expect(buf.Capacity).To(Equal(BUFFER_DEFAULT_CAPACITY))
	})

	It("should receive input until exhausted", func() {
		value, ok := buf.Receive()
		Expect(ok).To(BeTrue())
		Expect(value).To(Equal(uint8(0x10)))

		value, ok = buf.Receive()
		Expect(ok).To(BeTrue())
		Expect(value).To(Equal(uint8(0x20)))

		value, ok = buf.Receive()
		Expect(ok).To(BeFalse())
		Expect(value).To(BeZero())
	})

	It("should collect output", func() {
		Expect(buf.Send(1)).To(Succeed())
		Expect(buf.Send(2)).To(Succeed())
		Expect(buf.Output).To(Equal([]byte{1, 2}))
	})

	It("should refuse output past capacity", func() {
		buf.Capacity = 1
		Expect(buf.Send(1)).To(Succeed())
		Expect(buf.Send(2)).To(MatchError(ErrPortFull))
		Expect(buf.Output).To(HaveLen(1))
	})

	It("should replay input and clear output on rewind", func() {
		_, _ = buf.Receive()
		Expect(buf.Send(7)).To(Succeed())

		buf.Rewind()

		Expect(buf.ReadIndex).To(BeZero())
		Expect(buf.Output).To(BeEmpty())
		value, ok := buf.Receive()
		Expect(ok).To(BeTrue())
		Expect(value).To(Equal(uint8(0x10)))
	})

	It("should send with a zero value buffer", func() {
		empty := &Buffer{}
		Expect(empty.Send(3)).To(Succeed())
		_, ok := empty.Receive()
		Expect(ok).To(BeFalse())
	})
})
