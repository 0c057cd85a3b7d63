package lsmcore_test

import (
	"errors"
	"math/rand"

	"github.com/bsm/lsmcore"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Block", func() {
	It("should encode empty", func() {
		block, err := lsmcore.NewBlock(nil, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(block.Encode()).To(Equal([]byte{0x00, 0x00}))
		Expect(block.Size()).To(Equal(2))
	})

	It("should decode empty", func() {
		block, err := lsmcore.DecodeBlock([]byte{0x00, 0x00})
		Expect(err).NotTo(HaveOccurred())
		Expect(block.Data()).To(BeEmpty())
		Expect(block.Offsets()).To(BeEmpty())
		Expect(block.NumEntries()).To(Equal(0))
	})

	It("should encode", func() {
		block, err := lsmcore.NewBlock([]byte("abcdefgh"), []uint16{0, 3, 5})
		Expect(err).NotTo(HaveOccurred())
		Expect(block.Encode()).To(Equal([]byte{
			'a', 'b', 'c', 'd', 'e', 'f', 'g', 'h',
			0x00, 0x00, 0x00, 0x03, 0x00, 0x05,
			0x00, 0x03,
		}))
		Expect(block.Size()).To(Equal(16))
	})

	It("should validate", func() {
		for _, offsets := range [][]uint16{
			{0, 5, 3},
			{0, 8},
			{8},
		} {
			block, err := lsmcore.NewBlock([]byte("abcdefgh"), offsets)
			Expect(errors.Is(err, lsmcore.ErrMalformedBlock)).To(BeTrue(), "for %v", offsets)
			Expect(block).To(BeNil())
		}

		_, err := lsmcore.NewBlock(make([]byte, 70000), make([]uint16, 65536))
		Expect(errors.Is(err, lsmcore.ErrMalformedBlock)).To(BeTrue())
	})

	It("should copy inputs", func() {
		data, offsets := []byte("ab"), []uint16{0, 1}
		block, err := lsmcore.NewBlock(data, offsets)
		Expect(err).NotTo(HaveOccurred())

		data[0], offsets[1] = 'x', 0
		Expect(block.Data()).To(Equal([]byte("ab")))
		Expect(block.Offsets()).To(Equal([]uint16{0, 1}))
	})

	It("should append encoded", func() {
		block, err := lsmcore.NewBlock([]byte("xy"), []uint16{0})
		Expect(err).NotTo(HaveOccurred())
		Expect(block.AppendEncoded([]byte("pre"))).To(Equal([]byte{'p', 'r', 'e', 'x', 'y', 0x00, 0x00, 0x00, 0x01}))
	})

	It("should decode", func() {
		block, err := lsmcore.DecodeBlock([]byte{
			'a', 'b', 'c', 'd', 'e',
			0x00, 0x00, 0x00, 0x02,
			0x00, 0x02,
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(block.Data()).To(Equal([]byte("abcde")))
		Expect(block.Offsets()).To(Equal([]uint16{0, 2}))
	})

	It("should use the entry count rather than the buffer length", func() {
		// odd-length data section
		block, err := lsmcore.DecodeBlock([]byte{
			'a', 'b', 'c',
			0x00, 0x00, 0x00, 0x01,
			0x00, 0x02,
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(block.Data()).To(Equal([]byte("abc")))
		Expect(block.Offsets()).To(Equal([]uint16{0, 1}))
	})

	It("should not alias the input", func() {
		src := []byte{'a', 'b', 0x00, 0x00, 0x00, 0x01}
		block, err := lsmcore.DecodeBlock(src)
		Expect(err).NotTo(HaveOccurred())

		for i := range src {
			src[i] = 0xff
		}
		Expect(block.Data()).To(Equal([]byte("ab")))
		Expect(block.Offsets()).To(Equal([]uint16{0}))
	})

	It("should reject malformed input", func() {
		for _, p := range [][]byte{
			nil,
			{},
			{0x00},
			// one entry, no offsets
			{0x00, 0x01},
			// two entries, one byte
			{'a', 0x00, 0x02},
			// offset beyond data
			{'a', 'b', 0x00, 0x05, 0x00, 0x01},
			// offset into empty data
			{0x00, 0x00, 0x00, 0x01},
			// trailing zero-length entry
			{'a', 0x00, 0x00, 0x00, 0x01, 0x00, 0x02},
			// decreasing offsets
			{'a', 'b', 'c', 0x00, 0x02, 0x00, 0x01, 0x00, 0x02},
		} {
			_, err := lsmcore.DecodeBlock(p)
			Expect(errors.Is(err, lsmcore.ErrMalformedBlock)).To(BeTrue(), "for %v", p)
		}
	})

	It("should round-trip", func() {
		rnd := rand.New(rand.NewSource(1))
		for _, n := range []int{0, 1, 2, 17, 1000, 65535} {
			data := make([]byte, n)
			_, err := rnd.Read(data)
			Expect(err).NotTo(HaveOccurred())

			offsets := make([]uint16, n)
			for i := range offsets {
				offsets[i] = uint16(i)
			}

			block, err := lsmcore.NewBlock(data, offsets)
			Expect(err).NotTo(HaveOccurred())

			encoded := block.Encode()
			Expect(encoded).To(HaveLen(n + 2*n + 2))

			decoded, err := lsmcore.DecodeBlock(encoded)
			Expect(err).NotTo(HaveOccurred())
			Expect(decoded.Data()).To(Equal(block.Data()))
			Expect(decoded.Offsets()).To(Equal(block.Offsets()))
		}
	})

	It("should round-trip built blocks", func() {
		builder := lsmcore.NewBlockBuilder(nil)
		for i := 0; i < 100; i++ {
			err := builder.Add([]byte(keyOf(i)), []byte("v"))
			if err == lsmcore.ErrBlockFull {
				break
			}
			Expect(err).NotTo(HaveOccurred())
		}
		block := builder.Build()

		decoded, err := lsmcore.DecodeBlock(block.Encode())
		Expect(err).NotTo(HaveOccurred())
		Expect(decoded.Data()).To(Equal(block.Data()))
		Expect(decoded.Offsets()).To(Equal(block.Offsets()))
	})
})
