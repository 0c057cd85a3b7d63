package lsmcore

import (
	"encoding/binary"
	"fmt"
)

// Block is a sorted run of opaquely encoded entries plus an offset index
// pointing at the start of each entry. Blocks are immutable.
type Block struct {
	data    []byte
	offsets []uint16
}

// NewBlock creates a block from raw entry data and entry offsets. Both
// slices are copied. It returns an error if offsets are not
// non-decreasing, point beyond the data, or exceed the entry limit.
func NewBlock(data []byte, offsets []uint16) (*Block, error) {
	if err := validateBlock(data, offsets); err != nil {
		return nil, err
	}
	return &Block{
		data:    append([]byte{}, data...),
		offsets: append([]uint16{}, offsets...),
	}, nil
}

// DecodeBlock decodes a block from p. The returned block does not
// retain p, which may be reused as soon as DecodeBlock returns.
//
// Besides the footer and offset index lengths, DecodeBlock validates the
// offsets: they must be non-decreasing and each must point inside the
// data section, so a trailing zero-length entry is rejected. Violations
// are reported as ErrMalformedBlock.
func DecodeBlock(p []byte) (*Block, error) {
	if len(p) < 2 {
		return nil, fmt.Errorf("%w: %d bytes is shorter than the footer", ErrMalformedBlock, len(p))
	}

	numEntries := int(binary.BigEndian.Uint16(p[len(p)-2:]))
	offsetsLen := numEntries * 2
	if len(p) < 2+offsetsLen {
		return nil, fmt.Errorf("%w: %d entries do not fit into %d bytes", ErrMalformedBlock, numEntries, len(p))
	}
	dataLen := len(p) - offsetsLen - 2

	offsets := make([]uint16, numEntries)
	for i, pos := 0, dataLen; i < numEntries; i, pos = i+1, pos+2 {
		offsets[i] = binary.BigEndian.Uint16(p[pos:])
	}

	data := p[:dataLen]
	if err := validateBlock(data, offsets); err != nil {
		return nil, err
	}

	return &Block{
		data:    append(make([]byte, 0, dataLen), data...),
		offsets: offsets,
	}, nil
}

// Data returns the entry data section. It must not be modified.
func (b *Block) Data() []byte { return b.data }

// Offsets returns the entry offsets. They must not be modified.
func (b *Block) Offsets() []uint16 { return b.offsets }

// NumEntries returns the number of entries in the block.
func (b *Block) NumEntries() int { return len(b.offsets) }

// Size returns the encoded size in bytes.
func (b *Block) Size() int { return len(b.data) + 2*len(b.offsets) + 2 }

// Encode encodes the block.
func (b *Block) Encode() []byte {
	return b.AppendEncoded(make([]byte, 0, b.Size()))
}

// AppendEncoded appends the encoded block to dst and returns the
// extended buffer.
func (b *Block) AppendEncoded(dst []byte) []byte {
	dst = append(dst, b.data...)

	var tmp [2]byte
	for _, off := range b.offsets {
		binary.BigEndian.PutUint16(tmp[:], off)
		dst = append(dst, tmp[:]...)
	}
	binary.BigEndian.PutUint16(tmp[:], uint16(len(b.offsets)))
	return append(dst, tmp[:]...)
}

// entryEnd returns the end position of the n-th entry within data.
func (b *Block) entryEnd(n int) int {
	if next := n + 1; next < len(b.offsets) {
		return int(b.offsets[next])
	}
	return len(b.data)
}

func validateBlock(data []byte, offsets []uint16) error {
	if len(offsets) > maxUint16 {
		return fmt.Errorf("%w: %d entries exceed the limit", ErrMalformedBlock, len(offsets))
	}

	var prev uint16
	for i, off := range offsets {
		if int(off) >= len(data) {
			return fmt.Errorf("%w: offset %d of entry %d is beyond data length %d", ErrMalformedBlock, off, i, len(data))
		}
		if off < prev {
			return fmt.Errorf("%w: offset %d of entry %d is before offset %d", ErrMalformedBlock, off, i, prev)
		}
		prev = off
	}
	return nil
}
