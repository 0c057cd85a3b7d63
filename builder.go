package lsmcore

import (
	"encoding/binary"
	"fmt"
)

// BuilderOptions define builder specific options.
type BuilderOptions struct {
	// BlockSize is the target encoded size in bytes of each block.
	// A block always accepts its first entry, even if it exceeds the target.
	// Default: 4KiB.
	BlockSize int

	// Comparer defines the key order.
	// Default: DefaultComparer.
	Comparer Comparer
}

func (o *BuilderOptions) norm() *BuilderOptions {
	var oo BuilderOptions
	if o != nil {
		oo = *o
	}

	if oo.BlockSize < 1 {
		oo.BlockSize = 1 << 12
	}
	if oo.Comparer == nil {
		oo.Comparer = DefaultComparer
	}

	return &oo
}

// BlockBuilder instances can build a block from entries appended in
// ascending key order.
//
// Entry layout:
//     +----------------------+-----------+------------------------+-------------+
//     | key length (2 bytes) | key bytes | value length (2 bytes) | value bytes |
//     +----------------------+-----------+------------------------+-------------+
type BlockBuilder struct {
	o *BuilderOptions

	data    []byte
	offsets []uint16
	lastKey []byte
}

// NewBlockBuilder returns a BlockBuilder.
func NewBlockBuilder(o *BuilderOptions) *BlockBuilder {
	return &BlockBuilder{o: o.norm()}
}

// Add appends an entry to the block. It returns ErrBlockFull if the entry
// does not fit, in which case the caller should Build the block and add
// the entry to a fresh one.
func (b *BlockBuilder) Add(key, value []byte) error {
	if len(key) == 0 {
		return errEmptyKey
	}
	if len(key) > maxUint16 {
		return errKeyTooLarge
	}
	if len(value) > maxUint16 {
		return errValueTooLarge
	}

	if len(b.offsets) != 0 && b.o.Comparer.Compare(key, b.lastKey) <= 0 {
		return fmt.Errorf("lsmcore: attempted an out-of-order add, %q must be > %q", key, b.lastKey)
	}

	esz := 2 + len(key) + 2 + len(value)
	if len(b.offsets) != 0 {
		if b.EstimatedSize()+esz+2 > b.o.BlockSize {
			return ErrBlockFull
		}
		if len(b.data) > maxUint16 || len(b.offsets) == maxUint16 {
			return ErrBlockFull
		}
	}

	var tmp [2]byte
	b.offsets = append(b.offsets, uint16(len(b.data)))

	binary.BigEndian.PutUint16(tmp[:], uint16(len(key)))
	b.data = append(b.data, tmp[:]...)
	b.data = append(b.data, key...)

	binary.BigEndian.PutUint16(tmp[:], uint16(len(value)))
	b.data = append(b.data, tmp[:]...)
	b.data = append(b.data, value...)

	b.lastKey = append(b.lastKey[:0], key...)
	return nil
}

// Len returns the number of entries added.
func (b *BlockBuilder) Len() int { return len(b.offsets) }

// Empty returns true if no entries were added.
func (b *BlockBuilder) Empty() bool { return len(b.offsets) == 0 }

// EstimatedSize returns the encoded size of the block built so far.
func (b *BlockBuilder) EstimatedSize() int {
	return len(b.data) + 2*len(b.offsets) + 2
}

// Build returns the block and resets the builder.
func (b *BlockBuilder) Build() *Block {
	block := &Block{
		data:    b.data,
		offsets: b.offsets,
	}
	if block.data == nil {
		block.data = []byte{}
	}
	if block.offsets == nil {
		block.offsets = []uint16{}
	}

	b.data = nil
	b.offsets = nil
	b.lastKey = b.lastKey[:0]
	return block
}
