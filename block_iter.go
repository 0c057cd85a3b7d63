package lsmcore

import (
	"encoding/binary"
	"fmt"
	"sort"
)

// BlockIterator iterates over the entries of a single block.
type BlockIterator struct {
	b   *Block
	cmp Comparer

	pos int // the current entry position
	key []byte
	val []byte

	err error
}

// NewBlockIterator returns an iterator positioned at the first entry of
// the block. A nil block is treated as empty and a nil comparer defaults
// to DefaultComparer.
func NewBlockIterator(b *Block, cmp Comparer) *BlockIterator {
	if b == nil {
		b = &Block{}
	}
	if cmp == nil {
		cmp = DefaultComparer
	}
	it := &BlockIterator{b: b, cmp: cmp}
	it.SeekToFirst()
	return it
}

// SeekToFirst positions the iterator at the first entry.
func (i *BlockIterator) SeekToFirst() {
	i.err = nil
	i.seekTo(0)
}

// Seek positions the iterator at the first entry with a key >= key and
// returns true if such an entry exists.
func (i *BlockIterator) Seek(key []byte) bool {
	i.err = nil

	pos := sort.Search(i.b.NumEntries(), func(n int) bool {
		k, _, err := i.entry(n)
		if err != nil {
			return true // stop at the first unreadable entry
		}
		return i.cmp.Compare(k, key) >= 0
	})
	i.seekTo(pos)
	return i.Valid()
}

// Pos returns the index position of the current entry within the block.
func (i *BlockIterator) Pos() int { return i.pos }

// Key returns the key of the current entry.
func (i *BlockIterator) Key() []byte { return i.key }

// Value returns the value of the current entry. The value points into
// the block and must not be modified.
func (i *BlockIterator) Value() []byte { return i.val }

// Valid returns true if the iterator is positioned at an entry.
func (i *BlockIterator) Valid() bool {
	return i.err == nil && i.pos < i.b.NumEntries()
}

// Next advances the cursor to the next entry.
func (i *BlockIterator) Next() error {
	if i.err != nil {
		return i.err
	}
	if i.pos < i.b.NumEntries() {
		i.seekTo(i.pos + 1)
	}
	return i.err
}

// Err exposes iterator errors, if any.
func (i *BlockIterator) Err() error { return i.err }

func (i *BlockIterator) seekTo(pos int) {
	i.pos = pos
	i.key, i.val = nil, nil

	if pos >= i.b.NumEntries() {
		return
	}
	i.key, i.val, i.err = i.entry(pos)
}

// entry parses the n-th entry.
func (i *BlockIterator) entry(n int) (key, val []byte, err error) {
	min, max := int(i.b.offsets[n]), i.b.entryEnd(n)
	p := i.b.data[min:max]

	if len(p) < 2 {
		return nil, nil, errBadEntry(n)
	}
	kln := int(binary.BigEndian.Uint16(p))
	p = p[2:]
	if len(p) < kln+2 {
		return nil, nil, errBadEntry(n)
	}
	key, p = p[:kln], p[kln:]

	vln := int(binary.BigEndian.Uint16(p))
	p = p[2:]
	if len(p) < vln {
		return nil, nil, errBadEntry(n)
	}
	return key, p[:vln], nil
}

func errBadEntry(n int) error {
	return fmt.Errorf("%w: entry %d is truncated", ErrMalformedBlock, n)
}
