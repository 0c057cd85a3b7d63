package lsmcore

import (
	"errors"

	"github.com/syndtr/goleveldb/leveldb/comparer"
)

// ErrMalformedBlock is returned (wrapped) when block bytes cannot be decoded.
var ErrMalformedBlock = errors.New("lsmcore: malformed block")

// ErrBlockFull is returned by the builder when an entry does not fit the block.
var ErrBlockFull = errors.New("lsmcore: block is full")

var (
	errEmptyKey      = errors.New("lsmcore: key must not be empty")
	errKeyTooLarge   = errors.New("lsmcore: key exceeds 65535 bytes")
	errValueTooLarge = errors.New("lsmcore: value exceeds 65535 bytes")
)

// maxUint16 is the largest value a block offset or entry count can hold.
const maxUint16 = 1<<16 - 1

// Comparer defines a total order over keys. It returns -1, 0 or +1 when
// a is less than, equal to or greater than b.
//
// Both comparer.DefaultComparer from github.com/syndtr/goleveldb and
// db.DefaultComparer from github.com/golang/leveldb satisfy this interface.
type Comparer interface {
	Compare(a, b []byte) int
}

// DefaultComparer orders keys bytewise.
var DefaultComparer Comparer = comparer.DefaultComparer

// Iterator is a sorted source of key/value entries. Blocks, tables,
// in-memory tables and merges all implement it.
//
// While an iterator remains valid, successive calls to Next expose
// non-decreasing keys. Key and Value must only be called while Valid
// returns true. Next may leave the iterator invalid.
type Iterator interface {
	// Key returns the current key.
	Key() []byte
	// Value returns the current value. Please note that values may be
	// temporary buffers and must be copied if used beyond the next cursor move.
	Value() []byte
	// Valid returns true if the iterator is positioned at an entry.
	Valid() bool
	// Next advances the iterator to the next entry.
	Next() error
}
