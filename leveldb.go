package lsmcore

import "github.com/syndtr/goleveldb/leveldb/iterator"

// LevelDBIterator adapts a goleveldb iterator, such as a table, memdb or
// merged iterator, to Iterator.
type LevelDBIterator struct {
	it  iterator.Iterator
	err error

	released bool
}

// WrapLevelDB wraps a goleveldb iterator and positions it at its first
// entry. It returns an error if the iterator fails to position itself;
// the wrapped iterator is released in that case.
//
// The wrapped iterator is released once it is exhausted or fails.
func WrapLevelDB(it iterator.Iterator) (*LevelDBIterator, error) {
	w := &LevelDBIterator{it: it}
	if !it.First() {
		w.release()
	}
	if w.err != nil {
		return nil, w.err
	}
	return w, nil
}

// Key returns the key of the current entry.
func (w *LevelDBIterator) Key() []byte { return w.it.Key() }

// Value returns the value of the current entry.
func (w *LevelDBIterator) Value() []byte { return w.it.Value() }

// Valid returns true if the iterator is positioned at an entry.
func (w *LevelDBIterator) Valid() bool {
	return !w.released && w.err == nil && w.it.Valid()
}

// Next advances the cursor to the next entry.
func (w *LevelDBIterator) Next() error {
	if w.released {
		return w.err
	}
	if !w.it.Next() {
		w.release()
	}
	return w.err
}

// Err exposes iterator errors, if any.
func (w *LevelDBIterator) Err() error { return w.err }

func (w *LevelDBIterator) release() {
	w.err = w.it.Error()
	w.it.Release()
	w.released = true
}
