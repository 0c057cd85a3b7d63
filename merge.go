package lsmcore

import "container/heap"

// MergeOptions define merge specific options.
type MergeOptions struct {
	// Comparer defines the key order. It must match the order of
	// all merged iterators.
	// Default: DefaultComparer.
	Comparer Comparer
}

func (o *MergeOptions) norm() *MergeOptions {
	var oo MergeOptions
	if o != nil {
		oo = *o
	}

	if oo.Comparer == nil {
		oo.Comparer = DefaultComparer
	}

	return &oo
}

// MergeIterator merges multiple sorted iterators into a single sorted
// stream. When the same key is exposed by more than one iterator, only
// the entry of the iterator with the lowest index is emitted; the
// others are skipped.
//
// A MergeIterator is itself an Iterator and can be merged again.
type MergeIterator struct {
	heap mergeHeap
	cur  *mergeItem

	err error
}

// NewMergeIterator returns a MergeIterator which owns iters. Lower
// indices take priority over higher ones. Nil and invalid iterators are
// discarded.
func NewMergeIterator(iters []Iterator, o *MergeOptions) *MergeIterator {
	o = o.norm()

	m := &MergeIterator{
		heap: mergeHeap{
			cmp:   o.Comparer,
			items: make([]*mergeItem, 0, len(iters)),
		},
	}
	for index, iter := range iters {
		if iter != nil && iter.Valid() {
			m.heap.items = append(m.heap.items, &mergeItem{index: index, iter: iter})
		}
	}
	heap.Init(&m.heap)

	if m.heap.Len() != 0 {
		m.cur = heap.Pop(&m.heap).(*mergeItem)
	}
	return m
}

// Key returns the key of the current entry.
func (m *MergeIterator) Key() []byte {
	if m.cur == nil {
		return nil
	}
	return m.cur.iter.Key()
}

// Value returns the value of the current entry.
func (m *MergeIterator) Value() []byte {
	if m.cur == nil {
		return nil
	}
	return m.cur.iter.Value()
}

// Valid returns true if the iterator is positioned at an entry.
func (m *MergeIterator) Valid() bool {
	return m.err == nil && m.cur != nil && m.cur.iter.Valid()
}

// Next advances the cursor to the next distinct key.
//
// Errors from any of the merged iterators are returned unmodified and
// leave the MergeIterator permanently invalid. Iterators which were
// already advanced as part of the failed call are not rewound.
func (m *MergeIterator) Next() error {
	if m.err != nil {
		return m.err
	}
	if m.cur == nil {
		return nil
	}

	// skip all entries which share the current key
	key := m.cur.iter.Key()
	for m.heap.Len() != 0 && m.heap.cmp.Compare(m.heap.items[0].iter.Key(), key) == 0 {
		item := heap.Pop(&m.heap).(*mergeItem)
		if err := item.iter.Next(); err != nil {
			return m.fail(err)
		}
		if item.iter.Valid() {
			heap.Push(&m.heap, item)
		}
	}

	if err := m.cur.iter.Next(); err != nil {
		return m.fail(err)
	}

	if !m.cur.iter.Valid() {
		m.cur = nil
		if m.heap.Len() != 0 {
			m.cur = heap.Pop(&m.heap).(*mergeItem)
		}
		return nil
	}

	if m.heap.Len() != 0 && m.heap.less(m.heap.items[0], m.cur) {
		m.heap.items[0], m.cur = m.cur, m.heap.items[0]
		heap.Fix(&m.heap, 0)
	}
	return nil
}

// Err exposes the first error encountered, if any.
func (m *MergeIterator) Err() error { return m.err }

// NumActive returns the number of merged iterators which are still valid.
func (m *MergeIterator) NumActive() int {
	if m.cur == nil {
		return 0
	}
	return m.heap.Len() + 1
}

func (m *MergeIterator) fail(err error) error {
	m.err = err
	m.cur = nil
	m.heap.items = m.heap.items[:0]
	return err
}

// --------------------------------------------------------------------

type mergeItem struct {
	index int
	iter  Iterator
}

type mergeHeap struct {
	cmp   Comparer
	items []*mergeItem
}

func (h *mergeHeap) less(a, b *mergeItem) bool {
	if c := h.cmp.Compare(a.iter.Key(), b.iter.Key()); c != 0 {
		return c < 0
	}
	return a.index < b.index
}

func (h *mergeHeap) Len() int           { return len(h.items) }
func (h *mergeHeap) Less(i, j int) bool { return h.less(h.items[i], h.items[j]) }
func (h *mergeHeap) Swap(i, j int)      { h.items[i], h.items[j] = h.items[j], h.items[i] }

func (h *mergeHeap) Push(x interface{}) {
	h.items = append(h.items, x.(*mergeItem))
}

func (h *mergeHeap) Pop() interface{} {
	n := len(h.items) - 1
	item := h.items[n]
	h.items[n] = nil
	h.items = h.items[:n]
	return item
}
