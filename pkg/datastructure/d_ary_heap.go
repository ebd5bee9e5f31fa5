package datastructure

import (
	"github.com/lintang-b-s/ucarpp/pkg"
	"github.com/lintang-b-s/ucarpp/pkg/util"
)

// HeapNode is an item of the heap with an integer key. pos is its index in the heap array, -1
// once extracted.
type HeapNode[T comparable] struct {
	key  int
	item T
	pos  int
}

func NewHeapNode[T comparable](key int, item T) *HeapNode[T] {
	return &HeapNode[T]{key: key, item: item, pos: -1}
}

func (n *HeapNode[T]) GetItem() T {
	return n.item
}

func (n *HeapNode[T]) GetKey() int {
	return n.key
}

func (n *HeapNode[T]) GetPos() int {
	return n.pos
}

// InHeap reports whether the node is still waiting to be extracted.
func (n *HeapNode[T]) InHeap() bool {
	return n.pos >= 0
}

// MinHeap is a d-ary min heap keyed by int. Nodes remember their position, so DecreaseKey is
// O(log_d N) without a lookup.
type MinHeap[T comparable] struct {
	nodes []*HeapNode[T]
	d     int
}

func NewBinaryHeap[T comparable]() *MinHeap[T] {
	return NewDAryHeap[T](2)
}

func NewFourAryHeap[T comparable]() *MinHeap[T] {
	return NewDAryHeap[T](4)
}

func NewDAryHeap[T comparable](d int) *MinHeap[T] {
	if d < 2 {
		d = 2
	}
	return &MinHeap[T]{
		nodes: make([]*HeapNode[T], 0),
		d:     d,
	}
}

func (h *MinHeap[T]) Preallocate(n int) {
	h.nodes = make([]*HeapNode[T], 0, n)
}

func (h *MinHeap[T]) Size() int {
	return len(h.nodes)
}

func (h *MinHeap[T]) IsEmpty() bool {
	return len(h.nodes) == 0
}

func (h *MinHeap[T]) Clear() {
	for _, n := range h.nodes {
		n.pos = -1
	}
	h.nodes = h.nodes[:0]
}

func (h *MinHeap[T]) swap(i, j int) {
	h.nodes[i], h.nodes[j] = h.nodes[j], h.nodes[i]
	h.nodes[i].pos = i
	h.nodes[j].pos = j
}

func (h *MinHeap[T]) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / h.d
		if h.nodes[parent].key <= h.nodes[i].key {
			return
		}
		h.swap(i, parent)
		i = parent
	}
}

func (h *MinHeap[T]) siftDown(i int) {
	for {
		first := i*h.d + 1
		if first >= len(h.nodes) {
			return
		}
		last := util.MinInt(first+h.d, len(h.nodes))

		smallest := first
		for c := first + 1; c < last; c++ {
			if h.nodes[c].key < h.nodes[smallest].key {
				smallest = c
			}
		}
		if h.nodes[smallest].key >= h.nodes[i].key {
			return
		}
		h.swap(i, smallest)
		i = smallest
	}
}

func (h *MinHeap[T]) Insert(n *HeapNode[T]) {
	n.pos = len(h.nodes)
	h.nodes = append(h.nodes, n)
	h.siftUp(n.pos)
}

func (h *MinHeap[T]) GetMin() (*HeapNode[T], error) {
	if h.IsEmpty() {
		return nil, util.WrapErrorf(nil, util.ErrNotFound, "heap is empty")
	}
	return h.nodes[0], nil
}

// MinKey returns the smallest key, INF_COST for an empty heap.
func (h *MinHeap[T]) MinKey() int {
	if h.IsEmpty() {
		return pkg.INF_COST
	}
	return h.nodes[0].key
}

func (h *MinHeap[T]) ExtractMin() (*HeapNode[T], error) {
	if h.IsEmpty() {
		return nil, util.WrapErrorf(nil, util.ErrNotFound, "heap is empty")
	}
	root := h.nodes[0]
	last := len(h.nodes) - 1
	h.swap(0, last)
	h.nodes = h.nodes[:last]
	root.pos = -1
	h.siftDown(0)
	return root, nil
}

// DecreaseKey lowers the key of a node still in the heap.
func (h *MinHeap[T]) DecreaseKey(n *HeapNode[T], key int) error {
	if !n.InHeap() || n.pos >= len(h.nodes) || h.nodes[n.pos] != n {
		return util.WrapErrorf(nil, util.ErrNotFound, "node is not in the heap")
	}
	if key > n.key {
		return util.WrapErrorf(nil, util.ErrBadParamInput, "new key %d is larger than %d", key, n.key)
	}
	n.key = key
	h.siftUp(n.pos)
	return nil
}
