package datastructure

import (
	"testing"

	"github.com/lintang-b-s/ucarpp/pkg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestMinHeapExtractsInKeyOrder(t *testing.T) {
	testCases := []struct {
		name string
		heap *MinHeap[int]
	}{
		{name: "binary", heap: NewBinaryHeap[int]()},
		{name: "four-ary", heap: NewFourAryHeap[int]()},
		{name: "eight-ary", heap: NewDAryHeap[int](8)},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			rng := rand.New(rand.NewSource(7))
			ranks := rng.Perm(200)
			for item, rank := range ranks {
				tt.heap.Insert(NewHeapNode(rank, item))
			}
			require.Equal(t, len(ranks), tt.heap.Size())

			prev := -1
			for !tt.heap.IsEmpty() {
				node, err := tt.heap.ExtractMin()
				require.NoError(t, err)
				assert.GreaterOrEqual(t, node.GetKey(), prev)
				assert.Equal(t, -1, node.GetPos())
				prev = node.GetKey()
			}

			_, err := tt.heap.ExtractMin()
			assert.Error(t, err)
		})
	}
}

func TestMinHeapDecreaseKey(t *testing.T) {
	h := NewFourAryHeap[string]()
	a := NewHeapNode(5, "a")
	b := NewHeapNode(3, "b")
	c := NewHeapNode(4, "c")
	h.Insert(a)
	h.Insert(b)
	h.Insert(c)

	require.NoError(t, h.DecreaseKey(a, 1))
	assert.Error(t, h.DecreaseKey(c, 10), "increasing a key is rejected")

	top, err := h.GetMin()
	require.NoError(t, err)
	assert.Equal(t, "a", top.GetItem())
	assert.Equal(t, 1, h.MinKey())

	h.Clear()
	assert.True(t, h.IsEmpty())
	assert.False(t, b.InHeap())
	assert.Equal(t, pkg.INF_COST, h.MinKey())
	assert.Error(t, h.DecreaseKey(b, 0), "cleared nodes are rejected")
}
