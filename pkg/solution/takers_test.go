package solution

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTakersMarkTaken(t *testing.T) {
	testCases := []struct {
		name     string
		marks    [][2]int // vehicle, occurrence
		expected []int
	}{
		{
			name:     "arrival order",
			marks:    [][2]int{{0, 0}, {1, 0}, {2, 0}},
			expected: []int{0, 1, 2},
		},
		{
			name:     "earlier route position goes before the vehicle's existing entry",
			marks:    [][2]int{{1, 0}, {0, 0}, {1, 0}},
			expected: []int{1, 1, 0},
		},
		{
			name:     "occurrence past the vehicle's entries appends",
			marks:    [][2]int{{0, 0}, {1, 0}, {0, 1}},
			expected: []int{0, 1, 0},
		},
		{
			name:     "insert between two entries of the same vehicle",
			marks:    [][2]int{{0, 0}, {1, 0}, {0, 1}, {0, 1}},
			expected: []int{0, 1, 0, 0},
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			tk := NewTakers(1)
			for _, m := range tt.marks {
				tk.MarkTaken(0, m[0], m[1])
			}
			assert.Equal(t, tt.expected, tk.Takers(0))
			assert.Equal(t, len(tt.expected), tk.TakenCount(0))
			assert.True(t, tk.IsServer(0, tt.expected[0]))
		})
	}
}

func TestTakersUnmarkHandsCreditOver(t *testing.T) {
	tk := NewTakers(1)
	tk.MarkTaken(0, 0, 0)
	tk.MarkTaken(0, 1, 0)
	tk.MarkTaken(0, 0, 1)

	tk.Unmark(0, 0, 0)
	server, ok := tk.Server(0)
	require.True(t, ok)
	assert.Equal(t, 1, server)
	assert.Equal(t, []int{1, 0}, tk.Takers(0))

	tk.Unmark(0, 1, 0)
	tk.Unmark(0, 0, 0)
	_, ok = tk.Server(0)
	assert.False(t, ok)
	assert.Zero(t, tk.TakenCount(0))
}

func TestTakersSetServer(t *testing.T) {
	tk := NewTakers(1)
	for _, v := range []int{0, 1, 2, 1} {
		tk.MarkTaken(0, v, 0)
	}
	// MarkTaken with occurrence 0 puts the second entry of 1 before its first one
	require.Equal(t, []int{0, 1, 1, 2}, tk.Takers(0))

	assert.True(t, tk.SetServer(0, 2))
	assert.Equal(t, []int{2, 0, 1, 1}, tk.Takers(0))
	assert.True(t, tk.TakenByOther(0, 2))

	assert.False(t, tk.SetServer(0, 7))
	assert.Equal(t, []int{2, 0, 1, 1}, tk.Takers(0))
}

func TestTakersCloneIsIndependent(t *testing.T) {
	tk := NewTakers(2)
	tk.MarkTaken(0, 0, 0)
	tk.MarkTaken(1, 1, 0)

	clone := tk.Clone()
	require.True(t, clone.Equal(tk))

	clone.MarkTaken(0, 3, 0)
	assert.False(t, clone.Equal(tk))
	assert.Equal(t, []int{0}, tk.Takers(0))
}
