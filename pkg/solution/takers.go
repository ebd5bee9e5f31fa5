package solution

import (
	"slices"

	da "github.com/lintang-b-s/ucarpp/pkg/datastructure"
)

// Takers is the shared-edge side table of a candidate: for every edge id, the ordered list of
// vehicle occurrences currently traversing it. The front of the list is the server, the only
// vehicle credited with the edge's demand and profit. Entries of the same vehicle appear in the
// order of that vehicle's route.
type Takers struct {
	takers [][]int
}

func NewTakers(numEdges int) *Takers {
	return &Takers{
		takers: make([][]int, numEdges),
	}
}

// MarkTaken registers a new occurrence of vehicle on edge e. occurrence is the number of times the
// vehicle already traverses e before the insertion point of its route; the new entry is placed
// right before the vehicle's occurrence-th entry, or appended when there is none.
func (t *Takers) MarkTaken(e da.EdgeID, vehicle, occurrence int) int {
	list := t.takers[e]
	for i, v := range list {
		if v != vehicle {
			continue
		}
		if occurrence == 0 {
			t.takers[e] = slices.Insert(list, i, vehicle)
			return len(t.takers[e])
		}
		occurrence--
	}

	t.takers[e] = append(list, vehicle)
	return len(t.takers[e])
}

// Unmark removes the occurrence-th entry of vehicle from edge e. Removing the server entry hands
// the credit to the next taker.
func (t *Takers) Unmark(e da.EdgeID, vehicle, occurrence int) int {
	list := t.takers[e]
	for i, v := range list {
		if v != vehicle {
			continue
		}
		if occurrence == 0 {
			t.takers[e] = slices.Delete(list, i, i+1)
			break
		}
		occurrence--
	}
	return len(t.takers[e])
}

func (t *Takers) IsServer(e da.EdgeID, vehicle int) bool {
	list := t.takers[e]
	return len(list) > 0 && list[0] == vehicle
}

// Server returns the vehicle credited with e, false when nobody takes it.
func (t *Takers) Server(e da.EdgeID) (int, bool) {
	list := t.takers[e]
	if len(list) == 0 {
		return -1, false
	}
	return list[0], true
}

// SetServer moves the first entry of vehicle to the front of e's taker list.
func (t *Takers) SetServer(e da.EdgeID, vehicle int) bool {
	list := t.takers[e]
	i := slices.Index(list, vehicle)
	if i < 0 {
		return false
	}
	copy(list[1:i+1], list[:i])
	list[0] = vehicle
	return true
}

func (t *Takers) TakenCount(e da.EdgeID) int {
	return len(t.takers[e])
}

// Takers returns a copy of e's taker list.
func (t *Takers) Takers(e da.EdgeID) []int {
	return slices.Clone(t.takers[e])
}

// TakenByOther reports whether a vehicle other than vehicle traverses e.
func (t *Takers) TakenByOther(e da.EdgeID, vehicle int) bool {
	for _, v := range t.takers[e] {
		if v != vehicle {
			return true
		}
	}
	return false
}

func (t *Takers) restore(e da.EdgeID, list []int) {
	t.takers[e] = list
}

func (t *Takers) Clone() *Takers {
	c := &Takers{takers: make([][]int, len(t.takers))}
	for e, list := range t.takers {
		if len(list) > 0 {
			c.takers[e] = slices.Clone(list)
		}
	}
	return c
}

func (t *Takers) Equal(o *Takers) bool {
	if len(t.takers) != len(o.takers) {
		return false
	}
	for e := range t.takers {
		if !slices.Equal(t.takers[e], o.takers[e]) {
			return false
		}
	}
	return true
}
