package solution

import (
	"testing"

	da "github.com/lintang-b-s/ucarpp/pkg/datastructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// creditedProfit sums the profit of every edge that has a server.
func creditedProfit(c *Candidate) int {
	total := 0
	for _, e := range c.GetGraph().GetEdges() {
		if c.TakenCount(e.GetID()) > 0 {
			total += e.GetProfit()
		}
	}
	return total
}

func TestCandidateCreditUniqueness(t *testing.T) {
	g := fourCycle(t)

	testCases := []struct {
		name   string
		routes [][]da.EdgeID
		profit []int
	}{
		{
			name:   "single vehicle",
			routes: [][]da.EdgeID{{e01, e01}},
			profit: []int{10},
		},
		{
			name:   "shared edge credited to the first taker",
			routes: [][]da.EdgeID{{e01, e01}, {e01, e12, e23, e30}},
			profit: []int{10, 0},
		},
		{
			name:   "repeated edge in both routes",
			routes: [][]da.EdgeID{{e30, e23, e12, e01, e01, e01}, {e01, e01}},
			profit: []int{10, 0},
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			c := candidateWith(t, g, roomy, tt.routes...)
			sum := 0
			for v, want := range tt.profit {
				assert.Equal(t, want, c.ProfitOf(v), "vehicle %d", v)
				sum += c.ProfitOf(v)
			}
			assert.Equal(t, creditedProfit(c), sum)
			assert.Equal(t, sum, c.Profit())
		})
	}
}

func TestCandidateIsRemovable(t *testing.T) {
	g := fourCycle(t)

	testCases := []struct {
		name      string
		routes    [][]da.EdgeID
		vehicle   int
		at        int
		removable bool
	}{
		{
			name:      "credited edge shared with another vehicle",
			routes:    [][]da.EdgeID{{e01, e01}, {e01, e01}},
			vehicle:   0,
			at:        0,
			removable: false,
		},
		{
			name:      "second occurrence of the credited edge",
			routes:    [][]da.EdgeID{{e01, e01}, {e01, e01}},
			vehicle:   0,
			at:        1,
			removable: true,
		},
		{
			name:      "non server taker",
			routes:    [][]da.EdgeID{{e01, e01}, {e01, e01}},
			vehicle:   1,
			at:        0,
			removable: true,
		},
		{
			name:      "server without other takers",
			routes:    [][]da.EdgeID{{e01, e01}, {}},
			vehicle:   0,
			at:        0,
			removable: true,
		},
		{
			name:      "zero demand edge served and shared",
			routes:    [][]da.EdgeID{{e01, e12, e12, e01}, {e01, e12, e12, e01}},
			vehicle:   0,
			at:        1,
			removable: true,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			c := candidateWith(t, g, roomy, tt.routes...)
			assert.Equal(t, tt.removable, c.IsRemovable(tt.vehicle, tt.at))
		})
	}
}

func TestCandidateZeroDemandAlwaysRemovable(t *testing.T) {
	g := fourCycle(t)
	c := candidateWith(t, g, roomy,
		[]da.EdgeID{e30, e23, e12, e01, e01, e12, e12, e01},
		[]da.EdgeID{e01, e12, e23, e30},
		[]da.EdgeID{e02, e23, e30},
	)
	for v := 0; v < c.NumberOfVehicles(); v++ {
		for i := 0; i < c.Size(v); i++ {
			if c.EdgeAt(v, i).GetDemand() == 0 {
				assert.True(t, c.IsRemovable(v, i), "vehicle %d position %d", v, i)
			}
		}
	}
}

func TestCandidateFeasibilityBounds(t *testing.T) {
	g := fourCycle(t)

	testCases := []struct {
		name     string
		limits   Limits
		feasible bool
	}{
		{name: "both bounds reached", limits: Limits{Capacity: 3, TimeBudget: 4}, feasible: true},
		{name: "capacity exceeded", limits: Limits{Capacity: 2, TimeBudget: 4}, feasible: false},
		{name: "time budget exceeded", limits: Limits{Capacity: 3, TimeBudget: 3}, feasible: false},
	}
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			c := candidateWith(t, g, tt.limits, []da.EdgeID{e01, e01})
			assert.Equal(t, tt.feasible, c.IsFeasible(0))
			assert.True(t, c.IsClosed(0))
		})
	}
}

func TestCandidateRollbackRestoresTakerOrder(t *testing.T) {
	g := fourCycle(t)
	c := candidateWith(t, g, roomy,
		[]da.EdgeID{e01, e12, e12, e01},
		[]da.EdgeID{e01, e12, e12, e01},
	)
	snapshot := c.Clone()

	t.Run("remove and reinsert without a transaction reorders takers", func(t *testing.T) {
		scratch := c.Clone()
		scratch.RemoveEdge(0, 2)
		scratch.InsertEdge(e12, 0, 2)
		assert.Equal(t, snapshot.Route(0).Edges(), scratch.Route(0).Edges())
		assert.False(t, scratch.Equal(snapshot))
	})

	t.Run("rollback", func(t *testing.T) {
		sp := c.Begin()
		c.RemoveEdge(0, 2)
		c.InsertEdge(e12, 0, 2)
		c.RemovePath(1, 0, 2)
		c.InsertPath([]da.EdgeID{e02, e23, e30}, 1, 0)
		require.True(t, c.InTransaction())

		c.Rollback(sp)
		assert.False(t, c.InTransaction())
		assert.True(t, c.Equal(snapshot))
	})

	t.Run("nested commit then outer rollback", func(t *testing.T) {
		outer := c.Begin()
		c.RemoveEdge(0, 0)
		inner := c.Begin()
		c.RemoveLastEdge(0)
		c.Commit(inner)
		require.True(t, c.InTransaction())

		c.Rollback(outer)
		assert.True(t, c.Equal(snapshot))
	})

	t.Run("commit keeps the edits", func(t *testing.T) {
		work := c.Clone()
		sp := work.Begin()
		work.RemovePath(1, 0, 4)
		work.Commit(sp)
		assert.False(t, work.InTransaction())
		assert.Zero(t, work.Size(1))
		assert.Equal(t, []int{0}, work.Takers(e01)[:1])
	})
}

func TestCandidateSetServerUndo(t *testing.T) {
	g := fourCycle(t)
	c := candidateWith(t, g, roomy, []da.EdgeID{e01, e01}, []da.EdgeID{e01, e01})
	snapshot := c.Clone()

	undo, ok := c.SetServer(e01, 1)
	require.True(t, ok)
	assert.Equal(t, 0, c.ProfitOf(0))
	assert.Equal(t, 10, c.ProfitOf(1))
	assert.Equal(t, 10, c.Profit())

	undo()
	assert.True(t, c.Equal(snapshot))

	_, ok = c.SetServer(e23, 0)
	assert.False(t, ok)
}

func TestCandidateEvaluateInsertionLeavesCandidateUnchanged(t *testing.T) {
	g := fourCycle(t)
	c := candidateWith(t, g, Limits{Capacity: 5, TimeBudget: 8},
		[]da.EdgeID{e02, e02},
		[]da.EdgeID{e01, e01},
	)
	snapshot := c.Clone()

	cost, demand, profit, feasible := c.EvaluateInsertion([]da.EdgeID{e01, e12}, 0, 1)
	assert.Equal(t, 12, cost)
	assert.Zero(t, demand, "e01 is served by vehicle 1")
	assert.Zero(t, profit)
	assert.False(t, feasible)
	assert.True(t, c.Equal(snapshot))
}

func TestCandidateBetterThanIsStrictWeakOrder(t *testing.T) {
	g := fourCycle(t)
	candidates := []*Candidate{
		candidateWith(t, g, roomy, []da.EdgeID{}),                        // 0 0 0
		candidateWith(t, g, roomy, []da.EdgeID{e01, e01}),                // p10 d3 c4
		candidateWith(t, g, roomy, []da.EdgeID{e01, e12, e23, e30}),      // p10 d3 c8
		candidateWith(t, g, roomy, []da.EdgeID{e30, e30}),                // p0 d0 c4
		candidateWith(t, g, roomy, []da.EdgeID{e02, e02}),                // p0 d0 c8
		candidateWith(t, g, roomy, []da.EdgeID{e01, e12, e12, e01}),      // p10 d3 c8
		candidateWith(t, g, roomy, []da.EdgeID{e01, e01}, []da.EdgeID{}), // p10 d3 c4, two vehicles
	}

	incomparable := func(a, b *Candidate) bool {
		return !a.BetterThan(b) && !b.BetterThan(a)
	}
	for i, a := range candidates {
		assert.False(t, a.BetterThan(a), "irreflexive %d", i)
		for j, b := range candidates {
			if a.BetterThan(b) {
				assert.False(t, b.BetterThan(a), "asymmetric %d %d", i, j)
			}
			for k, c := range candidates {
				if a.BetterThan(b) && b.BetterThan(c) {
					assert.True(t, a.BetterThan(c), "transitive %d %d %d", i, j, k)
				}
				if incomparable(a, b) && incomparable(b, c) {
					assert.True(t, incomparable(a, c), "transitive incomparability %d %d %d", i, j, k)
				}
			}
		}
	}

	assert.True(t, candidates[1].BetterThan(candidates[2]), "same profit and demand, lower cost")
	assert.True(t, candidates[2].BetterThan(candidates[3]), "higher profit wins over cost")
	assert.True(t, incomparable(candidates[2], candidates[5]))
}

func TestCandidateCloneIsDeep(t *testing.T) {
	g := fourCycle(t)
	c := candidateWith(t, g, roomy, []da.EdgeID{e01, e01}, []da.EdgeID{e01, e01})
	clone := c.Clone()
	require.True(t, clone.Equal(c))

	clone.RemoveEdge(0, 0)
	clone.RemoveEdge(0, 0)
	assert.False(t, clone.Equal(c))
	assert.Equal(t, 10, c.ProfitOf(0))
	assert.Equal(t, 0, c.ProfitOf(1))
	assert.Equal(t, 10, clone.ProfitOf(1))
	assert.Equal(t, []int{0, 0, 1, 1}, c.Takers(e01))
}
