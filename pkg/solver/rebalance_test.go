package solver

import (
	"testing"

	da "github.com/lintang-b-s/ucarpp/pkg/datastructure"
	"github.com/lintang-b-s/ucarpp/pkg/solution"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRebalanceSharedEdge(t *testing.T) {
	// triangle 0-1-2, (0,1) shared by both vehicles
	g := closedGraph(t, 3, []rawEdge{
		{0, 1, 1, 4, 5},
		{1, 2, 1, 1, 1},
		{2, 0, 1, 0, 0},
	})
	limits := solution.Limits{Capacity: 4, TimeBudget: 10}
	e01, _ := g.GetEdgeID(0, 1)
	e12, _ := g.GetEdgeID(1, 2)
	e20, _ := g.GetEdgeID(2, 0)

	testCases := []struct {
		name       string
		routes     [][]da.EdgeID
		handovers  int
		profits    []int
		totalAfter int
	}{
		{
			name:       "receiver has room",
			routes:     [][]da.EdgeID{{e01, e01}, {e01, e01}},
			handovers:  1,
			profits:    []int{0, 5},
			totalAfter: 5,
		},
		{
			name:       "receiver would overflow",
			routes:     [][]da.EdgeID{{e01, e01}, {e20, e12, e01}},
			handovers:  0,
			profits:    []int{5, 1},
			totalAfter: 6,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSolver(t, g, 2, limits, testParams(1, 0))
			c := solution.NewCandidate(g, 0, 2, limits)
			for v, route := range tt.routes {
				for _, e := range route {
					c.AppendEdge(e, v)
				}
			}
			before := c.Clone()

			assert.Equal(t, tt.handovers, s.Rebalance(c, 0))
			for v, want := range tt.profits {
				assert.Equal(t, want, c.ProfitOf(v), "vehicle %d", v)
			}
			assert.Equal(t, tt.totalAfter, c.Profit())
			assert.Equal(t, creditedProfit(c), c.Profit())
			assert.True(t, c.IsFeasible(0) || c.IsFeasible(1))
			requireValid(t, c)

			if tt.handovers == 0 {
				require.True(t, c.Equal(before))
			}
			for v := 0; v < 2; v++ {
				assert.Equal(t, before.Route(v).Edges(), c.Route(v).Edges(), "routes never change")
			}
		})
	}
}
