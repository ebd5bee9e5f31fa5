package solver

import (
	"testing"

	"github.com/lintang-b-s/ucarpp/pkg"
	da "github.com/lintang-b-s/ucarpp/pkg/datastructure"
	"github.com/lintang-b-s/ucarpp/pkg/solution"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type rawEdge struct {
	u, v, cost, demand, profit int
}

func closedGraph(t *testing.T, n int, edges []rawEdge) *da.Graph {
	t.Helper()
	g := da.NewGraph(n)
	for _, e := range edges {
		_, err := g.AddEdge(e.u, e.v, e.cost, e.demand, e.profit)
		require.NoError(t, err)
	}
	g.CompleteClosure()
	return g
}

// fourCycle: 0-1-2-3-0, cost 2 everywhere, only (0,1) is profitable.
func fourCycle(t *testing.T) *da.Graph {
	return closedGraph(t, 4, []rawEdge{
		{0, 1, 2, 3, 10},
		{1, 2, 2, 0, 0},
		{2, 3, 2, 0, 0},
		{3, 0, 2, 0, 0},
	})
}

// grid is a 3x3 lattice with mixed costs, demands and profits. Every physical edge carries demand.
//
//	0 - 1 - 2
//	|   |   |
//	3 - 4 - 5
//	|   |   |
//	6 - 7 - 8
func grid(t *testing.T) *da.Graph {
	pairs := [][2]int{
		{0, 1}, {1, 2}, {3, 4}, {4, 5}, {6, 7}, {7, 8},
		{0, 3}, {3, 6}, {1, 4}, {4, 7}, {2, 5}, {5, 8},
	}
	edges := make([]rawEdge, 0, len(pairs))
	for _, p := range pairs {
		u, v := p[0], p[1]
		demand := 1 + (u*v)%3
		edges = append(edges, rawEdge{
			u:      u,
			v:      v,
			cost:   1 + (u+v)%3,
			demand: demand,
			profit: 2*demand + u%2,
		})
	}
	return closedGraph(t, 9, edges)
}

func testParams(seed uint64, iterations int) Params {
	p := DefaultParams()
	p.Seed = seed
	p.Iterations = iterations
	p.Repetition = 2
	return p
}

func newTestSolver(t *testing.T, g *da.Graph, vehicles int, limits solution.Limits, params Params,
	opts ...Option) *Solver {
	t.Helper()
	s, err := NewSolver(g, 0, vehicles, limits, params, zap.NewNop(), opts...)
	require.NoError(t, err)
	return s
}

func requireValid(t *testing.T, c *solution.Candidate) {
	t.Helper()
	for v := 0; v < c.NumberOfVehicles(); v++ {
		require.True(t, c.IsFeasible(v), "vehicle %d infeasible:\n%s", v, c.String())
		require.True(t, c.IsClosed(v), "vehicle %d not closed:\n%s", v, c.String())
	}
}

// creditedProfit sums the profit of every edge with a server.
func creditedProfit(c *solution.Candidate) int {
	total := 0
	for _, e := range c.GetGraph().GetEdges() {
		if c.TakenCount(e.GetID()) > 0 {
			total += e.GetProfit()
		}
	}
	return total
}

var gridLimits = solution.Limits{Capacity: 6, TimeBudget: 14}

var allStrategies = []string{pkg.STRATEGY_VNS, pkg.STRATEGY_VND, pkg.STRATEGY_VNASD, pkg.STRATEGY_VNAASD}
