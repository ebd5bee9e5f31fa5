package solution

import (
	"testing"

	da "github.com/lintang-b-s/ucarpp/pkg/datastructure"
	"github.com/stretchr/testify/require"
)

// edge ids of fourCycle
const (
	e01 da.EdgeID = iota
	e12
	e23
	e30
	e02 // closure
	e13 // closure
)

// fourCycle is the closed 4-cycle 0-1-2-3-0 with cost 2 on every edge. Only (0,1) carries
// demand 3 and profit 10.
func fourCycle(t *testing.T) *da.Graph {
	t.Helper()
	g := da.NewGraph(4)
	for _, e := range [][5]int{
		{0, 1, 2, 3, 10},
		{1, 2, 2, 0, 0},
		{2, 3, 2, 0, 0},
		{3, 0, 2, 0, 0},
	} {
		_, err := g.AddEdge(e[0], e[1], e[2], e[3], e[4])
		require.NoError(t, err)
	}
	g.CompleteClosure()

	id, err := g.GetEdgeID(0, 2)
	require.NoError(t, err)
	require.Equal(t, e02, id)
	id, err = g.GetEdgeID(1, 3)
	require.NoError(t, err)
	require.Equal(t, e13, id)
	return g
}

func candidateWith(t *testing.T, g *da.Graph, limits Limits, routes ...[]da.EdgeID) *Candidate {
	t.Helper()
	c := NewCandidate(g, 0, len(routes), limits)
	for v, route := range routes {
		for _, e := range route {
			c.AppendEdge(e, v)
		}
	}
	return c
}

var roomy = Limits{Capacity: 100, TimeBudget: 100}
