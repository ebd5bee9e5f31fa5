package solver

import (
	"slices"

	da "github.com/lintang-b-s/ucarpp/pkg/datastructure"
	"github.com/lintang-b-s/ucarpp/pkg/solution"
)

// label is the best known partial path from the hole's source to a vertex, with the marginal
// values inserting it would add to the vehicle.
type label struct {
	path   []da.EdgeID
	profit int
	cost   int
	demand int
}

// replaces reports whether l should take the place of o as the label of a vertex.
func (l *label) replaces(o *label) bool {
	if l.profit != o.profit {
		return l.profit > o.profit
	}
	return (l.cost <= o.cost && l.demand < o.demand) || (l.cost < o.cost && l.demand <= o.demand)
}

/*
Reconnect finds a path from src to dst to insert at position at of vehicle v's route, maximizing the
marginal profit and then minimizing marginal cost and demand, subject to v staying feasible.
Marginal values are evaluated against the current route and taker lists, so edges already
credited elsewhere add cost but no profit.

It is a Bellman-Ford style relaxation keeping a single label per vertex, repeated until a full
pass changes nothing. One label per vertex makes it an approximation of the multi-criteria best
path: a dominated prefix that would lead to a better completion is discarded. With maxEdges > 0
no path longer than maxEdges is produced.

ok is false when no feasible path exists. src == dst yields the empty path when nothing better is
found. c is left unchanged.
*/
func (s *Solver) Reconnect(c *solution.Candidate, v, src, dst, at, maxEdges int) ([]da.EdgeID, bool) {
	baseCost, baseDemand, baseProfit := c.TotalsOf(v)

	labels := make([]*label, s.graph.NumberOfVertices())
	labels[src] = &label{path: []da.EdgeID{}}

	for improved := true; improved; {
		improved = false
		for u := range labels {
			lu := labels[u]
			if lu == nil || (maxEdges > 0 && len(lu.path) >= maxEdges) {
				continue
			}
			for _, eid := range s.graph.GetAdjList(u) {
				w := s.graph.GetEdgeByID(eid).GetOther(u)

				path := append(slices.Clone(lu.path), eid)
				cost, demand, profit, feasible := c.EvaluateInsertion(path, v, at)
				if !feasible {
					continue
				}
				next := &label{
					path:   path,
					profit: profit - baseProfit,
					cost:   cost - baseCost,
					demand: demand - baseDemand,
				}
				if labels[w] == nil || next.replaces(labels[w]) {
					labels[w] = next
					improved = true
				}
			}
		}
	}

	if labels[dst] == nil {
		return nil, false
	}
	return labels[dst].path, true
}
