package solver

import (
	"sort"

	"github.com/lintang-b-s/ucarpp/pkg"
	da "github.com/lintang-b-s/ucarpp/pkg/datastructure"
	"github.com/lintang-b-s/ucarpp/pkg/solution"
)

// BuildInitial builds the greedy starting solution. With the parallel construction the vehicles
// advance one edge at a time in turn instead of being filled one after the other.
func (s *Solver) BuildInitial() *solution.Candidate {
	c := s.newCandidate()
	if s.params.Construction == pkg.CONSTRUCTION_PARALLEL {
		s.buildRoundRobin(c)
		return c
	}
	for v := 0; v < s.vehicles; v++ {
		s.buildVehicle(c, v)
	}
	return c
}

func (s *Solver) buildVehicle(c *solution.Candidate, v int) {
	for s.extendGreedy(c, v) {
	}
	s.closeRoute(c, v)
}

func (s *Solver) buildRoundRobin(c *solution.Candidate) {
	active := make([]bool, s.vehicles)
	remaining := s.vehicles
	for v := range active {
		active[v] = true
	}
	for remaining > 0 {
		for v := range active {
			if !active[v] {
				continue
			}
			if !s.extendGreedy(c, v) {
				active[v] = false
				remaining--
			}
		}
	}
	for v := 0; v < s.vehicles; v++ {
		s.closeRoute(c, v)
	}
}

// extendGreedy appends the best ranked edge leaving the end of v's route that keeps v feasible
// together with the edge back to the depot. It returns false when no edge fits.
func (s *Solver) extendGreedy(c *solution.Candidate, v int) bool {
	if c.Size(v) >= s.maxRouteEdges() {
		return false
	}
	current := c.Route(v).EndVertex()

	for _, eid := range s.rankGreedy(c, current) {
		next := s.graph.GetEdgeByID(eid).GetOther(current)
		back := da.INVALID_EDGE_ID
		if next != s.depot {
			var err error
			if back, err = s.graph.GetEdgeID(next, s.depot); err != nil {
				continue
			}
		}

		c.AppendEdge(eid, v)
		if back != da.INVALID_EDGE_ID {
			c.AppendEdge(back, v)
		}
		feasible := c.IsFeasible(v)
		if back != da.INVALID_EDGE_ID {
			c.RemoveLastEdge(v)
		}
		if feasible {
			return true
		}
		c.RemoveLastEdge(v)
	}
	return false
}

// rankGreedy orders the edges incident to u: unserved edges by profit/demand ratio, served ones
// last (ratio -1), ties broken by descending cost.
func (s *Solver) rankGreedy(c *solution.Candidate, u int) []da.EdgeID {
	adj := s.graph.GetAdjList(u)
	ranked := make([]da.EdgeID, len(adj))
	copy(ranked, adj)

	ratio := func(eid da.EdgeID) float64 {
		if c.TakenCount(eid) > 0 {
			return -1
		}
		return s.graph.GetEdgeByID(eid).ProfitDemandRatio()
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		ri, rj := ratio(ranked[i]), ratio(ranked[j])
		if ri != rj {
			return ri > rj
		}
		return s.graph.GetEdgeByID(ranked[i]).GetCost() > s.graph.GetEdgeByID(ranked[j]).GetCost()
	})
	return ranked
}

// closeRoute appends the edge back to the depot when the route ends elsewhere.
func (s *Solver) closeRoute(c *solution.Candidate, v int) {
	end := c.Route(v).EndVertex()
	if end == s.depot {
		return
	}
	if back, err := s.graph.GetEdgeID(end, s.depot); err == nil {
		c.AppendEdge(back, v)
	}
}

func (s *Solver) maxRouteEdges() int {
	return 2*s.graph.NumberOfEdges() + 2
}
