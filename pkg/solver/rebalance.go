package solver

import (
	"slices"
	"sort"

	da "github.com/lintang-b-s/ucarpp/pkg/datastructure"
	"github.com/lintang-b-s/ucarpp/pkg/solution"
)

/*
Rebalance tries to hand the credit of every profitable edge served by vehicle v to another vehicle
that already traverses it, largest demand first. A handover is kept when the receiving vehicle
stays feasible. Routes are never changed. Returns the number of handovers.
*/
func (s *Solver) Rebalance(c *solution.Candidate, v int) int {
	r := c.Route(v)
	served := make([]da.EdgeID, 0)
	for i := 0; i < r.Size(); i++ {
		eid := r.EdgeAt(i)
		if r.IsCredited(i) && s.graph.GetEdgeByID(eid).IsProfitable() {
			served = append(served, eid)
		}
	}
	sort.SliceStable(served, func(i, j int) bool {
		return s.graph.GetEdgeByID(served[i]).GetDemand() > s.graph.GetEdgeByID(served[j]).GetDemand()
	})

	handovers := 0
	for _, eid := range served {
		tried := []int{v}
		for _, other := range c.Takers(eid) {
			if slices.Contains(tried, other) {
				continue
			}
			tried = append(tried, other)

			undo, ok := c.SetServer(eid, other)
			if !ok {
				continue
			}
			if c.IsFeasible(other) {
				handovers++
				s.metrics.CreditHandover()
				break
			}
			undo()
		}
	}
	return handovers
}
