package solver

import (
	"github.com/lintang-b-s/ucarpp/pkg/solution"
	"github.com/lintang-b-s/ucarpp/pkg/util"
)

type operator int

const (
	opOpen operator = iota
	opClose
)

func (o operator) String() string {
	switch o {
	case opOpen:
		return "open"
	case opClose:
		return "close"
	}
	return "unknown"
}

func (o operator) other() operator {
	if o == opOpen {
		return opClose
	}
	return opOpen
}

type operatorFunc func(s *Solver, c *solution.Candidate, v, i int) bool

var operators = [...]operatorFunc{
	opOpen:  (*Solver).Open,
	opClose: (*Solver).Close,
}

func (s *Solver) apply(op operator, c *solution.Candidate, v, i int) bool {
	ok := operators[op](s, c, v, i)
	s.metrics.Operator(op.String(), ok)
	return ok
}

/*
Open replaces the edge at position i, traversed u->w, with a detour u->x->w through a random
neighbor x of u. Neighbors are tried in random order until the vehicle stays feasible. On failure
c is left exactly as it was.
*/
func (s *Solver) Open(c *solution.Candidate, v, i int) bool {
	if i < 0 || i >= c.Size(v) || !c.IsRemovable(v, i) {
		return false
	}
	src := c.Route(v).VertexAt(i)
	removed := c.Route(v).EdgeAt(i)
	dst := s.graph.GetEdgeByID(removed).GetOther(src)

	adj := s.graph.GetAdjList(src)
	for _, j := range s.rng.Perm(len(adj)) {
		first := adj[j]
		x := s.graph.GetEdgeByID(first).GetOther(src)
		if x == dst {
			continue
		}
		second, err := s.graph.GetEdgeID(x, dst)
		if err != nil {
			continue
		}

		sp := c.Begin()
		c.RemoveEdge(v, i)
		c.InsertEdge(second, v, i)
		c.InsertEdge(first, v, i)
		if c.IsFeasible(v) {
			c.Commit(sp)
			return true
		}
		c.Rollback(sp)
	}
	return false
}

/*
Close replaces the consecutive edges u->w and w->x at positions i and i+1 with the direct edge
u->x. When x == u both edges are dropped. Both positions must be removable. On failure c is left
exactly as it was.
*/
func (s *Solver) Close(c *solution.Candidate, v, i int) bool {
	if i < 0 || i+1 >= c.Size(v) || !c.IsRemovable(v, i) || !c.IsRemovable(v, i+1) {
		return false
	}
	r := c.Route(v)
	src := r.VertexAt(i)
	mid := s.graph.GetEdgeByID(r.EdgeAt(i)).GetOther(src)
	final := s.graph.GetEdgeByID(r.EdgeAt(i + 1)).GetOther(mid)

	sp := c.Begin()
	c.RemoveEdge(v, i)
	c.RemoveEdge(v, i)
	if src != final {
		direct, err := s.graph.GetEdgeID(src, final)
		if err != nil {
			c.Rollback(sp)
			return false
		}
		c.InsertEdge(direct, v, i)
	}
	if c.IsFeasible(v) {
		c.Commit(sp)
		return true
	}
	c.Rollback(sp)
	return false
}

/*
Mutate applies k random Open/Close moves to vehicle v and returns how many succeeded. Close is
picked with a probability that grows with the route's utilization of capacity and time budget.
When a move fails the other operator is tried at the same position, then both at the next
position; Mutate stops once every position failed with both operators.
*/
func (s *Solver) Mutate(c *solution.Candidate, v, k int) int {
	applied := 0
	for n := 0; n < k; n++ {
		size := c.Size(v)
		if size == 0 {
			break
		}
		i := s.rng.Intn(size)
		op := s.pickOperator(c, v)
		first := op

		ok := false
		for tried := 0; tried < 2*size; tried++ {
			if s.apply(op, c, v, i) {
				ok = true
				break
			}
			op = op.other()
			if op == first {
				i = (i + 1) % size
			}
		}
		if !ok {
			break
		}
		applied++
	}
	return applied
}

func (s *Solver) pickOperator(c *solution.Candidate, v int) operator {
	cost, demand, _ := c.TotalsOf(v)
	utilization := (ratio(demand, s.limits.Capacity) + ratio(cost, s.limits.TimeBudget)) / 2
	if s.rng.Float64() < util.Logistic(utilization, 0.5, s.params.Steepness) {
		return opClose
	}
	return opOpen
}

// ratio is the used share of limit, clamped to [0,1].
func ratio(used, limit int) float64 {
	if limit <= 0 {
		return 1
	}
	return util.Clamp(float64(used)/float64(limit), 0, 1)
}
