package solver

import (
	"github.com/lintang-b-s/ucarpp/pkg/solution"
	"github.com/lintang-b-s/ucarpp/pkg/util"
)

/*
holeSweep walks vehicle v's route and, at every removable position, cuts a hole: the edge itself
plus the following removable edges that carry no credit for v. The hole is reconnected with
Reconnect and the result compared against best. c is restored after every hole, the best
candidate seen (best itself when nothing beats it) is returned.
*/
func (s *Solver) holeSweep(c *solution.Candidate, v int, best *solution.Candidate) *solution.Candidate {
	for i := 0; i < c.Size(v); i++ {
		if !c.IsRemovable(v, i) {
			continue
		}
		src := c.Route(v).VertexAt(i)
		dst := c.EdgeAt(v, i).GetOther(src)

		sp := c.Begin()
		c.RemoveEdge(v, i)
		removed := 1
		for i < c.Size(v) && c.IsRemovable(v, i) {
			profit := c.ProfitOf(v)
			next := c.EdgeAt(v, i).GetOther(dst)

			inner := c.Begin()
			c.RemoveEdge(v, i)
			if c.ProfitOf(v) != profit {
				c.Rollback(inner)
				break
			}
			c.Commit(inner)
			dst = next
			removed++
		}

		path, ok := s.Reconnect(c, v, src, dst, i, s.params.ReconnectMaxEdges)
		if ok {
			c.InsertPath(path, v, i)
			if c.BetterThan(best) {
				best = c.Clone()
			}
		} else {
			s.metrics.ReconnectFailed()
		}
		c.Rollback(sp)
		i += removed - 1
	}
	return best
}

// hole is an open gap in a route waiting to be reconnected. Rolling back sp puts the removed edges
// back.
type hole struct {
	at  int
	src int
	dst int
	sp  solution.Savepoint
}

/*
openRandom removes a random removable edge of vehicle v and then up to k more removable edges,
each one picked at random from either side of the hole. src and dst follow the hole's endpoints as
it grows. The caller must Commit or Rollback the returned savepoint.
*/
func (s *Solver) openRandom(c *solution.Candidate, v, k int) (hole, bool) {
	size := c.Size(v)
	if size == 0 {
		return hole{}, false
	}
	at := -1
	start := s.rng.Intn(size)
	for j := 0; j < size; j++ {
		if i := (start + j) % size; c.IsRemovable(v, i) {
			at = i
			break
		}
	}
	if at < 0 {
		return hole{}, false
	}

	h := hole{at: at}
	h.src = c.Route(v).VertexAt(at)
	h.dst = c.EdgeAt(v, at).GetOther(h.src)
	h.sp = c.Begin()
	c.RemoveEdge(v, at)

	extra := util.MinInt(k, size-1)
	for j := 0; j < extra; j++ {
		canBack := h.at > 0 && c.IsRemovable(v, h.at-1)
		canForward := h.at < c.Size(v) && c.IsRemovable(v, h.at)

		var backward bool
		switch {
		case canBack && canForward:
			backward = s.rng.Intn(2) == 1
		case canBack:
			backward = true
		case canForward:
			backward = false
		default:
			return h, true
		}

		if backward {
			h.at--
			h.src = c.EdgeAt(v, h.at).GetOther(h.src)
		} else {
			h.dst = c.EdgeAt(v, h.at).GetOther(h.dst)
		}
		c.RemoveEdge(v, h.at)
	}
	return h, true
}

/*
OptimizeSolution is the closing pass applied to the search result: credit rebalancing on every
vehicle, then hole-and-reconnect sweeps over every vehicle until none of them improves. The input
is not modified.
*/
func (s *Solver) OptimizeSolution(c *solution.Candidate) *solution.Candidate {
	cur := c.Clone()
	for v := 0; v < s.vehicles; v++ {
		s.Rebalance(cur, v)
	}

	for improved := true; improved; {
		improved = false
		for v := 0; v < s.vehicles; v++ {
			ref := cur.Clone()
			if best := s.holeSweep(cur, v, ref); best != ref {
				cur = best
				improved = true
			}
		}
	}
	return cur
}
