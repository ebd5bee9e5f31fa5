package solver

import (
	"strconv"
	"strings"

	"github.com/lintang-b-s/ucarpp/pkg"
	"github.com/lintang-b-s/ucarpp/pkg/solution"
	"github.com/lintang-b-s/ucarpp/pkg/util"
	"go.uber.org/zap"
)

type strategy struct {
	name       string
	repetition int
}

// ParseStrategy accepts VNS, VND, VNASD and VNAASD, case-insensitively. The hybrids may carry
// their repetition count as a suffix, e.g. "VNASD3".
func ParseStrategy(s string) (strategy, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	switch name {
	case pkg.STRATEGY_VNS, pkg.STRATEGY_VND:
		return strategy{name: name}, nil
	}

	for _, hybrid := range []string{pkg.STRATEGY_VNAASD, pkg.STRATEGY_VNASD} {
		if !strings.HasPrefix(name, hybrid) {
			continue
		}
		suffix := strings.TrimPrefix(name, hybrid)
		if suffix == "" {
			return strategy{name: hybrid}, nil
		}
		repetition, err := strconv.Atoi(suffix)
		if err != nil || repetition < 1 {
			return strategy{}, util.WrapErrorf(err, util.ErrBadParamInput, "invalid repetition in strategy %q", s)
		}
		return strategy{name: hybrid, repetition: repetition}, nil
	}
	return strategy{}, util.WrapErrorf(nil, util.ErrBadParamInput, "unknown strategy %q", s)
}

/*
VNS: variable neighborhood search. Every iteration shakes a clone of base with Mutate on a random
vehicle, then sweeps every vehicle's route with hole-and-reconnect keeping the best reconnection
found. The shaking intensity grows with the number of iterations without improvement.
*/
func (s *Solver) VNS(n int, base *solution.Candidate) *solution.Candidate {
	optimal := base.Clone()
	k := 0
	for it := 0; it < n; it++ {
		s.metrics.Iteration(pkg.STRATEGY_VNS)
		s.logStatus(pkg.STRATEGY_VNS, it, base, optimal)

		shaken := base.Clone()
		s.shake(shaken, s.rng.Intn(s.vehicles), k)

		best := base
		if shaken.BetterThan(base) {
			best = shaken.Clone()
		}
		for v := 0; v < s.vehicles; v++ {
			best = s.holeSweep(shaken, v, best)
		}

		if best != base {
			base = best
			newOptimum := s.accept(pkg.STRATEGY_VNS, it, base, optimal)
			if newOptimum {
				optimal = base.Clone()
			}
			k = 0
			continue
		}
		k = util.MinInt(k+1, s.params.KMax)
	}
	return optimal
}

/*
VND: variable neighborhood descent. Every iteration shakes a clone of base, opens one random hole
of up to k edges in the shaken vehicle and reconnects it.
*/
func (s *Solver) VND(n int, base *solution.Candidate) *solution.Candidate {
	optimal := base.Clone()
	k := 1
	for it := 0; it < n; it++ {
		s.metrics.Iteration(pkg.STRATEGY_VND)
		s.logStatus(pkg.STRATEGY_VND, it, base, optimal)

		shaken := base.Clone()
		v := s.rng.Intn(s.vehicles)
		s.shake(shaken, v, k)

		if h, ok := s.openRandom(shaken, v, k); ok {
			path, found := s.Reconnect(shaken, v, h.src, h.dst, h.at, s.params.ReconnectMaxEdges)
			if found {
				shaken.InsertPath(path, v, h.at)
				shaken.Commit(h.sp)
			} else {
				s.metrics.ReconnectFailed()
				shaken.Rollback(h.sp)
			}
		}

		if shaken.BetterThan(base) {
			base = shaken
			if s.accept(pkg.STRATEGY_VND, it, base, optimal) {
				optimal = base.Clone()
			}
			k = 1
			continue
		}
		k = 1 + k%s.params.KMax
	}
	return optimal
}

// VNASD alternates VNS and VND with an even split of the iteration budget, repetition times.
func (s *Solver) VNASD(n int, base *solution.Candidate, repetition int) (*solution.Candidate, error) {
	return s.alternate(n, base, repetition, 1, 1)
}

// VNAASD alternates VNS and VND with a 3:1 split of the iteration budget in favor of VNS.
func (s *Solver) VNAASD(n int, base *solution.Candidate, repetition int) (*solution.Candidate, error) {
	return s.alternate(n, base, repetition, pkg.VNAASD_VNS_SHARE, pkg.VNAASD_VND_SHARE)
}

func (s *Solver) alternate(n int, base *solution.Candidate, repetition, vnsShare, vndShare int) (*solution.Candidate, error) {
	if repetition < 1 {
		repetition = 1
	}
	perRound := n / repetition
	vnsIterations := perRound * vnsShare / (vnsShare + vndShare)
	vndIterations := perRound - vnsIterations

	for r := 0; r < repetition; r++ {
		base = s.VNS(vnsIterations, base)
		if err := s.validate(base); err != nil {
			return nil, util.WrapErrorf(err, util.ErrInvariantViolation, "round %d: after VNS", r)
		}
		base = s.VND(vndIterations, base)
		if err := s.validate(base); err != nil {
			return nil, util.WrapErrorf(err, util.ErrInvariantViolation, "round %d: after VND", r)
		}
		s.logger.Debug("round finished", zap.Int("round", r), zap.Int("profit", base.Profit()))
	}
	return base, nil
}

// shake perturbs vehicle v of c with intensity derived from the stagnation counter k. An empty
// route is refilled greedily first so the operators have something to work on.
func (s *Solver) shake(c *solution.Candidate, v, k int) {
	if c.Size(v) == 0 {
		s.buildVehicle(c, v)
	}
	s.Mutate(c, v, s.kFor(k))
}

// accept records an improvement of base and reports whether it is also a new optimum.
func (s *Solver) accept(strategy string, it int, base, optimal *solution.Candidate) bool {
	newOptimum := base.BetterThan(optimal)
	s.metrics.Accepted(strategy, newOptimum)
	s.progress.observe(base)
	if newOptimum {
		cost, demand, profit := base.Totals()
		s.logger.Debug("new optimum", zap.String("strategy", strategy), zap.Int("iteration", it),
			zap.Int("profit", profit), zap.Int("demand", demand), zap.Int("cost", cost))
	}
	return newOptimum
}
