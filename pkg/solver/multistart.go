package solver

import (
	"runtime"

	"github.com/lintang-b-s/ucarpp/pkg/concurrent"
	da "github.com/lintang-b-s/ucarpp/pkg/datastructure"
	"github.com/lintang-b-s/ucarpp/pkg/solution"
	"github.com/lintang-b-s/ucarpp/pkg/util"
	"go.uber.org/zap"
)

// RunResult is the outcome of one independent search.
type RunResult struct {
	Seed  uint64
	RunID string
	Best  *solution.Candidate
	Err   error
}

/*
SolveMultiStart runs starts independent searches with seeds params.Seed, params.Seed+1, ... on a
worker pool of workers goroutines (GOMAXPROCS when workers <= 0). Every run owns its solver and
candidates; the graph is shared read-only. The best result is returned, ties going to the lowest
seed. Any failed run fails the whole call.
*/
func SolveMultiStart(graph *da.Graph, depot, vehicles int, limits solution.Limits, params Params,
	logger *zap.Logger, strategy string, repetition, starts, workers int, opts ...Option) (RunResult, error) {
	if starts < 1 {
		return RunResult{}, util.WrapErrorf(nil, util.ErrBadParamInput, "at least one start is required, got %d", starts)
	}
	if _, err := ParseStrategy(strategy); err != nil {
		return RunResult{}, err
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	seeds := make([]uint64, starts)
	for i := range seeds {
		seeds[i] = params.Seed + uint64(i)
	}

	results := concurrent.Run(workers, seeds, func(worker int, seed uint64) RunResult {
		p := params
		p.Seed = seed
		s, err := NewSolver(graph, depot, vehicles, limits, p,
			logger.With(zap.Int("worker", worker), zap.Uint64("seed", seed)), opts...)
		if err != nil {
			return RunResult{Seed: seed, Err: err}
		}
		best, err := s.Solve(strategy, repetition)
		return RunResult{Seed: seed, RunID: s.GetRunID(), Best: best, Err: err}
	})

	var best RunResult
	for _, res := range results {
		if res.Err != nil {
			return RunResult{}, util.WrapErrorf(res.Err, util.Code(res.Err), "run with seed %d failed", res.Seed)
		}
		if best.Best == nil || res.Best.BetterThan(best.Best) {
			best = res
		}
	}

	cost, demand, profit := best.Best.Totals()
	logger.Info("multi-start finished", zap.Int("starts", starts), zap.Uint64("best_seed", best.Seed),
		zap.Int("profit", profit), zap.Int("demand", demand), zap.Int("cost", cost))
	return best, nil
}
