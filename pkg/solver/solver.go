package solver

import (
	"io"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/lintang-b-s/ucarpp/pkg"
	da "github.com/lintang-b-s/ucarpp/pkg/datastructure"
	"github.com/lintang-b-s/ucarpp/pkg/metrics"
	"github.com/lintang-b-s/ucarpp/pkg/solution"
	"github.com/lintang-b-s/ucarpp/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"
	"golang.org/x/time/rate"
)

const statusLogInterval = 5 * time.Second

// Params are the knobs of the neighborhood search.
type Params struct {
	Iterations        int     `validate:"gte=0"`
	KMax              int     `validate:"gte=1"`
	Xi                float64 `validate:"gt=0"`
	Seed              uint64
	Steepness         float64 `validate:"gte=0"`
	ReconnectMaxEdges int     `validate:"gte=0"`
	Repetition        int     `validate:"gte=1"`
	Construction      string  `validate:"oneof=sequential parallel"`
}

func DefaultParams() Params {
	return Params{
		Iterations:        pkg.DEFAULT_ITERATIONS,
		KMax:              pkg.DEFAULT_K_MAX,
		Xi:                pkg.DEFAULT_XI,
		Seed:              1,
		Steepness:         pkg.DEFAULT_STEEPNESS,
		ReconnectMaxEdges: pkg.DEFAULT_RECONNECT_MAX_EDGES,
		Repetition:        pkg.DEFAULT_REPETITION,
		Construction:      pkg.CONSTRUCTION_SEQUENTIAL,
	}
}

// ParamsFromViper reads the SEARCH_* keys, falling back to DefaultParams.
func ParamsFromViper() Params {
	d := DefaultParams()
	viper.SetDefault("SEARCH_ITERATIONS", d.Iterations)
	viper.SetDefault("SEARCH_K_MAX", d.KMax)
	viper.SetDefault("SEARCH_XI", d.Xi)
	viper.SetDefault("SEARCH_SEED", d.Seed)
	viper.SetDefault("SEARCH_STEEPNESS", d.Steepness)
	viper.SetDefault("SEARCH_RECONNECT_MAX_EDGES", d.ReconnectMaxEdges)
	viper.SetDefault("SEARCH_REPETITION", d.Repetition)
	viper.SetDefault("SEARCH_CONSTRUCTION", d.Construction)

	return Params{
		Iterations:        viper.GetInt("SEARCH_ITERATIONS"),
		KMax:              viper.GetInt("SEARCH_K_MAX"),
		Xi:                viper.GetFloat64("SEARCH_XI"),
		Seed:              viper.GetUint64("SEARCH_SEED"),
		Steepness:         viper.GetFloat64("SEARCH_STEEPNESS"),
		ReconnectMaxEdges: viper.GetInt("SEARCH_RECONNECT_MAX_EDGES"),
		Repetition:        viper.GetInt("SEARCH_REPETITION"),
		Construction:      viper.GetString("SEARCH_CONSTRUCTION"),
	}
}

func (p Params) Validate() error {
	if err := util.ValidateStruct(p); err != nil {
		return util.WrapErrorf(err, util.ErrBadParamInput, "invalid search params")
	}
	return nil
}

// Solver searches routes for one instance. A Solver is not safe for concurrent use: run
// independent searches on independent solvers (see SolveMultiStart).
type Solver struct {
	graph    *da.Graph
	depot    int
	vehicles int
	limits   solution.Limits
	params   Params

	rng      *rand.Rand
	logger   *zap.Logger
	metrics  *metrics.SearchMetrics
	progress *progressObserver
	runID    string

	statusLog rate.Sometimes
}

type Option func(*Solver)

func WithMetrics(m *metrics.SearchMetrics) Option {
	return func(s *Solver) {
		s.metrics = m
	}
}

// WithProgress writes one line per accepted move of VNS/VND to w. Solvers sharing the option
// share the writer safely.
func WithProgress(w io.Writer) Option {
	if w == nil {
		return func(*Solver) {}
	}
	observer := newProgressObserver(w)
	return func(s *Solver) {
		s.progress = observer
	}
}

func NewSolver(graph *da.Graph, depot, vehicles int, limits solution.Limits, params Params, logger *zap.Logger,
	opts ...Option) (*Solver, error) {
	if !graph.IsClosed() {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "graph closure has not been computed")
	}
	if depot < 0 || depot >= graph.NumberOfVertices() {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "depot %d out of range", depot)
	}
	if vehicles < 1 {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "at least one vehicle is required, got %d", vehicles)
	}
	if err := util.ValidateStruct(limits); err != nil {
		return nil, util.WrapErrorf(err, util.ErrBadParamInput, "invalid vehicle limits")
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Solver{
		graph:    graph,
		depot:    depot,
		vehicles: vehicles,
		limits:   limits,
		params:   params,
		rng:      rand.New(rand.NewSource(params.Seed)),
		runID:    uuid.NewString(),

		statusLog: rate.Sometimes{Interval: statusLogInterval},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logger.With(zap.String("run_id", s.runID))
	return s, nil
}

func (s *Solver) GetRunID() string {
	return s.runID
}

func (s *Solver) GetParams() Params {
	return s.params
}

func (s *Solver) newCandidate() *solution.Candidate {
	return solution.NewCandidate(s.graph, s.depot, s.vehicles, s.limits)
}

// Solve builds the greedy initial solution, improves it with the named strategy and applies the
// closing optimization pass. repetition <= 0 uses the configured repetition.
func (s *Solver) Solve(strategy string, repetition int) (*solution.Candidate, error) {
	strat, err := ParseStrategy(strategy)
	if err != nil {
		return nil, err
	}
	if strat.repetition > 0 {
		repetition = strat.repetition
	}
	if repetition <= 0 {
		repetition = s.params.Repetition
	}

	s.logger.Info("building initial solution", zap.String("construction", s.params.Construction))
	initial := s.BuildInitial()
	s.logSolution("initial solution", initial)
	if err := s.validate(initial); err != nil {
		return nil, err
	}

	s.logger.Info("starting neighborhood search", zap.String("strategy", strat.name),
		zap.Int("iterations", s.params.Iterations), zap.Int("repetition", repetition))

	var best *solution.Candidate
	switch strat.name {
	case pkg.STRATEGY_VNS:
		best = s.VNS(s.params.Iterations, initial)
	case pkg.STRATEGY_VND:
		best = s.VND(s.params.Iterations, initial)
	case pkg.STRATEGY_VNASD:
		best, err = s.VNASD(s.params.Iterations, initial, repetition)
	case pkg.STRATEGY_VNAASD:
		best, err = s.VNAASD(s.params.Iterations, initial, repetition)
	}
	if err != nil {
		return nil, err
	}

	best = s.OptimizeSolution(best)
	if err := s.validate(best); err != nil {
		return nil, err
	}

	s.metrics.SetBestProfit(best.Profit())
	s.logSolution("search finished", best)
	return best, nil
}

// validate checks the round-boundary invariants: every route is feasible and closed at the depot.
func (s *Solver) validate(c *solution.Candidate) error {
	for v := 0; v < c.NumberOfVehicles(); v++ {
		if !c.IsFeasible(v) {
			s.metrics.InvariantViolated()
			cost, demand, _ := c.TotalsOf(v)
			return util.WrapErrorf(nil, util.ErrInvariantViolation,
				"vehicle %d infeasible: demand %d (capacity %d), cost %d (time budget %d)",
				v, demand, s.limits.Capacity, cost, s.limits.TimeBudget)
		}
		if !c.IsClosed(v) {
			s.metrics.InvariantViolated()
			return util.WrapErrorf(nil, util.ErrInvariantViolation, "vehicle %d route is not closed at depot %d",
				v, s.depot)
		}
	}
	return nil
}

func (s *Solver) logSolution(msg string, c *solution.Candidate) {
	cost, demand, profit := c.Totals()
	s.logger.Info(msg, zap.Int("profit", profit), zap.Int("demand", demand), zap.Int("cost", cost))
}

// logStatus reports the search state at most once per statusLogInterval.
func (s *Solver) logStatus(strategy string, it int, base, optimal *solution.Candidate) {
	s.statusLog.Do(func() {
		s.logger.Info("search status", zap.String("strategy", strategy), zap.Int("iteration", it),
			zap.Int("base_profit", base.Profit()), zap.Int("best_profit", optimal.Profit()))
	})
}

// kFor is the shaking intensity for stagnation counter k.
func (s *Solver) kFor(k int) int {
	n := int(math.Ceil(s.params.Xi * float64(k+1)))
	if n < 1 {
		return 1
	}
	return n
}
