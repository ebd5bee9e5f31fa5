package pkg

import "math"

const (
	INF_COST int = math.MaxInt / 4
)

// search strategy selectors accepted by the solver and the cli
const (
	STRATEGY_VNS    = "VNS"
	STRATEGY_VND    = "VND"
	STRATEGY_VNASD  = "VNASD"
	STRATEGY_VNAASD = "VNAASD"
)

const (
	CONSTRUCTION_SEQUENTIAL = "sequential"
	CONSTRUCTION_PARALLEL   = "parallel"
)

const (
	DEFAULT_ITERATIONS          = 1000
	DEFAULT_K_MAX               = 10
	DEFAULT_XI                  = 0.5
	DEFAULT_STEEPNESS           = 8.0
	DEFAULT_REPETITION          = 4
	DEFAULT_RECONNECT_MAX_EDGES = 0 // 0 = unbounded

	// VNAASD gives VNS three quarters of every round
	VNAASD_VNS_SHARE = 3
	VNAASD_VND_SHARE = 1
)

// instances solved in "modified" mode override capacity and time limit.
const (
	MDF_CAPACITY   = 30
	MDF_TIME_LIMIT = 40
)
