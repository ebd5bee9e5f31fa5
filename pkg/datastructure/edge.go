package datastructure

type EdgeID int

const INVALID_EDGE_ID EdgeID = -1

// Edge is an undirected edge stored once in the graph arena. src < dst always holds.
type Edge struct {
	id      EdgeID
	src     int
	dst     int
	cost    int
	demand  int
	profit  int
	closure bool // added by the metric closure, never carries demand/profit
}

func NewEdge(id EdgeID, u, v, cost, demand, profit int, closure bool) Edge {
	if u > v {
		u, v = v, u
	}
	return Edge{id: id, src: u, dst: v, cost: cost, demand: demand, profit: profit, closure: closure}
}

func (e *Edge) GetID() EdgeID {
	return e.id
}

func (e *Edge) GetSrc() int {
	return e.src
}

func (e *Edge) GetDst() int {
	return e.dst
}

// GetOther returns the endpoint opposite to from. If from is not an endpoint, src is returned.
func (e *Edge) GetOther(from int) int {
	if e.src == from {
		return e.dst
	}
	return e.src
}

func (e *Edge) HasEndpoint(v int) bool {
	return e.src == v || e.dst == v
}

func (e *Edge) GetCost() int {
	return e.cost
}

func (e *Edge) GetDemand() int {
	return e.demand
}

func (e *Edge) GetProfit() int {
	return e.profit
}

func (e *Edge) IsClosure() bool {
	return e.closure
}

// IsProfitable reports whether serving the edge changes a vehicle's profit or load.
func (e *Edge) IsProfitable() bool {
	return e.demand > 0 || e.profit > 0
}

// ProfitDemandRatio is only used to rank edges during greedy construction.
func (e *Edge) ProfitDemandRatio() float64 {
	if e.demand == 0 {
		return -1
	}
	return float64(e.profit) / float64(e.demand)
}
