package solution

import (
	"fmt"
	"slices"
	"strings"

	da "github.com/lintang-b-s/ucarpp/pkg/datastructure"
)

// Limits are the per-vehicle resources: a route is feasible iff demand <= Capacity and
// cost <= TimeBudget.
type Limits struct {
	Capacity   int `validate:"gte=0"`
	TimeBudget int `validate:"gte=0"`
}

// Candidate is one solution: a route per vehicle, all sharing a single taker table. Candidates
// never share state with each other; Clone is a deep copy.
type Candidate struct {
	graph  *da.Graph
	depot  int
	limits Limits

	takers *Takers
	routes []*Route

	journal []undoRecord
	txDepth int
}

func NewCandidate(graph *da.Graph, depot, vehicles int, limits Limits) *Candidate {
	takers := NewTakers(graph.NumberOfEdges())
	routes := make([]*Route, vehicles)
	for v := range routes {
		routes[v] = newRoute(v, depot, graph, takers)
	}
	return &Candidate{
		graph:  graph,
		depot:  depot,
		limits: limits,
		takers: takers,
		routes: routes,
	}
}

func (c *Candidate) GetGraph() *da.Graph {
	return c.graph
}

func (c *Candidate) GetDepot() int {
	return c.depot
}

func (c *Candidate) GetLimits() Limits {
	return c.limits
}

func (c *Candidate) NumberOfVehicles() int {
	return len(c.routes)
}

func (c *Candidate) Route(vehicle int) *Route {
	return c.routes[vehicle]
}

func (c *Candidate) EdgeAt(vehicle, at int) *da.Edge {
	return c.graph.GetEdgeByID(c.routes[vehicle].EdgeAt(at))
}

func (c *Candidate) InsertEdge(e da.EdgeID, vehicle, at int) {
	c.routes[vehicle].Insert(e, at)
	if c.txDepth > 0 {
		c.journal = append(c.journal, undoRecord{vehicle: vehicle, at: at, inserted: true})
	}
}

func (c *Candidate) AppendEdge(e da.EdgeID, vehicle int) {
	c.InsertEdge(e, vehicle, c.routes[vehicle].Size())
}

// InsertPath inserts path so that path[0] ends up at position at.
func (c *Candidate) InsertPath(path []da.EdgeID, vehicle, at int) {
	for i := len(path) - 1; i >= 0; i-- {
		c.InsertEdge(path[i], vehicle, at)
	}
}

func (c *Candidate) RemoveEdge(vehicle, at int) da.EdgeID {
	r := c.routes[vehicle]
	if c.txDepth > 0 {
		e := r.EdgeAt(at)
		c.journal = append(c.journal, undoRecord{vehicle: vehicle, at: at, edge: e, takers: c.takers.Takers(e)})
	}
	return r.Remove(at)
}

func (c *Candidate) RemoveLastEdge(vehicle int) da.EdgeID {
	return c.RemoveEdge(vehicle, c.routes[vehicle].Size()-1)
}

// RemovePath removes n consecutive edges starting at position at.
func (c *Candidate) RemovePath(vehicle, at, n int) {
	for i := 0; i < n; i++ {
		c.RemoveEdge(vehicle, at)
	}
}

// EvaluateInsertion returns the totals vehicle would have with path inserted at position at, and
// whether they are feasible. The candidate is left unchanged.
func (c *Candidate) EvaluateInsertion(path []da.EdgeID, vehicle, at int) (cost, demand, profit int, feasible bool) {
	r := c.routes[vehicle]
	for i := len(path) - 1; i >= 0; i-- {
		r.Insert(path[i], at)
	}
	cost, demand, profit = r.Totals()
	// removals in reverse order of the insertions restore the taker lists exactly
	for range path {
		r.Remove(at)
	}
	feasible = demand <= c.limits.Capacity && cost <= c.limits.TimeBudget
	return
}

func (c *Candidate) Size(vehicle int) int {
	return c.routes[vehicle].Size()
}

func (c *Candidate) TotalSize() int {
	n := 0
	for _, r := range c.routes {
		n += r.Size()
	}
	return n
}

func (c *Candidate) ProfitOf(vehicle int) int {
	return c.routes[vehicle].Profit()
}

func (c *Candidate) CostOf(vehicle int) int {
	return c.routes[vehicle].Cost()
}

func (c *Candidate) DemandOf(vehicle int) int {
	return c.routes[vehicle].Demand()
}

func (c *Candidate) TotalsOf(vehicle int) (cost, demand, profit int) {
	return c.routes[vehicle].Totals()
}

// Totals sums cost, demand and profit over the fleet.
func (c *Candidate) Totals() (cost, demand, profit int) {
	for _, r := range c.routes {
		rc, rd, rp := r.Totals()
		cost += rc
		demand += rd
		profit += rp
	}
	return
}

func (c *Candidate) Profit() int {
	_, _, p := c.Totals()
	return p
}

func (c *Candidate) Cost() int {
	cost, _, _ := c.Totals()
	return cost
}

func (c *Candidate) Demand() int {
	_, d, _ := c.Totals()
	return d
}

func (c *Candidate) IsFeasible(vehicle int) bool {
	cost, demand, _ := c.routes[vehicle].Totals()
	return demand <= c.limits.Capacity && cost <= c.limits.TimeBudget
}

// IsClosed reports whether the route of vehicle is a connected walk from the depot back to it.
func (c *Candidate) IsClosed(vehicle int) bool {
	r := c.routes[vehicle]
	return r.IsConnected() && r.EndVertex() == c.depot
}

// IsRemovable is false only for the credited first occurrence of a demand-bearing edge that
// another vehicle also traverses: removing it would silently move the credit to that vehicle.
func (c *Candidate) IsRemovable(vehicle, at int) bool {
	r := c.routes[vehicle]
	eid := r.EdgeAt(at)
	if c.graph.GetEdgeByID(eid).GetDemand() == 0 {
		return true
	}
	if r.Occurrence(at) > 0 {
		return true
	}
	if !c.takers.IsServer(eid, vehicle) {
		return true
	}
	return !c.takers.TakenByOther(eid, vehicle)
}

func (c *Candidate) IsServer(e da.EdgeID, vehicle int) bool {
	return c.takers.IsServer(e, vehicle)
}

func (c *Candidate) Takers(e da.EdgeID) []int {
	return c.takers.Takers(e)
}

func (c *Candidate) TakenCount(e da.EdgeID) int {
	return c.takers.TakenCount(e)
}

// SetServer hands the credit of e to vehicle. undo restores the exact previous taker order.
func (c *Candidate) SetServer(e da.EdgeID, vehicle int) (undo func(), ok bool) {
	prev := c.takers.Takers(e)
	if !c.takers.SetServer(e, vehicle) {
		return func() {}, false
	}
	return func() { c.takers.restore(e, prev) }, true
}

// BetterThan orders candidates by profit (higher), then demand (lower), then cost (lower).
func (c *Candidate) BetterThan(o *Candidate) bool {
	cCost, cDemand, cProfit := c.Totals()
	oCost, oDemand, oProfit := o.Totals()
	if cProfit != oProfit {
		return cProfit > oProfit
	}
	if cDemand != oDemand {
		return cDemand < oDemand
	}
	return cCost < oCost
}

func (c *Candidate) Clone() *Candidate {
	takers := c.takers.Clone()
	routes := make([]*Route, len(c.routes))
	for v, r := range c.routes {
		routes[v] = r.clone(takers)
	}
	return &Candidate{
		graph:  c.graph,
		depot:  c.depot,
		limits: c.limits,
		takers: takers,
		routes: routes,
	}
}

// Equal compares routes and taker lists.
func (c *Candidate) Equal(o *Candidate) bool {
	if c.depot != o.depot || len(c.routes) != len(o.routes) {
		return false
	}
	for v := range c.routes {
		if !slices.Equal(c.routes[v].edges, o.routes[v].edges) {
			return false
		}
	}
	return c.takers.Equal(o.takers)
}

func (c *Candidate) String() string {
	var sb strings.Builder
	for v, r := range c.routes {
		fmt.Fprintf(&sb, "%d:\t%s\n", v+1, r.String())
	}
	return sb.String()
}
