package solution

import (
	"fmt"
	"slices"
	"strings"

	da "github.com/lintang-b-s/ucarpp/pkg/datastructure"
)

// Route is the ordered edge sequence of one vehicle. Edges may repeat (deadheading); only the
// first occurrence of an edge served by this vehicle is credited. Aggregates are recomputed on
// every call.
type Route struct {
	vehicle int
	depot   int
	edges   []da.EdgeID

	graph  *da.Graph
	takers *Takers
}

func newRoute(vehicle, depot int, graph *da.Graph, takers *Takers) *Route {
	return &Route{
		vehicle: vehicle,
		depot:   depot,
		edges:   make([]da.EdgeID, 0),
		graph:   graph,
		takers:  takers,
	}
}

func (r *Route) GetVehicle() int {
	return r.vehicle
}

func (r *Route) Size() int {
	return len(r.edges)
}

func (r *Route) EdgeAt(i int) da.EdgeID {
	return r.edges[i]
}

// Edges returns a copy of the edge sequence.
func (r *Route) Edges() []da.EdgeID {
	return slices.Clone(r.edges)
}

// Occurrence counts how many times the edge at position i appears before i.
func (r *Route) Occurrence(i int) int {
	return r.countBefore(r.edges[i], i)
}

func (r *Route) countBefore(e da.EdgeID, at int) int {
	n := 0
	for _, x := range r.edges[:at] {
		if x == e {
			n++
		}
	}
	return n
}

// Insert splices e in front of position at (at == Size() appends).
func (r *Route) Insert(e da.EdgeID, at int) {
	if at < 0 || at > len(r.edges) {
		panic(fmt.Sprintf("route %d: insert position %d out of range [0,%d]", r.vehicle, at, len(r.edges)))
	}
	r.takers.MarkTaken(e, r.vehicle, r.countBefore(e, at))
	r.edges = slices.Insert(r.edges, at, e)
}

func (r *Route) Append(e da.EdgeID) {
	r.Insert(e, len(r.edges))
}

// Remove cuts the edge at position at and returns it.
func (r *Route) Remove(at int) da.EdgeID {
	e := r.edges[at]
	r.takers.Unmark(e, r.vehicle, r.countBefore(e, at))
	r.edges = slices.Delete(r.edges, at, at+1)
	return e
}

func (r *Route) RemoveLast() da.EdgeID {
	return r.Remove(len(r.edges) - 1)
}

// credited marks the positions whose demand and profit count for this vehicle: the vehicle is
// the edge's server and the position is the first occurrence of the edge in the route.
func (r *Route) credited() []bool {
	mask := make([]bool, len(r.edges))
	seen := make(map[da.EdgeID]struct{}, len(r.edges))
	for i, e := range r.edges {
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		mask[i] = r.takers.IsServer(e, r.vehicle)
	}
	return mask
}

func (r *Route) IsCredited(i int) bool {
	return r.Occurrence(i) == 0 && r.takers.IsServer(r.edges[i], r.vehicle)
}

// Totals returns cost, demand and profit in a single pass.
func (r *Route) Totals() (cost, demand, profit int) {
	mask := r.credited()
	for i, eid := range r.edges {
		e := r.graph.GetEdgeByID(eid)
		cost += e.GetCost()
		if mask[i] {
			demand += e.GetDemand()
			profit += e.GetProfit()
		}
	}
	return
}

func (r *Route) Cost() int {
	cost := 0
	for _, eid := range r.edges {
		cost += r.graph.GetEdgeByID(eid).GetCost()
	}
	return cost
}

func (r *Route) Demand() int {
	_, demand, _ := r.Totals()
	return demand
}

func (r *Route) Profit() int {
	_, _, profit := r.Totals()
	return profit
}

// VertexAt returns the vertex the route is at before traversing edge i. VertexAt(Size()) is the
// end vertex.
func (r *Route) VertexAt(i int) int {
	v := r.depot
	for _, eid := range r.edges[:i] {
		v = r.graph.GetEdgeByID(eid).GetOther(v)
	}
	return v
}

func (r *Route) EndVertex() int {
	return r.VertexAt(len(r.edges))
}

// DirectionAt is true when edge i is traversed from its canonical source to its destination.
func (r *Route) DirectionAt(i int) bool {
	return r.VertexAt(i) == r.graph.GetEdgeByID(r.edges[i]).GetSrc()
}

// Vertices replays the route from the depot: Size()+1 vertices.
func (r *Route) Vertices() []int {
	vs := make([]int, 0, len(r.edges)+1)
	v := r.depot
	vs = append(vs, v)
	for _, eid := range r.edges {
		v = r.graph.GetEdgeByID(eid).GetOther(v)
		vs = append(vs, v)
	}
	return vs
}

// IsConnected checks that consecutive edges share the vertex the route is at.
func (r *Route) IsConnected() bool {
	v := r.depot
	for _, eid := range r.edges {
		e := r.graph.GetEdgeByID(eid)
		if !e.HasEndpoint(v) {
			return false
		}
		v = e.GetOther(v)
	}
	return true
}

func (r *Route) clone(takers *Takers) *Route {
	return &Route{
		vehicle: r.vehicle,
		depot:   r.depot,
		edges:   slices.Clone(r.edges),
		graph:   r.graph,
		takers:  takers,
	}
}

// String prints traversals as "( u v )", credited profitable ones as "[ u v ]".
func (r *Route) String() string {
	var sb strings.Builder
	mask := r.credited()
	v := r.depot
	for i, eid := range r.edges {
		e := r.graph.GetEdgeByID(eid)
		next := e.GetOther(v)
		if mask[i] && e.GetProfit() > 0 {
			fmt.Fprintf(&sb, "[ %d %d ] ", v, next)
		} else {
			fmt.Fprintf(&sb, "( %d %d ) ", v, next)
		}
		v = next
	}
	cost, demand, profit := r.Totals()
	fmt.Fprintf(&sb, " P: %d D: %d C: %d", profit, demand, cost)
	return sb.String()
}
