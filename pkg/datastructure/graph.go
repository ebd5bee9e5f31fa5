package datastructure

import (
	"github.com/lintang-b-s/ucarpp/pkg"
	"github.com/lintang-b-s/ucarpp/pkg/util"
)

// Graph is the edge catalog of an instance. Edges live in one arena and are referenced by EdgeID
// from adjacency lists, routes and taker tables. After CompleteClosure every pair of vertices in
// the same connected component resolves to exactly one edge in O(1).
type Graph struct {
	numVertices int
	edges       []Edge
	adjList     [][]EdgeID
	pairIndex   []EdgeID // numVertices*numVertices, symmetric
	closed      bool
}

func NewGraph(numVertices int) *Graph {
	pairIndex := make([]EdgeID, numVertices*numVertices)
	for i := range pairIndex {
		pairIndex[i] = INVALID_EDGE_ID
	}
	return &Graph{
		numVertices: numVertices,
		edges:       make([]Edge, 0),
		adjList:     make([][]EdgeID, numVertices),
		pairIndex:   pairIndex,
	}
}

// AddEdge stores a physical edge in the arena and in both endpoints adjacency lists.
func (g *Graph) AddEdge(src, dst, cost, demand, profit int) (EdgeID, error) {
	if !g.validVertex(src) || !g.validVertex(dst) {
		return INVALID_EDGE_ID, util.WrapErrorf(nil, util.ErrBadParamInput,
			"edge (%d,%d): vertex out of range [0,%d)", src, dst, g.numVertices)
	}
	if src == dst {
		return INVALID_EDGE_ID, util.WrapErrorf(nil, util.ErrBadParamInput, "edge (%d,%d): self loop", src, dst)
	}
	if cost < 0 || demand < 0 || profit < 0 {
		return INVALID_EDGE_ID, util.WrapErrorf(nil, util.ErrBadParamInput,
			"edge (%d,%d): negative cost, demand or profit", src, dst)
	}
	if g.pairIndex[src*g.numVertices+dst] != INVALID_EDGE_ID {
		return INVALID_EDGE_ID, util.WrapErrorf(nil, util.ErrBadParamInput, "edge (%d,%d): duplicate", src, dst)
	}
	if g.closed {
		return INVALID_EDGE_ID, util.WrapErrorf(nil, util.ErrBadParamInput,
			"edge (%d,%d): graph is read-only after closure", src, dst)
	}

	return g.addEdge(src, dst, cost, demand, profit, false), nil
}

func (g *Graph) addEdge(src, dst, cost, demand, profit int, closure bool) EdgeID {
	id := EdgeID(len(g.edges))
	g.edges = append(g.edges, NewEdge(id, src, dst, cost, demand, profit, closure))
	g.adjList[src] = append(g.adjList[src], id)
	g.adjList[dst] = append(g.adjList[dst], id)
	g.pairIndex[src*g.numVertices+dst] = id
	g.pairIndex[dst*g.numVertices+src] = id
	return id
}

/*
CompleteClosure runs Dijkstra (by cost) from every vertex over the physical edges and adds a
zero-demand, zero-profit edge weighted with the shortest path cost for every pair of vertices
that has no direct edge. Direct edges are kept even if a cheaper path exists.

time complexity: O(V * (V+E) log V)
*/
func (g *Graph) CompleteClosure() {
	if g.closed {
		return
	}

	numPhysical := len(g.edges)
	dist := make([]int, g.numVertices)
	heapNodes := make([]*HeapNode[int], g.numVertices)
	pq := NewFourAryHeap[int]()
	pq.Preallocate(g.numVertices)

	for s := 0; s < g.numVertices; s++ {
		g.shortestPaths(s, EdgeID(numPhysical), dist, heapNodes, pq)

		// pairs are handled once, from their smaller endpoint
		for v := s + 1; v < g.numVertices; v++ {
			if g.pairIndex[s*g.numVertices+v] != INVALID_EDGE_ID || dist[v] >= pkg.INF_COST {
				continue
			}
			g.addEdge(s, v, dist[v], 0, 0, true)
		}
	}

	g.closed = true
}

func (g *Graph) shortestPaths(s int, numPhysical EdgeID, dist []int, heapNodes []*HeapNode[int],
	pq *MinHeap[int]) {
	for v := range dist {
		dist[v] = pkg.INF_COST
		heapNodes[v] = nil
	}
	pq.Clear()

	dist[s] = 0
	heapNodes[s] = NewHeapNode(0, s)
	pq.Insert(heapNodes[s])

	for !pq.IsEmpty() {
		node, _ := pq.ExtractMin()
		u := node.GetItem()

		for _, eid := range g.adjList[u] {
			if eid >= numPhysical {
				continue
			}
			e := &g.edges[eid]
			v := e.GetOther(u)
			newDist := dist[u] + e.GetCost()
			if newDist >= dist[v] {
				continue
			}

			dist[v] = newDist
			if heapNodes[v] != nil && heapNodes[v].InHeap() {
				pq.DecreaseKey(heapNodes[v], newDist)
			} else {
				heapNodes[v] = NewHeapNode(newDist, v)
				pq.Insert(heapNodes[v])
			}
		}
	}
}

// GetEdgeID resolves the edge joining u and v.
func (g *Graph) GetEdgeID(u, v int) (EdgeID, error) {
	if !g.validVertex(u) || !g.validVertex(v) {
		return INVALID_EDGE_ID, util.WrapErrorf(nil, util.ErrNotFound, "edge (%d,%d): vertex out of range", u, v)
	}
	id := g.pairIndex[u*g.numVertices+v]
	if id == INVALID_EDGE_ID {
		return INVALID_EDGE_ID, util.WrapErrorf(nil, util.ErrNotFound, "edge (%d,%d) not found", u, v)
	}
	return id, nil
}

func (g *Graph) GetEdge(u, v int) (*Edge, error) {
	id, err := g.GetEdgeID(u, v)
	if err != nil {
		return nil, err
	}
	return &g.edges[id], nil
}

func (g *Graph) GetEdgeByID(id EdgeID) *Edge {
	return &g.edges[id]
}

// GetAdjList returns the edges incident to u. The slice is owned by the graph.
func (g *Graph) GetAdjList(u int) []EdgeID {
	return g.adjList[u]
}

func (g *Graph) GetEdges() []Edge {
	return g.edges
}

func (g *Graph) NumberOfVertices() int {
	return g.numVertices
}

func (g *Graph) NumberOfEdges() int {
	return len(g.edges)
}

func (g *Graph) IsClosed() bool {
	return g.closed
}

func (g *Graph) validVertex(v int) bool {
	return v >= 0 && v < g.numVertices
}
