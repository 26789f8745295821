package routingalgorithm

import (
	"context"
	"fmt"

	"lintang/locroute/pkg/datastructure"
	"lintang/locroute/pkg/geo"
	"lintang/locroute/pkg/util"
)

var ErrNodeNotInGraph = fmt.Errorf("node not in graph: %w", util.ErrNotFound)

// Graph read-only view road graph yang dipakai PathFinder.
type Graph interface {
	Node(id int64) (datastructure.GraphNode, bool)
	HasNode(id int64) bool
	// Coordinate false kalau node tidak ada atau koordinatnya tidak diketahui.
	Coordinate(id int64) (geo.Coordinate, bool)
	// VisitOutEdges iterasi outgoing edge ascending target id.
	VisitOutEdges(id int64, fn func(e datastructure.RoadEdge) bool)
}

type Status int

const (
	StatusFound Status = iota
	StatusUnreachable
	StatusBudgetExceeded
)

func (s Status) String() string {
	switch s {
	case StatusFound:
		return "found"
	case StatusUnreachable:
		return "unreachable"
	case StatusBudgetExceeded:
		return "budget_exceeded"
	default:
		return "unknown"
	}
}

type SearchResult struct {
	Status  Status
	Route   datastructure.Route
	Cost    float64
	Settled int
}

func (r SearchResult) Found() bool {
	return r.Status == StatusFound
}

type cameFromPair struct {
	Edge   datastructure.RoadEdge
	NodeID int64
}

// jumlah node yang di settle sebelum cek context lagi
const ctxCheckInterval = 256

type PathFinder struct {
	graph      Graph
	cost       CostFunc
	maxSettled int
}

type PathFinderOption func(*PathFinder)

// WithMaxSettledNodes batas jumlah node yang di settle per search. <= 0 berarti tanpa batas.
func WithMaxSettledNodes(n int) PathFinderOption {
	return func(pf *PathFinder) {
		pf.maxSettled = n
	}
}

func NewPathFinder(g Graph, cost CostFunc, opts ...PathFinderOption) *PathFinder {
	pf := &PathFinder{graph: g, cost: cost}
	for _, opt := range opts {
		opt(pf)
	}
	return pf
}

func NewDistancePathFinder(g Graph, opts ...PathFinderOption) *PathFinder {
	return NewPathFinder(g, DistanceCost, opts...)
}

func NewTimePathFinder(g Graph, opts ...PathFinderOption) *PathFinder {
	return NewPathFinder(g, TimeCost, opts...)
}

// ShortestPath dijkstra dari from ke to. Berhenti begitu to di pop dari priority queue.
// Node dengan cost sama di pop berdasarkan id terkecil, edge direlax ascending target id, dan predecessor
// hanya diganti kalau cost baru lebih kecil (strict), jadi predecessor pertama yang mencapai cost tsb yang dipakai.
// Budget habis (max settled nodes atau ctx done) return StatusBudgetExceeded.
func (pf *PathFinder) ShortestPath(ctx context.Context, from, to int64) (SearchResult, error) {
	if !pf.graph.HasNode(from) {
		return SearchResult{}, fmt.Errorf("%w: source %d", ErrNodeNotInGraph, from)
	}
	if !pf.graph.HasNode(to) {
		return SearchResult{}, fmt.Errorf("%w: target %d", ErrNodeNotInGraph, to)
	}

	pq := NewMinHeap[int64]()
	pq.Insert(PriorityQueueNode[int64]{Rank: 0, Item: from})

	bestCost := map[int64]float64{from: 0}
	cameFrom := make(map[int64]cameFromPair)
	settled := make(map[int64]struct{})

	for pq.Size() > 0 {
		if pf.maxSettled > 0 && len(settled) >= pf.maxSettled {
			return SearchResult{Status: StatusBudgetExceeded, Settled: len(settled)}, nil
		}
		if len(settled)%ctxCheckInterval == 0 && ctx.Err() != nil {
			return SearchResult{Status: StatusBudgetExceeded, Settled: len(settled)}, nil
		}

		current, _ := pq.ExtractMin()
		settled[current.Item] = struct{}{}

		if current.Item == to {
			route, err := pf.reconstruct(from, to, cameFrom)
			if err != nil {
				return SearchResult{}, err
			}
			return SearchResult{
				Status:  StatusFound,
				Route:   route,
				Cost:    current.Rank,
				Settled: len(settled),
			}, nil
		}

		pf.graph.VisitOutEdges(current.Item, func(e datastructure.RoadEdge) bool {
			if _, ok := settled[e.ToNodeID]; ok {
				return true
			}
			c := pf.cost(pf.graph, e)
			if !validCost(c) {
				return true
			}
			newCost := current.Rank + c
			old, ok := bestCost[e.ToNodeID]
			if !ok {
				bestCost[e.ToNodeID] = newCost
				cameFrom[e.ToNodeID] = cameFromPair{e, current.Item}
				pq.Insert(PriorityQueueNode[int64]{Rank: newCost, Item: e.ToNodeID})
			} else if newCost < old {
				bestCost[e.ToNodeID] = newCost
				cameFrom[e.ToNodeID] = cameFromPair{e, current.Item}
				_ = pq.DecreaseKey(PriorityQueueNode[int64]{Rank: newCost, Item: e.ToNodeID})
			}
			return true
		})
	}

	return SearchResult{Status: StatusUnreachable, Settled: len(settled)}, nil
}

// reconstruct jalan mundur lewat predecessor dari to ke from lalu dibalik.
func (pf *PathFinder) reconstruct(from, to int64, cameFrom map[int64]cameFromPair) (datastructure.Route, error) {
	nodes := make([]datastructure.GraphNode, 0)
	edges := make([]datastructure.RoadEdge, 0)

	curr := to
	for {
		n, ok := pf.graph.Node(curr)
		if !ok {
			return datastructure.Route{}, fmt.Errorf("%w: %d", ErrNodeNotInGraph, curr)
		}
		nodes = append(nodes, n)
		if curr == from {
			break
		}
		prev, ok := cameFrom[curr]
		if !ok {
			return datastructure.Route{}, fmt.Errorf("no predecessor for node %d", curr)
		}
		edges = append(edges, prev.Edge)
		curr = prev.NodeID
	}

	util.ReverseG(nodes)
	util.ReverseG(edges)
	return datastructure.Route{Nodes: nodes, Edges: edges}, nil
}
