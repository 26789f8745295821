package roadgraph

import (
	"maps"
	"slices"
	"sort"

	"lintang/locroute/pkg/datastructure"
	"lintang/locroute/pkg/geo"

	"github.com/dhconnelly/rtreego"
)

// Graph road graph immutable hasil Builder.Build. Aman dibaca banyak goroutine tanpa lock.
type Graph struct {
	nodes     map[int64]datastructure.GraphNode
	adjacency map[int64][]datastructure.RoadEdge // sorted by ToNodeID
	nodeIDs   []int64
	routable  []int64
	edgeCount int
	arcCount  int
	tree      *rtreego.Rtree
}

func newGraph(nodes map[int64]*datastructure.GraphNode, adjacency map[int64]map[int64]datastructure.RoadEdge) *Graph {
	g := &Graph{
		nodes:     make(map[int64]datastructure.GraphNode, len(nodes)),
		adjacency: make(map[int64][]datastructure.RoadEdge, len(adjacency)),
		nodeIDs:   make([]int64, 0, len(nodes)),
	}

	for id, n := range nodes {
		g.nodes[id] = *n
		g.nodeIDs = append(g.nodeIDs, id)
	}
	slices.Sort(g.nodeIDs)

	type pair struct{ u, v int64 }
	undirected := make(map[pair]struct{})
	for from, out := range adjacency {
		edges := make([]datastructure.RoadEdge, 0, len(out))
		for to, e := range out {
			edges = append(edges, e)
			p := pair{from, to}
			if to < from {
				p = pair{to, from}
			}
			undirected[p] = struct{}{}
		}
		sort.Slice(edges, func(i, j int) bool {
			return edges[i].ToNodeID < edges[j].ToNodeID
		})
		g.adjacency[from] = edges
		g.arcCount += len(edges)
	}
	g.edgeCount = len(undirected)

	spatials := make([]rtreego.Spatial, 0)
	for _, id := range g.nodeIDs {
		n := g.nodes[id]
		if !n.HasCoordinate() || g.OutDegree(id) == 0 {
			continue
		}
		g.routable = append(g.routable, id)
		spatials = append(spatials, &nodePoint{
			id:       id,
			location: rtreego.Point{n.Coord.Lat(), n.Coord.Lon()},
		})
	}
	g.tree = rtreego.NewTree(2, 25, 50, spatials...) // 2 dimension, 25 min entries dan 50 max entries
	return g
}

func (g *Graph) Node(id int64) (datastructure.GraphNode, bool) {
	n, ok := g.nodes[id]
	if !ok {
		return datastructure.GraphNode{}, false
	}
	n.Tags = maps.Clone(n.Tags)
	return n, true
}

func (g *Graph) HasNode(id int64) bool {
	_, ok := g.nodes[id]
	return ok
}

// Neighbors id node yang bisa dicapai lewat satu outgoing edge, ascending.
func (g *Graph) Neighbors(id int64) []int64 {
	out := g.adjacency[id]
	neighbors := make([]int64, len(out))
	for i, e := range out {
		neighbors[i] = e.ToNodeID
	}
	return neighbors
}

func (g *Graph) Edge(from, to int64) (datastructure.RoadEdge, bool) {
	out := g.adjacency[from]
	i := sort.Search(len(out), func(i int) bool {
		return out[i].ToNodeID >= to
	})
	if i < len(out) && out[i].ToNodeID == to {
		return out[i], true
	}
	return datastructure.RoadEdge{}, false
}

// OutEdges copy outgoing edge dari node id, sorted by target id.
func (g *Graph) OutEdges(id int64) []datastructure.RoadEdge {
	return slices.Clone(g.adjacency[id])
}

// VisitOutEdges iterasi outgoing edge tanpa copy. berhenti kalau fn return false.
func (g *Graph) VisitOutEdges(id int64, fn func(e datastructure.RoadEdge) bool) {
	for _, e := range g.adjacency[id] {
		if !fn(e) {
			return
		}
	}
}

// OutDegree jumlah outgoing edge node id.
func (g *Graph) OutDegree(id int64) int {
	return len(g.adjacency[id])
}

// IsRoutable node punya koordinat dan minimal satu outgoing edge.
func (g *Graph) IsRoutable(id int64) bool {
	n, ok := g.nodes[id]
	return ok && n.HasCoordinate() && g.OutDegree(id) > 0
}

func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount jumlah koneksi antar pasangan node, dua arah dihitung sekali.
func (g *Graph) EdgeCount() int {
	return g.edgeCount
}

func (g *Graph) DirectedEdgeCount() int {
	return g.arcCount
}

func (g *Graph) RoutableNodeCount() int {
	return len(g.routable)
}

// NodeIDs semua node id, ascending.
func (g *Graph) NodeIDs() []int64 {
	return slices.Clone(g.nodeIDs)
}

// Coordinate koordinat node. false kalau node tidak ada atau synthesized.
func (g *Graph) Coordinate(id int64) (geo.Coordinate, bool) {
	n, ok := g.nodes[id]
	if !ok || !n.HasCoordinate() {
		return geo.Coordinate{}, false
	}
	return n.Coord, true
}
