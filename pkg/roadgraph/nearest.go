package roadgraph

import (
	"math"

	"lintang/locroute/pkg/datastructure"
	"lintang/locroute/pkg/geo"

	"github.com/dhconnelly/rtreego"
)

const pointTol = 1e-9

type nodePoint struct {
	id       int64
	location rtreego.Point
}

func (p *nodePoint) Bounds() rtreego.Rect {
	return p.location.ToRect(pointTol)
}

// NearestRoutableNode node routable dengan haversine distance terkecil ke coord. kalau jaraknya sama, ambil id terkecil.
// rtree dipakai buat cari kandidat (euclidean lat/lon), lalu semua node di dalam spherical cap
// radius haversine kandidat dicek satu per satu.
func (g *Graph) NearestRoutableNode(coord geo.Coordinate) (datastructure.GraphNode, bool) {
	if len(g.routable) == 0 {
		return datastructure.GraphNode{}, false
	}

	query := rtreego.Point{coord.Lat(), coord.Lon()}
	candidate, ok := g.tree.NearestNeighbor(query).(*nodePoint)
	if !ok || candidate == nil {
		return g.nearestLinear(coord)
	}
	radius := geo.HaversineDistance(coord, g.nodes[candidate.id].Coord)

	box, ok := geo.BoundingBoxAround(coord, radius)
	if !ok {
		return g.nearestLinear(coord)
	}
	rect, err := rtreego.NewRectFromPoints(rtreego.Point{box.MinLat, box.MinLon}, rtreego.Point{box.MaxLat, box.MaxLon})
	if err != nil {
		return g.nearestLinear(coord)
	}

	bestID := candidate.id
	best := radius
	for _, s := range g.tree.SearchIntersect(rect) {
		p := s.(*nodePoint)
		d := geo.HaversineDistance(coord, g.nodes[p.id].Coord)
		if d < best || (d == best && p.id < bestID) {
			best = d
			bestID = p.id
		}
	}
	return g.Node(bestID)
}

// nearestLinear scan semua node routable (ascending id). dipakai kalau bounding box melewati kutub/antimeridian.
func (g *Graph) nearestLinear(coord geo.Coordinate) (datastructure.GraphNode, bool) {
	bestID := int64(0)
	best := math.Inf(1)
	found := false
	for _, id := range g.routable {
		d := geo.HaversineDistance(coord, g.nodes[id].Coord)
		if d < best {
			best = d
			bestID = id
			found = true
			if d == 0 {
				break
			}
		}
	}
	if !found {
		return datastructure.GraphNode{}, false
	}
	return g.Node(bestID)
}
