package datastructure

import (
	"math"

	"lintang/locroute/pkg/geo"
	"lintang/locroute/pkg/util"

	"github.com/twpayne/go-polyline"
)

// Route hasil shortest path. Edges[i] menghubungkan Nodes[i] ke Nodes[i+1].
type Route struct {
	Nodes []GraphNode
	Edges []RoadEdge
}

func (r Route) Empty() bool {
	return len(r.Nodes) == 0
}

func (r Route) NodeIDs() []int64 {
	ids := make([]int64, len(r.Nodes))
	for i, n := range r.Nodes {
		ids[i] = n.ID
	}
	return ids
}

// TotalDistanceKm jumlah haversine distance antar node berurutan.
func (r Route) TotalDistanceKm() float64 {
	dist := 0.0
	for i := 1; i < len(r.Nodes); i++ {
		prev, curr := r.Nodes[i-1], r.Nodes[i]
		if prev.Synthesized || curr.Synthesized {
			return math.Inf(1)
		}
		dist += geo.HaversineDistance(prev.Coord, curr.Coord)
	}
	return dist
}

// TotalTimeMinutes jumlah distance/speed setiap edge.
func (r Route) TotalTimeMinutes() float64 {
	eta := 0.0
	for i, e := range r.Edges {
		if i+1 >= len(r.Nodes) {
			return math.Inf(1)
		}
		eta += TravelTimeMinutes(r.Nodes[i], r.Nodes[i+1], e.SpeedMph)
	}
	return eta
}

// TravelTimeMinutes waktu tempuh dari -> to dengan kecepatan speedMph. +Inf kalau tidak bisa dihitung.
func TravelTimeMinutes(from, to GraphNode, speedMph float64) float64 {
	if from.Synthesized || to.Synthesized || !(speedMph > 0) || math.IsInf(speedMph, 0) {
		return math.Inf(1)
	}
	distKm := geo.HaversineDistance(from.Coord, to.Coord)
	speedKmh := util.MilesToKm(speedMph)
	return distKm / speedKmh * 60
}

func (r Route) Coordinates() []geo.Coordinate {
	coords := make([]geo.Coordinate, 0, len(r.Nodes))
	for _, n := range r.Nodes {
		if n.Synthesized {
			continue
		}
		coords = append(coords, n.Coord)
	}
	return coords
}

// Polyline encoded polyline (google polyline algorithm) dari node route.
func (r Route) Polyline() string {
	coords := make([][]float64, 0, len(r.Nodes))
	for _, c := range r.Coordinates() {
		coords = append(coords, []float64{c.Lat(), c.Lon()})
	}
	return string(polyline.EncodeCoords(coords))
}
