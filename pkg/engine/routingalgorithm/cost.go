package routingalgorithm

import (
	"math"

	"lintang/locroute/pkg/datastructure"
	"lintang/locroute/pkg/geo"
	"lintang/locroute/pkg/util"
)

// CostFunc bobot non-negatif sebuah edge. +Inf kalau edge tidak bisa dilewati atau costnya tidak bisa dihitung.
type CostFunc func(g Graph, e datastructure.RoadEdge) float64

// DistanceCost haversine distance (km) antar ujung edge.
func DistanceCost(g Graph, e datastructure.RoadEdge) float64 {
	from, ok := g.Coordinate(e.FromNodeID)
	if !ok {
		return math.Inf(1)
	}
	to, ok := g.Coordinate(e.ToNodeID)
	if !ok {
		return math.Inf(1)
	}
	return geo.HaversineDistance(from, to)
}

// TimeCost waktu tempuh edge dalam menit, distance / effective speed.
func TimeCost(g Graph, e datastructure.RoadEdge) float64 {
	if !(e.SpeedMph > 0) || math.IsInf(e.SpeedMph, 0) {
		return math.Inf(1)
	}
	dist := DistanceCost(g, e)
	if math.IsInf(dist, 1) {
		return dist
	}
	return dist / util.MilesToKm(e.SpeedMph) * 60
}

func validCost(c float64) bool {
	return !math.IsNaN(c) && !math.IsInf(c, 0) && c >= 0
}
