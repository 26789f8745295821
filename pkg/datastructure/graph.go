package datastructure

import (
	"lintang/locroute/pkg/geo"
)

// GraphNode node di road graph. Synthesized = node direferensikan way tapi record nodenya tidak ada,
// Coord nya tidak diketahui.
type GraphNode struct {
	ID          int64
	Coord       geo.Coordinate
	Synthesized bool
	Tags        map[string]string
}

func (n GraphNode) HasCoordinate() bool {
	return !n.Synthesized
}

// RoadEdge edge berarah hasil decompose way.
type RoadEdge struct {
	FromNodeID int64
	ToNodeID   int64
	WayID      int64
	Tags       WayTags
	// SpeedMph kecepatan efektif, diisi waktu build.
	SpeedMph float64
}

func (e RoadEdge) StreetName() string {
	return e.Tags.Name
}
