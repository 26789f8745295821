package geo

import (
	"github.com/golang/geo/s2"
)

// ProjectToSegment titik pada great-circle segment a-b yang paling dekat dengan p.
func ProjectToSegment(p, a, b Coordinate) Coordinate {
	if a == b {
		return a
	}
	aS2 := s2.PointFromLatLng(s2.LatLngFromDegrees(a.lat, a.lon))
	bS2 := s2.PointFromLatLng(s2.LatLngFromDegrees(b.lat, b.lon))
	pS2 := s2.PointFromLatLng(s2.LatLngFromDegrees(p.lat, p.lon))

	projection := s2.Project(pS2, aS2, bS2)
	projectLatLng := s2.LatLngFromPoint(projection)
	return normalized(projectLatLng.Lat.Degrees(), projectLatLng.Lng.Degrees())
}
