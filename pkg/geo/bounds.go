package geo

import (
	"fmt"
	"math"
)

// Bounds bounding box lat/lon. Tidak mendukung box yang melewati antimeridian.
type Bounds struct {
	MinLat float64 `yaml:"min_lat" json:"min_lat"`
	MinLon float64 `yaml:"min_lon" json:"min_lon"`
	MaxLat float64 `yaml:"max_lat" json:"max_lat"`
	MaxLon float64 `yaml:"max_lon" json:"max_lon"`
}

func NewBounds(minLat, minLon, maxLat, maxLon float64) (Bounds, error) {
	if _, err := NewCoordinate(minLat, minLon); err != nil {
		return Bounds{}, err
	}
	if _, err := NewCoordinate(maxLat, maxLon); err != nil {
		return Bounds{}, err
	}
	if minLat > maxLat || minLon > maxLon {
		return Bounds{}, fmt.Errorf("%w: bounds min (%f, %f) greater than max (%f, %f)", ErrInvalidCoordinate,
			minLat, minLon, maxLat, maxLon)
	}
	return Bounds{MinLat: minLat, MinLon: minLon, MaxLat: maxLat, MaxLon: maxLon}, nil
}

func WorldBounds() Bounds {
	return Bounds{MinLat: -90, MinLon: -180, MaxLat: 90, MaxLon: 180}
}

func (b Bounds) Contains(c Coordinate) bool {
	return c.lat >= b.MinLat && c.lat <= b.MaxLat &&
		c.lon >= b.MinLon && c.lon <= b.MaxLon
}

// Clamp titik terdekat di dalam bounds.
func (b Bounds) Clamp(c Coordinate) Coordinate {
	lat := math.Max(b.MinLat, math.Min(b.MaxLat, c.lat))
	lon := math.Max(b.MinLon, math.Min(b.MaxLon, c.lon))
	return Coordinate{lat: lat, lon: lon}
}

func (b Bounds) String() string {
	return fmt.Sprintf("Bounds(minlat=%.6f, minlon=%.6f, maxlat=%.6f, maxlon=%.6f)", b.MinLat, b.MinLon, b.MaxLat, b.MaxLon)
}

// padding biar titik yang tepat di tepi spherical cap tetap masuk box.
const bboxPaddingDeg = 1e-9

// BoundingBoxAround bounding box yang memuat semua titik dengan haversine distance <= radiusKm dari center.
// return false kalau cap nya memuat kutub atau melewati antimeridian.
// http://janmatuschek.de/LatitudeLongitudeBoundingCoordinates
func BoundingBoxAround(center Coordinate, radiusKm float64) (Bounds, bool) {
	if radiusKm < 0 || math.IsNaN(radiusKm) {
		return Bounds{}, false
	}
	angular := radiusKm / earthRadiusKM
	if angular >= math.Pi/2 {
		return Bounds{}, false
	}
	angularDeg := radiansToDegree(angular)
	if center.lat+angularDeg >= 90 || center.lat-angularDeg <= -90 {
		return Bounds{}, false
	}

	north := DestinationPoint(center, 0, radiusKm)
	south := DestinationPoint(center, 180, radiusKm)

	latRad := degreeToRadians(center.lat)
	if math.Sin(angular) >= math.Cos(latRad) {
		return Bounds{}, false
	}
	lonDelta := radiansToDegree(math.Asin(math.Sin(angular) / math.Cos(latRad)))

	box := Bounds{
		MinLat: south.lat - bboxPaddingDeg,
		MaxLat: north.lat + bboxPaddingDeg,
		MinLon: center.lon - lonDelta - bboxPaddingDeg,
		MaxLon: center.lon + lonDelta + bboxPaddingDeg,
	}
	if box.MinLon < -180 || box.MaxLon > 180 {
		return Bounds{}, false
	}
	return box, true
}
