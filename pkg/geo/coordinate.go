package geo

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidCoordinate = errors.New("invalid coordinate")

// Coordinate titik lat/lon dalam derajat. Zero value adalah (0,0); gunakan NewCoordinate supaya range tervalidasi.
type Coordinate struct {
	lat float64
	lon float64
}

func NewCoordinate(lat, lon float64) (Coordinate, error) {
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return Coordinate{}, fmt.Errorf("%w: latitude %f must be between -90 and 90", ErrInvalidCoordinate, lat)
	}
	if math.IsNaN(lon) || lon < -180 || lon > 180 {
		return Coordinate{}, fmt.Errorf("%w: longitude %f must be between -180 and 180", ErrInvalidCoordinate, lon)
	}
	return Coordinate{lat: lat, lon: lon}, nil
}

func (c Coordinate) Lat() float64 {
	return c.lat
}

func (c Coordinate) Lon() float64 {
	return c.lon
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%f, %f)", c.lat, c.lon)
}
