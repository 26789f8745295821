package geo_test

import (
	"errors"
	"math"
	"testing"

	"lintang/locroute/pkg/geo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCoord(t *testing.T, lat, lon float64) geo.Coordinate {
	t.Helper()
	c, err := geo.NewCoordinate(lat, lon)
	require.NoError(t, err)
	return c
}

func TestNewCoordinate(t *testing.T) {
	t.Run("accepts range boundaries", func(t *testing.T) {
		for _, tc := range [][2]float64{{90, 180}, {-90, -180}, {0, 0}} {
			c, err := geo.NewCoordinate(tc[0], tc[1])
			assert.NoError(t, err)
			assert.Equal(t, tc[0], c.Lat())
			assert.Equal(t, tc[1], c.Lon())
		}
	})

	t.Run("rejects out of range", func(t *testing.T) {
		for _, tc := range [][2]float64{{90.0001, 0}, {-91, 0}, {0, 180.5}, {0, -181}, {math.NaN(), 0}} {
			_, err := geo.NewCoordinate(tc[0], tc[1])
			assert.True(t, errors.Is(err, geo.ErrInvalidCoordinate))
		}
	})
}

func TestHaversineDistance(t *testing.T) {
	london := mustCoord(t, 51.5074, -0.1278)
	paris := mustCoord(t, 48.8566, 2.3522)

	t.Run("known distance", func(t *testing.T) {
		assert.InDelta(t, 343.5, geo.HaversineDistance(london, paris), 1.0)
	})

	t.Run("one degree latitude on the equator", func(t *testing.T) {
		d := geo.HaversineDistance(mustCoord(t, 0, 0), mustCoord(t, 1, 0))
		assert.InDelta(t, 111.195, d, 0.01)
	})

	t.Run("symmetric and zero on identical points", func(t *testing.T) {
		assert.Equal(t, geo.HaversineDistance(london, paris), geo.HaversineDistance(paris, london))
		assert.Equal(t, 0.0, geo.HaversineDistance(london, london))
	})

	t.Run("tiny separations keep precision", func(t *testing.T) {
		for _, dlon := range []float64{1e-7, 1e-6, 1e-5} {
			want := 6371.0 * dlon * math.Pi / 180.0
			d := geo.HaversineDistance(mustCoord(t, 0, 0), mustCoord(t, 0, dlon))
			assert.InEpsilon(t, want, d, 1e-6, "dlon=%v", dlon)
		}
		d := geo.HaversineDistance(mustCoord(t, 0, 0), mustCoord(t, 0, 1e-7))
		assert.InDelta(t, 0.000011119, d, 1e-9)
	})

	t.Run("antipodal points", func(t *testing.T) {
		d := geo.HaversineDistance(mustCoord(t, 0, 0), mustCoord(t, 0, 180))
		assert.InDelta(t, math.Pi*6371.0, d, 0.001)
	})
}

func TestBearingAndDestination(t *testing.T) {
	origin := mustCoord(t, -7.7956, 110.3695)

	t.Run("destination point lands at the requested distance", func(t *testing.T) {
		for _, bearing := range []float64{45, 90, 135, 225, 270} {
			dest := geo.DestinationPoint(origin, bearing, 3.0)
			assert.InDelta(t, 3.0, geo.HaversineDistance(origin, dest), 1e-6)
			assert.InDelta(t, bearing, geo.Bearing(origin, dest), 1e-6)
		}

		north := geo.DestinationPoint(origin, 0, 3.0)
		assert.InDelta(t, 3.0, geo.HaversineDistance(origin, north), 1e-6)
		assert.InDelta(t, origin.Lon(), north.Lon(), 1e-9)
	})

	t.Run("midpoint is halfway", func(t *testing.T) {
		other := geo.DestinationPoint(origin, 60, 10)
		mid := geo.MidPoint(origin, other)
		assert.InDelta(t, 5.0, geo.HaversineDistance(origin, mid), 1e-6)
		assert.InDelta(t, 5.0, geo.HaversineDistance(mid, other), 1e-6)
	})
}

func TestBounds(t *testing.T) {
	b, err := geo.NewBounds(-8, 110, -7, 111)
	require.NoError(t, err)

	t.Run("contains and clamp", func(t *testing.T) {
		inside := mustCoord(t, -7.5, 110.5)
		outside := mustCoord(t, -6.5, 112)
		assert.True(t, b.Contains(inside))
		assert.False(t, b.Contains(outside))
		assert.Equal(t, inside, b.Clamp(inside))

		clamped := b.Clamp(outside)
		assert.Equal(t, -7.0, clamped.Lat())
		assert.Equal(t, 111.0, clamped.Lon())
	})

	t.Run("min greater than max", func(t *testing.T) {
		_, err := geo.NewBounds(1, 0, 0, 1)
		assert.True(t, errors.Is(err, geo.ErrInvalidCoordinate))
	})
}

func TestBoundingBoxAround(t *testing.T) {
	center := mustCoord(t, 60, 10)

	t.Run("box covers every point of the cap", func(t *testing.T) {
		box, ok := geo.BoundingBoxAround(center, 5)
		require.True(t, ok)
		for bearing := 0.0; bearing < 360; bearing += 7.5 {
			p := geo.DestinationPoint(center, bearing, 5)
			assert.True(t, box.Contains(p), "bearing %v point %v outside %v", bearing, p, box)
		}
	})

	t.Run("pole inside cap", func(t *testing.T) {
		_, ok := geo.BoundingBoxAround(mustCoord(t, 89.99, 0), 5)
		assert.False(t, ok)
	})

	t.Run("crosses antimeridian", func(t *testing.T) {
		_, ok := geo.BoundingBoxAround(mustCoord(t, 0, 179.99), 5)
		assert.False(t, ok)
	})
}

func TestProjectToSegment(t *testing.T) {
	a := mustCoord(t, 0, 0)
	b := mustCoord(t, 0, 1)

	t.Run("perpendicular foot", func(t *testing.T) {
		p := geo.ProjectToSegment(mustCoord(t, 0.01, 0.5), a, b)
		assert.InDelta(t, 0, p.Lat(), 1e-6)
		assert.InDelta(t, 0.5, p.Lon(), 1e-6)
	})

	t.Run("clamped to endpoint", func(t *testing.T) {
		p := geo.ProjectToSegment(mustCoord(t, 0, 2), a, b)
		assert.InDelta(t, 0, p.Lat(), 1e-9)
		assert.InDelta(t, 1, p.Lon(), 1e-9)
	})

	t.Run("degenerate segment", func(t *testing.T) {
		assert.Equal(t, a, geo.ProjectToSegment(mustCoord(t, 1, 1), a, a))
	})
}
