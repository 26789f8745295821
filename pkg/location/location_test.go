package location_test

import (
	"errors"
	"testing"

	"lintang/locroute/pkg/datastructure"
	"lintang/locroute/pkg/geo"
	"lintang/locroute/pkg/location"
	"lintang/locroute/pkg/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCoord(t *testing.T, lat, lon float64) geo.Coordinate {
	t.Helper()
	c, err := geo.NewCoordinate(lat, lon)
	require.NoError(t, err)
	return c
}

// sekitar Malioboro, Yogyakarta
func sampleNodes() []datastructure.RawNode {
	return []datastructure.RawNode{
		{ID: 1, Lat: -7.7926, Lon: 110.3658, Tags: map[string]string{
			"amenity": "restaurant", "name": "Gudeg Yu Djum", "cuisine": "indonesian;javanese",
			"addr:street": "Jalan Wijilan"}},
		{ID: 2, Lat: -7.7930, Lon: 110.3660, Tags: map[string]string{
			"amenity": "cafe", "name": "Kopi Joss", "cuisine": "coffee_shop"}},
		{ID: 3, Lat: -7.7940, Lon: 110.3670, Tags: map[string]string{
			"shop": "books", "name": "Toko Buku Gramedia", "brand": "Gramedia"}},
		{ID: 4, Lat: -7.8200, Lon: 110.3900, Tags: map[string]string{
			"shop": "convenience", "name": "Indomaret", "brand": "Indomaret"}},
		{ID: 5, Lat: -7.7935, Lon: 110.3665, Tags: map[string]string{"tourism": "museum", "name": "Benteng Vredeburg"}},
		{ID: 6, Lat: -7.7935, Lon: 110.3665, Tags: map[string]string{"highway": "traffic_signals"}},
		{ID: 7, Lat: -7.7935, Lon: 110.3665},
	}
}

func TestFromRawNode(t *testing.T) {
	for _, n := range sampleNodes() {
		_, ok := location.FromRawNode(n)
		assert.Equal(t, n.ID <= 5, ok, "node %d", n.ID)
	}
	_, ok := location.FromRawNode(datastructure.RawNode{ID: 9, Lat: 100, Lon: 0, Tags: map[string]string{"shop": "books"}})
	assert.False(t, ok)
}

func TestLocationCategory(t *testing.T) {
	idx := location.BuildIndex(sampleNodes())
	require.Equal(t, 5, idx.Len())

	cases := map[int64]location.Category{
		1: location.CategoryRestaurant,
		2: location.CategoryRestaurant,
		3: location.CategoryStore,
		4: location.CategoryStore,
		5: location.CategoryOther,
	}
	for id, want := range cases {
		l, ok := idx.Get(id)
		require.True(t, ok)
		assert.Equal(t, want, l.Category(), "location %d", id)
	}

	l, _ := idx.Get(1)
	assert.Equal(t, "Jalan Wijilan", l.Address())
}

func TestIndex(t *testing.T) {
	idx := location.BuildIndex(sampleNodes())
	malioboro := mustCoord(t, -7.7926, 110.3658)

	t.Run("nearest", func(t *testing.T) {
		l, ok := idx.Nearest(malioboro, nil)
		require.True(t, ok)
		assert.Equal(t, int64(1), l.ID)

		l, ok = idx.Nearest(malioboro, location.Location.IsStore)
		require.True(t, ok)
		assert.Equal(t, int64(3), l.ID)

		_, ok = idx.Nearest(malioboro, func(l location.Location) bool { return l.Shop() == "bakery" })
		assert.False(t, ok)

		_, ok = location.NewIndex(nil).Nearest(malioboro, nil)
		assert.False(t, ok)
	})

	t.Run("within radius sorted by distance", func(t *testing.T) {
		matches, err := idx.WithinRadius(malioboro, 0.5)
		require.NoError(t, err)
		ids := make([]int64, 0)
		for _, m := range matches {
			ids = append(ids, m.Location.ID)
			assert.LessOrEqual(t, m.DistanceKm, 0.5)
		}
		assert.Equal(t, []int64{1, 2, 5, 3}, ids)

		matches, err = idx.WithinRadius(malioboro, 0)
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, int64(1), matches[0].Location.ID)

		_, err = idx.WithinRadius(malioboro, -1)
		assert.True(t, errors.Is(err, util.ErrBadParamInput))
	})

	t.Run("by tag", func(t *testing.T) {
		locs := idx.ByTag("brand", "Indomaret")
		require.Len(t, locs, 1)
		assert.Equal(t, int64(4), locs[0].ID)
		assert.Empty(t, idx.ByTag("brand", "Alfamart"))
	})

	t.Run("all sorted by id", func(t *testing.T) {
		locs := idx.All()
		require.Len(t, locs, idx.Len())
		for i := 1; i < len(locs); i++ {
			assert.Less(t, locs[i-1].ID, locs[i].ID)
		}
		locs[0].Name = "changed"
		first, ok := idx.Get(locs[0].ID)
		require.True(t, ok)
		assert.NotEqual(t, "changed", first.Name)
	})
}

func TestSearch(t *testing.T) {
	idx := location.BuildIndex(sampleNodes())
	center := mustCoord(t, -7.7926, 110.3658)

	ids := func(matches []location.Match) []int64 {
		out := make([]int64, 0, len(matches))
		for _, m := range matches {
			out = append(out, m.Location.ID)
		}
		return out
	}

	t.Run("category and type", func(t *testing.T) {
		matches, err := idx.Search(location.Query{Category: location.CategoryRestaurant, Center: center, RadiusKm: 10})
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 2}, ids(matches))

		matches, err = idx.Search(location.Query{Category: location.CategoryRestaurant, Type: "Javanese", Center: center, RadiusKm: 10})
		require.NoError(t, err)
		assert.Equal(t, []int64{1}, ids(matches))

		matches, err = idx.Search(location.Query{Category: location.CategoryStore, Type: "conv", Center: center, RadiusKm: 10})
		require.NoError(t, err)
		assert.Equal(t, []int64{4}, ids(matches))
	})

	t.Run("keyword over name brand amenity and address", func(t *testing.T) {
		for text, want := range map[string][]int64{
			"gramedia": {3},
			"cafe":     {2},
			"wijilan":  {1},
			"vredeb":   {5},
			"":         {1, 2, 5, 3, 4},
		} {
			matches, err := idx.Search(location.Query{Text: text, Center: center, RadiusKm: 10})
			require.NoError(t, err)
			assert.Equal(t, want, ids(matches), "query %q", text)
		}
	})

	t.Run("radius limits results", func(t *testing.T) {
		matches, err := idx.Search(location.Query{Category: location.CategoryStore, Center: center, RadiusKm: 1})
		require.NoError(t, err)
		assert.Equal(t, []int64{3}, ids(matches))

		_, err = idx.Search(location.Query{Center: center, RadiusKm: -2})
		assert.True(t, errors.Is(err, util.ErrBadParamInput))
	})

	t.Run("center outside bounds is clamped", func(t *testing.T) {
		bounds, err := geo.NewBounds(-7.83, 110.35, -7.78, 110.40)
		require.NoError(t, err)
		bounded := location.BuildIndex(sampleNodes(), location.WithBounds(bounds))

		far := mustCoord(t, -6.2, 106.8)
		adjusted := bounded.AdjustToBounds(far)
		assert.Equal(t, -7.78, adjusted.Lat())
		assert.Equal(t, 110.35, adjusted.Lon())

		matches, err := bounded.Search(location.Query{Center: far, RadiusKm: 3})
		require.NoError(t, err)
		assert.NotEmpty(t, matches)
	})
}
