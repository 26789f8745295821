package location

import (
	"math"
	"slices"
	"sort"
	"strings"

	"lintang/locroute/pkg/datastructure"
	"lintang/locroute/pkg/geo"
	"lintang/locroute/pkg/util"

	"github.com/dhconnelly/rtreego"
)

const pointTol = 1e-9

type locationRect struct {
	idx      int
	location rtreego.Point
}

func (l *locationRect) Bounds() rtreego.Rect {
	return l.location.ToRect(pointTol)
}

// Match location hasil query dengan jaraknya dari titik query.
type Match struct {
	Location   Location
	DistanceKm float64
}

type Query struct {
	Text     string
	Category Category
	// Type cuisine untuk restaurant, jenis shop untuk store.
	Type     string
	Center   geo.Coordinate
	RadiusKm float64
}

// Index spatial index location. immutable setelah dibuat, aman dipakai concurrent.
type Index struct {
	locations []Location // sorted by id
	byID      map[int64]int
	tree      *rtreego.Rtree
	bounds    *geo.Bounds
}

type Option func(*Index)

// WithBounds coverage area data. center Search di luar bounds di clamp ke dalam bounds.
func WithBounds(b geo.Bounds) Option {
	return func(idx *Index) {
		idx.bounds = &b
	}
}

func NewIndex(locations []Location, opts ...Option) *Index {
	locs := make([]Location, 0, len(locations))
	seen := make(map[int64]struct{}, len(locations))
	for _, l := range locations {
		if _, ok := seen[l.ID]; ok {
			continue
		}
		seen[l.ID] = struct{}{}
		locs = append(locs, l)
	}
	sort.Slice(locs, func(i, j int) bool {
		return locs[i].ID < locs[j].ID
	})

	idx := &Index{
		locations: locs,
		byID:      make(map[int64]int, len(locs)),
	}
	spatials := make([]rtreego.Spatial, len(locs))
	for i, l := range locs {
		idx.byID[l.ID] = i
		spatials[i] = &locationRect{idx: i, location: rtreego.Point{l.Coord.Lat(), l.Coord.Lon()}}
	}
	idx.tree = rtreego.NewTree(2, 25, 50, spatials...)
	for _, opt := range opts {
		opt(idx)
	}
	return idx
}

// BuildIndex index dari node POI, node lain diabaikan.
func BuildIndex(nodes []datastructure.RawNode, opts ...Option) *Index {
	locs := make([]Location, 0)
	for _, n := range nodes {
		if l, ok := FromRawNode(n); ok {
			locs = append(locs, l)
		}
	}
	return NewIndex(locs, opts...)
}

func (idx *Index) Len() int {
	return len(idx.locations)
}

// All semua location urut id.
func (idx *Index) All() []Location {
	return slices.Clone(idx.locations)
}

func (idx *Index) Get(id int64) (Location, bool) {
	i, ok := idx.byID[id]
	if !ok {
		return Location{}, false
	}
	return idx.locations[i], true
}

// AdjustToBounds titik terdekat di dalam coverage bounds.
func (idx *Index) AdjustToBounds(point geo.Coordinate) geo.Coordinate {
	if idx.bounds == nil || idx.bounds.Contains(point) {
		return point
	}
	return idx.bounds.Clamp(point)
}

// Nearest location terdekat yang lolos filter (nil = semua). jarak sama -> id terkecil.
func (idx *Index) Nearest(point geo.Coordinate, filter func(Location) bool) (Location, bool) {
	if filter == nil {
		filter = func(Location) bool { return true }
	}
	query := rtreego.Point{point.Lat(), point.Lon()}
	candidates := idx.tree.NearestNeighbors(1, query, func(_ []rtreego.Spatial, obj rtreego.Spatial) (bool, bool) {
		return !filter(idx.locations[obj.(*locationRect).idx]), false
	})
	if len(candidates) == 0 || candidates[0] == nil {
		return Location{}, false
	}
	candidate := idx.locations[candidates[0].(*locationRect).idx]

	radius := geo.HaversineDistance(point, candidate.Coord)
	matches := idx.within(point, radius, filter)
	if len(matches) == 0 {
		return candidate, true
	}
	return matches[0].Location, true
}

// WithinRadius semua location dengan jarak <= radiusKm, urut jarak lalu id.
func (idx *Index) WithinRadius(point geo.Coordinate, radiusKm float64) ([]Match, error) {
	if radiusKm < 0 || math.IsNaN(radiusKm) {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "radius must be non-negative, got %v", radiusKm)
	}
	return idx.within(point, radiusKm, nil), nil
}

func (idx *Index) within(point geo.Coordinate, radiusKm float64, filter func(Location) bool) []Match {
	matches := make([]Match, 0)
	consider := func(i int) {
		l := idx.locations[i]
		if filter != nil && !filter(l) {
			return
		}
		if d := geo.HaversineDistance(point, l.Coord); d <= radiusKm {
			matches = append(matches, Match{Location: l, DistanceKm: d})
		}
	}

	box, ok := geo.BoundingBoxAround(point, radiusKm)
	var rect rtreego.Rect
	var err error
	if ok {
		rect, err = rtreego.NewRectFromPoints(rtreego.Point{box.MinLat, box.MinLon}, rtreego.Point{box.MaxLat, box.MaxLon})
	}
	if ok && err == nil {
		for _, s := range idx.tree.SearchIntersect(rect) {
			consider(s.(*locationRect).idx)
		}
	} else {
		for i := range idx.locations {
			consider(i)
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].DistanceKm != matches[j].DistanceKm {
			return matches[i].DistanceKm < matches[j].DistanceKm
		}
		return matches[i].Location.ID < matches[j].Location.ID
	})
	return matches
}

// ByTag location dengan tag key=value, urut id.
func (idx *Index) ByTag(key, value string) []Location {
	locs := make([]Location, 0)
	for _, l := range idx.locations {
		if v, ok := l.Tag(key); ok && v == value {
			locs = append(locs, l)
		}
	}
	return locs
}

// Search location dalam radius dari center yang cocok dengan kategori, type, dan keyword.
func (idx *Index) Search(q Query) ([]Match, error) {
	if q.RadiusKm < 0 || math.IsNaN(q.RadiusKm) {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "radius must be non-negative, got %v", q.RadiusKm)
	}
	center := idx.AdjustToBounds(q.Center)
	text := strings.ToLower(strings.TrimSpace(q.Text))
	typ := strings.ToLower(strings.TrimSpace(q.Type))

	return idx.within(center, q.RadiusKm, func(l Location) bool {
		return matchQuery(l, q.Category, typ, text)
	}), nil
}

func matchQuery(l Location, category Category, typ, text string) bool {
	switch category {
	case CategoryRestaurant:
		if !l.IsRestaurant() {
			return false
		}
		if typ != "" && !strings.Contains(strings.ToLower(l.Cuisine()), typ) {
			return false
		}
	case CategoryStore:
		if !l.IsStore() {
			return false
		}
		if typ != "" && !strings.Contains(strings.ToLower(l.Shop()), typ) {
			return false
		}
	case CategoryOther:
		if l.Category() != CategoryOther {
			return false
		}
	}

	if text == "" {
		return true
	}
	for _, field := range []string{l.Name, l.Amenity(), l.Brand(), l.Address()} {
		if strings.Contains(strings.ToLower(field), text) {
			return true
		}
	}
	return false
}
