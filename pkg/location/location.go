package location

import (
	"maps"
	"strings"

	"lintang/locroute/pkg/datastructure"
	"lintang/locroute/pkg/geo"
)

type Category string

const (
	CategoryRestaurant Category = "restaurant"
	CategoryStore      Category = "store"
	CategoryOther      Category = "other"
)

// amenity yang dianggap restaurant
var restaurantAmenities = map[string]struct{}{
	"restaurant": {},
	"cafe":       {},
	"fast_food":  {},
	"bar":        {},
	"pub":        {},
	"food_court": {},
	"ice_cream":  {},
}

// Location tempat (POI) dari node openstreetmap yang punya tag amenity/shop/name.
type Location struct {
	ID    int64
	Name  string
	Coord geo.Coordinate
	Tags  map[string]string
}

// FromRawNode false kalau node bukan POI atau koordinatnya invalid.
func FromRawNode(n datastructure.RawNode) (Location, bool) {
	if n.Tags["amenity"] == "" && n.Tags["shop"] == "" && n.Tags["name"] == "" {
		return Location{}, false
	}
	coord, err := geo.NewCoordinate(n.Lat, n.Lon)
	if err != nil {
		return Location{}, false
	}
	return Location{
		ID:    n.ID,
		Name:  n.Tags["name"],
		Coord: coord,
		Tags:  maps.Clone(n.Tags),
	}, true
}

func (l Location) Tag(key string) (string, bool) {
	v, ok := l.Tags[key]
	return v, ok
}

func (l Location) Amenity() string {
	return l.Tags["amenity"]
}

func (l Location) Shop() string {
	return l.Tags["shop"]
}

func (l Location) Cuisine() string {
	return l.Tags["cuisine"]
}

func (l Location) Brand() string {
	return l.Tags["brand"]
}

// Address gabungan tag addr:housenumber, addr:street, addr:city.
func (l Location) Address() string {
	parts := make([]string, 0, 3)
	for _, key := range []string{"addr:housenumber", "addr:street", "addr:city"} {
		if v := l.Tags[key]; v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " ")
}

func (l Location) IsRestaurant() bool {
	_, ok := restaurantAmenities[l.Amenity()]
	return ok
}

func (l Location) IsStore() bool {
	return l.Shop() != ""
}

func (l Location) Category() Category {
	switch {
	case l.IsRestaurant():
		return CategoryRestaurant
	case l.IsStore():
		return CategoryStore
	default:
		return CategoryOther
	}
}

// ParseCategory "" berarti semua kategori.
func ParseCategory(s string) (Category, bool) {
	switch Category(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return "", true
	case CategoryRestaurant:
		return CategoryRestaurant, true
	case CategoryStore:
		return CategoryStore, true
	case CategoryOther:
		return CategoryOther, true
	default:
		return "", false
	}
}
