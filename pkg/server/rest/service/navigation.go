package service

import (
	"context"
	"errors"

	"lintang/locroute/pkg/datastructure"
	"lintang/locroute/pkg/engine/routing"
	"lintang/locroute/pkg/geo"
	"lintang/locroute/pkg/guidance"
	"lintang/locroute/pkg/location"
	"lintang/locroute/pkg/util"

	"go.uber.org/zap"
)

type RoutingEngine interface {
	Route(ctx context.Context, start, end geo.Coordinate, metric routing.Metric) (routing.Result, error)
}

type RoadNetwork interface {
	NodeCount() int
	RoutableNodeCount() int
	EdgeCount() int
	DirectedEdgeCount() int
	VisitOutEdges(id int64, fn func(e datastructure.RoadEdge) bool)
}

type LocationIndex interface {
	Len() int
	Get(id int64) (location.Location, bool)
	Nearest(point geo.Coordinate, filter func(location.Location) bool) (location.Location, bool)
	Search(q location.Query) ([]location.Match, error)
	All() []location.Location
	ByTag(key, value string) []location.Location
	WithinRadius(point geo.Coordinate, radiusKm float64) ([]location.Match, error)
}

// MaxRadiusKm radius maksimum query location.
const MaxRadiusKm = 50.0

type NavigationService struct {
	log       *zap.Logger
	engine    RoutingEngine
	network   RoadNetwork
	locations LocationIndex
}

func NewNavigationService(log *zap.Logger, engine RoutingEngine, network RoadNetwork, locations LocationIndex) *NavigationService {
	if log == nil {
		log = zap.NewNop()
	}
	return &NavigationService{log: log, engine: engine, network: network, locations: locations}
}

type GraphStats struct {
	Nodes         int
	RoutableNodes int
	Edges         int
	DirectedEdges int
	Locations     int
}

type SearchParams struct {
	Text     string
	Category string
	Type     string
	Lat      float64
	Lon      float64
	RadiusKm float64
}

func coordinate(lat, lon float64) (geo.Coordinate, error) {
	c, err := geo.NewCoordinate(lat, lon)
	if err != nil {
		return geo.Coordinate{}, util.WrapErrorf(err, util.ErrBadParamInput, "invalid coordinate (%v, %v)", lat, lon)
	}
	return c, nil
}

func (uc *NavigationService) ShortestPath(ctx context.Context, srcLat, srcLon, dstLat, dstLon float64,
	metric string) (routing.Result, error) {
	src, err := coordinate(srcLat, srcLon)
	if err != nil {
		return routing.Result{}, err
	}
	dst, err := coordinate(dstLat, dstLon)
	if err != nil {
		return routing.Result{}, err
	}
	return uc.route(ctx, src, dst, metric)
}

// RouteToLocation route dari source ke location dengan id locationID.
func (uc *NavigationService) RouteToLocation(ctx context.Context, srcLat, srcLon float64, locationID int64,
	metric string) (location.Location, routing.Result, error) {
	src, err := coordinate(srcLat, srcLon)
	if err != nil {
		return location.Location{}, routing.Result{}, err
	}
	loc, ok := uc.locations.Get(locationID)
	if !ok {
		return location.Location{}, routing.Result{}, util.WrapErrorf(nil, util.ErrNotFound, "location %d not found", locationID)
	}
	res, err := uc.route(ctx, src, loc.Coord, metric)
	if err != nil {
		return location.Location{}, routing.Result{}, err
	}
	return loc, res, nil
}

func (uc *NavigationService) route(ctx context.Context, src, dst geo.Coordinate, metric string) (routing.Result, error) {
	m, err := routing.ParseMetric(metric)
	if err != nil {
		return routing.Result{}, err
	}
	res, err := uc.engine.Route(ctx, src, dst, m)
	if err != nil {
		var uerr *util.Error
		if errors.As(err, &uerr) {
			return routing.Result{}, err
		}
		uc.log.Error("route query failed", zap.Error(err), zap.Stringer("src", src), zap.Stringer("dst", dst))
		return routing.Result{}, util.WrapErrorf(err, util.ErrInternalServerError, util.MessageInternalServerError)
	}
	return res, nil
}

func (uc *NavigationService) SearchLocations(ctx context.Context, p SearchParams) ([]location.Match, error) {
	center, err := coordinate(p.Lat, p.Lon)
	if err != nil {
		return nil, err
	}
	category, ok := location.ParseCategory(p.Category)
	if !ok {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "unknown location category %q", p.Category)
	}
	return uc.locations.Search(location.Query{
		Text:     p.Text,
		Category: category,
		Type:     p.Type,
		Center:   center,
		RadiusKm: p.RadiusKm,
	})
}

// NearestLocation location terdekat dari (lat, lon), category kosong berarti semua kategori.
func (uc *NavigationService) NearestLocation(ctx context.Context, lat, lon float64, category string) (location.Match, error) {
	point, err := coordinate(lat, lon)
	if err != nil {
		return location.Match{}, err
	}
	cat, ok := location.ParseCategory(category)
	if !ok {
		return location.Match{}, util.WrapErrorf(nil, util.ErrBadParamInput, "unknown location category %q", category)
	}
	var filter func(location.Location) bool
	if cat != "" {
		filter = func(l location.Location) bool { return l.Category() == cat }
	}
	loc, ok := uc.locations.Nearest(point, filter)
	if !ok {
		return location.Match{}, util.WrapErrorf(nil, util.ErrNotFound, "no location found near %s", point)
	}
	return location.Match{Location: loc, DistanceKm: geo.HaversineDistance(point, loc.Coord)}, nil
}

// ListLocations semua location urut id. kalau tagKey diisi hanya location dengan tag tagKey=tagValue.
func (uc *NavigationService) ListLocations(ctx context.Context, tagKey, tagValue string) ([]location.Location, error) {
	if tagKey == "" {
		if tagValue != "" {
			return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "tag value %q given without tag key", tagValue)
		}
		return uc.locations.All(), nil
	}
	return uc.locations.ByTag(tagKey, tagValue), nil
}

// LocationsWithinRadius semua location dalam radiusKm dari (lat, lon), urut jarak lalu id.
func (uc *NavigationService) LocationsWithinRadius(ctx context.Context, lat, lon, radiusKm float64) ([]location.Match, error) {
	point, err := coordinate(lat, lon)
	if err != nil {
		return nil, err
	}
	if radiusKm > MaxRadiusKm {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "radius must be at most %v km, got %v", MaxRadiusKm, radiusKm)
	}
	return uc.locations.WithinRadius(point, radiusKm)
}

func (uc *NavigationService) GraphStats(ctx context.Context) GraphStats {
	return GraphStats{
		Nodes:         uc.network.NodeCount(),
		RoutableNodes: uc.network.RoutableNodeCount(),
		Edges:         uc.network.EdgeCount(),
		DirectedEdges: uc.network.DirectedEdgeCount(),
		Locations:     uc.locations.Len(),
	}
}

// DrivingInstructions instruksi belokan untuk route hasil ShortestPath/RouteToLocation.
func (uc *NavigationService) DrivingInstructions(route datastructure.Route) []guidance.DrivingInstruction {
	return guidance.DrivingInstructions(route, uc.network)
}
