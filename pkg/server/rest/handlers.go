package rest

import (
	"context"
	"net/http"

	"lintang/locroute/pkg/datastructure"
	"lintang/locroute/pkg/engine/routing"
	"lintang/locroute/pkg/guidance"
	"lintang/locroute/pkg/location"
	"lintang/locroute/pkg/server/rest/service"
	"lintang/locroute/pkg/util"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type NavigationService interface {
	ShortestPath(ctx context.Context, srcLat, srcLon, dstLat, dstLon float64, metric string) (routing.Result, error)
	RouteToLocation(ctx context.Context, srcLat, srcLon float64, locationID int64, metric string) (location.Location, routing.Result, error)
	SearchLocations(ctx context.Context, p service.SearchParams) ([]location.Match, error)
	NearestLocation(ctx context.Context, lat, lon float64, category string) (location.Match, error)
	ListLocations(ctx context.Context, tagKey, tagValue string) ([]location.Location, error)
	LocationsWithinRadius(ctx context.Context, lat, lon, radiusKm float64) ([]location.Match, error)
	GraphStats(ctx context.Context) service.GraphStats
	DrivingInstructions(route datastructure.Route) []guidance.DrivingInstruction
}

type NavigationHandler struct {
	svc          NavigationService
	promeMetrics *metrics
	validator    *requestValidator
}

func NavigatorRouter(r *chi.Mux, svc NavigationService, m *metrics) {
	handler := &NavigationHandler{svc: svc, promeMetrics: m, validator: newRequestValidator()}

	r.Group(func(r chi.Router) {
		r.Route("/api/navigations", func(r chi.Router) {
			r.Post("/shortest-path", handler.shortestPath)
			r.Get("/graph-stats", handler.graphStats)
		})
		r.Route("/api/locations", func(r chi.Router) {
			r.Get("/", handler.listLocations)
			r.Get("/within-radius", handler.locationsWithinRadius)
			r.Post("/search", handler.searchLocations)
			r.Get("/nearest", handler.nearestLocation)
			r.Post("/route", handler.routeToLocation)
		})
	})
}

// ShortestPathRequest model info
//
//	@Description	request body untuk shortest path query antara 2 tempat di openstreetmap
type ShortestPathRequest struct {
	SrcLat float64 `json:"src_lat" validate:"gte=-90,lte=90"`
	SrcLon float64 `json:"src_lon" validate:"gte=-180,lte=180"`
	DstLat float64 `json:"dst_lat" validate:"gte=-90,lte=90"`
	DstLon float64 `json:"dst_lon" validate:"gte=-180,lte=180"`
	Metric string  `json:"metric" validate:"omitempty,oneof=distance shortest time fastest"`
}

func (s *ShortestPathRequest) Bind(r *http.Request) error {
	return nil
}

// Coord model info
//
//	@Description	koordinat lat lon
type Coord struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// SnapResponse model info
//
//	@Description	node jalan terdekat dari koordinat request
type SnapResponse struct {
	NodeID     int64   `json:"node_id"`
	Node       Coord   `json:"node"`
	OnRoad     Coord   `json:"on_road"`
	DistanceKm float64 `json:"distance_km"`
}

// ShortestPathResponse	model info
//
//	@Description	response body untuk shortest path query antara 2 tempat di openstreetmap
type ShortestPathResponse struct {
	Found        bool          `json:"found"`
	Reason       string        `json:"reason,omitempty"`
	Metric       string        `json:"metric"`
	DistanceKm   float64       `json:"distance_km"`
	TimeMinutes  float64       `json:"time_minutes"`
	Path         string        `json:"path,omitempty"`
	Nodes        []int64       `json:"nodes,omitempty"`
	Route        []Coord       `json:"route,omitempty"`
	SnappedStart *SnapResponse `json:"snapped_start,omitempty"`
	SnappedEnd   *SnapResponse `json:"snapped_end,omitempty"`

	Instructions []guidance.DrivingInstruction `json:"instructions,omitempty"`
}

func newSnapResponse(s *routing.Snap) *SnapResponse {
	if s == nil {
		return nil
	}
	return &SnapResponse{
		NodeID:     s.Node.ID,
		Node:       Coord{Lat: s.Node.Coord.Lat(), Lon: s.Node.Coord.Lon()},
		OnRoad:     Coord{Lat: s.OnRoad.Lat(), Lon: s.OnRoad.Lon()},
		DistanceKm: util.RoundFloat(s.DistanceKm, 3),
	}
}

func routeCoords(route datastructure.Route) []Coord {
	coords := make([]Coord, 0, len(route.Nodes))
	for _, c := range route.Coordinates() {
		coords = append(coords, Coord{Lat: c.Lat(), Lon: c.Lon()})
	}
	return coords
}

func NewShortestPathResponse(res routing.Result, instructions []guidance.DrivingInstruction) *ShortestPathResponse {
	resp := &ShortestPathResponse{
		Found:        res.Found,
		Reason:       string(res.Reason),
		Metric:       string(res.Metric),
		SnappedStart: newSnapResponse(res.Start),
		SnappedEnd:   newSnapResponse(res.End),
	}
	if !res.Found {
		return resp
	}
	resp.DistanceKm = util.RoundFloat(res.Route.TotalDistanceKm(), 3)
	resp.TimeMinutes = util.RoundFloat(res.Route.TotalTimeMinutes(), 2)
	resp.Path = res.Route.Polyline()
	resp.Nodes = res.Route.NodeIDs()
	resp.Route = routeCoords(res.Route)
	resp.Instructions = instructions
	return resp
}

func (h *NavigationHandler) countQuery(res routing.Result) {
	h.promeMetrics.RouteQueryCount.WithLabelValues(string(res.Metric)).Inc()
	if !res.Found {
		h.promeMetrics.RouteNotFoundCount.WithLabelValues(string(res.Reason)).Inc()
	}
}

func (h *NavigationHandler) instructions(res routing.Result) []guidance.DrivingInstruction {
	if !res.Found {
		return nil
	}
	return h.svc.DrivingInstructions(res.Route)
}

// shortestPath
//
//	@Summary		shortest path query antara 2 tempat di openstreetmap.
//	@Description	shortest path query antara 2 tempat di openstreetmap. metric distance (jarak terpendek) atau time (waktu tercepat)
//	@Tags			navigations
//	@Param			body	body	ShortestPathRequest	true	"request body query shortest path antara 2 tempat"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/navigations/shortest-path [post]
//	@Success		200	{object}	ShortestPathResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		500	{object}	ErrResponse
func (h *NavigationHandler) shortestPath(w http.ResponseWriter, r *http.Request) {
	data := &ShortestPathRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if !h.validator.check(w, r, *data) {
		return
	}

	res, err := h.svc.ShortestPath(r.Context(), data.SrcLat, data.SrcLon, data.DstLat, data.DstLon, data.Metric)
	if err != nil {
		render.Render(w, r, ErrChi(err))
		return
	}
	h.countQuery(res)

	render.Status(r, http.StatusOK)
	render.JSON(w, r, NewShortestPathResponse(res, h.instructions(res)))
}

// GraphStatsResponse model info
//
//	@Description	ukuran road network graph dan location index
type GraphStatsResponse struct {
	Nodes         int `json:"nodes"`
	RoutableNodes int `json:"routable_nodes"`
	Edges         int `json:"edges"`
	DirectedEdges int `json:"directed_edges"`
	Locations     int `json:"locations"`
}

// graphStats
//
//	@Summary		statistik road network graph.
//	@Tags			navigations
//	@Produce		application/json
//	@Router			/navigations/graph-stats [get]
//	@Success		200	{object}	GraphStatsResponse
func (h *NavigationHandler) graphStats(w http.ResponseWriter, r *http.Request) {
	stats := h.svc.GraphStats(r.Context())
	render.Status(r, http.StatusOK)
	render.JSON(w, r, &GraphStatsResponse{
		Nodes:         stats.Nodes,
		RoutableNodes: stats.RoutableNodes,
		Edges:         stats.Edges,
		DirectedEdges: stats.DirectedEdges,
		Locations:     stats.Locations,
	})
}
