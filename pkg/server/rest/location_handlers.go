package rest

import (
	"net/http"

	"lintang/locroute/pkg/geo"
	"lintang/locroute/pkg/location"
	"lintang/locroute/pkg/server/rest/service"
	"lintang/locroute/pkg/util"

	"github.com/go-chi/render"
)

// SearchLocationRequest model info
//
//	@Description	request body untuk cari restaurant/store di sekitar suatu titik
type SearchLocationRequest struct {
	Query    string  `json:"query" validate:"max=100"`
	Category string  `json:"category" validate:"omitempty,oneof=restaurant store other"`
	Type     string  `json:"type" validate:"max=50"`
	Lat      float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lon      float64 `json:"lon" validate:"gte=-180,lte=180"`
	RadiusKm float64 `json:"radius_km" validate:"gte=0,lte=50"`
}

func (s *SearchLocationRequest) Bind(r *http.Request) error {
	return nil
}

// LocationResponse model info
//
//	@Description	location hasil pencarian
type LocationResponse struct {
	ID         int64             `json:"id"`
	Name       string            `json:"name"`
	Category   string            `json:"category"`
	Lat        float64           `json:"lat"`
	Lon        float64           `json:"lon"`
	Address    string            `json:"address,omitempty"`
	DistanceKm float64           `json:"distance_km"`
	Tags       map[string]string `json:"tags,omitempty"`
}

func newLocationResponse(l location.Location, distanceKm float64) LocationResponse {
	return LocationResponse{
		ID:         l.ID,
		Name:       l.Name,
		Category:   string(l.Category()),
		Lat:        l.Coord.Lat(),
		Lon:        l.Coord.Lon(),
		Address:    l.Address(),
		DistanceKm: util.RoundFloat(distanceKm, 3),
		Tags:       l.Tags,
	}
}

// SearchLocationResponse model info
//
//	@Description	response body pencarian location, urut dari yang paling dekat
type SearchLocationResponse struct {
	Locations []LocationResponse `json:"locations"`
}

// searchLocations
//
//	@Summary		cari restaurant/store di sekitar suatu titik.
//	@Description	cari location dalam radius_km dari (lat, lon), filter kategori, type (cuisine / jenis shop) dan keyword.
//	@Tags			locations
//	@Param			body	body	SearchLocationRequest	true	"request body pencarian location"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/locations/search [post]
//	@Success		200	{object}	SearchLocationResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		500	{object}	ErrResponse
func (h *NavigationHandler) searchLocations(w http.ResponseWriter, r *http.Request) {
	data := &SearchLocationRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if !h.validator.check(w, r, *data) {
		return
	}

	matches, err := h.svc.SearchLocations(r.Context(), service.SearchParams{
		Text:     data.Query,
		Category: data.Category,
		Type:     data.Type,
		Lat:      data.Lat,
		Lon:      data.Lon,
		RadiusKm: data.RadiusKm,
	})
	if err != nil {
		render.Render(w, r, ErrChi(err))
		return
	}

	resp := &SearchLocationResponse{Locations: make([]LocationResponse, 0, len(matches))}
	for _, m := range matches {
		resp.Locations = append(resp.Locations, newLocationResponse(m.Location, m.DistanceKm))
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, resp)
}

// nearestLocation
//
//	@Summary		location terdekat dari suatu titik.
//	@Tags			locations
//	@Param			lat			query	number	true	"latitude"
//	@Param			lon			query	number	true	"longitude"
//	@Param			category	query	string	false	"restaurant, store, atau other"
//	@Produce		application/json
//	@Router			/locations/nearest [get]
//	@Success		200	{object}	LocationResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		404	{object}	ErrResponse
func (h *NavigationHandler) nearestLocation(w http.ResponseWriter, r *http.Request) {
	lat, err := queryFloat(r, "lat")
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	lon, err := queryFloat(r, "lon")
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	m, err := h.svc.NearestLocation(r.Context(), lat, lon, r.URL.Query().Get("category"))
	if err != nil {
		render.Render(w, r, ErrChi(err))
		return
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, newLocationResponse(m.Location, m.DistanceKm))
}

const (
	defaultListLimit = 100
	maxListLimit     = 1000
)

// ListLocationsResponse model info
//
//	@Description	satu halaman location urut id
type ListLocationsResponse struct {
	Total     int                `json:"total"`
	Offset    int                `json:"offset"`
	Limit     int                `json:"limit"`
	Locations []LocationResponse `json:"locations"`
}

// listLocations
//
//	@Summary		list semua location.
//	@Description	location urut id, bisa difilter dengan tag (misal tag_key=brand&tag_value=Indomaret).
//	@Tags			locations
//	@Param			tag_key		query	string	false	"key tag osm"
//	@Param			tag_value	query	string	false	"value tag osm, harus bersama tag_key"
//	@Param			offset		query	int		false	"offset, default 0"
//	@Param			limit		query	int		false	"jumlah per halaman, default 100, maksimum 1000"
//	@Produce		application/json
//	@Router			/locations [get]
//	@Success		200	{object}	ListLocationsResponse
//	@Failure		400	{object}	ErrResponse
func (h *NavigationHandler) listLocations(w http.ResponseWriter, r *http.Request) {
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	limit, err := queryInt(r, "limit", defaultListLimit)
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	limit = min(limit, maxListLimit)

	q := r.URL.Query()
	locs, err := h.svc.ListLocations(r.Context(), q.Get("tag_key"), q.Get("tag_value"))
	if err != nil {
		render.Render(w, r, ErrChi(err))
		return
	}

	start := min(offset, len(locs))
	end := min(start+limit, len(locs))
	resp := &ListLocationsResponse{
		Total:     len(locs),
		Offset:    offset,
		Limit:     limit,
		Locations: make([]LocationResponse, 0, end-start),
	}
	for _, l := range locs[start:end] {
		resp.Locations = append(resp.Locations, newLocationResponse(l, 0))
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, resp)
}

// locationsWithinRadius
//
//	@Summary		semua location dalam radius dari suatu titik.
//	@Tags			locations
//	@Param			lat			query	number	true	"latitude"
//	@Param			lon			query	number	true	"longitude"
//	@Param			radius_km	query	number	true	"radius dalam km, maksimum 50"
//	@Produce		application/json
//	@Router			/locations/within-radius [get]
//	@Success		200	{object}	SearchLocationResponse
//	@Failure		400	{object}	ErrResponse
func (h *NavigationHandler) locationsWithinRadius(w http.ResponseWriter, r *http.Request) {
	var vals [3]float64
	for i, key := range []string{"lat", "lon", "radius_km"} {
		v, err := queryFloat(r, key)
		if err != nil {
			render.Render(w, r, ErrInvalidRequest(err))
			return
		}
		vals[i] = v
	}

	matches, err := h.svc.LocationsWithinRadius(r.Context(), vals[0], vals[1], vals[2])
	if err != nil {
		render.Render(w, r, ErrChi(err))
		return
	}

	resp := &SearchLocationResponse{Locations: make([]LocationResponse, 0, len(matches))}
	for _, m := range matches {
		resp.Locations = append(resp.Locations, newLocationResponse(m.Location, m.DistanceKm))
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, resp)
}

// RouteToLocationRequest model info
//
//	@Description	request body untuk route dari suatu titik ke location
type RouteToLocationRequest struct {
	SrcLat     float64 `json:"src_lat" validate:"gte=-90,lte=90"`
	SrcLon     float64 `json:"src_lon" validate:"gte=-180,lte=180"`
	LocationID int64   `json:"location_id" validate:"required"`
	Metric     string  `json:"metric" validate:"omitempty,oneof=distance shortest time fastest"`
}

func (s *RouteToLocationRequest) Bind(r *http.Request) error {
	return nil
}

// RouteToLocationResponse model info
//
//	@Description	location tujuan dan rute nya
type RouteToLocationResponse struct {
	Location LocationResponse      `json:"location"`
	Route    *ShortestPathResponse `json:"route"`
}

// routeToLocation
//
//	@Summary		rute dari suatu titik ke restaurant/store.
//	@Tags			locations
//	@Param			body	body	RouteToLocationRequest	true	"request body route ke location"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/locations/route [post]
//	@Success		200	{object}	RouteToLocationResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		404	{object}	ErrResponse
//	@Failure		500	{object}	ErrResponse
func (h *NavigationHandler) routeToLocation(w http.ResponseWriter, r *http.Request) {
	data := &RouteToLocationRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if !h.validator.check(w, r, *data) {
		return
	}

	loc, res, err := h.svc.RouteToLocation(r.Context(), data.SrcLat, data.SrcLon, data.LocationID, data.Metric)
	if err != nil {
		render.Render(w, r, ErrChi(err))
		return
	}
	h.countQuery(res)

	distance := 0.0
	if res.Start != nil {
		distance = geo.HaversineDistance(res.Start.Requested, loc.Coord)
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, &RouteToLocationResponse{
		Location: newLocationResponse(loc, distance),
		Route:    NewShortestPathResponse(res, h.instructions(res)),
	})
}
