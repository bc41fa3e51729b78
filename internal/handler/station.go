package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Slava-Nykonenko/emerald-railroads/internal/model"
	"github.com/Slava-Nykonenko/emerald-railroads/internal/repository"
)

// StationHandler serves the station resource. The journey repo backs
// the outgoing/incoming embeds on the detail view.
type StationHandler struct {
	Stations *repository.StationRepo
	Journeys *repository.JourneyRepo
}

func NewStationHandler(stations *repository.StationRepo, journeys *repository.JourneyRepo) *StationHandler {
	if stations == nil || journeys == nil {
		panic("nil repository passed to NewStationHandler")
	}
	return &StationHandler{Stations: stations, Journeys: journeys}
}

type stationResp struct {
	ID        uint64  `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type stationReq struct {
	Name string `json:"name" validate:"required"`
	// Pointers so 0.0 (equator, meridian) passes required.
	Latitude  *float64 `json:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" validate:"required,gte=-180,lte=180"`
}

// List handles GET /v1/stations. Public.
func (h *StationHandler) List(c echo.Context) error {
	page, pageSize := pageParams(c, 25)
	stations, total, err := h.Stations.List(c.Request().Context(), page, pageSize)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error"})
	}
	out := make([]stationResp, 0, len(stations))
	for _, s := range stations {
		out = append(out, stationResp{ID: s.ID, Name: s.Name, Latitude: s.Latitude, Longitude: s.Longitude})
	}
	return listResponse(c, out, total, page, pageSize)
}

// Get handles GET /v1/stations/:id. The response embeds upcoming
// traffic through the station in both directions.
func (h *StationHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_request", "message": "invalid station id"})
	}
	ctx := c.Request().Context()

	s, err := h.Stations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrStationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "not_found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error"})
	}

	outgoing, err := h.Journeys.ListOutgoingByStation(ctx, s.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error"})
	}
	incoming, err := h.Journeys.ListIncomingByStation(ctx, s.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"id":                s.ID,
		"name":              s.Name,
		"latitude":          s.Latitude,
		"longitude":         s.Longitude,
		"outgoing_journeys": outgoing,
		"incoming_journeys": incoming,
	})
}

// Create handles POST /v1/stations. STAFF only.
func (h *StationHandler) Create(c echo.Context) error {
	var req stationReq
	if bindAndValidate(c, &req) {
		return nil
	}
	s := &model.Station{
		Name:      strings.TrimSpace(req.Name),
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
	}
	if err := h.Stations.Create(c.Request().Context(), s); err != nil {
		if errors.Is(err, repository.ErrStationExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "station_exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error"})
	}
	return c.JSON(http.StatusCreated, stationResp{ID: s.ID, Name: s.Name, Latitude: s.Latitude, Longitude: s.Longitude})
}

// Update handles PUT /v1/stations/:id. STAFF only.
func (h *StationHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_request", "message": "invalid station id"})
	}
	var req stationReq
	if bindAndValidate(c, &req) {
		return nil
	}
	s := &model.Station{
		ID:        id,
		Name:      strings.TrimSpace(req.Name),
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
	}
	if err := h.Stations.Update(c.Request().Context(), s); err != nil {
		switch {
		case errors.Is(err, repository.ErrStationNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "not_found"})
		case errors.Is(err, repository.ErrStationExists):
			return c.JSON(http.StatusConflict, echo.Map{"error": "station_exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error"})
	}
	return c.JSON(http.StatusOK, stationResp{ID: s.ID, Name: s.Name, Latitude: s.Latitude, Longitude: s.Longitude})
}

// Delete handles DELETE /v1/stations/:id. STAFF only. Routes through
// the station cascade away, and journeys and tickets with them.
func (h *StationHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_request", "message": "invalid station id"})
	}
	if err := h.Stations.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrStationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "not_found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error"})
	}
	return c.NoContent(http.StatusNoContent)
}
