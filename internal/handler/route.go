package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Slava-Nykonenko/emerald-railroads/internal/model"
	"github.com/Slava-Nykonenko/emerald-railroads/internal/repository"
)

// RouteHandler serves the route resource. The journey repo backs the
// upcoming-journeys embed on the detail view.
type RouteHandler struct {
	Routes   *repository.RouteRepo
	Journeys *repository.JourneyRepo
}

func NewRouteHandler(routes *repository.RouteRepo, journeys *repository.JourneyRepo) *RouteHandler {
	if routes == nil || journeys == nil {
		panic("nil repository passed to NewRouteHandler")
	}
	return &RouteHandler{Routes: routes, Journeys: journeys}
}

type routeReq struct {
	SourceID      uint64  `json:"source_id" validate:"required,min=1"`
	DestinationID uint64  `json:"destination_id" validate:"required,min=1"`
	Distance      *uint32 `json:"distance" validate:"required"`
}

// List handles GET /v1/routes. Public.
func (h *RouteHandler) List(c echo.Context) error {
	page, pageSize := pageParams(c, 25)
	routes, total, err := h.Routes.List(c.Request().Context(), page, pageSize)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error"})
	}
	return listResponse(c, routes, total, page, pageSize)
}

// Get handles GET /v1/routes/:id, embedding journeys that have not
// yet departed.
func (h *RouteHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_request", "message": "invalid route id"})
	}
	ctx := c.Request().Context()

	rt, err := h.Routes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRouteNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "not_found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error"})
	}
	upcoming, err := h.Journeys.ListUpcomingByRoute(ctx, rt.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"id":                rt.ID,
		"source_id":         rt.SourceID,
		"source":            rt.Source,
		"destination_id":    rt.DestinationID,
		"destination":       rt.Destination,
		"distance":          rt.Distance,
		"label":             rt.Label(),
		"upcoming_journeys": upcoming,
	})
}

// Create handles POST /v1/routes. STAFF only.
func (h *RouteHandler) Create(c echo.Context) error {
	var req routeReq
	if bindAndValidate(c, &req) {
		return nil
	}
	rt := &model.Route{
		SourceID:      req.SourceID,
		DestinationID: req.DestinationID,
		Distance:      *req.Distance,
	}
	ctx := c.Request().Context()
	if err := h.Routes.Create(ctx, rt); err != nil {
		if errors.Is(err, repository.ErrStationNotFound) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_request", "message": "station not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error"})
	}
	row, err := h.Routes.GetByID(ctx, rt.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error"})
	}
	return c.JSON(http.StatusCreated, row)
}

// Update handles PUT /v1/routes/:id. STAFF only.
func (h *RouteHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_request", "message": "invalid route id"})
	}
	var req routeReq
	if bindAndValidate(c, &req) {
		return nil
	}
	rt := &model.Route{
		ID:            id,
		SourceID:      req.SourceID,
		DestinationID: req.DestinationID,
		Distance:      *req.Distance,
	}
	ctx := c.Request().Context()
	if err := h.Routes.Update(ctx, rt); err != nil {
		switch {
		case errors.Is(err, repository.ErrRouteNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "not_found"})
		case errors.Is(err, repository.ErrStationNotFound):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_request", "message": "station not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error"})
	}
	row, err := h.Routes.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error"})
	}
	return c.JSON(http.StatusOK, row)
}

// Delete handles DELETE /v1/routes/:id. STAFF only. Journeys on the
// route cascade away.
func (h *RouteHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_request", "message": "invalid route id"})
	}
	if err := h.Routes.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrRouteNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "not_found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error"})
	}
	return c.NoContent(http.StatusNoContent)
}
