package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Slava-Nykonenko/emerald-railroads/internal/model"
	"github.com/Slava-Nykonenko/emerald-railroads/internal/repository"
)

// JourneyHandler serves journey search, detail and staff scheduling.
type JourneyHandler struct {
	Journeys *repository.JourneyRepo
}

func NewJourneyHandler(journeys *repository.JourneyRepo) *JourneyHandler {
	if journeys == nil {
		panic("nil repository passed to NewJourneyHandler")
	}
	return &JourneyHandler{Journeys: journeys}
}

type journeyReq struct {
	RouteID       uint64   `json:"route_id" validate:"required,min=1"`
	TrainID       uint64   `json:"train_id" validate:"required,min=1"`
	DepartureTime string   `json:"departure_time" validate:"required"`
	ArrivalTime   string   `json:"arrival_time" validate:"required"`
	CrewIDs       []uint64 `json:"crew_ids"`
}

// parseSchedule validates the RFC3339 pair and the departure-before-
// arrival rule shared by Create and Update.
func parseSchedule(c echo.Context, req journeyReq) (dep, arr time.Time, handled bool) {
	dep, err := time.Parse(time.RFC3339, strings.TrimSpace(req.DepartureTime))
	if err != nil {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_request", "message": "invalid departure_time format"})
		return dep, arr, true
	}
	arr, err = time.Parse(time.RFC3339, strings.TrimSpace(req.ArrivalTime))
	if err != nil {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_request", "message": "invalid arrival_time format"})
		return dep, arr, true
	}
	if !dep.Before(arr) {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_schedule", "message": "departure_time must be before arrival_time"})
		return dep, arr, true
	}
	return dep, arr, false
}

// Search handles GET /v1/journeys. Public, upcoming only.
func (h *JourneyHandler) Search(c echo.Context) error {
	page, pageSize := pageParams(c, 10)
	q := repository.JourneySearchQuery{
		Source:      strings.TrimSpace(c.QueryParam("source")),
		Destination: strings.TrimSpace(c.QueryParam("destination")),
		Page:        page,
		PageSize:    pageSize,
	}
	if raw := strings.TrimSpace(c.QueryParam("date")); raw != "" {
		d, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_request", "message": "date must be YYYY-MM-DD"})
		}
		d = d.UTC()
		q.Date = &d
	}

	items, total, err := h.Journeys.SearchUpcoming(c.Request().Context(), q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error"})
	}
	return listResponse(c, items, total, page, pageSize)
}

// Get handles GET /v1/journeys/:id. Past journeys stay retrievable.
func (h *JourneyHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_request", "message": "invalid journey id"})
	}
	det, err := h.Journeys.GetDetail(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrJourneyNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "not_found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error"})
	}
	return c.JSON(http.StatusOK, det)
}

// Create handles POST /v1/journeys. STAFF only.
func (h *JourneyHandler) Create(c echo.Context) error {
	var req journeyReq
	if bindAndValidate(c, &req) {
		return nil
	}
	dep, arr, handled := parseSchedule(c, req)
	if handled {
		return nil
	}

	j := &model.Journey{
		RouteID:       req.RouteID,
		TrainID:       req.TrainID,
		DepartureTime: dep,
		ArrivalTime:   arr,
	}
	ctx := c.Request().Context()
	if err := h.Journeys.Create(ctx, j, req.CrewIDs); err != nil {
		switch {
		case errors.Is(err, repository.ErrRouteNotFound):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_request", "message": "route not found"})
		case errors.Is(err, repository.ErrTrainNotFound):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_request", "message": "train not found"})
		case errors.Is(err, repository.ErrCrewNotFound):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_request", "message": "crew member not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error"})
	}
	det, err := h.Journeys.GetDetail(ctx, j.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error"})
	}
	return c.JSON(http.StatusCreated, det)
}

// Update handles PUT /v1/journeys/:id. STAFF only. The crew set is
// replaced wholesale.
func (h *JourneyHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_request", "message": "invalid journey id"})
	}
	var req journeyReq
	if bindAndValidate(c, &req) {
		return nil
	}
	dep, arr, handled := parseSchedule(c, req)
	if handled {
		return nil
	}

	j := &model.Journey{
		ID:            id,
		RouteID:       req.RouteID,
		TrainID:       req.TrainID,
		DepartureTime: dep,
		ArrivalTime:   arr,
	}
	ctx := c.Request().Context()
	if err := h.Journeys.Update(ctx, j, req.CrewIDs); err != nil {
		switch {
		case errors.Is(err, repository.ErrJourneyNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "not_found"})
		case errors.Is(err, repository.ErrRouteNotFound):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_request", "message": "route not found"})
		case errors.Is(err, repository.ErrTrainNotFound):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_request", "message": "train not found"})
		case errors.Is(err, repository.ErrCrewNotFound):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_request", "message": "crew member not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error"})
	}
	det, err := h.Journeys.GetDetail(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error"})
	}
	return c.JSON(http.StatusOK, det)
}

// Delete handles DELETE /v1/journeys/:id. STAFF only. Sold tickets
// cascade away with the journey.
func (h *JourneyHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_request", "message": "invalid journey id"})
	}
	if err := h.Journeys.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrJourneyNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "not_found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error"})
	}
	return c.NoContent(http.StatusNoContent)
}
