package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Slava-Nykonenko/emerald-railroads/internal/model"
	"github.com/Slava-Nykonenko/emerald-railroads/internal/repository"
)

// CrewHandler serves the crew resource, staff only for every verb.
type CrewHandler struct {
	Crews *repository.CrewRepo
}

func NewCrewHandler(crews *repository.CrewRepo) *CrewHandler {
	if crews == nil {
		panic("nil repository passed to NewCrewHandler")
	}
	return &CrewHandler{Crews: crews}
}

type crewResp struct {
	ID        uint64 `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
}

type crewReq struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
}

func crewToResp(cr model.Crew) crewResp {
	return crewResp{ID: cr.ID, FirstName: cr.FirstName, LastName: cr.LastName, FullName: cr.FullName()}
}

// List handles GET /v1/crews.
func (h *CrewHandler) List(c echo.Context) error {
	page, pageSize := pageParams(c, 25)
	crews, total, err := h.Crews.List(c.Request().Context(), page, pageSize)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error"})
	}
	out := make([]crewResp, 0, len(crews))
	for _, cr := range crews {
		out = append(out, crewToResp(cr))
	}
	return listResponse(c, out, total, page, pageSize)
}

// Get handles GET /v1/crews/:id.
func (h *CrewHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_request", "message": "invalid crew id"})
	}
	cr, err := h.Crews.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrCrewNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "not_found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error"})
	}
	return c.JSON(http.StatusOK, crewToResp(*cr))
}

// Create handles POST /v1/crews.
func (h *CrewHandler) Create(c echo.Context) error {
	var req crewReq
	if bindAndValidate(c, &req) {
		return nil
	}
	cr := &model.Crew{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
	}
	if err := h.Crews.Create(c.Request().Context(), cr); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error"})
	}
	return c.JSON(http.StatusCreated, crewToResp(*cr))
}

// Update handles PUT /v1/crews/:id.
func (h *CrewHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_request", "message": "invalid crew id"})
	}
	var req crewReq
	if bindAndValidate(c, &req) {
		return nil
	}
	cr := &model.Crew{
		ID:        id,
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
	}
	if err := h.Crews.Update(c.Request().Context(), cr); err != nil {
		if errors.Is(err, repository.ErrCrewNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "not_found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error"})
	}
	return c.JSON(http.StatusOK, crewToResp(*cr))
}

// Delete handles DELETE /v1/crews/:id. Journey assignments cascade;
// the journeys themselves stay.
func (h *CrewHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_request", "message": "invalid crew id"})
	}
	if err := h.Crews.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrCrewNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "not_found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error"})
	}
	return c.NoContent(http.StatusNoContent)
}
