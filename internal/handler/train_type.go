package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Slava-Nykonenko/emerald-railroads/internal/model"
	"github.com/Slava-Nykonenko/emerald-railroads/internal/repository"
)

// TrainTypeHandler serves the train-type resource, staff only for
// every verb. The train repo backs the trains embed on detail.
type TrainTypeHandler struct {
	Types  *repository.TrainTypeRepo
	Trains *repository.TrainRepo
}

func NewTrainTypeHandler(types *repository.TrainTypeRepo, trains *repository.TrainRepo) *TrainTypeHandler {
	if types == nil || trains == nil {
		panic("nil repository passed to NewTrainTypeHandler")
	}
	return &TrainTypeHandler{Types: types, Trains: trains}
}

type trainTypeResp struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

type trainTypeReq struct {
	Name string `json:"name" validate:"required"`
}

// List handles GET /v1/train-types.
func (h *TrainTypeHandler) List(c echo.Context) error {
	page, pageSize := pageParams(c, 25)
	types, total, err := h.Types.List(c.Request().Context(), page, pageSize)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error"})
	}
	out := make([]trainTypeResp, 0, len(types))
	for _, t := range types {
		out = append(out, trainTypeResp{ID: t.ID, Name: t.Name})
	}
	return listResponse(c, out, total, page, pageSize)
}

// Get handles GET /v1/train-types/:id, embedding the trains of the
// type.
func (h *TrainTypeHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_request", "message": "invalid train type id"})
	}
	ctx := c.Request().Context()

	t, err := h.Types.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTrainTypeNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "not_found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error"})
	}
	trains, err := h.Trains.ListByType(ctx, t.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"id":     t.ID,
		"name":   t.Name,
		"trains": trains,
	})
}

// Create handles POST /v1/train-types.
func (h *TrainTypeHandler) Create(c echo.Context) error {
	var req trainTypeReq
	if bindAndValidate(c, &req) {
		return nil
	}
	t := &model.TrainType{Name: strings.TrimSpace(req.Name)}
	if err := h.Types.Create(c.Request().Context(), t); err != nil {
		if errors.Is(err, repository.ErrTrainTypeExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "train_type_exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error"})
	}
	return c.JSON(http.StatusCreated, trainTypeResp{ID: t.ID, Name: t.Name})
}

// Update handles PUT /v1/train-types/:id.
func (h *TrainTypeHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_request", "message": "invalid train type id"})
	}
	var req trainTypeReq
	if bindAndValidate(c, &req) {
		return nil
	}
	t := &model.TrainType{ID: id, Name: strings.TrimSpace(req.Name)}
	if err := h.Types.Update(c.Request().Context(), t); err != nil {
		switch {
		case errors.Is(err, repository.ErrTrainTypeNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "not_found"})
		case errors.Is(err, repository.ErrTrainTypeExists):
			return c.JSON(http.StatusConflict, echo.Map{"error": "train_type_exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error"})
	}
	return c.JSON(http.StatusOK, trainTypeResp{ID: t.ID, Name: t.Name})
}

// Delete handles DELETE /v1/train-types/:id. The protected foreign
// key turns deletion of a referenced type into a 409.
func (h *TrainTypeHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_request", "message": "invalid train type id"})
	}
	if err := h.Types.Delete(c.Request().Context(), id); err != nil {
		switch {
		case errors.Is(err, repository.ErrTrainTypeNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "not_found"})
		case errors.Is(err, repository.ErrTrainTypeInUse):
			return c.JSON(http.StatusConflict, echo.Map{"error": "train_type_in_use"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error"})
	}
	return c.NoContent(http.StatusNoContent)
}
