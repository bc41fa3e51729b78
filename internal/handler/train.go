package handler

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Slava-Nykonenko/emerald-railroads/internal/model"
	"github.com/Slava-Nykonenko/emerald-railroads/internal/repository"
)

// TrainHandler serves the train resource, including photo uploads.
// MediaDir is the root the uploads land under.
type TrainHandler struct {
	Trains   *repository.TrainRepo
	MediaDir string
}

func NewTrainHandler(trains *repository.TrainRepo, mediaDir string) *TrainHandler {
	if trains == nil {
		panic("nil repository passed to NewTrainHandler")
	}
	return &TrainHandler{Trains: trains, MediaDir: mediaDir}
}

type trainReq struct {
	Name          string `json:"name" validate:"required"`
	CargoNum      int    `json:"cargo_num" validate:"required,min=1"`
	PlacesInCargo int    `json:"places_in_cargo" validate:"required,min=1"`
	TrainTypeID   uint64 `json:"train_type_id" validate:"required,min=1"`
}

// List handles GET /v1/trains. Public.
func (h *TrainHandler) List(c echo.Context) error {
	page, pageSize := pageParams(c, 25)
	trains, total, err := h.Trains.List(c.Request().Context(), page, pageSize)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error"})
	}
	return listResponse(c, trains, total, page, pageSize)
}

// Get handles GET /v1/trains/:id.
func (h *TrainHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_request", "message": "invalid train id"})
	}
	t, err := h.Trains.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrTrainNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "not_found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error"})
	}
	return c.JSON(http.StatusOK, t)
}

// Create handles POST /v1/trains. Any image value in the JSON body
// is ignored; photos arrive only through the upload endpoint.
func (h *TrainHandler) Create(c echo.Context) error {
	var req trainReq
	if bindAndValidate(c, &req) {
		return nil
	}
	t := &model.Train{
		Name:          strings.TrimSpace(req.Name),
		CargoNum:      req.CargoNum,
		PlacesInCargo: req.PlacesInCargo,
		TrainTypeID:   req.TrainTypeID,
	}
	ctx := c.Request().Context()
	if err := h.Trains.Create(ctx, t); err != nil {
		if errors.Is(err, repository.ErrTrainTypeNotFound) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_request", "message": "train type not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error"})
	}
	row, err := h.Trains.GetByID(ctx, t.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error"})
	}
	return c.JSON(http.StatusCreated, row)
}

// Update handles PUT /v1/trains/:id.
func (h *TrainHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_request", "message": "invalid train id"})
	}
	var req trainReq
	if bindAndValidate(c, &req) {
		return nil
	}
	t := &model.Train{
		ID:            id,
		Name:          strings.TrimSpace(req.Name),
		CargoNum:      req.CargoNum,
		PlacesInCargo: req.PlacesInCargo,
		TrainTypeID:   req.TrainTypeID,
	}
	ctx := c.Request().Context()
	if err := h.Trains.Update(ctx, t); err != nil {
		switch {
		case errors.Is(err, repository.ErrTrainNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "not_found"})
		case errors.Is(err, repository.ErrTrainTypeNotFound):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_request", "message": "train type not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error"})
	}
	row, err := h.Trains.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error"})
	}
	return c.JSON(http.StatusOK, row)
}

// Delete handles DELETE /v1/trains/:id. Journeys on the train
// cascade away.
func (h *TrainHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_request", "message": "invalid train id"})
	}
	if err := h.Trains.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrTrainNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "not_found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error"})
	}
	return c.NoContent(http.StatusNoContent)
}

// sniffImageExt decides the stored file extension from the first
// bytes of an upload. Only real image content passes; the client's
// filename and Content-Type header are not trusted.
func sniffImageExt(head []byte) (string, bool) {
	switch http.DetectContentType(head) {
	case "image/jpeg":
		return ".jpg", true
	case "image/png":
		return ".png", true
	case "image/gif":
		return ".gif", true
	case "image/webp":
		return ".webp", true
	}
	return "", false
}

// UploadImage handles POST /v1/trains/:id/image, multipart field
// "image". The file lands under MEDIA_DIR/trains with a random name;
// the train row keeps the relative path.
func (h *TrainHandler) UploadImage(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_request", "message": "invalid train id"})
	}
	ctx := c.Request().Context()
	if _, err := h.Trains.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrTrainNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "not_found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error"})
	}

	fh, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_request", "message": "image file required"})
	}
	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_request", "message": "unreadable upload"})
	}
	defer src.Close()

	head := make([]byte, 512)
	n, err := src.Read(head)
	if err != nil && err != io.EOF {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_request", "message": "unreadable upload"})
	}
	ext, ok := sniffImageExt(head[:n])
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_image"})
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "upload_failed"})
	}

	dir := filepath.Join(h.MediaDir, "trains")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "upload_failed"})
	}
	name := uuid.New().String() + ext
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "upload_failed"})
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "upload_failed"})
	}

	rel := "trains/" + name
	if err := h.Trains.SetImage(ctx, id, rel); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error"})
	}
	row, err := h.Trains.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error"})
	}
	return c.JSON(http.StatusOK, row)
}
