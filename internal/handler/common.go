// Package handler exposes the HTTP handlers behind the /v1 API.
package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// validate checks request DTOs against their struct tags. One
// instance is shared; the validator caches struct metadata.
var validate = validator.New()

// getUserID extracts the user_id stored by the JWT middleware and
// converts it to uint64. JSON numeric claims arrive as float64.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// parseID reads the :id path parameter. Zero is rejected; MySQL
// auto-increment IDs start at 1.
func parseID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

// pageParams reads ?page and ?page_size with the usual clamps: page
// at least 1, size defaulting per endpoint and capped at 100.
func pageParams(c echo.Context, defaultSize int) (page, pageSize int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ = strconv.Atoi(c.QueryParam("page_size"))
	if pageSize < 1 {
		pageSize = defaultSize
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}

// listResponse is the envelope every list endpoint returns.
func listResponse(c echo.Context, items interface{}, total int64, page, pageSize int) error {
	return c.JSON(http.StatusOK, echo.Map{
		"data":      items,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// bindAndValidate binds the JSON body into v and runs the struct
// tags. On failure it writes the 400 itself and reports handled=true
// so callers just return nil.
func bindAndValidate(c echo.Context, v interface{}) (handled bool) {
	if err := c.Bind(v); err != nil {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_request", "message": "malformed body"})
		return true
	}
	if err := validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			details := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				details = append(details, fmt.Sprintf("%s: %s", fe.Field(), fe.Tag()))
			}
			_ = c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_request", "details": details})
			return true
		}
		_ = c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_request"})
		return true
	}
	return false
}
