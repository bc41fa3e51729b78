// Package router wires HTTP paths to their handlers. Each Register
// function owns one access level so the guard chain is visible where
// the routes are declared.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Slava-Nykonenko/emerald-railroads/internal/handler"
)

// RegisterRoutes registers routes that sit outside the /v1 surface.
// Only the health probe lives here; it is deliberately exempt from
// rate limiting so load balancer checks never spend tokens.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}
