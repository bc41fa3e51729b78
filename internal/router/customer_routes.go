package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Slava-Nykonenko/emerald-railroads/internal/handler"
	"github.com/Slava-Nykonenko/emerald-railroads/internal/middleware"
)

// RegisterCustomer registers the endpoints any authenticated user may
// call: detail views of the catalogue and the caller's own orders.
// STAFF passes too, the guard only rejects missing or unknown roles.
// JWT runs before the rate limiter so user-keyed bucket strategies
// see the subject claim.
func RegisterCustomer(
	e *echo.Echo,
	stations *handler.StationHandler,
	trains *handler.TrainHandler,
	routes *handler.RouteHandler,
	journeys *handler.JourneyHandler,
	orders *handler.OrderHandler,
	jwtSecret string,
	rate echo.MiddlewareFunc,
) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("CUSTOMER", "STAFF"),
		rate,
	)

	g.GET("/stations/:id", stations.Get)
	g.GET("/trains/:id", trains.Get)
	g.GET("/routes/:id", routes.Get)
	g.GET("/journeys/:id", journeys.Get)

	g.GET("/orders", orders.List)
	g.POST("/orders", orders.Create)
	g.GET("/orders/:id", orders.Get)
	g.DELETE("/orders/:id", orders.Delete)
}
