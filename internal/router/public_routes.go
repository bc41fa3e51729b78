package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Slava-Nykonenko/emerald-railroads/internal/handler"
)

// RegisterPublic registers the unauthenticated browse endpoints:
// station, train and route catalogues plus journey search. These are
// the only routes behind the response cache, so a cache hit still
// passes the rate limiter but skips the database entirely. Writes
// bypass the cache, meaning a fresh list can lag an admin change by
// at most the configured TTL.
func RegisterPublic(
	e *echo.Echo,
	stations *handler.StationHandler,
	trains *handler.TrainHandler,
	routes *handler.RouteHandler,
	journeys *handler.JourneyHandler,
	rate, cache echo.MiddlewareFunc,
) {
	e.GET("/v1/stations", stations.List, rate, cache)
	e.GET("/v1/trains", trains.List, rate, cache)
	e.GET("/v1/routes", routes.List, rate, cache)
	e.GET("/v1/journeys", journeys.Search, rate, cache)
}
