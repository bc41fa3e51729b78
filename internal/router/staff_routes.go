package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Slava-Nykonenko/emerald-railroads/internal/handler"
	"github.com/Slava-Nykonenko/emerald-railroads/internal/middleware"
)

// RegisterStaff registers everything that changes the catalogue, plus
// the crew and train-type areas which are staff-only on every verb.
// Crews and train types are operational data with no public read
// surface.
func RegisterStaff(
	e *echo.Echo,
	stations *handler.StationHandler,
	trainTypes *handler.TrainTypeHandler,
	trains *handler.TrainHandler,
	crews *handler.CrewHandler,
	routes *handler.RouteHandler,
	journeys *handler.JourneyHandler,
	jwtSecret string,
	rate echo.MiddlewareFunc,
) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("STAFF"),
		rate,
	)

	g.POST("/stations", stations.Create)
	g.PUT("/stations/:id", stations.Update)
	g.DELETE("/stations/:id", stations.Delete)

	g.GET("/train-types", trainTypes.List)
	g.GET("/train-types/:id", trainTypes.Get)
	g.POST("/train-types", trainTypes.Create)
	g.PUT("/train-types/:id", trainTypes.Update)
	g.DELETE("/train-types/:id", trainTypes.Delete)

	g.POST("/trains", trains.Create)
	g.PUT("/trains/:id", trains.Update)
	g.DELETE("/trains/:id", trains.Delete)
	g.POST("/trains/:id/image", trains.UploadImage)

	g.GET("/crews", crews.List)
	g.GET("/crews/:id", crews.Get)
	g.POST("/crews", crews.Create)
	g.PUT("/crews/:id", crews.Update)
	g.DELETE("/crews/:id", crews.Delete)

	g.POST("/routes", routes.Create)
	g.PUT("/routes/:id", routes.Update)
	g.DELETE("/routes/:id", routes.Delete)

	g.POST("/journeys", journeys.Create)
	g.PUT("/journeys/:id", journeys.Update)
	g.DELETE("/journeys/:id", journeys.Delete)
}
