package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Slava-Nykonenko/emerald-railroads/internal/handler"
	"github.com/Slava-Nykonenko/emerald-railroads/internal/middleware"
)

// RegisterAuth registers the session endpoints. Register, login,
// refresh and logout live under /v1/auth without a JWT guard: they
// are the routes that produce or consume tokens, so the only
// protection they need is the rate limiter (login sits in front of
// bcrypt). Logout also accepts a bare bearer token and parses the
// Authorization header itself, which is why it stays on the open
// group. /v1/me requires a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, rate echo.MiddlewareFunc) {
	g := e.Group("/v1/auth", rate)
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	auth := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("CUSTOMER", "STAFF"),
		rate,
	)
	auth.GET("/me", a.Me)
}
