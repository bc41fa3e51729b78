package middleware

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// userID renders the authenticated user's ID for rate-limit keys.
// JWTAuth stores the raw "sub" claim, which arrives as a float64
// after JSON decoding; tokens minted by other tooling may carry it
// as a string or integer. Unauthenticated requests share "anon".
func userID(c echo.Context) string {
	switch v := c.Get("user_id").(type) {
	case string:
		if v != "" {
			return v
		}
	case float64:
		return strconv.FormatUint(uint64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	}
	return "anon"
}
