package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// AdminOnly gates a route on administrator identity. The check is a
// strict email equality against the single configured administrator
// address, not a role comparison: an executive-role user with a
// different email is still refused.
func AdminOnly(adminEmail string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			email, _ := c.Get("email").(string)
			if email == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing authentication claims.")
			}
			if email != adminEmail {
				return echo.NewHTTPError(http.StatusForbidden, "Admin access required.")
			}
			return next(c)
		}
	}
}
