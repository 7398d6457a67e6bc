package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxEmail extracts the email claim injected by the Auth middleware.
// A present, non-empty email proves the middleware ran; handlers behind
// it fail fast with 401 otherwise.
func ctxEmail(c echo.Context) (string, error) {
	email, _ := c.Get("email").(string)
	if email == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Missing authentication claims.")
	}
	return email, nil
}
