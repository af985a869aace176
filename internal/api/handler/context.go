package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxUserID returns the authenticated user id injected by the Auth middleware.
// An empty id means the middleware did not run or the token had no subject.
func ctxUserID(c echo.Context) (string, error) {
	id, _ := c.Get("user_id").(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}
