package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// SelfOnly restricts a route to the user named by the given path parameter.
// It must run after Auth.
func SelfOnly(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, _ := c.Get("user_id").(string)
			if userID == "" || userID != c.Param(param) {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
