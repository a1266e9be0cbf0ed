package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// AdminOnly gates admin routes on the admin claim injected by Auth.
func AdminOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			admin, _ := c.Get("admin").(bool)
			if !admin {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
