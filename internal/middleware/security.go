package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// SecurityHeaders adds security headers to all responses. The app only serves JSON to the
// Mattermost server, so nothing may be framed or run scripts.
func SecurityHeaders(domain string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Response().Header()
			header.Set("X-Content-Type-Options", "nosniff")
			header.Set("X-Frame-Options", "DENY")
			header.Set("Referrer-Policy", "no-referrer")
			header.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

			// HSTS only when served over HTTPS on a real domain
			proto := c.Request().Header.Get(echo.HeaderXForwardedProto)
			if domain != "" && !strings.Contains(domain, "localhost") && (proto == "https" || c.IsTLS()) {
				header.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}

			return next(c)
		}
	}
}
