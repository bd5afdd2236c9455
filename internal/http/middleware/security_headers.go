package middleware

import (
	"github.com/labstack/echo/v4"
)

// The API never serves documents, so the policy denies everything
var securityHeaders = map[string]string{
	"Content-Security-Policy": "default-src 'none'; frame-ancestors 'none'; base-uri 'none'; form-action 'none'",
	"X-Content-Type-Options":  "nosniff",
	"X-Frame-Options":         "DENY",
	"Referrer-Policy":         "no-referrer",
	"Cache-Control":           "no-store",
	"Permissions-Policy":      "geolocation=(), microphone=(), camera=(), payment=(), usb=()",
}

const hstsValue = "max-age=31536000; includeSubDomains"

// SecurityHeaders adds security headers to all responses. HSTS is only
// sent when the deployment serves the auth cookie over TLS.
func SecurityHeaders(hsts bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()
			for name, value := range securityHeaders {
				h.Set(name, value)
			}
			if hsts {
				h.Set("Strict-Transport-Security", hstsValue)
			}

			// Remove server identification header
			h.Del("Server")
			h.Del("X-Powered-By")

			return next(c)
		}
	}
}
