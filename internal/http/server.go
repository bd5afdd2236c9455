package http

import (
	"context"
	stdhttp "net/http"
	"strings"
	"time"

	"library-service/internal/auth"
	"library-service/internal/config"
	"library-service/internal/http/handler"
	"library-service/internal/http/middleware"
	"library-service/internal/observability"
	"library-service/internal/repository"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var gatedPathPrefixes = []string{"/api", "/admin"}

const (
	jsonKeyStatus      = "status"
	statusOK           = "ok"
	statusUnavailable  = "unavailable"
	requestBodyLimit   = "1M"
	healthCheckTimeout = 2 * time.Second
)

// HealthChecker reports whether a backing service is reachable
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type ServerDependencies struct {
	Config         *config.Config
	Logger         observability.Logger
	DB             HealthChecker
	UserRepo       repository.UserRepository
	JWTService     handler.TokenIssuer
	AuthMiddleware *auth.Middleware
	AuditLogger    handler.ActionRecorder
	MetricsHandler stdhttp.Handler
	HTTPMetrics    *middleware.HTTPMetrics
}

type Server struct {
	echo *echo.Echo
	deps *ServerDependencies
}

func NewServer(deps *ServerDependencies) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	e.Server.ReadTimeout = deps.Config.Server.ReadTimeout
	e.Server.WriteTimeout = deps.Config.Server.WriteTimeout

	// Request ID middleware (first, so all logs have request ID)
	e.Use(middleware.RequestID())
	if deps.HTTPMetrics != nil {
		e.Use(deps.HTTPMetrics.Middleware())
	}
	e.Use(middleware.SecurityHeaders(deps.Config.Auth.CookieSecure))
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.BodyLimit(requestBodyLimit))

	// Global rate limiting, keyed by client IP since no identity exists yet
	globalRateLimiter := middleware.NewGlobalRateLimiter()
	e.Use(globalRateLimiter.Middleware())

	// Strict rate limiting for credential endpoints
	strictRateLimiter := middleware.NewStrictRateLimiter()
	// Per-user limiting once the gate has admitted the caller
	userRateLimiter := middleware.NewGlobalRateLimiter()

	authHandler := handler.NewAuthHandler(deps.UserRepo, deps.JWTService, deps.AuditLogger, handler.CookieOptions{
		Name:   deps.Config.Auth.CookieName,
		Domain: deps.Config.Auth.CookieDomain,
		Secure: deps.Config.Auth.CookieSecure,
	}, deps.Logger)
	userHandler := handler.NewUserHandler(deps.UserRepo)

	e.GET("/health", healthCheck(deps.DB))
	if deps.MetricsHandler != nil {
		e.GET("/metrics", echo.WrapHandler(deps.MetricsHandler))
	}

	// The gate runs for every request under the gated prefixes, including
	// unknown paths and wrong methods, before routing can answer 404 or 405.
	e.Use(gatedPrefixes(deps.AuthMiddleware.RequireIdentity(), gatedPathPrefixes...))
	e.Use(gatedPrefixes(userRateLimiter.Middleware(), gatedPathPrefixes...))

	api := e.Group("/api")
	api.POST("/auth/login", authHandler.Login, strictRateLimiter.Middleware())
	api.POST("/auth/register", authHandler.Register, strictRateLimiter.Middleware())
	api.POST("/auth/logout", authHandler.Logout, strictRateLimiter.Middleware())

	api.GET("/users/me", userHandler.GetUser)
	api.GET("/users/:id", userHandler.GetUser)

	return &Server{
		echo: e,
		deps: deps,
	}
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() stdhttp.Handler {
	return s.echo
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// DefaultMetricsHandler serves the default Prometheus registry
func DefaultMetricsHandler() stdhttp.Handler {
	return promhttp.Handler()
}

// gatedPrefixes applies mw only to paths equal to or below one of prefixes
func gatedPrefixes(mw echo.MiddlewareFunc, prefixes ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		gated := mw(next)
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			for _, prefix := range prefixes {
				if path == prefix || strings.HasPrefix(path, prefix+"/") {
					return gated(c)
				}
			}
			return next(c)
		}
	}
}

func healthCheck(db HealthChecker) echo.HandlerFunc {
	return func(c echo.Context) error {
		if db != nil {
			ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
			defer cancel()
			if err := db.Ping(ctx); err != nil {
				return c.JSON(stdhttp.StatusServiceUnavailable, map[string]string{
					jsonKeyStatus: statusUnavailable,
				})
			}
		}
		return c.JSON(stdhttp.StatusOK, map[string]string{
			jsonKeyStatus: statusOK,
		})
	}
}
