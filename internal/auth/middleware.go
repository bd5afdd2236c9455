package auth

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"library-service/internal/observability"
	"library-service/pkg/logger"

	"github.com/labstack/echo/v4"
)

var identityHeaders = []string{HeaderUserID, HeaderUserRole, HeaderLibraryID, HeaderRequestedUserID}

type Middleware struct {
	gate       *Gate
	cookieName string
	logger     observability.Logger
	metrics    *Metrics
}

func NewMiddleware(gate *Gate, cookieName string, log observability.Logger, metrics *Metrics) *Middleware {
	if cookieName == "" {
		cookieName = DefaultCookieName
	}
	if log == nil {
		log = observability.NopLogger()
	}
	return &Middleware{
		gate:       gate,
		cookieName: cookieName,
		logger:     log,
		metrics:    metrics,
	}
}

// RequireIdentity gates every request through the authorization pipeline.
// Admitted requests continue with a cloned request carrying the caller's
// identity; the inbound request is never mutated.
func (m *Middleware) RequireIdentity() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			start := time.Now()

			decision := m.gate.Authorize(Request{
				Method: req.Method,
				Path:   req.URL.Path,
				Token:  m.extractToken(c),
			})
			m.metrics.RecordDecision(decision, time.Since(start))

			switch decision.Outcome {
			case OutcomeBypass:
				c.SetRequest(stripped(req))
				return next(c)
			case OutcomeRejected:
				m.logRejection(c, decision.Rejection)
				return respondRejection(c, decision.Rejection)
			}

			m.logger.Debug("request authorized",
				observability.String("path", req.URL.Path),
				observability.Int64("user_id", decision.Identity.UserID),
				observability.String("role", string(decision.Identity.Role)),
			)
			propagate(c, decision.Identity)
			return next(c)
		}
	}
}

// extractToken reads the session cookie first and falls back to a bearer header.
func (m *Middleware) extractToken(c echo.Context) string {
	if cookie, err := c.Cookie(m.cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return extractBearerToken(c)
}

func extractBearerToken(c echo.Context) string {
	authHeader := c.Request().Header.Get(headerAuthorization)
	if authHeader == "" {
		return ""
	}

	parts := strings.Fields(authHeader)
	if len(parts) != authHeaderParts || strings.ToLower(parts[0]) != bearerScheme {
		return ""
	}

	return parts[1]
}

func stripped(req *http.Request) *http.Request {
	out := req.Clone(req.Context())
	for _, h := range identityHeaders {
		out.Header.Del(h)
	}
	return out
}

func propagate(c echo.Context, id *Identity) {
	out := stripped(c.Request())
	out = out.WithContext(WithIdentity(out.Context(), id))

	out.Header.Set(HeaderUserID, strconv.FormatInt(id.UserID, 10))
	out.Header.Set(HeaderUserRole, string(id.Role))
	if id.LibraryID != nil {
		out.Header.Set(HeaderLibraryID, strconv.FormatInt(*id.LibraryID, 10))
	}
	if id.TargetUserID != nil {
		out.Header.Set(HeaderRequestedUserID, strconv.FormatInt(*id.TargetUserID, 10))
	}
	c.SetRequest(out)

	c.Set(ContextKeyUserID, id.UserID)
	c.Set(ContextKeyUserRole, id.Role)
	if id.LibraryID != nil {
		c.Set(ContextKeyLibraryID, *id.LibraryID)
	}
	if id.TargetUserID != nil {
		c.Set(ContextKeyTargetUserID, *id.TargetUserID)
	}
}

func (m *Middleware) logRejection(c echo.Context, r *Rejection) {
	req := c.Request()
	m.logger.Warn("request rejected",
		observability.String("method", req.Method),
		observability.String("path", req.URL.Path),
		observability.String("reason", string(r.Reason)),
		observability.String("detail", r.Detail()),
		observability.Int("status", r.Status),
		observability.String("cause", logger.SanitizeLogMessage(r.Err.Error())),
		observability.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
	)
}

func respondRejection(c echo.Context, r *Rejection) error {
	if r.Status == http.StatusUnauthorized {
		c.Response().Header().Set(headerWWWAuthenticate, bearerChallenge)
	}
	return c.JSON(r.Status, map[string]string{
		jsonKeyError:  r.Reason.Message(),
		jsonKeyReason: string(r.Reason),
	})
}
