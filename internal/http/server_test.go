package http

import (
	"context"
	"encoding/json"
	"errors"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"library-service/internal/audit"
	"library-service/internal/auth"
	"library-service/internal/config"
	"library-service/internal/domain/user"
	"library-service/internal/http/middleware"
	"library-service/internal/observability"
	"library-service/internal/rbac"
	"library-service/internal/rbac/presets"
	apperrors "library-service/pkg/errors"
	"library-service/pkg/password"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "k9#Qm2$vXz7!Lp4&Rt8*Wn3^Hy6@Bc1%"

type memoryUsers struct {
	users map[int64]*user.User
}

func (m *memoryUsers) GetByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.NotFound("user not found")
}

func (m *memoryUsers) GetByID(_ context.Context, id int64) (*user.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, apperrors.NotFound("user not found")
}

func (m *memoryUsers) Create(_ context.Context, input user.CreateUserInput) (*user.User, error) {
	u := &user.User{ID: int64(len(m.users) + 100), Email: input.Email, Role: input.Role}
	m.users[u.ID] = u
	return u, nil
}

func (m *memoryUsers) UpdateLastConnected(context.Context, int64) error { return nil }

type noopRecorder struct{}

func (noopRecorder) Record(echo.Context, audit.Action, *int64, map[string]any) {}

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

type serverFixture struct {
	handler stdhttp.Handler
	jwt     *auth.JWTService
}

func newServerFixture(t *testing.T, db HealthChecker) serverFixture {
	t.Helper()

	hash, err := password.HashWithCost("reader-pass", password.MinCost)
	require.NoError(t, err)
	users := &memoryUsers{users: map[int64]*user.User{
		42: {ID: 42, Email: "reader@library.org", PasswordHash: hash, FirstName: "Ada", Role: presets.RoleClient},
		43: {ID: 43, Email: "other@library.org", FirstName: "Grace", Role: presets.RoleClient},
	}}

	cfg := &config.Config{
		Server: config.ServerConfig{ReadTimeout: time.Second, WriteTimeout: time.Second},
		Auth:   config.AuthConfig{CookieName: auth.DefaultCookieName, PublicRoutes: config.DefaultPublicRoutes},
	}

	checker := rbac.MustNew(presets.Library())
	jwtService := auth.NewJWTService(testSecret, time.Hour, checker)
	gate := auth.NewGate(jwtService, checker, cfg.Auth.PublicRoutes)
	reg := prometheus.NewRegistry()
	metrics := auth.NewMetricsWithRegisterer("test", reg)

	srv := NewServer(&ServerDependencies{
		Config:         cfg,
		Logger:         observability.NopLogger(),
		DB:             db,
		UserRepo:       users,
		JWTService:     jwtService,
		AuthMiddleware: auth.NewMiddleware(gate, cfg.Auth.CookieName, nil, metrics),
		AuditLogger:    noopRecorder{},
		MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		HTTPMetrics:    middleware.NewHTTPMetrics("test", reg),
	})

	return serverFixture{handler: srv.Handler(), jwt: jwtService}
}

func (f serverFixture) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *stdhttp.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func (f serverFixture) token(t *testing.T, id int64, role rbac.Role) string {
	t.Helper()
	token, err := f.jwt.Generate(auth.Subject{UserID: id, Role: role})
	require.NoError(t, err)
	return token
}

func reasonOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["reason"]
}

func TestServerHealth(t *testing.T) {
	rec := newServerFixture(t, pinger{}).do(t, stdhttp.MethodGet, "/health", "", "")
	assert.Equal(t, stdhttp.StatusOK, rec.Code)

	rec = newServerFixture(t, pinger{err: errors.New("down")}).do(t, stdhttp.MethodGet, "/health", "", "")
	assert.Equal(t, stdhttp.StatusServiceUnavailable, rec.Code)
}

func TestServerGatesUnknownRoutes(t *testing.T) {
	f := newServerFixture(t, nil)

	rec := f.do(t, stdhttp.MethodGet, "/api/does-not-exist", "", "")
	assert.Equal(t, stdhttp.StatusUnauthorized, rec.Code)
	assert.Equal(t, "MissingCredential", reasonOf(t, rec))

	rec = f.do(t, stdhttp.MethodGet, "/admin", f.token(t, 42, presets.RoleClient), "")
	assert.Equal(t, stdhttp.StatusForbidden, rec.Code)
	assert.Equal(t, "InsufficientPermission", reasonOf(t, rec))

	// authorized but unhandled here
	rec = f.do(t, stdhttp.MethodGet, "/api/books", f.token(t, 42, presets.RoleClient), "")
	assert.Equal(t, stdhttp.StatusNotFound, rec.Code)
}

func TestServerGatesWrongMethod(t *testing.T) {
	f := newServerFixture(t, nil)

	rec := f.do(t, stdhttp.MethodDelete, "/api/users/me", "", "")
	assert.Equal(t, stdhttp.StatusUnauthorized, rec.Code)

	rec = f.do(t, stdhttp.MethodDelete, "/api/users/me", f.token(t, 42, presets.RoleClient), "")
	assert.Equal(t, stdhttp.StatusForbidden, rec.Code)
	assert.Equal(t, "InsufficientPermission", reasonOf(t, rec))
}

func TestServerLoginThenReadSelf(t *testing.T) {
	f := newServerFixture(t, nil)

	rec := f.do(t, stdhttp.MethodPost, "/api/auth/login", "", `{"email":"reader@library.org","password":"reader-pass"}`)
	require.Equal(t, stdhttp.StatusOK, rec.Code, rec.Body.String())
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)

	req := httptest.NewRequest(stdhttp.MethodGet, "/api/users/me", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	require.Equal(t, stdhttp.StatusOK, rec.Code)
	var profile user.Profile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	assert.Equal(t, int64(42), profile.ID)
}

func TestServerSelfScope(t *testing.T) {
	f := newServerFixture(t, nil)
	client := f.token(t, 42, presets.RoleClient)
	admin := f.token(t, 1, presets.RoleAdmin)

	rec := f.do(t, stdhttp.MethodGet, "/api/users/42", client, "")
	assert.Equal(t, stdhttp.StatusOK, rec.Code)

	rec = f.do(t, stdhttp.MethodGet, "/api/users/43", client, "")
	assert.Equal(t, stdhttp.StatusForbidden, rec.Code)
	assert.Equal(t, "ForbiddenScope", reasonOf(t, rec))

	rec = f.do(t, stdhttp.MethodGet, "/api/users/43", admin, "")
	require.Equal(t, stdhttp.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Grace")
}

func TestServerPublicRoutesIgnoreBadTokens(t *testing.T) {
	f := newServerFixture(t, nil)

	rec := f.do(t, stdhttp.MethodPost, "/api/auth/logout", "not-a-token", "")
	assert.Equal(t, stdhttp.StatusOK, rec.Code)
}

func TestServerMetricsEndpoint(t *testing.T) {
	f := newServerFixture(t, nil)
	f.do(t, stdhttp.MethodGet, "/api/books", "", "")

	rec := f.do(t, stdhttp.MethodGet, "/metrics", "", "")
	assert.Equal(t, stdhttp.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "test_auth_decisions_total")
	assert.Contains(t, rec.Body.String(), "test_http_requests_total")
	assert.Contains(t, rec.Body.String(), `status="401"`)
}

func TestGatedPrefixes(t *testing.T) {
	hits := 0
	mw := gatedPrefixes(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			hits++
			return next(c)
		}
	}, "/api")

	e := echo.New()
	for _, path := range []string{"/api", "/api/books", "/apis", "/health"} {
		c := e.NewContext(httptest.NewRequest(stdhttp.MethodGet, path, nil), httptest.NewRecorder())
		require.NoError(t, mw(func(echo.Context) error { return nil })(c))
	}
	assert.Equal(t, 2, hits)
}
