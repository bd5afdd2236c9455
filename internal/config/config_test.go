package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "k9#Qm2$vXz7!Lp4&Rt8*Wn3^Hy6@Bc1%"

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv(envDBPassword, "s3cret")
	t.Setenv(envJWTSecret, testSecret)
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, defaultServerPort, cfg.Server.Port)
	assert.Equal(t, 24*time.Hour, cfg.JWT.ExpiryDuration)
	assert.Equal(t, "auth-token", cfg.Auth.CookieName)
	assert.True(t, cfg.Auth.CookieSecure)
	assert.Equal(t, DefaultPublicRoutes, cfg.Auth.PublicRoutes)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv(envJWTExpiry, "30")
	t.Setenv(envAuthCookieSecure, "false")
	t.Setenv(envAuthPublicRoutes, " /api/auth/login , /api/auth/register,")
	t.Setenv(envServerReadTimeout, "3s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 30*time.Minute, cfg.JWT.ExpiryDuration)
	assert.False(t, cfg.Auth.CookieSecure)
	assert.Equal(t, []string{"/api/auth/login", "/api/auth/register"}, cfg.Auth.PublicRoutes)
	assert.Equal(t, 3*time.Second, cfg.Server.ReadTimeout)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"missing secret", map[string]string{envJWTSecret: ""}, envJWTSecret},
		{"short secret", map[string]string{envJWTSecret: "short"}, "at least 32"},
		{"low entropy secret", map[string]string{envJWTSecret: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"}, "entropy"},
		{"missing db password", map[string]string{envDBPassword: ""}, envDBPassword},
		{"relative public route", map[string]string{envAuthPublicRoutes: "api/auth/login"}, "must start with '/'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDSN(t *testing.T) {
	db := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", Database: "library", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=library sslmode=disable", db.DSN())
}

func TestLoadDatabase(t *testing.T) {
	t.Setenv(envDBPassword, "")
	_, err := LoadDatabase()
	require.Error(t, err)

	t.Setenv(envDBPassword, "s3cret")
	t.Setenv(envDBPort, "6543")
	db, err := LoadDatabase()
	require.NoError(t, err)
	assert.Equal(t, 6543, db.Port)
	assert.Equal(t, defaultDBName, db.Database)
}
