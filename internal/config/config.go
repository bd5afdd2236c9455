package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	envPort                  = "PORT"
	envServerReadTimeout     = "SERVER_READ_TIMEOUT"
	envServerWriteTimeout    = "SERVER_WRITE_TIMEOUT"
	envServerShutdownTimeout = "SERVER_SHUTDOWN_TIMEOUT"
	envDBHost                = "DB_HOST"
	envDBPort                = "DB_PORT"
	envDBName                = "DB_NAME"
	envDBUser                = "DB_USER"
	envDBPassword            = "DB_PASSWORD"
	envDBSSLMode             = "DB_SSL_MODE"
	envDBMaxConns            = "DB_MAX_CONNS"
	envDBMinConns            = "DB_MIN_CONNS"
	envJWTSecret             = "JWT_SECRET"
	envJWTExpiry             = "JWT_EXPIRY_MINUTES"
	envAuthCookieName        = "AUTH_COOKIE_NAME"
	envAuthCookieDomain      = "AUTH_COOKIE_DOMAIN"
	envAuthCookieSecure      = "AUTH_COOKIE_SECURE"
	envAuthPublicRoutes      = "AUTH_PUBLIC_ROUTES"
	envLogLevel              = "LOG_LEVEL"
	envLogFormat             = "LOG_FORMAT"
)

const (
	defaultServerPort         = "8080"
	defaultServerReadTimeout  = 10 * time.Second
	defaultServerWriteTimeout = 10 * time.Second
	defaultServerShutdown     = 10 * time.Second
	defaultDBHost             = "localhost"
	defaultDBPort             = 5432
	defaultDBName             = "library"
	defaultDBUser             = "library_app"
	defaultDBSSLMode          = "disable"
	defaultDBMaxConns         = 25
	defaultDBMinConns         = 5
	defaultJWTExpiry          = 24 * time.Hour
	defaultAuthCookieName     = "auth-token"
	defaultLogLevel           = "info"
	defaultLogFormat          = "json"
	publicRouteSeparator      = ","
	minJWTSecretLength        = 32
	minUniqueCharsInSecret    = 16
	minRepeatedCharThreshold  = 4
	maxRepeatedChars          = 2
)

// DefaultPublicRoutes are reachable without a credential
var DefaultPublicRoutes = []string{
	"/api/auth/login",
	"/api/auth/register",
	"/api/auth/logout",
}

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Auth     AuthConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
	SSLMode  string
	MaxConns int
	MinConns int
}

type JWTConfig struct {
	Secret         string
	ExpiryDuration time.Duration
}

type AuthConfig struct {
	CookieName   string
	CookieDomain string
	CookieSecure bool
	PublicRoutes []string
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv(envPort, defaultServerPort),
			ReadTimeout:     getDurationEnv(envServerReadTimeout, defaultServerReadTimeout),
			WriteTimeout:    getDurationEnv(envServerWriteTimeout, defaultServerWriteTimeout),
			ShutdownTimeout: getDurationEnv(envServerShutdownTimeout, defaultServerShutdown),
		},
		Database: loadDatabase(),
		JWT: JWTConfig{
			Secret:         os.Getenv(envJWTSecret),
			ExpiryDuration: getDurationEnv(envJWTExpiry, defaultJWTExpiry),
		},
		Auth: AuthConfig{
			CookieName:   getEnv(envAuthCookieName, defaultAuthCookieName),
			CookieDomain: os.Getenv(envAuthCookieDomain),
			CookieSecure: getBoolEnv(envAuthCookieSecure, true),
			PublicRoutes: getListEnv(envAuthPublicRoutes, DefaultPublicRoutes),
		},
		Log: LogConfig{
			Level:  getEnv(envLogLevel, defaultLogLevel),
			Format: getEnv(envLogFormat, defaultLogFormat),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf(errInvalidConfigurationFmt, err)
	}

	return cfg, nil
}

// LoadDatabase reads only the database settings, for tooling that never
// serves requests.
func LoadDatabase() (*DatabaseConfig, error) {
	cfg := loadDatabase()
	if cfg.Password == "" {
		return nil, fmt.Errorf(errInvalidConfigurationFmt, errors.New(messages.requiredEnvNotSet(envDBPassword)))
	}
	return &cfg, nil
}

func loadDatabase() DatabaseConfig {
	return DatabaseConfig{
		Host:     getEnv(envDBHost, defaultDBHost),
		Port:     getIntEnv(envDBPort, defaultDBPort),
		Database: getEnv(envDBName, defaultDBName),
		User:     getEnv(envDBUser, defaultDBUser),
		Password: os.Getenv(envDBPassword),
		SSLMode:  getEnv(envDBSSLMode, defaultDBSSLMode),
		MaxConns: getIntEnv(envDBMaxConns, defaultDBMaxConns),
		MinConns: getIntEnv(envDBMinConns, defaultDBMinConns),
	}
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New(messages.requiredEnvNotSet(envPort))
	}

	if c.Database.Password == "" {
		return errors.New(messages.requiredEnvNotSet(envDBPassword))
	}

	if c.JWT.Secret == "" {
		return errors.New(messages.requiredEnvNotSet(envJWTSecret))
	}

	if len(c.JWT.Secret) < minJWTSecretLength {
		return fmt.Errorf(errJWTSecretMinLengthFmt, minJWTSecretLength)
	}

	if !hasMinimumEntropy(c.JWT.Secret) {
		return fmt.Errorf(errJWTSecretLowEntropy)
	}

	if c.JWT.ExpiryDuration <= 0 {
		return fmt.Errorf(errJWTExpiryPositive)
	}

	if c.Auth.CookieName == "" {
		return errors.New(messages.requiredEnvNotSet(envAuthCookieName))
	}

	for _, route := range c.Auth.PublicRoutes {
		if !strings.HasPrefix(route, "/") {
			return fmt.Errorf(errPublicRouteNotAbsoluteFmt, route)
		}
	}

	return nil
}

func hasMinimumEntropy(secret string) bool {
	if len(secret) < minJWTSecretLength {
		return false
	}

	charCounts := make(map[rune]int)
	for _, char := range secret {
		charCounts[char]++
	}

	uniqueChars := len(charCounts)
	if uniqueChars < minUniqueCharsInSecret {
		return false
	}

	repeatedChars := 0
	for _, count := range charCounts {
		if count > len(secret)/minRepeatedCharThreshold {
			repeatedChars++
		}
	}

	return repeatedChars <= maxRepeatedChars
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getListEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return append([]string(nil), defaultValue...)
	}

	var items []string
	for _, item := range strings.Split(value, publicRouteSeparator) {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		if minutes, err := strconv.Atoi(value); err == nil {
			return time.Duration(minutes) * time.Minute
		}
	}
	return defaultValue
}
