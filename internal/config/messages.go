package config

import "fmt"

const (
	errRequiredEnvNotSetFmt      = "required environment variable %s is not set"
	errJWTSecretMinLengthFmt     = "JWT_SECRET must be at least %d characters"
	errJWTSecretLowEntropy       = "JWT_SECRET has insufficient entropy (appears non-random). Use a cryptographically secure random string."
	errJWTExpiryPositive         = "JWT_EXPIRY_MINUTES must be positive"
	errPublicRouteNotAbsoluteFmt = "public route %q must start with '/'"
	errInvalidConfigurationFmt   = "invalid configuration: %w"
)

type messageBuilders struct {
	requiredEnvNotSet func(string) string
}

func newMessageBuilders() messageBuilders {
	return messageBuilders{
		requiredEnvNotSet: func(key string) string {
			return fmt.Sprintf(errRequiredEnvNotSetFmt, key)
		},
	}
}

var messages = newMessageBuilders()
