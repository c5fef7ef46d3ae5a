package server

import "time"

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	ApiKey string `mapstructure:"api_key" default:""`
	// Role selects what the start command runs (all, api, worker).
	Role string `mapstructure:"role" default:"all"`
	// ShutdownTimeoutSeconds bounds the graceful shutdown.
	ShutdownTimeoutSeconds int `mapstructure:"shutdown_timeout_seconds" default:"10"`
}

const (
	RoleAll    = "all"
	RoleAPI    = "api"
	RoleWorker = "worker"
)

// IsValidRole checks if the configured role is valid.
func (c Config) IsValidRole() bool {
	switch c.Role {
	case RoleAll, RoleAPI, RoleWorker:
		return true
	default:
		return false
	}
}

// ServesAPI reports whether the HTTP listener should start.
func (c Config) ServesAPI() bool {
	return c.Role == RoleAll || c.Role == RoleAPI
}

// RunsWorker reports whether the queue consumer should start.
func (c Config) RunsWorker() bool {
	return c.Role == RoleAll || c.Role == RoleWorker
}

// ShutdownTimeout returns the graceful shutdown budget.
func (c Config) ShutdownTimeout() time.Duration {
	if c.ShutdownTimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}
