package cache

// Config holds configuration for the cache backend.
type Config struct {
	// Driver selects the backend (redis, memory).
	Driver string `mapstructure:"driver" default:"redis"`
	// Addr is the redis host:port.
	Addr string `mapstructure:"addr" default:"localhost:6379"`
	// Password is the redis password.
	Password string `mapstructure:"password" default:""`
	// DB is the redis logical database index.
	DB int `mapstructure:"db" default:"0"`
	// TimeoutSeconds bounds dialing and the initial ping.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"5"`
}
