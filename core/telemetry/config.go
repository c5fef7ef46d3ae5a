package telemetry

// Config holds configuration for tracing.
type Config struct {
	// Enabled turns tracing on.
	Enabled bool `mapstructure:"enabled" default:"false"`
	// ServiceName is reported as service.name.
	ServiceName string `mapstructure:"service_name" default:"content-forge"`
	// Environment is reported as deployment.environment.
	Environment string `mapstructure:"environment" default:"development"`
	// Endpoint is the OTLP/HTTP collector endpoint. Empty exports to stdout.
	Endpoint string `mapstructure:"endpoint" default:""`
	// Insecure disables TLS towards the collector.
	Insecure bool `mapstructure:"insecure" default:"true"`
	// SampleRatio is the parent-based trace id ratio.
	SampleRatio float64 `mapstructure:"sample_ratio" default:"0.1"`
}
