package pipeline

import "time"

// Config holds configuration for the pre-start pipeline.
type Config struct {
	// RunOnStart runs the pipeline before the server accepts requests.
	RunOnStart bool `mapstructure:"run_on_start" default:"true"`
	// MaxAttempts is the number of tries per step.
	MaxAttempts int `mapstructure:"max_attempts" default:"3"`
	// RetryDelaySeconds is the fixed delay between tries.
	RetryDelaySeconds int `mapstructure:"retry_delay_seconds" default:"5"`
	// LockTTLSeconds bounds the planner lock held by one pipeline run.
	LockTTLSeconds int `mapstructure:"lock_ttl_seconds" default:"600"`
}

// Policy builds the retry policy described by the configuration.
func (c Config) Policy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: c.MaxAttempts,
		Delay:       time.Duration(c.RetryDelaySeconds) * time.Second,
	}
}
