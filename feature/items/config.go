package items

import "time"

// Config holds configuration for item template planning.
type Config struct {
	// BatchSize is the number of specs per dispatched batch.
	BatchSize int `mapstructure:"batch_size" default:"50"`
	// GenerationLimit caps the specs planned per run (0 means no cap).
	GenerationLimit int `mapstructure:"generation_limit" default:"0"`
	// PurgeObsolete deletes persisted codes that are no longer legal.
	PurgeObsolete bool `mapstructure:"purge_obsolete" default:"false"`
	// PoolTTLSeconds is the lifetime of the cached etalon pool.
	PoolTTLSeconds int `mapstructure:"pool_ttl_seconds" default:"86400"`
	// BatchTTLSeconds is the lifetime of a pending batch record.
	BatchTTLSeconds int `mapstructure:"batch_ttl_seconds" default:"86400"`
}

// PoolTTL returns the etalon pool lifetime.
func (c Config) PoolTTL() time.Duration {
	return time.Duration(c.PoolTTLSeconds) * time.Second
}

// BatchTTL returns the pending batch lifetime.
func (c Config) BatchTTL() time.Duration {
	return time.Duration(c.BatchTTLSeconds) * time.Second
}
