package config

import (
	"errors"
	"reflect"
	"strings"

	"content-forge/core/cache"
	"content-forge/core/database"
	"content-forge/core/errs"
	"content-forge/core/logger"
	"content-forge/core/pipeline"
	"content-forge/core/queue"
	"content-forge/core/reference"
	"content-forge/core/server"
	"content-forge/core/storage"
	"content-forge/core/telemetry"
	"content-forge/feature/characters"
	"content-forge/feature/items"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations owned by the packages they configure.
type Config struct {
	// Server holds configuration for the HTTP server and the process role.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the object storage holding seed files.
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the relational store.
	Database database.Config `mapstructure:"database"`
	// Cache holds configuration for the cache backend.
	Cache cache.Config `mapstructure:"cache"`
	// Queue holds configuration for the job queue and its consumer.
	Queue queue.Config `mapstructure:"queue"`
	// Pipeline holds configuration for the pre-start pipeline.
	Pipeline pipeline.Config `mapstructure:"pipeline"`
	// Telemetry holds configuration for tracing.
	Telemetry telemetry.Config `mapstructure:"telemetry"`
	// Reference holds configuration for the seed source.
	Reference reference.Config `mapstructure:"reference"`
	// Items holds configuration for item template planning.
	Items items.Config `mapstructure:"items"`
	// Characters holds configuration for character pool planning.
	Characters characters.Config `mapstructure:"characters"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. SERVER_PORT -> server.port)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks the settings that have no usable fallback. Map-shaped settings are
// parsed here so a malformed value fails at startup, not at the first planning run.
func (c *Config) Validate() error {
	var problems []error

	if !c.Server.IsValidRole() {
		problems = append(problems, errs.Configuration("server.role %q must be all, api or worker", c.Server.Role))
	}
	switch c.Reference.Source {
	case reference.SourceDir, reference.SourceBucket:
	default:
		problems = append(problems, errs.Configuration("reference.source %q must be dir or bucket", c.Reference.Source))
	}
	if c.Items.BatchSize <= 0 {
		problems = append(problems, errs.Configuration("items.batch_size must be positive"))
	}
	if c.Characters.BatchSize <= 0 {
		problems = append(problems, errs.Configuration("characters.batch_size must be positive"))
	}
	if c.Pipeline.MaxAttempts <= 0 {
		problems = append(problems, errs.Configuration("pipeline.max_attempts must be positive"))
	}
	if _, err := c.Characters.MaleRatio(); err != nil {
		problems = append(problems, err)
	}
	if _, err := c.Characters.Distribution(); err != nil {
		problems = append(problems, err)
	}

	return errors.Join(problems...)
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
