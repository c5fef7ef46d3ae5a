// Package config provides configuration management for content-forge.
//
// It utilizes Viper for loading configuration from environment variables and an optional
// .env file. Every key has a default declared on the owning struct through the
// `mapstructure` and `default` tags; bindValues walks the tree and registers each key so
// AutomaticEnv can override it.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP port, API key, process role (all, api, worker), shutdown timeout
//   - Database: relational store driver (mysql, postgres, sqlite) and connection details
//   - Cache: redis or in-memory cache backing reference data and batch records
//   - Queue: job queue backend, list name and consumer concurrency
//   - Storage: MinIO/S3 credentials and the bucket holding seed files
//   - Reference: seed source (dir or bucket) and its location
//   - Pipeline: pre-start retry policy, planner lock ttl, run on start
//   - Items / Characters: planning batch sizes, targets and distributions
//   - Telemetry: OpenTelemetry tracing
//   - Log: Logging level and format
//
// Nested keys map to environment variables by replacing "." with "_":
//
//	SERVER_PORT=8080
//	CHARACTERS_QUALITY_DISTRIBUTION=ELITE_QUALITY:0.1,BASIC_QUALITY:0.9
//	CACHE_DRIVER=memory
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package config
