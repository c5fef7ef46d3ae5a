// Package server holds the HTTP server configuration and constants.
//
// While the main application entry point handles the server startup, this package
// defines the configuration structures and valid values for server settings.
//
// # Configuration
//
// The Config struct defines the HTTP port, the API key and the process role. The role
// decides what "start" runs: the HTTP API, the generation queue consumer, or both (all).
//
// # Usage
//
// This package is primarily used by the core/config package to embed server settings
// and by the start command to decide which loops to launch.
package server
