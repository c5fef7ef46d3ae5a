// Package utils provides common utility functions for content-forge.
// It includes loose type conversion for seed and database values and the parser for
// "KEY:value" weight strings used by map-shaped configuration settings.
package utils
