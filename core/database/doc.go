// Package database handles relational store connections and schema inspection.
//
// It wraps GORM and selects the dialect from configuration: MySQL (default),
// PostgreSQL, or SQLite (local runs and tests, pinned to one connection so an
// in-memory database stays a single database).
//
// # Connect
//
// Connect opens the dialect, applies pool settings and pings with the configured
// timeout. The relational store is the single writer-of-record for generated items and
// character pool entries.
//
// # Schema Inspection
//
// GetTableColumns reads column definitions per dialect (PRAGMA table_info,
// information_schema, SHOW COLUMNS). VerifyColumns is used by the pre-start pipeline to
// fail fast when a generation table is missing.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    return err
//	}
//	err = database.VerifyColumns(db, map[string][]string{"item_templates": {"item_code"}})
package database
