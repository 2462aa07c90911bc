// Skywatch - Restricted Airspace Drone Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skywatch

package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context with timeout for schema operations
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range tableCreationQueries() {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}
	return nil
}

// tableCreationQueries returns the schema. logged_at is a plain TIMESTAMP
// written in UTC by the application, so the ICU extension is not needed.
func tableCreationQueries() []string {
	return []string{
		`CREATE SEQUENCE IF NOT EXISTS drone_logs_id_seq START 1`,
		`CREATE TABLE IF NOT EXISTS drone_logs (
			id BIGINT PRIMARY KEY DEFAULT nextval('drone_logs_id_seq'),
			callsign TEXT NOT NULL,
			latitude DOUBLE NOT NULL,
			longitude DOUBLE NOT NULL,
			altitude DOUBLE,
			velocity DOUBLE,
			unauthorized BOOLEAN NOT NULL,
			zone TEXT,
			source TEXT,
			logged_at TIMESTAMP NOT NULL
		)`,
	}
}

func (db *DB) createIndexes() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range indexQueries() {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to create index: %s: %w", query, err)
		}
	}
	return nil
}

func indexQueries() []string {
	return []string{
		`CREATE INDEX IF NOT EXISTS idx_drone_logs_callsign ON drone_logs(callsign)`,
		`CREATE INDEX IF NOT EXISTS idx_drone_logs_logged_at ON drone_logs(logged_at)`,
	}
}
