// Skywatch - Restricted Airspace Drone Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skywatch

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tomtom215/skywatch/internal/database/query"
	"github.com/tomtom215/skywatch/internal/metrics"
	"github.com/tomtom215/skywatch/internal/models"
)

// Drone log query limits.
const (
	DefaultLogLimit = 100
	MaxLogLimit     = 1000
)

const insertDroneLogSQL = `INSERT INTO drone_logs
	(callsign, latitude, longitude, altitude, velocity, unauthorized, zone, source, logged_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

// DroneLogFilter narrows RecentLogs.
type DroneLogFilter struct {
	Limit            int
	UnauthorizedOnly bool
	Callsign         string
	Zone             string
	Since            *time.Time
}

func (f DroneLogFilter) limit() int {
	switch {
	case f.Limit <= 0:
		return DefaultLogLimit
	case f.Limit > MaxLogLimit:
		return MaxLogLimit
	default:
		return f.Limit
	}
}

// LogReport inserts one classified report.
func (db *DB) LogReport(ctx context.Context, r models.ClassifiedReport) error {
	db.mu.RLock()
	defer db.mu.RUnlock()
	if db.conn == nil {
		return ErrClosed
	}

	ctx, cancel := ensureContext(ctx)
	defer cancel()

	start := time.Now()
	_, err := db.conn.ExecContext(ctx, insertDroneLogSQL, reportArgs(r, time.Now().UTC())...)
	metrics.RecordDBQuery("insert", "drone_logs", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("insert drone log %s: %w", r.Callsign, err)
	}
	return nil
}

// LogReports inserts a whole cycle in one transaction. All rows share the
// same logged_at.
func (db *DB) LogReports(ctx context.Context, reports []models.ClassifiedReport) error {
	if len(reports) == 0 {
		return nil
	}
	db.mu.RLock()
	defer db.mu.RUnlock()
	if db.conn == nil {
		return ErrClosed
	}

	ctx, cancel := ensureContext(ctx)
	defer cancel()

	start := time.Now()
	err := db.insertBatch(ctx, reports, time.Now().UTC())
	metrics.RecordDBQuery("insert_batch", "drone_logs", time.Since(start), err)
	return err
}

func (db *DB) insertBatch(ctx context.Context, reports []models.ClassifiedReport, at time.Time) (err error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, insertDroneLogSQL)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer closeWithLog(stmt, "prepared statement")

	for i := range reports {
		if _, err = stmt.ExecContext(ctx, reportArgs(reports[i], at)...); err != nil {
			return fmt.Errorf("insert drone log %s: %w", reports[i].Callsign, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit drone logs: %w", err)
	}
	return nil
}

func reportArgs(r models.ClassifiedReport, at time.Time) []interface{} {
	var zone interface{}
	if r.Zone != nil {
		zone = *r.Zone
	}
	return []interface{}{
		r.Callsign, r.Latitude, r.Longitude, float64(r.Altitude), r.Velocity,
		r.Unauthorized, zone, r.Source, at,
	}
}

// RecentLogs returns persisted rows, newest first.
func (db *DB) RecentLogs(ctx context.Context, f DroneLogFilter) ([]models.DroneLog, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	if db.conn == nil {
		return nil, ErrClosed
	}

	ctx, cancel := ensureContext(ctx)
	defer cancel()

	wb := query.NewWhereBuilder().
		AddUnauthorizedOnly(f.UnauthorizedOnly).
		AddSince(f.Since)
	if f.Callsign != "" {
		wb.AddCallsigns([]string{f.Callsign})
	}
	if f.Zone != "" {
		wb.AddZones([]string{f.Zone})
	}
	where, args := wb.BuildWithPrefix()

	q := `SELECT id, callsign, latitude, longitude, COALESCE(altitude, 0), COALESCE(velocity, 0),
		unauthorized, zone, COALESCE(source, ''), logged_at FROM drone_logs ` + where +
		" ORDER BY logged_at DESC, id DESC LIMIT ?"
	args = append(args, f.limit())

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, q, args...)
	if err != nil {
		metrics.RecordDBQuery("select", "drone_logs", time.Since(start), err)
		return nil, fmt.Errorf("query drone logs: %w", err)
	}
	defer closeWithLog(rows, "rows")

	logs := make([]models.DroneLog, 0, f.limit())
	for rows.Next() {
		var l models.DroneLog
		var altitude float64
		var zone sql.NullString
		if err := rows.Scan(&l.ID, &l.Callsign, &l.Latitude, &l.Longitude, &altitude, &l.Velocity,
			&l.Unauthorized, &zone, &l.Source, &l.LoggedAt); err != nil {
			metrics.RecordDBQuery("select", "drone_logs", time.Since(start), err)
			return nil, fmt.Errorf("scan drone log: %w", err)
		}
		l.Altitude = int64(altitude)
		if zone.Valid {
			z := zone.String
			l.Zone = &z
		}
		logs = append(logs, l)
	}
	err = rows.Err()
	metrics.RecordDBQuery("select", "drone_logs", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("iterate drone logs: %w", err)
	}
	return logs, nil
}

// CountLogs returns the total and unauthorized row counts.
func (db *DB) CountLogs(ctx context.Context) (total, unauthorized int64, err error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	if db.conn == nil {
		return 0, 0, ErrClosed
	}

	ctx, cancel := ensureContext(ctx)
	defer cancel()

	start := time.Now()
	err = db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE unauthorized) FROM drone_logs`).Scan(&total, &unauthorized)
	metrics.RecordDBQuery("count", "drone_logs", time.Since(start), err)
	if err != nil {
		return 0, 0, fmt.Errorf("count drone logs: %w", err)
	}
	return total, unauthorized, nil
}
