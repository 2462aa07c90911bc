// Skywatch - Restricted Airspace Drone Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skywatch

package query

import (
	"fmt"
	"strings"
	"time"
)

// WhereBuilder constructs SQL WHERE clauses with parameterized arguments.
//
//	wb := query.NewWhereBuilder()
//	wb.AddSince(since).AddCallsigns([]string{"DRN101"})
//	where, args := wb.BuildWithPrefix()
//	// WHERE logged_at >= ? AND callsign IN (?)
type WhereBuilder struct {
	clauses []string
	args    []interface{}
}

// NewWhereBuilder creates an empty builder.
func NewWhereBuilder() *WhereBuilder {
	return &WhereBuilder{
		clauses: []string{},
		args:    []interface{}{},
	}
}

// AddClause adds a raw condition such as "zone = ?" with its arguments.
func (wb *WhereBuilder) AddClause(clause string, args ...interface{}) *WhereBuilder {
	wb.clauses = append(wb.clauses, clause)
	wb.args = append(wb.args, args...)
	return wb
}

// AddSince filters rows logged at or after since. A nil since is skipped.
// Times are bound in UTC to match how rows are written.
func (wb *WhereBuilder) AddSince(since *time.Time) *WhereBuilder {
	if since != nil {
		wb.AddClause("logged_at >= ?", since.UTC())
	}
	return wb
}

// AddCallsigns filters on exact callsigns. An empty list is skipped.
func (wb *WhereBuilder) AddCallsigns(callsigns []string) *WhereBuilder {
	return wb.addIn("callsign", callsigns)
}

// AddZones filters on zone names. An empty list is skipped.
func (wb *WhereBuilder) AddZones(zones []string) *WhereBuilder {
	return wb.addIn("zone", zones)
}

// AddUnauthorizedOnly keeps only unauthorized rows when only is true.
func (wb *WhereBuilder) AddUnauthorizedOnly(only bool) *WhereBuilder {
	if only {
		wb.AddClause("unauthorized = true")
	}
	return wb
}

func (wb *WhereBuilder) addIn(column string, values []string) *WhereBuilder {
	if len(values) == 0 {
		return wb
	}
	placeholders := make([]string, len(values))
	for i, v := range values {
		placeholders[i] = "?"
		wb.args = append(wb.args, v)
	}
	wb.clauses = append(wb.clauses, fmt.Sprintf("%s IN (%s)", column, strings.Join(placeholders, ", ")))
	return wb
}

// Build joins the clauses with AND. An empty builder yields "1=1".
func (wb *WhereBuilder) Build() (string, []interface{}) {
	if len(wb.clauses) == 0 {
		return "1=1", []interface{}{}
	}
	return strings.Join(wb.clauses, " AND "), wb.args
}

// BuildWithPrefix is Build with a leading "WHERE ".
func (wb *WhereBuilder) BuildWithPrefix() (string, []interface{}) {
	whereClause, args := wb.Build()
	return "WHERE " + whereClause, args
}

// Count returns the number of clauses.
func (wb *WhereBuilder) Count() int {
	return len(wb.clauses)
}

// IsEmpty reports whether no clauses were added.
func (wb *WhereBuilder) IsEmpty() bool {
	return len(wb.clauses) == 0
}
