// Skywatch - Restricted Airspace Drone Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skywatch

package validation

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Drone log paging bounds.
const (
	DefaultLogLimit = 100
	MaxLogLimit     = 1000
)

// PointRequest is the query of POST /force-drone.
type PointRequest struct {
	Latitude  *float64 `query:"latitude" validate:"required,finite,latitude"`
	Longitude *float64 `query:"longitude" validate:"required,finite,longitude"`
}

// DroneLogsRequest is the query of GET /drone-logs.
type DroneLogsRequest struct {
	Limit            int    `query:"limit" validate:"min=1,max=1000"`
	UnauthorizedOnly bool   `query:"unauthorized"`
	Callsign         string `query:"callsign" validate:"omitempty,max=16"`
	Zone             string `query:"zone" validate:"omitempty,max=64"`
	// Since is an RFC 3339 lower bound, normalized to UTC.
	Since *time.Time `query:"since"`
}

// ViolationsRequest is the query of GET /violations.
type ViolationsRequest struct {
	Limit int `query:"limit" validate:"min=1,max=1000"`
}

// ParsePointRequest parses and validates latitude and longitude.
func ParsePointRequest(q url.Values) (PointRequest, *RequestValidationError) {
	var req PointRequest
	var err *RequestValidationError
	if req.Latitude, err = parseOptionalFloat(q, "latitude"); err != nil {
		return req, err
	}
	if req.Longitude, err = parseOptionalFloat(q, "longitude"); err != nil {
		return req, err
	}
	return req, ValidateStruct(&req)
}

// ParseDroneLogsRequest parses paging and filters, defaulting the limit.
func ParseDroneLogsRequest(q url.Values) (DroneLogsRequest, *RequestValidationError) {
	req := DroneLogsRequest{Limit: DefaultLogLimit}

	var verr *RequestValidationError
	if req.Limit, verr = parseLimit(q); verr != nil {
		return req, verr
	}
	if raw := q.Get("unauthorized"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return req, fieldError("unauthorized", "boolean", "unauthorized must be true or false", raw)
		}
		req.UnauthorizedOnly = b
	}
	req.Callsign = strings.TrimSpace(q.Get("callsign"))
	req.Zone = strings.TrimSpace(q.Get("zone"))
	if raw := strings.TrimSpace(q.Get("since")); raw != "" {
		ts, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return req, fieldError("since", "rfc3339", "since must be an RFC 3339 timestamp", raw)
		}
		ts = ts.UTC()
		req.Since = &ts
	}

	return req, ValidateStruct(&req)
}

// ParseViolationsRequest parses the limit of a violations query.
func ParseViolationsRequest(q url.Values) (ViolationsRequest, *RequestValidationError) {
	var req ViolationsRequest
	var verr *RequestValidationError
	if req.Limit, verr = parseLimit(q); verr != nil {
		return req, verr
	}
	return req, ValidateStruct(&req)
}

func parseLimit(q url.Values) (int, *RequestValidationError) {
	raw := q.Get("limit")
	if raw == "" {
		return DefaultLogLimit, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return DefaultLogLimit, fieldError("limit", "number", "limit must be an integer", raw)
	}
	return n, nil
}

func parseOptionalFloat(q url.Values, name string) (*float64, *RequestValidationError) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fieldError(name, "number", fmt.Sprintf("%s must be a number", name), raw)
	}
	return &f, nil
}
