// Skywatch - Restricted Airspace Drone Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skywatch

package ingestion

import "fmt"

// LiveSourceTag marks reports that came from OpenSky.
const LiveSourceTag = "OpenSky API"

// Fallback reasons. HTTP status failures use "HTTP <code>".
const (
	ReasonTooManyRequests = "429"
	ReasonTimeout         = "Timeout"
	ReasonBadFormat       = "Bad Format"
	ReasonJSONError       = "JSON Error"
	ReasonRequestError    = "Request Error"
	ReasonNoContent       = "No Content"
	ReasonEmpty           = "Empty"
	ReasonCircuitOpen     = "Circuit Open"
	ReasonRateLimited     = "Rate Limited"
	ReasonDisabled        = "Disabled"
)

// FetchResult is the outcome of one upstream fetch. When OK is false,
// Items is empty and Reason says why.
type FetchResult struct {
	Items  [][]any
	OK     bool
	Reason string
}

// Failed builds a not-OK result.
func Failed(reason string) FetchResult {
	return FetchResult{OK: false, Reason: reason}
}

// SimulationTag is the source tag for synthetic reports produced after a
// fetch that failed for reason.
func SimulationTag(reason string) string {
	return fmt.Sprintf("Simulation (%s)", reason)
}

// httpStatusReason formats a non-2xx status as a fallback reason.
func httpStatusReason(code int) string {
	return fmt.Sprintf("HTTP %d", code)
}
