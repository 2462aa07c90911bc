// Skywatch - Restricted Airspace Drone Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skywatch

/*
Package middleware provides HTTP middleware for the chi router.

  - RequestID: X-Request-ID propagation into the logging context
  - PrometheusMetrics: request count, latency and in-flight gauge labelled
    by chi route pattern

Both are plain func(http.Handler) http.Handler and are mounted with
chi.Router.Use alongside chi's own middleware, go-chi/cors and httprate.
*/
package middleware
