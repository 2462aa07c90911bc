// Skywatch - Restricted Airspace Drone Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skywatch

// Package validation validates API query parameters with
// go-playground/validator v10.
//
// Query values are parsed into typed request structs (PointRequest,
// DroneLogsRequest) and then validated with struct tags. Parse failures and
// tag failures both come back as *RequestValidationError, which converts to
// the VALIDATION_ERROR API error:
//
//	req, verr := validation.ParsePointRequest(r.URL.Query())
//	if verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	    return
//	}
package validation
