// Skywatch - Restricted Airspace Drone Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skywatch

/*
Package models defines the data types shared across Skywatch packages.

Domain types:
  - PositionReport: a normalized position sample for one entity
  - RestrictedZone: a named circular exclusion area
  - Classification: the zone check outcome for one report
  - ClassifiedReport: the wire shape of a drone sent to map clients
  - ViolationEvent: a newly detected, off-cooldown unauthorized flight
  - CycleResult: everything one processing cycle produced

JSON field names on ClassifiedReport, Validation and RestrictedZone are
consumed by existing map clients and must not change.
*/
package models
