// Skywatch - Restricted Airspace Drone Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skywatch

package geo

import (
	"math"
	"testing"

	"github.com/tomtom215/skywatch/internal/models"
)

func ptr(f float64) *float64 { return &f }

func TestDistanceKm(t *testing.T) {
	tests := []struct {
		name     string
		p1, p2   *Point
		expected float64
		delta    float64
	}{
		{"same point", &Point{38.8977, -77.0365}, &Point{38.8977, -77.0365}, 0, 1e-9},
		{"NYC to LA", &Point{40.7128, -74.0060}, &Point{34.0522, -118.2437}, 3935.7, 1.0},
		{"antipodal on equator", &Point{0, 0}, &Point{0, 180}, math.Pi * EarthRadiusKm, 0.01},
		{"White House point to Pentagon", &Point{38.8980, -77.0370}, &Point{38.8719, -77.0563}, 3.35, 0.01},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistanceKm(tt.p1, tt.p2)
			if math.Abs(got-tt.expected) > tt.delta {
				t.Errorf("DistanceKm() = %.4f, want %.4f (±%.4f)", got, tt.expected, tt.delta)
			}
		})
	}
}

func TestDistanceKm_Symmetric(t *testing.T) {
	points := []*Point{
		{0, 0}, {38.8977, -77.0365}, {-33.8688, 151.2093}, {89.9, 10}, {-45, -179.9},
	}
	for _, a := range points {
		for _, b := range points {
			ab, ba := DistanceKm(a, b), DistanceKm(b, a)
			if math.Abs(ab-ba) > 1e-9 {
				t.Errorf("DistanceKm(%v,%v)=%f but reverse=%f", *a, *b, ab, ba)
			}
			if ab < 0 || math.IsNaN(ab) {
				t.Errorf("DistanceKm(%v,%v)=%f, want non-negative", *a, *b, ab)
			}
		}
		if d := DistanceKm(a, a); d != 0 {
			t.Errorf("DistanceKm(p,p)=%f for %v, want 0", d, *a)
		}
	}
}

func TestDistanceKm_NilPoint(t *testing.T) {
	p := &Point{10, 10}
	if d := DistanceKm(nil, p); !math.IsInf(d, 1) {
		t.Errorf("DistanceKm(nil, p) = %f, want +Inf", d)
	}
	if d := DistanceKm(p, nil); !math.IsInf(d, 1) {
		t.Errorf("DistanceKm(p, nil) = %f, want +Inf", d)
	}
}

func TestClassify_WhiteHouse(t *testing.T) {
	whiteHouse := []models.RestrictedZone{
		{Name: "White House", Latitude: 38.8977, Longitude: -77.0365, RadiusKm: 3, Category: models.ZoneCategoryGovernment},
	}
	c := Classify(ptr(38.8980), ptr(-77.0370), whiteHouse)
	if !c.Unauthorized || c.ZoneName() != "White House" {
		t.Errorf("Classify() = %+v (zone %q), want unauthorized in White House", c, c.ZoneName())
	}
}

func TestClassify_Origin(t *testing.T) {
	c := DefaultRegistry().Classify(ptr(0), ptr(0))
	if c.Unauthorized || c.Zone != nil {
		t.Errorf("Classify(0,0) = %+v, want authorized with no zone", c)
	}
}

func TestClassify_MissingCoordinates(t *testing.T) {
	zones := DefaultRegistry().Zones()
	for _, tc := range []struct {
		name     string
		lat, lon *float64
	}{
		{"nil lat", nil, ptr(-77.0365)},
		{"nil lon", ptr(38.8977), nil},
		{"both nil", nil, nil},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if c := Classify(tc.lat, tc.lon, zones); c.Unauthorized || c.Zone != nil {
				t.Errorf("Classify() = %+v, want authorized", c)
			}
		})
	}
}

func TestClassify_FirstMatchWins(t *testing.T) {
	pentagon := models.RestrictedZone{Name: "Pentagon", Latitude: 38.8719, Longitude: -77.0563, RadiusKm: 5}
	whiteHouse := models.RestrictedZone{Name: "White House", Latitude: 38.8977, Longitude: -77.0365, RadiusKm: 3}

	// (38.88, -77.06) is inside both circles.
	lat, lon := 38.88, -77.06
	if got := ClassifyPoint(lat, lon, []models.RestrictedZone{pentagon, whiteHouse}).ZoneName(); got != "Pentagon" {
		t.Errorf("zone = %q, want Pentagon", got)
	}
	if got := ClassifyPoint(lat, lon, []models.RestrictedZone{whiteHouse, pentagon}).ZoneName(); got != "White House" {
		t.Errorf("zone = %q, want White House", got)
	}

	// In the built-in registry the Pentagon precedes the White House.
	if got := DefaultRegistry().Classify(ptr(38.8980), ptr(-77.0370)).ZoneName(); got != "Pentagon" {
		t.Errorf("default registry zone = %q, want Pentagon", got)
	}
}

func TestClassify_Boundary(t *testing.T) {
	zone := models.RestrictedZone{Name: "Equator", Latitude: 0, Longitude: 0, RadiusKm: 10}
	// 1 degree of latitude is ~111.19 km on this sphere.
	inside := 9.99 / (EarthRadiusKm * math.Pi / 180)
	outside := 10.01 / (EarthRadiusKm * math.Pi / 180)

	if c := ClassifyPoint(inside, 0, []models.RestrictedZone{zone}); !c.Unauthorized {
		t.Error("point just inside radius should be unauthorized")
	}
	if c := ClassifyPoint(outside, 0, []models.RestrictedZone{zone}); c.Unauthorized {
		t.Error("point just outside radius should be authorized")
	}
}

func TestClassify_Idempotent(t *testing.T) {
	r := DefaultRegistry()
	for i := 0; i < r.Len(); i++ {
		z := r.Zone(i)
		first := r.Classify(&z.Latitude, &z.Longitude)
		second := r.Classify(&z.Latitude, &z.Longitude)
		if first.Unauthorized != second.Unauthorized || first.ZoneName() != second.ZoneName() {
			t.Errorf("zone %s: %+v then %+v", z.Name, first, second)
		}
		if !first.Unauthorized {
			t.Errorf("zone %s center classified authorized", z.Name)
		}
	}
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	if r.Len() != 20 {
		t.Fatalf("Len() = %d, want 20", r.Len())
	}
	if r.Zone(0).Name != "JFK Airport" || r.Zone(19).Name != "Groom Lake Facility (CIA)" {
		t.Errorf("unexpected order: first=%q last=%q", r.Zone(0).Name, r.Zone(19).Name)
	}
	for _, z := range r.Zones() {
		if !z.Category.Valid() {
			t.Errorf("zone %s has invalid category %q", z.Name, z.Category)
		}
		if z.RadiusKm <= 0 {
			t.Errorf("zone %s has radius %f", z.Name, z.RadiusKm)
		}
	}

	// Zones returns a copy.
	zs := r.Zones()
	zs[0].Name = "changed"
	if r.Zone(0).Name != "JFK Airport" {
		t.Error("Zones() exposed internal storage")
	}
}
