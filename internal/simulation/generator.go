// Skywatch - Restricted Airspace Drone Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skywatch

package simulation

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sync"

	"github.com/tomtom215/skywatch/internal/geo"
	"github.com/tomtom215/skywatch/internal/logging"
	"github.com/tomtom215/skywatch/internal/models"
)

// Bounds is a latitude/longitude box in degrees.
type Bounds struct {
	LatMin, LatMax float64
	LonMin, LonMax float64
}

// CONUS approximates the continental United States.
var CONUS = Bounds{LatMin: 24.0, LatMax: 49.0, LonMin: -125.0, LonMax: -66.0}

// Contains reports whether the point is inside b, edges included.
func (b Bounds) Contains(lat, lon float64) bool {
	return lat >= b.LatMin && lat <= b.LatMax && lon >= b.LonMin && lon <= b.LonMax
}

func (b Bounds) clamp(lat, lon float64) (float64, float64) {
	return math.Max(b.LatMin, math.Min(b.LatMax, lat)), math.Max(b.LonMin, math.Min(b.LonMax, lon))
}

// Generation parameters.
const (
	MinAuthorized      = 25
	MaxAuthorized      = 50
	MaxAuthorizedTries = 500
	MinUnauthorized    = 5
	MaxUnauthorized    = 10

	minRadiusFactor = 0.5
	maxRadiusFactor = 1.1
	kmPerDegree     = 111.0
)

// Result is one generated batch. Reports lists authorized samples first,
// then the zone-seeded candidates in generation order.
type Result struct {
	Reports          []models.PositionReport
	Authorized       int
	UnauthorizedHits int
	AuthorizedTarget int
	Attempts         int
}

// Generator produces synthetic reports. It is safe for concurrent use.
type Generator struct {
	mu       sync.Mutex
	rng      *rand.Rand
	registry *geo.Registry
	bounds   Bounds
}

// NewGenerator uses rng for all randomness.
func NewGenerator(registry *geo.Registry, rng *rand.Rand) *Generator {
	return &Generator{rng: rng, registry: registry, bounds: CONUS}
}

// NewSeededGenerator builds a deterministic generator from seed. A zero
// seed draws one from the runtime.
func NewSeededGenerator(registry *geo.Registry, seed uint64) *Generator {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return NewGenerator(registry, rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// Generate produces one batch tagged with sourceTag.
func (g *Generator) Generate(sourceTag string) Result {
	g.mu.Lock()
	defer g.mu.Unlock()

	var res Result
	g.authorized(sourceTag, &res)
	g.unauthorized(sourceTag, &res)

	logging.Info().
		Str("component", "simulation").
		Str("source", sourceTag).
		Int("authorized", res.Authorized).
		Int("authorized_target", res.AuthorizedTarget).
		Int("unauthorized", res.UnauthorizedHits).
		Msg("Generated simulated drones")
	return res
}

func (g *Generator) authorized(sourceTag string, res *Result) {
	res.AuthorizedTarget = g.intBetween(MinAuthorized, MaxAuthorized)

	for res.Authorized < res.AuthorizedTarget && res.Attempts < MaxAuthorizedTries {
		res.Attempts++
		lat := round6(g.between(g.bounds.LatMin, g.bounds.LatMax))
		lon := round6(g.between(g.bounds.LonMin, g.bounds.LonMax))
		if g.registry.Classify(&lat, &lon).Unauthorized {
			continue
		}
		res.Reports = append(res.Reports, models.PositionReport{
			EntityID:  fmt.Sprintf("SIM-A-%d", g.intBetween(1000, 9999)),
			Latitude:  lat,
			Longitude: lon,
			AltitudeM: float64(g.intBetween(300, 5000)),
			SpeedKmh:  float64(g.intBetween(50, 300)),
			SourceTag: sourceTag,
		})
		res.Authorized++
	}

	if res.Authorized < res.AuthorizedTarget {
		logging.Debug().Str("component", "simulation").Int("generated", res.Authorized).Int("target", res.AuthorizedTarget).Msg("Authorized simulation undershot target")
	}
}

func (g *Generator) unauthorized(sourceTag string, res *Result) {
	if g.registry.Len() == 0 {
		logging.Warn().Str("component", "simulation").Msg("Cannot simulate unauthorized drones, zone registry is empty")
		return
	}

	target := g.intBetween(MinUnauthorized, MaxUnauthorized)
	for i := 0; i < target; i++ {
		zone := g.registry.Zone(g.rng.IntN(g.registry.Len()))
		distDeg := zone.RadiusKm * g.between(minRadiusFactor, maxRadiusFactor) / kmPerDegree
		bearing := g.between(0, 2*math.Pi)

		lat := zone.Latitude + distDeg*math.Cos(bearing)
		lon := zone.Longitude + distDeg*math.Sin(bearing)/math.Cos(zone.Latitude*math.Pi/180)
		lat, lon = g.bounds.clamp(lat, lon)
		lat, lon = round6(lat), round6(lon)

		if g.registry.Classify(&lat, &lon).Unauthorized {
			res.UnauthorizedHits++
		}
		res.Reports = append(res.Reports, models.PositionReport{
			EntityID:  fmt.Sprintf("SIM-U-%d", g.intBetween(100, 999)),
			Latitude:  lat,
			Longitude: lon,
			AltitudeM: float64(g.intBetween(50, 1500)),
			SpeedKmh:  float64(g.intBetween(30, 150)),
			SourceTag: sourceTag,
		})
	}
}

// intBetween returns a uniform integer in [lo, hi].
func (g *Generator) intBetween(lo, hi int) int {
	return lo + g.rng.IntN(hi-lo+1)
}

// between returns a uniform float in [lo, hi).
func (g *Generator) between(lo, hi float64) float64 {
	return lo + (hi-lo)*g.rng.Float64()
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
