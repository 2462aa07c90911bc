// Skywatch - Restricted Airspace Drone Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skywatch

package detection

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/skywatch/internal/cooldown"
	"github.com/tomtom215/skywatch/internal/geo"
	"github.com/tomtom215/skywatch/internal/ingestion"
	"github.com/tomtom215/skywatch/internal/logging"
	"github.com/tomtom215/skywatch/internal/metrics"
	"github.com/tomtom215/skywatch/internal/models"
	"github.com/tomtom215/skywatch/internal/simulation"
)

// DefaultCycleTimeout bounds a cycle started through Cycle.
const DefaultCycleTimeout = 45 * time.Second

// Processor runs the batch cycle: normalize, classify, dedup alerts, fall
// back to simulation, notify and summarize. Cycles are serialized.
type Processor struct {
	registry  *geo.Registry
	tracker   *cooldown.Tracker
	source    Source
	sink      Sink
	notifier  Notifier
	publisher EventPublisher
	generator *simulation.Generator
	clock     func() time.Time
	timeout   time.Duration

	mu     sync.Mutex
	group  singleflight.Group
	latest atomic.Pointer[models.CycleResult]
	cycles atomic.Int64
}

// Option configures a Processor.
type Option func(*Processor)

// WithSource sets the live data source. Without one every cycle falls
// back to simulation with reason "Disabled".
func WithSource(s Source) Option {
	return func(p *Processor) { p.source = s }
}

// WithSink sets the drone log sink.
func WithSink(s Sink) Option {
	return func(p *Processor) { p.sink = s }
}

// WithNotifier sets the alert notifier.
func WithNotifier(n Notifier) Option {
	return func(p *Processor) { p.notifier = n }
}

// WithPublisher sets the event bus publisher.
func WithPublisher(pub EventPublisher) Option {
	return func(p *Processor) { p.publisher = pub }
}

// WithGenerator sets the simulation generator. A nil generator disables
// the fallback.
func WithGenerator(g *simulation.Generator) Option {
	return func(p *Processor) { p.generator = g }
}

// WithClock overrides the wall clock used for cooldown decisions.
func WithClock(clock func() time.Time) Option {
	return func(p *Processor) { p.clock = clock }
}

// WithCycleTimeout bounds cycles started through Cycle.
func WithCycleTimeout(d time.Duration) Option {
	return func(p *Processor) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// NewProcessor creates a processor over the given zones and cooldown state.
func NewProcessor(registry *geo.Registry, tracker *cooldown.Tracker, opts ...Option) *Processor {
	p := &Processor{
		registry: registry,
		tracker:  tracker,
		clock:    time.Now,
		timeout:  DefaultCycleTimeout,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Tracker returns the cooldown tracker.
func (p *Processor) Tracker() *cooldown.Tracker { return p.tracker }

// Registry returns the zone registry.
func (p *Processor) Registry() *geo.Registry { return p.registry }

// Latest returns the most recent cycle result, or nil before the first cycle.
func (p *Processor) Latest() *models.CycleResult { return p.latest.Load() }

// CycleCount returns the number of completed cycles.
func (p *Processor) CycleCount() int64 { return p.cycles.Load() }

// Cycle fetches one batch and processes it. Concurrent callers share a
// single in-flight cycle. The cycle is detached from ctx cancellation so a
// disconnecting HTTP caller cannot cut short a cycle other callers wait on.
func (p *Processor) Cycle(ctx context.Context) *models.CycleResult {
	v, _, shared := p.group.Do("cycle", func() (interface{}, error) {
		cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
		defer cancel()

		var batch ingestion.FetchResult
		if p.source != nil {
			batch = p.source.Fetch(cctx)
		} else {
			batch = ingestion.Failed(ingestion.ReasonDisabled)
		}
		return p.RunCycle(cctx, batch, p.clock()), nil
	})
	if shared {
		logging.Ctx(ctx).Debug().Msg("Joined in-flight cycle")
	}
	return v.(*models.CycleResult)
}

// RunCycle processes an already fetched batch at time now.
//
// Live data is used when the batch is OK and non-empty. Otherwise a
// simulated batch tagged "Simulation (<reason>)" replaces it. Alerts are
// deduplicated per callsign through the cooldown tracker, and the resulting
// events are handed to the notifier in a single call. Notification and
// persistence failures never abort the cycle.
func (p *Processor) RunCycle(ctx context.Context, batch ingestion.FetchResult, now time.Time) *models.CycleResult {
	p.mu.Lock()
	defer p.mu.Unlock()

	start := time.Now()
	res := &models.CycleResult{
		ID:        uuid.New().String(),
		StartedAt: now,
		Drones:    make([]models.ClassifiedReport, 0, len(batch.Items)),
		Events:    make([]models.ViolationEvent, 0),
	}
	log := logging.Ctx(ctx).With().Str("cycle_id", res.ID).Logger()

	if batch.OK && len(batch.Items) > 0 {
		res.Source = ingestion.LiveSourceTag
		for _, item := range batch.Items {
			report, rejection := ingestion.Normalize(item)
			if rejection != ingestion.RejectNone {
				res.Rejected++
				metrics.RecordRejection(string(rejection))
				log.Debug().Str("reason", string(rejection)).Msg("Skipping state vector")
				continue
			}
			report.SourceTag = ingestion.LiveSourceTag
			p.classify(res, report, now)
		}
		log.Info().
			Int("states", len(batch.Items)).
			Int("processed", len(res.Drones)).
			Int("rejected", res.Rejected).
			Msg("Processed live state vectors")
	}

	if !batch.OK || len(batch.Items) == 0 {
		reason := batch.Reason
		if batch.OK || reason == "" {
			reason = ingestion.ReasonEmpty
		}
		res.Source = ingestion.SimulationTag(reason)
		res.Simulated = true
		p.simulate(ctx, res, now)
	}

	if purged := p.tracker.PurgeExpired(now); purged > 0 {
		log.Debug().Int("purged", purged).Msg("Purged expired cooldown entries")
	}

	p.persist(ctx, res)

	if len(res.Events) > 0 && p.notifier != nil {
		if err := p.notifier.SendBatch(ctx, res.Events); err != nil {
			res.NotifyError = err
			log.Error().Err(err).Int("events", len(res.Events)).Msg("Alert notification failed")
		}
	}

	res.Validation = models.NewValidation(res.Drones)
	if !res.Validation.CountsConsistent {
		log.Error().
			Int("total", res.Validation.Total).
			Int("authorized", res.Validation.Authorized).
			Int("unauthorized", res.Validation.Unauthorized).
			Msg("Drone count validation failed")
	}

	res.Duration = time.Since(start)
	p.publish(ctx, res)

	metrics.RecordCycle(res.Simulated, res.Duration,
		res.Validation.Authorized, res.Validation.Unauthorized, len(res.Events))
	p.latest.Store(res)
	p.cycles.Add(1)

	log.Info().
		Str("source", res.Source).
		Int("total", res.Validation.Total).
		Int("unauthorized", res.Validation.Unauthorized).
		Int("new_alerts", len(res.Events)).
		Dur("duration", res.Duration).
		Msg("Cycle complete")

	return res
}

// classify appends one report to the result and emits a violation event
// when the entity is outside its cooldown window.
func (p *Processor) classify(res *models.CycleResult, r models.PositionReport, now time.Time) {
	c := p.registry.Classify(&r.Latitude, &r.Longitude)
	res.Drones = append(res.Drones, models.NewClassifiedReport(r, c))
	if !c.Unauthorized {
		return
	}
	if !p.tracker.ShouldAlert(r.EntityID, now) {
		logging.Debug().Str("callsign", r.EntityID).Msg("Violation within cooldown, alert suppressed")
		return
	}
	res.Events = append(res.Events, models.ViolationEvent{
		EntityID:   r.EntityID,
		Latitude:   r.Latitude,
		Longitude:  r.Longitude,
		ZoneName:   c.ZoneName(),
		DetectedAt: now,
	})
	p.tracker.RecordAlert(r.EntityID, now)
	logging.Warn().
		Str("callsign", r.EntityID).
		Str("zone", c.ZoneName()).
		Float64("lat", r.Latitude).
		Float64("lon", r.Longitude).
		Msg("Unauthorized drone detected")
}

func (p *Processor) simulate(ctx context.Context, res *models.CycleResult, now time.Time) {
	if p.generator == nil {
		logging.Ctx(ctx).Warn().Str("source", res.Source).Msg("No live data and simulation disabled")
		return
	}
	sim := p.generator.Generate(res.Source)
	for _, r := range sim.Reports {
		p.classify(res, r, now)
	}
	logging.Ctx(ctx).Info().
		Str("source", res.Source).
		Int("authorized", sim.Authorized).
		Int("unauthorized_hits", sim.UnauthorizedHits).
		Msg("Generated simulated drones")
}

func (p *Processor) persist(ctx context.Context, res *models.CycleResult) {
	if p.sink == nil || len(res.Drones) == 0 {
		return
	}
	if bs, ok := p.sink.(BatchSink); ok {
		if err := bs.LogReports(ctx, res.Drones); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Int("drones", len(res.Drones)).Msg("Failed to log drones")
		}
		return
	}
	failed := 0
	for i := range res.Drones {
		if err := p.sink.LogReport(ctx, res.Drones[i]); err != nil {
			failed++
		}
	}
	if failed > 0 {
		logging.Ctx(ctx).Warn().Int("failed", failed).Msg("Failed to log some drones")
	}
}

func (p *Processor) publish(ctx context.Context, res *models.CycleResult) {
	if p.publisher == nil {
		return
	}
	if len(res.Events) > 0 {
		if err := p.publisher.PublishViolations(ctx, res.Events); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Msg("Failed to publish violation events")
		}
	}
	if err := p.publisher.PublishCycle(ctx, res.Summary()); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("Failed to publish cycle summary")
	}
}
