// Skywatch - Restricted Airspace Drone Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skywatch

package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/skywatch/internal/config"
	"github.com/tomtom215/skywatch/internal/cooldown"
	"github.com/tomtom215/skywatch/internal/database"
	"github.com/tomtom215/skywatch/internal/detection"
	"github.com/tomtom215/skywatch/internal/eventprocessor"
	"github.com/tomtom215/skywatch/internal/geo"
	"github.com/tomtom215/skywatch/internal/ingestion"
	"github.com/tomtom215/skywatch/internal/logging"
	"github.com/tomtom215/skywatch/internal/simulation"
)

// components holds everything main builds before the supervisor starts.
// Optional parts are nil when disabled.
type components struct {
	registry  *geo.Registry
	tracker   *cooldown.Tracker
	store     *cooldown.BadgerStore
	db        *database.DB
	bus       *eventprocessor.Bus
	router    *eventprocessor.Router
	recorder  *eventprocessor.ViolationRecorder
	processor *detection.Processor
}

// buildComponents wires the detection pipeline from cfg. On error every
// part opened so far is closed.
func buildComponents(ctx context.Context, cfg *config.Config) (c *components, err error) {
	c = &components{registry: geo.DefaultRegistry()}
	defer func() {
		if err != nil {
			c.close()
			c = nil
		}
	}()

	if c.tracker, c.store, err = openCooldown(cfg.Cycle.CooldownWindow, cfg.Cooldown); err != nil {
		return c, err
	}

	if cfg.Database.Enabled {
		if c.db, err = database.New(&cfg.Database); err != nil {
			return c, fmt.Errorf("open drone log: %w", err)
		}
		logging.Info().Str("path", cfg.Database.Path).Msg("Drone log database opened")
	}

	if c.bus, c.router, c.recorder, err = setupEvents(ctx, cfg.Events); err != nil {
		return c, err
	}

	opts := []detection.Option{
		detection.WithNotifier(buildNotifier(cfg)),
		detection.WithCycleTimeout(cfg.Cycle.Timeout),
	}
	if cfg.OpenSky.Enabled {
		opts = append(opts, detection.WithSource(ingestion.NewClient(cfg.OpenSky)))
	} else {
		logging.Warn().Msg("OpenSky source disabled, every cycle will be simulated")
	}
	if cfg.Simulation.Enabled {
		opts = append(opts, detection.WithGenerator(simulation.NewSeededGenerator(c.registry, cfg.Simulation.Seed)))
	}
	if c.db != nil {
		opts = append(opts, detection.WithSink(c.db))
	}
	if c.bus != nil {
		opts = append(opts, detection.WithPublisher(c.bus))
	}

	c.processor = detection.NewProcessor(c.registry, c.tracker, opts...)
	return c, nil
}

// openCooldown creates the tracker and, when enabled, restores it from
// badger. Entries older than window are not restored.
func openCooldown(window time.Duration, cfg config.CooldownConfig) (*cooldown.Tracker, *cooldown.BadgerStore, error) {
	if !cfg.StoreEnabled {
		return cooldown.NewTracker(window), nil, nil
	}

	store, err := cooldown.OpenBadgerStore(cfg.StorePath)
	if err != nil {
		return nil, nil, err
	}
	tracker := cooldown.NewTracker(window, cooldown.WithStore(store))
	restored, err := tracker.Restore(time.Now())
	if err != nil {
		// A corrupt store only costs duplicate alerts; keep running.
		logging.Warn().Err(err).Str("path", cfg.StorePath).Msg("Failed to restore cooldown state")
	} else {
		logging.Info().Int("entries", restored).Str("path", cfg.StorePath).Msg("Cooldown state restored")
	}
	return tracker, store, nil
}

// buildNotifier registers the email and webhook channels. Disabled
// channels are skipped at send time.
func buildNotifier(cfg *config.Config) *detection.MultiNotifier {
	return detection.NewMultiNotifier(
		detection.NewEmailNotifier(cfg.Email),
		detection.NewWebhookNotifier(cfg.Webhook),
	)
}

// setupEvents builds the bus and, for buses with a subscriber, the router
// feeding the violation recorder. All return values are nil when events
// are disabled.
func setupEvents(ctx context.Context, cfg config.EventsConfig) (*eventprocessor.Bus, *eventprocessor.Router, *eventprocessor.ViolationRecorder, error) {
	bus, err := eventprocessor.NewBusFromConfig(ctx, cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("create event bus: %w", err)
	}
	if bus == nil {
		return nil, nil, nil, nil
	}

	router, err := eventprocessor.NewRouter(nil, bus.Publisher())
	if err != nil {
		return nil, nil, nil, errors.Join(fmt.Errorf("create event router: %w", err), bus.Close())
	}
	recorder := eventprocessor.NewViolationRecorder(eventprocessor.DefaultRecorderCapacity)
	eventprocessor.RegisterConsumers(router, bus, recorder, eventprocessor.NewCycleObserver())

	logging.Info().
		Str("backend", bus.Backend()).
		Strs("handlers", router.Handlers()).
		Msg("Event bus initialized")
	return bus, router, recorder, nil
}

// close releases every opened resource. Safe on a partially built value.
func (c *components) close() {
	if c.bus != nil {
		if err := c.bus.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing event bus")
		}
	}
	if c.db != nil {
		if err := c.db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}
	if c.store != nil {
		if err := c.store.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing cooldown store")
		}
	}
}
