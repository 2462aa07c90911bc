// Skywatch - Restricted Airspace Drone Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skywatch

//go:build nats

package eventprocessor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	wmNats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/nats-io/nats-server/v2/server"
	natsgo "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/tomtom215/skywatch/internal/config"
	"github.com/tomtom215/skywatch/internal/logging"
)

// StreamName is the JetStream stream holding all skywatch subjects.
const StreamName = "SKYWATCH"

const (
	natsReadyTimeout = 30 * time.Second
	natsMaxReconnect = -1
	natsReconnWait   = 2 * time.Second
	streamMaxAge     = 24 * time.Hour
	streamDupWindow  = 2 * time.Minute
	durablePrefix    = "skywatch"
)

// EmbeddedServer runs an in-process NATS server with JetStream.
type EmbeddedServer struct {
	server    *server.Server
	clientURL string
}

// NewEmbeddedServer starts an embedded NATS server on a loopback port and
// waits until it accepts connections.
func NewEmbeddedServer(storeDir string) (*EmbeddedServer, error) {
	opts := &server.Options{
		ServerName: "skywatch-events",
		Host:       "127.0.0.1",
		Port:       server.RANDOM_PORT,
		JetStream:  true,
		StoreDir:   storeDir,
		NoSigs:     true,
		MaxPayload: 1024 * 1024,
	}

	ns, err := server.NewServer(opts)
	if err != nil {
		return nil, fmt.Errorf("create NATS server: %w", err)
	}
	go ns.Start()

	if !ns.ReadyForConnections(natsReadyTimeout) {
		ns.Shutdown()
		return nil, errors.New("NATS server not ready within timeout")
	}

	logging.Info().Str("url", ns.ClientURL()).Str("store_dir", storeDir).Msg("Embedded NATS server started")
	return &EmbeddedServer{server: ns, clientURL: ns.ClientURL()}, nil
}

// ClientURL returns the connection URL for clients.
func (s *EmbeddedServer) ClientURL() string { return s.clientURL }

// Shutdown stops the server and waits for it to exit.
func (s *EmbeddedServer) Shutdown() error {
	s.server.Shutdown()
	s.server.WaitForShutdown()
	return nil
}

// JetStreamContext is the subset of jetstream.JetStream used by
// StreamInitializer.
type JetStreamContext interface {
	Stream(ctx context.Context, name string) (jetstream.Stream, error)
	CreateStream(ctx context.Context, cfg jetstream.StreamConfig) (jetstream.Stream, error)
	UpdateStream(ctx context.Context, cfg jetstream.StreamConfig) (jetstream.Stream, error)
}

// StreamInitializer creates or updates the skywatch stream before any
// publisher or subscriber attaches to it.
type StreamInitializer struct {
	js       JetStreamContext
	subjects []string
}

// NewStreamInitializer returns an initializer for the given subjects.
func NewStreamInitializer(js JetStreamContext, subjects ...string) (*StreamInitializer, error) {
	if js == nil {
		return nil, errors.New("JetStream context required")
	}
	if len(subjects) == 0 {
		return nil, errors.New("at least one subject required")
	}
	return &StreamInitializer{js: js, subjects: subjects}, nil
}

// StreamConfig returns the JetStream stream configuration.
func (s *StreamInitializer) StreamConfig() jetstream.StreamConfig {
	return jetstream.StreamConfig{
		Name:       StreamName,
		Subjects:   s.subjects,
		Retention:  jetstream.LimitsPolicy,
		MaxAge:     streamMaxAge,
		Duplicates: streamDupWindow,
		Storage:    jetstream.FileStorage,
		Discard:    jetstream.DiscardOld,
	}
}

// EnsureStream is idempotent.
func (s *StreamInitializer) EnsureStream(ctx context.Context) (jetstream.Stream, error) {
	cfg := s.StreamConfig()

	_, err := s.js.Stream(ctx, StreamName)
	if err == nil {
		stream, err := s.js.UpdateStream(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("update stream %s: %w", StreamName, err)
		}
		return stream, nil
	}
	if errors.Is(err, jetstream.ErrStreamNotFound) {
		stream, err := s.js.CreateStream(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("create stream %s: %w", StreamName, err)
		}
		return stream, nil
	}
	return nil, fmt.Errorf("check stream %s: %w", StreamName, err)
}

func natsOptions(logger watermill.LoggerAdapter) []natsgo.Option {
	return []natsgo.Option{
		natsgo.Name("skywatch"),
		natsgo.RetryOnFailedConnect(true),
		natsgo.MaxReconnects(natsMaxReconnect),
		natsgo.ReconnectWait(natsReconnWait),
		natsgo.DisconnectErrHandler(func(_ *natsgo.Conn, err error) {
			if err != nil {
				logger.Error("NATS disconnected", err, nil)
			}
		}),
		natsgo.ReconnectHandler(func(nc *natsgo.Conn) {
			logger.Info("NATS reconnected", watermill.LogFields{"url": nc.ConnectedUrl()})
		}),
	}
}

// durableName maps a subject to a valid JetStream consumer name.
func durableName(prefix, topic string) string {
	return prefix + "-" + strings.NewReplacer(".", "_", "*", "any", ">", "all").Replace(topic)
}

// NewNATSBus connects to NATS (starting an embedded server when
// configured), ensures the stream exists and returns a JetStream-backed bus.
func NewNATSBus(ctx context.Context, cfg config.EventsConfig) (*Bus, error) {
	busCfg := BusConfigFrom(cfg)
	logger := logging.NewWatermillAdapter()

	url := cfg.NATSURL
	var embedded *EmbeddedServer
	if cfg.EmbeddedServer {
		srv, err := NewEmbeddedServer(cfg.StoreDir)
		if err != nil {
			return nil, err
		}
		embedded = srv
		url = srv.ClientURL()
	}
	shutdownEmbedded := func() {
		if embedded != nil {
			_ = embedded.Shutdown()
		}
	}

	nc, err := natsgo.Connect(url, natsgo.Name("skywatch-init"))
	if err != nil {
		shutdownEmbedded()
		return nil, fmt.Errorf("connect to NATS at %s: %w", url, err)
	}
	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		shutdownEmbedded()
		return nil, fmt.Errorf("create JetStream context: %w", err)
	}
	subjects := []string{busCfg.ViolationTopic, busCfg.CycleTopic}
	if poison := DefaultRouterConfig().PoisonQueueTopic; poison != "" {
		subjects = append(subjects, poison)
	}
	streams, err := NewStreamInitializer(js, subjects...)
	if err != nil {
		nc.Close()
		shutdownEmbedded()
		return nil, err
	}
	if _, err := streams.EnsureStream(ctx); err != nil {
		nc.Close()
		shutdownEmbedded()
		return nil, err
	}
	nc.Close()

	opts := natsOptions(logger)
	pub, err := wmNats.NewPublisher(wmNats.PublisherConfig{
		URL:         url,
		NatsOptions: opts,
		Marshaler:   &wmNats.NATSMarshaler{},
		JetStream: wmNats.JetStreamConfig{
			AutoProvision: false,
			TrackMsgId:    true,
			PublishOptions: []natsgo.PubOpt{
				natsgo.RetryAttempts(3),
				natsgo.RetryWait(100 * time.Millisecond),
			},
		},
	}, logger)
	if err != nil {
		shutdownEmbedded()
		return nil, fmt.Errorf("create NATS publisher: %w", err)
	}

	sub, err := wmNats.NewSubscriber(wmNats.SubscriberConfig{
		URL:            url,
		NatsOptions:    opts,
		Unmarshaler:    &wmNats.NATSMarshaler{},
		AckWaitTimeout: 30 * time.Second,
		CloseTimeout:   10 * time.Second,
		JetStream: wmNats.JetStreamConfig{
			AutoProvision: false,
			SubscribeOptions: []natsgo.SubOpt{
				natsgo.BindStream(StreamName),
				natsgo.DeliverNew(),
				natsgo.AckExplicit(),
			},
			DurablePrefix:     durablePrefix,
			DurableCalculator: durableName,
		},
	}, logger)
	if err != nil {
		_ = pub.Close()
		shutdownEmbedded()
		return nil, fmt.Errorf("create NATS subscriber: %w", err)
	}

	bus, err := NewBus("nats", pub, sub, busCfg)
	if err != nil {
		return nil, err
	}
	if embedded != nil {
		bus.OnClose(embedded.Shutdown)
	}
	logging.Info().Str("url", url).Str("stream", StreamName).Strs("subjects", subjects).Msg("NATS event bus ready")
	return bus, nil
}
