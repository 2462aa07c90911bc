// Skywatch - Restricted Airspace Drone Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skywatch

// Package testinfra provides containers and capture servers for integration
// tests. Everything here is behind the integration build tag.
//
// # Mailpit
//
// MailpitContainer runs a real SMTP server with an HTTP API for reading the
// messages it received:
//
//	mp, err := testinfra.NewMailpitContainer(ctx)
//	if err != nil {
//	    t.Fatal(err)
//	}
//	defer testinfra.CleanupContainer(t, ctx, mp.Container)
//
//	notifier := detection.NewEmailNotifier(config.EmailConfig{
//	    Enabled:  true,
//	    SMTPHost: mp.SMTPHost,
//	    SMTPPort: mp.SMTPPort,
//	    TLSMode:  detection.TLSModeNone,
//	    ...
//	})
//	msgs, err := mp.Messages(ctx)
//
// # Webhook capture
//
// MockWebhookServer records every request so webhook payloads can be
// asserted on without an external receiver.
//
// Tests are skipped when Docker is not available.
package testinfra
