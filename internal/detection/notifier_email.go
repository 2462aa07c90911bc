// Skywatch - Restricted Airspace Drone Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skywatch

package detection

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/skywatch/internal/config"
	"github.com/tomtom215/skywatch/internal/logging"
	"github.com/tomtom215/skywatch/internal/models"
)

// SMTP TLS modes.
const (
	TLSModeImplicit = "implicit"
	TLSModeStartTLS = "starttls"
	TLSModeNone     = "none"
)

const (
	defaultEmailTimeout = 45 * time.Second
	defaultFromName     = "Skywatch Alerts"
	reportTimeLayout    = "2006-01-02 15:04:05"
)

// EmailNotifier sends one plain text email per alert batch.
type EmailNotifier struct {
	cfg     config.EmailConfig
	timeout time.Duration
	now     func() time.Time
}

// NewEmailNotifier creates the SMTP alert channel.
func NewEmailNotifier(cfg config.EmailConfig) *EmailNotifier {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultEmailTimeout
	}
	if cfg.TLSMode == "" {
		cfg.TLSMode = TLSModeImplicit
	}
	return &EmailNotifier{cfg: cfg, timeout: timeout, now: time.Now}
}

// Name returns the channel name.
func (n *EmailNotifier) Name() string { return "email" }

// Enabled returns whether email alerts are switched on. Missing credentials
// do not disable the channel; each send logs and skips instead.
func (n *EmailNotifier) Enabled() bool { return n.cfg.Enabled }

func (n *EmailNotifier) hasCredentials() bool {
	return n.cfg.Address != "" && n.cfg.Password != "" && n.cfg.Recipient != ""
}

// SendBatch lets the email channel be used as the only notifier.
func (n *EmailNotifier) SendBatch(ctx context.Context, events []models.ViolationEvent) error {
	if len(events) == 0 {
		return nil
	}
	return n.Deliver(ctx, events).Err
}

// Deliver sends the batch as a single message.
func (n *EmailNotifier) Deliver(ctx context.Context, events []models.ViolationEvent) *DeliveryResult {
	if !n.hasCredentials() {
		logging.Error().Msg("Missing email credentials, alert email not sent")
		return failureResult(n.Name(), len(events), ErrorCodeInvalidConfig, false, ErrMissingCredentials)
	}

	subject, body := FormatAlertEmail(events, n.now())
	msg := n.buildMessage(subject, body)

	logging.Info().
		Int("alerts", len(events)).
		Str("server", n.addr()).
		Str("tls", n.cfg.TLSMode).
		Msg("Sending batched alert email")

	if err := n.sendSMTP(ctx, msg); err != nil {
		code := classifyDeliveryError(err)
		return failureResult(n.Name(), len(events), code, isTransientDeliveryError(code), err)
	}
	return successResult(n.Name(), len(events))
}

// FormatAlertEmail renders the subject and body for a batch of alerts.
func FormatAlertEmail(events []models.ViolationEvent, reportTime time.Time) (subject, body string) {
	subject = fmt.Sprintf("%d Unauthorized Drone Alert(s)", len(events))

	var b strings.Builder
	fmt.Fprintf(&b, "Detected %d new unauthorized drone flight(s):\n\n", len(events))
	for i, e := range events {
		callsign := e.EntityID
		if callsign == "" {
			callsign = "Unknown"
		}
		zone := e.ZoneName
		if zone == "" {
			zone = "Unknown"
		}
		fmt.Fprintf(&b, "--- Alert %d ---\n", i+1)
		fmt.Fprintf(&b, "Callsign: %s\n", callsign)
		fmt.Fprintf(&b, "Location: Lat %.4f, Lon %.4f\n", e.Latitude, e.Longitude)
		fmt.Fprintf(&b, "Restricted Zone: %s\n\n", zone)
	}
	fmt.Fprintf(&b, "\nReport Time: %s\n", reportTime.Format(reportTimeLayout))
	return subject, b.String()
}

func (n *EmailNotifier) addr() string {
	return net.JoinHostPort(n.cfg.SMTPHost, strconv.Itoa(n.cfg.SMTPPort))
}

// buildMessage constructs the RFC 5322 message with CRLF line endings.
func (n *EmailNotifier) buildMessage(subject, body string) string {
	fromName := n.cfg.FromName
	if fromName == "" {
		fromName = defaultFromName
	}

	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("From: %s <%s>\r\n", fromName, n.cfg.Address))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", n.cfg.Recipient))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString(fmt.Sprintf("Date: %s\r\n", n.now().Format(time.RFC1123Z)))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	return msg.String()
}

func (n *EmailNotifier) dial(ctx context.Context) (net.Conn, error) {
	dialer := &net.Dialer{Timeout: n.timeout}
	if n.cfg.TLSMode == TLSModeImplicit {
		tlsDialer := &tls.Dialer{NetDialer: dialer, Config: n.tlsConfig()}
		return tlsDialer.DialContext(ctx, "tcp", n.addr())
	}
	return dialer.DialContext(ctx, "tcp", n.addr())
}

func (n *EmailNotifier) tlsConfig() *tls.Config {
	return &tls.Config{
		ServerName: n.cfg.SMTPHost,
		MinVersion: tls.VersionTLS12,
	}
}

// sendSMTP runs one SMTP session. The whole session shares one deadline.
func (n *EmailNotifier) sendSMTP(ctx context.Context, msg string) error {
	conn, err := n.dial(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer func() { _ = conn.Close() }() //nolint:errcheck // best effort

	deadline := time.Now().Add(n.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := conn.SetDeadline(deadline); err != nil {
		return fmt.Errorf("failed to set connection deadline: %w", err)
	}

	client, err := smtp.NewClient(conn, n.cfg.SMTPHost)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer func() { _ = client.Close() }() //nolint:errcheck // best effort

	if n.cfg.TLSMode == TLSModeStartTLS {
		if err := client.StartTLS(n.tlsConfig()); err != nil {
			return fmt.Errorf("failed to start TLS: %w", err)
		}
	}

	if ok, _ := client.Extension("AUTH"); ok {
		auth := smtp.PlainAuth("", n.cfg.Address, n.cfg.Password, n.cfg.SMTPHost)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("SMTP authentication failed: %w", err)
		}
	}

	if err := client.Mail(n.cfg.Address); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := client.Rcpt(n.cfg.Recipient); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to start message: %w", err)
	}
	if _, err := w.Write([]byte(msg)); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close message: %w", err)
	}

	if err := client.Quit(); err != nil {
		logging.Debug().Err(err).Msg("SMTP quit failed after message was accepted")
	}
	return nil
}

// classifyDeliveryError maps a delivery error to an error code.
func classifyDeliveryError(err error) string {
	if errors.Is(err, ErrMissingCredentials) {
		return ErrorCodeInvalidConfig
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorCodeTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrorCodeTimeout
	}

	errStr := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errStr, "authentication") || strings.Contains(errStr, "auth"):
		return ErrorCodeAuthFailed
	case strings.Contains(errStr, "timeout") || strings.Contains(errStr, "deadline"):
		return ErrorCodeTimeout
	case strings.Contains(errStr, "connection") || strings.Contains(errStr, "connect"):
		return ErrorCodeConnectionFailed
	case strings.Contains(errStr, "recipient") || strings.Contains(errStr, "mailbox"):
		return ErrorCodeRecipientNotFound
	case strings.Contains(errStr, "rate") || strings.Contains(errStr, "limit") || strings.Contains(errStr, "429"):
		return ErrorCodeRateLimited
	case strings.Contains(errStr, "status 5"):
		return ErrorCodeServerError
	}
	return ErrorCodeUnknown
}

// isTransientDeliveryError reports whether a retry could succeed.
func isTransientDeliveryError(code string) bool {
	switch code {
	case ErrorCodeConnectionFailed, ErrorCodeTimeout, ErrorCodeRateLimited, ErrorCodeServerError:
		return true
	default:
		return false
	}
}
