// Skywatch - Restricted Airspace Drone Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skywatch

package detection

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/tomtom215/skywatch/internal/config"
	"github.com/tomtom215/skywatch/internal/models"
)

func testEvents() []models.ViolationEvent {
	return []models.ViolationEvent{
		{EntityID: "DRN001", Latitude: 38.87191234, Longitude: -77.05631234, ZoneName: "Pentagon"},
		{EntityID: "", Latitude: 40.6413, Longitude: -73.7781, ZoneName: ""},
	}
}

func TestFormatAlertEmail(t *testing.T) {
	at := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	subject, body := FormatAlertEmail(testEvents(), at)

	if subject != "2 Unauthorized Drone Alert(s)" {
		t.Errorf("subject = %q", subject)
	}

	want := []string{
		"Detected 2 new unauthorized drone flight(s):",
		"--- Alert 1 ---",
		"Callsign: DRN001",
		"Location: Lat 38.8719, Lon -77.0563",
		"Restricted Zone: Pentagon",
		"--- Alert 2 ---",
		"Callsign: Unknown",
		"Restricted Zone: Unknown",
		"Report Time: 2026-03-14 09:26:53",
	}
	for _, w := range want {
		if !strings.Contains(body, w) {
			t.Errorf("body missing %q\n%s", w, body)
		}
	}
	if strings.Index(body, "--- Alert 1 ---") > strings.Index(body, "--- Alert 2 ---") {
		t.Error("alerts out of order")
	}
}

func TestEmailNotifier_BuildMessage(t *testing.T) {
	n := NewEmailNotifier(config.EmailConfig{
		Enabled:   true,
		Address:   "alerts@example.com",
		Recipient: "ops@example.com",
	})
	msg := n.buildMessage("1 Unauthorized Drone Alert(s)", "line one\nline two")

	for _, h := range []string{
		"From: Skywatch Alerts <alerts@example.com>\r\n",
		"To: ops@example.com\r\n",
		"Subject: 1 Unauthorized Drone Alert(s)\r\n",
		"MIME-Version: 1.0\r\n",
		"Content-Type: text/plain; charset=UTF-8\r\n",
		"\r\n\r\nline one\r\nline two",
	} {
		if !strings.Contains(msg, h) {
			t.Errorf("message missing %q", h)
		}
	}
}

func TestEmailNotifier_Defaults(t *testing.T) {
	n := NewEmailNotifier(config.EmailConfig{Enabled: true})
	if n.Name() != "email" {
		t.Errorf("Name() = %q", n.Name())
	}
	if !n.Enabled() {
		t.Error("Enabled() should follow config")
	}
	if n.cfg.TLSMode != TLSModeImplicit {
		t.Errorf("TLSMode = %q, want implicit", n.cfg.TLSMode)
	}
	if n.timeout != defaultEmailTimeout {
		t.Errorf("timeout = %v", n.timeout)
	}
}

func TestEmailNotifier_MissingCredentials(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.EmailConfig
	}{
		{"no address", config.EmailConfig{Password: "p", Recipient: "r@example.com"}},
		{"no password", config.EmailConfig{Address: "a@example.com", Recipient: "r@example.com"}},
		{"no recipient", config.EmailConfig{Address: "a@example.com", Password: "p"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.cfg.Enabled = true
			n := NewEmailNotifier(tt.cfg)
			res := n.Deliver(context.Background(), testEvents())
			if res.Success {
				t.Fatal("expected failure")
			}
			if !errors.Is(res.Err, ErrMissingCredentials) {
				t.Errorf("Err = %v, want ErrMissingCredentials", res.Err)
			}
			if res.ErrorCode != ErrorCodeInvalidConfig || res.IsTransient {
				t.Errorf("code = %s transient = %v", res.ErrorCode, res.IsTransient)
			}
		})
	}
}

func TestEmailNotifier_SendBatchEmpty(t *testing.T) {
	n := NewEmailNotifier(config.EmailConfig{Enabled: true})
	if err := n.SendBatch(context.Background(), nil); err != nil {
		t.Errorf("SendBatch(nil) = %v, want nil", err)
	}
}

// fakeSMTP is a minimal plain-text SMTP server that records one message.
type fakeSMTP struct {
	ln       net.Listener
	mu       sync.Mutex
	from     string
	rcpt     string
	data     string
	rejectTo bool
}

func startFakeSMTP(t *testing.T, rejectTo bool) *fakeSMTP {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	s := &fakeSMTP{ln: ln, rejectTo: rejectTo}
	t.Cleanup(func() { _ = ln.Close() })
	go s.serve()
	return s
}

func (s *fakeSMTP) port() int {
	return s.ln.Addr().(*net.TCPAddr).Port
}

func (s *fakeSMTP) serve() {
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			return
		}
		go s.handle(conn)
	}
}

func (s *fakeSMTP) handle(conn net.Conn) {
	defer conn.Close()
	r := bufio.NewReader(conn)
	reply := func(line string) { fmt.Fprintf(conn, "%s\r\n", line) }

	reply("220 fake ESMTP")
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return
		}
		cmd := strings.ToUpper(strings.TrimSpace(line))
		switch {
		case strings.HasPrefix(cmd, "EHLO"), strings.HasPrefix(cmd, "HELO"):
			reply("250 fake")
		case strings.HasPrefix(cmd, "MAIL FROM:"):
			s.mu.Lock()
			s.from = strings.TrimSpace(line[len("MAIL FROM:"):])
			s.mu.Unlock()
			reply("250 OK")
		case strings.HasPrefix(cmd, "RCPT TO:"):
			if s.rejectTo {
				reply("550 mailbox unavailable")
				continue
			}
			s.mu.Lock()
			s.rcpt = strings.TrimSpace(line[len("RCPT TO:"):])
			s.mu.Unlock()
			reply("250 OK")
		case cmd == "DATA":
			reply("354 go ahead")
			var b strings.Builder
			for {
				l, err := r.ReadString('\n')
				if err != nil {
					return
				}
				if l == ".\r\n" {
					break
				}
				b.WriteString(l)
			}
			s.mu.Lock()
			s.data = b.String()
			s.mu.Unlock()
			reply("250 queued")
		case cmd == "QUIT":
			reply("221 bye")
			return
		default:
			reply("250 OK")
		}
	}
}

func fakeSMTPConfig(s *fakeSMTP) config.EmailConfig {
	return config.EmailConfig{
		Enabled:   true,
		SMTPHost:  "127.0.0.1",
		SMTPPort:  s.port(),
		TLSMode:   TLSModeNone,
		Address:   "alerts@example.com",
		Password:  "secret",
		Recipient: "ops@example.com",
		Timeout:   5 * time.Second,
	}
}

func TestEmailNotifier_DeliverPlainSMTP(t *testing.T) {
	s := startFakeSMTP(t, false)
	n := NewEmailNotifier(fakeSMTPConfig(s))

	res := n.Deliver(context.Background(), testEvents())
	if !res.Success {
		t.Fatalf("Deliver failed: %s (%s)", res.ErrorMessage, res.ErrorCode)
	}
	if res.DeliveredAt == nil || res.Events != 2 {
		t.Errorf("result = %+v", res)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.from != "<alerts@example.com>" {
		t.Errorf("MAIL FROM = %q", s.from)
	}
	if s.rcpt != "<ops@example.com>" {
		t.Errorf("RCPT TO = %q", s.rcpt)
	}
	if !strings.Contains(s.data, "Subject: 2 Unauthorized Drone Alert(s)") {
		t.Errorf("data missing subject:\n%s", s.data)
	}
	if !strings.Contains(s.data, "Callsign: DRN001") {
		t.Errorf("data missing alert body:\n%s", s.data)
	}
}

func TestEmailNotifier_DeliverRecipientRejected(t *testing.T) {
	s := startFakeSMTP(t, true)
	n := NewEmailNotifier(fakeSMTPConfig(s))

	res := n.Deliver(context.Background(), testEvents())
	if res.Success {
		t.Fatal("expected failure")
	}
	if res.ErrorCode != ErrorCodeRecipientNotFound {
		t.Errorf("ErrorCode = %s, want %s", res.ErrorCode, ErrorCodeRecipientNotFound)
	}
}

func TestEmailNotifier_DeliverConnectionRefused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	_ = ln.Close()

	n := NewEmailNotifier(config.EmailConfig{
		Enabled: true, SMTPHost: "127.0.0.1", SMTPPort: port, TLSMode: TLSModeNone,
		Address: "a@example.com", Password: "p", Recipient: "r@example.com", Timeout: time.Second,
	})
	res := n.Deliver(context.Background(), testEvents())
	if res.Success {
		t.Fatal("expected failure")
	}
	if res.ErrorCode != ErrorCodeConnectionFailed || !res.IsTransient {
		t.Errorf("code = %s transient = %v, want CONNECTION_FAILED transient", res.ErrorCode, res.IsTransient)
	}
	if n.addr() != net.JoinHostPort("127.0.0.1", strconv.Itoa(port)) {
		t.Errorf("addr() = %q", n.addr())
	}
}

func TestClassifyDeliveryError(t *testing.T) {
	tests := []struct {
		err       error
		code      string
		transient bool
	}{
		{ErrMissingCredentials, ErrorCodeInvalidConfig, false},
		{fmt.Errorf("wrap: %w", context.DeadlineExceeded), ErrorCodeTimeout, true},
		{errors.New("SMTP authentication failed: 535"), ErrorCodeAuthFailed, false},
		{errors.New("failed to connect to SMTP server"), ErrorCodeConnectionFailed, true},
		{errors.New("failed to set recipient: 550 mailbox unavailable"), ErrorCodeRecipientNotFound, false},
		{errors.New("webhook returned status 429"), ErrorCodeRateLimited, true},
		{errors.New("webhook returned status 502"), ErrorCodeServerError, true},
		{errors.New("something odd"), ErrorCodeUnknown, false},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			code := classifyDeliveryError(tt.err)
			if code != tt.code {
				t.Errorf("classifyDeliveryError() = %s, want %s", code, tt.code)
			}
			if got := isTransientDeliveryError(code); got != tt.transient {
				t.Errorf("isTransientDeliveryError(%s) = %v, want %v", code, got, tt.transient)
			}
		})
	}
}
