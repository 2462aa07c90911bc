// Skywatch - Restricted Airspace Drone Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skywatch

//go:build integration

package testinfra

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	// DefaultMailpitImage is the Mailpit image used for SMTP tests.
	DefaultMailpitImage = "axllent/mailpit:v1.21"

	mailpitSMTPPort = "1025/tcp"
	mailpitHTTPPort = "8025/tcp"
)

// MailpitContainer is a running Mailpit SMTP server.
type MailpitContainer struct {
	testcontainers.Container
	SMTPHost string
	SMTPPort int
	APIURL   string

	client *http.Client
}

// MailpitAddress is a sender or recipient in the Mailpit API.
type MailpitAddress struct {
	Name    string `json:"Name"`
	Address string `json:"Address"`
}

// MailpitMessage is one entry of GET /api/v1/messages.
type MailpitMessage struct {
	ID      string           `json:"ID"`
	From    MailpitAddress   `json:"From"`
	To      []MailpitAddress `json:"To"`
	Subject string           `json:"Subject"`
	Snippet string           `json:"Snippet"`
}

type mailpitList struct {
	Total    int              `json:"total"`
	Messages []MailpitMessage `json:"messages"`
}

type mailpitDetail struct {
	Text string `json:"Text"`
}

// MailpitOption configures the container.
type MailpitOption func(*mailpitConfig)

type mailpitConfig struct {
	image        string
	startTimeout time.Duration
}

// WithMailpitImage overrides the image.
func WithMailpitImage(image string) MailpitOption {
	return func(c *mailpitConfig) { c.image = image }
}

// WithMailpitStartTimeout overrides how long to wait for startup.
func WithMailpitStartTimeout(d time.Duration) MailpitOption {
	return func(c *mailpitConfig) { c.startTimeout = d }
}

// NewMailpitContainer starts Mailpit with plain SMTP on 1025 and its API
// on 8025.
func NewMailpitContainer(ctx context.Context, opts ...MailpitOption) (*MailpitContainer, error) {
	cfg := &mailpitConfig{
		image:        DefaultMailpitImage,
		startTimeout: 60 * time.Second,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	req := testcontainers.ContainerRequest{
		Image:        cfg.image,
		ExposedPorts: []string{mailpitSMTPPort, mailpitHTTPPort},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort(mailpitSMTPPort),
			wait.ForHTTP("/api/v1/info").WithPort(mailpitHTTPPort),
		).WithStartupTimeout(cfg.startTimeout),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("create mailpit container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get container host: %w", err)
	}
	smtpPort, err := container.MappedPort(ctx, mailpitSMTPPort)
	if err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get smtp port: %w", err)
	}
	httpPort, err := container.MappedPort(ctx, mailpitHTTPPort)
	if err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get api port: %w", err)
	}

	return &MailpitContainer{
		Container: container,
		SMTPHost:  host,
		SMTPPort:  smtpPort.Int(),
		APIURL:    fmt.Sprintf("http://%s:%s", host, httpPort.Port()),
		client:    &http.Client{Timeout: 10 * time.Second},
	}, nil
}

// Messages lists received messages, newest first.
func (m *MailpitContainer) Messages(ctx context.Context) ([]MailpitMessage, error) {
	var list mailpitList
	if err := m.getJSON(ctx, "/api/v1/messages", &list); err != nil {
		return nil, err
	}
	return list.Messages, nil
}

// MessageText returns the plain-text body of message id.
func (m *MailpitContainer) MessageText(ctx context.Context, id string) (string, error) {
	var detail mailpitDetail
	if err := m.getJSON(ctx, "/api/v1/message/"+id, &detail); err != nil {
		return "", err
	}
	return detail.Text, nil
}

// WaitForMessages polls until at least n messages arrived.
func (m *MailpitContainer) WaitForMessages(ctx context.Context, n int, timeout time.Duration) ([]MailpitMessage, error) {
	var msgs []MailpitMessage
	err := WaitForReady(ctx, func() bool {
		got, err := m.Messages(ctx)
		if err != nil {
			return false
		}
		msgs = got
		return len(got) >= n
	}, timeout)
	return msgs, err
}

func (m *MailpitContainer) getJSON(ctx context.Context, path string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.APIURL+path, http.NoBody)
	if err != nil {
		return err
	}
	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("mailpit %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("mailpit %s: status %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(dst)
}
