// Skywatch - Restricted Airspace Drone Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skywatch

package eventprocessor

import (
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/skywatch/internal/models"
)

// Message metadata keys.
const (
	MetadataEventType = "event_type"
	MetadataCallsign  = "callsign"
	MetadataZone      = "zone"
	MetadataCycleID   = "cycle_id"
)

// Event types carried in MetadataEventType.
const (
	EventTypeViolation = "drone.violation"
	EventTypeCycle     = "cycle.completed"
)

// NewViolationMessage encodes a violation event.
func NewViolationMessage(e models.ViolationEvent) (*message.Message, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal violation event: %w", err)
	}
	msg := message.NewMessage(uuid.New().String(), data)
	msg.Metadata.Set(MetadataEventType, EventTypeViolation)
	msg.Metadata.Set(MetadataCallsign, e.EntityID)
	msg.Metadata.Set(MetadataZone, e.ZoneName)
	return msg, nil
}

// NewCycleMessage encodes a cycle summary.
func NewCycleMessage(s models.CycleSummary) (*message.Message, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal cycle summary: %w", err)
	}
	msg := message.NewMessage(uuid.New().String(), data)
	msg.Metadata.Set(MetadataEventType, EventTypeCycle)
	msg.Metadata.Set(MetadataCycleID, s.CycleID)
	return msg, nil
}

// DecodeViolation decodes a violation message payload.
func DecodeViolation(msg *message.Message) (models.ViolationEvent, error) {
	var e models.ViolationEvent
	if err := json.Unmarshal(msg.Payload, &e); err != nil {
		return e, fmt.Errorf("unmarshal violation event %s: %w", msg.UUID, err)
	}
	return e, nil
}

// DecodeCycle decodes a cycle summary message payload.
func DecodeCycle(msg *message.Message) (models.CycleSummary, error) {
	var s models.CycleSummary
	if err := json.Unmarshal(msg.Payload, &s); err != nil {
		return s, fmt.Errorf("unmarshal cycle summary %s: %w", msg.UUID, err)
	}
	return s, nil
}
