// Package mqtt mirrors the event log to an MQTT broker, with abstraction for
// testing. Publishing is optional: the daemon runs standalone when no broker
// is configured.
package mqtt

import (
	"encoding/json"
	"time"

	"github.com/sweeney/pill-reminder/internal/logic"
)

// Topic is the MQTT topic for pill box events.
const Topic = "home/pillbox/events"

// TopicSystem is the MQTT topic for system lifecycle events.
const TopicSystem = "home/pillbox/system"

// TimeFormat renders the RTC's zoneless wall time.
const TimeFormat = "2006-01-02T15:04:05"

// Publisher publishes events to MQTT.
type Publisher interface {
	// Publish sends a pill box event to the broker.
	// Returns error if publishing fails (should not crash the process).
	Publish(event logic.Event) error

	// PublishSystem sends a system lifecycle event to the broker.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// SystemEvent represents a system lifecycle event (e.g., startup, shutdown, heartbeat).
type SystemEvent struct {
	Timestamp  time.Time
	Event      string // e.g., "STARTUP", "SHUTDOWN", "HEARTBEAT"
	Reason     string // e.g., "SIGTERM", "SIGINT" (shutdown only)
	RawPayload []byte // Pre-formatted JSON payload; if set, FormatSystemPayload returns it directly
	Retained   bool   // Whether the message should be retained by the broker
}

// Payload represents the MQTT message payload structure.
type Payload struct {
	Pillbox EventPayload `json:"pillbox"`
}

// EventPayload contains the pill box event details.
type EventPayload struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Box       int    `json:"box,omitempty"`  // 1-based; omitted for global events
	Name      string `json:"name,omitempty"` // box name
	Hour      int    `json:"hour,omitempty"` // dose hour (DOSE_DUE only)
}

// FormatPayload creates the JSON payload for a pill box event.
func FormatPayload(event logic.Event) ([]byte, error) {
	payload := Payload{
		Pillbox: EventPayload{
			Timestamp: event.Timestamp.Format(TimeFormat),
			Event:     string(event.Type),
			Hour:      event.Hour,
		},
	}
	if event.Box >= 0 {
		payload.Pillbox.Box = event.Box + 1
		payload.Pillbox.Name = event.BoxName
	}
	return json.Marshal(payload)
}

// SystemPayload represents the MQTT message payload for system events.
// Used for simple events (LWT, RECONNECTED) that don't carry a full status snapshot.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the system event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a system event.
// If event.RawPayload is set, it is returned directly (used for full status snapshots).
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}

	payload := SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.Format(TimeFormat),
			Event:     event.Event,
			Reason:    event.Reason,
		},
	}
	return json.Marshal(payload)
}

// Discard is the Publisher used when no broker is configured.
type Discard struct{}

func (Discard) Publish(logic.Event) error       { return nil }
func (Discard) PublishSystem(SystemEvent) error { return nil }
func (Discard) Close() error                    { return nil }
func (Discard) IsConnected() bool               { return false }
